package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// Test Plan for Starter Config:
// - Starter() parses as YAML into a Config
// - WriteStarter() writes a file that loads back as pure defaults
// - WriteStarter() refuses to overwrite an existing config
// - Dump() renders the effective configuration as YAML

func TestStarter_ParsesAsYAML(t *testing.T) {
	t.Parallel()

	var cfg Config
	require.NoError(t, yaml.Unmarshal(Starter(), &cfg))

	assert.Equal(t, "", cfg.Object)
	assert.Equal(t, "force-app", cfg.SourceDir)
	assert.Equal(t, "xlsx", cfg.Output.Format)
	assert.Equal(t, 0, cfg.Analysis.Workers)
	assert.False(t, cfg.Analysis.SkipOrg)

	// Categories are commented out in the starter.
	assert.Nil(t, cfg.Categories)
}

func TestWriteStarter_LoadsBackAsDefaults(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()

	path, err := WriteStarter(tempDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tempDir, FileName), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	cfg, err := LoadConfigFromDir(tempDir)
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Object)
	assert.Equal(t, tempDir, cfg.ProjectDir)
	assert.Equal(t, "force-app", cfg.SourceDir)
	assert.Equal(t, "xlsx", cfg.Output.Format)
	assert.Equal(t, DefaultCategories(), cfg.Categories)
}

func TestWriteStarter_RefusesOverwrite(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()

	_, err := WriteStarter(tempDir)
	require.NoError(t, err)

	_, err = WriteStarter(tempDir)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfigExists)
}

func TestDump_RendersEffectiveConfig(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Object = "Account"
	cfg.TargetOrg = "dev"

	out, err := cfg.Dump()
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "object: Account")
	assert.Contains(t, text, "target_org: dev")
	assert.Contains(t, text, "categories:")
	assert.Contains(t, text, "format: xlsx")

	// Dump output parses back into an equal configuration.
	var parsed Config
	require.NoError(t, yaml.Unmarshal(out, &parsed))
	assert.Equal(t, *cfg, parsed)
}
