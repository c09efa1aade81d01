package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrConfigExists indicates a configuration file is already present
var ErrConfigExists = errors.New("configuration file already exists")

// starterTemplate is the commented configuration written by init. It
// carries only the keys a user commonly edits; everything omitted keeps
// its default.
const starterTemplate = `# sf-field-analysis configuration.
#
# Every key can also be set with an SFFA_ environment variable, e.g.
# SFFA_OUTPUT_FORMAT=csv. Command line flags override both.

# API name of the Salesforce object to analyze (required).
object: ""

# Package directory scanned for metadata, relative to this file.
source_dir: force-app

# sf CLI org alias for the date and field inventory queries.
# Empty uses the CLI's default org.
target_org: ""

output:
  # One of xlsx, csv, sqlite.
  format: xlsx
  # Output file path. Empty derives <Object>_field_analysis.<ext>.
  path: ""
  # Open the written file with the system default application.
  open: false

analysis:
  # Field documents parsed concurrently. 0 uses one worker per CPU.
  workers: 0
  # Skip the sf CLI queries and analyze local sources only.
  skip_org: false

# Glob patterns per metadata category, with {object} expanding to the
# object name. A category listed here replaces its default patterns;
# run "sf-field-analysis config" to see the effective set.
#categories:
#  apex:
#    - "**/classes/*.cls"
#    - "**/triggers/*.trigger"
`

// Starter returns the commented starter configuration.
func Starter() []byte {
	return []byte(starterTemplate)
}

// WriteStarter writes the starter configuration into dir and returns the
// written path. It refuses to overwrite an existing file.
func WriteStarter(dir string) (string, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%w: %s", ErrConfigExists, path)
	}
	if err := os.WriteFile(path, Starter(), 0644); err != nil {
		return "", fmt.Errorf("failed to write starter config: %w", err)
	}
	return path, nil
}

// Dump renders the effective configuration as YAML, for the config
// command.
func (c *Config) Dump() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to render config: %w", err)
	}
	return out, nil
}
