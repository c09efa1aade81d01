package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/gbshahaq/sf-field-analysis/internal/corpus"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	projectDir string
}

// NewLoader creates a configuration loader rooted at the given project
// directory.
func NewLoader(projectDir string) Loader {
	return &loader{
		projectDir: projectDir,
	}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (SFFA_*)
// 2. Config file (sf-field-analysis.yml in the project directory)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("sf-field-analysis")
	v.SetConfigType("yaml")
	v.AddConfigPath(l.projectDir)

	// Enable environment variable overrides, e.g. SFFA_OUTPUT_FORMAT.
	v.SetEnvPrefix("SFFA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("object")
	v.BindEnv("project_dir")
	v.BindEnv("source_dir")
	v.BindEnv("target_org")

	v.BindEnv("output.path")
	v.BindEnv("output.format")
	v.BindEnv("output.open")

	v.BindEnv("analysis.workers")
	v.BindEnv("analysis.skip_org")

	setDefaults(v, l.projectDir)

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is acceptable - we'll use defaults + env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Viper lowercases map keys during unmarshal; restore the canonical
	// category names so corpus lookups keep working.
	cfg.Categories = normalizeCategories(cfg.Categories)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults configures viper with default values. The project directory
// the loader was created with becomes the default project_dir, so relative
// paths resolve against the directory the config was loaded from.
func setDefaults(v *viper.Viper, projectDir string) {
	defaults := Default()

	v.SetDefault("object", defaults.Object)
	v.SetDefault("project_dir", projectDir)
	v.SetDefault("source_dir", defaults.SourceDir)
	v.SetDefault("target_org", defaults.TargetOrg)

	v.SetDefault("output.path", defaults.Output.Path)
	v.SetDefault("output.format", defaults.Output.Format)
	v.SetDefault("output.open", defaults.Output.Open)

	v.SetDefault("analysis.workers", defaults.Analysis.Workers)
	v.SetDefault("analysis.skip_org", defaults.Analysis.SkipOrg)

	// Per-category defaults, so a config file overriding one category
	// keeps the defaults for the rest.
	for name, patterns := range defaults.Categories {
		v.SetDefault("categories."+name, patterns)
	}
}

// normalizeCategories re-keys a category map onto the canonical category
// names, matching case-insensitively. Unknown keys are kept as-is for
// validation to report.
func normalizeCategories(in map[string][]string) map[string][]string {
	if len(in) == 0 {
		return in
	}
	canonical := make(map[string]string, len(corpus.Categories()))
	for _, name := range corpus.Categories() {
		canonical[strings.ToLower(name)] = name
	}
	out := make(map[string][]string, len(in))
	for key, patterns := range in {
		if name, ok := canonical[strings.ToLower(key)]; ok {
			out[name] = patterns
			continue
		}
		out[key] = patterns
	}
	return out
}

// LoadConfig is a convenience function that creates a loader and loads
// config. It uses the current working directory as the project directory.
func LoadConfig() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return NewLoader(wd).Load()
}

// LoadConfigFromDir loads configuration from a specific project directory.
func LoadConfigFromDir(projectDir string) (*Config, error) {
	return NewLoader(projectDir).Load()
}
