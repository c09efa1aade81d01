// Package config handles configuration for field analysis runs.
// Configuration is loaded from sf-field-analysis.yml in the project
// directory, with environment variable overrides (SFFA_ prefix).
package config

import (
	"path/filepath"

	"github.com/gbshahaq/sf-field-analysis/internal/corpus"
)

// FileName is the configuration file looked up in the project directory.
const FileName = "sf-field-analysis.yml"

// Config is the complete configuration for an analysis run.
type Config struct {
	// Object is the API name of the Salesforce object whose fields are
	// analyzed, e.g. "Account" or "Invoice__c".
	Object string `yaml:"object" mapstructure:"object"`

	// ProjectDir is the Salesforce project root. Relative paths in the
	// rest of the configuration resolve against it.
	ProjectDir string `yaml:"project_dir" mapstructure:"project_dir"`

	// SourceDir is the package directory scanned for metadata, relative
	// to ProjectDir unless absolute.
	SourceDir string `yaml:"source_dir" mapstructure:"source_dir"`

	// TargetOrg is the sf CLI org alias queried for field dates and the
	// remote field inventory. Empty uses the CLI's default org.
	TargetOrg string `yaml:"target_org" mapstructure:"target_org"`

	Output   OutputConfig   `yaml:"output" mapstructure:"output"`
	Analysis AnalysisConfig `yaml:"analysis" mapstructure:"analysis"`

	// Categories maps metadata category names to the glob patterns that
	// select their files. The {object} token expands to the object name.
	Categories map[string][]string `yaml:"categories" mapstructure:"categories"`
}

// OutputConfig controls where and how results are written.
type OutputConfig struct {
	// Path of the output file. Empty derives a name from the object and
	// format, e.g. Account_field_analysis.xlsx.
	Path string `yaml:"path" mapstructure:"path"`

	// Format is one of xlsx, csv or sqlite.
	Format string `yaml:"format" mapstructure:"format"`

	// Open launches the written file with the system default application.
	Open bool `yaml:"open" mapstructure:"open"`
}

// AnalysisConfig tunes how field documents are processed.
type AnalysisConfig struct {
	// Workers is the number of field documents parsed concurrently.
	// Zero uses one worker per CPU.
	Workers int `yaml:"workers" mapstructure:"workers"`

	// SkipOrg disables the sf CLI queries for last-modified dates and
	// the remote field inventory.
	SkipOrg bool `yaml:"skip_org" mapstructure:"skip_org"`
}

// Default returns the default configuration for a standard sfdx source
// layout.
func Default() *Config {
	return &Config{
		Object:     "",
		ProjectDir: ".",
		SourceDir:  "force-app",
		TargetOrg:  "",
		Output: OutputConfig{
			Path:   "",
			Format: "xlsx",
			Open:   false,
		},
		Analysis: AnalysisConfig{
			Workers: 0,
			SkipOrg: false,
		},
		Categories: DefaultCategories(),
	}
}

// DefaultCategories returns the glob patterns for each metadata category
// in a standard sfdx source layout. Apex, flows, flexipages, profiles and
// permission sets are not filtered by object name; their hits are bounded
// by content matching instead.
func DefaultCategories() map[string][]string {
	return map[string][]string{
		corpus.CategoryApex: {
			"**/classes/*.cls",
			"**/triggers/*.trigger",
		},
		corpus.CategoryFlows: {
			"**/flows/*.flow-meta.xml",
		},
		corpus.CategoryValidationRules: {
			"**/objects/{object}/validationRules/*.validationRule-meta.xml",
		},
		corpus.CategoryDuplicateRules: {
			"**/duplicateRules/{object}.*.duplicateRule-meta.xml",
		},
		corpus.CategoryLayouts: {
			"**/layouts/{object}-*.layout-meta.xml",
		},
		corpus.CategoryRecordTypes: {
			"**/objects/{object}/recordTypes/*.recordType-meta.xml",
		},
		corpus.CategoryFlexipages: {
			"**/flexipages/*.flexipage-meta.xml",
		},
		corpus.CategoryReports: {
			"**/reports/*.report-meta.xml",
			"**/reports/**/*.report-meta.xml",
		},
		corpus.CategoryEmailTemplates: {
			"**/email/*.email",
			"**/email/**/*.email",
			"**/email/*.email-meta.xml",
			"**/email/**/*.email-meta.xml",
		},
		corpus.CategoryLWC: {
			"**/lwc/*/*.js",
			"**/lwc/*/*.html",
			"**/lwc/*/*.js-meta.xml",
		},
		corpus.CategoryAura: {
			"**/aura/*/*.cmp",
			"**/aura/*/*.js",
			"**/aura/*/*.app",
			"**/aura/*/*.design",
		},
		corpus.CategoryProfiles: {
			"**/profiles/*.profile-meta.xml",
		},
		corpus.CategoryPermissionSets: {
			"**/permissionsets/*.permissionset-meta.xml",
		},
	}
}

// SourceRoot returns the directory scanned for metadata and field
// documents.
func (c *Config) SourceRoot() string {
	if filepath.IsAbs(c.SourceDir) {
		return c.SourceDir
	}
	return filepath.Join(c.ProjectDir, c.SourceDir)
}

// OutputPath resolves the output file location. An empty configured path
// falls back to defaultPath; relative paths resolve against the project
// directory.
func (c *Config) OutputPath(defaultPath string) string {
	path := c.Output.Path
	if path == "" {
		path = defaultPath
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.ProjectDir, path)
}
