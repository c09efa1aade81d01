package config

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/gbshahaq/sf-field-analysis/internal/corpus"
	"github.com/gbshahaq/sf-field-analysis/internal/export"
)

var (
	// ErrMissingObject indicates no object name is configured
	ErrMissingObject = errors.New("missing object name")

	// ErrInvalidObject indicates an object name that is not a valid API name
	ErrInvalidObject = errors.New("invalid object name")

	// ErrMissingProjectDir indicates an empty project directory
	ErrMissingProjectDir = errors.New("missing project directory")

	// ErrMissingSourceDir indicates an empty source directory
	ErrMissingSourceDir = errors.New("missing source directory")

	// ErrInvalidFormat indicates an unsupported output format
	ErrInvalidFormat = errors.New("invalid output format")

	// ErrInvalidWorkers indicates an invalid worker count
	ErrInvalidWorkers = errors.New("invalid worker count")

	// ErrUnknownCategory indicates a category name with no corpus behind it
	ErrUnknownCategory = errors.New("unknown category")

	// ErrInvalidPattern indicates an unusable category glob pattern
	ErrInvalidPattern = errors.New("invalid category pattern")
)

// Object API names are letters, digits and underscores, starting with a
// letter. The name is interpolated into SOQL, so nothing else is allowed.
var objectNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// Validate checks that the configuration is valid. An empty object name
// passes here; commands that need one call RequireObject after applying
// their flag overrides.
func Validate(cfg *Config) error {
	var errs []error

	if err := validateObject(cfg.Object); err != nil {
		errs = append(errs, err)
	}

	if err := validateLayout(cfg); err != nil {
		errs = append(errs, err)
	}

	if err := validateOutput(&cfg.Output); err != nil {
		errs = append(errs, err)
	}

	if err := validateAnalysis(&cfg.Analysis); err != nil {
		errs = append(errs, err)
	}

	if err := validateCategories(cfg.Categories); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

// RequireObject checks that an object name is configured.
func RequireObject(cfg *Config) error {
	if strings.TrimSpace(cfg.Object) == "" {
		return fmt.Errorf("%w: set the object key in %s or the SFFA_OBJECT environment variable", ErrMissingObject, FileName)
	}
	return nil
}

func validateObject(name string) error {
	if name == "" {
		return nil
	}
	if !objectNamePattern.MatchString(name) {
		return fmt.Errorf("%w: %q must start with a letter and contain only letters, digits and underscores", ErrInvalidObject, name)
	}
	return nil
}

func validateLayout(cfg *Config) error {
	var errs []error

	if strings.TrimSpace(cfg.ProjectDir) == "" {
		errs = append(errs, fmt.Errorf("%w: project_dir is required", ErrMissingProjectDir))
	}

	if strings.TrimSpace(cfg.SourceDir) == "" {
		errs = append(errs, fmt.Errorf("%w: source_dir is required", ErrMissingSourceDir))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateOutput(cfg *OutputConfig) error {
	if _, err := export.ParseFormat(cfg.Format); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return nil
}

func validateAnalysis(cfg *AnalysisConfig) error {
	if cfg.Workers < 0 {
		return fmt.Errorf("%w: workers cannot be negative, got %d", ErrInvalidWorkers, cfg.Workers)
	}
	return nil
}

func validateCategories(categories map[string][]string) error {
	var errs []error

	known := make(map[string]bool, len(corpus.Categories()))
	for _, name := range corpus.Categories() {
		known[name] = true
	}

	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if !known[name] {
			errs = append(errs, fmt.Errorf("%w: %s (valid: %s)", ErrUnknownCategory, name, strings.Join(corpus.Categories(), ", ")))
			continue
		}
		for _, pattern := range categories[name] {
			if strings.TrimSpace(pattern) == "" {
				errs = append(errs, fmt.Errorf("%w: empty pattern for category %s", ErrInvalidPattern, name))
			}
		}
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

// joinErrors combines multiple errors into a single error with clear formatting.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	var msgs []string
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}

	return fmt.Errorf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}
