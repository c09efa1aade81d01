package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// objectToken is the placeholder in configured patterns that expands to the
// target object's API name, e.g. "**/objects/{object}/recordTypes/*".
const objectToken = "{object}"

// compiledPattern holds both the pattern string and compiled glob.
type compiledPattern struct {
	pattern string
	glob    glob.Glob
	// rootGlob is the pattern with its leading "**/" stripped. The glob
	// library requires "**/" to consume at least one directory, so
	// "**/flows/*.flow-meta.xml" alone never matches "flows/F.flow-meta.xml"
	// when the source root sits directly above the category directories.
	// Nil when the pattern has no "**/" prefix.
	rootGlob glob.Glob
}

// Loader discovers and reads corpus artifacts for each metadata category
// using glob patterns rooted at a project source directory.
type Loader struct {
	rootDir  string
	patterns map[string][]compiledPattern
}

// NewLoader compiles the per-category glob patterns. Pattern separator is
// '/' so "**" spans directories the same way on every platform.
func NewLoader(rootDir string, patterns map[string][]string) (*Loader, error) {
	l := &Loader{
		rootDir:  rootDir,
		patterns: make(map[string][]compiledPattern),
	}

	for category, pats := range patterns {
		for _, pattern := range pats {
			g, err := glob.Compile(pattern, '/')
			if err != nil {
				return nil, fmt.Errorf("invalid %s pattern %q: %w", category, pattern, err)
			}
			cp := compiledPattern{pattern: pattern, glob: g}
			if strings.HasPrefix(pattern, "**/") {
				rg, err := glob.Compile(strings.TrimPrefix(pattern, "**/"), '/')
				if err != nil {
					return nil, fmt.Errorf("invalid %s pattern %q: %w", category, pattern, err)
				}
				cp.rootGlob = rg
			}
			l.patterns[category] = append(l.patterns[category], cp)
		}
	}

	return l, nil
}

// ExpandObject substitutes the {object} token in every pattern. The input
// map is not modified.
func ExpandObject(patterns map[string][]string, object string) map[string][]string {
	expanded := make(map[string][]string, len(patterns))
	for category, pats := range patterns {
		out := make([]string, 0, len(pats))
		for _, p := range pats {
			out = append(out, strings.ReplaceAll(p, objectToken, object))
		}
		expanded[category] = out
	}
	return expanded
}

// Load walks the root once and reads every matching artifact into its
// category corpus. Artifacts enter each corpus in lexical walk order, which
// fixes the iteration order reference listings rely on. A missing root
// yields an empty library: corpora are optional inputs, never a hard error.
func (l *Loader) Load() (*Library, error) {
	library := NewLibrary()
	for _, category := range Categories() {
		library.Put(NewCorpus(category))
	}

	if _, err := os.Stat(l.rootDir); err != nil {
		return library, nil
	}

	// First pass collects matching paths per category so file contents are
	// read only for artifacts that belong somewhere.
	matched := make(map[string][]string)
	err := filepath.Walk(l.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(l.rootDir, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		for _, category := range Categories() {
			if matchesAny(relPath, l.patterns[category]) {
				matched[category] = append(matched[category], path)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", l.rootDir, err)
	}

	for _, category := range Categories() {
		c := library.Category(category)
		for _, path := range matched[category] {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("failed to read %s artifact %s: %w", category, path, err)
			}
			c.Add(ArtifactName(filepath.Base(path)), string(data))
		}
		library.Put(c)
	}

	return library, nil
}

// Matches reports whether a root-relative path belongs to any category.
// The watcher uses this to ignore irrelevant file events.
func (l *Loader) Matches(relPath string) bool {
	relPath = filepath.ToSlash(relPath)
	for _, pats := range l.patterns {
		if matchesAny(relPath, pats) {
			return true
		}
	}
	return false
}

func matchesAny(path string, patterns []compiledPattern) bool {
	for _, cp := range patterns {
		if cp.glob.Match(path) {
			return true
		}
		if cp.rootGlob != nil && cp.rootGlob.Match(path) {
			return true
		}
	}
	return false
}

// metaSuffix trails every source-format metadata descriptor file name.
const metaSuffix = "-meta.xml"

// typeExtensions are the metadata type tags that remain after stripping the
// meta suffix and are dropped from artifact names. Plain source extensions
// (.cls, .trigger, .js, .html, .cmp) are kept so companion files in mixed
// corpora stay distinguishable.
var typeExtensions = map[string]bool{
	".layout":         true,
	".flow":           true,
	".validationRule": true,
	".duplicateRule":  true,
	".recordType":     true,
	".flexipage":      true,
	".report":         true,
	".profile":        true,
	".permissionset":  true,
	".object":         true,
	".field":          true,
}

// ArtifactName derives the reported artifact identifier from a file name:
// "Account-Sales Layout.layout-meta.xml" becomes "Account-Sales Layout",
// while "AccountHelper.cls" stays as is.
func ArtifactName(base string) string {
	name := strings.TrimSuffix(base, metaSuffix)
	if ext := filepath.Ext(name); typeExtensions[ext] {
		name = strings.TrimSuffix(name, ext)
	}
	return name
}
