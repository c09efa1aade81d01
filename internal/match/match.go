// Package match locates field identifiers inside metadata artifact text.
package match

import (
	"fmt"
	"regexp"

	"github.com/maypok86/otter"
)

// Mode selects how identifiers are located in artifact text.
type Mode int

const (
	// WholeWord requires the identifier to stand alone between non-word
	// characters, so Balance__c never hits inside AccountBalance__c.
	WholeWord Mode = iota
	// Substring reports any occurrence regardless of surrounding characters.
	Substring
)

// String returns the mode name used in cache keys and logs.
func (m Mode) String() string {
	if m == Substring {
		return "substring"
	}
	return "word"
}

// maxCachedPatterns bounds the compiled-pattern cache. One entry is created
// per field and mode, so this comfortably covers repeated watch-mode runs
// against even very wide objects.
const maxCachedPatterns = 4096

// Matcher reports case-insensitive occurrences of field identifiers in
// artifact text. Every analysis probes each corpus artifact once per field,
// so compiled patterns are memoized across calls.
type Matcher struct {
	mode  Mode
	cache otter.Cache[string, *regexp.Regexp]
}

// NewMatcher builds a matcher with the given default mode.
func NewMatcher(mode Mode) (*Matcher, error) {
	cache, err := otter.MustBuilder[string, *regexp.Regexp](maxCachedPatterns).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build pattern cache: %w", err)
	}
	return &Matcher{mode: mode, cache: cache}, nil
}

// Contains reports whether identifier occurs in text under the matcher's
// default mode. Empty text or identifier never matches.
func (m *Matcher) Contains(text, identifier string) bool {
	return m.ContainsMode(text, identifier, m.mode)
}

// ContainsMode is Contains with an explicit mode.
func (m *Matcher) ContainsMode(text, identifier string, mode Mode) bool {
	if text == "" || identifier == "" {
		return false
	}
	return m.pattern(identifier, mode).MatchString(text)
}

// Close releases the pattern cache.
func (m *Matcher) Close() {
	m.cache.Close()
}

// pattern returns the compiled expression for identifier under mode,
// building and caching it on first use. Identifiers are quoted before
// compilation, so metadata API names can never inject regex syntax.
// Word boundaries are sound here because Salesforce API names begin and
// end with word characters.
func (m *Matcher) pattern(identifier string, mode Mode) *regexp.Regexp {
	key := mode.String() + ":" + identifier
	if re, ok := m.cache.Get(key); ok {
		return re
	}

	expr := `(?i)` + regexp.QuoteMeta(identifier)
	if mode == WholeWord {
		expr = `(?i)\b` + regexp.QuoteMeta(identifier) + `\b`
	}
	re := regexp.MustCompile(expr)
	m.cache.Set(key, re)
	return re
}
