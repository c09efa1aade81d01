package analysis

import (
	"github.com/gbshahaq/sf-field-analysis/internal/corpus"
	"github.com/gbshahaq/sf-field-analysis/internal/match"
)

// ReferenceSet groups everywhere one field identifier was found. Slices are
// always non-nil so exporters can join them without guards.
type ReferenceSet struct {
	// References holds "Category: artifact" entries from the automation and
	// reporting corpora.
	References []string
	// Layouts, Flexipages and RecordTypes hold bare artifact names; their
	// category is implied by the column they land in.
	Layouts     []string
	Flexipages  []string
	RecordTypes []string
	// Access holds "Profile: name" and "PermSet: name" entries.
	Access []string
}

// referenceLabels maps the labelled reference corpora to their column
// prefixes, in reporting order.
var referenceLabels = []struct {
	category string
	label    string
}{
	{corpus.CategoryApex, "Apex"},
	{corpus.CategoryFlows, "Flow"},
	{corpus.CategoryValidationRules, "ValidationRule"},
	{corpus.CategoryDuplicateRules, "DuplicateRule"},
	{corpus.CategoryReports, "Report"},
	{corpus.CategoryEmailTemplates, "EmailTemplate"},
	{corpus.CategoryLWC, "LWC"},
	{corpus.CategoryAura, "Aura"},
}

// accessLabels maps the access-control corpora to their prefixes.
var accessLabels = []struct {
	category string
	label    string
}{
	{corpus.CategoryProfiles, "Profile"},
	{corpus.CategoryPermissionSets, "PermSet"},
}

// Collector resolves every usage of a field identifier across the loaded
// corpora. The library is read-only after loading, so one collector is
// safely shared by concurrent field workers.
type Collector struct {
	library *corpus.Library
	matcher *match.Matcher
}

// NewCollector builds a collector over an already-loaded library.
func NewCollector(library *corpus.Library, matcher *match.Matcher) *Collector {
	return &Collector{library: library, matcher: matcher}
}

// Collect scans every artifact of every corpus for the identifier. Scans
// are exhaustive: all matching artifacts are reported, in each corpus's own
// iteration order, and that order is stable between runs for the same
// inputs.
func (c *Collector) Collect(identifier string) ReferenceSet {
	set := ReferenceSet{
		References:  []string{},
		Layouts:     []string{},
		Flexipages:  []string{},
		RecordTypes: []string{},
		Access:      []string{},
	}

	for _, rl := range referenceLabels {
		set.References = append(set.References, c.labelled(rl.category, rl.label, identifier)...)
	}

	set.Layouts = c.names(corpus.CategoryLayouts, identifier)
	set.Flexipages = c.names(corpus.CategoryFlexipages, identifier)
	set.RecordTypes = c.names(corpus.CategoryRecordTypes, identifier)

	for _, al := range accessLabels {
		set.Access = append(set.Access, c.labelled(al.category, al.label, identifier)...)
	}

	return set
}

// labelled returns "label: artifact" for every artifact in the category
// whose text contains the identifier.
func (c *Collector) labelled(category, label, identifier string) []string {
	var hits []string
	cp := c.library.Category(category)
	for _, name := range cp.Artifacts() {
		if c.matcher.Contains(cp.Text(name), identifier) {
			hits = append(hits, label+": "+name)
		}
	}
	return hits
}

// names returns the bare artifact names in the category whose text contains
// the identifier.
func (c *Collector) names(category, identifier string) []string {
	hits := []string{}
	cp := c.library.Category(category)
	for _, name := range cp.Artifacts() {
		if c.matcher.Contains(cp.Text(name), identifier) {
			hits = append(hits, name)
		}
	}
	return hits
}
