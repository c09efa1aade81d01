package corpus

// Metadata categories searched for field references. Category names double
// as configuration keys for the per-category glob patterns.
const (
	CategoryApex            = "apex"
	CategoryFlows           = "flows"
	CategoryValidationRules = "validationRules"
	CategoryDuplicateRules  = "duplicateRules"
	CategoryLayouts         = "layouts"
	CategoryRecordTypes     = "recordTypes"
	CategoryFlexipages      = "flexipages"
	CategoryReports         = "reports"
	CategoryEmailTemplates  = "emailTemplates"
	CategoryLWC             = "lwc"
	CategoryAura            = "aura"
	CategoryProfiles        = "profiles"
	CategoryPermissionSets  = "permissionSets"
)

// Categories returns every known corpus category in a fixed order. The
// order is part of the output contract: scans iterate categories this way
// so reference listings are stable between runs.
func Categories() []string {
	return []string{
		CategoryApex,
		CategoryFlows,
		CategoryValidationRules,
		CategoryDuplicateRules,
		CategoryLayouts,
		CategoryRecordTypes,
		CategoryFlexipages,
		CategoryReports,
		CategoryEmailTemplates,
		CategoryLWC,
		CategoryAura,
		CategoryProfiles,
		CategoryPermissionSets,
	}
}

// Corpus is a named, insertion-ordered mapping from artifact name to full
// text content. It is populated once by the loader and read-only afterwards,
// so concurrent readers need no locking.
type Corpus struct {
	category string
	names    []string
	texts    map[string]string
}

// NewCorpus creates an empty corpus for the given category.
func NewCorpus(category string) *Corpus {
	return &Corpus{
		category: category,
		texts:    make(map[string]string),
	}
}

// Category returns the metadata category this corpus covers.
func (c *Corpus) Category() string {
	return c.category
}

// Add records an artifact's text. Adding the same artifact name again
// appends the text, which keeps companion files (a component and its
// metadata descriptor sharing one name) searchable under a single artifact.
func (c *Corpus) Add(artifact, text string) {
	if existing, ok := c.texts[artifact]; ok {
		c.texts[artifact] = existing + "\n" + text
		return
	}
	c.names = append(c.names, artifact)
	c.texts[artifact] = text
}

// Artifacts returns artifact names in insertion order. Callers must not
// mutate the returned slice.
func (c *Corpus) Artifacts() []string {
	return c.names
}

// Text returns the content stored for an artifact, or "" if unknown.
func (c *Corpus) Text(artifact string) string {
	return c.texts[artifact]
}

// Len returns the number of artifacts in the corpus.
func (c *Corpus) Len() int {
	return len(c.names)
}

// Library holds one corpus per metadata category. Categories that were
// never loaded read back as empty corpora, never nil: an absent category is
// simply no matches, not an error.
type Library struct {
	corpora map[string]*Corpus
}

// NewLibrary creates an empty library.
func NewLibrary() *Library {
	return &Library{corpora: make(map[string]*Corpus)}
}

// Put stores a corpus under its category, replacing any previous one.
func (l *Library) Put(c *Corpus) {
	l.corpora[c.Category()] = c
}

// Category returns the corpus for a category, or an empty corpus when the
// category was never loaded.
func (l *Library) Category(name string) *Corpus {
	if c, ok := l.corpora[name]; ok {
		return c
	}
	return NewCorpus(name)
}

// TotalArtifacts counts artifacts across all loaded corpora.
func (l *Library) TotalArtifacts() int {
	total := 0
	for _, c := range l.corpora {
		total += c.Len()
	}
	return total
}
