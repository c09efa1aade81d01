package metadata

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FieldDocumentSuffix identifies field definition documents in a source
// format project.
const FieldDocumentSuffix = ".field-meta.xml"

var (
	// ErrFieldsDirNotFound indicates the field-definitions directory does
	// not exist. This is a fatal configuration error for the run.
	ErrFieldsDirNotFound = errors.New("fields location not found")

	// ErrNoFieldDocuments indicates the directory exists but holds no
	// field definition documents. Also fatal.
	ErrNoFieldDocuments = errors.New("no field documents discovered")
)

// ParseField converts one field definition document into a FieldDescriptor.
// A document whose root element is not CustomField, or that carries no
// fullName, is a parse error; callers skip such documents rather than
// aborting the batch.
func ParseField(data []byte) (*FieldDescriptor, error) {
	var doc fieldDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("not a field definition document: %w", err)
	}
	if strings.TrimSpace(doc.FullName) == "" {
		return nil, errors.New("field definition document has no fullName")
	}

	desc := &FieldDescriptor{
		Name:           doc.FullName,
		Label:          doc.Label,
		Description:    doc.Description,
		DataType:       doc.Type,
		Formula:        doc.Formula,
		Length:         deriveLength(&doc),
		Required:       deriveRequired(doc.Required),
		HistoryTracked: doc.TrackHistory,
	}

	// The reference target is forced empty for every non-lookup type even
	// when the document carries one. Stray referenceTo data on other field
	// types must not leak into the dictionary.
	if doc.Type == TypeLookup {
		desc.LookupTarget = doc.ReferenceTo
	}

	desc.PicklistValues, desc.ControllingField = derivePicklist(doc.ValueSet)

	return desc, nil
}

// ParseFieldFile reads and parses a single field definition document.
func ParseFieldFile(path string) (*FieldDescriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read field document: %w", err)
	}
	return ParseField(data)
}

// DiscoverFieldDocuments lists the field definition documents under dir in
// sorted order. The two sentinel errors distinguish a missing directory
// from a present but empty one; both are terminal for the caller.
func DiscoverFieldDocuments(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrFieldsDirNotFound, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list field documents in %s: %w", dir, err)
	}

	var docs []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), FieldDocumentSuffix) {
			docs = append(docs, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(docs)

	if len(docs) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoFieldDocuments, dir)
	}
	return docs, nil
}

// FindFieldsDir locates the object's field-definitions directory under
// root by walking for an objects/<object>/fields path. The object segment
// is matched case-insensitively. Hidden directories and node_modules are
// not descended into.
func FindFieldsDir(root, object string) (string, error) {
	var found string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if path != root && (name == "node_modules" || strings.HasPrefix(name, ".")) {
			return filepath.SkipDir
		}
		if name != "fields" {
			return nil
		}
		parent := filepath.Dir(path)
		if !strings.EqualFold(filepath.Base(parent), object) {
			return nil
		}
		if filepath.Base(filepath.Dir(parent)) != "objects" {
			return nil
		}
		found = path
		return filepath.SkipAll
	})
	if err != nil {
		return "", fmt.Errorf("%w: cannot walk %s: %v", ErrFieldsDirNotFound, root, err)
	}
	if found == "" {
		return "", fmt.Errorf("%w: no objects/%s/fields directory under %s", ErrFieldsDirNotFound, object, root)
	}
	return found, nil
}

// deriveLength applies the per-type length rule. Text-class types report
// the raw length attribute. Numeric types report precision and scale,
// skipping whichever is absent. Every other type is always empty, even when
// length-like attributes happen to exist in the document.
func deriveLength(doc *fieldDocument) string {
	switch doc.Type {
	case TypeText, TypeHtml, TypeLongTextArea:
		return doc.Length
	case TypeNumber, TypeCurrency:
		parts := make([]string, 0, 2)
		if doc.Precision != "" {
			parts = append(parts, doc.Precision)
		}
		if doc.Scale != "" {
			parts = append(parts, doc.Scale)
		}
		return strings.Join(parts, ", ")
	default:
		return ""
	}
}

// deriveRequired maps the raw required attribute onto the literal "TRUE"
// or "FALSE" strings downstream consumers match on. Anything that is not
// literally "true" after lower-casing, including absence, is "FALSE".
func deriveRequired(raw string) string {
	if strings.ToLower(raw) == "true" {
		return "TRUE"
	}
	return "FALSE"
}

// derivePicklist resolves the picklist branch in precedence order: literal
// values win over a shared value set name, and the controlling field is
// read independently of which branch fired.
func derivePicklist(vs *valueSet) (values, controlling string) {
	if vs == nil {
		return "", ""
	}
	controlling = vs.ControllingField

	if vs.Definition != nil && len(vs.Definition.Values) > 0 {
		names := make([]string, 0, len(vs.Definition.Values))
		for _, v := range vs.Definition.Values {
			names = append(names, v.FullName)
		}
		return strings.Join(names, ", "), controlling
	}
	if vs.ValueSetName != "" {
		return vs.ValueSetName, controlling
	}
	return "", controlling
}
