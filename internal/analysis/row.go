// Package analysis assembles field dictionary rows: it parses field
// documents, resolves every cross-reference through the loaded corpora and
// merges the org-wide field inventory into the local result set.
package analysis

import "strings"

// Row is one line of the field dictionary. The column set and order are a
// fixed contract shared by every exporter; downstream spreadsheets and
// scripts key on these exact labels.
type Row struct {
	FieldName           string
	FieldLabel          string
	Description         string
	FieldType           string
	Formula             string
	FieldLength         string
	LookupRef           string
	Required            string
	HistoryTracking     string
	PicklistValues      string
	ControllingField    string
	LastModifiedDate    string
	Layouts             []string
	Flexipages          []string
	RecordTypes         []string
	References          []string
	ProfilesAndPermSets []string
}

// Columns lists the exporter header labels in output order.
var Columns = []string{
	"FieldName",
	"FieldLabel",
	"Description",
	"FieldType",
	"Formula",
	"FieldLength",
	"LookupRef",
	"Required",
	"HistoryTracking",
	"PicklistValues",
	"ControllingField",
	"LastModifiedDate",
	"Layouts",
	"Flexipages",
	"RecordTypes",
	"References",
	"ProfilesAndPermSets",
}

// Cells renders the row as strings in Columns order. Multi-value columns
// are joined with listSep; exporters choose the separator that suits their
// format.
func (r *Row) Cells(listSep string) []string {
	return []string{
		r.FieldName,
		r.FieldLabel,
		r.Description,
		r.FieldType,
		r.Formula,
		r.FieldLength,
		r.LookupRef,
		r.Required,
		r.HistoryTracking,
		r.PicklistValues,
		r.ControllingField,
		r.LastModifiedDate,
		strings.Join(r.Layouts, listSep),
		strings.Join(r.Flexipages, listSep),
		strings.Join(r.RecordTypes, listSep),
		strings.Join(r.References, listSep),
		strings.Join(r.ProfilesAndPermSets, listSep),
	}
}
