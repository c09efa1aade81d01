package metadata

// CustomFieldSuffix is the developer-name suffix Salesforce appends to
// custom field API names. Org-side records key dates by DeveloperName
// without this suffix, so lookups alias both spellings.
const CustomFieldSuffix = "__c"

// Field data types that carry special extraction rules. The parser passes
// every other type value through verbatim without validating it.
const (
	TypeText         = "Text"
	TypeHtml         = "Html"
	TypeLongTextArea = "LongTextArea"
	TypeNumber       = "Number"
	TypeCurrency     = "Currency"
	TypeLookup       = "Lookup"
	TypePicklist     = "Picklist"
)

// FieldDescriptor is the normalized representation of one field definition
// document. Absent structural data is an empty string, never omitted, so
// downstream consumers (exporters, the merge step) see a fixed shape.
type FieldDescriptor struct {
	// Name is the field's API name within its object. Never empty for a
	// descriptor returned without error.
	Name        string
	Label       string
	Description string

	// DataType is the raw type value from the document, e.g. "Text",
	// "Number", "Picklist", "Lookup". Not validated against a closed set.
	DataType string

	// Formula holds the formula body verbatim for formula fields.
	Formula string

	// Length is presentation-oriented: raw length for Text/Html/
	// LongTextArea, "precision, scale" for Number/Currency, empty for
	// every other type.
	Length string

	// LookupTarget is the referenced object, populated only when DataType
	// is Lookup.
	LookupTarget string

	// Required is the literal string "TRUE" or "FALSE". Downstream
	// consumers match on these literals, so this is not a bool.
	Required string

	// HistoryTracked passes the trackHistory flag text through.
	HistoryTracked string

	// PicklistValues is either the comma-joined literal value list or the
	// name of a shared value set, never both.
	PicklistValues string

	// ControllingField is set for dependent picklists.
	ControllingField string
}
