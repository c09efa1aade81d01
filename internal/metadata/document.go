package metadata

import "encoding/xml"

// fieldDocument mirrors the CustomField metadata XML shape. Only the
// elements the dictionary reports are mapped; everything else in the
// document is ignored by encoding/xml.
type fieldDocument struct {
	XMLName      xml.Name  `xml:"CustomField"`
	FullName     string    `xml:"fullName"`
	Label        string    `xml:"label"`
	Description  string    `xml:"description"`
	Type         string    `xml:"type"`
	Formula      string    `xml:"formula"`
	Length       string    `xml:"length"`
	Precision    string    `xml:"precision"`
	Scale        string    `xml:"scale"`
	ReferenceTo  string    `xml:"referenceTo"`
	Required     string    `xml:"required"`
	TrackHistory string    `xml:"trackHistory"`
	ValueSet     *valueSet `xml:"valueSet"`
}

// valueSet covers both picklist flavors: an inline value list under
// valueSetDefinition, or a reference to a shared set via valueSetName.
type valueSet struct {
	ControllingField string              `xml:"controllingField"`
	ValueSetName     string              `xml:"valueSetName"`
	Definition       *valueSetDefinition `xml:"valueSetDefinition"`
}

type valueSetDefinition struct {
	Values []picklistValue `xml:"value"`
}

type picklistValue struct {
	FullName string `xml:"fullName"`
}
