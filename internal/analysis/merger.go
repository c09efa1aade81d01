package analysis

import "strings"

// RemoteField is one entry of the org-wide field inventory: the qualified
// API name and its display data type. The inventory covers fields that have
// no document in the repository (standard fields, managed-package fields,
// fields deployed from elsewhere).
type RemoteField struct {
	APIName  string
	DataType string
}

// MergeRemote extends rows with a synthesized Row for every remote field
// that has no local descriptor. Local rows always win: a remote API name
// matching an existing FieldName case-insensitively contributes nothing, so
// merging the same inventory twice is a no-op. Synthesized rows carry only
// the data type, Required "FALSE" and computed references; the inventory
// supplies no descriptor detail, so those columns stay empty.
func MergeRemote(collector *Collector, rows []Row, remote []RemoteField) []Row {
	seen := make(map[string]bool, len(rows))
	for _, r := range rows {
		seen[strings.ToLower(r.FieldName)] = true
	}

	merged := rows
	for _, rf := range remote {
		key := strings.ToLower(rf.APIName)
		if rf.APIName == "" || seen[key] {
			continue
		}
		seen[key] = true

		refs := collector.Collect(rf.APIName)
		merged = append(merged, Row{
			FieldName:           rf.APIName,
			FieldType:           rf.DataType,
			Required:            "FALSE",
			Layouts:             refs.Layouts,
			Flexipages:          refs.Flexipages,
			RecordTypes:         refs.RecordTypes,
			References:          refs.References,
			ProfilesAndPermSets: refs.Access,
		})
	}

	return merged
}
