package export

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gbshahaq/sf-field-analysis/internal/analysis"
)

// Test Plan for export dispatch:
// - ParseFormat accepts the three formats, any case, and rejects the rest
// - New returns the matching exporter per format
// - DefaultPath derives object-named files with format extensions
// - Open fails cleanly for files that do not exist

// sampleRows returns two rows covering populated and empty list columns.
func sampleRows() []analysis.Row {
	return []analysis.Row{
		{
			FieldName:           "Balance__c",
			FieldLabel:          "Balance",
			FieldType:           "Currency",
			FieldLength:         "18, 2",
			Required:            "FALSE",
			HistoryTracking:     "true",
			LastModifiedDate:    "2024-03-01T09:00:00.000+0000",
			Layouts:             []string{"Account-Sales Layout", "Account-Support Layout"},
			Flexipages:          []string{},
			RecordTypes:         []string{"Business"},
			References:          []string{"Apex: AccountHelper.cls", "Flow: Recalculate_Balance"},
			ProfilesAndPermSets: []string{"Profile: Admin"},
		},
		{
			FieldName:           "Priority__c",
			FieldLabel:          "Priority",
			FieldType:           "Picklist",
			PicklistValues:      "High, Low",
			Required:            "TRUE",
			Layouts:             []string{},
			Flexipages:          []string{},
			RecordTypes:         []string{},
			References:          []string{},
			ProfilesAndPermSets: []string{},
		},
	}
}

func sampleRun() Run {
	return Run{
		Object:     "Account",
		ProjectDir: "/work/crm",
		Branch:     "main",
		Commit:     "abc1234",
		Timestamp:  time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected Format
		wantErr  bool
	}{
		{"xlsx", FormatXLSX, false},
		{"XLSX", FormatXLSX, false},
		{" csv ", FormatCSV, false},
		{"sqlite", FormatSQLite, false},
		{"xls", "", true},
		{"", "", true},
		{"parquet", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			format, err := ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, format)
		})
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	for _, format := range Formats() {
		exporter, err := New(format)
		require.NoError(t, err)
		assert.NotNil(t, exporter)
	}

	_, err := New(Format("tsv"))
	require.Error(t, err)
}

func TestDefaultPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Account_field_analysis.xlsx", DefaultPath("Account", FormatXLSX))
	assert.Equal(t, "Order__c_field_analysis.csv", DefaultPath("Order__c", FormatCSV))
	assert.Equal(t, "Account_field_analysis.db", DefaultPath("Account", FormatSQLite))
}

func TestOpen_MissingFile(t *testing.T) {
	t.Parallel()

	err := Open(filepath.Join(t.TempDir(), "absent.xlsx"))
	require.Error(t, err)
}
