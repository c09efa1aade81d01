package salesforce

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gbshahaq/sf-field-analysis/internal/analysis"
)

// Test Plan for the sf CLI client:
// - Envelope parsing: success unwraps records, failure surfaces the message
// - Date maps carry both developer-name and suffixed keys, lowercased
// - Alias keys never overwrite a real developer name
// - Inventory preserves record order and drops nameless records
// - SOQL builders embed the object name in the right clause

const successEnvelope = `{
  "status": 0,
  "result": {
    "records": [
      {
        "attributes": {"type": "CustomField", "url": "/services/data/v60.0/tooling/sobjects/CustomField/00N"},
        "DeveloperName": "Balance",
        "LastModifiedDate": "2024-03-01T09:00:00.000+0000"
      },
      {
        "attributes": {"type": "CustomField", "url": "/services/data/v60.0/tooling/sobjects/CustomField/00O"},
        "DeveloperName": "Score",
        "LastModifiedDate": "2023-11-20T16:30:00.000+0000"
      }
    ],
    "totalSize": 2,
    "done": true
  },
  "warnings": []
}`

const failureEnvelope = `{
  "status": 1,
  "name": "NoOrgFound",
  "message": "No default environment found.",
  "exitCode": 1,
  "warnings": []
}`

func TestParseQueryEnvelope(t *testing.T) {
	t.Parallel()

	records, err := parseQueryEnvelope([]byte(successEnvelope))
	require.NoError(t, err)
	assert.NotEmpty(t, records)

	_, err = parseQueryEnvelope([]byte(failureEnvelope))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No default environment found")

	_, err = parseQueryEnvelope([]byte("not json at all"))
	require.Error(t, err)

	_, err = parseQueryEnvelope([]byte(`{"status": 7}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 7")
}

func TestDatesFromRecords(t *testing.T) {
	t.Parallel()

	records, err := parseQueryEnvelope([]byte(successEnvelope))
	require.NoError(t, err)

	dates, err := datesFromRecords(records)
	require.NoError(t, err)

	assert.Equal(t, "2024-03-01T09:00:00.000+0000", dates["balance"])
	assert.Equal(t, "2024-03-01T09:00:00.000+0000", dates["balance__c"])
	assert.Equal(t, "2023-11-20T16:30:00.000+0000", dates["score__c"])
	assert.Len(t, dates, 4)
}

func TestDatesFromRecords_AliasNeverOverwrites(t *testing.T) {
	t.Parallel()

	// One record's alias collides with another record's real developer
	// name; the real name's date must survive.
	raw := []byte(`[
		{"DeveloperName": "Legacy", "LastModifiedDate": "2020-01-01"},
		{"DeveloperName": "Legacy__c", "LastModifiedDate": "2022-02-02"}
	]`)

	dates, err := datesFromRecords(raw)
	require.NoError(t, err)

	assert.Equal(t, "2020-01-01", dates["legacy"])
	assert.Equal(t, "2022-02-02", dates["legacy__c"])
}

func TestDatesFromRecords_Empty(t *testing.T) {
	t.Parallel()

	dates, err := datesFromRecords(nil)
	require.NoError(t, err)
	assert.Empty(t, dates)
}

func TestInventoryFromRecords(t *testing.T) {
	t.Parallel()

	raw := []byte(`[
		{"attributes": {"type": "FieldDefinition"}, "QualifiedApiName": "CreatedById", "DataType": "Lookup(User)"},
		{"attributes": {"type": "FieldDefinition"}, "QualifiedApiName": "Priority__c", "DataType": "Picklist"},
		{"attributes": {"type": "FieldDefinition"}, "QualifiedApiName": "", "DataType": "Text(80)"}
	]`)

	inventory, err := inventoryFromRecords(raw)
	require.NoError(t, err)

	assert.Equal(t, []analysis.RemoteField{
		{APIName: "CreatedById", DataType: "Lookup(User)"},
		{APIName: "Priority__c", DataType: "Picklist"},
	}, inventory)
}

func TestQueryBuilders(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		"SELECT DeveloperName, LastModifiedDate FROM CustomField WHERE TableEnumOrId = 'Account'",
		fieldDatesQuery("Account"))
	assert.Equal(t,
		"SELECT QualifiedApiName, DataType FROM FieldDefinition WHERE EntityDefinition.QualifiedApiName = 'Account' ORDER BY QualifiedApiName",
		fieldInventoryQuery("Account"))
}

func TestMockClient(t *testing.T) {
	t.Parallel()

	mock := NewMockClient()
	mock.Dates = map[string]string{"balance__c": "2024-01-01"}
	mock.Inventory = []analysis.RemoteField{{APIName: "Name", DataType: "Text(255)"}}

	ctx := context.Background()
	dates, err := mock.FieldDates(ctx, "Account")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", dates["balance__c"])

	inventory, err := mock.FieldInventory(ctx, "Account")
	require.NoError(t, err)
	assert.Len(t, inventory, 1)

	assert.Equal(t, 1, mock.FieldDatesCalls)
	assert.Equal(t, 1, mock.FieldInventoryCalls)
}
