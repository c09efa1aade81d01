package salesforce

import (
	"context"

	"github.com/gbshahaq/sf-field-analysis/internal/analysis"
)

// MockClient is a canned-response implementation of Client for tests.
type MockClient struct {
	Dates          map[string]string
	Inventory      []analysis.RemoteField
	DatesError     error
	InventoryError error

	// Call counters for asserting interaction.
	FieldDatesCalls     int
	FieldInventoryCalls int
}

// NewMockClient creates a mock with empty, non-nil responses.
func NewMockClient() *MockClient {
	return &MockClient{
		Dates:     map[string]string{},
		Inventory: []analysis.RemoteField{},
	}
}

func (m *MockClient) FieldDates(ctx context.Context, object string) (map[string]string, error) {
	m.FieldDatesCalls++
	if m.DatesError != nil {
		return nil, m.DatesError
	}
	return m.Dates, nil
}

func (m *MockClient) FieldInventory(ctx context.Context, object string) ([]analysis.RemoteField, error) {
	m.FieldInventoryCalls++
	if m.InventoryError != nil {
		return nil, m.InventoryError
	}
	return m.Inventory, nil
}
