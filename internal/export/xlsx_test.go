package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/gbshahaq/sf-field-analysis/internal/analysis"
)

// Test Plan for the xlsx exporter:
// - Workbook has the Field Dictionary sheet with the contract header
// - Scalar and multi-value cells land in the right columns
// - Multi-value cells are newline-joined
// - Zero rows still produce a workbook with the header

func TestXLSXExporter_Export(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.xlsx")
	exporter, err := New(FormatXLSX)
	require.NoError(t, err)
	require.NoError(t, exporter.Export(path, sampleRun(), sampleRows()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	idx, err := f.GetSheetIndex(sheetName)
	require.NoError(t, err)
	assert.NotEqual(t, -1, idx)

	header, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.NotEmpty(t, header)
	assert.Equal(t, analysis.Columns, header[0])

	cell := func(ref string) string {
		v, err := f.GetCellValue(sheetName, ref)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "Balance__c", cell("A2"))
	assert.Equal(t, "Currency", cell("D2"))
	assert.Equal(t, "18, 2", cell("F2"))
	// Layouts (column M) join with a newline inside one cell.
	assert.Equal(t, "Account-Sales Layout\nAccount-Support Layout", cell("M2"))
	assert.Equal(t, "Apex: AccountHelper.cls\nFlow: Recalculate_Balance", cell("P2"))
	assert.Equal(t, "Profile: Admin", cell("Q2"))

	assert.Equal(t, "Priority__c", cell("A3"))
	assert.Equal(t, "High, Low", cell("J3"))
	assert.Equal(t, "", cell("M3"))
}

func TestXLSXExporter_NoRows(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "empty.xlsx")
	exporter, err := New(FormatXLSX)
	require.NoError(t, err)
	require.NoError(t, exporter.Export(path, sampleRun(), nil))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, analysis.Columns, rows[0])
}
