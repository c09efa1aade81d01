package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/gbshahaq/sf-field-analysis/internal/analysis"
)

// sheetName is the single worksheet holding the dictionary.
const sheetName = "Field Dictionary"

// Column width bounds in Excel character units.
const (
	minColWidth = 12
	maxColWidth = 60
)

// xlsxExporter writes the workbook format, the primary output for admins.
// Multi-value cells are newline-joined; the header row is bold and frozen.
type xlsxExporter struct{}

func (e *xlsxExporter) Export(path string, run Run, rows []analysis.Row) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetName)

	header := make([]interface{}, len(analysis.Columns))
	for i, col := range analysis.Columns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	widths := make([]int, len(analysis.Columns))
	for i, col := range analysis.Columns {
		widths[i] = len(col)
	}

	for i, row := range rows {
		cells := row.Cells("\n")
		values := make([]interface{}, len(cells))
		for j, cell := range cells {
			values[j] = cell
			if w := longestLine(cell); w > widths[j] {
				widths[j] = w
			}
		}
		anchor, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, anchor, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := e.styleHeader(f); err != nil {
		return err
	}
	if err := e.sizeColumns(f, widths); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// styleHeader bolds the header row and freezes it above the scroll area.
func (e *xlsxExporter) styleHeader(f *excelize.File) error {
	styleID, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	lastCell, err := excelize.CoordinatesToCellName(len(analysis.Columns), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, "A1", lastCell, styleID); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	return f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

// sizeColumns widens each column to its longest line, within bounds.
func (e *xlsxExporter) sizeColumns(f *excelize.File, widths []int) error {
	for i, w := range widths {
		if w < minColWidth {
			w = minColWidth
		}
		if w > maxColWidth {
			w = maxColWidth
		}
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheetName, name, name, float64(w)+2); err != nil {
			return fmt.Errorf("failed to size column %s: %w", name, err)
		}
	}
	return nil
}

// longestLine measures the widest line of a possibly multi-line cell.
func longestLine(cell string) int {
	longest, current := 0, 0
	for _, r := range cell {
		if r == '\n' {
			if current > longest {
				longest = current
			}
			current = 0
			continue
		}
		current++
	}
	if current > longest {
		longest = current
	}
	return longest
}
