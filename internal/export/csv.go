package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/gbshahaq/sf-field-analysis/internal/analysis"
)

// csvListSeparator joins multi-value cells in csv output, where embedded
// newlines would be awkward for downstream tools.
const csvListSeparator = "; "

// csvExporter writes a plain csv with the standard header row.
type csvExporter struct{}

func (e *csvExporter) Export(path string, run Run, rows []analysis.Row) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(analysis.Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i := range rows {
		if err := w.Write(rows[i].Cells(csvListSeparator)); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", rows[i].FieldName, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}

	return file.Close()
}
