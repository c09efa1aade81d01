// Package export renders assembled dictionary rows into the supported
// output formats: an xlsx workbook, a csv file or a sqlite database.
package export

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pkg/browser"

	"github.com/gbshahaq/sf-field-analysis/internal/analysis"
)

// Format names one supported output format.
type Format string

const (
	FormatXLSX   Format = "xlsx"
	FormatCSV    Format = "csv"
	FormatSQLite Format = "sqlite"
)

// Formats lists the supported formats for help text and validation.
func Formats() []Format {
	return []Format{FormatXLSX, FormatCSV, FormatSQLite}
}

// ParseFormat normalizes a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats() {
		if f == known {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q (supported: xlsx, csv, sqlite)", s)
}

// Run describes one analysis invocation for exporters that record
// provenance alongside the rows. Branch and Commit hold the project's
// git state at the time of the run; both may be empty.
type Run struct {
	Object     string
	ProjectDir string
	Branch     string
	Commit     string
	Timestamp  time.Time
}

// Exporter writes one run's rows to a file.
type Exporter interface {
	Export(path string, run Run, rows []analysis.Row) error
}

// New returns the exporter for a format.
func New(format Format) (Exporter, error) {
	switch format {
	case FormatXLSX:
		return &xlsxExporter{}, nil
	case FormatCSV:
		return &csvExporter{}, nil
	case FormatSQLite:
		return &sqliteExporter{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (supported: xlsx, csv, sqlite)", format)
	}
}

// DefaultPath names the output file for an object when the user does not
// choose one, e.g. "Account_field_analysis.xlsx".
func DefaultPath(object string, format Format) string {
	ext := map[Format]string{
		FormatXLSX:   ".xlsx",
		FormatCSV:    ".csv",
		FormatSQLite: ".db",
	}[format]
	return object + "_field_analysis" + ext
}

// Open hands an exported file to the OS default application.
func Open(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("cannot open %s: %w", path, err)
	}
	return browser.OpenFile(path)
}
