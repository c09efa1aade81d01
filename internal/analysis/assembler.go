package analysis

import (
	"log"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/gbshahaq/sf-field-analysis/internal/metadata"
)

// ProgressReporter receives assembly progress for user display.
type ProgressReporter interface {
	Start(total int)
	Increment()
	Finish()
}

type noopProgress struct{}

func (noopProgress) Start(int)  {}
func (noopProgress) Increment() {}
func (noopProgress) Finish()    {}

// NoProgress discards progress updates.
var NoProgress ProgressReporter = noopProgress{}

// Stats summarizes one assembly run.
type Stats struct {
	// Parsed counts field documents that produced a row.
	Parsed int
	// Skipped counts malformed documents that were warned about and dropped.
	Skipped int
}

// Assembler produces the local row set for one object: every field document
// in the fields directory becomes a Row with its references resolved.
type Assembler struct {
	collector *Collector
	workers   int
	progress  ProgressReporter
}

// NewAssembler builds an assembler. workers bounds field-level parallelism;
// values below one fall back to the CPU count. progress may be nil.
func NewAssembler(collector *Collector, workers int, progress ProgressReporter) *Assembler {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if progress == nil {
		progress = NoProgress
	}
	return &Assembler{collector: collector, workers: workers, progress: progress}
}

// Assemble parses every field document under fieldsDir and resolves its
// references. A missing directory or an empty one is a terminal error; a
// single malformed document is warned about and skipped without aborting
// the batch. dates supplies LastModifiedDate values keyed by lowercased
// developer name and may be nil.
//
// Fields are processed in parallel but rows keep the sorted document
// discovery order, so output is reproducible run to run.
func (a *Assembler) Assemble(fieldsDir string, dates map[string]string) ([]Row, Stats, error) {
	paths, err := metadata.DiscoverFieldDocuments(fieldsDir)
	if err != nil {
		return nil, Stats{}, err
	}

	a.progress.Start(len(paths))
	defer a.progress.Finish()

	results := make([]*Row, len(paths))

	g := new(errgroup.Group)
	g.SetLimit(a.workers)
	for i, path := range paths {
		g.Go(func() error {
			defer a.progress.Increment()

			field, err := metadata.ParseFieldFile(path)
			if err != nil {
				log.Printf("Warning: skipping field document %s: %v", path, err)
				return nil
			}
			results[i] = a.buildRow(field, dates)
			return nil
		})
	}
	_ = g.Wait()

	rows := make([]Row, 0, len(results))
	for _, r := range results {
		if r != nil {
			rows = append(rows, *r)
		}
	}

	return rows, Stats{Parsed: len(rows), Skipped: len(paths) - len(rows)}, nil
}

// buildRow maps a parsed descriptor plus its resolved references into the
// fixed row shape.
func (a *Assembler) buildRow(field *metadata.FieldDescriptor, dates map[string]string) *Row {
	refs := a.collector.Collect(field.Name)
	return &Row{
		FieldName:           field.Name,
		FieldLabel:          field.Label,
		Description:         field.Description,
		FieldType:           field.DataType,
		Formula:             field.Formula,
		FieldLength:         field.Length,
		LookupRef:           field.LookupTarget,
		Required:            field.Required,
		HistoryTracking:     field.HistoryTracked,
		PicklistValues:      field.PicklistValues,
		ControllingField:    field.ControllingField,
		LastModifiedDate:    lookupDate(dates, field.Name),
		Layouts:             refs.Layouts,
		Flexipages:          refs.Flexipages,
		RecordTypes:         refs.RecordTypes,
		References:          refs.References,
		ProfilesAndPermSets: refs.Access,
	}
}

// lookupDate resolves a field's LastModifiedDate case-insensitively. The
// org keys calculated fields by developer name without the custom suffix,
// so a miss on the plain name retries with the suffix appended. Absent
// entries yield an empty string, never an error.
func lookupDate(dates map[string]string, name string) string {
	if len(dates) == 0 {
		return ""
	}
	key := strings.ToLower(name)
	if date, ok := dates[key]; ok {
		return date
	}
	if date, ok := dates[key+metadata.CustomFieldSuffix]; ok {
		return date
	}
	return ""
}
