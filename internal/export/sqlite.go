package export

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/gbshahaq/sf-field-analysis/internal/analysis"
)

// The sqlite exporter appends: every export adds a run row plus its field
// rows, so one database accumulates dictionary history across runs.

const createRunsTable = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	object_name TEXT NOT NULL,
	project_dir TEXT NOT NULL,
	branch TEXT NOT NULL,
	commit_sha TEXT NOT NULL,
	field_count INTEGER NOT NULL,
	created_at TEXT NOT NULL
)`

// "references" is reserved in SQL, hence references_list.
const createFieldsTable = `
CREATE TABLE IF NOT EXISTS fields (
	run_id TEXT NOT NULL REFERENCES runs(run_id),
	field_name TEXT NOT NULL,
	field_label TEXT NOT NULL,
	description TEXT NOT NULL,
	field_type TEXT NOT NULL,
	formula TEXT NOT NULL,
	field_length TEXT NOT NULL,
	lookup_ref TEXT NOT NULL,
	required TEXT NOT NULL,
	history_tracking TEXT NOT NULL,
	picklist_values TEXT NOT NULL,
	controlling_field TEXT NOT NULL,
	last_modified_date TEXT NOT NULL,
	layouts TEXT NOT NULL,
	flexipages TEXT NOT NULL,
	record_types TEXT NOT NULL,
	references_list TEXT NOT NULL,
	profiles_perm_sets TEXT NOT NULL,
	PRIMARY KEY (run_id, field_name)
)`

const createFieldNameIndex = `
CREATE INDEX IF NOT EXISTS idx_fields_field_name ON fields(field_name)`

var fieldColumns = []string{
	"run_id",
	"field_name",
	"field_label",
	"description",
	"field_type",
	"formula",
	"field_length",
	"lookup_ref",
	"required",
	"history_tracking",
	"picklist_values",
	"controlling_field",
	"last_modified_date",
	"layouts",
	"flexipages",
	"record_types",
	"references_list",
	"profiles_perm_sets",
}

// sqliteExporter writes rows into a sqlite database for ad-hoc querying.
type sqliteExporter struct{}

func (e *sqliteExporter) Export(path string, run Run, rows []analysis.Row) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("failed to open database %s: %w", path, err)
	}
	defer db.Close()

	if err := createSchema(db); err != nil {
		return err
	}

	runID := uuid.NewString()
	createdAt := run.Timestamp
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // Safe to call even after commit

	_, err = sq.Insert("runs").
		Columns("run_id", "object_name", "project_dir", "branch", "commit_sha", "field_count", "created_at").
		Values(runID, run.Object, run.ProjectDir, run.Branch, run.Commit, len(rows), createdAt.UTC().Format(time.RFC3339)).
		RunWith(tx).
		Exec()
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}

	if err := insertFields(tx, runID, rows); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit export: %w", err)
	}
	return nil
}

// createSchema creates the runs and fields tables on first use.
func createSchema(db *sql.DB) error {
	statements := []struct {
		name string
		ddl  string
	}{
		{"runs", createRunsTable},
		{"fields", createFieldsTable},
		{"fields index", createFieldNameIndex},
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt.ddl); err != nil {
			return fmt.Errorf("failed to create %s: %w", stmt.name, err)
		}
	}
	return nil
}

// insertFields writes all field rows through one prepared statement.
func insertFields(tx *sql.Tx, runID string, rows []analysis.Row) error {
	builder := sq.Insert("fields").Columns(fieldColumns...)

	dummy := make([]interface{}, len(fieldColumns))
	for i := range dummy {
		dummy[i] = ""
	}
	sqlStr, _, err := builder.Values(dummy...).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert: %w", err)
	}

	stmt, err := tx.Prepare(sqlStr)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i := range rows {
		row := &rows[i]
		layouts, err := jsonList(row.Layouts)
		if err != nil {
			return err
		}
		flexipages, err := jsonList(row.Flexipages)
		if err != nil {
			return err
		}
		recordTypes, err := jsonList(row.RecordTypes)
		if err != nil {
			return err
		}
		references, err := jsonList(row.References)
		if err != nil {
			return err
		}
		access, err := jsonList(row.ProfilesAndPermSets)
		if err != nil {
			return err
		}

		_, err = stmt.Exec(
			runID,
			row.FieldName,
			row.FieldLabel,
			row.Description,
			row.FieldType,
			row.Formula,
			row.FieldLength,
			row.LookupRef,
			row.Required,
			row.HistoryTracking,
			row.PicklistValues,
			row.ControllingField,
			row.LastModifiedDate,
			layouts,
			flexipages,
			recordTypes,
			references,
			access,
		)
		if err != nil {
			return fmt.Errorf("failed to insert field %s: %w", row.FieldName, err)
		}
	}
	return nil
}

// jsonList encodes a usage list as a JSON array; nil encodes as [].
func jsonList(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("failed to encode list: %w", err)
	}
	return string(data), nil
}
