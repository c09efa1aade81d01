// Package salesforce talks to the org through the sf CLI. It supplies the
// two optional remote inputs of an analysis run: last-modified dates for
// the object's custom fields and the org's full field inventory.
package salesforce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/gbshahaq/sf-field-analysis/internal/analysis"
	"github.com/gbshahaq/sf-field-analysis/internal/metadata"
)

// Client defines the remote enumeration operations. Both are optional for
// an analysis run: callers degrade to local-only output when either fails.
type Client interface {
	// FieldDates returns LastModifiedDate values keyed by lowercased
	// developer name. Each date is stored under the bare name and, where
	// that key is free, under the name with the custom-field suffix, so a
	// lookup by either naming convention succeeds.
	FieldDates(ctx context.Context, object string) (map[string]string, error)

	// FieldInventory returns every field the org knows on the object as
	// (QualifiedApiName, DataType) pairs, ordered by API name.
	FieldInventory(ctx context.Context, object string) ([]analysis.RemoteField, error)
}

// queryTimeout bounds one sf CLI invocation.
const queryTimeout = 60 * time.Second

// cliClient is the real implementation shelling out to the sf binary.
type cliClient struct {
	binary    string
	targetOrg string
}

// NewClient returns a Client backed by the sf CLI. targetOrg may be empty
// to use the CLI's default org.
func NewClient(targetOrg string) Client {
	return &cliClient{binary: "sf", targetOrg: targetOrg}
}

func (c *cliClient) FieldDates(ctx context.Context, object string) (map[string]string, error) {
	raw, err := c.runQuery(ctx, fieldDatesQuery(object))
	if err != nil {
		return nil, err
	}
	return datesFromRecords(raw)
}

func (c *cliClient) FieldInventory(ctx context.Context, object string) ([]analysis.RemoteField, error) {
	raw, err := c.runQuery(ctx, fieldInventoryQuery(object))
	if err != nil {
		return nil, err
	}
	return inventoryFromRecords(raw)
}

// fieldDatesQuery selects custom field audit dates from the Tooling API.
// CustomField keys rows by DeveloperName, which drops the __c suffix.
func fieldDatesQuery(object string) string {
	return fmt.Sprintf("SELECT DeveloperName, LastModifiedDate FROM CustomField WHERE TableEnumOrId = '%s'", object)
}

// fieldInventoryQuery selects the org-wide field list, standard fields
// included, ordered for reproducible merge output.
func fieldInventoryQuery(object string) string {
	return fmt.Sprintf("SELECT QualifiedApiName, DataType FROM FieldDefinition WHERE EntityDefinition.QualifiedApiName = '%s' ORDER BY QualifiedApiName", object)
}

// runQuery executes one sf data query and returns the raw records array.
func (c *cliClient) runQuery(ctx context.Context, soql string) (json.RawMessage, error) {
	execCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	args := []string{"data", "query", "--query", soql, "--use-tooling-api", "--json"}
	if c.targetOrg != "" {
		args = append(args, "--target-org", c.targetOrg)
	}

	cmd := exec.CommandContext(execCtx, c.binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	if runErr != nil {
		if execCtx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("sf query timed out after %s", queryTimeout)
		}
		// The sf CLI exits non-zero on query failures but still writes a
		// JSON envelope with the failure message to stdout.
		if stdout.Len() > 0 {
			records, parseErr := parseQueryEnvelope(stdout.Bytes())
			if parseErr == nil {
				return records, nil
			}
			if stderr.Len() == 0 {
				return nil, parseErr
			}
		}
		if stderr.Len() > 0 {
			return nil, fmt.Errorf("sf query failed: %s", strings.TrimSpace(stderr.String()))
		}
		return nil, fmt.Errorf("sf query failed: %w", runErr)
	}

	return parseQueryEnvelope(stdout.Bytes())
}

// queryEnvelope is the sf CLI --json response shape. On success status is 0
// and result.records holds the rows; on failure status is non-zero and
// message explains why.
type queryEnvelope struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Result  struct {
		Records json.RawMessage `json:"records"`
	} `json:"result"`
}

// parseQueryEnvelope unwraps the CLI envelope down to the records array.
func parseQueryEnvelope(data []byte) (json.RawMessage, error) {
	var envelope queryEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("invalid sf CLI output: %w", err)
	}
	if envelope.Status != 0 {
		if envelope.Message != "" {
			return nil, fmt.Errorf("sf query failed: %s", envelope.Message)
		}
		return nil, fmt.Errorf("sf query failed with status %d", envelope.Status)
	}
	return envelope.Result.Records, nil
}

type dateRecord struct {
	DeveloperName    string `json:"DeveloperName"`
	LastModifiedDate string `json:"LastModifiedDate"`
}

// datesFromRecords builds the lookup map. Direct developer-name keys are
// written first; suffix aliases never overwrite a real developer name.
func datesFromRecords(raw json.RawMessage) (map[string]string, error) {
	var records []dateRecord
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &records); err != nil {
			return nil, fmt.Errorf("invalid CustomField records: %w", err)
		}
	}

	dates := make(map[string]string, len(records)*2)
	for _, r := range records {
		if r.DeveloperName == "" {
			continue
		}
		dates[strings.ToLower(r.DeveloperName)] = r.LastModifiedDate
	}
	for _, r := range records {
		if r.DeveloperName == "" {
			continue
		}
		alias := strings.ToLower(r.DeveloperName) + metadata.CustomFieldSuffix
		if _, taken := dates[alias]; !taken {
			dates[alias] = r.LastModifiedDate
		}
	}
	return dates, nil
}

type inventoryRecord struct {
	QualifiedApiName string `json:"QualifiedApiName"`
	DataType         string `json:"DataType"`
}

// inventoryFromRecords converts FieldDefinition rows to merge input,
// preserving query order.
func inventoryFromRecords(raw json.RawMessage) ([]analysis.RemoteField, error) {
	var records []inventoryRecord
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &records); err != nil {
			return nil, fmt.Errorf("invalid FieldDefinition records: %w", err)
		}
	}

	inventory := make([]analysis.RemoteField, 0, len(records))
	for _, r := range records {
		if r.QualifiedApiName == "" {
			continue
		}
		inventory = append(inventory, analysis.RemoteField{
			APIName:  r.QualifiedApiName,
			DataType: r.DataType,
		})
	}
	return inventory, nil
}
