package export

import (
	"errors"
	"fmt"
	"strings"
)

// Record is one row of an export, keyed by field name.
type Record map[string]any

// Request is an export payload. Records and Columns are never modified.
type Request struct {
	// Name is the file name stem, e.g. "Taxonomic_Classification".
	Name string
	// Sheet names the spreadsheet tab; Name is used when empty.
	Sheet string
	// Title is the first line of the document export; Name is used when empty.
	Title   string
	Columns []string
	Records []Record
	// Payload replaces Records in the JSON export when set, so the JSON file
	// can carry more than the tabular columns.
	Payload any
}

// Validate checks that the request can be laid out as a table: a name,
// at least one column, and every column present on every record.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required")
	}
	if len(r.Columns) == 0 {
		return errors.New("columns must not be empty")
	}

	seen := make(map[string]struct{}, len(r.Columns))
	for _, col := range r.Columns {
		if strings.TrimSpace(col) == "" {
			return errors.New("column names must not be blank")
		}
		if _, dup := seen[col]; dup {
			return fmt.Errorf("column %q is listed twice", col)
		}
		seen[col] = struct{}{}
	}

	for i, rec := range r.Records {
		for _, col := range r.Columns {
			if _, ok := rec[col]; !ok {
				return fmt.Errorf("record %d has no column %q", i, col)
			}
		}
	}

	return nil
}

func (r Request) sheet() string {
	if r.Sheet != "" {
		return r.Sheet
	}
	return r.Name
}

func (r Request) title() string {
	if r.Title != "" {
		return r.Title
	}
	return r.Name
}

func (r Request) payload() any {
	if r.Payload != nil {
		return r.Payload
	}
	if r.Records == nil {
		return []Record{}
	}
	return r.Records
}

// row maps a record through the columns in order.
func (r Request) row(rec Record) []string {
	out := make([]string, len(r.Columns))
	for i, col := range r.Columns {
		out[i] = formatValue(rec[col])
	}
	return out
}

// line renders a record as "col1: v1, col2: v2".
func (r Request) line(rec Record) string {
	parts := make([]string, len(r.Columns))
	for i, col := range r.Columns {
		parts[i] = col + ": " + formatValue(rec[col])
	}
	return strings.Join(parts, ", ")
}
