package table

import (
	"fmt"
	"strings"
)

// Table is an ordered set of named columns with string-normalized rows,
// as retrieved from the workbook table. Column order is preserved end to
// end so the published artifacts keep the source layout.
type Table struct {
	Headers []string
	Rows    [][]string
}

// New creates a table from a header row and body rows. Every row must have
// exactly one cell per header; a ragged body is a hard error because it
// means the source table shape changed underneath us.
func New(headers []string, rows [][]string) (*Table, error) {
	if len(headers) == 0 {
		return nil, fmt.Errorf("table has no header row")
	}

	cleaned := make([]string, len(headers))
	for i, h := range headers {
		cleaned[i] = strings.TrimSpace(h)
	}

	for i, row := range rows {
		if len(row) != len(cleaned) {
			return nil, fmt.Errorf("row %d has %d cells, expected %d", i, len(row), len(cleaned))
		}
	}

	return &Table{Headers: cleaned, Rows: rows}, nil
}

// ColumnIndex returns the position of the named column, matched
// case-insensitively the way the workbook column lookup does.
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, h := range t.Headers {
		if strings.EqualFold(h, name) {
			return i, true
		}
	}
	return -1, false
}

// RowCount returns the number of data rows.
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// AppendColumn adds a column with the same value in every row.
func (t *Table) AppendColumn(name, value string) {
	t.Headers = append(t.Headers, name)
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], value)
	}
}
