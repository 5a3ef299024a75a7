// Package table holds the in-memory representation of a delimited table and
// the errors raised while loading, deriving and writing one.
package table

import (
	"fmt"
	"strconv"
)

// Table is an ordered set of rows sharing one header. Row order is
// significant: it decides the index assigned to each row on output.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

func New(name string, header []string) *Table {
	return &Table{Name: name, Header: append([]string(nil), header...)}
}

func (t *Table) Len() int { return len(t.Rows) }

// ColumnIndex resolves a column by exact name.
func (t *Table) ColumnIndex(name string) (int, error) {
	for i, h := range t.Header {
		if h == name {
			return i, nil
		}
	}
	return -1, &MissingColumnError{Table: t.Name, Column: name}
}

// SetColumn assigns one value per row to the named column. An existing
// column is overwritten in place; a new one is appended after all others.
func (t *Table) SetColumn(name string, values []string) error {
	if len(values) != len(t.Rows) {
		return fmt.Errorf("table %s: column %s has %d values for %d rows", t.Name, name, len(values), len(t.Rows))
	}
	if idx, err := t.ColumnIndex(name); err == nil {
		for i, row := range t.Rows {
			row[idx] = values[i]
		}
		return nil
	}
	t.Header = append(t.Header, name)
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], values[i])
	}
	return nil
}

// IndexedHeader is the output header: label followed by every column.
func (t *Table) IndexedHeader(label string) []string {
	out := make([]string, 0, len(t.Header)+1)
	out = append(out, label)
	return append(out, t.Header...)
}

// IndexedRow is row i prefixed with its zero-based position.
func (t *Table) IndexedRow(i int) []string {
	row := t.Rows[i]
	out := make([]string, 0, len(row)+1)
	out = append(out, strconv.Itoa(i))
	return append(out, row...)
}
