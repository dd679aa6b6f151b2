// Package models defines the tabular data structures read from and written to tabs.
package models

import (
	"errors"
	"fmt"
)

// ErrMalformedTable indicates a header or row shape that cannot be aligned to columns.
var ErrMalformedTable = errors.New("malformed table")

// Table is a rectangular grid with a header row.
type Table struct {
	// Header holds the column names, in order.
	Header []string `json:"header"`
	// Rows holds the body cells. A cell is nil (empty), float64, int or string.
	Rows [][]any `json:"rows"`
}

// NewTable creates an empty table with the given header.
func NewTable(header ...string) *Table {
	return &Table{
		Header: header,
		Rows:   [][]any{},
	}
}

// AppendRow adds a body row. The row must match the header width.
func (t *Table) AppendRow(cells ...any) error {
	if len(cells) != len(t.Header) {
		return fmt.Errorf("%w: row has %d cells, header has %d", ErrMalformedTable, len(cells), len(t.Header))
	}
	t.Rows = append(t.Rows, cells)
	return nil
}

// RowCount returns the number of body rows.
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColumnCount returns the number of header columns.
func (t *Table) ColumnCount() int {
	return len(t.Header)
}

// ColumnIndex returns the 0-based position of a named column.
func (t *Table) ColumnIndex(name string) (int, error) {
	for i, h := range t.Header {
		if h == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: missing column %q", ErrMalformedTable, name)
}

// Text returns the cell at (row, col) as a string. Non-string cells are formatted.
func (t *Table) Text(row, col int) string {
	switch v := t.Rows[row][col].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// Grid returns the header followed by the body as one value grid.
func (t *Table) Grid() [][]any {
	grid := make([][]any, 0, len(t.Rows)+1)
	header := make([]any, len(t.Header))
	for i, h := range t.Header {
		header[i] = h
	}
	grid = append(grid, header)
	return append(grid, t.Rows...)
}
