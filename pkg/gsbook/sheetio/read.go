// Package sheetio moves tables between tabs and memory.
//
// Read turns a tab into a Table using the first row as the header. Write
// replaces a tab with a freshly sized one holding a Table.
package sheetio

import (
	"context"
	"fmt"
	"strings"

	"github.com/jethrolam/gsbook/pkg/gsbook/models"
	"github.com/jethrolam/gsbook/pkg/gsbook/spreadsheet"
)

// Read fetches every row of a tab and materializes it as a table.
func Read(ctx context.Context, sheet spreadsheet.Sheet, title string) (*models.Table, error) {
	rows, err := sheet.ReadTab(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("read tab %q: %w", title, err)
	}

	t, err := FromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("read tab %q: %w", title, err)
	}
	return t, nil
}

// FromRows builds a table from raw rows. Short rows are padded with empty
// strings; a row with a value beyond the last header column is malformed.
func FromRows(rows [][]string) (*models.Table, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no header row", models.ErrMalformedTable)
	}

	header, err := parseHeader(rows[0])
	if err != nil {
		return nil, err
	}

	t := &models.Table{
		Header: header,
		Rows:   make([][]any, 0, len(rows)-1),
	}
	for i, raw := range rows[1:] {
		rowNum := i + 2 // 1-based, after the header

		for j := len(header); j < len(raw); j++ {
			if strings.TrimSpace(raw[j]) != "" {
				return nil, fmt.Errorf("%w: row %d has a value in column %d beyond the %d header columns",
					models.ErrMalformedTable, rowNum, j+1, len(header))
			}
		}

		row := make([]any, len(header))
		for j := range row {
			if j < len(raw) {
				row[j] = raw[j]
			} else {
				row[j] = ""
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// parseHeader trims header names and drops trailing blank cells.
func parseHeader(raw []string) ([]string, error) {
	header := make([]string, len(raw))
	for i, h := range raw {
		header[i] = strings.TrimSpace(h)
	}
	for len(header) > 0 && header[len(header)-1] == "" {
		header = header[:len(header)-1]
	}
	if len(header) == 0 {
		return nil, fmt.Errorf("%w: empty header row", models.ErrMalformedTable)
	}

	seen := make(map[string]int, len(header))
	for i, h := range header {
		if h == "" {
			continue
		}
		if prev, ok := seen[h]; ok {
			return nil, fmt.Errorf("%w: duplicate header %q in columns %d and %d",
				models.ErrMalformedTable, h, prev+1, i+1)
		}
		seen[h] = i
	}
	return header, nil
}
