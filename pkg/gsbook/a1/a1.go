// Package a1 converts between column indexes and spreadsheet A1 notation.
package a1

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidIndex indicates a column or row index below 1.
var ErrInvalidIndex = errors.New("invalid index")

// ErrInvalidReference indicates a malformed cell or range reference.
var ErrInvalidReference = errors.New("invalid reference")

// ColumnLabel converts a 1-based column index into its letter label.
// 1 is "A", 26 is "Z", 27 is "AA" and 703 is "AAA".
func ColumnLabel(index int) (string, error) {
	if index < 1 {
		return "", fmt.Errorf("%w: column %d", ErrInvalidIndex, index)
	}

	var buf []byte
	for q := index - 1; q >= 0; q = q/26 - 1 {
		buf = append(buf, byte('A'+q%26))
	}
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf), nil
}

// MustColumnLabel is like ColumnLabel but panics on an invalid index.
func MustColumnLabel(index int) string {
	label, err := ColumnLabel(index)
	if err != nil {
		panic(err)
	}
	return label
}

// ColumnIndex converts a letter label back into its 1-based column index.
// Lower-case letters are accepted.
func ColumnIndex(label string) (int, error) {
	if label == "" {
		return 0, fmt.Errorf("%w: empty column label", ErrInvalidReference)
	}

	index := 0
	for _, r := range strings.ToUpper(label) {
		if r < 'A' || r > 'Z' {
			return 0, fmt.Errorf("%w: column label %q", ErrInvalidReference, label)
		}
		index = index*26 + int(r-'A') + 1
	}
	return index, nil
}

// Cell returns the A1 address of a cell, e.g. Cell(2, 3) is "B3".
func Cell(col, row int) (string, error) {
	if row < 1 {
		return "", fmt.Errorf("%w: row %d", ErrInvalidIndex, row)
	}
	label, err := ColumnLabel(col)
	if err != nil {
		return "", err
	}
	return label + strconv.Itoa(row), nil
}

// Range returns a rectangular range reference such as "A1:C1".
func Range(startCol, startRow, endCol, endRow int) (string, error) {
	start, err := Cell(startCol, startRow)
	if err != nil {
		return "", err
	}
	end, err := Cell(endCol, endRow)
	if err != nil {
		return "", err
	}
	return start + ":" + end, nil
}

// ParseCell splits an A1 cell reference into column and row indexes.
// Absolute markers ($A$1) are ignored.
func ParseCell(ref string) (col, row int, err error) {
	ref = strings.ReplaceAll(strings.TrimSpace(ref), "$", "")

	split := strings.IndexAny(ref, "0123456789")
	if split <= 0 {
		return 0, 0, fmt.Errorf("%w: cell %q", ErrInvalidReference, ref)
	}

	col, err = ColumnIndex(ref[:split])
	if err != nil {
		return 0, 0, err
	}
	row, err = strconv.Atoi(ref[split:])
	if err != nil || row < 1 {
		return 0, 0, fmt.Errorf("%w: cell %q", ErrInvalidReference, ref)
	}
	return col, row, nil
}

// ParseRange parses a range like "A1:D10" into its corner coordinates.
// A single cell reference is treated as a one-cell range.
func ParseRange(ref string) (c1, r1, c2, r2 int, err error) {
	parts := strings.Split(ref, ":")
	if len(parts) > 2 {
		return 0, 0, 0, 0, fmt.Errorf("%w: range %q", ErrInvalidReference, ref)
	}

	c1, r1, err = ParseCell(parts[0])
	if err != nil {
		return 0, 0, 0, 0, err
	}
	if len(parts) == 1 {
		return c1, r1, c1, r1, nil
	}

	c2, r2, err = ParseCell(parts[1])
	if err != nil {
		return 0, 0, 0, 0, err
	}
	if c2 < c1 {
		c1, c2 = c2, c1
	}
	if r2 < r1 {
		r1, r2 = r2, r1
	}
	return c1, r1, c2, r2, nil
}
