package sheetio

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/jethrolam/gsbook/pkg/gsbook/a1"
	"github.com/jethrolam/gsbook/pkg/gsbook/models"
	"github.com/jethrolam/gsbook/pkg/gsbook/spreadsheet"
)

// Margin is the number of spare rows and columns added to a new tab.
const Margin = 4

// WriteOptions configures value coercion on write.
type WriteOptions struct {
	// RoundNumbers rounds numeric cells to the nearest integer.
	RoundNumbers bool
}

// Write replaces the tab named title with one holding t.
//
// Any existing tab of that title is deleted first; absence is not an error.
// The new tab is sized to the table plus Margin, then the header is written
// to row 1 and the body to rows 2 and below.
func Write(ctx context.Context, sheet spreadsheet.Sheet, title string, t *models.Table, opts WriteOptions) error {
	if err := validate(t); err != nil {
		return fmt.Errorf("write tab %q: %w", title, err)
	}
	width := t.ColumnCount()
	height := t.RowCount() + 1

	// Step 1: Drop the previous tab
	if err := sheet.DeleteTab(ctx, title); err != nil && !errors.Is(err, spreadsheet.ErrTabNotFound) {
		return fmt.Errorf("write tab %q: %w", title, err)
	}

	// Step 2: Create a tab large enough for header and body
	if err := sheet.AddTab(ctx, title, height+Margin, width+Margin); err != nil {
		return fmt.Errorf("write tab %q: %w", title, err)
	}

	// Step 3: Guard against a grid the service shrank
	rows, cols, err := sheet.TabSize(ctx, title)
	if err != nil {
		return fmt.Errorf("write tab %q: %w", title, err)
	}
	if rows < height || cols < width {
		return fmt.Errorf("write tab %q: %w: grid is %dx%d, table needs %dx%d",
			title, spreadsheet.ErrWriteFailed, rows, cols, height, width)
	}

	last := a1.MustColumnLabel(width)

	// Step 4: Header
	header := make([]any, width)
	for i, h := range t.Header {
		header[i] = h
	}
	if err := sheet.UpdateRange(ctx, title, "A1:"+last+"1", [][]any{header}); err != nil {
		return fmt.Errorf("write tab %q header: %w", title, err)
	}

	// Step 5: Body
	if t.RowCount() == 0 {
		return nil
	}
	body := make([][]any, t.RowCount())
	for i, row := range t.Rows {
		body[i] = make([]any, width)
		for j, v := range row {
			body[i][j] = coerce(v, opts.RoundNumbers)
		}
	}
	rng := fmt.Sprintf("A2:%s%d", last, height)
	if err := sheet.UpdateRange(ctx, title, rng, body); err != nil {
		return fmt.Errorf("write tab %q body: %w", title, err)
	}
	return nil
}

// validate rejects a table before any tab is touched, so a bad table never
// leaves an empty replacement behind.
func validate(t *models.Table) error {
	width := t.ColumnCount()
	if width == 0 {
		return fmt.Errorf("%w: table has no columns", models.ErrMalformedTable)
	}
	for i, row := range t.Rows {
		if len(row) != width {
			return fmt.Errorf("%w: row %d has %d cells, header has %d",
				models.ErrMalformedTable, i+1, len(row), width)
		}
		for j, v := range row {
			if !finite(v) {
				return fmt.Errorf("%w: row %d column %q holds %v",
					spreadsheet.ErrWriteFailed, i+1, t.Header[j], v)
			}
		}
	}
	return nil
}

func finite(v any) bool {
	switch x := v.(type) {
	case float64:
		return !math.IsNaN(x) && !math.IsInf(x, 0)
	case float32:
		return !math.IsNaN(float64(x)) && !math.IsInf(float64(x), 0)
	}
	return true
}

// coerce prepares a cell for the service. Numbers keep full precision
// unless round is set. Rounded values stay float64; both backends render a
// whole float without a fraction.
func coerce(v any, round bool) any {
	switch x := v.(type) {
	case nil, string:
		return x
	case float64:
		if round {
			return math.Round(x)
		}
		return x
	case float32:
		if round {
			return math.Round(float64(x))
		}
		return float64(x)
	case int, int64, int32:
		return x
	default:
		return fmt.Sprint(x)
	}
}
