// Package xlsx implements the spreadsheet contract over a local .xlsx workbook.
//
// The sheet key is the workbook path. Every mutation is saved before the call
// returns, so a workbook behaves like a remote document that is updated in place.
package xlsx

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jethrolam/gsbook/pkg/gsbook/spreadsheet"
	"github.com/xuri/excelize/v2"
)

// Service opens workbooks from the local filesystem.
type Service struct{}

// New creates a workbook service.
func New() *Service {
	return &Service{}
}

// Open opens the workbook at path. A missing file is ErrSheetNotFound.
func (s *Service) Open(ctx context.Context, path string) (spreadsheet.Sheet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", spreadsheet.ErrSheetNotFound, path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	return &Workbook{path: path, file: f}, nil
}

// Workbook is an open .xlsx document.
type Workbook struct {
	path string
	file *excelize.File
}

// Key returns the workbook path.
func (w *Workbook) Key() string {
	return w.path
}

// Title returns the workbook file name.
func (w *Workbook) Title() string {
	return filepath.Base(w.path)
}

// Tabs lists worksheet names in workbook order.
func (w *Workbook) Tabs(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return w.file.GetSheetList(), nil
}

// ReadTab returns all rows of a worksheet. Trailing empty cells are trimmed.
func (w *Workbook) ReadTab(ctx context.Context, title string) ([][]string, error) {
	if err := w.requireTab(ctx, title); err != nil {
		return nil, err
	}
	rows, err := w.file.GetRows(title)
	if err != nil {
		return nil, spreadsheet.NewTabError(w.path, title, err)
	}
	return rows, nil
}

// AddTab creates a worksheet and records its grid size as the sheet dimension.
func (w *Workbook) AddTab(ctx context.Context, title string, rows, cols int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if idx, _ := w.file.GetSheetIndex(title); idx != -1 {
		return spreadsheet.NewTabError(w.path, title, fmt.Errorf("%w: tab already exists", spreadsheet.ErrWriteFailed))
	}

	corner, err := excelize.CoordinatesToCellName(cols, rows)
	if err != nil {
		return spreadsheet.NewTabError(w.path, title, fmt.Errorf("%w: %v", spreadsheet.ErrWriteFailed, err))
	}
	if _, err := w.file.NewSheet(title); err != nil {
		return spreadsheet.NewTabError(w.path, title, fmt.Errorf("%w: %v", spreadsheet.ErrWriteFailed, err))
	}
	if err := w.file.SetSheetDimension(title, "A1:"+corner); err != nil {
		return spreadsheet.NewTabError(w.path, title, fmt.Errorf("%w: %v", spreadsheet.ErrWriteFailed, err))
	}
	return w.save(title)
}

// DeleteTab removes a worksheet. The last remaining worksheet cannot be deleted.
func (w *Workbook) DeleteTab(ctx context.Context, title string) error {
	if err := w.requireTab(ctx, title); err != nil {
		return err
	}
	if w.file.SheetCount <= 1 {
		return spreadsheet.NewTabError(w.path, title, fmt.Errorf("%w: cannot delete the only tab", spreadsheet.ErrWriteFailed))
	}
	if err := w.file.DeleteSheet(title); err != nil {
		return spreadsheet.NewTabError(w.path, title, fmt.Errorf("%w: %v", spreadsheet.ErrWriteFailed, err))
	}
	return w.save(title)
}

// TabSize returns the larger of the recorded dimension and the used range.
func (w *Workbook) TabSize(ctx context.Context, title string) (int, int, error) {
	if err := w.requireTab(ctx, title); err != nil {
		return 0, 0, err
	}

	var rows, cols int
	if dimension, err := w.file.GetSheetDimension(title); err == nil && dimension != "" {
		if _, _, c2, r2, err := parseRange(dimension); err == nil {
			rows, cols = r2, c2
		}
	}

	used, err := w.file.GetRows(title)
	if err != nil {
		return 0, 0, spreadsheet.NewTabError(w.path, title, err)
	}
	rows = max(rows, len(used))
	for _, row := range used {
		cols = max(cols, len(row))
	}
	return rows, cols, nil
}

// UpdateRange writes values row by row starting at the top-left of rng.
func (w *Workbook) UpdateRange(ctx context.Context, title, rng string, values [][]any) error {
	if err := w.requireTab(ctx, title); err != nil {
		return err
	}

	c1, r1, c2, r2, err := parseRange(rng)
	if err != nil {
		return spreadsheet.NewTabError(w.path, title, fmt.Errorf("%w: %v", spreadsheet.ErrWriteFailed, err))
	}
	if len(values) > r2-r1+1 {
		return spreadsheet.NewTabError(w.path, title, fmt.Errorf("%w: %d rows do not fit %s", spreadsheet.ErrWriteFailed, len(values), rng))
	}

	for i, row := range values {
		if len(row) > c2-c1+1 {
			return spreadsheet.NewTabError(w.path, title, fmt.Errorf("%w: %d columns do not fit %s", spreadsheet.ErrWriteFailed, len(row), rng))
		}
		cell, err := excelize.CoordinatesToCellName(c1, r1+i)
		if err != nil {
			return spreadsheet.NewTabError(w.path, title, fmt.Errorf("%w: %v", spreadsheet.ErrWriteFailed, err))
		}
		if err := w.file.SetSheetRow(title, cell, &row); err != nil {
			return spreadsheet.NewTabError(w.path, title, fmt.Errorf("%w: %v", spreadsheet.ErrWriteFailed, err))
		}
	}
	return w.save(title)
}

// Close releases the workbook.
func (w *Workbook) Close() error {
	return w.file.Close()
}

func (w *Workbook) requireTab(ctx context.Context, title string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if idx, _ := w.file.GetSheetIndex(title); idx == -1 {
		return spreadsheet.NewTabError(w.path, title, spreadsheet.ErrTabNotFound)
	}
	return nil
}

func (w *Workbook) save(title string) error {
	if err := w.file.Save(); err != nil {
		return spreadsheet.NewTabError(w.path, title, fmt.Errorf("%w: save: %v", spreadsheet.ErrWriteFailed, err))
	}
	return nil
}

// parseRange converts "B2:D5" (or a single cell) to ordered coordinates.
func parseRange(ref string) (c1, r1, c2, r2 int, err error) {
	start, end, found := strings.Cut(strings.ReplaceAll(ref, "$", ""), ":")
	if !found {
		end = start
	}
	if c1, r1, err = excelize.CellNameToCoordinates(start); err != nil {
		return 0, 0, 0, 0, err
	}
	if c2, r2, err = excelize.CellNameToCoordinates(end); err != nil {
		return 0, 0, 0, 0, err
	}
	return min(c1, c2), min(r1, r2), max(c1, c2), max(r1, r2), nil
}

// Create writes a new workbook at path holding a single tab seeded with rows.
func Create(path, title string, rows [][]any) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), title); err != nil {
		return fmt.Errorf("rename tab: %w", err)
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(title, cell, &rows[i]); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	return f.SaveAs(path)
}
