// Package spreadsheet defines the contract gsbook needs from a spreadsheet service.
//
// A Service opens a Sheet (a spreadsheet document) by key. A Sheet holds named
// tabs that can be listed, read, created, deleted and written to. Backends live
// in the gsheets (Google Sheets API) and xlsx (local workbook) subpackages.
package spreadsheet

import (
	"context"
	"errors"
	"fmt"
)

// ErrAuth indicates missing or rejected credentials.
var ErrAuth = errors.New("authorization failed")

// ErrSheetNotFound indicates the spreadsheet document does not exist.
var ErrSheetNotFound = errors.New("sheet not found")

// ErrTabNotFound indicates the named tab does not exist in the sheet.
var ErrTabNotFound = errors.New("tab not found")

// ErrWriteFailed indicates a rejected write or an undersized tab grid.
var ErrWriteFailed = errors.New("write failed")

// Service opens spreadsheet documents.
type Service interface {
	// Open returns a handle to the sheet identified by key.
	Open(ctx context.Context, key string) (Sheet, error)
}

// Sheet is an open spreadsheet document.
type Sheet interface {
	// Key returns the identifier the sheet was opened with.
	Key() string
	// Title returns the document title.
	Title() string
	// Tabs lists tab titles in sheet order.
	Tabs(ctx context.Context) ([]string, error)
	// ReadTab returns every row of a tab as strings. Trailing empty cells
	// may be trimmed, so rows can be ragged.
	ReadTab(ctx context.Context, title string) ([][]string, error)
	// AddTab creates a tab with a grid of rows by cols.
	AddTab(ctx context.Context, title string, rows, cols int) error
	// DeleteTab removes a tab. It returns ErrTabNotFound when absent.
	DeleteTab(ctx context.Context, title string) error
	// TabSize returns the grid size of a tab.
	TabSize(ctx context.Context, title string) (rows, cols int, err error)
	// UpdateRange writes values into an A1 range of a tab, row by row.
	UpdateRange(ctx context.Context, title, rng string, values [][]any) error
	// Close releases the handle.
	Close() error
}

// TabError attaches a tab title to a service error.
type TabError struct {
	Sheet string
	Tab   string
	Err   error
}

func (e *TabError) Error() string {
	return fmt.Sprintf("sheet %q tab %q: %v", e.Sheet, e.Tab, e.Err)
}

func (e *TabError) Unwrap() error {
	return e.Err
}

// NewTabError creates a new TabError.
func NewTabError(sheet, tab string, err error) *TabError {
	return &TabError{
		Sheet: sheet,
		Tab:   tab,
		Err:   err,
	}
}

// HasTab reports whether the sheet has a tab with the given title.
func HasTab(ctx context.Context, s Sheet, title string) (bool, error) {
	tabs, err := s.Tabs(ctx)
	if err != nil {
		return false, err
	}
	for _, t := range tabs {
		if t == title {
			return true, nil
		}
	}
	return false, nil
}
