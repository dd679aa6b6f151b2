package gsbook

import (
	"fmt"

	"github.com/jethrolam/gsbook/pkg/gsbook/models"
	"github.com/jethrolam/gsbook/pkg/gsbook/spreadsheet"
	"github.com/jethrolam/gsbook/pkg/gsbook/transform"
)

// Error kinds a run can fail with. Match them with errors.Is.
var (
	ErrAuth           = spreadsheet.ErrAuth
	ErrSheetNotFound  = spreadsheet.ErrSheetNotFound
	ErrTabNotFound    = spreadsheet.ErrTabNotFound
	ErrWriteFailed    = spreadsheet.ErrWriteFailed
	ErrMalformedTable = models.ErrMalformedTable
	ErrAggregation    = transform.ErrAggregation
)

// Stage names a phase of an update run.
type Stage string

const (
	// StageRead reads the event tab.
	StageRead Stage = "read"
	// StageTransform computes the derived tables.
	StageTransform Stage = "transform"
	// StageWrite replaces a derived tab.
	StageWrite Stage = "write"
)

// StageError represents a failure in one phase of a run.
type StageError struct {
	Stage Stage
	Tab   string
	Err   error
}

func (e *StageError) Error() string {
	if e.Tab == "" {
		return fmt.Sprintf("update failed at %s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("update failed at %s of tab %q: %v", e.Stage, e.Tab, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// NewStageError creates a new StageError.
func NewStageError(stage Stage, tab string, err error) *StageError {
	return &StageError{
		Stage: stage,
		Tab:   tab,
		Err:   err,
	}
}
