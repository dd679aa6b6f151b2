package transform

import (
	"errors"
	"fmt"
)

// ErrAggregation indicates an event field that cannot be aggregated.
var ErrAggregation = errors.New("aggregation failed")

// ErrNonFinite indicates a NaN or infinite number.
var ErrNonFinite = errors.New("number is not finite")

// AggregationError reports the event cell that failed to parse.
type AggregationError struct {
	Row    int    // 1-based sheet row
	Column string // event column name
	Value  string // raw cell text
	Err    error
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("aggregation error at row %d (%s): cannot use %q: %v", e.Row, e.Column, e.Value, e.Err)
}

// Unwrap exposes both ErrAggregation and the parse failure.
func (e *AggregationError) Unwrap() []error {
	return []error{ErrAggregation, e.Err}
}
