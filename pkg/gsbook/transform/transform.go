// Package transform derives pivot tables from the event table.
//
// Three aggregates are produced, keyed by the tab they are written to:
//
//   - Summary: max Score per Name (rows) and Standard (columns); a missing
//     combination is an empty cell.
//   - Standard: count of Date entries per Standard (rows) and Version
//     (columns); a missing combination is 0.
//   - Individual: max Score, Score count and Remark sum per
//     (Name, Standard, Version, Date).
//
// Row and column keys are sorted ascending. A blank Score is treated as
// missing; any other Score that is not a finite number rejects the whole run.
package transform

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jethrolam/gsbook/pkg/gsbook/models"
)

// Column names of the Individual table measures.
const (
	ColMaxScore   = "MaxScore"
	ColScoreCount = "ScoreCount"
	ColRemarkSum  = "RemarkSum"
)

// RemarkSeparator joins text remarks that cannot be summed as numbers.
const RemarkSeparator = "; "

type builder func([]event) *models.Table

var builders = map[string]builder{
	models.TabSummary:    summary,
	models.TabStandard:   standard,
	models.TabIndividual: individual,
}

// Tags returns the derived table tags in write order.
func Tags() []string {
	return []string{models.TabSummary, models.TabStandard, models.TabIndividual}
}

// Aggregate computes every derived table from the event table.
func Aggregate(events *models.Table) (*models.DerivedSet, error) {
	return AggregateTags(events, Tags()...)
}

// AggregateTags computes the named derived tables, in the order given.
// Every event is validated even when only some tables are requested.
func AggregateTags(events *models.Table, tags ...string) (*models.DerivedSet, error) {
	for _, tag := range tags {
		if _, ok := builders[tag]; !ok {
			return nil, fmt.Errorf("%w: unknown derived table %q", ErrAggregation, tag)
		}
	}

	parsed, err := parseEvents(events)
	if err != nil {
		return nil, err
	}

	set := &models.DerivedSet{}
	for _, tag := range tags {
		set.Add(tag, builders[tag](parsed))
	}
	return set, nil
}

// event is an event record with its score parsed.
type event struct {
	models.EventRecord
	score    float64
	hasScore bool
}

func parseEvents(t *models.Table) ([]event, error) {
	records, err := models.EventRecords(t)
	if err != nil {
		return nil, err
	}

	events := make([]event, 0, len(records))
	for _, r := range records {
		if isBlank(r) {
			continue
		}
		e := event{EventRecord: r}

		if s := strings.TrimSpace(r.Score); s != "" {
			v, err := parseNumber(s)
			if err != nil {
				return nil, &AggregationError{Row: r.Row, Column: models.ColScore, Value: r.Score, Err: err}
			}
			e.score, e.hasScore = v, true
		}
		events = append(events, e)
	}
	return events, nil
}

// parseNumber parses a finite float. NaN and infinities are rejected even
// though strconv accepts their spellings.
func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrNonFinite
	}
	return v, nil
}

func isBlank(r models.EventRecord) bool {
	for _, v := range []string{r.Name, r.Standard, r.Version, r.Date, r.Score, r.Remark} {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
