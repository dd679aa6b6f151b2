package gsbook

import (
	"context"

	"github.com/google/uuid"
	"github.com/jethrolam/gsbook/pkg/gsbook/models"
	"github.com/jethrolam/gsbook/pkg/gsbook/sheetio"
	"github.com/jethrolam/gsbook/pkg/gsbook/spreadsheet"
	"github.com/jethrolam/gsbook/pkg/gsbook/transform"
	"go.uber.org/zap"
)

// Result describes a completed run.
type Result struct {
	// RunID identifies the run in log output.
	RunID string `json:"run_id"`
	// Sheet is the key of the updated sheet.
	Sheet string `json:"sheet"`
	// Derived holds the computed tables in write order.
	Derived *models.DerivedSet `json:"derived"`
	// Written lists the tabs replaced, in order. Empty on a dry run.
	Written []string `json:"written"`
}

// Update reads the event tab of sheet, computes the derived tables and
// replaces each derived tab in turn.
//
// The first failure aborts the run. Tabs already replaced stay replaced.
func Update(ctx context.Context, sheet spreadsheet.Sheet, opts Options) (*Result, error) {
	runID := uuid.NewString()
	log := opts.logger().With(zap.String("run_id", runID))
	eventTab := opts.eventTab()

	result := &Result{
		RunID:   runID,
		Sheet:   sheet.Key(),
		Written: []string{},
	}

	// Read
	log.Info("reading events", zap.String("sheet", sheet.Key()), zap.String("tab", eventTab))
	events, err := sheetio.Read(ctx, sheet, eventTab)
	if err != nil {
		return nil, NewStageError(StageRead, eventTab, err)
	}
	log.Debug("read events", zap.Int("rows", events.RowCount()), zap.Int("cols", events.ColumnCount()))

	// Transform
	log.Info("transforming events", zap.Strings("tags", opts.tags()))
	derived, err := transform.AggregateTags(events, opts.tags()...)
	if err != nil {
		return nil, NewStageError(StageTransform, "", err)
	}
	result.Derived = derived

	if opts.DryRun {
		log.Info("dry run, skipping writes")
		return result, nil
	}

	// Write
	wopts := sheetio.WriteOptions{RoundNumbers: opts.RoundNumbers}
	for _, d := range derived.Tables {
		log.Info("writing derived table",
			zap.String("tab", d.Tag),
			zap.Int("rows", d.Table.RowCount()),
			zap.Int("cols", d.Table.ColumnCount()))
		if err := sheetio.Write(ctx, sheet, d.Tag, d.Table, wopts); err != nil {
			return nil, NewStageError(StageWrite, d.Tag, err)
		}
		result.Written = append(result.Written, d.Tag)
	}

	log.Info("update complete", zap.Strings("written", result.Written))
	return result, nil
}
