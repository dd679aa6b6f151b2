package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jethrolam/gsbook/pkg/gsbook"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type updateFlags struct {
	round   bool
	only    []string
	dryRun  bool
	pretty  bool
	timeout time.Duration
}

func newUpdateCmd(a *app) *cobra.Command {
	f := &updateFlags{}

	cmd := &cobra.Command{
		Use:   "update <sheet-key>",
		Short: "Recompute and replace the derived tabs of a sheet",
		Long: `update reads the Event tab of the sheet identified by key (a spreadsheet
id for the google backend, a .xlsx path for the xlsx backend), computes
the Summary, Standard and Individual tables and replaces those tabs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runUpdate(cmd, args[0], f)
		},
	}

	cmd.Flags().BoolVar(&f.round, "round", false, "Round numeric cells to integers on write")
	cmd.Flags().StringSliceVar(&f.only, "only", nil, "Derived table to produce: Summary, Standard, Individual (repeatable)")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "Print derived tables as JSON instead of writing tabs")
	cmd.Flags().BoolVar(&f.pretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 0, "Abort the run after this duration (0 means no limit)")
	return cmd
}

func (a *app) runUpdate(cmd *cobra.Command, key string, f *updateFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	svc, err := a.service(ctx)
	if err != nil {
		return err
	}
	sheet, err := svc.Open(ctx, key)
	if err != nil {
		return fmt.Errorf("open sheet %s: %w", key, err)
	}
	defer sheet.Close()

	opts := gsbook.DefaultOptions()
	opts.RoundNumbers = f.round || a.cfg.RoundNumbers
	opts.DryRun = f.dryRun
	opts.Logger = a.logger
	if len(f.only) > 0 {
		opts.Tags = f.only
	}

	result, err := gsbook.Update(ctx, sheet, opts)
	if err != nil {
		return err
	}

	if f.dryRun {
		data, err := toJSON(result, f.pretty)
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	a.logger.Info("sheet updated", zap.String("sheet", result.Sheet), zap.Strings("tabs", result.Written))
	return nil
}

func toJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
