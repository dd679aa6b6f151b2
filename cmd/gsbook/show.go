package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jethrolam/gsbook/pkg/gsbook/models"
	"github.com/jethrolam/gsbook/pkg/gsbook/sheetio"
	"github.com/spf13/cobra"
)

type showFlags struct {
	typed  bool
	pretty bool
}

func newShowCmd(a *app) *cobra.Command {
	f := &showFlags{}

	cmd := &cobra.Command{
		Use:   "show <sheet-key> [tab]",
		Short: "Print a tab as a JSON table",
		Long: `show reads one tab of a sheet with the same rules update uses for the
Event tab and prints it as JSON. The tab defaults to Event.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tab := models.TabEvent
			if len(args) == 2 {
				tab = args[1]
			}
			return a.runShow(cmd, args[0], tab, f)
		},
	}

	cmd.Flags().BoolVar(&f.typed, "typed", false, "Emit numeric-looking cells as numbers")
	cmd.Flags().BoolVar(&f.pretty, "pretty", false, "Pretty-print JSON output")
	return cmd
}

func (a *app) runShow(cmd *cobra.Command, key, tab string, f *showFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
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

	table, err := sheetio.Read(ctx, sheet, tab)
	if err != nil {
		return err
	}
	if f.typed {
		for _, row := range table.Rows {
			for i, v := range row {
				if s, ok := v.(string); ok {
					row[i] = parseValue(s)
				}
			}
		}
	}

	data, err := toJSON(table, f.pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

// parseValue returns int64 for integers, float64 for decimals, or s unchanged.
func parseValue(s string) any {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
