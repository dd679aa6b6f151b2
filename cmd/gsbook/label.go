package main

import (
	"fmt"
	"strconv"

	"github.com/jethrolam/gsbook/pkg/gsbook/a1"
	"github.com/spf13/cobra"
)

func newLabelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "label <index>...",
		Short: "Print the column label for each 1-based column index",
		Args:  cobra.MinimumNArgs(1),
		// label needs no config or logger
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				index, err := strconv.Atoi(arg)
				if err != nil {
					return fmt.Errorf("invalid index %q: %w", arg, err)
				}
				label, err := a1.ColumnLabel(index)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", index, label)
			}
			return nil
		},
	}
}
