package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/BlueprintStudio/internal/domain/workspace"
)

var historyFull bool

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect the blueprint history shared with the server",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List remembered blueprints, most recent first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		hist, store, err := openHistory(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		out := cmd.OutOrStdout()
		items := hist.List()
		if len(items) == 0 {
			fmt.Fprintln(out, "Empty")
			return nil
		}
		for i, item := range items {
			text := workspace.ShortLabel(item)
			if historyFull {
				text = item
			}
			fmt.Fprintf(out, "%d\t%s\n", i+1, text)
		}
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget every remembered blueprint",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		hist, store, err := openHistory(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		hist.Clear(cmd.Context())
		fmt.Fprintln(cmd.OutOrStdout(), "History cleared")
		return nil
	},
}

func init() {
	historyListCmd.Flags().BoolVar(&historyFull, "full", false, "print complete blueprint strings")
	historyCmd.AddCommand(historyListCmd, historyClearCmd)
}
