package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/tbscreen/internal/ui/report"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent evaluations from the run log",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		asJSON, _ := cmd.Flags().GetBool("json")

		e, err := setup(cmd, true)
		if err != nil {
			return err
		}
		defer e.Close()
		if e.store == nil {
			return fmt.Errorf("run log disabled")
		}

		runs, err := e.store.Runs().Recent(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("query runs: %w", err)
		}
		if asJSON {
			return writeJSON(cmd.OutOrStdout(), runs)
		}
		fmt.Fprintln(cmd.OutOrStdout(), report.History(runs))
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Maximum number of runs to show (0 = all)")
	historyCmd.Flags().Bool("json", false, "Print runs as JSON")
}
