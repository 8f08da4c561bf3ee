package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/tbscreen/internal/ui/report"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show run-log statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, true)
		if err != nil {
			return err
		}
		defer e.Close()
		if e.store == nil {
			return fmt.Errorf("run log disabled")
		}

		stats, err := e.store.Runs().Stats(cmd.Context())
		if err != nil {
			return fmt.Errorf("aggregate runs: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), report.Stats(stats))
		return nil
	},
}
