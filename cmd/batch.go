package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/tbscreen/internal/intake"
	"github.com/abhisek/tbscreen/internal/ui/report"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Evaluate every request in a JSON array",
	RunE: func(cmd *cobra.Command, args []string) error {
		input, _ := cmd.Flags().GetString("input")
		asJSON, _ := cmd.Flags().GetBool("json")

		inputs, err := intake.ReadFile(input)
		if err != nil {
			return err
		}

		e, err := setup(cmd, true)
		if err != nil {
			return err
		}
		defer e.Close()

		outcomes := e.pipeline().EvaluateBatch(cmd.Context(), inputs, e.cfg.Parallel)

		if asJSON {
			views := make([]resultJSON, len(outcomes))
			for i, o := range outcomes {
				views[i] = resultView(o.Result, o.Err)
			}
			return writeJSON(cmd.OutOrStdout(), views)
		}

		fmt.Fprintln(cmd.OutOrStdout(), report.Batch(outcomes))
		return nil
	},
}

func init() {
	batchCmd.Flags().StringP("input", "i", "-", "Request file (\"-\" reads stdin)")
	batchCmd.Flags().Int("parallel", 0, "Concurrent evaluations (default: config or CPU count)")
	batchCmd.Flags().Bool("json", false, "Print results as JSON")
}
