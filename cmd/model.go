package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/tbscreen/internal/model"
	"github.com/abhisek/tbscreen/internal/ui/report"
)

var modelCmd = &cobra.Command{
	Use:   "model",
	Short: "Inspect the configured classifier",
}

var modelCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify that the configured model loads and matches this build's encoding",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		switch {
		case e.cfg.Model.Path != "":
			info, err := model.Inspect(e.cfg.Model.Path)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), info)
			}
			fmt.Fprintln(cmd.OutOrStdout(), report.ModelInfo(info))
			return nil

		case e.cfg.Model.URL != "":
			r := model.NewRemote(e.cfg.Model.URL, e.cfg.Model.Timeout, e.logger)
			if err := r.Ping(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "remote model reachable:", e.cfg.Model.URL)
			return nil

		default:
			return &model.UnavailableError{Source: "config", Err: model.ErrNotConfigured}
		}
	},
}

func init() {
	modelCheckCmd.Flags().Bool("json", false, "Print artifact metadata as JSON")
	modelCmd.AddCommand(modelCheckCmd)
}
