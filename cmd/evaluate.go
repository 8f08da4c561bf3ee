package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/tbscreen/internal/diagnostic"
	"github.com/abhisek/tbscreen/internal/intake"
	"github.com/abhisek/tbscreen/internal/model"
	"github.com/abhisek/tbscreen/internal/ui/report"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate one patient from a JSON request",
	Long: "Reads one evaluation request (patient profile and symptom answers as labels) and prints " +
		"the heuristic score, risk class and recommendation plan. Without a reachable model only the " +
		"score is shown.",
	RunE: func(cmd *cobra.Command, args []string) error {
		input, _ := cmd.Flags().GetString("input")
		asJSON, _ := cmd.Flags().GetBool("json")

		inputs, err := intake.ReadFile(input)
		if err != nil {
			return err
		}
		if len(inputs) != 1 {
			return fmt.Errorf("expected one request, got %d (use batch)", len(inputs))
		}

		e, err := setup(cmd, true)
		if err != nil {
			return err
		}
		defer e.Close()

		in := inputs[0]
		res, err := e.pipeline().EvaluateLabels(cmd.Context(), in.Patient, in.Symptoms)
		if err != nil && !model.IsUnavailable(err) {
			return err
		}

		if asJSON {
			if err := writeJSON(cmd.OutOrStdout(), resultView(res, err)); err != nil {
				return err
			}
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), report.Result(res, report.DefaultWidth))
		}
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "warning:", err)
		}
		return nil
	},
}

func init() {
	evaluateCmd.Flags().StringP("input", "i", "-", "Request file (\"-\" reads stdin)")
	evaluateCmd.Flags().Bool("json", false, "Print the result as JSON")
}

// resultJSON is the machine-readable form of one evaluation.
type resultJSON struct {
	*diagnostic.Result
	Error string `json:"error,omitempty"`
}

func resultView(res *diagnostic.Result, err error) resultJSON {
	out := resultJSON{Result: res}
	if err != nil {
		out.Error = err.Error()
	}
	return out
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
