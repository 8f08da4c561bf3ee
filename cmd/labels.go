package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/tbscreen/internal/codec"
	"github.com/abhisek/tbscreen/internal/ui/report"
)

var labelsCmd = &cobra.Command{
	Use:   "labels [field]",
	Short: "List the accepted labels of each categorical answer",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fields := codec.Fields()
		if len(args) == 1 {
			fields = []codec.Field{codec.Field(args[0])}
		}

		blocks := make([]string, 0, len(fields))
		for _, f := range fields {
			labels, err := codec.Labels(f)
			if err != nil {
				return err
			}
			blocks = append(blocks, report.Labels(fmt.Sprintf("%s (%s)", codec.FieldDisplayName(f), f), labels))
		}
		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(blocks, "\n\n"))
		return nil
	},
}
