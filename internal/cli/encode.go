package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RoySegal1/Calander-V1/internal/planner"
)

func addEncode(topLevel *cobra.Command, opts *options) {
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Normalize an encoded schedule against a catalog and report dropped references.",
		Example: `
planctl encode --catalog courses.json --schedule schedule.json
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true

			_, st, report, skipped, err := loadInputs(opts)
			if err != nil {
				return err
			}

			p := newPrinter(cmd.ErrOrStderr())
			p.Skipped(skipped)
			p.Dropped(report)

			out, err := json.MarshalIndent(planner.Encode(st), "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}
	addInputFlags(cmd, opts)

	topLevel.AddCommand(cmd)
}
