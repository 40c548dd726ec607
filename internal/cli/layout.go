package cli

import (
	"github.com/spf13/cobra"

	"github.com/RoySegal1/Calander-V1/config"
	"github.com/RoySegal1/Calander-V1/internal/planner"
	"github.com/RoySegal1/Calander-V1/internal/service"
)

func addLayout(topLevel *cobra.Command, opts *options) {
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Print the per-day column layout of a saved schedule.",
		Example: `
planctl layout --catalog courses.json --schedule schedule.json
planctl layout --catalog courses.json --schedule schedule.json --selected-only
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true

			cat, st, report, skipped, err := loadInputs(opts)
			if err != nil {
				return err
			}

			layoutCfg := planner.DefaultLayoutConfig()
			if opts.configPath != "" {
				cfg, err := config.Load(opts.configPath)
				if err != nil {
					return err
				}
				layoutCfg = service.LayoutConfigFrom(&cfg.Planner)
			}

			p := newPrinter(cmd.OutOrStdout())
			p.Skipped(skipped)
			p.Dropped(report)

			colors := planner.AssignColors(st.SelectedCourseIDs(), planner.DefaultPalette)
			week := layoutCfg.LayoutWeek(planner.BuildBlocks(st, cat, opts.selectedOnly))
			for _, day := range week {
				p.Day(day, cat, colors)
			}
			return nil
		},
	}
	addInputFlags(cmd, opts)
	cmd.Flags().BoolVar(&opts.selectedOnly, "selected-only", false, "hide unselected sessions of selected courses")

	topLevel.AddCommand(cmd)
}
