package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/dayplan/pkg/commands/options"
	"tableflip.dev/dayplan/pkg/runner/report"
)

func addReport(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "server-side aggregates over a date range",
		Example: `
dayplan report tasks --from 2025-02-01 --to 2025-02-28
dayplan report notes --from 2025-02-01 --to 2025-02-28
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addTaskReport(cmd)
	addNoteReport(cmd)

	topLevel.AddCommand(cmd)
}

func addTaskReport(topLevel *cobra.Command) {
	ro := &options.RangeOptions{}
	var (
		finished   bool
		importance int
	)

	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "completion statistics for tasks",
		Example: `
dayplan report tasks --from 2025-02-01 --to 2025-02-28
dayplan report tasks --from 2025-02-01 --to 2025-02-28 --importance 3
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			_, sessions, remote, err := setup()
			if err != nil {
				return err
			}
			active, err := currentUser(sessions)
			if err != nil {
				return err
			}
			window, err := ro.GetRange()
			if err != nil {
				return err
			}
			if window.IsZero() {
				return errors.New("--from and --to are required")
			}

			s := report.Tasks{
				UserID: active.UserID,
				From:   window.From,
				To:     window.To,
				Remote: remote,
			}
			if cmd.Flags().Changed("finished") {
				s.Finished = &finished
			}
			if cmd.Flags().Changed("importance") {
				s.Importance = &importance
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddRangeArgs(cmd, ro)
	cmd.Flags().BoolVar(&finished, "finished", false, "Only count tasks with this finished state.")
	cmd.Flags().IntVar(&importance, "importance", 0, "Only count tasks with this importance.")

	topLevel.AddCommand(cmd)
}

func addNoteReport(topLevel *cobra.Command) {
	ro := &options.RangeOptions{}

	cmd := &cobra.Command{
		Use:   "notes",
		Short: "activity statistics for notes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			_, sessions, remote, err := setup()
			if err != nil {
				return err
			}
			active, err := currentUser(sessions)
			if err != nil {
				return err
			}
			window, err := ro.GetRange()
			if err != nil {
				return err
			}
			if window.IsZero() {
				return errors.New("--from and --to are required")
			}

			s := report.Notes{
				UserID: active.UserID,
				From:   window.From,
				To:     window.To,
				Remote: remote,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddRangeArgs(cmd, ro)

	topLevel.AddCommand(cmd)
}
