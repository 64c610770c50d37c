package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/dayplan/pkg/runner/cleanup"
	"tableflip.dev/dayplan/pkg/store"
)

func addCleanup(topLevel *cobra.Command) {
	var (
		days  int
		notes bool
		yes   bool
	)

	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "bulk-delete old finished items",
		Example: `
dayplan cleanup --days 30
dayplan cleanup --days 90 --notes --yes
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

			s := cleanup.Cleanup{
				UserID:  active.UserID,
				Days:    days,
				Kind:    "tasks",
				Yes:     yes,
				Store:   store.NewTaskStore(remote),
				Confirm: confirmPrompt,
			}
			if notes {
				s.Kind = "notes"
				s.Store = store.NewNoteStore(remote)
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	cmd.Flags().IntVar(&days, "days", 30, "Minimum age in days of items to delete.")
	cmd.Flags().BoolVar(&notes, "notes", false, "Clean up notes instead of tasks.")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt.")

	topLevel.AddCommand(cmd)
}
