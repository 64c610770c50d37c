package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/dayplan/pkg/commands/options"
	"tableflip.dev/dayplan/pkg/runner/complete"
)

func addComplete(topLevel *cobra.Command) {
	var reopen bool

	cmd := &cobra.Command{
		Use:     "complete <task id>",
		Aliases: []string{"done", "finish"},
		Short:   "mark a task finished",
		Example: `
dayplan complete 12
dayplan complete 12 --reopen
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires a task id")
			}
			_, err := options.ParseID(args[0])
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			_, sessions, remote, err := setup()
			if err != nil {
				return err
			}
			if _, err := currentUser(sessions); err != nil {
				return err
			}
			id, _ := options.ParseID(args[0])

			s := complete.Complete{
				ID:     id,
				Reopen: reopen,
				Remote: remote,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	cmd.Flags().BoolVar(&reopen, "reopen", false, "Clear the finished state instead of setting it.")

	topLevel.AddCommand(cmd)
}
