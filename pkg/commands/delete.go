package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/dayplan/pkg/commands/options"
	"tableflip.dev/dayplan/pkg/runner/remove"
)

func addDelete(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "delete",
		Aliases: []string{"rm"},
		Short:   "delete a task or note",
		Example: `
dayplan delete task 12
dayplan delete note 4
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	task := &cobra.Command{
		Use:   "task <id>",
		Short: "delete a task",
		Args:  requireOneID,
		RunE: func(c *cobra.Command, args []string) error {
			c.SilenceUsage = true
			_, sessions, remote, err := setup()
			if err != nil {
				return err
			}
			if _, err := currentUser(sessions); err != nil {
				return err
			}
			id, _ := options.ParseID(args[0])

			s := remove.Task{ID: id, Remote: remote}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}
	cmd.AddCommand(task)

	note := &cobra.Command{
		Use:   "note <id>",
		Short: "delete a note",
		Args:  requireOneID,
		RunE: func(c *cobra.Command, args []string) error {
			c.SilenceUsage = true
			_, sessions, remote, err := setup()
			if err != nil {
				return err
			}
			if _, err := currentUser(sessions); err != nil {
				return err
			}
			id, _ := options.ParseID(args[0])

			s := remove.Note{ID: id, Remote: remote}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}
	cmd.AddCommand(note)

	topLevel.AddCommand(cmd)
}

func requireOneID(_ *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.New("requires exactly one id")
	}
	_, err := options.ParseID(args[0])
	return err
}
