package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/dayplan/pkg/commands/options"
	"tableflip.dev/dayplan/pkg/runner/add"
	"tableflip.dev/dayplan/pkg/store"
)

func addAdd(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add something",
		Example: `
dayplan add task file the expense report --due 2025-02-28
dayplan add note remember this
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addAddTask(cmd)
	addAddNote(cmd)

	topLevel.AddCommand(cmd)
}

func addAddTask(topLevel *cobra.Command) {
	fo := &options.TaskFieldOptions{}

	cmd := &cobra.Command{
		Use:   "task <title>",
		Short: "Add a task",
		Example: `
dayplan add task buy groceries --due 2025-02-28
dayplan add task standup --due 2025-02-28 --at 09:30 --importance 2
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) < 1 {
				return errors.New("requires a title")
			}
			fo.Title = strings.Join(args, " ")
			return nil
		},
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

			s := add.Task{
				Title:       fo.Title,
				Description: fo.Description,
				Due:         fo.Due,
				At:          fo.At,
				Importance:  fo.Importance,
				Session:     active,
				Remote:      remote,
				Tasks:       store.NewTaskStore(remote),
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddTaskFieldArgs(cmd, fo)

	topLevel.AddCommand(cmd)
}

func addAddNote(topLevel *cobra.Command) {
	fo := &options.NoteFieldOptions{}
	var title string

	cmd := &cobra.Command{
		Use:   "note <title>",
		Short: "Add a note",
		Example: `
dayplan add note meeting minutes --description "decided nothing"
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) < 1 {
				return errors.New("requires a title")
			}
			title = strings.Join(args, " ")
			return nil
		},
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

			s := add.Note{
				Title:       title,
				Description: fo.Description,
				Session:     active,
				Remote:      remote,
				Notes:       store.NewNoteStore(remote),
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddNoteFieldArgs(cmd, fo)

	topLevel.AddCommand(cmd)
}
