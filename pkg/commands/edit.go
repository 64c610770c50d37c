package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/dayplan/pkg/commands/options"
	"tableflip.dev/dayplan/pkg/runner/edit"
)

func addEdit(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "edit a task or note",
		Example: `
dayplan edit task 12 --due 2025-03-01
dayplan edit note 4 --description "updated"
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addEditTask(cmd)
	addEditNote(cmd)

	topLevel.AddCommand(cmd)
}

func addEditTask(topLevel *cobra.Command) {
	fo := &options.TaskFieldOptions{}
	var title string

	cmd := &cobra.Command{
		Use:   "task <id> [new title]",
		Short: "edit a task; unset flags keep their value",
		Example: `
dayplan edit task 12 --due 2025-03-01 --at 10:00
dayplan edit task 12 new title here
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a task id")
			}
			if _, err := options.ParseID(args[0]); err != nil {
				return err
			}
			if len(args) > 1 {
				title = strings.Join(args[1:], " ")
			}
			return nil
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

			s := edit.Task{
				ID:     id,
				Remote: remote,
			}
			if title != "" {
				s.Title = &title
			}
			descSet, dueSet, atSet, impSet := fo.Changed(cmd)
			if descSet {
				s.Description = &fo.Description
			}
			if dueSet {
				s.Due = &fo.Due
			}
			if atSet {
				s.At = &fo.At
			}
			if impSet {
				s.Importance = &fo.Importance
			}

			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddTaskFieldArgs(cmd, fo)

	topLevel.AddCommand(cmd)
}

func addEditNote(topLevel *cobra.Command) {
	fo := &options.NoteFieldOptions{}
	var title string

	cmd := &cobra.Command{
		Use:   "note <id> [new title]",
		Short: "edit a note; unset flags keep their value",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a note id")
			}
			if _, err := options.ParseID(args[0]); err != nil {
				return err
			}
			if len(args) > 1 {
				title = strings.Join(args[1:], " ")
			}
			return nil
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

			s := edit.Note{
				ID:     id,
				Remote: remote,
			}
			if title != "" {
				s.Title = &title
			}
			if cmd.Flags().Changed("description") {
				s.Description = &fo.Description
			}

			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddNoteFieldArgs(cmd, fo)

	topLevel.AddCommand(cmd)
}
