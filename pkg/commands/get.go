package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/dayplan/pkg/commands/options"
	"tableflip.dev/dayplan/pkg/runner/get"
	"tableflip.dev/dayplan/pkg/store"
)

func addGet(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "get",
		Short: "get tasks or notes",
		Example: `
dayplan get tasks
dayplan get tasks --tab active --sort due_date
dayplan get notes
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addGetTasks(cmd)
	addGetNotes(cmd)

	topLevel.AddCommand(cmd)
}

func addGetTasks(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	fo := &options.FilterOptions{}
	ro := &options.RangeOptions{}

	cmd := &cobra.Command{
		Use:     "tasks [id]",
		Aliases: []string{"task"},
		Short:   "list tasks, filtered and sorted, or show one in full",
		Example: `
dayplan get tasks
dayplan get tasks --tab completed --search report
dayplan get tasks --from 2025-02-01 --to 2025-02-28
dayplan get tasks 42
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 1 {
				return errors.New("at most one task id")
			}
			if len(args) == 1 {
				id, err := options.ParseID(args[0])
				if err != nil {
					return err
				}
				io.ID = id
			}
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
			criteria, err := fo.GetCriteria()
			if err != nil {
				return err
			}
			window, err := ro.GetRange()
			if err != nil {
				return err
			}

			s := get.Get{
				ShowID:   io.ShowID,
				ID:       io.ID,
				Criteria: criteria,
				Range:    window,
				Session:  active,
				Tasks:    store.NewTaskStore(remote),
				Detail:   remote.GetTask,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddFilterArgs(cmd, fo)
	options.AddRangeArgs(cmd, ro)

	topLevel.AddCommand(cmd)
}

func addGetNotes(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "notes [id]",
		Aliases: []string{"note"},
		Short:   "list notes, or show one in full",
		Example: `
dayplan get notes
dayplan get notes 12
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 1 {
				return errors.New("at most one note id")
			}
			if len(args) == 1 {
				id, err := options.ParseID(args[0])
				if err != nil {
					return err
				}
				io.ID = id
			}
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

			s := get.Notes{
				ShowID:  io.ShowID,
				ID:      io.ID,
				Session: active,
				Notes:   store.NewNoteStore(remote),
				Detail:  remote.GetNote,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}
