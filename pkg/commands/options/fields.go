package options

import (
	"github.com/spf13/cobra"
)

// TaskFieldOptions carries the writable task fields as raw strings.
// The form layer validates them.
type TaskFieldOptions struct {
	Title       string
	Description string
	Due         string
	At          string
	Importance  string
}

func AddTaskFieldArgs(cmd *cobra.Command, o *TaskFieldOptions) {
	cmd.Flags().StringVar(&o.Description, "description", "",
		"Longer text for the task.")
	cmd.Flags().StringVar(&o.Due, "due", "",
		`Due date, example: --due="2025-02-28".`)
	cmd.Flags().StringVar(&o.At, "at", "",
		`Wall-clock time, example: --at="09:30".`)
	cmd.Flags().StringVar(&o.Importance, "importance", "",
		"Importance, 1 to 3.")
}

// Changed reports which flags the user actually set, so edits can
// tell "set to empty" apart from "leave alone".
func (o *TaskFieldOptions) Changed(cmd *cobra.Command) (description, due, at, importance bool) {
	return cmd.Flags().Changed("description"),
		cmd.Flags().Changed("due"),
		cmd.Flags().Changed("at"),
		cmd.Flags().Changed("importance")
}

// NoteFieldOptions mirrors TaskFieldOptions for notes.
type NoteFieldOptions struct {
	Description string
}

func AddNoteFieldArgs(cmd *cobra.Command, o *NoteFieldOptions) {
	cmd.Flags().StringVar(&o.Description, "description", "",
		"Body text for the note.")
}
