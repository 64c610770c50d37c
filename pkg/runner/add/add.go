// Package add creates tasks and notes through the form flow.
package add

import (
	"context"
	"errors"

	"tableflip.dev/dayplan/pkg/form"
	"tableflip.dev/dayplan/pkg/printers"
	"tableflip.dev/dayplan/pkg/projection"
	"tableflip.dev/dayplan/pkg/session"
	"tableflip.dev/dayplan/pkg/store"
)

// Task creates one task and prints the refreshed list.
type Task struct {
	Title       string
	Description string
	Due         string
	At          string
	Importance  string

	Session *session.Session
	Remote  form.TaskMutator
	Tasks   *store.TaskStore
}

// Do validates, submits, and reprints. Validation failures never hit
// the network.
func (n *Task) Do(ctx context.Context) error {
	if n.Session == nil {
		return session.ErrNoSession
	}
	if n.Remote == nil {
		return errors.New("add: no gateway")
	}

	f := form.NewTaskForm(n.Session.UserID)
	f.Title = n.Title
	f.Description = n.Description
	f.DueDate = n.Due
	f.DueTime = n.At
	f.Importance = n.Importance

	var local form.TaskUpserter
	if n.Tasks != nil {
		local = n.Tasks
	}
	created, err := f.Submit(ctx, n.Remote, local)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: true}
	pp.NewLine()
	if n.Tasks != nil {
		visible := projection.Apply(n.Tasks.Tasks(), projection.Criteria{
			Tab:     projection.TabActive,
			SortKey: projection.SortByDueDate,
		})
		pp.TitleWithCount("active", len(visible))
		pp.Tasks(visible...)
		return nil
	}
	pp.Tasks(*created)
	return nil
}

// Note creates one note.
type Note struct {
	Title       string
	Description string

	Session *session.Session
	Remote  form.NoteMutator
	Notes   *store.NoteStore
}

// Do validates and submits the note.
func (n *Note) Do(ctx context.Context) error {
	if n.Session == nil {
		return session.ErrNoSession
	}
	if n.Remote == nil {
		return errors.New("add: no gateway")
	}

	f := form.NewNoteForm(n.Session.UserID)
	f.Title = n.Title
	f.Description = n.Description

	var local form.NoteUpserter
	if n.Notes != nil {
		local = n.Notes
	}
	created, err := f.Submit(ctx, n.Remote, local)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: true}
	pp.NewLine()
	pp.Notes(*created)
	return nil
}
