// Package edit updates existing tasks and notes through the form flow,
// so the same validation and true-partial-patch rules apply from the
// command line as from the dialogs.
package edit

import (
	"context"
	"errors"

	"tableflip.dev/dayplan/pkg/form"
	"tableflip.dev/dayplan/pkg/model"
	"tableflip.dev/dayplan/pkg/printers"
	"tableflip.dev/dayplan/pkg/store"
)

// TaskGateway combines the read the runner needs with the form's
// mutation surface.
type TaskGateway interface {
	GetTask(ctx context.Context, id int64) (*model.Task, error)
	form.TaskMutator
}

// NoteGateway mirrors TaskGateway for notes.
type NoteGateway interface {
	GetNote(ctx context.Context, id int64) (*model.Note, error)
	form.NoteMutator
}

// Task edits one task. Nil fields keep the current value; set fields
// replace it, and only the fields that actually changed go on the wire.
type Task struct {
	ID          int64
	Title       *string
	Description *string
	Due         *string
	At          *string
	Importance  *string

	Remote TaskGateway
	Tasks  *store.TaskStore
}

func (n *Task) Do(ctx context.Context) error {
	if n.Remote == nil {
		return errors.New("edit: no gateway")
	}

	pp := printers.PrettyPrint{ShowID: true}

	current, err := n.Remote.GetTask(ctx, n.ID)
	if err != nil {
		pp.Error(err)
		return err
	}

	f := form.EditTaskForm(*current)
	if n.Title != nil {
		f.Title = *n.Title
	}
	if n.Description != nil {
		f.Description = *n.Description
	}
	if n.Due != nil {
		f.DueDate = *n.Due
	}
	if n.At != nil {
		f.DueTime = *n.At
	}
	if n.Importance != nil {
		f.Importance = *n.Importance
	}

	updated, err := f.Submit(ctx, n.Remote, upserter(n.Tasks))
	if err != nil {
		pp.Error(err)
		return err
	}

	pp.NewLine()
	pp.Tasks(*updated)
	return nil
}

// upserter keeps a typed nil store from sneaking into the interface.
func upserter(s *store.TaskStore) form.TaskUpserter {
	if s == nil {
		return nil
	}
	return s
}

// Note edits one note with the same keep-unless-set convention.
type Note struct {
	ID          int64
	Title       *string
	Description *string

	Remote NoteGateway
	Notes  *store.NoteStore
}

func (n *Note) Do(ctx context.Context) error {
	if n.Remote == nil {
		return errors.New("edit: no gateway")
	}

	pp := printers.PrettyPrint{ShowID: true}

	current, err := n.Remote.GetNote(ctx, n.ID)
	if err != nil {
		pp.Error(err)
		return err
	}

	f := form.EditNoteForm(*current)
	if n.Title != nil {
		f.Title = *n.Title
	}
	if n.Description != nil {
		f.Description = *n.Description
	}

	updated, err := f.Submit(ctx, n.Remote, noteUpserter(n.Notes))
	if err != nil {
		pp.Error(err)
		return err
	}

	pp.NewLine()
	pp.Notes(*updated)
	return nil
}

func noteUpserter(s *store.NoteStore) form.NoteUpserter {
	if s == nil {
		return nil
	}
	return s
}
