// Package remove deletes a single task or note.
package remove

import (
	"context"
	"errors"

	"tableflip.dev/dayplan/pkg/printers"
	"tableflip.dev/dayplan/pkg/store"
)

// TaskDeleter is the slice of the gateway task removal needs.
type TaskDeleter interface {
	DeleteTask(ctx context.Context, id int64) error
}

// NoteDeleter is the slice of the gateway note removal needs.
type NoteDeleter interface {
	DeleteNote(ctx context.Context, id int64) error
}

// Task deletes one task by id and drops it from the local store once
// the server confirms.
type Task struct {
	ID int64

	Remote TaskDeleter
	Tasks  *store.TaskStore
}

func (n *Task) Do(ctx context.Context) error {
	if n.Remote == nil {
		return errors.New("remove: no gateway")
	}

	pp := printers.PrettyPrint{}
	if err := n.Remote.DeleteTask(ctx, n.ID); err != nil {
		pp.Error(err)
		return err
	}
	if n.Tasks != nil {
		n.Tasks.Remove(n.ID)
	}
	pp.Removed("task", n.ID)
	return nil
}

// Note deletes one note by id.
type Note struct {
	ID int64

	Remote NoteDeleter
	Notes  *store.NoteStore
}

func (n *Note) Do(ctx context.Context) error {
	if n.Remote == nil {
		return errors.New("remove: no gateway")
	}

	pp := printers.PrettyPrint{}
	if err := n.Remote.DeleteNote(ctx, n.ID); err != nil {
		pp.Error(err)
		return err
	}
	if n.Notes != nil {
		n.Notes.Remove(n.ID)
	}
	pp.Removed("note", n.ID)
	return nil
}
