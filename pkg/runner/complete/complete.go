// Package complete toggles a task's finished state.
package complete

import (
	"context"
	"errors"

	"tableflip.dev/dayplan/pkg/model"
	"tableflip.dev/dayplan/pkg/printers"
	"tableflip.dev/dayplan/pkg/store"
)

// Updater is the slice of the gateway this runner needs.
type Updater interface {
	GetTask(ctx context.Context, id int64) (*model.Task, error)
	UpdateTask(ctx context.Context, id int64, patch model.TaskPatch) (*model.Task, error)
}

// Complete marks a task finished; with Reopen it clears the state
// instead. Finished and date_finished always travel together in the
// patch.
type Complete struct {
	ID     int64
	Reopen bool

	Remote Updater
	Tasks  *store.TaskStore
}

// Do issues one partial update and reconciles the confirmed result.
func (n *Complete) Do(ctx context.Context) error {
	if n.Remote == nil {
		return errors.New("complete: no gateway")
	}

	pp := printers.PrettyPrint{ShowID: true}

	// Read the current state so reopening an already-open task (or
	// completing a done one) stays a no-op instead of a blind write.
	current, err := n.Remote.GetTask(ctx, n.ID)
	if err != nil {
		pp.Error(err)
		return err
	}
	if current.Finished != n.Reopen {
		pp.NewLine()
		pp.Tasks(*current)
		return nil
	}

	patch := model.TaskPatch{
		Finished:     model.Ptr(!n.Reopen),
		DateFinished: model.Ptr(model.Date("")),
	}
	if !n.Reopen {
		patch.DateFinished = model.Ptr(model.Today())
	}

	updated, err := n.Remote.UpdateTask(ctx, n.ID, patch)
	if err != nil {
		pp.Error(err)
		return err
	}
	if n.Tasks != nil {
		n.Tasks.ApplyMutationResult(*updated)
	}

	pp.NewLine()
	pp.Tasks(*updated)
	return nil
}
