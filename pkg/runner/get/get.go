// Package get lists tasks or notes through the projection pipeline.
package get

import (
	"context"
	"errors"

	"tableflip.dev/dayplan/pkg/model"
	"tableflip.dev/dayplan/pkg/printers"
	"tableflip.dev/dayplan/pkg/projection"
	"tableflip.dev/dayplan/pkg/session"
	"tableflip.dev/dayplan/pkg/store"
)

// Get loads the session user's tasks and prints the projected view,
// or one task in detail when ID is set.
type Get struct {
	ShowID   bool
	ID       int64
	Criteria projection.Criteria
	Range    projection.Range // non-zero switches to the range endpoint

	Session *session.Session
	Tasks   *store.TaskStore
	Detail  func(ctx context.Context, id int64) (*model.Task, error)
}

// Do fetches and prints. Range criteria go to the server-side range
// endpoint; everything else filters locally.
func (n *Get) Do(ctx context.Context) error {
	if n.Session == nil {
		return session.ErrNoSession
	}

	if n.ID != 0 {
		if n.Detail == nil {
			return errors.New("get: no task gateway")
		}
		pp := printers.PrettyPrint{ShowID: n.ShowID}
		task, err := n.Detail(ctx, n.ID)
		if err != nil {
			pp.Error(err)
			return err
		}
		pp.NewLine()
		pp.TaskDetail(*task)
		return nil
	}

	if n.Tasks == nil {
		return errors.New("get: no task store")
	}

	var err error
	if !n.Range.IsZero() {
		err = n.Tasks.LoadInRange(ctx, n.Session.UserID, n.Range.From, n.Range.To)
	} else {
		err = n.Tasks.Load(ctx, n.Session.UserID)
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID}
	if err != nil {
		pp.Error(err)
		return err
	}

	visible := projection.Apply(n.Tasks.Tasks(), n.Criteria)

	pp.NewLine()
	pp.TitleWithCount(string(tabName(n.Criteria.Tab)), len(visible))
	pp.Tasks(visible...)
	return nil
}

func tabName(tab projection.Tab) projection.Tab {
	if tab == "" {
		return projection.TabAll
	}
	return tab
}

// Notes lists the session user's notes.
type Notes struct {
	ShowID bool
	ID     int64 // non-zero prints one note in detail

	Session *session.Session
	Notes   *store.NoteStore
	Detail  func(ctx context.Context, id int64) (*model.Note, error)
}

// Do fetches and prints the note list, or one note when ID is set.
func (n *Notes) Do(ctx context.Context) error {
	if n.Session == nil {
		return session.ErrNoSession
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID}

	if n.ID != 0 {
		if n.Detail == nil {
			return errors.New("get: no note gateway")
		}
		note, err := n.Detail(ctx, n.ID)
		if err != nil {
			pp.Error(err)
			return err
		}
		pp.NewLine()
		pp.NoteDetail(*note)
		return nil
	}

	if n.Notes == nil {
		return errors.New("get: no note store")
	}
	if err := n.Notes.Load(ctx, n.Session.UserID); err != nil {
		pp.Error(err)
		return err
	}
	all := n.Notes.Notes()
	pp.NewLine()
	pp.TitleWithCount("notes", len(all))
	pp.Notes(all...)
	return nil
}
