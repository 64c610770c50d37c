package ui

import (
	"context"
	"errors"

	"tableflip.dev/dayplan/pkg/session"
	"tableflip.dev/dayplan/pkg/tui/app"
)

// UI launches the full-screen planner for the active session.
type UI struct {
	Remote   app.Remote
	Session  *session.Session
	Sessions *session.Store
}

func (i *UI) Do(ctx context.Context) error {
	if i.Session == nil {
		return errors.New("not logged in, run: dayplan login <email>")
	}
	return app.Run(i.Remote, i.Session, i.Sessions)
}
