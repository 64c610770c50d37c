// Package cleanup bulk-deletes old finished items after an interactive
// confirmation.
package cleanup

import (
	"context"
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"

	"tableflip.dev/dayplan/pkg/printers"
)

// Collection is the store surface cleanup drives: the server-side
// purge followed by a reload.
type Collection interface {
	BulkCleanup(ctx context.Context, userID int64, days int) error
}

// Cleanup purges items older than Days for one user. Unless Yes is
// set it asks first; answering no is not an error.
type Cleanup struct {
	UserID int64
	Days   int
	Kind   string // "tasks" or "notes", display only
	Yes    bool

	Store Collection

	// Confirm is swappable for tests; the default prompts on the
	// terminal.
	Confirm func(label string) (bool, error)
}

func (n *Cleanup) Do(ctx context.Context) error {
	if n.Store == nil {
		return errors.New("cleanup: no store")
	}
	if n.Days < 0 {
		return fmt.Errorf("cleanup: days must be non-negative, got %d", n.Days)
	}

	pp := printers.PrettyPrint{}

	if !n.Yes {
		confirm := n.Confirm
		if confirm == nil {
			confirm = terminalConfirm
		}
		ok, err := confirm(fmt.Sprintf("Delete finished %s older than %d days", n.Kind, n.Days))
		if err != nil {
			return err
		}
		if !ok {
			pp.Skipped(n.Kind)
			return nil
		}
	}

	if err := n.Store.BulkCleanup(ctx, n.UserID, n.Days); err != nil {
		pp.Error(err)
		return err
	}

	pp.CleanedUp(n.Kind, n.Days)
	return nil
}

func terminalConfirm(label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
