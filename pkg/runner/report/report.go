// Package report fetches and prints server-side aggregates.
package report

import (
	"context"
	"errors"

	"tableflip.dev/dayplan/pkg/gateway"
	"tableflip.dev/dayplan/pkg/model"
	"tableflip.dev/dayplan/pkg/printers"
)

// Reporter is the slice of the gateway this runner needs.
type Reporter interface {
	TaskCompletionReport(ctx context.Context, userID int64, start, end model.Date, filters gateway.ReportFilters) (*model.TaskCompletionReport, error)
	NoteActivityReport(ctx context.Context, userID int64, start, end model.Date) (*model.NoteActivityReport, error)
}

// Tasks prints the completion report for one user over a date range.
// Finished and Importance narrow the aggregate; nil means no filter.
type Tasks struct {
	UserID     int64
	From, To   model.Date
	Finished   *bool
	Importance *int

	Remote Reporter
}

func (n *Tasks) Do(ctx context.Context) error {
	if n.Remote == nil {
		return errors.New("report: no gateway")
	}

	pp := printers.PrettyPrint{}
	report, err := n.Remote.TaskCompletionReport(ctx, n.UserID, n.From, n.To, gateway.ReportFilters{
		Finished:   n.Finished,
		Importance: n.Importance,
	})
	if err != nil {
		pp.Error(err)
		return err
	}

	pp.NewLine()
	pp.TaskReport(n.From, n.To, *report)
	return nil
}

// Notes prints the note activity report over a date range.
type Notes struct {
	UserID   int64
	From, To model.Date

	Remote Reporter
}

func (n *Notes) Do(ctx context.Context) error {
	if n.Remote == nil {
		return errors.New("report: no gateway")
	}

	pp := printers.PrettyPrint{}
	report, err := n.Remote.NoteActivityReport(ctx, n.UserID, n.From, n.To)
	if err != nil {
		pp.Error(err)
		return err
	}

	pp.NewLine()
	pp.NoteReport(n.From, n.To, *report)
	return nil
}
