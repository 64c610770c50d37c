// Package mcp exposes the planner over the Model Context Protocol so
// agents can read and mutate tasks and notes through the same gateway
// the CLI uses.
package mcp

import (
	"context"
	"errors"

	"tableflip.dev/dayplan/pkg/form"
	"tableflip.dev/dayplan/pkg/gateway"
	"tableflip.dev/dayplan/pkg/model"
	"tableflip.dev/dayplan/pkg/projection"
)

// Remote is the gateway surface the MCP tools drive.
type Remote interface {
	GetTask(ctx context.Context, id int64) (*model.Task, error)
	TasksByUser(ctx context.Context, userID int64) ([]model.Task, error)
	TasksInRange(ctx context.Context, userID int64, start, end model.Date) ([]model.Task, error)
	TasksFiltered(ctx context.Context, userID int64, date model.Date, finished bool) ([]model.Task, error)
	CreateTask(ctx context.Context, in model.TaskCreate) (*model.Task, error)
	UpdateTask(ctx context.Context, id int64, patch model.TaskPatch) (*model.Task, error)
	DeleteTask(ctx context.Context, id int64) error
	NotesByUser(ctx context.Context, userID int64) ([]model.Note, error)
	CreateNote(ctx context.Context, in model.NoteCreate) (*model.Note, error)
	UpdateNote(ctx context.Context, id int64, patch model.NotePatch) (*model.Note, error)
	TaskCompletionReport(ctx context.Context, userID int64, start, end model.Date, filters gateway.ReportFilters) (*model.TaskCompletionReport, error)
}

// Service runs the tool operations on behalf of one logged-in user.
type Service struct {
	remote Remote
	userID int64
}

// NewService binds the tools to a gateway and the session's user.
func NewService(remote Remote, userID int64) *Service {
	return &Service{remote: remote, userID: userID}
}

// ListTasksOptions narrows the task listing the same way the dashboard
// does.
type ListTasksOptions struct {
	Tab        string
	Search     string
	Importance int
	From, To   model.Date
}

// ListTasks fetches and filters the user's tasks. A date range routes
// through the range endpoint; the rest filters locally.
func (s *Service) ListTasks(ctx context.Context, opts ListTasksOptions) ([]model.Task, error) {
	if s.remote == nil {
		return nil, errors.New("mcp: no gateway")
	}

	singleDay := !opts.From.IsZero() && opts.From == opts.To

	var tasks []model.Task
	var err error
	switch {
	case singleDay && (opts.Tab == "active" || opts.Tab == "completed"):
		// One day plus a finished state maps onto the dedicated
		// filter endpoint.
		tasks, err = s.remote.TasksFiltered(ctx, s.userID, opts.From, opts.Tab == "completed")
	case !opts.From.IsZero() && !opts.To.IsZero():
		tasks, err = s.remote.TasksInRange(ctx, s.userID, opts.From, opts.To)
	default:
		tasks, err = s.remote.TasksByUser(ctx, s.userID)
	}
	if err != nil {
		return nil, err
	}

	tab := projection.TabAll
	switch opts.Tab {
	case "active":
		tab = projection.TabActive
	case "completed":
		tab = projection.TabCompleted
	}

	return projection.Apply(tasks, projection.Criteria{
		Tab:        tab,
		Search:     opts.Search,
		Importance: opts.Importance,
		SortKey:    projection.SortByDueDate,
	}), nil
}

// AddTaskOptions is the raw tool input; validation happens in the form.
type AddTaskOptions struct {
	Title       string
	Description string
	DueDate     string
	DueTime     string
	Importance  string
}

// AddTask creates a task through the same form flow as the dialogs, so
// bad input is rejected before it reaches the wire.
func (s *Service) AddTask(ctx context.Context, opts AddTaskOptions) (*model.Task, error) {
	f := form.NewTaskForm(s.userID)
	f.Title = opts.Title
	f.Description = opts.Description
	f.DueDate = opts.DueDate
	f.DueTime = opts.DueTime
	f.Importance = opts.Importance
	return f.Submit(ctx, s.remote, nil)
}

// CompleteTask marks a task finished as of today; reopen undoes it.
func (s *Service) CompleteTask(ctx context.Context, id int64, reopen bool) (*model.Task, error) {
	patch := model.TaskPatch{
		Finished:     model.Ptr(!reopen),
		DateFinished: model.Ptr(model.Date("")),
	}
	if !reopen {
		patch.DateFinished = model.Ptr(model.Today())
	}
	return s.remote.UpdateTask(ctx, id, patch)
}

// RescheduleTask moves a task to a new due date, keeping everything
// else as is.
func (s *Service) RescheduleTask(ctx context.Context, id int64, day model.Date) (*model.Task, error) {
	current, err := s.remote.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.remote.UpdateTask(ctx, id, model.TaskPatch{
		DueDate:  &day,
		Finished: model.Ptr(current.Finished),
	})
}

// DeleteTask removes one task.
func (s *Service) DeleteTask(ctx context.Context, id int64) error {
	return s.remote.DeleteTask(ctx, id)
}

// ListNotes fetches the user's notes.
func (s *Service) ListNotes(ctx context.Context) ([]model.Note, error) {
	return s.remote.NotesByUser(ctx, s.userID)
}

// AddNote creates a note through the form flow.
func (s *Service) AddNote(ctx context.Context, title, description string) (*model.Note, error) {
	f := form.NewNoteForm(s.userID)
	f.Title = title
	f.Description = description
	return f.Submit(ctx, s.remote, nil)
}

// CompletionReport fetches the server-side aggregate for a range.
func (s *Service) CompletionReport(ctx context.Context, from, to model.Date) (*model.TaskCompletionReport, error) {
	return s.remote.TaskCompletionReport(ctx, s.userID, from, to, gateway.ReportFilters{})
}
