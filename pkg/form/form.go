// Package form implements the create/edit mutation flows. Forms hold
// raw user input, validate before any network call, and reconcile
// server-confirmed results back into the stores.
package form

import (
	"context"
	"fmt"
	"strings"

	"tableflip.dev/dayplan/pkg/model"
)

// ValidationError blocks submission; it never reaches the network.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Errors is the full set of field-level problems from one validation
// pass.
type Errors []*ValidationError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, err := range e {
		parts = append(parts, err.Error())
	}
	return strings.Join(parts, "; ")
}

// ByField returns the message for a field, or "".
func (e Errors) ByField(field string) string {
	for _, err := range e {
		if err.Field == field {
			return err.Message
		}
	}
	return ""
}

// TaskMutator is the slice of the gateway the task form needs.
type TaskMutator interface {
	CreateTask(ctx context.Context, in model.TaskCreate) (*model.Task, error)
	UpdateTask(ctx context.Context, id int64, patch model.TaskPatch) (*model.Task, error)
}

// TaskUpserter receives confirmed mutation results.
type TaskUpserter interface {
	ApplyMutationResult(task model.Task)
}

// TaskForm is the dialog state for creating or editing one task.
// All fields are raw strings as typed; parsing happens in Validate.
type TaskForm struct {
	Title       string
	Description string
	DueDate     string
	DueTime     string
	Importance  string

	userID   int64
	original *model.Task // nil in create mode
}

// NewTaskForm opens a create form for the user. Finished is forced
// false on submission; the server assigns id and date_made.
func NewTaskForm(userID int64) *TaskForm {
	return &TaskForm{userID: userID}
}

// EditTaskForm opens an edit form pre-populated from the task.
func EditTaskForm(task model.Task) *TaskForm {
	importance := ""
	if task.Importance != 0 {
		importance = fmt.Sprintf("%d", task.Importance)
	}
	return &TaskForm{
		Title:       task.Title,
		Description: task.Description,
		DueDate:     task.DueDate.String(),
		DueTime:     task.DueTime.String(),
		Importance:  importance,
		userID:      task.UserID,
		original:    &task,
	}
}

// Editing reports whether the form patches an existing task.
func (f *TaskForm) Editing() bool { return f.original != nil }

// Validate checks required fields and formats. A non-empty result
// blocks submission.
func (f *TaskForm) Validate() Errors {
	var errs Errors
	if strings.TrimSpace(f.Title) == "" {
		errs = append(errs, &ValidationError{Field: "title", Message: "title is required"})
	}
	if strings.TrimSpace(f.DueDate) == "" {
		errs = append(errs, &ValidationError{Field: "due_date", Message: "due date is required"})
	} else if _, err := model.ParseDate(strings.TrimSpace(f.DueDate)); err != nil {
		errs = append(errs, &ValidationError{Field: "due_date", Message: "use the form 2006-01-02"})
	}
	if raw := strings.TrimSpace(f.DueTime); raw != "" {
		if _, err := model.ParseClock(raw); err != nil {
			errs = append(errs, &ValidationError{Field: "due_time", Message: "use the form 15:04"})
		}
	}
	if _, err := f.importance(); err != nil {
		errs = append(errs, &ValidationError{Field: "importance", Message: "importance is 1, 2, or 3"})
	}
	return errs
}

func (f *TaskForm) importance() (int, error) {
	raw := strings.TrimSpace(f.Importance)
	if raw == "" {
		return 0, nil
	}
	switch raw {
	case "1":
		return 1, nil
	case "2":
		return 2, nil
	case "3":
		return 3, nil
	}
	return 0, fmt.Errorf("form: importance out of range: %q", raw)
}

// Submit validates and then issues exactly one create or update call.
// On success the confirmed task flows into the upserter; on failure
// the form keeps the user's input and nothing is committed locally.
func (f *TaskForm) Submit(ctx context.Context, remote TaskMutator, local TaskUpserter) (*model.Task, error) {
	if errs := f.Validate(); len(errs) > 0 {
		return nil, errs
	}

	dueDate, _ := model.ParseDate(strings.TrimSpace(f.DueDate))
	importance, _ := f.importance()

	var dueTime model.Clock
	if raw := strings.TrimSpace(f.DueTime); raw != "" {
		dueTime, _ = model.ParseClock(raw)
	}

	var task *model.Task
	var err error
	if f.original == nil {
		task, err = remote.CreateTask(ctx, model.TaskCreate{
			Title:       strings.TrimSpace(f.Title),
			Description: strings.TrimSpace(f.Description),
			DueDate:     dueDate,
			DueTime:     dueTime,
			Importance:  importance,
			Finished:    false,
			UserID:      f.userID,
		})
	} else {
		patch := f.patch(dueDate, dueTime, importance)
		if patch.IsZero() {
			return f.original, nil
		}
		task, err = remote.UpdateTask(ctx, f.original.ID, patch)
	}
	if err != nil {
		return nil, err
	}
	if local != nil {
		local.ApplyMutationResult(*task)
	}
	return task, nil
}

// patch builds a true partial update: only fields that differ from
// the original are present, so nothing else can be reset by accident.
func (f *TaskForm) patch(dueDate model.Date, dueTime model.Clock, importance int) model.TaskPatch {
	var patch model.TaskPatch
	if title := strings.TrimSpace(f.Title); title != f.original.Title {
		patch.Title = &title
	}
	if desc := strings.TrimSpace(f.Description); desc != f.original.Description {
		patch.Description = &desc
	}
	if dueDate != f.original.DueDate {
		patch.DueDate = &dueDate
	}
	if dueTime != f.original.DueTime {
		patch.DueTime = &dueTime
	}
	if importance != f.original.Importance {
		patch.Importance = &importance
	}
	return patch
}

// NoteMutator is the slice of the gateway the note form needs.
type NoteMutator interface {
	CreateNote(ctx context.Context, in model.NoteCreate) (*model.Note, error)
	UpdateNote(ctx context.Context, id int64, patch model.NotePatch) (*model.Note, error)
}

// NoteUpserter receives confirmed note mutation results.
type NoteUpserter interface {
	ApplyMutationResult(note model.Note)
}

// NoteForm is the dialog state for creating or editing one note.
type NoteForm struct {
	Title       string
	Description string

	userID   int64
	original *model.Note
}

// NewNoteForm opens a create form for the user.
func NewNoteForm(userID int64) *NoteForm {
	return &NoteForm{userID: userID}
}

// EditNoteForm opens an edit form pre-populated from the note.
func EditNoteForm(note model.Note) *NoteForm {
	return &NoteForm{
		Title:       note.Title,
		Description: note.Description,
		userID:      note.UserID,
		original:    &note,
	}
}

// Validate checks the single required field.
func (f *NoteForm) Validate() Errors {
	if strings.TrimSpace(f.Title) == "" {
		return Errors{{Field: "title", Message: "title is required"}}
	}
	return nil
}

// Submit mirrors TaskForm.Submit for notes.
func (f *NoteForm) Submit(ctx context.Context, remote NoteMutator, local NoteUpserter) (*model.Note, error) {
	if errs := f.Validate(); len(errs) > 0 {
		return nil, errs
	}

	var note *model.Note
	var err error
	if f.original == nil {
		note, err = remote.CreateNote(ctx, model.NoteCreate{
			Title:       strings.TrimSpace(f.Title),
			Description: strings.TrimSpace(f.Description),
			UserID:      f.userID,
		})
	} else {
		var patch model.NotePatch
		if title := strings.TrimSpace(f.Title); title != f.original.Title {
			patch.Title = &title
		}
		if desc := strings.TrimSpace(f.Description); desc != f.original.Description {
			patch.Description = &desc
		}
		if patch.IsZero() {
			return f.original, nil
		}
		note, err = remote.UpdateNote(ctx, f.original.ID, patch)
	}
	if err != nil {
		return nil, err
	}
	if local != nil {
		local.ApplyMutationResult(*note)
	}
	return note, nil
}
