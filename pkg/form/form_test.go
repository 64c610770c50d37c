package form

import (
	"context"
	"errors"
	"testing"

	"tableflip.dev/dayplan/pkg/model"
	"tableflip.dev/dayplan/pkg/store"
)

type fakeTaskMutator struct {
	created    []model.TaskCreate
	updated    map[int64]model.TaskPatch
	nextID     int64
	failCreate error
	failUpdate error
}

func (f *fakeTaskMutator) CreateTask(_ context.Context, in model.TaskCreate) (*model.Task, error) {
	if f.failCreate != nil {
		return nil, f.failCreate
	}
	f.created = append(f.created, in)
	f.nextID++
	return &model.Task{
		ID:          f.nextID,
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		DueTime:     in.DueTime,
		Importance:  in.Importance,
		Finished:    in.Finished,
		DateMade:    "2025-01-01",
		UserID:      in.UserID,
	}, nil
}

func (f *fakeTaskMutator) UpdateTask(_ context.Context, id int64, patch model.TaskPatch) (*model.Task, error) {
	if f.failUpdate != nil {
		return nil, f.failUpdate
	}
	if f.updated == nil {
		f.updated = make(map[int64]model.TaskPatch)
	}
	f.updated[id] = patch
	task := model.Task{ID: id, Title: "patched", DueDate: "2025-01-01", UserID: 1}
	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.DueDate != nil {
		task.DueDate = *patch.DueDate
	}
	return &task, nil
}

func TestEmptyTitleBlocksSubmission(t *testing.T) {
	remote := &fakeTaskMutator{}
	tasks := store.NewTaskStore(nil)

	f := NewTaskForm(1)
	f.Title = "   "
	f.DueDate = "2025-01-01"

	_, err := f.Submit(context.Background(), remote, tasks)
	var errs Errors
	if !errors.As(err, &errs) {
		t.Fatalf("expected validation errors, got %v", err)
	}
	if errs.ByField("title") == "" {
		t.Fatalf("expected a title error, got %v", errs)
	}
	if len(remote.created) != 0 {
		t.Fatal("network call issued despite validation failure")
	}
	if len(tasks.Tasks()) != 0 {
		t.Fatal("store changed despite validation failure")
	}
}

func TestMissingDueDateBlocksSubmission(t *testing.T) {
	f := NewTaskForm(1)
	f.Title = "Call dentist"

	errs := f.Validate()
	if errs.ByField("due_date") == "" {
		t.Fatalf("expected due_date error, got %v", errs)
	}
}

func TestBadFormatsReported(t *testing.T) {
	f := NewTaskForm(1)
	f.Title = "X"
	f.DueDate = "01/02/2025"
	f.DueTime = "9pm"
	f.Importance = "7"

	errs := f.Validate()
	for _, field := range []string{"due_date", "due_time", "importance"} {
		if errs.ByField(field) == "" {
			t.Errorf("expected %s error, got %v", field, errs)
		}
	}
}

func TestCreateForcesFinishedFalse(t *testing.T) {
	remote := &fakeTaskMutator{}
	tasks := store.NewTaskStore(nil)

	f := NewTaskForm(4)
	f.Title = "  Water plants "
	f.DueDate = "2025-03-01"
	f.DueTime = "08:00"
	f.Importance = "2"

	created, err := f.Submit(context.Background(), remote, tasks)
	if err != nil {
		t.Fatal(err)
	}
	if len(remote.created) != 1 {
		t.Fatalf("expected one create call, got %d", len(remote.created))
	}
	sent := remote.created[0]
	if sent.Finished {
		t.Fatal("create must force finished=false")
	}
	if sent.Title != "Water plants" {
		t.Fatalf("title not trimmed: %q", sent.Title)
	}
	if sent.UserID != 4 {
		t.Fatalf("user id not carried: %d", sent.UserID)
	}

	// Confirmed result flows into the store.
	got, ok := tasks.Get(created.ID)
	if !ok || got.Title != "Water plants" {
		t.Fatalf("store missing created task: %+v ok=%v", got, ok)
	}
}

func TestEditSendsOnlyChangedFields(t *testing.T) {
	original := model.Task{
		ID: 5, Title: "Plan trip", Description: "see wiki",
		DueDate: "2025-04-01", DueTime: "10:00", Importance: 2, UserID: 1,
	}
	remote := &fakeTaskMutator{}
	f := EditTaskForm(original)
	f.DueDate = "2025-04-08" // the only change

	if _, err := f.Submit(context.Background(), remote, nil); err != nil {
		t.Fatal(err)
	}

	patch := remote.updated[5]
	if patch.DueDate == nil || *patch.DueDate != "2025-04-08" {
		t.Fatalf("expected due_date in patch: %+v", patch)
	}
	if patch.Title != nil || patch.Description != nil || patch.DueTime != nil || patch.Importance != nil {
		t.Fatalf("unchanged fields leaked into patch: %+v", patch)
	}
}

func TestEditWithNoChangesSkipsNetwork(t *testing.T) {
	original := model.Task{ID: 5, Title: "Plan trip", DueDate: "2025-04-01", UserID: 1}
	remote := &fakeTaskMutator{}
	f := EditTaskForm(original)

	got, err := f.Submit(context.Background(), remote, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(remote.updated) != 0 {
		t.Fatal("no-op edit should not call the gateway")
	}
	if got.ID != 5 {
		t.Fatalf("expected the original back, got %+v", got)
	}
}

func TestSubmitFailureLeavesFormAndStore(t *testing.T) {
	remote := &fakeTaskMutator{failCreate: errors.New("503")}
	tasks := store.NewTaskStore(nil)

	f := NewTaskForm(1)
	f.Title = "Doomed"
	f.DueDate = "2025-01-01"

	if _, err := f.Submit(context.Background(), remote, tasks); err == nil {
		t.Fatal("expected submit error")
	}
	if f.Title != "Doomed" {
		t.Fatal("form input lost on failure")
	}
	if len(tasks.Tasks()) != 0 {
		t.Fatal("store committed partial state on failure")
	}
}

type fakeNoteMutator struct {
	created []model.NoteCreate
	updated map[int64]model.NotePatch
}

func (f *fakeNoteMutator) CreateNote(_ context.Context, in model.NoteCreate) (*model.Note, error) {
	f.created = append(f.created, in)
	return &model.Note{ID: 1, Title: in.Title, Description: in.Description, UserID: in.UserID}, nil
}

func (f *fakeNoteMutator) UpdateNote(_ context.Context, id int64, patch model.NotePatch) (*model.Note, error) {
	if f.updated == nil {
		f.updated = make(map[int64]model.NotePatch)
	}
	f.updated[id] = patch
	return &model.Note{ID: id, Title: "t", UserID: 1}, nil
}

func TestNoteFormRequiresTitle(t *testing.T) {
	remote := &fakeNoteMutator{}
	f := NewNoteForm(1)
	f.Description = "body without a title"

	if _, err := f.Submit(context.Background(), remote, nil); err == nil {
		t.Fatal("expected validation error")
	}
	if len(remote.created) != 0 {
		t.Fatal("network call issued despite validation failure")
	}
}

func TestNoteEditPatchesOnlyChanges(t *testing.T) {
	remote := &fakeNoteMutator{}
	f := EditNoteForm(model.Note{ID: 2, Title: "shopping", Description: "eggs", UserID: 1})
	f.Description = "eggs, flour"

	if _, err := f.Submit(context.Background(), remote, nil); err != nil {
		t.Fatal(err)
	}
	patch := remote.updated[2]
	if patch.Title != nil {
		t.Fatalf("title leaked into patch: %+v", patch)
	}
	if patch.Description == nil || *patch.Description != "eggs, flour" {
		t.Fatalf("description missing from patch: %+v", patch)
	}
}
