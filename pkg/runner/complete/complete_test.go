package complete

import (
	"context"
	"testing"

	"tableflip.dev/dayplan/pkg/model"
	"tableflip.dev/dayplan/pkg/store"
)

type fakeUpdater struct {
	task    model.Task
	patches []model.TaskPatch
}

func (f *fakeUpdater) GetTask(ctx context.Context, id int64) (*model.Task, error) {
	t := f.task
	return &t, nil
}

func (f *fakeUpdater) UpdateTask(ctx context.Context, id int64, patch model.TaskPatch) (*model.Task, error) {
	f.patches = append(f.patches, patch)
	t := f.task
	if patch.Finished != nil {
		t.Finished = *patch.Finished
	}
	if patch.DateFinished != nil {
		t.DateFinished = *patch.DateFinished
	}
	return &t, nil
}

func TestCompleteSendsFinishedAndDateTogether(t *testing.T) {
	fake := &fakeUpdater{task: model.Task{ID: 1, Title: "write report", DueDate: "2025-02-03", UserID: 7}}
	tasks := store.NewTaskStore(nil)

	n := &Complete{ID: 1, Remote: fake, Tasks: tasks}
	if err := n.Do(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(fake.patches) != 1 {
		t.Fatalf("expected one patch, got %d", len(fake.patches))
	}
	p := fake.patches[0]
	if p.Finished == nil || !*p.Finished {
		t.Error("patch should set finished true")
	}
	if p.DateFinished == nil || p.DateFinished.IsZero() {
		t.Error("patch should carry a finish date alongside finished")
	}
	if p.Title != nil || p.DueDate != nil || p.Importance != nil {
		t.Error("patch should touch nothing but completion state")
	}
}

func TestReopenClearsFinishDate(t *testing.T) {
	fake := &fakeUpdater{task: model.Task{
		ID: 2, Title: "done thing", DueDate: "2025-02-03",
		Finished: true, DateFinished: "2025-02-04", UserID: 7,
	}}

	n := &Complete{ID: 2, Reopen: true, Remote: fake}
	if err := n.Do(context.Background()); err != nil {
		t.Fatal(err)
	}
	p := fake.patches[0]
	if p.Finished == nil || *p.Finished {
		t.Error("patch should set finished false")
	}
	if p.DateFinished == nil || !p.DateFinished.IsZero() {
		t.Error("patch should clear date_finished")
	}
}

func TestCompleteAlreadyFinishedIsNoop(t *testing.T) {
	fake := &fakeUpdater{task: model.Task{
		ID: 3, Title: "done", DueDate: "2025-02-03",
		Finished: true, DateFinished: "2025-02-04", UserID: 7,
	}}

	n := &Complete{ID: 3, Remote: fake}
	if err := n.Do(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(fake.patches) != 0 {
		t.Fatalf("no patch expected, got %d", len(fake.patches))
	}
}
