package store

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"tableflip.dev/dayplan/pkg/model"
)

type fakeTaskGateway struct {
	mu      sync.Mutex
	byUser  map[int64][]model.Task
	inRange []model.Task
	err     error

	calls []string

	// When set, the nth TasksByUser call blocks on waits[n], which
	// lets tests order overlapping loads deliberately.
	waits []chan []model.Task
	seen  int
}

func (f *fakeTaskGateway) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeTaskGateway) TasksByUser(_ context.Context, userID int64) ([]model.Task, error) {
	f.record("by-user")
	f.mu.Lock()
	var wait chan []model.Task
	if f.seen < len(f.waits) {
		wait = f.waits[f.seen]
		f.seen++
	}
	f.mu.Unlock()
	if wait != nil {
		return <-wait, nil
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.byUser[userID], nil
}

func (f *fakeTaskGateway) TasksInRange(_ context.Context, userID int64, start, end model.Date) ([]model.Task, error) {
	f.record("in-range")
	if f.err != nil {
		return nil, f.err
	}
	var out []model.Task
	for _, task := range f.byUser[userID] {
		if task.DueDate.Within(start, end) {
			out = append(out, task)
		}
	}
	return out, nil
}

func (f *fakeTaskGateway) CleanupTasks(_ context.Context, userID int64, days int) error {
	f.record("cleanup")
	if f.err != nil {
		return f.err
	}
	return nil
}

func sampleTasks() []model.Task {
	return []model.Task{
		{ID: 1, Title: "A", DueDate: "2025-01-01", UserID: 1},
		{ID: 2, Title: "B", DueDate: "2025-01-02", Finished: true, UserID: 1},
	}
}

func TestLoadReplacesCollection(t *testing.T) {
	gw := &fakeTaskGateway{byUser: map[int64][]model.Task{1: sampleTasks()}}
	s := NewTaskStore(gw)

	if err := s.Load(context.Background(), 1); err != nil {
		t.Fatal(err)
	}
	if got := s.Tasks(); len(got) != 2 || got[0].ID != 1 || got[1].ID != 2 {
		t.Fatalf("unexpected tasks: %+v", got)
	}
	if s.Err() != nil {
		t.Fatalf("unexpected err: %v", s.Err())
	}
}

func TestLoadFailureKeepsPreviousState(t *testing.T) {
	gw := &fakeTaskGateway{byUser: map[int64][]model.Task{1: sampleTasks()}}
	s := NewTaskStore(gw)
	if err := s.Load(context.Background(), 1); err != nil {
		t.Fatal(err)
	}

	gw.err = errors.New("backend down")
	if err := s.Load(context.Background(), 1); err == nil {
		t.Fatal("expected load error")
	}
	if got := s.Tasks(); len(got) != 2 {
		t.Fatalf("failed load should keep previous tasks, got %+v", got)
	}
	if s.Err() == nil {
		t.Fatal("expected error flag set")
	}

	gw.err = nil
	if err := s.Load(context.Background(), 1); err != nil {
		t.Fatal(err)
	}
	if s.Err() != nil {
		t.Fatalf("error flag should clear on success, got %v", s.Err())
	}
}

func TestStaleLoadResponseDiscarded(t *testing.T) {
	first := make(chan []model.Task)
	second := make(chan []model.Task)
	gw := &fakeTaskGateway{waits: []chan []model.Task{first, second}}
	s := NewTaskStore(gw)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_ = s.Load(context.Background(), 1)
	}()
	// Give the first load time to be issued before the second.
	time.Sleep(50 * time.Millisecond)
	go func() {
		defer wg.Done()
		_ = s.Load(context.Background(), 1)
	}()
	time.Sleep(50 * time.Millisecond)

	// Release the newest load first, then let the stale one resolve.
	second <- []model.Task{{ID: 9, Title: "fresh", DueDate: "2025-05-01"}}
	first <- []model.Task{{ID: 8, Title: "stale", DueDate: "2025-04-01"}}
	wg.Wait()

	got := s.Tasks()
	if len(got) != 1 || got[0].ID != 9 {
		t.Fatalf("expected the latest-issued load to win, got %+v", got)
	}
}

func TestApplyMutationResultUpsert(t *testing.T) {
	gw := &fakeTaskGateway{byUser: map[int64][]model.Task{1: sampleTasks()}}
	s := NewTaskStore(gw)
	if err := s.Load(context.Background(), 1); err != nil {
		t.Fatal(err)
	}

	// Replace in place preserves order.
	updated := model.Task{ID: 1, Title: "A2", DueDate: "2025-01-05", UserID: 1}
	s.ApplyMutationResult(updated)
	got := s.Tasks()
	if got[0].ID != 1 || got[0].Title != "A2" || got[1].ID != 2 {
		t.Fatalf("in-place replace broke order: %+v", got)
	}

	// Round-trip: reading back by id yields the exact task.
	fetched, ok := s.Get(1)
	if !ok || !reflect.DeepEqual(fetched, updated) {
		t.Fatalf("Get(1): got %+v, want %+v", fetched, updated)
	}

	// Unknown id appends.
	s.ApplyMutationResult(model.Task{ID: 3, Title: "C", DueDate: "2025-01-03", UserID: 1})
	if got := s.Tasks(); len(got) != 3 || got[2].ID != 3 {
		t.Fatalf("expected append at tail: %+v", got)
	}
}

func TestRemoveFiltersByID(t *testing.T) {
	gw := &fakeTaskGateway{byUser: map[int64][]model.Task{1: sampleTasks()}}
	s := NewTaskStore(gw)
	if err := s.Load(context.Background(), 1); err != nil {
		t.Fatal(err)
	}

	s.Remove(1)
	if got := s.Tasks(); len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("unexpected tasks after remove: %+v", got)
	}
	s.Remove(99) // absent id is a no-op
	if got := s.Tasks(); len(got) != 1 {
		t.Fatalf("remove of unknown id changed the list: %+v", got)
	}
}

func TestBulkCleanupReloadsFromServer(t *testing.T) {
	after := []model.Task{{ID: 2, Title: "B", DueDate: "2025-01-02", Finished: true, UserID: 1}}
	gw := &fakeTaskGateway{byUser: map[int64][]model.Task{1: after}}
	s := NewTaskStore(gw)
	s.ApplyMutationResult(model.Task{ID: 1, Title: "old", DueDate: "2024-01-01", UserID: 1})

	if err := s.BulkCleanup(context.Background(), 1, 30); err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(gw.calls, []string{"cleanup", "by-user"}) {
		t.Fatalf("expected one cleanup then one reload, got %v", gw.calls)
	}
	if got := s.Tasks(); !reflect.DeepEqual(got, after) {
		t.Fatalf("store should equal server response, got %+v", got)
	}
}

func TestBulkCleanupFailureSkipsReload(t *testing.T) {
	gw := &fakeTaskGateway{err: errors.New("nope")}
	s := NewTaskStore(gw)
	if err := s.BulkCleanup(context.Background(), 1, 30); err == nil {
		t.Fatal("expected cleanup error")
	}
	if !reflect.DeepEqual(gw.calls, []string{"cleanup"}) {
		t.Fatalf("reload should not run after failed cleanup: %v", gw.calls)
	}
}

func TestSwitchingUsersDiscards(t *testing.T) {
	gw := &fakeTaskGateway{byUser: map[int64][]model.Task{
		1: sampleTasks(),
		2: {{ID: 7, Title: "Z", DueDate: "2025-06-01", UserID: 2}},
	}}
	s := NewTaskStore(gw)
	if err := s.Load(context.Background(), 1); err != nil {
		t.Fatal(err)
	}
	if err := s.Load(context.Background(), 2); err != nil {
		t.Fatal(err)
	}
	got := s.Tasks()
	if len(got) != 1 || got[0].ID != 7 {
		t.Fatalf("expected only user 2 tasks, got %+v", got)
	}
	if s.UserID() != 2 {
		t.Fatalf("unexpected user id %d", s.UserID())
	}
}

func TestLoadInRangeUsesRangeEndpoint(t *testing.T) {
	gw := &fakeTaskGateway{byUser: map[int64][]model.Task{1: sampleTasks()}}
	s := NewTaskStore(gw)

	if err := s.LoadInRange(context.Background(), 1, "2025-01-02", "2025-01-31"); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(gw.calls, []string{"in-range"}) {
		t.Fatalf("unexpected calls %v", gw.calls)
	}
	if got := s.Tasks(); len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("unexpected range result: %+v", got)
	}
}
