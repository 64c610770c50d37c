// Package store keeps the client-side copy of one user's tasks and
// notes in sync with the gateway. Mutations are applied locally only
// after the server confirms them, so there is never anything to roll
// back.
package store

import (
	"context"
	"sync"

	"tableflip.dev/dayplan/pkg/model"
)

// TaskGateway is the slice of the remote client the task store needs.
type TaskGateway interface {
	TasksByUser(ctx context.Context, userID int64) ([]model.Task, error)
	TasksInRange(ctx context.Context, userID int64, start, end model.Date) ([]model.Task, error)
	CleanupTasks(ctx context.Context, userID int64, days int) error
}

// TaskStore owns the authoritative-for-the-session task list of one
// user. Switching users discards and refetches.
type TaskStore struct {
	gateway TaskGateway

	mu     sync.Mutex
	userID int64
	tasks  []model.Task
	err    error

	// Loads are tagged with a sequence number at issue time; a
	// response that is not the latest issued load is discarded, so
	// the list always reflects the most recent intent.
	issued  uint64
	applied uint64
}

// NewTaskStore builds an empty store over the given gateway.
func NewTaskStore(gateway TaskGateway) *TaskStore {
	return &TaskStore{gateway: gateway}
}

// Load replaces the whole collection with the user's full task list.
func (s *TaskStore) Load(ctx context.Context, userID int64) error {
	seq := s.begin(userID)
	tasks, err := s.gateway.TasksByUser(ctx, userID)
	return s.install(seq, tasks, err)
}

// LoadInRange replaces the collection with the range-filtered server
// result. Switching back to the full view goes through Load again;
// the two are never merged.
func (s *TaskStore) LoadInRange(ctx context.Context, userID int64, start, end model.Date) error {
	seq := s.begin(userID)
	tasks, err := s.gateway.TasksInRange(ctx, userID, start, end)
	return s.install(seq, tasks, err)
}

// begin records a new outstanding load and handles user switches.
func (s *TaskStore) begin(userID int64) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userID != userID {
		s.userID = userID
		s.tasks = nil
		s.err = nil
	}
	s.issued++
	return s.issued
}

// install commits a load result unless a newer load has been issued
// since. Failures keep the previous list and surface through Err.
func (s *TaskStore) install(seq uint64, tasks []model.Task, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq < s.issued || seq <= s.applied {
		// A newer load owns the collection now.
		return nil
	}
	s.applied = seq
	if err != nil {
		s.err = err
		return err
	}
	s.err = nil
	s.tasks = tasks
	return nil
}

// ApplyMutationResult upserts the server-confirmed task: replace in
// place when the id exists, append otherwise. The server is
// authoritative for computed and defaulted fields.
func (s *TaskStore) ApplyMutationResult(task model.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == task.ID {
			s.tasks[i] = task
			return
		}
	}
	s.tasks = append(s.tasks, task)
}

// Remove drops the task with the given id, if present.
func (s *TaskStore) Remove(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.tasks[:0]
	for _, task := range s.tasks {
		if task.ID != id {
			kept = append(kept, task)
		}
	}
	s.tasks = kept
}

// BulkCleanup deletes tasks older than the given age server-side, then
// reloads. No attempt is made to predict which ids went away.
func (s *TaskStore) BulkCleanup(ctx context.Context, userID int64, days int) error {
	if err := s.gateway.CleanupTasks(ctx, userID, days); err != nil {
		return err
	}
	return s.Load(ctx, userID)
}

// Tasks returns a copy of the current list in stored order.
func (s *TaskStore) Tasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Get looks a task up by id.
func (s *TaskStore) Get(id int64) (model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, task := range s.tasks {
		if task.ID == id {
			return task, true
		}
	}
	return model.Task{}, false
}

// Err reports the last load failure, or nil after a successful load.
func (s *TaskStore) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// UserID reports whose tasks the store currently holds.
func (s *TaskStore) UserID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID
}
