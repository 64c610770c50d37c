// Package reschedule maps a pick-up/move/drop gesture on a task onto
// a single due-date mutation.
package reschedule

import (
	"context"
	"errors"
	"sync"

	"tableflip.dev/dayplan/pkg/model"
)

// Phase tracks the gesture state machine for one controller.
type Phase int

const (
	Idle Phase = iota
	Dragging
	Submitting
)

// Zone is a drop target: a day column, optionally split into a
// pending lane and a done lane. A nil Completed means the drop keeps
// the task's current finished state.
type Zone struct {
	Day       model.Date
	Completed *bool
}

// Updater is the slice of the gateway the controller needs.
type Updater interface {
	UpdateTask(ctx context.Context, id int64, patch model.TaskPatch) (*model.Task, error)
}

// Upserter receives the server-confirmed task after a drop.
type Upserter interface {
	ApplyMutationResult(task model.Task)
}

var (
	// ErrBusy means a gesture or its mutation is already in flight.
	ErrBusy = errors.New("reschedule: gesture already in progress")
	// ErrNotDragging means Drop or Cancel was called from Idle.
	ErrNotDragging = errors.New("reschedule: no task picked up")
)

// Controller runs the Idle → Dragging → (drop | cancel) machine.
// At most one mutation is in flight per gesture; a new pick-up is
// rejected until the previous one resolves. Drop runs off the event
// loop, so the gesture state is mutex-guarded; the lock is never held
// across the network call.
type Controller struct {
	remote Updater
	local  Upserter

	mu    sync.Mutex
	phase Phase
	task  model.Task
}

// NewController wires a controller over the gateway and store.
func NewController(remote Updater, local Upserter) *Controller {
	return &Controller{remote: remote, local: local}
}

// Phase exposes the current gesture state.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Dragging returns the task in hand while a gesture is active.
func (c *Controller) Dragging() (model.Task, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase == Idle {
		return model.Task{}, false
	}
	return c.task, true
}

// PickUp begins a gesture for the task.
func (c *Controller) PickUp(task model.Task) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != Idle {
		return ErrBusy
	}
	c.phase = Dragging
	c.task = task
	return nil
}

// Cancel abandons the gesture without any mutation. Dropping outside
// every zone is a cancel.
func (c *Controller) Cancel() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != Dragging {
		return ErrNotDragging
	}
	c.phase = Idle
	return nil
}

// Drop releases the task over a zone and issues exactly one partial
// update: the zone's day, plus the zone's completed flag when it
// carries one (the task's current value otherwise). On success the
// confirmed task is upserted locally; on failure nothing changed, so
// the view reverts on its own.
func (c *Controller) Drop(ctx context.Context, zone Zone) (*model.Task, error) {
	c.mu.Lock()
	if c.phase != Dragging {
		c.mu.Unlock()
		return nil, ErrNotDragging
	}
	c.phase = Submitting
	carried := c.task
	c.mu.Unlock()

	finished := carried.Finished
	if zone.Completed != nil {
		finished = *zone.Completed
	}
	patch := model.TaskPatch{
		DueDate:  model.Ptr(zone.Day),
		Finished: model.Ptr(finished),
	}

	task, err := c.remote.UpdateTask(ctx, carried.ID, patch)

	c.mu.Lock()
	c.phase = Idle
	c.mu.Unlock()

	if err != nil {
		return nil, err
	}
	if c.local != nil {
		c.local.ApplyMutationResult(*task)
	}
	return task, nil
}
