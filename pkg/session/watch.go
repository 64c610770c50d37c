package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventType describes a session change notification.
type EventType int

const (
	// EventSessionChanged fires when another process logs in or out.
	EventSessionChanged EventType = iota

	// EventPrefsChanged fires when saved view preferences change.
	EventPrefsChanged
)

// Event is emitted by Watch when the on-disk session state changes.
type Event struct {
	Type EventType
}

// Watch streams change events until ctx is cancelled. Callers should
// drain the channel; bursty writes are coalesced so a running UI
// redraws once per burst.
func (s *Store) Watch(ctx context.Context) (<-chan Event, error) {
	if s.basePath == "" {
		return nil, errors.New("session: base path unknown")
	}
	if err := os.MkdirAll(s.basePath, 0o755); err != nil {
		return nil, fmt.Errorf("session: ensure base path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("session: create watcher: %w", err)
	}
	if err := watcher.Add(s.basePath); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("session: watch %s: %w", s.basePath, err)
	}

	events := make(chan Event, 8)

	go func() {
		defer close(events)
		defer func() { _ = watcher.Close() }()

		send := func(ev Event) {
			select {
			case events <- ev:
			default:
				// Drop when the consumer lags; the next refresh reads
				// the full state anyway.
			}
		}

		throttle := newThrottle(100 * time.Millisecond)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				throttle.Enqueue(Event{Type: EventSessionChanged}, send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				switch filepath.Base(evt.Name) {
				case prefsKey:
					throttle.Enqueue(Event{Type: EventPrefsChanged}, send)
				case sessionKey:
					throttle.Enqueue(Event{Type: EventSessionChanged}, send)
				}
			}
		}
	}()

	return events, nil
}

// throttle coalesces rapid notifications per event type.
type throttle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[EventType]struct{}
	delay   time.Duration
}

func newThrottle(delay time.Duration) *throttle {
	return &throttle{
		delay:   delay,
		pending: make(map[EventType]struct{}),
	}
}

func (t *throttle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	t.pending[ev.Type] = struct{}{}
	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
	t.mu.Unlock()
}

func (t *throttle) flush(send func(Event)) {
	t.mu.Lock()
	pending := t.pending
	t.pending = make(map[EventType]struct{})
	t.timer = nil
	t.mu.Unlock()

	for eventType := range pending {
		send(Event{Type: eventType})
	}
}

func (t *throttle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
