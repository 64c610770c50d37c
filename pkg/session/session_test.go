package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"tableflip.dev/dayplan/pkg/config"
	"tableflip.dev/dayplan/pkg/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Load(config.Static("http://localhost:8000", t.TempDir(), time.Second))
	if err != nil {
		t.Fatal(err)
	}
	return store
}

func TestLoginLogoutRoundTrip(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Current(); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession before login, got %v", err)
	}

	user := model.User{ID: 3, Name: "Sam", Email: "sam@example.com"}
	if _, err := store.Login(user); err != nil {
		t.Fatal(err)
	}

	active, err := store.Current()
	if err != nil {
		t.Fatal(err)
	}
	if active.UserID != 3 || active.Name != "Sam" {
		t.Fatalf("unexpected session: %+v", active)
	}

	if err := store.Logout(); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Current(); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession after logout, got %v", err)
	}
	// Logout is idempotent.
	if err := store.Logout(); err != nil {
		t.Fatalf("second logout: %v", err)
	}
}

func TestPrefsSurviveLogout(t *testing.T) {
	store := newTestStore(t)

	if got := store.Prefs(); got != (Prefs{}) {
		t.Fatalf("expected zero prefs, got %+v", got)
	}

	want := Prefs{Tab: "active", SortKey: "importance", SortDesc: true}
	if err := store.SavePrefs(want); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Login(model.User{ID: 1, Name: "A"}); err != nil {
		t.Fatal(err)
	}
	if err := store.Logout(); err != nil {
		t.Fatal(err)
	}
	if got := store.Prefs(); got != want {
		t.Fatalf("prefs: got %+v, want %+v", got, want)
	}
}

func TestWatchSeesLogin(t *testing.T) {
	store := newTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := store.Watch(ctx)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := store.Login(model.User{ID: 9, Name: "Kit"}); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(3 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				t.Fatal("event channel closed early")
			}
			if ev.Type == EventSessionChanged {
				return
			}
		case <-deadline:
			t.Fatal("no session change event observed")
		}
	}
}
