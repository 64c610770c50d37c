package cleanup

import (
	"context"
	"errors"
	"testing"
)

type fakeCollection struct {
	calls int
	days  int
	err   error
}

func (f *fakeCollection) BulkCleanup(ctx context.Context, userID int64, days int) error {
	f.calls++
	f.days = days
	return f.err
}

func TestDeclinedConfirmSkipsCleanup(t *testing.T) {
	fake := &fakeCollection{}
	n := &Cleanup{
		UserID: 7, Days: 30, Kind: "tasks",
		Store:   fake,
		Confirm: func(string) (bool, error) { return false, nil },
	}
	if err := n.Do(context.Background()); err != nil {
		t.Fatal(err)
	}
	if fake.calls != 0 {
		t.Error("declined confirmation must not touch the server")
	}
}

func TestConfirmedCleanupRuns(t *testing.T) {
	fake := &fakeCollection{}
	n := &Cleanup{
		UserID: 7, Days: 14, Kind: "notes",
		Store:   fake,
		Confirm: func(string) (bool, error) { return true, nil },
	}
	if err := n.Do(context.Background()); err != nil {
		t.Fatal(err)
	}
	if fake.calls != 1 || fake.days != 14 {
		t.Errorf("expected one cleanup of 14 days, got calls=%d days=%d", fake.calls, fake.days)
	}
}

func TestYesBypassesPrompt(t *testing.T) {
	fake := &fakeCollection{}
	n := &Cleanup{
		UserID: 7, Days: 30, Kind: "tasks", Yes: true,
		Store: fake,
		Confirm: func(string) (bool, error) {
			t.Error("prompt must not run with --yes")
			return false, nil
		},
	}
	if err := n.Do(context.Background()); err != nil {
		t.Fatal(err)
	}
	if fake.calls != 1 {
		t.Error("cleanup should have run")
	}
}

func TestNegativeDaysRejectedLocally(t *testing.T) {
	fake := &fakeCollection{}
	n := &Cleanup{UserID: 7, Days: -1, Kind: "tasks", Yes: true, Store: fake}
	if err := n.Do(context.Background()); err == nil {
		t.Fatal("expected an error")
	}
	if fake.calls != 0 {
		t.Error("invalid input must not reach the server")
	}
}

func TestCleanupFailureSurfaces(t *testing.T) {
	fake := &fakeCollection{err: errors.New("boom")}
	n := &Cleanup{UserID: 7, Days: 30, Kind: "tasks", Yes: true, Store: fake}
	if err := n.Do(context.Background()); err == nil {
		t.Fatal("expected the store error")
	}
}
