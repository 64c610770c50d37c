package store

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"tableflip.dev/dayplan/pkg/model"
)

type fakeNoteGateway struct {
	notes []model.Note
	err   error
	calls []string
}

func (f *fakeNoteGateway) NotesByUser(_ context.Context, userID int64) ([]model.Note, error) {
	f.calls = append(f.calls, "by-user")
	if f.err != nil {
		return nil, f.err
	}
	return f.notes, nil
}

func (f *fakeNoteGateway) CleanupNotes(_ context.Context, userID int64, days int) error {
	f.calls = append(f.calls, "cleanup")
	return f.err
}

func TestNoteStoreLoadAndUpsert(t *testing.T) {
	gw := &fakeNoteGateway{notes: []model.Note{
		{ID: 1, Title: "groceries", UserID: 1},
		{ID: 2, Title: "ideas", UserID: 1},
	}}
	s := NewNoteStore(gw)
	if err := s.Load(context.Background(), 1); err != nil {
		t.Fatal(err)
	}

	s.ApplyMutationResult(model.Note{ID: 1, Title: "groceries v2", UserID: 1})
	got := s.Notes()
	if got[0].Title != "groceries v2" || got[1].ID != 2 {
		t.Fatalf("upsert broke order: %+v", got)
	}

	s.Remove(2)
	if got := s.Notes(); len(got) != 1 {
		t.Fatalf("remove failed: %+v", got)
	}
}

func TestNoteStoreCleanupOrderAndFailure(t *testing.T) {
	gw := &fakeNoteGateway{notes: []model.Note{{ID: 3, Title: "kept", UserID: 1}}}
	s := NewNoteStore(gw)

	if err := s.BulkCleanup(context.Background(), 1, 60); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(gw.calls, []string{"cleanup", "by-user"}) {
		t.Fatalf("unexpected call order %v", gw.calls)
	}

	gw.err = errors.New("down")
	gw.calls = nil
	if err := s.BulkCleanup(context.Background(), 1, 60); err == nil {
		t.Fatal("expected error")
	}
	if !reflect.DeepEqual(gw.calls, []string{"cleanup"}) {
		t.Fatalf("reload ran after failed cleanup: %v", gw.calls)
	}
	if got := s.Notes(); len(got) != 1 || got[0].ID != 3 {
		t.Fatalf("failure should keep previous notes: %+v", got)
	}
}
