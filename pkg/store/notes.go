package store

import (
	"context"
	"sync"

	"tableflip.dev/dayplan/pkg/model"
)

// NoteGateway is the slice of the remote client the note store needs.
type NoteGateway interface {
	NotesByUser(ctx context.Context, userID int64) ([]model.Note, error)
	CleanupNotes(ctx context.Context, userID int64, days int) error
}

// NoteStore mirrors TaskStore for notes: wholesale loads, confirmed
// upserts, no local prediction.
type NoteStore struct {
	gateway NoteGateway

	mu     sync.Mutex
	userID int64
	notes  []model.Note
	err    error

	issued  uint64
	applied uint64
}

// NewNoteStore builds an empty store over the given gateway.
func NewNoteStore(gateway NoteGateway) *NoteStore {
	return &NoteStore{gateway: gateway}
}

// Load replaces the collection with the user's notes.
func (s *NoteStore) Load(ctx context.Context, userID int64) error {
	s.mu.Lock()
	if s.userID != userID {
		s.userID = userID
		s.notes = nil
		s.err = nil
	}
	s.issued++
	seq := s.issued
	s.mu.Unlock()

	notes, err := s.gateway.NotesByUser(ctx, userID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq < s.issued || seq <= s.applied {
		return nil
	}
	s.applied = seq
	if err != nil {
		s.err = err
		return err
	}
	s.err = nil
	s.notes = notes
	return nil
}

// ApplyMutationResult upserts the server-confirmed note.
func (s *NoteStore) ApplyMutationResult(note model.Note) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notes {
		if s.notes[i].ID == note.ID {
			s.notes[i] = note
			return
		}
	}
	s.notes = append(s.notes, note)
}

// Remove drops the note with the given id.
func (s *NoteStore) Remove(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.notes[:0]
	for _, note := range s.notes {
		if note.ID != id {
			kept = append(kept, note)
		}
	}
	s.notes = kept
}

// BulkCleanup deletes old notes server-side, then reloads.
func (s *NoteStore) BulkCleanup(ctx context.Context, userID int64, days int) error {
	if err := s.gateway.CleanupNotes(ctx, userID, days); err != nil {
		return err
	}
	return s.Load(ctx, userID)
}

// Notes returns a copy of the current list in stored order.
func (s *NoteStore) Notes() []model.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Note, len(s.notes))
	copy(out, s.notes)
	return out
}

// Err reports the last load failure, or nil after a successful load.
func (s *NoteStore) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
