// Package session persists the active identity and saved view
// preferences between runs. One session is current per profile
// directory; callers hold a *Store and pass it explicitly rather than
// reading ambient globals.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/dayplan/pkg/config"
	"tableflip.dev/dayplan/pkg/model"
)

// ErrNoSession is returned when no user is logged in.
var ErrNoSession = errors.New("session: not logged in, run `dayplan login`")

const (
	sessionKey = "session"
	prefsKey   = "prefs"
)

// Session is the client-held identity. The backend trusts the id as
// given; there is no token.
type Session struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// Prefs carries view state worth keeping across runs.
type Prefs struct {
	Tab      string `json:"tab,omitempty"`
	SortKey  string `json:"sort_key,omitempty"`
	SortDesc bool   `json:"sort_desc,omitempty"`
}

// Store reads and writes session state under the profile directory.
type Store struct {
	d        *diskv.Diskv
	basePath string
}

// Load opens the session store rooted at the configured base path.
func Load(cfg config.Config) (*Store, error) {
	if cfg == nil {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return nil, err
		}
	}
	basePath := cfg.BasePath()
	return &Store{
		d: diskv.New(diskv.Options{
			BasePath:     basePath,
			CacheSizeMax: 64 * 1024,
		}),
		basePath: basePath,
	}, nil
}

// Login records the user as current, replacing any prior session.
func (s *Store) Login(user model.User) (*Session, error) {
	active := &Session{UserID: user.ID, Name: user.Name, Email: user.Email}
	data, err := json.Marshal(active)
	if err != nil {
		return nil, err
	}
	if err := s.d.Write(sessionKey, data); err != nil {
		return nil, fmt.Errorf("session: persist: %w", err)
	}
	return active, nil
}

// Logout tears the session down. Preferences survive so the next login
// sees the same view.
func (s *Store) Logout() error {
	err := s.d.Erase(sessionKey)
	if err != nil && errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Current returns the active session or ErrNoSession.
func (s *Store) Current() (*Session, error) {
	data, err := s.d.Read(sessionKey)
	if err != nil {
		return nil, ErrNoSession
	}
	var active Session
	if err := json.Unmarshal(data, &active); err != nil {
		return nil, fmt.Errorf("session: corrupt session record: %w", err)
	}
	if active.UserID == 0 {
		return nil, ErrNoSession
	}
	return &active, nil
}

// SavePrefs stores the view preferences.
func (s *Store) SavePrefs(p Prefs) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return s.d.Write(prefsKey, data)
}

// Prefs returns saved preferences, or the zero value when none exist.
func (s *Store) Prefs() Prefs {
	data, err := s.d.Read(prefsKey)
	if err != nil {
		return Prefs{}
	}
	var p Prefs
	if err := json.Unmarshal(data, &p); err != nil {
		return Prefs{}
	}
	return p
}

// BasePath exposes the profile directory for the watcher.
func (s *Store) BasePath() string { return s.basePath }
