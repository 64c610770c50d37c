package login

import (
	"context"
	"errors"
	"testing"

	"tableflip.dev/dayplan/pkg/config"
	"tableflip.dev/dayplan/pkg/model"
	"tableflip.dev/dayplan/pkg/session"
)

type fakeAccounts struct {
	users   []model.User
	created []model.UserCreate
	deleted []int64
}

func (f *fakeAccounts) CreateUser(ctx context.Context, in model.UserCreate) (*model.User, error) {
	f.created = append(f.created, in)
	u := model.User{ID: int64(len(f.users) + 1), Name: in.Name, Email: in.Email}
	f.users = append(f.users, u)
	return &u, nil
}

func (f *fakeAccounts) ListUsers(ctx context.Context) ([]model.User, error) {
	return f.users, nil
}

func (f *fakeAccounts) UpdateUser(ctx context.Context, id int64, in model.UserCreate) (*model.User, error) {
	return &model.User{ID: id, Name: in.Name, Email: in.Email}, nil
}

func (f *fakeAccounts) DeleteUser(ctx context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func sessions(t *testing.T) *session.Store {
	t.Helper()
	s, err := session.Load(config.Static("http://localhost:8000", t.TempDir(), 0))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestLoginByEmail(t *testing.T) {
	fake := &fakeAccounts{users: []model.User{
		{ID: 4, Name: "Robin", Email: "robin@example.com"},
	}}
	s := sessions(t)

	n := &Login{Email: "Robin@Example.com", Remote: fake, Sessions: s}
	if err := n.Do(context.Background()); err != nil {
		t.Fatal(err)
	}

	active, err := s.Current()
	if err != nil {
		t.Fatal(err)
	}
	if active.UserID != 4 {
		t.Errorf("expected user 4, got %d", active.UserID)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	fake := &fakeAccounts{}
	s := sessions(t)

	n := &Login{Email: "nobody@example.com", Remote: fake, Sessions: s}
	if err := n.Do(context.Background()); !errors.Is(err, ErrUnknownEmail) {
		t.Fatalf("expected ErrUnknownEmail, got %v", err)
	}
	if _, err := s.Current(); !errors.Is(err, session.ErrNoSession) {
		t.Error("failed login must not leave a session behind")
	}
}

func TestSignupCreatesAndLogsIn(t *testing.T) {
	fake := &fakeAccounts{}
	s := sessions(t)

	n := &Login{Email: "new@example.com", Name: "New Person", Signup: true, Remote: fake, Sessions: s}
	if err := n.Do(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(fake.created) != 1 {
		t.Fatalf("expected one create, got %d", len(fake.created))
	}
	if _, err := s.Current(); err != nil {
		t.Error("signup should log in")
	}
}

func TestDeleteDeclinedKeepsEverything(t *testing.T) {
	fake := &fakeAccounts{users: []model.User{{ID: 4, Name: "Robin", Email: "robin@example.com"}}}
	s := sessions(t)
	if _, err := s.Login(fake.users[0]); err != nil {
		t.Fatal(err)
	}

	n := &Delete{
		Remote: fake, Sessions: s,
		Confirm: func(string) (bool, error) { return false, nil },
	}
	if err := n.Do(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(fake.deleted) != 0 {
		t.Error("declined delete must not touch the server")
	}
	if _, err := s.Current(); err != nil {
		t.Error("session should survive a declined delete")
	}
}

func TestDeleteLogsOut(t *testing.T) {
	fake := &fakeAccounts{users: []model.User{{ID: 4, Name: "Robin", Email: "robin@example.com"}}}
	s := sessions(t)
	if _, err := s.Login(fake.users[0]); err != nil {
		t.Fatal(err)
	}

	n := &Delete{Yes: true, Remote: fake, Sessions: s}
	if err := n.Do(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(fake.deleted) != 1 || fake.deleted[0] != 4 {
		t.Errorf("expected delete of user 4, got %v", fake.deleted)
	}
	if _, err := s.Current(); !errors.Is(err, session.ErrNoSession) {
		t.Error("delete should log out")
	}
}
