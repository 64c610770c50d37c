// Package login manages the active identity: log in by email, sign up,
// log out, and show or change the current account.
package login

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/dayplan/pkg/model"
	"tableflip.dev/dayplan/pkg/printers"
	"tableflip.dev/dayplan/pkg/session"
)

// Accounts is the slice of the gateway account flows need.
type Accounts interface {
	CreateUser(ctx context.Context, in model.UserCreate) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateUser(ctx context.Context, id int64, in model.UserCreate) (*model.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

// ErrUnknownEmail means no account matched the given address.
var ErrUnknownEmail = errors.New("login: no account with that email")

// Login resolves an email to an account and makes it the current
// session. With Signup set it creates the account first.
type Login struct {
	Email  string
	Name   string // required for signup
	Signup bool

	Remote   Accounts
	Sessions *session.Store
}

func (n *Login) Do(ctx context.Context) error {
	if n.Remote == nil || n.Sessions == nil {
		return errors.New("login: missing gateway or session store")
	}

	email := strings.TrimSpace(strings.ToLower(n.Email))
	if email == "" {
		return errors.New("login: email is required")
	}

	pp := printers.PrettyPrint{}

	var user *model.User
	if n.Signup {
		name := strings.TrimSpace(n.Name)
		if name == "" {
			return errors.New("login: name is required to sign up")
		}
		created, err := n.Remote.CreateUser(ctx, model.UserCreate{Name: name, Email: email})
		if err != nil {
			pp.Error(err)
			return err
		}
		user = created
	} else {
		found, err := findByEmail(ctx, n.Remote, email)
		if err != nil {
			if !errors.Is(err, ErrUnknownEmail) {
				pp.Error(err)
			}
			return err
		}
		user = found
	}

	active, err := n.Sessions.Login(*user)
	if err != nil {
		return err
	}
	fmt.Printf("logged in as %s <%s>\n", active.Name, active.Email)
	return nil
}

func findByEmail(ctx context.Context, remote Accounts, email string) (*model.User, error) {
	users, err := remote.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if strings.EqualFold(users[i].Email, email) {
			return &users[i], nil
		}
	}
	return nil, ErrUnknownEmail
}

// Logout clears the current session. Logging out twice is fine.
type Logout struct {
	Sessions *session.Store
}

func (n *Logout) Do(ctx context.Context) error {
	if n.Sessions == nil {
		return errors.New("login: missing session store")
	}
	if err := n.Sessions.Logout(); err != nil {
		return err
	}
	fmt.Println("logged out")
	return nil
}

// Whoami prints the current session.
type Whoami struct {
	Sessions *session.Store
}

func (n *Whoami) Do(ctx context.Context) error {
	if n.Sessions == nil {
		return errors.New("login: missing session store")
	}
	active, err := n.Sessions.Current()
	if err != nil {
		return err
	}
	fmt.Printf("%s <%s> (id %d)\n", active.Name, active.Email, active.UserID)
	return nil
}

// Update changes the current account's name or email and refreshes the
// stored session to match.
type Update struct {
	Name  *string
	Email *string

	Remote   Accounts
	Sessions *session.Store
}

func (n *Update) Do(ctx context.Context) error {
	if n.Remote == nil || n.Sessions == nil {
		return errors.New("login: missing gateway or session store")
	}
	active, err := n.Sessions.Current()
	if err != nil {
		return err
	}

	in := model.UserCreate{Name: active.Name, Email: active.Email}
	if n.Name != nil {
		in.Name = strings.TrimSpace(*n.Name)
	}
	if n.Email != nil {
		in.Email = strings.TrimSpace(strings.ToLower(*n.Email))
	}
	if in.Name == active.Name && in.Email == active.Email {
		fmt.Println("nothing to change")
		return nil
	}

	pp := printers.PrettyPrint{}
	updated, err := n.Remote.UpdateUser(ctx, active.UserID, in)
	if err != nil {
		pp.Error(err)
		return err
	}
	if _, err := n.Sessions.Login(*updated); err != nil {
		return err
	}
	fmt.Printf("account is now %s <%s>\n", updated.Name, updated.Email)
	return nil
}

// Delete removes the current account server-side and logs out. The
// server cascades to the user's tasks and notes.
type Delete struct {
	Yes bool

	Remote   Accounts
	Sessions *session.Store

	Confirm func(label string) (bool, error)
}

func (n *Delete) Do(ctx context.Context) error {
	if n.Remote == nil || n.Sessions == nil {
		return errors.New("login: missing gateway or session store")
	}
	active, err := n.Sessions.Current()
	if err != nil {
		return err
	}

	if !n.Yes && n.Confirm != nil {
		ok, err := n.Confirm(fmt.Sprintf("Delete account %s and everything in it", active.Email))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("kept the account")
			return nil
		}
	}

	pp := printers.PrettyPrint{}
	if err := n.Remote.DeleteUser(ctx, active.UserID); err != nil {
		pp.Error(err)
		return err
	}
	if err := n.Sessions.Logout(); err != nil {
		return err
	}
	fmt.Println("account deleted")
	return nil
}
