package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/dayplan/pkg/runner/login"
)

func addLogin(topLevel *cobra.Command) {
	var (
		name   string
		signup bool
	)

	cmd := &cobra.Command{
		Use:   "login <email>",
		Short: "log in by email",
		Example: `
dayplan login robin@example.com
dayplan login new@example.com --signup --name "New Person"
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires an email")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			_, sessions, remote, err := setup()
			if err != nil {
				return err
			}
			s := login.Login{
				Email:    strings.TrimSpace(args[0]),
				Name:     name,
				Signup:   signup,
				Remote:   remote,
				Sessions: sessions,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name, required with --signup.")
	cmd.Flags().BoolVar(&signup, "signup", false, "Create the account first.")

	topLevel.AddCommand(cmd)

	logout := &cobra.Command{
		Use:   "logout",
		Short: "clear the current session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			_, sessions, _, err := setup()
			if err != nil {
				return err
			}
			s := login.Logout{Sessions: sessions}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}
	topLevel.AddCommand(logout)

	whoami := &cobra.Command{
		Use:   "whoami",
		Short: "show the current session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			_, sessions, _, err := setup()
			if err != nil {
				return err
			}
			s := login.Whoami{Sessions: sessions}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}
	topLevel.AddCommand(whoami)
}
