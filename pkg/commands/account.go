package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/dayplan/pkg/runner/login"
)

func addAccount(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "manage the logged-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var (
		name  string
		email string
	)
	update := &cobra.Command{
		Use:   "update",
		Short: "change the account's name or email",
		Example: `
dayplan account update --name "New Name"
dayplan account update --email new@example.com
`,
		RunE: func(c *cobra.Command, _ []string) error {
			c.SilenceUsage = true
			_, sessions, remote, err := setup()
			if err != nil {
				return err
			}
			s := login.Update{
				Remote:   remote,
				Sessions: sessions,
			}
			if c.Flags().Changed("name") {
				s.Name = &name
			}
			if c.Flags().Changed("email") {
				s.Email = &email
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}
	update.Flags().StringVar(&name, "name", "", "New display name.")
	update.Flags().StringVar(&email, "email", "", "New email address.")
	cmd.AddCommand(update)

	var yes bool
	del := &cobra.Command{
		Use:   "delete",
		Short: "delete the account and everything in it",
		RunE: func(c *cobra.Command, _ []string) error {
			c.SilenceUsage = true
			_, sessions, remote, err := setup()
			if err != nil {
				return err
			}
			s := login.Delete{
				Yes:      yes,
				Remote:   remote,
				Sessions: sessions,
				Confirm:  confirmPrompt,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}
	del.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt.")
	cmd.AddCommand(del)

	topLevel.AddCommand(cmd)
}
