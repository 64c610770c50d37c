package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/dayplan/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the text-based user interface",
		Example: `
dayplan ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			_, sessions, remote, err := setup()
			if err != nil {
				return err
			}
			active, err := currentUser(sessions)
			if err != nil {
				return err
			}
			i := ui.UI{
				Remote:   remote,
				Session:  active,
				Sessions: sessions,
			}
			return i.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
