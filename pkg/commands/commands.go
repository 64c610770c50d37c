package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/dayplan/pkg/config"
	"tableflip.dev/dayplan/pkg/gateway"
	"tableflip.dev/dayplan/pkg/logging"
	"tableflip.dev/dayplan/pkg/session"
)

var (
	output = &base.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "dayplan",
		Short: base.Wrap80("Tasks, notes, and a week view on the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addLogin(topLevel)
	addAccount(topLevel)
	addAdd(topLevel)
	addGet(topLevel)
	addComplete(topLevel)
	addEdit(topLevel)
	addDelete(topLevel)
	addCleanup(topLevel)
	addReport(topLevel)
	addMCP(topLevel)
	addVersion(topLevel)
}

// setup wires the pieces every command needs: config, the session
// store, and the REST client.
func setup() (config.Config, *session.Store, *gateway.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	sessions, err := session.Load(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	remote := gateway.New(cfg, logging.New())
	return cfg, sessions, remote, nil
}

// currentUser resolves the active session, for commands that require a
// login.
func currentUser(sessions *session.Store) (*session.Session, error) {
	return sessions.Current()
}
