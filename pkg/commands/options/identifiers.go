package options

import (
	"strconv"

	"github.com/spf13/cobra"
)

// IDOptions
type IDOptions struct {
	ShowID bool
	ID     int64
}

func AddShowIDArgs(cmd *cobra.Command, o *IDOptions) {
	cmd.Flags().BoolVarP(&o.ShowID, "show-id", "k", false,
		"Show the ID of each task or note.")
}

func AddIDArgs(cmd *cobra.Command, o *IDOptions) {
	cmd.Flags().Int64Var(&o.ID, "id", 0,
		"Specify the id of a task or note.")
}

// ParseID reads a positional id argument.
func ParseID(arg string) (int64, error) {
	return strconv.ParseInt(arg, 10, 64)
}
