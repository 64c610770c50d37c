package options

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/dayplan/pkg/model"
	"tableflip.dev/dayplan/pkg/projection"
)

// RangeOptions
type RangeOptions struct {
	FromString string
	ToString   string
}

func AddRangeArgs(cmd *cobra.Command, o *RangeOptions) {
	cmd.Flags().StringVar(&o.FromString, "from", "",
		`Inclusive start of a due-date window, example: --from="2025-02-01".`)
	cmd.Flags().StringVar(&o.ToString, "to", "",
		`Inclusive end of a due-date window, example: --to="2025-02-28".`)
}

// GetRange parses both bounds. Either both flags are set or neither.
func (o *RangeOptions) GetRange() (projection.Range, error) {
	if o.FromString == "" && o.ToString == "" {
		return projection.Range{}, nil
	}
	if o.FromString == "" || o.ToString == "" {
		return projection.Range{}, errors.New("--from and --to must be given together")
	}
	from, err := model.ParseDate(o.FromString)
	if err != nil {
		return projection.Range{}, err
	}
	to, err := model.ParseDate(o.ToString)
	if err != nil {
		return projection.Range{}, err
	}
	return projection.Range{From: from, To: to}, nil
}
