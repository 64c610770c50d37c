package options

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/dayplan/pkg/projection"
)

// FilterOptions
type FilterOptions struct {
	Tab        string
	Search     string
	Importance int
	Sort       string
	Descending bool
}

func AddFilterArgs(cmd *cobra.Command, o *FilterOptions) {
	cmd.Flags().StringVar(&o.Tab, "tab", "all",
		"Which slice to show: all, active, or completed.")
	cmd.Flags().StringVar(&o.Search, "search", "",
		"Case-insensitive substring match on title or description.")
	cmd.Flags().IntVar(&o.Importance, "importance", 0,
		"Exact importance filter, 1 to 3. 0 shows everything.")
	cmd.Flags().StringVar(&o.Sort, "sort", "due_date",
		"Sort key: due_date, title, or importance.")
	cmd.Flags().BoolVar(&o.Descending, "desc", false,
		"Reverse the sort order.")
}

// GetCriteria validates the flags into projection criteria. The range
// is attached by the caller.
func (o *FilterOptions) GetCriteria() (projection.Criteria, error) {
	c := projection.Criteria{
		Search:     o.Search,
		Importance: o.Importance,
		Descending: o.Descending,
	}

	switch o.Tab {
	case "", "all":
		c.Tab = projection.TabAll
	case "active":
		c.Tab = projection.TabActive
	case "completed", "done":
		c.Tab = projection.TabCompleted
	default:
		return c, fmt.Errorf("unknown tab %q", o.Tab)
	}

	switch o.Sort {
	case "", "due_date", "due":
		c.SortKey = projection.SortByDueDate
	case "title":
		c.SortKey = projection.SortByTitle
	case "importance":
		c.SortKey = projection.SortByImportance
	default:
		return c, fmt.Errorf("unknown sort key %q", o.Sort)
	}

	if o.Importance < 0 || o.Importance > 3 {
		return c, fmt.Errorf("importance must be 1 to 3, got %d", o.Importance)
	}

	return c, nil
}
