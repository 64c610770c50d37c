package theme

import "github.com/charmbracelet/lipgloss/v2"

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Tabs     TabTheme
	List     ListTheme
	Calendar CalendarTheme
	Form     FormTheme
	Footer   FooterTheme
	Modal    ModalTheme
}

// TabTheme styles the tab strip above the task list.
type TabTheme struct {
	Active   lipgloss.Style
	Inactive lipgloss.Style
}

// ListTheme styles the task and note list rows.
type ListTheme struct {
	Row        lipgloss.Style
	Selected   lipgloss.Style
	Done       lipgloss.Style
	Importance lipgloss.Style
	When       lipgloss.Style
}

// CalendarTheme styles the week view columns and lanes.
type CalendarTheme struct {
	DayHeader   lipgloss.Style
	Today       lipgloss.Style
	LaneLabel   lipgloss.Style
	Pending     lipgloss.Style
	Done        lipgloss.Style
	DropTarget  lipgloss.Style
	DragSource  lipgloss.Style
	ColumnFrame lipgloss.Style
}

// FormTheme styles the create/edit overlay.
type FormTheme struct {
	Label      lipgloss.Style
	FieldError lipgloss.Style
	Frame      lipgloss.Style
	Title      lipgloss.Style
}

// FooterTheme groups styles used by the bottom status bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
}

// ModalTheme styles centered overlays like the report.
type ModalTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	return Theme{
		Tabs: TabTheme{
			Active:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).Underline(true),
			Inactive: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		},
		List: ListTheme{
			Row:        lipgloss.NewStyle(),
			Selected:   lipgloss.NewStyle().Reverse(true),
			Done:       lipgloss.NewStyle().Faint(true).Strikethrough(true),
			Importance: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
			When:       lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		},
		Calendar: CalendarTheme{
			DayHeader:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("241")),
			Today:       lipgloss.NewStyle().Bold(true).Underline(true),
			LaneLabel:   lipgloss.NewStyle().Faint(true).Italic(true),
			Pending:     lipgloss.NewStyle(),
			Done:        lipgloss.NewStyle().Faint(true).Strikethrough(true),
			DropTarget:  lipgloss.NewStyle().Background(lipgloss.Color("63")).Foreground(lipgloss.Color("0")),
			DragSource:  lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
			ColumnFrame: lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, true, false, false).BorderForeground(lipgloss.Color("238")),
		},
		Form: FormTheme{
			Label:      lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			FieldError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("212")).
				Padding(1, 2),
			Title: lipgloss.NewStyle().Bold(true),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		},
		Modal: ModalTheme{
			Frame: lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).Padding(1, 2),
			Title: lipgloss.NewStyle().Bold(true),
			Body:  lipgloss.NewStyle(),
		},
	}
}
