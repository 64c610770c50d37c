// Package dashboard renders the filterable task list: tab strip,
// search input, and the projected rows.
package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/dayplan/pkg/model"
	"tableflip.dev/dayplan/pkg/projection"
	"tableflip.dev/dayplan/pkg/tui/events"
	"tableflip.dev/dayplan/pkg/tui/theme"
)

var tabOrder = []projection.Tab{
	projection.TabAll,
	projection.TabActive,
	projection.TabCompleted,
}

var sortOrder = []projection.SortKey{
	projection.SortByDueDate,
	projection.SortByTitle,
	projection.SortByImportance,
}

// Model is the task list pane. The root app owns the data and calls
// SetTasks after every store change; the model owns criteria and
// selection.
type Model struct {
	id    events.ComponentID
	theme theme.Theme

	width  int
	height int

	tasks    []model.Task
	visible  []model.Task
	criteria projection.Criteria
	cursor   int

	searching bool
	search    textinput.Model
}

// NewModel builds an empty dashboard.
func NewModel(id events.ComponentID, th theme.Theme) *Model {
	search := textinput.New()
	search.Placeholder = "search title or description"
	search.Prompt = "/"

	return &Model{
		id:    id,
		theme: th,
		criteria: projection.Criteria{
			Tab:     projection.TabAll,
			SortKey: projection.SortByDueDate,
		},
		search: search,
	}
}

// ID reports the component identifier.
func (m *Model) ID() events.ComponentID { return m.id }

// SetSize updates the layout bounds.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetTasks replaces the backing list and reprojects.
func (m *Model) SetTasks(tasks []model.Task) {
	m.tasks = tasks
	m.project()
}

// SetCriteria replaces the whole filter state, used when restoring
// saved preferences.
func (m *Model) SetCriteria(c projection.Criteria) {
	m.criteria = c
	if m.criteria.Tab == "" {
		m.criteria.Tab = projection.TabAll
	}
	if m.criteria.SortKey == "" {
		m.criteria.SortKey = projection.SortByDueDate
	}
	m.project()
}

// Criteria reports the current filter state, used when saving
// preferences.
func (m *Model) Criteria() projection.Criteria { return m.criteria }

// Selected returns the task under the cursor.
func (m *Model) Selected() (model.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return model.Task{}, false
	}
	return m.visible[m.cursor], true
}

// Searching reports whether the search input owns the keyboard.
func (m *Model) Searching() bool { return m.searching }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd { return nil }

// Update processes Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.searching {
		switch key.String() {
		case "enter", "esc":
			m.searching = false
			m.search.Blur()
			if key.String() == "esc" {
				m.search.SetValue("")
			}
			m.criteria.Search = m.search.Value()
			m.project()
			return m, nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		m.criteria.Search = m.search.Value()
		m.project()
		return m, cmd
	}

	switch key.String() {
	case "tab":
		m.criteria.Tab = nextTab(m.criteria.Tab)
		m.project()
	case "s":
		m.criteria.SortKey = nextSort(m.criteria.SortKey)
		m.project()
	case "S":
		m.criteria.Descending = !m.criteria.Descending
		m.project()
	case "1", "2", "3":
		n := int(key.String()[0] - '0')
		if m.criteria.Importance == n {
			m.criteria.Importance = projection.ImportanceAll
		} else {
			m.criteria.Importance = n
		}
		m.project()
	case "0":
		m.criteria.Importance = projection.ImportanceAll
		m.project()
	case "/":
		m.searching = true
		return m, m.search.Focus()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	}
	return m, nil
}

// project reruns the filter pipeline and clamps the cursor.
func (m *Model) project() {
	m.visible = projection.Apply(m.tasks, m.criteria)
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// View renders the pane.
func (m *Model) View() (string, *tea.Cursor) {
	var b strings.Builder

	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	if m.searching || m.search.Value() != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	}

	rows := m.height - 2
	if rows < 1 {
		rows = 1
	}
	start := 0
	if m.cursor >= rows {
		start = m.cursor - rows + 1
	}
	for i := start; i < len(m.visible) && i < start+rows; i++ {
		b.WriteString(m.renderRow(m.visible[i], i == m.cursor))
		b.WriteString("\n")
	}
	if len(m.visible) == 0 {
		b.WriteString(m.theme.List.When.Render("nothing here"))
		b.WriteString("\n")
	}

	var cursor *tea.Cursor
	if m.searching {
		if c := m.search.Cursor(); c != nil {
			clone := *c
			clone.Position.Y++
			cursor = &clone
		}
	}
	return b.String(), cursor
}

func (m *Model) renderTabs() string {
	t := m.theme.Tabs
	parts := make([]string, 0, len(tabOrder)+1)
	for _, tab := range tabOrder {
		style := t.Inactive
		if tab == m.criteria.Tab {
			style = t.Active
		}
		parts = append(parts, style.Render(string(tab)))
	}

	sortLabel := fmt.Sprintf("sort:%s", m.criteria.SortKey)
	if m.criteria.Descending {
		sortLabel += "↓"
	}
	if m.criteria.Importance != projection.ImportanceAll {
		sortLabel += fmt.Sprintf(" !%d", m.criteria.Importance)
	}
	parts = append(parts, t.Inactive.Render(sortLabel))

	return lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(parts, "  "))
}

func (m *Model) renderRow(task model.Task, selected bool) string {
	t := m.theme.List

	when := string(task.DueDate)
	if task.Timed() {
		when += " " + string(task.DueTime)
	}

	marks := ""
	if task.Importance > 0 {
		marks = strings.Repeat("!", task.Importance) + " "
	}

	line := fmt.Sprintf("%s  %s%s", t.When.Render(when), t.Importance.Render(marks), task.Title)
	if task.Finished {
		line = fmt.Sprintf("%s  %s%s", t.When.Render(when), marks, t.Done.Render(task.Title))
	}
	if m.width > 0 {
		line = truncate.StringWithTail(line, uint(m.width), "…")
	}

	if selected {
		return t.Selected.Render(line)
	}
	return t.Row.Render(line)
}

func nextTab(tab projection.Tab) projection.Tab {
	for i, t := range tabOrder {
		if t == tab {
			return tabOrder[(i+1)%len(tabOrder)]
		}
	}
	return tabOrder[0]
}

func nextSort(key projection.SortKey) projection.SortKey {
	for i, k := range sortOrder {
		if k == key {
			return sortOrder[(i+1)%len(sortOrder)]
		}
	}
	return sortOrder[0]
}
