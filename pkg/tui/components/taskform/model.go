// Package taskform is the create/edit overlay. It holds raw input in
// textinputs and defers all validation to the form layer, so the
// dialog and the CLI reject the same things.
package taskform

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/dayplan/pkg/form"
	"tableflip.dev/dayplan/pkg/model"
	"tableflip.dev/dayplan/pkg/tui/events"
	"tableflip.dev/dayplan/pkg/tui/theme"
)

type field int

const (
	fieldTitle field = iota
	fieldDescription
	fieldDueDate
	fieldDueTime
	fieldImportance
	fieldCount
)

var labels = [fieldCount]string{
	"title",
	"description",
	"due date",
	"due time",
	"importance",
}

// SubmittedMsg reports the submit outcome back to the overlay.
type SubmittedMsg struct {
	Component events.ComponentID
	Task      *model.Task
	Err       error
}

// Model is the overlay state for one create or edit flow.
type Model struct {
	id    events.ComponentID
	theme theme.Theme

	form   *form.TaskForm
	remote form.TaskMutator
	local  form.TaskUpserter

	inputs  [fieldCount]textinput.Model
	focus   field
	errs    form.Errors
	failure string
	busy    bool

	width int
}

// NewCreate opens a blank form for the user.
func NewCreate(id events.ComponentID, th theme.Theme, userID int64, remote form.TaskMutator, local form.TaskUpserter) *Model {
	return newModel(id, th, form.NewTaskForm(userID), remote, local)
}

// NewEdit opens a form pre-populated from the task.
func NewEdit(id events.ComponentID, th theme.Theme, task model.Task, remote form.TaskMutator, local form.TaskUpserter) *Model {
	return newModel(id, th, form.EditTaskForm(task), remote, local)
}

func newModel(id events.ComponentID, th theme.Theme, f *form.TaskForm, remote form.TaskMutator, local form.TaskUpserter) *Model {
	m := &Model{
		id:     id,
		theme:  th,
		form:   f,
		remote: remote,
		local:  local,
	}

	placeholders := [fieldCount]string{
		"what needs doing",
		"optional details",
		"2006-01-02",
		"15:04 (optional)",
		"1..3 (optional)",
	}
	values := [fieldCount]string{f.Title, f.Description, f.DueDate, f.DueTime, f.Importance}

	for i := range m.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = placeholders[i]
		in.SetValue(values[i])
		m.inputs[i] = in
	}
	return m
}

// ID reports the component identifier.
func (m *Model) ID() events.ComponentID { return m.id }

// Editing reports whether the overlay patches an existing task.
func (m *Model) Editing() bool { return m.form.Editing() }

// SetWidth updates the layout bound.
func (m *Model) SetWidth(width int) { m.width = width }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.inputs[fieldTitle].Focus()
}

// Update processes Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SubmittedMsg:
		if msg.Component != m.id {
			return m, nil
		}
		m.busy = false
		if msg.Err != nil {
			// Validation errors pin to their field; remote failures
			// keep the user's input and show a retry line.
			if errs, ok := msg.Err.(form.Errors); ok {
				m.errs = errs
			} else {
				m.failure = msg.Err.Error()
			}
			return m, nil
		}
		return m, tea.Batch(
			events.TaskChangedCmd(m.id, *msg.Task),
			events.FormDoneCmd(m.id, true),
		)

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "esc":
			return m, events.FormDoneCmd(m.id, false)
		case "tab", "down":
			return m, m.setFocus((m.focus + 1) % fieldCount)
		case "shift+tab", "up":
			return m, m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		case "enter":
			return m, m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) setFocus(next field) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = next
	return m.inputs[m.focus].Focus()
}

// submit copies the inputs into the form and issues the call off the
// Update loop.
func (m *Model) submit() tea.Cmd {
	m.form.Title = m.inputs[fieldTitle].Value()
	m.form.Description = m.inputs[fieldDescription].Value()
	m.form.DueDate = m.inputs[fieldDueDate].Value()
	m.form.DueTime = m.inputs[fieldDueTime].Value()
	m.form.Importance = m.inputs[fieldImportance].Value()

	if errs := m.form.Validate(); len(errs) > 0 {
		m.errs = errs
		m.failure = ""
		return nil
	}
	m.errs = nil
	m.failure = ""
	m.busy = true

	f, remote, local, id := m.form, m.remote, m.local, m.id
	return func() tea.Msg {
		task, err := f.Submit(context.Background(), remote, local)
		return SubmittedMsg{Component: id, Task: task, Err: err}
	}
}

// View renders the overlay.
func (m *Model) View() (string, *tea.Cursor) {
	t := m.theme.Form

	title := "new task"
	if m.form.Editing() {
		title = "edit task"
	}

	lines := []string{t.Title.Render(title), ""}
	cursorRow := -1
	for i := range m.inputs {
		label := t.Label.Render(labels[i] + ": ")
		if field(i) == m.focus {
			cursorRow = len(lines)
		}
		lines = append(lines, label+m.inputs[i].View())
		if msg := m.errs.ByField(fieldKey(field(i))); msg != "" {
			lines = append(lines, t.FieldError.Render("  "+msg))
		}
	}

	lines = append(lines, "")
	switch {
	case m.busy:
		lines = append(lines, t.Label.Render("saving…"))
	case m.failure != "":
		lines = append(lines, t.FieldError.Render(m.failure))
		lines = append(lines, t.Label.Render("enter to retry, esc to cancel"))
	default:
		lines = append(lines, t.Label.Render("enter to save, esc to cancel"))
	}

	body := lipgloss.JoinVertical(lipgloss.Left, lines...)
	width := m.width
	if width > 60 || width <= 0 {
		width = 60
	}
	boxed := t.Frame.Render(lipgloss.NewStyle().Width(width).Render(body))

	var cursor *tea.Cursor
	if !m.busy && cursorRow >= 0 {
		if c := m.inputs[m.focus].Cursor(); c != nil {
			clone := *c
			clone.Position.X += len(labels[m.focus]) + 2 // label and ": "
			clone.Position.X += 3                        // frame border and padding
			clone.Position.Y += cursorRow + 2
			cursor = &clone
		}
	}
	return boxed, cursor
}

func fieldKey(f field) string {
	switch f {
	case fieldTitle:
		return "title"
	case fieldDescription:
		return "description"
	case fieldDueDate:
		return "due_date"
	case fieldDueTime:
		return "due_time"
	case fieldImportance:
		return "importance"
	}
	return ""
}

// Summary renders a one-line description for status bars.
func (m *Model) Summary() string {
	parts := []string{strings.TrimSpace(m.inputs[fieldTitle].Value())}
	if due := strings.TrimSpace(m.inputs[fieldDueDate].Value()); due != "" {
		parts = append(parts, due)
	}
	return strings.Join(parts, " · ")
}
