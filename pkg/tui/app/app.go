// Package app composes the full-screen planner: the dashboard list,
// the week calendar with drag-reschedule, the task form overlay, and
// the report overlay.
package app

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/dayplan/pkg/form"
	"tableflip.dev/dayplan/pkg/gateway"
	"tableflip.dev/dayplan/pkg/model"
	"tableflip.dev/dayplan/pkg/projection"
	"tableflip.dev/dayplan/pkg/reschedule"
	"tableflip.dev/dayplan/pkg/session"
	"tableflip.dev/dayplan/pkg/store"
	"tableflip.dev/dayplan/pkg/tui/components/calendar"
	"tableflip.dev/dayplan/pkg/tui/components/dashboard"
	"tableflip.dev/dayplan/pkg/tui/components/taskform"
	"tableflip.dev/dayplan/pkg/tui/events"
	"tableflip.dev/dayplan/pkg/tui/theme"
)

// Remote is the gateway surface the app drives.
type Remote interface {
	store.TaskGateway
	store.NoteGateway
	form.TaskMutator
	GetTask(ctx context.Context, id int64) (*model.Task, error)
	DeleteTask(ctx context.Context, id int64) error
	TaskCompletionReport(ctx context.Context, userID int64, start, end model.Date, filters gateway.ReportFilters) (*model.TaskCompletionReport, error)
}

type view int

const (
	viewList view = iota
	viewWeek
)

// Model is the root Bubble Tea model.
type Model struct {
	remote   Remote
	userID   int64
	sessions *session.Store
	theme    theme.Theme

	width  int
	height int

	view view

	tasks     *store.TaskStore
	dashboard *dashboard.Model

	weekStart model.Date
	weekIndex int // selected task offset within the week
	dragging  bool
	drag      calendar.Drag
	controls  *reschedule.Controller

	watch <-chan session.Event

	form *taskform.Model

	reportVisible bool
	report        *model.TaskCompletionReport
	reportErr     error

	notesVisible bool
	notes        *store.NoteStore
	notesLoaded  bool

	status  string
	failure string

	debug    bool
	eventLog []string
}

// New constructs the root model for one logged-in user.
func New(remote Remote, active *session.Session, sessions *session.Store) *Model {
	tasks := store.NewTaskStore(remote)
	th := theme.Default()

	m := &Model{
		remote:    remote,
		userID:    active.UserID,
		sessions:  sessions,
		theme:     th,
		tasks:     tasks,
		notes:     store.NewNoteStore(remote),
		dashboard: dashboard.NewModel("dashboard", th),
		weekStart: calendar.WeekStart(calendar.Today()),
		controls:  reschedule.NewController(remote, tasks),
		status:    fmt.Sprintf("logged in as %s", active.Name),
	}

	if sessions != nil {
		m.restorePrefs(sessions.Prefs())
	}
	return m
}

// Run launches the Bubble Tea program.
func Run(remote Remote, active *session.Session, sessions *session.Store) error {
	p := tea.NewProgram(New(remote, active, sessions), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadTasks(), m.watchSession())
}

// watchSession arms a one-shot read of the session watcher; the
// handler re-arms it after each event.
func (m *Model) watchSession() tea.Cmd {
	if m.sessions == nil {
		return nil
	}
	if m.watch == nil {
		ch, err := m.sessions.Watch(context.Background())
		if err != nil {
			return nil
		}
		m.watch = ch
	}
	ch := m.watch
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return events.SessionChangedMsg{
			Component: "app",
			Prefs:     ev.Type == session.EventPrefsChanged,
		}
	}
}

// loadTasks refreshes the store off the Update loop. The store
// discards stale responses, so rapid-fire reloads are safe.
func (m *Model) loadTasks() tea.Cmd {
	tasks, userID := m.tasks, m.userID
	return func() tea.Msg {
		err := tasks.Load(context.Background(), userID)
		return events.TasksLoadedMsg{Component: "app", Err: err}
	}
}

// loadWeek narrows the store to the visible week via the range
// endpoint; toggling back to the list goes through a full load.
func (m *Model) loadWeek() tea.Cmd {
	tasks, userID := m.tasks, m.userID
	from, to := m.weekStart, m.weekStart.AddDays(6)
	return func() tea.Msg {
		err := tasks.LoadInRange(context.Background(), userID, from, to)
		return events.TasksLoadedMsg{Component: "app", Err: err}
	}
}

// refresh reloads whatever the current view shows.
func (m *Model) refresh() tea.Cmd {
	if m.view == viewWeek {
		return m.loadWeek()
	}
	return m.loadTasks()
}

// Update routes Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	m.logEvent(msg)

	switch v := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = v.Width
		m.height = v.Height
		m.layout()

	case events.TasksLoadedMsg:
		if v.Err != nil {
			m.failure = v.Err.Error()
		} else {
			m.failure = ""
			m.dashboard.SetTasks(m.tasks.Tasks())
		}

	case events.NotesLoadedMsg:
		if v.Err != nil {
			m.failure = v.Err.Error()
		} else {
			m.notesLoaded = true
		}

	case events.TaskChangedMsg:
		m.dashboard.SetTasks(m.tasks.Tasks())
		m.status = fmt.Sprintf("saved %q", v.Task.Title)

	case events.TaskRemovedMsg:
		m.dashboard.SetTasks(m.tasks.Tasks())
		m.status = "deleted"

	case events.RequestFailedMsg:
		m.failure = v.Err.Error()

	case events.SessionChangedMsg:
		if v.Prefs {
			m.restorePrefs(m.sessions.Prefs())
			return m, m.watchSession()
		}
		// Another process logged in or out; refetch against whatever
		// identity the session now holds.
		if active, err := m.sessions.Current(); err == nil {
			m.userID = active.UserID
		}
		return m, tea.Batch(m.refresh(), m.watchSession())

	case events.DropCompletedMsg:
		m.dragging = false
		m.drag = calendar.Drag{}
		if v.Err != nil {
			m.failure = v.Err.Error()
		} else {
			m.failure = ""
			m.dashboard.SetTasks(m.tasks.Tasks())
			m.status = fmt.Sprintf("moved %q to %s", v.Task.Title, v.Task.DueDate)
		}

	case events.FormDoneMsg:
		if m.form != nil && v.Component == m.form.ID() {
			m.form = nil
			if !v.Saved {
				m.status = "cancelled"
			}
		}

	case events.ReportLoadedMsg:
		m.reportErr = v.Err
		if v.Err == nil {
			r := v.Report
			m.report = &r
		}

	case tea.KeyMsg:
		if v.String() == "ctrl+c" {
			return m, m.savePrefsAndQuit()
		}
		if m.form != nil {
			break // overlay owns the keyboard
		}
		if m.reportVisible {
			if v.String() == "esc" || v.String() == "r" {
				m.reportVisible = false
				m.report = nil
				m.reportErr = nil
			}
			return m, nil
		}
		if m.notesVisible {
			if v.String() == "esc" || v.String() == "N" {
				m.notesVisible = false
			}
			return m, nil
		}
		if cmd, handled := m.handleKey(v); handled {
			return m, cmd
		}
	}

	if m.form != nil {
		next, cmd := m.form.Update(msg)
		if fm, ok := next.(*taskform.Model); ok {
			m.form = fm
		}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	} else if m.view == viewList {
		next, cmd := m.dashboard.Update(msg)
		if dm, ok := next.(*dashboard.Model); ok {
			m.dashboard = dm
		}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	if len(cmds) == 0 {
		return m, nil
	}
	return m, tea.Batch(cmds...)
}

// handleKey covers app-level keys. Returns handled=false for keys the
// focused component should see instead.
func (m *Model) handleKey(key tea.KeyMsg) (tea.Cmd, bool) {
	if m.view == viewList && m.dashboard.Searching() {
		return nil, false
	}

	switch key.String() {
	case "q":
		return m.savePrefsAndQuit(), true
	case "w":
		if m.view == viewList {
			m.view = viewWeek
			return m.loadWeek(), true
		}
		m.view = viewList
		return m.loadTasks(), true
	case "R":
		return m.refresh(), true
	case "ctrl+e":
		m.debug = !m.debug
		return nil, true
	case "r":
		return m.toggleReport(), true
	case "N":
		m.notesVisible = true
		return m.loadNotes(), true
	case "n":
		m.form = taskform.NewCreate("taskform", m.theme, m.userID, m.remote, m.tasks)
		m.form.SetWidth(m.width - 8)
		return m.form.Init(), true
	case "e":
		if task, ok := m.selectedTask(); ok {
			m.form = taskform.NewEdit("taskform", m.theme, task, m.remote, m.tasks)
			m.form.SetWidth(m.width - 8)
			return m.form.Init(), true
		}
		return nil, true
	case "c":
		if task, ok := m.selectedTask(); ok {
			return m.toggleComplete(task), true
		}
		return nil, true
	case "x":
		if task, ok := m.selectedTask(); ok {
			return m.deleteTask(task), true
		}
		return nil, true
	}

	if m.view == viewWeek {
		return m.handleWeekKey(key)
	}
	return nil, false
}

// handleWeekKey covers the calendar: navigation plus the pick up,
// hover, drop cycle.
func (m *Model) handleWeekKey(key tea.KeyMsg) (tea.Cmd, bool) {
	switch key.String() {
	case "left":
		if m.dragging {
			m.drag.HoverDay = m.drag.HoverDay.AddDays(-1)
			return nil, true
		}
		m.weekStart = m.weekStart.AddDays(-7)
		return m.loadWeek(), true
	case "right":
		if m.dragging {
			m.drag.HoverDay = m.drag.HoverDay.AddDays(1)
			return nil, true
		}
		m.weekStart = m.weekStart.AddDays(7)
		return m.loadWeek(), true
	case "up", "down":
		if m.dragging {
			m.drag.HoverDone = !m.drag.HoverDone
			return nil, true
		}
		m.moveWeekSelection(key.String() == "down")
		return nil, true
	case "t":
		m.weekStart = calendar.WeekStart(calendar.Today())
		return m.loadWeek(), true
	case " ", "space":
		if m.dragging {
			return nil, true
		}
		task, ok := m.weekSelected()
		if !ok {
			return nil, true
		}
		if err := m.controls.PickUp(task); err != nil {
			m.failure = err.Error()
			return nil, true
		}
		m.dragging = true
		m.drag = calendar.Drag{
			TaskID:    task.ID,
			HoverDay:  task.DueDate,
			HoverDone: task.Finished,
		}
		m.status = fmt.Sprintf("moving %q", task.Title)
		return nil, true
	case "esc":
		if m.dragging {
			m.controls.Cancel()
			m.dragging = false
			m.drag = calendar.Drag{}
			m.status = "drop cancelled"
		}
		return nil, true
	case "enter":
		if !m.dragging {
			return nil, true
		}
		return m.dropTask(), true
	}
	return nil, false
}

func (m *Model) dropTask() tea.Cmd {
	controls := m.controls
	zone := reschedule.Zone{
		Day:       m.drag.HoverDay,
		Completed: model.Ptr(m.drag.HoverDone),
	}
	return func() tea.Msg {
		task, err := controls.Drop(context.Background(), zone)
		out := events.DropCompletedMsg{Component: "app", Err: err}
		if task != nil {
			out.Task = *task
		}
		return out
	}
}

// loadNotes refreshes the note store off the Update loop.
func (m *Model) loadNotes() tea.Cmd {
	notes, userID := m.notes, m.userID
	return func() tea.Msg {
		err := notes.Load(context.Background(), userID)
		return events.NotesLoadedMsg{Component: "app", Err: err}
	}
}

func (m *Model) toggleComplete(task model.Task) tea.Cmd {
	remote, tasks := m.remote, m.tasks
	return func() tea.Msg {
		patch := model.TaskPatch{
			Finished:     model.Ptr(!task.Finished),
			DateFinished: model.Ptr(model.Date("")),
		}
		if !task.Finished {
			patch.DateFinished = model.Ptr(model.Today())
		}
		updated, err := remote.UpdateTask(context.Background(), task.ID, patch)
		if err != nil {
			return events.RequestFailedMsg{Component: "app", Err: err}
		}
		tasks.ApplyMutationResult(*updated)
		return events.TaskChangedMsg{Component: "app", Task: *updated}
	}
}

func (m *Model) deleteTask(task model.Task) tea.Cmd {
	remote, tasks := m.remote, m.tasks
	return func() tea.Msg {
		if err := remote.DeleteTask(context.Background(), task.ID); err != nil {
			return events.RequestFailedMsg{Component: "app", Err: err}
		}
		tasks.Remove(task.ID)
		return events.TaskRemovedMsg{Component: "app", ID: task.ID}
	}
}

func (m *Model) toggleReport() tea.Cmd {
	if m.reportVisible {
		m.reportVisible = false
		m.report = nil
		m.reportErr = nil
		return nil
	}
	m.reportVisible = true

	remote, userID := m.remote, m.userID
	from := m.weekStart
	to := m.weekStart.AddDays(6)
	return func() tea.Msg {
		report, err := remote.TaskCompletionReport(context.Background(), userID, from, to, gateway.ReportFilters{})
		out := events.ReportLoadedMsg{Component: "app", Err: err}
		if report != nil {
			out.Report = *report
		}
		return out
	}
}

func (m *Model) selectedTask() (model.Task, bool) {
	if m.view == viewWeek {
		return m.weekSelected()
	}
	return m.dashboard.Selected()
}

// weekTasks flattens the visible week in column order.
func (m *Model) weekTasks() []model.Task {
	var out []model.Task
	for _, day := range projection.Week(m.tasks.Tasks(), m.weekStart) {
		out = append(out, day.Timed...)
		out = append(out, day.Untimed...)
	}
	return out
}

func (m *Model) weekSelected() (model.Task, bool) {
	tasks := m.weekTasks()
	if len(tasks) == 0 {
		return model.Task{}, false
	}
	if m.weekIndex >= len(tasks) {
		m.weekIndex = len(tasks) - 1
	}
	if m.weekIndex < 0 {
		m.weekIndex = 0
	}
	return tasks[m.weekIndex], true
}

func (m *Model) moveWeekSelection(down bool) {
	count := len(m.weekTasks())
	if count == 0 {
		return
	}
	if down && m.weekIndex < count-1 {
		m.weekIndex++
	}
	if !down && m.weekIndex > 0 {
		m.weekIndex--
	}
}

// logEvent records a one-line description of interesting messages for
// the debug footer.
func (m *Model) logEvent(msg tea.Msg) {
	line := describeMsg(msg)
	if line == "" {
		return
	}
	m.eventLog = append(m.eventLog, line)
	if len(m.eventLog) > 50 {
		m.eventLog = m.eventLog[len(m.eventLog)-50:]
	}
}

func describeMsg(msg tea.Msg) string {
	if d, ok := msg.(interface{ Describe() string }); ok {
		return d.Describe()
	}
	if v, ok := msg.(tea.WindowSizeMsg); ok {
		return fmt.Sprintf("size=%dx%d", v.Width, v.Height)
	}
	return ""
}

func (m *Model) savePrefsAndQuit() tea.Cmd {
	if m.sessions != nil {
		c := m.dashboard.Criteria()
		_ = m.sessions.SavePrefs(session.Prefs{
			Tab:      string(c.Tab),
			SortKey:  string(c.SortKey),
			SortDesc: c.Descending,
		})
	}
	return tea.Quit
}

func (m *Model) restorePrefs(p session.Prefs) {
	c := m.dashboard.Criteria()
	if p.Tab != "" {
		c.Tab = projection.Tab(p.Tab)
	}
	if p.SortKey != "" {
		c.SortKey = projection.SortKey(p.SortKey)
	}
	c.Descending = p.SortDesc
	m.dashboard.SetCriteria(c)
}

func (m *Model) layout() {
	m.dashboard.SetSize(m.width, m.height-2)
	if m.form != nil {
		m.form.SetWidth(m.width - 8)
	}
}

// View renders the composed UI.
func (m *Model) View() (string, *tea.Cursor) {
	var body string
	var cursor *tea.Cursor

	switch {
	case m.form != nil:
		body, cursor = m.form.View()
	case m.reportVisible:
		body = m.renderReport()
	case m.notesVisible:
		body = m.renderNotes()
	case m.view == viewWeek:
		selected := int64(0)
		if task, ok := m.weekSelected(); ok {
			selected = task.ID
		}
		var drag *calendar.Drag
		if task, ok := m.controls.Dragging(); ok {
			d := m.drag
			d.TaskID = task.ID
			drag = &d
		}
		body = calendar.Render(m.tasks.Tasks(), m.weekStart, calendar.Options{
			Theme:    m.theme.Calendar,
			Width:    m.width,
			Today:    calendar.Today(),
			Selected: selected,
			Drag:     drag,
		})
	default:
		body, cursor = m.dashboard.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderFooter()), cursor
}

func (m *Model) renderReport() string {
	t := m.theme.Modal

	var lines []string
	lines = append(lines, t.Title.Render(fmt.Sprintf("completion %s … %s", m.weekStart, m.weekStart.AddDays(6))))
	switch {
	case m.reportErr != nil:
		lines = append(lines, t.Body.Render("request failed: "+m.reportErr.Error()))
		lines = append(lines, t.Body.Render("press r to retry"))
	case m.report == nil:
		lines = append(lines, t.Body.Render("loading…"))
	default:
		r := m.report
		lines = append(lines,
			t.Body.Render(fmt.Sprintf("total tasks       %d", r.TotalTasks)),
			t.Body.Render(fmt.Sprintf("completed         %d", r.CompletedTasks)),
			t.Body.Render(fmt.Sprintf("completion rate   %.0f%%", r.CompletionRate*100)),
			t.Body.Render(fmt.Sprintf("avg days to done  %.1f", r.AvgCompletionDays)),
			t.Body.Render(fmt.Sprintf("avg importance    %.1f", r.AvgImportance)),
		)
	}
	return t.Frame.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderNotes() string {
	t := m.theme.Modal

	var lines []string
	lines = append(lines, t.Title.Render("notes"))
	switch {
	case !m.notesLoaded:
		lines = append(lines, t.Body.Render("loading…"))
	case len(m.notes.Notes()) == 0:
		lines = append(lines, t.Body.Render("no notes yet"))
	default:
		for _, note := range m.notes.Notes() {
			line := note.Title
			if !note.DateCreated.IsZero() {
				line = fmt.Sprintf("%s  %s", note.DateCreated, note.Title)
			}
			if m.width > 8 {
				line = truncate.StringWithTail(line, uint(m.width-8), "…")
			}
			lines = append(lines, t.Body.Render(line))
		}
	}
	return t.Frame.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderFooter() string {
	t := m.theme.Footer

	help := "tab:filter /:search s:sort n:new e:edit c:done x:delete w:week N:notes r:report q:quit"
	switch {
	case m.form != nil:
		help = "tab:next field enter:save esc:cancel"
	case m.view == viewWeek:
		help = "←→:week ↑↓:select space:pick up enter:drop esc:cancel t:today w:list q:quit"
		if m.dragging {
			help = "←→:day ↑↓:lane enter:drop esc:cancel"
		}
	}

	line := t.Help.Render(help)
	switch {
	case m.failure != "":
		msg := "request failed: " + m.failure + " (R to retry)"
		if m.width > 0 {
			msg = wordwrap.String(msg, m.width)
		}
		line = t.Error.Render(msg)
	case m.form != nil:
		if summary := m.form.Summary(); summary != "" {
			line = t.Status.Render(summary) + "  " + line
		}
	case m.status != "":
		line = t.Status.Render(m.status) + "  " + line
	}

	if m.debug && len(m.eventLog) > 0 {
		line += "\n" + t.Help.Render(m.eventLog[len(m.eventLog)-1])
	}
	return line
}
