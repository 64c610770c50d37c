// Package calendar renders the week view: seven day columns, each
// split into a pending lane and a done lane, with timed items first.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/dayplan/pkg/model"
	"tableflip.dev/dayplan/pkg/projection"
	"tableflip.dev/dayplan/pkg/tui/theme"
)

// Drag describes an in-flight drag for highlighting: the task being
// carried and the column it currently hovers over.
type Drag struct {
	TaskID    int64
	HoverDay  model.Date
	HoverDone bool
}

// Options controls rendering.
type Options struct {
	Theme    theme.CalendarTheme
	Width    int
	Today    model.Date
	Selected int64 // highlighted task id, 0 for none
	Drag     *Drag
}

// Render draws seven columns starting at start.
func Render(tasks []model.Task, start model.Date, opts Options) string {
	days := projection.Week(tasks, start)

	colWidth := opts.Width/7 - 1
	if colWidth < 12 {
		colWidth = 12
	}

	cols := make([]string, 0, len(days))
	for _, day := range days {
		cols = append(cols, renderColumn(day, colWidth, opts))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func renderColumn(day projection.DayGroup, width int, opts Options) string {
	t := opts.Theme

	header := dayLabel(day.Day)
	headerStyle := t.DayHeader
	if day.Day == opts.Today {
		headerStyle = headerStyle.Inherit(t.Today)
	}

	hoverPending := opts.Drag != nil && opts.Drag.HoverDay == day.Day && !opts.Drag.HoverDone
	hoverDone := opts.Drag != nil && opts.Drag.HoverDay == day.Day && opts.Drag.HoverDone

	lines := []string{headerStyle.Render(truncate.StringWithTail(header, uint(width), "…"))}

	lines = append(lines, laneLabel(t, "to do", hoverPending, width))
	for _, task := range append(day.Timed, day.Untimed...) {
		if task.Finished {
			continue
		}
		lines = append(lines, renderTask(task, width, opts, t.Pending))
	}

	lines = append(lines, laneLabel(t, "done", hoverDone, width))
	for _, task := range append(day.Timed, day.Untimed...) {
		if !task.Finished {
			continue
		}
		lines = append(lines, renderTask(task, width, opts, t.Done))
	}

	return t.ColumnFrame.Render(lipgloss.NewStyle().Width(width).Render(strings.Join(lines, "\n")))
}

func laneLabel(t theme.CalendarTheme, label string, hovered bool, width int) string {
	style := t.LaneLabel
	if hovered {
		style = t.DropTarget
	}
	return style.Render(truncate.StringWithTail(label, uint(width), "…"))
}

func renderTask(task model.Task, width int, opts Options, base lipgloss.Style) string {
	t := opts.Theme

	line := task.Title
	if task.Timed() {
		line = fmt.Sprintf("%s %s", task.DueTime, task.Title)
	}
	if task.Importance > 0 {
		line = strings.Repeat("!", task.Importance) + " " + line
	}
	line = truncate.StringWithTail(line, uint(width), "…")

	style := base
	switch {
	case opts.Drag != nil && opts.Drag.TaskID == task.ID:
		style = t.DragSource
	case opts.Selected == task.ID:
		style = style.Reverse(true)
	}
	return style.Render(line)
}

func dayLabel(day model.Date) string {
	t, err := day.Time()
	if err != nil {
		return day.String()
	}
	return t.Format("Mon 02 Jan")
}

// WeekStart returns the Monday on or before the given date.
func WeekStart(day model.Date) model.Date {
	t, err := day.Time()
	if err != nil {
		return day
	}
	offset := (int(t.Weekday()) + 6) % 7
	return model.NewDate(t.AddDate(0, 0, -offset))
}

// Today returns the current local date, split out for tests.
func Today() model.Date {
	return model.NewDate(time.Now())
}
