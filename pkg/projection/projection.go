// Package projection derives the visible task list from the stored
// collection and the UI-selected criteria. Everything here is pure:
// same inputs, same output, no hidden state.
package projection

import (
	"sort"
	"strings"

	"tableflip.dev/dayplan/pkg/model"
)

// Tab selects the completion slice of the list.
type Tab string

const (
	TabAll       Tab = "all"
	TabActive    Tab = "active"
	TabCompleted Tab = "completed"
)

// SortKey selects the comparator for the final ordering stage.
type SortKey string

const (
	SortByDueDate    SortKey = "due_date"
	SortByTitle      SortKey = "title"
	SortByImportance SortKey = "importance"
)

// ImportanceAll disables the importance filter.
const ImportanceAll = 0

// Range is an inclusive due-date window. The zero value matches
// everything.
type Range struct {
	From model.Date
	To   model.Date
}

// IsZero reports an unset range.
func (r Range) IsZero() bool { return r.From.IsZero() && r.To.IsZero() }

// Criteria is everything the user can dial on the dashboard.
type Criteria struct {
	Tab        Tab
	Search     string
	Importance int // 1..3, or ImportanceAll
	Range      Range
	SortKey    SortKey
	Descending bool
}

// Apply runs the filter stages in their fixed order, then sorts.
// Each stage narrows the previous result; relative order is preserved
// until the sort stage, which is stable and breaks no ties.
func Apply(tasks []model.Task, c Criteria) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, task := range tasks {
		if !matchTab(task, c.Tab) {
			continue
		}
		if !matchSearch(task, c.Search) {
			continue
		}
		if c.Importance != ImportanceAll && task.Importance != c.Importance {
			continue
		}
		if !c.Range.IsZero() && !task.DueDate.Within(c.Range.From, c.Range.To) {
			continue
		}
		out = append(out, task)
	}

	if c.SortKey != "" {
		sortTasks(out, c.SortKey, c.Descending)
	}
	return out
}

func matchTab(task model.Task, tab Tab) bool {
	switch tab {
	case TabActive:
		return !task.Finished
	case TabCompleted:
		return task.Finished
	default:
		return true
	}
}

// matchSearch is a case-insensitive substring match over title or
// description. A missing description never matches.
func matchSearch(task model.Task, search string) bool {
	if search == "" {
		return true
	}
	query := strings.ToLower(search)
	if strings.Contains(strings.ToLower(task.Title), query) {
		return true
	}
	return task.Description != "" &&
		strings.Contains(strings.ToLower(task.Description), query)
}

func sortTasks(tasks []model.Task, key SortKey, descending bool) {
	less := func(a, b model.Task) int {
		switch key {
		case SortByTitle:
			return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		case SortByImportance:
			return a.Importance - b.Importance
		default:
			return strings.Compare(string(a.DueDate), string(b.DueDate))
		}
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		cmp := less(tasks[i], tasks[j])
		if descending {
			return cmp > 0
		}
		return cmp < 0
	})
}

// DayGroup partitions one day's tasks for calendar-style rendering:
// timed items first, ascending by clock, then the untimed rest in
// their incoming order.
type DayGroup struct {
	Day     model.Date
	Timed   []model.Task
	Untimed []model.Task
}

// GroupByDay buckets tasks due on the given day.
func GroupByDay(tasks []model.Task, day model.Date) DayGroup {
	group := DayGroup{Day: day}
	for _, task := range tasks {
		if task.DueDate != day {
			continue
		}
		if task.Timed() {
			group.Timed = append(group.Timed, task)
		} else {
			group.Untimed = append(group.Untimed, task)
		}
	}
	sort.SliceStable(group.Timed, func(i, j int) bool {
		return group.Timed[i].DueTime.Before(group.Timed[j].DueTime)
	})
	return group
}

// Week returns the seven days starting at start, each grouped.
func Week(tasks []model.Task, start model.Date) []DayGroup {
	days := make([]DayGroup, 0, 7)
	for i := 0; i < 7; i++ {
		days = append(days, GroupByDay(tasks, start.AddDays(i)))
	}
	return days
}
