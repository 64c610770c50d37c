// Package events defines the typed messages components exchange
// through the Bubble Tea runtime.
package events

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/dayplan/pkg/model"
)

// ComponentID uniquely identifies a component instance emitting events.
type ComponentID string

// TasksLoadedMsg reports that the task store finished a load. The list
// itself lives in the store; the message only announces the outcome.
type TasksLoadedMsg struct {
	Component ComponentID
	Err       error
}

// Describe renders the load result for logs.
func (m TasksLoadedMsg) Describe() string {
	if m.Err != nil {
		return fmt.Sprintf(`component:%q state:"failed" err:%q`, m.Component, m.Err.Error())
	}
	return fmt.Sprintf(`component:%q state:"loaded"`, m.Component)
}

// NotesLoadedMsg mirrors TasksLoadedMsg for the note store.
type NotesLoadedMsg struct {
	Component ComponentID
	Err       error
}

// Describe renders the load result for logs.
func (m NotesLoadedMsg) Describe() string {
	if m.Err != nil {
		return fmt.Sprintf(`component:%q state:"failed" err:%q`, m.Component, m.Err.Error())
	}
	return fmt.Sprintf(`component:%q state:"loaded"`, m.Component)
}

// TaskChangedMsg announces a server-confirmed task mutation.
type TaskChangedMsg struct {
	Component ComponentID
	Task      model.Task
}

// Describe renders the mutation for logs.
func (m TaskChangedMsg) Describe() string {
	return fmt.Sprintf(`component:%q task:%d title:%q`, m.Component, m.Task.ID, m.Task.Title)
}

// TaskRemovedMsg announces a server-confirmed delete.
type TaskRemovedMsg struct {
	Component ComponentID
	ID        int64
}

// Describe renders the removal for logs.
func (m TaskRemovedMsg) Describe() string {
	return fmt.Sprintf(`component:%q task:%d`, m.Component, m.ID)
}

// RequestFailedMsg carries a failed remote call. The view that issued
// it decides how to surface the retry affordance.
type RequestFailedMsg struct {
	Component ComponentID
	Err       error
}

// Describe renders the failure for logs.
func (m RequestFailedMsg) Describe() string {
	return fmt.Sprintf(`component:%q err:%q`, m.Component, m.Err.Error())
}

// DropCompletedMsg reports the outcome of a drag-reschedule drop.
type DropCompletedMsg struct {
	Component ComponentID
	Task      model.Task
	Err       error
}

// Describe renders the drop outcome for logs.
func (m DropCompletedMsg) Describe() string {
	if m.Err != nil {
		return fmt.Sprintf(`component:%q state:"failed" err:%q`, m.Component, m.Err.Error())
	}
	return fmt.Sprintf(`component:%q task:%d due:%q`, m.Component, m.Task.ID, m.Task.DueDate)
}

// FormDoneMsg signals the create/edit overlay finished. Saved is false
// when the user cancelled.
type FormDoneMsg struct {
	Component ComponentID
	Saved     bool
}

// Describe renders the form outcome for logs.
func (m FormDoneMsg) Describe() string {
	return fmt.Sprintf(`component:%q saved:%t`, m.Component, m.Saved)
}

// ReportLoadedMsg carries a fetched completion report into the overlay.
type ReportLoadedMsg struct {
	Component ComponentID
	Report    model.TaskCompletionReport
	Err       error
}

// Describe renders the report load for logs.
func (m ReportLoadedMsg) Describe() string {
	if m.Err != nil {
		return fmt.Sprintf(`component:%q state:"failed" err:%q`, m.Component, m.Err.Error())
	}
	return fmt.Sprintf(`component:%q total:%d`, m.Component, m.Report.TotalTasks)
}

// SessionChangedMsg reports that another process changed the on-disk
// session state; Prefs distinguishes preference writes from login or
// logout.
type SessionChangedMsg struct {
	Component ComponentID
	Prefs     bool
}

// Describe renders the change for logs.
func (m SessionChangedMsg) Describe() string {
	return fmt.Sprintf(`component:%q prefs:%t`, m.Component, m.Prefs)
}

// TaskChangedCmd wraps TaskChangedMsg in a tea.Cmd.
func TaskChangedCmd(component ComponentID, task model.Task) tea.Cmd {
	return func() tea.Msg {
		return TaskChangedMsg{Component: component, Task: task}
	}
}

// FormDoneCmd wraps FormDoneMsg in a tea.Cmd.
func FormDoneCmd(component ComponentID, saved bool) tea.Cmd {
	return func() tea.Msg {
		return FormDoneMsg{Component: component, Saved: saved}
	}
}
