package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/dayplan/pkg/model"
)

// PrettyPrint renders task and note lists for the terminal.
type PrettyPrint struct {
	ShowID bool
}

var spacing = strings.Repeat(" ", len("12345  "))

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Println(title)
}

// TitleWithCount prints a heading with the item count appended.
func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Print(title)
	_, _ = c.Printf(" - %d", count)

	switch count {
	case 1:
		_, _ = c.Println(" item")
	default:
		_, _ = c.Println(" items")
	}
}

// Tasks prints each task as one line: state glyph, due date and time,
// importance marks, title.
func (pp *PrettyPrint) Tasks(tasks ...model.Task) {
	if len(tasks) == 0 {
		pp.none()
		return
	}

	t := color.New()
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	done := color.New(color.Faint, color.CrossedOut)

	for _, task := range tasks {
		if pp.ShowID {
			id := fmt.Sprintf("%d", task.ID)
			_, _ = y.Print(id)
			_, _ = y.Print(strings.Repeat(" ", len(spacing)-len(id)))
		}
		line := fmt.Sprintf("%s %s %s%s", stateGlyph(task), when(task), marks(task), task.Title)
		if task.Finished {
			_, _ = done.Println(line)
		} else {
			_, _ = t.Println(line)
		}
	}
	_, _ = t.Println("")
}

// Notes prints each note as one line.
func (pp *PrettyPrint) Notes(notes ...model.Note) {
	if len(notes) == 0 {
		pp.none()
		return
	}

	t := color.New()
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)

	for _, note := range notes {
		if pp.ShowID {
			id := fmt.Sprintf("%d", note.ID)
			_, _ = y.Print(id)
			_, _ = y.Print(strings.Repeat(" ", len(spacing)-len(id)))
		}
		_, _ = t.Printf("- %s\n", note.Title)
	}
	_, _ = t.Println("")
}

// Removed acknowledges a confirmed delete.
func (pp *PrettyPrint) Removed(kind string, id int64) {
	f := color.New(color.Faint)
	_, _ = f.Printf("removed %s %d\n", kind, id)
}

// CleanedUp acknowledges a confirmed bulk cleanup.
func (pp *PrettyPrint) CleanedUp(kind string, days int) {
	f := color.New(color.Faint)
	_, _ = f.Printf("cleaned up finished %s older than %d days\n", kind, days)
}

// Skipped notes a declined cleanup.
func (pp *PrettyPrint) Skipped(kind string) {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Printf("left %s alone\n", kind)
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	if pp.ShowID {
		_, _ = f.Print(spacing)
	}
	_, _ = f.Print(" none\n\n")
}

func stateGlyph(task model.Task) string {
	if task.Finished {
		return "x"
	}
	return "•"
}

func when(task model.Task) string {
	if task.Timed() {
		return fmt.Sprintf("%s %s", task.DueDate, task.DueTime)
	}
	return fmt.Sprintf("%s      ", task.DueDate)
}

func marks(task model.Task) string {
	if task.Importance == 0 {
		return ""
	}
	return strings.Repeat("!", task.Importance) + " "
}
