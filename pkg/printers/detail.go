package printers

import (
	"fmt"

	"github.com/charmbracelet/glamour"

	"tableflip.dev/dayplan/pkg/model"
)

// NoteDetail renders one note with its description as markdown.
func (pp *PrettyPrint) NoteDetail(note model.Note) {
	pp.Title(note.Title)
	if note.Description == "" {
		pp.none()
		return
	}

	rendered, err := glamour.Render(note.Description, "auto")
	if err != nil {
		// Fall back to the raw text when the renderer chokes.
		fmt.Println(note.Description)
		fmt.Println("")
		return
	}
	fmt.Print(rendered)
}

// TaskDetail renders one task with all fields.
func (pp *PrettyPrint) TaskDetail(task model.Task) {
	pp.Title(task.Title)
	fmt.Printf("  due        %s\n", when(task))
	if task.Importance != 0 {
		fmt.Printf("  importance %s\n", marks(task))
	}
	if task.Finished {
		fmt.Printf("  finished   %s\n", task.DateFinished)
	}
	if !task.DateMade.IsZero() {
		fmt.Printf("  created    %s\n", task.DateMade)
	}
	if task.Description != "" {
		rendered, err := glamour.Render(task.Description, "auto")
		if err != nil {
			fmt.Println(task.Description)
		} else {
			fmt.Print(rendered)
		}
	}
	fmt.Println("")
}
