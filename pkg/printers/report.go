package printers

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/dayplan/pkg/model"
)

// TaskReport prints the completion aggregate as a two-column table.
func (pp *PrettyPrint) TaskReport(from, to model.Date, report model.TaskCompletionReport) {
	pp.Title(fmt.Sprintf("Task completion %s … %s", from, to))

	table := uitable.New()
	table.AddRow("total", report.TotalTasks)
	table.AddRow("completed", report.CompletedTasks)
	table.AddRow("completion rate", fmt.Sprintf("%.0f%%", report.CompletionRate*100))
	table.AddRow("avg days to finish", fmt.Sprintf("%.1f", report.AvgCompletionDays))
	table.AddRow("avg importance", fmt.Sprintf("%.1f", report.AvgImportance))
	fmt.Println(table)
	fmt.Println("")
}

// NoteReport prints the note activity aggregate.
func (pp *PrettyPrint) NoteReport(from, to model.Date, report model.NoteActivityReport) {
	pp.Title(fmt.Sprintf("Note activity %s … %s", from, to))

	table := uitable.New()
	table.AddRow("notes created", report.TotalNotes)
	fmt.Println(table)
	fmt.Println("")
}

// Error prints a remote failure the way full-page load errors render:
// the message plus a hint that re-running is the retry.
func (pp *PrettyPrint) Error(err error) {
	r := color.New(color.FgRed)
	f := color.New(color.Faint)
	_, _ = r.Printf("request failed: %v\n", err)
	_, _ = f.Println("re-run the command to retry")
}
