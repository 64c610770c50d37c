package calendar

import (
	"strings"
	"testing"

	"tableflip.dev/dayplan/pkg/model"
	"tableflip.dev/dayplan/pkg/tui/theme"
)

func TestWeekStartIsMonday(t *testing.T) {
	cases := []struct {
		day  model.Date
		want model.Date
	}{
		{"2026-09-01", "2026-08-31"}, // tuesday
		{"2026-08-31", "2026-08-31"}, // monday maps to itself
		{"2026-09-06", "2026-08-31"}, // sunday closes the week
		{"2026-09-07", "2026-09-07"}, // next monday starts fresh
	}
	for _, tc := range cases {
		if got := WeekStart(tc.day); got != tc.want {
			t.Errorf("WeekStart(%s) = %s, want %s", tc.day, got, tc.want)
		}
	}
}

func TestRenderPlacesTasksInLanes(t *testing.T) {
	tasks := []model.Task{
		{ID: 1, Title: "standup", DueDate: "2026-08-31", DueTime: "09:30"},
		{ID: 2, Title: "ship release", DueDate: "2026-09-02"},
		{ID: 3, Title: "retro notes", DueDate: "2026-09-02", Finished: true, DateFinished: "2026-09-02"},
	}

	out := Render(tasks, "2026-08-31", Options{
		Theme: theme.Default().Calendar,
		Width: 140,
		Today: "2026-09-01",
	})

	for _, want := range []string{"standup", "ship release", "retro notes", "09:30"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered week missing %q:\n%s", want, out)
		}
	}
	// Both lanes label every column.
	if got := strings.Count(out, "to do"); got != 7 {
		t.Errorf("expected 7 pending lanes, got %d", got)
	}
	if got := strings.Count(out, "done"); got != 7 {
		t.Errorf("expected 7 done lanes, got %d", got)
	}
}

func TestRenderOmitsTasksOutsideWeek(t *testing.T) {
	tasks := []model.Task{
		{ID: 1, Title: "inside the week", DueDate: "2026-09-03"},
		{ID: 2, Title: "next week entirely", DueDate: "2026-09-08"},
	}

	out := Render(tasks, "2026-08-31", Options{
		Theme: theme.Default().Calendar,
		Width: 140,
		Today: "2026-09-01",
	})

	if !strings.Contains(out, "inside the week") {
		t.Fatalf("expected in-range task rendered:\n%s", out)
	}
	if strings.Contains(out, "next week entirely") {
		t.Fatalf("expected out-of-range task omitted:\n%s", out)
	}
}
