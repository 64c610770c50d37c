package model

import (
	"encoding/json"
	"testing"
)

func TestDateWithinInclusive(t *testing.T) {
	from := Date("2025-01-01")
	to := Date("2025-01-31")

	cases := []struct {
		date Date
		want bool
	}{
		{Date("2025-01-01"), true},
		{Date("2025-01-31"), true},
		{Date("2025-01-15"), true},
		{Date("2024-12-31"), false},
		{Date("2025-02-01"), false},
	}
	for _, tc := range cases {
		if got := tc.date.Within(from, to); got != tc.want {
			t.Errorf("Within(%s): got %v, want %v", tc.date, got, tc.want)
		}
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"01-02-2025", "2025-13-01", "tomorrow", ""} {
		if _, err := ParseDate(raw); err == nil {
			t.Errorf("ParseDate(%q): expected error", raw)
		}
	}
	if d, err := ParseDate("2025-02-10"); err != nil || d != "2025-02-10" {
		t.Fatalf("ParseDate: got %q, %v", d, err)
	}
}

func TestClockOrdering(t *testing.T) {
	early, err := ParseClock("09:05")
	if err != nil {
		t.Fatal(err)
	}
	late, err := ParseClock("21:30")
	if err != nil {
		t.Fatal(err)
	}
	if !early.Before(late) {
		t.Fatalf("expected %s before %s", early, late)
	}
}

func TestCompleteSetsBothFields(t *testing.T) {
	task := Task{ID: 1, Title: "A", DueDate: "2025-01-01"}

	task.Complete("2025-01-03")
	if !task.Finished || task.DateFinished != "2025-01-03" {
		t.Fatalf("Complete: got finished=%v date_finished=%q", task.Finished, task.DateFinished)
	}

	task.Reopen()
	if task.Finished || task.DateFinished != "" {
		t.Fatalf("Reopen: got finished=%v date_finished=%q", task.Finished, task.DateFinished)
	}
}

func TestTaskPatchOmitsAbsentFields(t *testing.T) {
	patch := TaskPatch{
		DueDate:  Ptr(Date("2025-02-10")),
		Finished: Ptr(true),
	}
	data, err := json.Marshal(patch)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if len(decoded) != 2 {
		t.Fatalf("expected exactly 2 fields on the wire, got %v", decoded)
	}
	if decoded["due_date"] != "2025-02-10" {
		t.Fatalf("unexpected due_date: %v", decoded["due_date"])
	}
	if decoded["finished"] != true {
		t.Fatalf("unexpected finished: %v", decoded["finished"])
	}
}

func TestReportDefaultsMissingNumbers(t *testing.T) {
	var report TaskCompletionReport
	if err := json.Unmarshal([]byte(`{"total_tasks": 4}`), &report); err != nil {
		t.Fatal(err)
	}
	if report.TotalTasks != 4 {
		t.Fatalf("total_tasks: got %d", report.TotalTasks)
	}
	if report.CompletionRate != 0 || report.AvgImportance != 0 {
		t.Fatalf("expected zero defaults, got %+v", report)
	}
}

func TestTaskJSONFieldNames(t *testing.T) {
	task := Task{ID: 7, Title: "Call", DueDate: "2025-03-01", UserID: 2}
	data, err := json.Marshal(task)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"task_id", "title", "due_date", "user_id", "finished"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("missing wire field %q in %v", key, decoded)
		}
	}
}
