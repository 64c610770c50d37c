package projection

import (
	"reflect"
	"testing"

	"tableflip.dev/dayplan/pkg/model"
)

func fixture() []model.Task {
	return []model.Task{
		{ID: 1, Title: "A", Finished: false, DueDate: "2025-01-01"},
		{ID: 2, Title: "B", Finished: true, DueDate: "2025-01-02"},
	}
}

func ids(tasks []model.Task) []int64 {
	out := make([]int64, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestActiveTabKeepsUnfinished(t *testing.T) {
	got := Apply(fixture(), Criteria{Tab: TabActive})
	if want := []int64{1}; !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("active tab: got %v, want %v", ids(got), want)
	}
}

func TestCompletedTabKeepsFinished(t *testing.T) {
	got := Apply(fixture(), Criteria{Tab: TabCompleted})
	if want := []int64{2}; !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("completed tab: got %v, want %v", ids(got), want)
	}
}

func TestDueDateDescending(t *testing.T) {
	got := Apply(fixture(), Criteria{SortKey: SortByDueDate, Descending: true})
	if want := []int64{2, 1}; !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("desc sort: got %v, want %v", ids(got), want)
	}
}

func TestSearchMatchesTitleOrDescription(t *testing.T) {
	tasks := []model.Task{
		{ID: 1, Title: "Buy milk", DueDate: "2025-01-01"},
		{ID: 2, Title: "Gym", Description: "leg day, buy protein", DueDate: "2025-01-02"},
		{ID: 3, Title: "Call mom", DueDate: "2025-01-03"},
	}

	got := Apply(tasks, Criteria{Search: "BUY"})
	if want := []int64{1, 2}; !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("search: got %v, want %v", ids(got), want)
	}

	// Tasks without a description never match on it.
	got = Apply(tasks, Criteria{Search: "protein"})
	if want := []int64{2}; !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("description search: got %v, want %v", ids(got), want)
	}
}

func TestImportanceAllIncludesUnset(t *testing.T) {
	tasks := []model.Task{
		{ID: 1, Title: "A", DueDate: "2025-01-01", Importance: 3},
		{ID: 2, Title: "B", DueDate: "2025-01-02"}, // importance unset
	}

	got := Apply(tasks, Criteria{Importance: ImportanceAll})
	if len(got) != 2 {
		t.Fatalf("importance=all should keep everything, got %v", ids(got))
	}

	got = Apply(tasks, Criteria{Importance: 3})
	if want := []int64{1}; !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("importance=3: got %v, want %v", ids(got), want)
	}
}

func TestRangeBoundsAreInclusive(t *testing.T) {
	tasks := []model.Task{
		{ID: 1, Title: "on from", DueDate: "2025-01-10"},
		{ID: 2, Title: "inside", DueDate: "2025-01-15"},
		{ID: 3, Title: "on to", DueDate: "2025-01-20"},
		{ID: 4, Title: "before", DueDate: "2025-01-09"},
		{ID: 5, Title: "after", DueDate: "2025-01-21"},
	}
	got := Apply(tasks, Criteria{Range: Range{From: "2025-01-10", To: "2025-01-20"}})
	if want := []int64{1, 2, 3}; !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("range: got %v, want %v", ids(got), want)
	}
}

func TestOutputIsSubsetPreservingOrder(t *testing.T) {
	tasks := []model.Task{
		{ID: 4, Title: "d", DueDate: "2025-01-04"},
		{ID: 1, Title: "a", DueDate: "2025-01-01"},
		{ID: 3, Title: "c", DueDate: "2025-01-03", Finished: true},
		{ID: 2, Title: "b", DueDate: "2025-01-02"},
	}
	got := Apply(tasks, Criteria{Tab: TabActive})
	if want := []int64{4, 1, 2}; !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("filter-only projection must preserve input order: got %v", ids(got))
	}
}

func TestApplyIsIdempotentAndPure(t *testing.T) {
	tasks := fixture()
	criteria := Criteria{Tab: TabActive, SortKey: SortByTitle}

	first := Apply(tasks, criteria)
	second := Apply(tasks, criteria)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("two applications differ: %v vs %v", first, second)
	}

	// The input slice must not be reordered.
	if tasks[0].ID != 1 || tasks[1].ID != 2 {
		t.Fatalf("input mutated: %v", ids(tasks))
	}
}

func TestStableSortKeepsTieOrder(t *testing.T) {
	tasks := []model.Task{
		{ID: 1, Title: "x", DueDate: "2025-01-01", Importance: 2},
		{ID: 2, Title: "y", DueDate: "2025-01-01", Importance: 2},
		{ID: 3, Title: "z", DueDate: "2025-01-01", Importance: 1},
	}
	got := Apply(tasks, Criteria{SortKey: SortByImportance})
	if want := []int64{3, 1, 2}; !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("ties must keep incoming order: got %v", ids(got))
	}
}

func TestGroupByDaySplitsTimedAndUntimed(t *testing.T) {
	tasks := []model.Task{
		{ID: 1, Title: "late", DueDate: "2025-03-03", DueTime: "18:00"},
		{ID: 2, Title: "allday", DueDate: "2025-03-03"},
		{ID: 3, Title: "early", DueDate: "2025-03-03", DueTime: "08:30"},
		{ID: 4, Title: "other day", DueDate: "2025-03-04", DueTime: "09:00"},
	}

	group := GroupByDay(tasks, "2025-03-03")
	if want := []int64{3, 1}; !reflect.DeepEqual(ids(group.Timed), want) {
		t.Fatalf("timed: got %v, want %v", ids(group.Timed), want)
	}
	if want := []int64{2}; !reflect.DeepEqual(ids(group.Untimed), want) {
		t.Fatalf("untimed: got %v, want %v", ids(group.Untimed), want)
	}
}

func TestWeekCoversSevenDays(t *testing.T) {
	groups := Week(nil, "2025-03-03")
	if len(groups) != 7 {
		t.Fatalf("expected 7 day groups, got %d", len(groups))
	}
	if groups[0].Day != "2025-03-03" || groups[6].Day != "2025-03-09" {
		t.Fatalf("unexpected span %s..%s", groups[0].Day, groups[6].Day)
	}
}
