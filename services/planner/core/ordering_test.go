package core

import (
	"testing"
	"time"
)

func dated(id int64, due string, created time.Time) TaskView {
	tv := TaskView{Task: Task{ID: id, Title: "t", CreatedAt: created}}
	if due != "" {
		d, err := time.Parse(DateLayout, due)
		if err != nil {
			panic(err)
		}
		tv.DueDate = &d
	}
	return tv
}

func ids(tasks []TaskView) []int64 {
	out := make([]int64, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestOrderTasks_DatedFirstAscending(t *testing.T) {
	t.Parallel()

	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	in := []TaskView{
		dated(1, "", created),
		dated(2, "2024-03-01", created),
		dated(3, "2024-02-01", created),
	}

	got := ids(OrderTasks(in))
	if want := []int64{3, 2, 1}; !equalIDs(got, want) {
		t.Fatalf("OrderTasks() = %v, want %v", got, want)
	}
	if in[0].ID != 1 || in[1].ID != 2 || in[2].ID != 3 {
		t.Fatalf("input was mutated: %v", ids(in))
	}
}

func TestOrderTasks_TiesNewestThenID(t *testing.T) {
	t.Parallel()

	older := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	newer := older.Add(time.Hour)
	in := []TaskView{
		dated(5, "2024-02-01", older),
		dated(4, "2024-02-01", newer),
		dated(3, "", older),
		dated(2, "", newer),
		dated(1, "", older),
	}

	got := ids(OrderTasks(in))
	if want := []int64{4, 5, 2, 1, 3}; !equalIDs(got, want) {
		t.Fatalf("OrderTasks() = %v, want %v", got, want)
	}
}

func TestOrderTasks_Idempotent(t *testing.T) {
	t.Parallel()

	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	in := []TaskView{
		dated(1, "", base),
		dated(2, "2024-06-01", base.Add(time.Minute)),
		dated(3, "2024-05-15", base),
		dated(4, "", base.Add(2*time.Minute)),
		dated(5, "2024-05-15", base.Add(time.Minute)),
	}

	once := OrderTasks(in)
	twice := OrderTasks(once)
	if !equalIDs(ids(once), ids(twice)) {
		t.Fatalf("ordering is not idempotent: %v then %v", ids(once), ids(twice))
	}

	seenUndated := false
	for _, tv := range once {
		if tv.DueDate == nil {
			seenUndated = true
			continue
		}
		if seenUndated {
			t.Fatalf("dated task %d after an undated one: %v", tv.ID, ids(once))
		}
	}
}

func TestOrderTasks_Empty(t *testing.T) {
	t.Parallel()

	if got := OrderTasks(nil); len(got) != 0 {
		t.Fatalf("expected empty result, got %v", ids(got))
	}
}
