package core

import (
	"testing"
	"time"
)

func at(day, clock string) time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04", day+" "+clock, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func sessionOn(id int64, day, clock string) ScheduledSession {
	return ScheduledSession{ID: id, TaskID: 1, Label: "Algebra", Start: at(day, clock)}
}

func TestUpcomingWindow_SevenDaysInclusive(t *testing.T) {
	t.Parallel()

	today := at("2024-06-10", "00:00")
	in := []ScheduledSession{
		sessionOn(4, "2024-06-20", "09:00"),
		sessionOn(3, "2024-06-16", "23:30"),
		sessionOn(2, "2024-06-10", "08:00"),
		sessionOn(1, "2024-06-09", "12:00"),
	}

	got := UpcomingWindow(today, in)
	if len(got) != 2 || got[0].ID != 2 || got[1].ID != 3 {
		t.Fatalf("unexpected window: %+v", got)
	}
}

func TestUpcomingWindow_EmptyIsNotNil(t *testing.T) {
	t.Parallel()

	got := UpcomingWindow(at("2024-06-10", "00:00"), nil)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestUpcomingWindow_OrdersByTimeWithinDay(t *testing.T) {
	t.Parallel()

	got := UpcomingWindow(at("2024-06-10", "00:00"), []ScheduledSession{
		sessionOn(1, "2024-06-11", "18:00"),
		sessionOn(2, "2024-06-11", "07:00"),
		sessionOn(3, "2024-06-10", "20:00"),
	})
	if len(got) != 3 || got[0].ID != 3 || got[1].ID != 2 || got[2].ID != 1 {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestWeekGrid_BucketsByStartDate(t *testing.T) {
	t.Parallel()

	weekStart := at("2024-06-10", "00:00")
	days := WeekGrid(weekStart, []ScheduledSession{sessionOn(1, "2024-06-12", "10:00")})

	if len(days) != WindowDays {
		t.Fatalf("expected %d days, got %d", WindowDays, len(days))
	}
	for i, d := range days {
		if want := weekStart.AddDate(0, 0, i); !d.Date.Equal(want) {
			t.Fatalf("day %d is %s, want %s", i, d.Date.Format(DateLayout), want.Format(DateLayout))
		}
		if d.Sessions == nil {
			t.Fatalf("day %d has nil sessions", i)
		}
		wantLen := 0
		if i == 2 {
			wantLen = 1
		}
		if len(d.Sessions) != wantLen {
			t.Fatalf("day %d has %d sessions, want %d", i, len(d.Sessions), wantLen)
		}
	}
}

func TestWeekGrid_UnionMatchesInRangeInput(t *testing.T) {
	t.Parallel()

	weekStart := at("2024-06-10", "00:00")
	in := []ScheduledSession{
		sessionOn(1, "2024-06-09", "23:59"),
		sessionOn(2, "2024-06-10", "00:00"),
		sessionOn(3, "2024-06-13", "12:00"),
		sessionOn(4, "2024-06-13", "08:00"),
		sessionOn(5, "2024-06-16", "23:59"),
		sessionOn(6, "2024-06-17", "00:00"),
	}

	seen := map[int64]int{}
	for _, d := range WeekGrid(weekStart, in) {
		for _, s := range d.Sessions {
			seen[s.ID]++
		}
	}

	for _, id := range []int64{2, 3, 4, 5} {
		if seen[id] != 1 {
			t.Fatalf("session %d seen %d times", id, seen[id])
		}
	}
	if seen[1] != 0 || seen[6] != 0 {
		t.Fatalf("out of range sessions were bucketed: %v", seen)
	}
}

func TestSchedule_SkipsUnparsableStartAndKeepsBadEnd(t *testing.T) {
	t.Parallel()

	title := "Algebra"
	views := []SessionView{
		{Session: Session{ID: 1, TaskID: 1, StartAt: "2024-06-10T10:00", EndAt: "2024-06-10T11:00"}, TaskTitle: &title},
		{Session: Session{ID: 2, TaskID: 9, StartAt: "soon", EndAt: "2024-06-10T11:00"}},
		{Session: Session{ID: 3, TaskID: 9, StartAt: "2024-06-10T09:00", EndAt: "later"}},
	}

	got, skipped := Schedule(views, time.UTC)
	if len(skipped) != 1 || skipped[0].ID != 2 {
		t.Fatalf("expected session 2 skipped, got %+v", skipped)
	}
	if len(got) != 2 || got[0].ID != 3 || got[1].ID != 1 {
		t.Fatalf("unexpected schedule: %+v", got)
	}
	if got[0].End != nil {
		t.Fatalf("expected nil end for unparsable end_at, got %v", got[0].End)
	}
	if got[0].Label != "Task #9" || got[1].Label != "Algebra" {
		t.Fatalf("unexpected labels %q, %q", got[0].Label, got[1].Label)
	}
}

func TestViews_BucketByWrittenDateAcrossOffsets(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC+14", 14*3600)
	views := []SessionView{
		{Session: Session{ID: 1, TaskID: 1, StartAt: "2024-06-09T23:00:00-12:00", EndAt: ""}},
		{Session: Session{ID: 2, TaskID: 1, StartAt: "2024-06-10T23:30:00Z", EndAt: ""}},
	}
	sessions, skipped := Schedule(views, loc)
	if len(skipped) != 0 {
		t.Fatalf("unexpected skipped sessions %+v", skipped)
	}

	bucketOf := func(weekStart time.Time) map[int64]string {
		out := map[int64]string{}
		for _, d := range WeekGrid(weekStart, sessions) {
			for _, s := range d.Sessions {
				out[s.ID] = d.Date.Format(DateLayout)
			}
		}
		return out
	}

	thisWeek := bucketOf(time.Date(2024, 6, 10, 0, 0, 0, 0, loc))
	if len(thisWeek) != 1 || thisWeek[2] != "2024-06-10" {
		t.Fatalf("week from 06-10: got %v, want only session 2 on 2024-06-10", thisWeek)
	}

	shifted := bucketOf(time.Date(2024, 6, 4, 0, 0, 0, 0, loc))
	if shifted[1] != "2024-06-09" || shifted[2] != "2024-06-10" {
		t.Fatalf("week from 06-04: got %v", shifted)
	}

	upcoming := UpcomingWindow(time.Date(2024, 6, 10, 0, 0, 0, 0, loc), sessions)
	if len(upcoming) != 1 || upcoming[0].ID != 2 {
		t.Fatalf("upcoming from 06-10: got %+v", upcoming)
	}
}
