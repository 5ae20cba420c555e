package core

import (
	"fmt"
	"sort"
	"time"
)

// WindowDays is the length of both the upcoming window and the week grid.
const WindowDays = 7

// SessionLabel is the owning task's title, or "Task #<id>" once the task is gone.
func SessionLabel(s SessionView) string {
	if s.TaskTitle != nil && *s.TaskTitle != "" {
		return *s.TaskTitle
	}
	return fmt.Sprintf("Task #%d", s.TaskID)
}

// Schedule parses session times in loc and attaches labels. Sessions whose
// start does not parse are returned in skipped and left out of the result.
func Schedule(sessions []SessionView, loc *time.Location) (scheduled []ScheduledSession, skipped []Session) {
	scheduled = make([]ScheduledSession, 0, len(sessions))
	for _, s := range sessions {
		start, err := ParseSessionTime(s.StartAt, loc)
		if err != nil {
			skipped = append(skipped, s.Session)
			continue
		}

		item := ScheduledSession{
			ID:     s.ID,
			TaskID: s.TaskID,
			Label:  SessionLabel(s),
			Start:  start,
			Notes:  s.Notes,
		}
		if end, err := ParseSessionTime(s.EndAt, loc); err == nil {
			item.End = &end
		}
		scheduled = append(scheduled, item)
	}
	sortByStart(scheduled)
	return scheduled, skipped
}

// UpcomingWindow returns the sessions starting on today through today+6,
// ascending by start. The result is never nil.
func UpcomingWindow(today time.Time, sessions []ScheduledSession) []ScheduledSession {
	first := StartOfDay(today)
	from, to := dayKey(first), dayKey(first.AddDate(0, 0, WindowDays-1))

	out := make([]ScheduledSession, 0)
	for _, s := range sessions {
		day := dayKey(s.Start)
		if day < from || day > to {
			continue
		}
		out = append(out, s)
	}
	sortByStart(out)
	return out
}

// WeekGrid returns seven consecutive days from weekStart, each holding the
// sessions that start on it in ascending order. Empty days are kept.
func WeekGrid(weekStart time.Time, sessions []ScheduledSession) []DayBucket {
	first := StartOfDay(weekStart)

	days := make([]DayBucket, WindowDays)
	index := make(map[string]int, WindowDays)
	for i := range days {
		date := first.AddDate(0, 0, i)
		days[i] = DayBucket{Date: date, Sessions: []ScheduledSession{}}
		index[dayKey(date)] = i
	}

	for _, s := range sessions {
		i, ok := index[dayKey(s.Start)]
		if !ok {
			continue
		}
		days[i].Sessions = append(days[i].Sessions, s)
	}

	for i := range days {
		sortByStart(days[i].Sessions)
	}
	return days
}

func sortByStart(items []ScheduledSession) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].Start.Equal(items[j].Start) {
			return items[i].Start.Before(items[j].Start)
		}
		return items[i].ID < items[j].ID
	})
}
