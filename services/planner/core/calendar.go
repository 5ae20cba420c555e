package core

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar date format used for due dates, day keys and URLs.
const DateLayout = "2006-01-02"

// Zone-less layouts accepted for stored session times.
var sessionLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
}

// ParseSessionTime parses a stored session timestamp. Zone-less values are read
// in loc; values carrying an offset keep it, so the result's calendar date is
// always the date written in s.
func ParseSessionTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range sessionLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrSessionTimeInvalid, s)
}

// ParseDate parses a YYYY-MM-DD calendar date as midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), loc)
}

// StartOfDay returns midnight of t's day in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// MondayOf returns midnight of the Monday of the ISO week containing t.
func MondayOf(t time.Time) time.Time {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7 // Sunday closes the week
	}
	return StartOfDay(t).AddDate(0, 0, -(wd - 1))
}

// dayKey is the calendar date of t in its own location. For a parsed session
// start it equals the date prefix of the stored text.
func dayKey(t time.Time) string {
	return t.Format(DateLayout)
}
