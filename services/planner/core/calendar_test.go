package core

import (
	"errors"
	"testing"
	"time"
)

func TestParseSessionTime(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC+3", 3*3600)
	want := time.Date(2024, 6, 10, 9, 30, 0, 0, loc)

	testCases := []struct {
		name string
		in   string
	}{
		{"datetime_local", "2024-06-10T09:30"},
		{"datetime_local_seconds", "2024-06-10T09:30:00"},
		{"space", "2024-06-10 09:30"},
		{"space_seconds", " 2024-06-10 09:30:00 "},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseSessionTime(tc.in, loc)
			if err != nil {
				t.Fatalf("ParseSessionTime(%q) returned error: %v", tc.in, err)
			}
			if !got.Equal(want) || got.Location() != loc {
				t.Fatalf("ParseSessionTime(%q) = %v, want %v", tc.in, got, want)
			}
		})
	}
}

func TestParseSessionTime_OffsetKeepsWrittenDate(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC+14", 14*3600)

	testCases := []struct {
		in      string
		wantDay string
		instant time.Time
	}{
		{"2024-06-09T23:00:00-12:00", "2024-06-09", time.Date(2024, 6, 10, 11, 0, 0, 0, time.UTC)},
		{"2024-06-10T23:30:00Z", "2024-06-10", time.Date(2024, 6, 10, 23, 30, 0, 0, time.UTC)},
	}

	for _, tc := range testCases {
		got, err := ParseSessionTime(tc.in, loc)
		if err != nil {
			t.Fatalf("ParseSessionTime(%q) returned error: %v", tc.in, err)
		}
		if !got.Equal(tc.instant) {
			t.Fatalf("ParseSessionTime(%q) = %v, want instant %v", tc.in, got, tc.instant)
		}
		if day := dayKey(got); day != tc.wantDay {
			t.Fatalf("ParseSessionTime(%q) falls on %s, want %s", tc.in, day, tc.wantDay)
		}
	}
}

func TestParseSessionTime_Invalid(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "tomorrow", "2024-13-01T10:00", "10:00"} {
		if _, err := ParseSessionTime(in, time.UTC); !errors.Is(err, ErrSessionTimeInvalid) {
			t.Fatalf("ParseSessionTime(%q): expected ErrSessionTimeInvalid, got %v", in, err)
		}
	}
}

func TestMondayOf(t *testing.T) {
	t.Parallel()

	want := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	for day := 10; day <= 16; day++ {
		in := time.Date(2024, 6, day, 23, 59, 0, 0, time.UTC)
		if got := MondayOf(in); !got.Equal(want) {
			t.Fatalf("MondayOf(%s) = %s, want %s", in.Format(DateLayout), got.Format(DateLayout), want.Format(DateLayout))
		}
	}
}
