package transcript

import (
	"testing"
	"time"
)

func TestFormatTimestamp(t *testing.T) {
	loc := time.FixedZone("test", -5*60*60)
	now := time.Date(2026, time.March, 15, 14, 30, 0, 0, loc)

	tests := []struct {
		name string
		ts   time.Time
		want string
	}{
		{"same instant", now, "02:30 PM"},
		{"earlier today", time.Date(2026, time.March, 15, 0, 5, 0, 0, loc), "12:05 AM"},
		{"yesterday", time.Date(2026, time.March, 14, 9, 7, 0, 0, loc), "Yesterday, 09:07 AM"},
		{"two days ago", time.Date(2026, time.March, 13, 18, 0, 0, 0, loc), "Mar 13, 06:00 PM"},
		{"earlier this year", time.Date(2026, time.January, 2, 8, 0, 0, 0, loc), "Jan 2, 08:00 AM"},
		{"last year", time.Date(2025, time.December, 31, 23, 59, 0, 0, loc), "Dec 31, 2025, 11:59 PM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatTimestamp(tt.ts.UnixMilli(), now); got != tt.want {
				t.Errorf("FormatTimestamp() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatTimestamp_YesterdayAcrossMidnight(t *testing.T) {
	loc := time.FixedZone("test", 0)
	now := time.Date(2026, time.June, 10, 0, 10, 0, 0, loc)
	ts := time.Date(2026, time.June, 9, 23, 50, 0, 0, loc)

	if now.Sub(ts) >= 24*time.Hour {
		t.Fatal("test setup: elapsed time should be under a day")
	}
	if got := FormatTimestamp(ts.UnixMilli(), now); got != "Yesterday, 11:50 PM" {
		t.Errorf("FormatTimestamp() = %q, want %q", got, "Yesterday, 11:50 PM")
	}
}

func TestFormatTimestamp_YesterdayAcrossMonthAndYear(t *testing.T) {
	loc := time.FixedZone("test", 0)

	now := time.Date(2026, time.January, 1, 8, 0, 0, 0, loc)
	ts := time.Date(2025, time.December, 31, 20, 0, 0, 0, loc)
	if got := FormatTimestamp(ts.UnixMilli(), now); got != "Yesterday, 08:00 PM" {
		t.Errorf("new year: got %q", got)
	}

	now = time.Date(2026, time.March, 1, 8, 0, 0, 0, loc)
	ts = time.Date(2026, time.February, 28, 8, 0, 0, 0, loc)
	if got := FormatTimestamp(ts.UnixMilli(), now); got != "Yesterday, 08:00 AM" {
		t.Errorf("month rollover: got %q", got)
	}
}

func TestFormatTimestamp_UsesNowLocation(t *testing.T) {
	// 03:00 UTC on the 10th is still the 9th in UTC-5.
	ts := time.Date(2026, time.June, 10, 3, 0, 0, 0, time.UTC)
	east := time.FixedZone("east", 0)
	west := time.FixedZone("west", -5*60*60)

	if got := FormatTimestamp(ts.UnixMilli(), time.Date(2026, time.June, 10, 12, 0, 0, 0, east)); got != "03:00 AM" {
		t.Errorf("east: got %q, want same-day", got)
	}
	if got := FormatTimestamp(ts.UnixMilli(), time.Date(2026, time.June, 10, 12, 0, 0, 0, west)); got != "Yesterday, 10:00 PM" {
		t.Errorf("west: got %q, want yesterday", got)
	}
}
