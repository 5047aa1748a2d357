package history

import (
	"testing"
	"time"
)

func TestFormatDate(t *testing.T) {
	utc := time.UTC
	west := time.FixedZone("west", -8*60*60)
	ts := time.Date(2026, time.July, 4, 3, 0, 0, 0, utc).UnixMilli()

	tests := []struct {
		name string
		loc  *time.Location
		want string
	}{
		{"utc", utc, "Jul 4, 2026"},
		{"behind utc", west, "Jul 3, 2026"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDate(ts, tt.loc); got != tt.want {
				t.Errorf("FormatDate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatDate_NoRelativeForms(t *testing.T) {
	now := time.Now()
	yesterday := now.AddDate(0, 0, -1)

	for _, ts := range []time.Time{now, yesterday} {
		got := FormatDate(ts.UnixMilli(), time.Local)
		want := ts.Format("Jan 2, 2006")
		if got != want {
			t.Errorf("FormatDate(%v) = %q, want %q", ts, got, want)
		}
	}
}

func TestSessionSummary_Titled(t *testing.T) {
	if got := (SessionSummary{Title: "Trip"}).Titled("Untitled"); got != "Trip" {
		t.Errorf("got %q", got)
	}
	if got := (SessionSummary{Title: "  \t"}).Titled("Untitled"); got != "Untitled" {
		t.Errorf("blank title: got %q", got)
	}
}
