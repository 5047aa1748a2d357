// Package history holds the saved-conversation summaries shown in the
// history list.
package history

import "time"

const dateLayout = "Jan 2, 2006"

// SessionSummary describes one saved conversation. Callers supply them in
// display order with unique IDs.
type SessionSummary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	CreatedAt int64  `json:"createdAt"` // epoch milliseconds
}

// FormatDate renders createdAt as a calendar date in loc. A nil loc means
// the local zone.
func FormatDate(createdAt int64, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return time.UnixMilli(createdAt).In(loc).Format(dateLayout)
}

// Date is FormatDate in the local zone.
func (s SessionSummary) Date() string {
	return FormatDate(s.CreatedAt, nil)
}

// Titled returns the title, or fallback when the title is blank.
func (s SessionSummary) Titled(fallback string) string {
	for _, r := range s.Title {
		if r != ' ' && r != '\t' && r != '\n' {
			return s.Title
		}
	}
	return fallback
}
