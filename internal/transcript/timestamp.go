package transcript

import "time"

const (
	clockLayout    = "03:04 PM"
	monthDayLayout = "Jan 2"
	fullDateLayout = "Jan 2, 2006"
)

// FormatTimestamp renders an epoch-millisecond timestamp relative to now.
// Day and year comparisons use calendar dates in now's location, so a
// message from 23:50 is "Yesterday" at 00:10 even though only minutes passed.
func FormatTimestamp(ts int64, now time.Time) string {
	loc := now.Location()
	t := time.UnixMilli(ts).In(loc)
	clock := t.Format(clockLayout)

	ty, tm, td := t.Date()
	ny, nm, nd := now.Date()

	if ty == ny && tm == nm && td == nd {
		return clock
	}

	// AddDate normalises month and year rollover.
	yesterday := time.Date(ny, nm, nd, 12, 0, 0, 0, loc).AddDate(0, 0, -1)
	yy, ym, yd := yesterday.Date()
	if ty == yy && tm == ym && td == yd {
		return "Yesterday, " + clock
	}

	if ty == ny {
		return t.Format(monthDayLayout) + ", " + clock
	}
	return t.Format(fullDateLayout) + ", " + clock
}
