package pagination

import "time"

// DateLayout is the calendar date format accepted and emitted by the
// upstream API.
const DateLayout = "2006-01-02"

// Window is one bounded sub-range of a date interval, small enough for a
// single upstream request. Bounds are inclusive YYYY-MM-DD dates; an empty
// string means the bound was not supplied.
type Window struct {
	Start string
	End   string
}

// SplitRange splits the inclusive [start, end] range into consecutive
// windows spanning at most maxSpanDays days each.
//
// If either bound is absent or fails to parse as YYYY-MM-DD, the pair is
// returned unchanged as a single window; the upstream decides whether such
// a request is valid. Consecutive windows share their boundary date (window
// i's end equals window i+1's start), so records on a boundary date are
// requested twice by adjacent windows. Downstream consumers already
// compensate for the duplicate; do not "fix" this here.
func SplitRange(start, end string, maxSpanDays int) []Window {
	if start == "" || end == "" {
		return []Window{{Start: start, End: end}}
	}

	startDate, err := time.Parse(DateLayout, start)
	if err != nil {
		return []Window{{Start: start, End: end}}
	}
	endDate, err := time.Parse(DateLayout, end)
	if err != nil {
		return []Window{{Start: start, End: end}}
	}

	if daysBetween(startDate, endDate) <= maxSpanDays {
		return []Window{{Start: start, End: end}}
	}

	var windows []Window
	chunkStart := startDate

	for chunkStart.Before(endDate) {
		chunkEnd := chunkStart.AddDate(0, 0, maxSpanDays)
		if chunkEnd.After(endDate) {
			chunkEnd = endDate
		}

		windows = append(windows, Window{
			Start: chunkStart.Format(DateLayout),
			End:   chunkEnd.Format(DateLayout),
		})

		chunkStart = chunkEnd
	}

	return windows
}

// daysBetween returns the whole number of days from a to b. Both values
// are midnight UTC, so the division is exact.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
