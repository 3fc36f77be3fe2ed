package analytics

import "time"

// Status classifies a dated record (budget or goal) relative to today.
type Status string

const (
	StatusActive   Status = "active"
	StatusExpired  Status = "expired"
	StatusUpcoming Status = "upcoming"
)

// DateOf returns the UTC calendar day of t at midnight.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the calendar day of now in now's own location, expressed as
// midnight UTC so it compares directly with stored dates.
func Today(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of whole days from a to b. It is negative
// when b is before a.
func DaysBetween(a, b time.Time) int {
	return int(DateOf(b).Sub(DateOf(a)).Hours() / 24)
}

// SpanDays counts the days in [start, end], both ends included.
func SpanDays(start, end time.Time) int {
	return DaysBetween(start, end) + 1
}

// StatusOf reports whether today falls before, inside or after [start, end].
func StatusOf(start, end, today time.Time) Status {
	today = DateOf(today)
	switch {
	case DateOf(end).Before(today):
		return StatusExpired
	case DateOf(start).After(today):
		return StatusUpcoming
	default:
		return StatusActive
	}
}

func inRange(d, start, end time.Time) bool {
	d = DateOf(d)
	return !d.Before(DateOf(start)) && !d.After(DateOf(end))
}

func monthStart(t time.Time) time.Time {
	y, m, _ := DateOf(t).Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func sameMonth(a, b time.Time) bool {
	ay, am, _ := DateOf(a).Date()
	by, bm, _ := DateOf(b).Date()
	return ay == by && am == bm
}
