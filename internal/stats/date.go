package stats

import (
	"time"
)

// All civil-date math runs in UTC. Comparing formatted civil dates instead
// of raw instants is what keeps "is this today" stable across DST and
// offset changes; instant-range subtraction is the bug class this package
// exists to avoid.

const dayKeyLayout = "2006-01-02"

// DayKey returns the civil date of t as a comparable string.
func DayKey(t time.Time) string {
	return t.UTC().Format(dayKeyLayout)
}

// SameDay reports whether a and b fall on the same civil date.
func SameDay(a, b time.Time) bool {
	return DayKey(a) == DayKey(b)
}

// StartOfDay returns civil midnight of t's date.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// WeekStart returns civil midnight of the Monday that starts t's week.
// Sundays belong to the week that began six days earlier.
func WeekStart(t time.Time) time.Time {
	daysFromMonday := int(t.UTC().Weekday()) - 1
	if daysFromMonday < 0 { // Sunday
		daysFromMonday = 6
	}
	return StartOfDay(t).AddDate(0, 0, -daysFromMonday)
}

// WeekEnd returns the last instant of the Sunday that ends t's week.
func WeekEnd(t time.Time) time.Time {
	return WeekStart(t).AddDate(0, 0, 7).Add(-time.Nanosecond)
}
