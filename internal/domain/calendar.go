package domain

import "time"

// DateOnly truncates t to midnight of its calendar day in t's location.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// CompareDays compares two instants by calendar day, ignoring time of day.
// Each date is read in its own location. Returns -1, 0 or 1.
func CompareDays(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()

	switch {
	case ay != by:
		return sign(ay - by)
	case am != bm:
		return sign(int(am) - int(bm))
	default:
		return sign(ad - bd)
	}
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return CompareDays(a, b) == 0
}

// StartOfMonth returns the first day of t's month at midnight.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// NextMonth returns the first day of the month after t's month.
// Calendar-month arithmetic: December rolls over to January of the next year.
func NextMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, t.Location())
}

// PreviousMonth returns the first day of the month before t's month.
func PreviousMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()-1, 1, 0, 0, 0, 0, t.Location())
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}
