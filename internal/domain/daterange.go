package domain

import "time"

// SelectionState classifies a DateRange for the selection state machine.
type SelectionState int

const (
	// StateEmpty no start date
	StateEmpty SelectionState = iota
	// StateAnchored start date only, waiting for the end date
	StateAnchored
	// StateComplete both dates present
	StateComplete
)

func (s SelectionState) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateAnchored:
		return "anchored"
	case StateComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// DateRange is an immutable pair of optional calendar dates.
// Every change produces a new value; the zero value is the empty range.
type DateRange struct {
	start    time.Time
	end      time.Time
	hasStart bool
	hasEnd   bool
}

// CreateRange builds a complete range. It does not reorder the dates:
// a reversed range is representable and reported by ValidateRange.
func CreateRange(start, end time.Time) DateRange {
	return DateRange{start: start, end: end, hasStart: true, hasEnd: true}
}

// AnchorRange builds a range holding only a start date.
func AnchorRange(start time.Time) DateRange {
	return DateRange{start: start, hasStart: true}
}

// ClearRange returns the empty range.
func ClearRange() DateRange {
	return DateRange{}
}

// Start returns the start date and whether it is present.
func (r DateRange) Start() (time.Time, bool) {
	return r.start, r.hasStart
}

// End returns the end date and whether it is present.
func (r DateRange) End() (time.Time, bool) {
	return r.end, r.hasEnd
}

// State derives the selection state of the range.
func (r DateRange) State() SelectionState {
	switch {
	case !r.hasStart:
		return StateEmpty
	case !r.hasEnd:
		return StateAnchored
	default:
		return StateComplete
	}
}

func (r DateRange) IsEmpty() bool    { return r.State() == StateEmpty }
func (r DateRange) IsAnchored() bool { return r.State() == StateAnchored }
func (r DateRange) IsComplete() bool { return r.State() == StateComplete }

// Equal compares two ranges by presence and exact instants.
func (r DateRange) Equal(other DateRange) bool {
	if r.hasStart != other.hasStart || r.hasEnd != other.hasEnd {
		return false
	}
	if r.hasStart && !r.start.Equal(other.start) {
		return false
	}
	if r.hasEnd && !r.end.Equal(other.end) {
		return false
	}
	return true
}

// Days returns the number of calendar days covered by a complete range, inclusive.
// Incomplete or reversed ranges cover zero days.
func (r DateRange) Days() int {
	if !r.IsComplete() || CompareDays(r.end, r.start) < 0 {
		return 0
	}
	start := DateOnly(r.start)
	end := time.Date(r.end.Year(), r.end.Month(), r.end.Day(), 0, 0, 0, 0, start.Location())
	// Rounding keeps DST transitions from shortening the count.
	return int(end.Sub(start).Round(24*time.Hour)/(24*time.Hour)) + 1
}
