package domain

import "time"

// Range validation messages.
const (
	ErrMsgEndBeforeStart = "end date is before start date"
	ErrMsgStartBeforeMin = "start date is before the minimum date"
	ErrMsgStartAfterMax  = "start date is after the maximum date"
	ErrMsgEndBeforeMin   = "end date is before the minimum date"
	ErrMsgEndAfterMax    = "end date is after the maximum date"
	ErrMsgStartInPast    = "start date is in the past"
	ErrMsgEndInPast      = "end date is in the past"
)

// RangeConstraints are the bounds a range is validated against.
// Nil bounds are not enforced. Today is only consulted when AllowPast is false.
type RangeConstraints struct {
	MinDate   *time.Time
	MaxDate   *time.Time
	AllowPast bool
	Today     time.Time
}

// RangeValidation is an advisory report about a range.
type RangeValidation struct {
	IsValid bool
	Errors  []string
}

// ValidateRange checks a complete range against the constraints.
// An incomplete range (empty or anchored) is always valid.
func ValidateRange(r DateRange, c RangeConstraints) RangeValidation {
	if !r.IsComplete() {
		return RangeValidation{IsValid: true, Errors: []string{}}
	}

	errs := make([]string, 0)

	if CompareDays(r.end, r.start) < 0 {
		errs = append(errs, ErrMsgEndBeforeStart)
	}

	if c.MinDate != nil {
		if CompareDays(r.start, *c.MinDate) < 0 {
			errs = append(errs, ErrMsgStartBeforeMin)
		}
		if CompareDays(r.end, *c.MinDate) < 0 {
			errs = append(errs, ErrMsgEndBeforeMin)
		}
	}

	if c.MaxDate != nil {
		if CompareDays(r.start, *c.MaxDate) > 0 {
			errs = append(errs, ErrMsgStartAfterMax)
		}
		if CompareDays(r.end, *c.MaxDate) > 0 {
			errs = append(errs, ErrMsgEndAfterMax)
		}
	}

	if !c.AllowPast {
		if CompareDays(r.start, c.Today) < 0 {
			errs = append(errs, ErrMsgStartInPast)
		}
		if CompareDays(r.end, c.Today) < 0 {
			errs = append(errs, ErrMsgEndInPast)
		}
	}

	return RangeValidation{IsValid: len(errs) == 0, Errors: errs}
}

// InBounds reports whether a single date satisfies the constraints.
func (c RangeConstraints) InBounds(date time.Time) bool {
	if c.MinDate != nil && CompareDays(date, *c.MinDate) < 0 {
		return false
	}
	if c.MaxDate != nil && CompareDays(date, *c.MaxDate) > 0 {
		return false
	}
	if !c.AllowPast && CompareDays(date, c.Today) < 0 {
		return false
	}
	return true
}
