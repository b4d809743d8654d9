// Package selection implements the interactive date-range picker state machine.
//
// A Controller owns one committed DateRange, an optional hover date used for
// previewing a range while anchored, the displayed calendar month and the
// open/closed state of the calendar popup. It is single-owner and synchronous:
// listeners run inside the operation that triggered them, after the new state
// has been stored.
package selection

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Options configures a Controller. All fields are optional.
type Options struct {
	MinDate *time.Time
	MaxDate *time.Time
	// AllowPast permits dates before today. Past dates are rejected by default.
	AllowPast bool

	InitialRange domain.DateRange
	InitialMonth *time.Time

	OnRangeChange   RangeListener
	OnRangeComplete RangeListener

	TimeProvider TimeProvider
}

// Controller is the range-selection state machine
type Controller struct {
	minDate   *time.Time
	maxDate   *time.Time
	allowPast bool

	onChange   RangeListener
	onComplete RangeListener
	clock      TimeProvider

	selected     domain.DateRange
	hovered      time.Time
	hasHovered   bool
	displayMonth time.Time
	open         bool
}

// New creates a Controller. A MinDate after MaxDate is a programming error.
func New(opts Options) (*Controller, error) {
	if opts.MinDate != nil && opts.MaxDate != nil && domain.CompareDays(*opts.MinDate, *opts.MaxDate) > 0 {
		return nil, fmt.Errorf("%w: minDate %s is after maxDate %s", ErrInvalidOptions,
			opts.MinDate.Format(domain.DateFormat), opts.MaxDate.Format(domain.DateFormat))
	}

	clock := opts.TimeProvider
	if clock == nil {
		clock = &RealTimeProvider{}
	}

	c := &Controller{
		minDate:    normalizePtr(opts.MinDate),
		maxDate:    normalizePtr(opts.MaxDate),
		allowPast:  opts.AllowPast,
		onChange:   opts.OnRangeChange,
		onComplete: opts.OnRangeComplete,
		clock:      clock,
		selected:   normalizeRange(opts.InitialRange),
	}

	switch start, ok := c.selected.Start(); {
	case opts.InitialMonth != nil:
		c.displayMonth = domain.StartOfMonth(*opts.InitialMonth)
	case ok:
		c.displayMonth = domain.StartOfMonth(start)
	default:
		c.displayMonth = domain.StartOfMonth(clock.Now())
	}

	return c, nil
}

// SelectDate is the central transition.
//
//	Empty, Complete -> Anchored(date), unless date is out of bounds (no-op)
//	Anchored(s), date == s -> Empty
//	Anchored(s), date <  s -> Anchored(date)
//	Anchored(s), date >  s -> Complete(s, date) if the range validates,
//	                         otherwise Anchored(date)
//
// The last rule reinterprets an invalid completion as a new anchor instead of
// rejecting the click, so the calendar always stays selectable.
func (c *Controller) SelectDate(date time.Time) {
	date = domain.DateOnly(date)

	start, ok := c.selected.Start()
	if !ok || c.selected.IsComplete() {
		c.anchor(date)
		return
	}

	switch domain.CompareDays(date, start) {
	case 0:
		c.hasHovered = false
		c.commit(domain.ClearRange())
	case -1:
		c.anchor(date)
	default:
		candidate := domain.CreateRange(start, date)
		if !domain.ValidateRange(candidate, c.constraints()).IsValid {
			c.anchor(date)
			return
		}
		c.hasHovered = false
		c.commit(candidate)
		if c.onComplete != nil {
			c.onComplete(candidate)
		}
	}
}

// anchor starts a new selection at date; out-of-bounds dates are silently ignored
func (c *Controller) anchor(date time.Time) {
	if !c.constraints().InBounds(date) {
		return
	}
	c.hasHovered = false
	c.commit(domain.AnchorRange(date))
}

func (c *Controller) commit(r domain.DateRange) {
	c.selected = r
	if c.onChange != nil {
		c.onChange(r)
	}
}

// SetHoveredDate records the date under the pointer while anchored.
// Outside the anchored state, on the anchor itself or out of bounds it clears the hover instead.
func (c *Controller) SetHoveredDate(date time.Time) {
	date = domain.DateOnly(date)

	start, ok := c.selected.Start()
	if !c.selected.IsAnchored() || !ok || domain.SameDay(date, start) || !c.constraints().InBounds(date) {
		c.hasHovered = false
		return
	}

	c.hovered = date
	c.hasHovered = true
}

// ClearHoveredDate removes the hover preview
func (c *Controller) ClearHoveredDate() {
	c.hasHovered = false
}

// ClearSelection resets to the empty range and always notifies the change listener
func (c *Controller) ClearSelection() {
	c.hasHovered = false
	c.commit(domain.ClearRange())
}

// GoToPreviousMonth moves the displayed month back by one calendar month
func (c *Controller) GoToPreviousMonth() {
	c.displayMonth = domain.PreviousMonth(c.displayMonth)
}

// GoToNextMonth moves the displayed month forward by one calendar month
func (c *Controller) GoToNextMonth() {
	c.displayMonth = domain.NextMonth(c.displayMonth)
}

// GoToMonth displays the month containing date
func (c *Controller) GoToMonth(date time.Time) {
	c.displayMonth = domain.StartOfMonth(date)
}

func (c *Controller) OpenCalendar() {
	c.open = true
}

// CloseCalendar hides the popup and drops the hover preview
func (c *Controller) CloseCalendar() {
	c.open = false
	c.hasHovered = false
}

func (c *Controller) ToggleCalendar() {
	if c.open {
		c.CloseCalendar()
		return
	}
	c.OpenCalendar()
}

func (c *Controller) constraints() domain.RangeConstraints {
	return domain.RangeConstraints{
		MinDate:   c.minDate,
		MaxDate:   c.maxDate,
		AllowPast: c.allowPast,
		Today:     domain.DateOnly(c.clock.Now()),
	}
}

func normalizePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := domain.DateOnly(*t)
	return &d
}

func normalizeRange(r domain.DateRange) domain.DateRange {
	start, hasStart := r.Start()
	end, hasEnd := r.End()

	switch {
	case hasStart && hasEnd:
		return domain.CreateRange(domain.DateOnly(start), domain.DateOnly(end))
	case hasStart:
		return domain.AnchorRange(domain.DateOnly(start))
	default:
		return domain.ClearRange()
	}
}
