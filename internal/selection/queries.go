package selection

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Range returns the committed range
func (c *Controller) Range() domain.DateRange {
	return c.selected
}

// State returns the selection state of the committed range
func (c *Controller) State() domain.SelectionState {
	return c.selected.State()
}

// IsSelecting is true exactly while anchored
func (c *Controller) IsSelecting() bool {
	return c.selected.IsAnchored()
}

// HoveredDate returns the hover preview date, if any
func (c *Controller) HoveredDate() (time.Time, bool) {
	if !c.selected.IsAnchored() {
		return time.Time{}, false
	}
	return c.hovered, c.hasHovered
}

// DisplayedMonth returns the first day of the month shown by the calendar
func (c *Controller) DisplayedMonth() time.Time {
	return c.displayMonth
}

func (c *Controller) IsOpen() bool {
	return c.open
}

// IsDateSelected is true if d is the start or the end of the range
func (c *Controller) IsDateSelected(d time.Time) bool {
	return c.IsDateRangeStart(d) || c.IsDateRangeEnd(d)
}

func (c *Controller) IsDateRangeStart(d time.Time) bool {
	start, ok := c.selected.Start()
	return ok && domain.SameDay(d, start)
}

func (c *Controller) IsDateRangeEnd(d time.Time) bool {
	end, ok := c.selected.End()
	return ok && domain.SameDay(d, end)
}

// IsDateInRange is true for dates strictly between the range endpoints.
// While anchored with a hover date the preview is symmetric: it spans
// min(start, hover)..max(start, hover) whichever side the pointer is on.
func (c *Controller) IsDateInRange(d time.Time) bool {
	start, ok := c.selected.Start()
	if !ok {
		return false
	}

	var end time.Time
	switch {
	case c.selected.IsComplete():
		end, _ = c.selected.End()
	case c.hasHovered:
		end = c.hovered
	default:
		return false
	}

	lo, hi := start, end
	if domain.CompareDays(hi, lo) < 0 {
		lo, hi = hi, lo
	}
	return domain.CompareDays(d, lo) > 0 && domain.CompareDays(d, hi) < 0
}

// IsDateHovered is true if d is the current hover preview date
func (c *Controller) IsDateHovered(d time.Time) bool {
	hovered, ok := c.HoveredDate()
	return ok && domain.SameDay(d, hovered)
}

// IsDateDisabled is true for dates the user cannot pick
func (c *Controller) IsDateDisabled(d time.Time) bool {
	return !c.constraints().InBounds(d)
}

// RangeValidation reports on the committed range against the configured bounds.
// It is advisory: the controller itself never commits an invalid completion.
func (c *Controller) RangeValidation() domain.RangeValidation {
	return domain.ValidateRange(c.selected, c.constraints())
}
