package recurrence

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// weekdays maps 0 = Sunday ... 6 = Saturday to rrule weekdays
var weekdays = [7]rrule.Weekday{rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA}

// buildRule translates a pattern into an rrule over the inclusive window [start, end].
// A nil rule with nil error means the pattern describes no days.
func (e *Expander) buildRule(p *domain.RecurrencePattern, start, end time.Time) (*rrule.RRule, error) {
	interval := p.Interval
	if interval < 1 {
		interval = domain.DefaultInterval
	}

	opt := rrule.ROption{
		Dtstart: start,
		Until:   end,
	}

	frequency := p.Frequency
	if frequency == "" {
		frequency = domain.FrequencyWeekly
	}

	switch frequency {
	case domain.FrequencyWeekly:
		// every day in the window whose weekday is selected; interval is not applied
		days := e.byWeekday(p.DaysOfWeek)
		if len(days) == 0 {
			e.logger.Warn("Expand: weekly pattern without valid daysOfWeek, no instances generated")
			return nil, nil
		}
		opt.Freq = rrule.DAILY
		opt.Byweekday = days
	case domain.FrequencyDaily:
		opt.Freq = rrule.DAILY
		opt.Interval = interval
	case domain.FrequencyMonthly:
		opt.Freq = rrule.MONTHLY
		opt.Interval = interval
		opt.Bymonthday, opt.Bysetpos = monthlyDays(start.Day())
	default:
		e.logger.Warn("Expand: unknown frequency %q, no instances generated", frequency)
		return nil, nil
	}

	rule, err := rrule.NewRRule(opt)
	if err != nil {
		return nil, fmt.Errorf("rrule %s: %w", frequency, err)
	}
	return rule, nil
}

// monthlyDays repeats on day d of each month, clamped to the last day of shorter months.
// For d > 28 the candidates 28..d are generated and the last one present in the month is kept.
func monthlyDays(d int) ([]int, []int) {
	if d <= 28 {
		return []int{d}, nil
	}
	days := make([]int, 0, d-27)
	for i := 28; i <= d; i++ {
		days = append(days, i)
	}
	return days, []int{-1}
}

func (e *Expander) byWeekday(daysOfWeek []int) []rrule.Weekday {
	seen := make(map[int]bool, len(daysOfWeek))
	out := make([]rrule.Weekday, 0, len(daysOfWeek))
	for _, d := range daysOfWeek {
		if d < 0 || d > 6 {
			e.logger.Warn("Expand: day of week %d is out of range 0..6, ignored", d)
			continue
		}
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, weekdays[d])
	}
	return out
}
