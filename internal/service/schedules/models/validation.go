package models

import (
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Validate проверяет бизнес-ограничения описания расписания.
// Generation itself tolerates malformed fields; this check guards what operators may save.
func Validate(desc *domain.ScheduleDescription) error {
	// 1. Тип расписания
	if !desc.ScheduleType.IsKnown() {
		return fmt.Errorf("%w: unknown scheduleType %q", ErrInvalidDescription, desc.ScheduleType)
	}

	// 2. Конкретные даты
	if len(desc.FixedDates) > domain.MaxFixedDates {
		return fmt.Errorf("%w: too many fixed dates (max %d)", ErrInvalidDescription, domain.MaxFixedDates)
	}
	for i, fd := range desc.FixedDates {
		if err := validateCapacity(fd.Capacity); err != nil {
			return fmt.Errorf("%w: fixedDates[%d]: %v", ErrInvalidDescription, i, err)
		}
		if fd.StartTime != nil && fd.EndTime != nil && !fd.EndTime.IsAfter(*fd.StartTime) {
			return fmt.Errorf("%w: fixedDates[%d]: endTime must be after startTime", ErrInvalidDescription, i)
		}
	}

	// 3. Правило повторения
	if desc.ScheduleType == domain.ScheduleTypeRecurring {
		if desc.Pattern == nil {
			return fmt.Errorf("%w: recurring schedule requires recurrencePattern", ErrInvalidDescription)
		}
		if err := validatePattern(desc.Pattern); err != nil {
			return fmt.Errorf("%w: recurrencePattern: %v", ErrInvalidDescription, err)
		}
	}

	// 4. Даты недоступности и сезон
	if len(desc.BlackoutDates) > domain.MaxBlackoutDates {
		return fmt.Errorf("%w: too many blackout dates (max %d)", ErrInvalidDescription, domain.MaxBlackoutDates)
	}
	for i, b := range desc.BlackoutDates {
		if len(b.Reason) > domain.MaxBlackoutReason {
			return fmt.Errorf("%w: blackoutDates[%d]: reason is longer than %d", ErrInvalidDescription, i, domain.MaxBlackoutReason)
		}
	}
	if s := desc.SeasonalAvailability; s != nil {
		if s.StartMonth < 1 || s.StartMonth > 12 || s.EndMonth < 1 || s.EndMonth > 12 {
			return fmt.Errorf("%w: seasonalAvailability months must be 1..12", ErrInvalidDescription)
		}
	}

	return nil
}

func validatePattern(p *domain.RecurrencePattern) error {
	switch p.Frequency {
	case domain.FrequencyDaily, domain.FrequencyWeekly, domain.FrequencyMonthly, "":
	default:
		return fmt.Errorf("unknown frequency %q", p.Frequency)
	}

	if p.Interval < 0 || p.Interval > domain.MaxInterval {
		return fmt.Errorf("interval must be 0..%d", domain.MaxInterval)
	}

	if p.Frequency == domain.FrequencyWeekly || p.Frequency == "" {
		if len(p.DaysOfWeek) == 0 {
			return fmt.Errorf("weekly pattern requires daysOfWeek")
		}
	}
	for _, d := range p.DaysOfWeek {
		if d < 0 || d > 6 {
			return fmt.Errorf("day of week %d is out of range 0..6", d)
		}
	}

	if p.EndDate != nil && !p.StartDate.IsZero() {
		if p.EndDate.Before(p.StartDate) {
			return fmt.Errorf("endDate is before startDate")
		}
		if p.EndDate.Sub(p.StartDate).Hours()/24 > domain.MaxWindowDays {
			return fmt.Errorf("window is longer than %d days", domain.MaxWindowDays)
		}
	}

	if err := validateClock(p.StartHour, p.StartMinute); err != nil {
		return fmt.Errorf("start: %v", err)
	}
	if err := validateClock(p.EndHour, p.EndMinute); err != nil {
		return fmt.Errorf("end: %v", err)
	}

	return validateCapacity(p.Capacity)
}

func validateClock(hour, minute *int) error {
	if hour != nil && (*hour < 0 || *hour > 23) {
		return fmt.Errorf("hour %d is out of range 0..23", *hour)
	}
	if minute != nil && (*minute < 0 || *minute > 59) {
		return fmt.Errorf("minute %d is out of range 0..59", *minute)
	}
	return nil
}

func validateCapacity(c *int) error {
	if c == nil {
		return nil
	}
	if *c < domain.MinCapacity || *c > domain.MaxCapacity {
		return fmt.Errorf("capacity must be %d..%d", domain.MinCapacity, domain.MaxCapacity)
	}
	return nil
}
