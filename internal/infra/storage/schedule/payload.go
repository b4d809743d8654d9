package schedule

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// payload содержимое колонки description (JSONB).
// Даты хранятся как календарные дни YYYY-MM-DD и при чтении собираются в часовом поясе генерации:
// смещение, записанное в RFC3339, неверно по другую сторону перехода на летнее время.
type payload struct {
	FixedDates           []fixedDatePayload           `json:"fixedDates,omitempty"`
	Pattern              *patternPayload              `json:"pattern,omitempty"`
	BlackoutDates        []blackoutPayload            `json:"blackoutDates,omitempty"`
	SeasonalAvailability *domain.SeasonalAvailability `json:"seasonalAvailability,omitempty"`
}

type fixedDatePayload struct {
	Date      string            `json:"date"`
	StartTime *types.TimeString `json:"startTime,omitempty"`
	EndTime   *types.TimeString `json:"endTime,omitempty"`
	Capacity  *int              `json:"capacity,omitempty"`
}

type patternPayload struct {
	Frequency   domain.Frequency `json:"frequency"`
	Interval    int              `json:"interval"`
	DaysOfWeek  []int            `json:"daysOfWeek,omitempty"`
	StartDate   string           `json:"startDate,omitempty"`
	EndDate     *string          `json:"endDate,omitempty"`
	StartHour   *int             `json:"startHour,omitempty"`
	StartMinute *int             `json:"startMinute,omitempty"`
	EndHour     *int             `json:"endHour,omitempty"`
	EndMinute   *int             `json:"endMinute,omitempty"`
	Capacity    *int             `json:"capacity,omitempty"`
}

type blackoutPayload struct {
	Date   string `json:"date"`
	Reason string `json:"reason,omitempty"`
	Type   string `json:"type,omitempty"`
}

func encodePayload(desc *domain.ScheduleDescription) ([]byte, error) {
	p := payload{SeasonalAvailability: desc.SeasonalAvailability}

	for _, fd := range desc.FixedDates {
		p.FixedDates = append(p.FixedDates, fixedDatePayload{
			Date:      formatDay(fd.Date),
			StartTime: fd.StartTime,
			EndTime:   fd.EndTime,
			Capacity:  fd.Capacity,
		})
	}

	if pt := desc.Pattern; pt != nil {
		p.Pattern = &patternPayload{
			Frequency:   pt.Frequency,
			Interval:    pt.Interval,
			DaysOfWeek:  pt.DaysOfWeek,
			StartDate:   formatDay(pt.StartDate),
			StartHour:   pt.StartHour,
			StartMinute: pt.StartMinute,
			EndHour:     pt.EndHour,
			EndMinute:   pt.EndMinute,
			Capacity:    pt.Capacity,
		}
		if pt.EndDate != nil {
			end := formatDay(*pt.EndDate)
			p.Pattern.EndDate = &end
		}
	}

	for _, b := range desc.BlackoutDates {
		p.BlackoutDates = append(p.BlackoutDates, blackoutPayload{
			Date:   formatDay(b.Date),
			Reason: b.Reason,
			Type:   b.Type,
		})
	}

	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("%w: encode: %v", ErrPayload, err)
	}
	return data, nil
}

func decodePayload(data []byte, desc *domain.ScheduleDescription, loc *time.Location) error {
	if len(data) == 0 {
		return nil
	}
	if loc == nil {
		loc = time.UTC
	}

	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("%w: decode: %v", ErrPayload, err)
	}

	desc.FixedDates = nil
	for i, fd := range p.FixedDates {
		day, err := parseDay(fd.Date, loc)
		if err != nil {
			return fmt.Errorf("%w: decode: fixedDates[%d]: %v", ErrPayload, i, err)
		}
		desc.FixedDates = append(desc.FixedDates, domain.FixedDate{
			Date:      day,
			StartTime: fd.StartTime,
			EndTime:   fd.EndTime,
			Capacity:  fd.Capacity,
		})
	}

	desc.Pattern = nil
	if pt := p.Pattern; pt != nil {
		start, err := parseDay(pt.StartDate, loc)
		if err != nil {
			return fmt.Errorf("%w: decode: pattern.startDate: %v", ErrPayload, err)
		}
		pattern := &domain.RecurrencePattern{
			Frequency:   pt.Frequency,
			Interval:    pt.Interval,
			DaysOfWeek:  pt.DaysOfWeek,
			StartDate:   start,
			StartHour:   pt.StartHour,
			StartMinute: pt.StartMinute,
			EndHour:     pt.EndHour,
			EndMinute:   pt.EndMinute,
			Capacity:    pt.Capacity,
		}
		if pt.EndDate != nil {
			end, err := parseDay(*pt.EndDate, loc)
			if err != nil {
				return fmt.Errorf("%w: decode: pattern.endDate: %v", ErrPayload, err)
			}
			pattern.EndDate = &end
		}
		desc.Pattern = pattern
	}

	desc.BlackoutDates = nil
	for i, b := range p.BlackoutDates {
		day, err := parseDay(b.Date, loc)
		if err != nil {
			return fmt.Errorf("%w: decode: blackoutDates[%d]: %v", ErrPayload, i, err)
		}
		desc.BlackoutDates = append(desc.BlackoutDates, domain.BlackoutDate{Date: day, Reason: b.Reason, Type: b.Type})
	}

	desc.SeasonalAvailability = p.SeasonalAvailability
	return nil
}

// formatDay записывает календарный день даты в её собственном часовом поясе
func formatDay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}

// parseDay собирает полночь календарного дня в loc.
// Строки RFC3339 (старый формат колонки) сводятся к своему календарному дню.
func parseDay(s string, loc *time.Location) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.ParseInLocation(time.DateOnly, s, loc); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}
