package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

var (
	// ErrInvalidDate возвращается при некорректном формате даты
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

	// ErrInvalidTime возвращается при некорректном формате времени
	ErrInvalidTime = errors.New("invalid time, expected HH:MM")

	// ErrInvalidDescription возвращается при нарушении бизнес-ограничений описания
	ErrInvalidDescription = errors.New("invalid schedule description")
)

// Request модели

// ScheduleDescription описание расписания продукта в том виде, в котором его присылает оператор.
// Используется и в HTTP API (JSON), и в CLI (YAML).
type ScheduleDescription struct {
	ScheduleType         string                `json:"scheduleType" yaml:"scheduleType"`
	FixedDates           []FixedDate           `json:"fixedDates,omitempty" yaml:"fixedDates,omitempty"`
	RecurrencePattern    *RecurrencePattern    `json:"recurrencePattern,omitempty" yaml:"recurrencePattern,omitempty"`
	BlackoutDates        []BlackoutDate        `json:"blackoutDates,omitempty" yaml:"blackoutDates,omitempty"`
	SeasonalAvailability *SeasonalAvailability `json:"seasonalAvailability,omitempty" yaml:"seasonalAvailability,omitempty"`
}

// FixedDate конкретная дата проведения
type FixedDate struct {
	Date      string  `json:"date" yaml:"date"`                                 // "2024-06-01"
	StartTime *string `json:"startTime,omitempty" yaml:"startTime,omitempty"` // "09:00"
	EndTime   *string `json:"endTime,omitempty" yaml:"endTime,omitempty"`     // "17:00"
	Capacity  *int    `json:"capacity,omitempty" yaml:"capacity,omitempty"`
}

// RecurrencePattern правило повторения
type RecurrencePattern struct {
	Frequency   string  `json:"frequency" yaml:"frequency"` // daily | weekly | monthly
	Interval    int     `json:"interval,omitempty" yaml:"interval,omitempty"`
	DaysOfWeek  []int   `json:"daysOfWeek,omitempty" yaml:"daysOfWeek,omitempty"` // 0 = воскресенье
	StartDate   string  `json:"startDate,omitempty" yaml:"startDate,omitempty"`
	EndDate     *string `json:"endDate,omitempty" yaml:"endDate,omitempty"`
	StartHour   *int    `json:"startHour,omitempty" yaml:"startHour,omitempty"`
	StartMinute *int    `json:"startMinute,omitempty" yaml:"startMinute,omitempty"`
	EndHour     *int    `json:"endHour,omitempty" yaml:"endHour,omitempty"`
	EndMinute   *int    `json:"endMinute,omitempty" yaml:"endMinute,omitempty"`
	Capacity    *int    `json:"capacity,omitempty" yaml:"capacity,omitempty"`
}

// BlackoutDate дата, в которую продукт недоступен
type BlackoutDate struct {
	Date   string `json:"date" yaml:"date"`
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
	Type   string `json:"type,omitempty" yaml:"type,omitempty"`
}

// SeasonalAvailability сезон доступности (месяцы 1-12)
type SeasonalAvailability struct {
	StartMonth int `json:"startMonth" yaml:"startMonth"`
	EndMonth   int `json:"endMonth" yaml:"endMonth"`
}

// Response модели

// ScheduleResponse сохраненное описание расписания
type ScheduleResponse struct {
	ID          int64   `json:"id"`
	TenantID    string  `json:"tenantId"`
	ProductID   string  `json:"productId"`
	PublishedAt *string `json:"publishedAt,omitempty"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
	ScheduleDescription
}

// ToDomain конвертирует описание в доменную модель.
// Даты интерпретируются в часовом поясе loc (nil = UTC).
// Проверяется только формат; бизнес-ограничения проверяет Validate.
func (d *ScheduleDescription) ToDomain(tenantID, productID uuid.UUID, loc *time.Location) (*domain.ScheduleDescription, error) {
	if loc == nil {
		loc = time.UTC
	}

	desc := &domain.ScheduleDescription{
		TenantID:     tenantID,
		ProductID:    productID,
		ScheduleType: domain.ScheduleType(d.ScheduleType),
	}

	for i, fd := range d.FixedDates {
		date, err := parseDate(fd.Date, loc)
		if err != nil {
			return nil, fmt.Errorf("fixedDates[%d].date: %w", i, err)
		}

		entry := domain.FixedDate{Date: date, Capacity: fd.Capacity}
		if entry.StartTime, err = parseTime(fd.StartTime); err != nil {
			return nil, fmt.Errorf("fixedDates[%d].startTime: %w", i, err)
		}
		if entry.EndTime, err = parseTime(fd.EndTime); err != nil {
			return nil, fmt.Errorf("fixedDates[%d].endTime: %w", i, err)
		}

		desc.FixedDates = append(desc.FixedDates, entry)
	}

	if p := d.RecurrencePattern; p != nil {
		pattern := &domain.RecurrencePattern{
			Frequency:   domain.Frequency(p.Frequency),
			Interval:    p.Interval,
			DaysOfWeek:  p.DaysOfWeek,
			StartHour:   p.StartHour,
			StartMinute: p.StartMinute,
			EndHour:     p.EndHour,
			EndMinute:   p.EndMinute,
			Capacity:    p.Capacity,
		}

		if p.StartDate != "" {
			start, err := parseDate(p.StartDate, loc)
			if err != nil {
				return nil, fmt.Errorf("recurrencePattern.startDate: %w", err)
			}
			pattern.StartDate = start
		}
		if p.EndDate != nil && *p.EndDate != "" {
			end, err := parseDate(*p.EndDate, loc)
			if err != nil {
				return nil, fmt.Errorf("recurrencePattern.endDate: %w", err)
			}
			pattern.EndDate = &end
		}

		desc.Pattern = pattern
	}

	for i, b := range d.BlackoutDates {
		date, err := parseDate(b.Date, loc)
		if err != nil {
			return nil, fmt.Errorf("blackoutDates[%d].date: %w", i, err)
		}
		desc.BlackoutDates = append(desc.BlackoutDates, domain.BlackoutDate{Date: date, Reason: b.Reason, Type: b.Type})
	}

	if s := d.SeasonalAvailability; s != nil {
		desc.SeasonalAvailability = &domain.SeasonalAvailability{
			StartMonth: time.Month(s.StartMonth),
			EndMonth:   time.Month(s.EndMonth),
		}
	}

	return desc, nil
}

// FromDomain конвертирует доменную модель в описание
func FromDomain(desc *domain.ScheduleDescription) ScheduleDescription {
	out := ScheduleDescription{ScheduleType: string(desc.ScheduleType)}

	for _, fd := range desc.FixedDates {
		out.FixedDates = append(out.FixedDates, FixedDate{
			Date:      fd.Date.Format(domain.DateFormat),
			StartTime: timeString(fd.StartTime),
			EndTime:   timeString(fd.EndTime),
			Capacity:  fd.Capacity,
		})
	}

	if p := desc.Pattern; p != nil {
		pattern := &RecurrencePattern{
			Frequency:   string(p.Frequency),
			Interval:    p.Interval,
			DaysOfWeek:  p.DaysOfWeek,
			StartHour:   p.StartHour,
			StartMinute: p.StartMinute,
			EndHour:     p.EndHour,
			EndMinute:   p.EndMinute,
			Capacity:    p.Capacity,
		}
		if !p.StartDate.IsZero() {
			pattern.StartDate = p.StartDate.Format(domain.DateFormat)
		}
		if p.EndDate != nil {
			end := p.EndDate.Format(domain.DateFormat)
			pattern.EndDate = &end
		}
		out.RecurrencePattern = pattern
	}

	for _, b := range desc.BlackoutDates {
		out.BlackoutDates = append(out.BlackoutDates, BlackoutDate{
			Date:   b.Date.Format(domain.DateFormat),
			Reason: b.Reason,
			Type:   b.Type,
		})
	}

	if s := desc.SeasonalAvailability; s != nil {
		out.SeasonalAvailability = &SeasonalAvailability{StartMonth: int(s.StartMonth), EndMonth: int(s.EndMonth)}
	}

	return out
}

// FromDomainSchedule конвертирует сохраненное описание в ответ
func FromDomainSchedule(desc *domain.ScheduleDescription) *ScheduleResponse {
	resp := &ScheduleResponse{
		ID:                  desc.ID,
		TenantID:            desc.TenantID.String(),
		ProductID:           desc.ProductID.String(),
		CreatedAt:           desc.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           desc.UpdatedAt.Format(time.RFC3339),
		ScheduleDescription: FromDomain(desc),
	}

	if desc.PublishedAt != nil {
		publishedAt := desc.PublishedAt.Format(time.RFC3339)
		resp.PublishedAt = &publishedAt
	}

	return resp
}

func parseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(domain.DateFormat, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

func parseTime(s *string) (*types.TimeString, error) {
	if s == nil {
		return nil, nil
	}
	ts, err := types.NewTimeStringFromString(*s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTime, *s)
	}
	return &ts, nil
}

func timeString(ts *types.TimeString) *string {
	if ts == nil {
		return nil
	}
	s := ts.String()
	return &s
}
