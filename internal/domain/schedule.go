package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// ScheduleType is the kind of availability an operator describes for an offering.
type ScheduleType string

const (
	ScheduleTypeFixed     ScheduleType = "fixed"
	ScheduleTypeRecurring ScheduleType = "recurring"
	ScheduleTypeOnDemand  ScheduleType = "on-demand"
)

// IsKnown returns true for the schedule types the expander understands
func (t ScheduleType) IsKnown() bool {
	switch t {
	case ScheduleTypeFixed, ScheduleTypeRecurring, ScheduleTypeOnDemand:
		return true
	default:
		return false
	}
}

// Frequency of a recurrence pattern
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// FixedDate is one explicit bookable date. Optional fields fall back to defaults.
type FixedDate struct {
	Date      time.Time         `json:"date"`
	StartTime *types.TimeString `json:"startTime,omitempty"`
	EndTime   *types.TimeString `json:"endTime,omitempty"`
	Capacity  *int              `json:"capacity,omitempty"`
}

// RecurrencePattern describes repeating availability.
// DaysOfWeek uses 0 = Sunday ... 6 = Saturday.
type RecurrencePattern struct {
	Frequency   Frequency  `json:"frequency"`
	Interval    int        `json:"interval"`
	DaysOfWeek  []int      `json:"daysOfWeek,omitempty"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	StartHour   *int       `json:"startHour,omitempty"`
	StartMinute *int       `json:"startMinute,omitempty"`
	EndHour     *int       `json:"endHour,omitempty"`
	EndMinute   *int       `json:"endMinute,omitempty"`
	Capacity    *int       `json:"capacity,omitempty"`
}

// BlackoutDate is a calendar date excluded from availability
type BlackoutDate struct {
	Date   time.Time `json:"date"`
	Reason string    `json:"reason"`
	Type   string    `json:"type"`
}

// SeasonalAvailability is an advisory month window; StartMonth > EndMonth wraps over new year
type SeasonalAvailability struct {
	StartMonth time.Month `json:"startMonth"`
	EndMonth   time.Month `json:"endMonth"`
}

// Contains reports whether month m lies inside the season
func (s SeasonalAvailability) Contains(m time.Month) bool {
	if s.StartMonth <= s.EndMonth {
		return m >= s.StartMonth && m <= s.EndMonth
	}
	return m >= s.StartMonth || m <= s.EndMonth
}

// ScheduleDescription is the operator's record of intent for an offering's availability.
// It is consumed once at publish time; later edits do not regenerate instances.
type ScheduleDescription struct {
	ID                   int64
	TenantID             uuid.UUID
	ProductID            uuid.UUID
	ScheduleType         ScheduleType
	FixedDates           []FixedDate
	Pattern              *RecurrencePattern
	BlackoutDates        []BlackoutDate
	SeasonalAvailability *SeasonalAvailability
	PublishedAt          *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// IsPublished returns true if instances were already generated from this description
func (d *ScheduleDescription) IsPublished() bool {
	return d.PublishedAt != nil
}
