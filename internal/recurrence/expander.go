// Package recurrence turns a schedule description into concrete product instances.
//
// Expansion is pure: it performs no I/O and holds no mutable state, so one
// Expander may be shared between goroutines. Malformed pattern fields fall back
// to defaults and unrecognized schedule types expand to nothing; neither is an error.
package recurrence

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Result wraps the expanded instances and whether the occurrence cap was hit
type Result struct {
	Instances []domain.ProductInstance
	Truncated bool
}

// Expander expands schedule descriptions into product instances
type Expander struct {
	cfg          Config
	logger       Logger
	timeProvider TimeProvider
}

// NewExpander создает новый экспандер
func NewExpander(cfg Config, logger Logger) *Expander {
	return &Expander{
		cfg:          cfg.withDefaults(),
		logger:       logger,
		timeProvider: &RealTimeProvider{},
	}
}

// WithTimeProvider заменяет источник текущего времени (для тестов)
func (e *Expander) WithTimeProvider(tp TimeProvider) *Expander {
	e.timeProvider = tp
	return e
}

// Expand produces the instances described by desc, ordered by start time.
// New instances have no ID; identifiers are assigned by the store.
func (e *Expander) Expand(desc *domain.ScheduleDescription, tenantID, productID uuid.UUID) Result {
	if desc == nil {
		return Result{Instances: []domain.ProductInstance{}}
	}

	b := &builder{
		tenantID:  tenantID,
		productID: productID,
		limit:     e.cfg.MaxOccurrences,
		instances: make([]domain.ProductInstance, 0),
	}

	switch desc.ScheduleType {
	case domain.ScheduleTypeFixed:
		e.expandFixed(b, desc.FixedDates)
	case domain.ScheduleTypeRecurring:
		e.expandRecurring(b, desc.Pattern)
	case domain.ScheduleTypeOnDemand:
		// continuous availability, no discrete slots
	default:
		e.logger.Warn("Expand: unknown schedule type %q for product=%s, no instances generated", desc.ScheduleType, productID)
	}

	if b.truncated {
		e.logger.Warn("Expand: product=%s truncated at %d occurrences", productID, e.cfg.MaxOccurrences)
	}

	sort.SliceStable(b.instances, func(i, j int) bool {
		return b.instances[i].StartTime.Before(b.instances[j].StartTime)
	})

	return Result{Instances: b.instances, Truncated: b.truncated}
}

func (e *Expander) expandFixed(b *builder, dates []domain.FixedDate) {
	for i, entry := range dates {
		if entry.Date.IsZero() {
			e.logger.Warn("Expand: fixed date #%d has no date, skipped", i)
			continue
		}

		start, end := fixedWindow(entry)
		if !b.add(start, end, e.capacity(entry.Capacity)) {
			return
		}
	}
}

// fixedWindow applies the entry's times to its date; invalid or inverted times fall back to 09:00-17:00
func fixedWindow(entry domain.FixedDate) (time.Time, time.Time) {
	startTS := types.TimeString(domain.DefaultStartTime)
	endTS := types.TimeString(domain.DefaultEndTime)
	if entry.StartTime != nil {
		startTS = *entry.StartTime
	}
	if entry.EndTime != nil {
		endTS = *entry.EndTime
	}

	start, errStart := startTS.On(entry.Date)
	end, errEnd := endTS.On(entry.Date)
	if errStart != nil || errEnd != nil || !end.After(start) {
		start, _ = types.TimeString(domain.DefaultStartTime).On(entry.Date)
		end, _ = types.TimeString(domain.DefaultEndTime).On(entry.Date)
	}
	return start, end
}

func (e *Expander) expandRecurring(b *builder, p *domain.RecurrencePattern) {
	if p == nil {
		e.logger.Warn("Expand: recurring schedule without pattern, no instances generated")
		return
	}

	startDate := p.StartDate
	if startDate.IsZero() {
		startDate = e.timeProvider.Now()
	}
	startDate = domain.DateOnly(startDate)

	endDate := startDate.AddDate(0, 0, e.cfg.DefaultWindowDays)
	if p.EndDate != nil && !p.EndDate.IsZero() {
		endDate = domain.DateOnly(p.EndDate.In(startDate.Location()))
	}
	if endDate.Before(startDate) {
		e.logger.Warn("Expand: pattern end %s is before start %s, no instances generated",
			endDate.Format(domain.DateFormat), startDate.Format(domain.DateFormat))
		return
	}

	rule, err := e.buildRule(p, startDate, endDate)
	if err != nil {
		e.logger.Error("Expand: failed to build recurrence rule: %v", err)
		return
	}
	if rule == nil {
		return
	}

	startHour, startMinute, endHour, endMinute := patternHours(p)
	capacity := e.capacity(p.Capacity)

	next := rule.Iterator()
	for {
		day, ok := next()
		if !ok {
			return
		}
		start := time.Date(day.Year(), day.Month(), day.Day(), startHour, startMinute, 0, 0, day.Location())
		end := time.Date(day.Year(), day.Month(), day.Day(), endHour, endMinute, 0, 0, day.Location())
		if !b.add(start, end, capacity) {
			return
		}
	}
}

// patternHours returns the daily window of a pattern; an invalid or empty window falls back to 09:00-17:00
func patternHours(p *domain.RecurrencePattern) (int, int, int, int) {
	sh := intOr(p.StartHour, domain.DefaultStartHour)
	sm := intOr(p.StartMinute, domain.DefaultStartMinute)
	eh := intOr(p.EndHour, domain.DefaultEndHour)
	em := intOr(p.EndMinute, domain.DefaultEndMinute)

	valid := sh >= 0 && sh <= 23 && eh >= 0 && eh <= 23 &&
		sm >= 0 && sm <= 59 && em >= 0 && em <= 59 &&
		eh*60+em > sh*60+sm
	if !valid {
		return domain.DefaultStartHour, domain.DefaultStartMinute, domain.DefaultEndHour, domain.DefaultEndMinute
	}
	return sh, sm, eh, em
}

func (e *Expander) capacity(c *int) int {
	if c == nil || *c <= 0 {
		return e.cfg.DefaultCapacity
	}
	return *c
}

func intOr(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}

// builder collects instances up to the occurrence cap
type builder struct {
	tenantID  uuid.UUID
	productID uuid.UUID
	limit     int
	instances []domain.ProductInstance
	truncated bool
}

// add appends one instance and reports whether more may follow
func (b *builder) add(start, end time.Time, capacity int) bool {
	if len(b.instances) >= b.limit {
		b.truncated = true
		return false
	}
	b.instances = append(b.instances, domain.ProductInstance{
		TenantID:          b.tenantID,
		ProductID:         b.productID,
		StartTime:         start,
		EndTime:           end,
		MaxQuantity:       capacity,
		AvailableQuantity: capacity,
		Status:            domain.InstanceStatusActive,
	})
	return true
}
