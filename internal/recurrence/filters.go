package recurrence

import (
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// FilterOptions selects which post-filters Apply runs
type FilterOptions struct {
	Blackouts bool
	Seasonal  bool
}

// Apply runs the enabled post-filters against the description's blackout dates and season.
// Expansion itself never filters; callers opt in before persisting.
func Apply(instances []domain.ProductInstance, desc *domain.ScheduleDescription, opts FilterOptions) []domain.ProductInstance {
	if desc == nil {
		return instances
	}
	if opts.Blackouts {
		instances = ExcludeBlackouts(instances, desc.BlackoutDates)
	}
	if opts.Seasonal {
		instances = WithinSeason(instances, desc.SeasonalAvailability)
	}
	return instances
}

// ExcludeBlackouts drops instances starting on a blackout calendar day
func ExcludeBlackouts(instances []domain.ProductInstance, blackouts []domain.BlackoutDate) []domain.ProductInstance {
	if len(blackouts) == 0 {
		return instances
	}

	blocked := make(map[string]struct{}, len(blackouts))
	for _, b := range blackouts {
		blocked[b.Date.Format(domain.DateFormat)] = struct{}{}
	}

	out := make([]domain.ProductInstance, 0, len(instances))
	for _, inst := range instances {
		if _, ok := blocked[inst.StartTime.Format(domain.DateFormat)]; ok {
			continue
		}
		out = append(out, inst)
	}
	return out
}

// WithinSeason keeps instances starting inside the seasonal month window; nil season keeps everything
func WithinSeason(instances []domain.ProductInstance, season *domain.SeasonalAvailability) []domain.ProductInstance {
	if season == nil {
		return instances
	}

	out := make([]domain.ProductInstance, 0, len(instances))
	for _, inst := range instances {
		if season.Contains(inst.StartTime.Month()) {
			out = append(out, inst)
		}
	}
	return out
}
