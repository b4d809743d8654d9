package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

func instancesOn(days ...time.Time) []domain.ProductInstance {
	out := make([]domain.ProductInstance, 0, len(days))
	for _, d := range days {
		out = append(out, domain.ProductInstance{StartTime: d.Add(9 * time.Hour), EndTime: d.Add(17 * time.Hour)})
	}
	return out
}

func TestExcludeBlackouts(t *testing.T) {
	instances := instancesOn(date(2024, time.May, 1), date(2024, time.May, 2), date(2024, time.May, 3))

	out := ExcludeBlackouts(instances, []domain.BlackoutDate{
		{Date: date(2024, time.May, 2), Reason: "maintenance", Type: "closure"},
		{Date: date(2025, time.May, 2)},
	})

	assert.Len(t, out, 2)
	assert.Equal(t, 1, out[0].StartTime.Day())
	assert.Equal(t, 3, out[1].StartTime.Day())

	assert.Len(t, ExcludeBlackouts(instances, nil), 3)
}

func TestWithinSeason(t *testing.T) {
	instances := instancesOn(
		date(2024, time.January, 10),
		date(2024, time.April, 10),
		date(2024, time.July, 10),
		date(2024, time.November, 10),
	)

	tests := []struct {
		name     string
		season   *domain.SeasonalAvailability
		expected []time.Month
	}{
		{name: "no season", season: nil, expected: []time.Month{time.January, time.April, time.July, time.November}},
		{name: "summer", season: &domain.SeasonalAvailability{StartMonth: time.April, EndMonth: time.September}, expected: []time.Month{time.April, time.July}},
		{name: "winter wraps", season: &domain.SeasonalAvailability{StartMonth: time.November, EndMonth: time.February}, expected: []time.Month{time.January, time.November}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := WithinSeason(instances, tt.season)
			months := make([]time.Month, 0, len(out))
			for _, inst := range out {
				months = append(months, inst.StartTime.Month())
			}
			assert.Equal(t, tt.expected, months)
		})
	}
}

func TestApply(t *testing.T) {
	instances := instancesOn(date(2024, time.May, 1), date(2024, time.May, 2), date(2024, time.August, 1))
	desc := &domain.ScheduleDescription{
		BlackoutDates:        []domain.BlackoutDate{{Date: date(2024, time.May, 2)}},
		SeasonalAvailability: &domain.SeasonalAvailability{StartMonth: time.March, EndMonth: time.June},
	}

	assert.Len(t, Apply(instances, desc, FilterOptions{}), 3)
	assert.Len(t, Apply(instances, desc, FilterOptions{Blackouts: true}), 2)
	assert.Len(t, Apply(instances, desc, FilterOptions{Seasonal: true}), 2)
	assert.Len(t, Apply(instances, desc, FilterOptions{Blackouts: true, Seasonal: true}), 1)
	assert.Len(t, Apply(instances, nil, FilterOptions{Blackouts: true}), 3)
}
