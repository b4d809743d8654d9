package schedule

import (
	"encoding/json"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/recurrence"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
)

var (
	tenantID  = uuid.MustParse("0f8a4c2e-5d1b-4e7a-9c3f-1a2b3c4d5e6f")
	productID = uuid.MustParse("7e6d5c4b-3a29-4817-a6b5-c4d3e2f1a0b9")
)

func TestBuildUpsertQuery(t *testing.T) {
	end := time.Date(2024, time.October, 31, 0, 0, 0, 0, time.UTC)
	desc := &domain.ScheduleDescription{
		TenantID:     tenantID,
		ProductID:    productID,
		ScheduleType: domain.ScheduleTypeRecurring,
		Pattern: &domain.RecurrencePattern{
			Frequency:  domain.FrequencyWeekly,
			DaysOfWeek: []int{1, 3, 5},
			StartDate:  time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
			EndDate:    &end,
			Capacity:   ptr.Ptr(12),
		},
	}

	query, args, err := buildUpsertQuery(desc)
	require.NoError(t, err)

	assert.Contains(t, query, "INSERT INTO product_schedules (tenant_id,product_id,schedule_type,description) VALUES ($1,$2,$3,$4)")
	assert.Contains(t, query, "ON CONFLICT (tenant_id, product_id) DO UPDATE SET")
	assert.Contains(t, query, "RETURNING id, published_at, created_at, updated_at")
	assert.NotContains(t, query, "published_at = ")

	require.Len(t, args, 4)
	assert.Equal(t, tenantID, args[0])
	assert.Equal(t, productID, args[1])
	assert.Equal(t, "recurring", args[2])

	var stored map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(args[3].([]byte), &stored))
	assert.Contains(t, stored, "pattern")
	assert.NotContains(t, stored, "fixedDates")
}

func TestBuildGetQuery(t *testing.T) {
	t.Run("plain select", func(t *testing.T) {
		query, args, err := buildGetQuery(tenantID, productID, false)
		require.NoError(t, err)

		assert.Equal(t,
			"SELECT id, tenant_id, product_id, schedule_type, description, published_at, created_at, updated_at "+
				"FROM product_schedules WHERE product_id = $1 AND tenant_id = $2",
			query)
		assert.Equal(t, []interface{}{productID.String(), tenantID.String()}, args)
	})

	t.Run("locks row inside transaction", func(t *testing.T) {
		query, _, err := buildGetQuery(tenantID, productID, true)
		require.NoError(t, err)
		assert.Contains(t, query, "FOR UPDATE")
	})
}

func TestPayload(t *testing.T) {
	desc := &domain.ScheduleDescription{
		ScheduleType: domain.ScheduleTypeFixed,
		FixedDates: []domain.FixedDate{
			{Date: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), Capacity: ptr.Ptr(5)},
		},
		BlackoutDates: []domain.BlackoutDate{
			{Date: time.Date(2024, time.June, 2, 0, 0, 0, 0, time.UTC), Reason: "holiday", Type: "public"},
		},
		SeasonalAvailability: &domain.SeasonalAvailability{StartMonth: time.May, EndMonth: time.September},
	}

	data, err := encodePayload(desc)
	require.NoError(t, err)

	var decoded domain.ScheduleDescription
	require.NoError(t, decodePayload(data, &decoded, time.UTC))

	assert.Equal(t, desc.FixedDates, decoded.FixedDates)
	assert.Equal(t, desc.BlackoutDates, decoded.BlackoutDates)
	assert.Equal(t, desc.SeasonalAvailability, decoded.SeasonalAvailability)
	assert.Nil(t, decoded.Pattern)

	assert.NoError(t, decodePayload(nil, &decoded, time.UTC))
	assert.ErrorIs(t, decodePayload([]byte("{broken"), &decoded, time.UTC), ErrPayload)
	assert.ErrorIs(t, decodePayload([]byte(`{"blackoutDates":[{"date":"june"}]}`), &decoded, time.UTC), ErrPayload)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestPayload_KeepsCalendarDaysAcrossDST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	end := time.Date(2024, time.July, 2, 0, 0, 0, 0, ny)
	desc := &domain.ScheduleDescription{
		TenantID:     tenantID,
		ProductID:    productID,
		ScheduleType: domain.ScheduleTypeRecurring,
		Pattern: &domain.RecurrencePattern{
			Frequency: domain.FrequencyDaily,
			Interval:  1,
			StartDate: time.Date(2024, time.January, 2, 0, 0, 0, 0, ny),
			EndDate:   &end,
		},
		BlackoutDates: []domain.BlackoutDate{{Date: time.Date(2024, time.March, 10, 0, 0, 0, 0, ny)}},
	}

	data, err := encodePayload(desc)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"endDate":"2024-07-02"`)

	stored := &domain.ScheduleDescription{TenantID: tenantID, ProductID: productID, ScheduleType: desc.ScheduleType}
	require.NoError(t, decodePayload(data, stored, ny))

	require.NotNil(t, stored.Pattern)
	require.NotNil(t, stored.Pattern.EndDate)
	assert.True(t, end.Equal(*stored.Pattern.EndDate))
	assert.Equal(t, ny, stored.Pattern.EndDate.Location())
	assert.Equal(t, ny, stored.Pattern.StartDate.Location())
	assert.True(t, desc.BlackoutDates[0].Date.Equal(stored.BlackoutDates[0].Date))

	expander := recurrence.NewExpander(recurrence.DefaultConfig(), nopLogger{})
	inline := expander.Expand(desc, tenantID, productID).Instances
	fromStore := expander.Expand(stored, tenantID, productID).Instances

	require.Len(t, inline, 183)
	require.Len(t, fromStore, len(inline))
	last := fromStore[len(fromStore)-1]
	assert.True(t, time.Date(2024, time.July, 2, 9, 0, 0, 0, ny).Equal(last.StartTime))
	for i := range inline {
		assert.True(t, inline[i].StartTime.Equal(fromStore[i].StartTime), "instance %d", i)
	}
}

func TestPayload_LegacyTimestamps(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	legacy := []byte(`{"pattern":{"frequency":"weekly","interval":1,"daysOfWeek":[1],` +
		`"startDate":"2024-01-01T00:00:00-05:00","endDate":"2024-07-01T00:00:00-05:00"}}`)

	var desc domain.ScheduleDescription
	require.NoError(t, decodePayload(legacy, &desc, ny))

	require.NotNil(t, desc.Pattern)
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, ny), desc.Pattern.StartDate)
	require.NotNil(t, desc.Pattern.EndDate)
	assert.Equal(t, time.Date(2024, time.July, 1, 0, 0, 0, 0, ny), *desc.Pattern.EndDate)
}
