package instance

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
)

var (
	tenantID  = uuid.MustParse("0f8a4c2e-5d1b-4e7a-9c3f-1a2b3c4d5e6f")
	productID = uuid.MustParse("7e6d5c4b-3a29-4817-a6b5-c4d3e2f1a0b9")
)

func TestBuildInsertQuery(t *testing.T) {
	start := time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC)
	batch := []domain.ProductInstance{
		{TenantID: tenantID, ProductID: productID, StartTime: start, EndTime: start.Add(8 * time.Hour), MaxQuantity: 20, AvailableQuantity: 20, Status: domain.InstanceStatusActive},
		{TenantID: tenantID, ProductID: productID, StartTime: start.AddDate(0, 0, 1), EndTime: start.AddDate(0, 0, 1).Add(8 * time.Hour), MaxQuantity: 5, AvailableQuantity: 5, Status: domain.InstanceStatusActive},
	}

	query, args, err := buildInsertQuery(batch)
	require.NoError(t, err)

	assert.Equal(t,
		"INSERT INTO product_instances (tenant_id,product_id,start_time,end_time,max_quantity,available_quantity,status) "+
			"VALUES ($1,$2,$3,$4,$5,$6,$7),($8,$9,$10,$11,$12,$13,$14) "+
			"RETURNING id, tenant_id, product_id, start_time, end_time, max_quantity, available_quantity, status, created_at",
		query)
	require.Len(t, args, 14)
	assert.Equal(t, start, args[2])
	assert.Equal(t, 5, args[11])
	assert.Equal(t, "active", args[13])
}

func TestBuildListQuery(t *testing.T) {
	from := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.May, 31, 23, 59, 59, 0, time.UTC)

	tests := []struct {
		name          string
		filter        domain.InstanceFilter
		expectedWhere string
		expectedArgs  int
	}{
		{
			name:          "product only",
			filter:        domain.InstanceFilter{TenantID: tenantID, ProductID: productID},
			expectedWhere: "WHERE product_id = $1 AND tenant_id = $2 ORDER BY start_time ASC",
			expectedArgs:  2,
		},
		{
			name: "period and status",
			filter: domain.InstanceFilter{
				TenantID:  tenantID,
				ProductID: productID,
				From:      &from,
				To:        &to,
				Status:    ptr.Ptr(domain.InstanceStatusActive),
			},
			expectedWhere: "WHERE product_id = $1 AND tenant_id = $2 AND start_time >= $3 AND start_time <= $4 AND status = $5 ORDER BY start_time ASC",
			expectedArgs:  5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := buildListQuery(tt.filter)
			require.NoError(t, err)

			assert.Contains(t, query, "FROM product_instances "+tt.expectedWhere)
			assert.Len(t, args, tt.expectedArgs)
		})
	}
}

func TestInsertMany_EmptyBatch(t *testing.T) {
	repo := NewRepository(nil)

	_, err := repo.InsertMany(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEmptyBatch)
}

func TestBuildMarkCompletedQuery(t *testing.T) {
	before := time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC)

	query, args, err := buildMarkCompletedQuery(before)
	require.NoError(t, err)

	assert.Contains(t, query, "UPDATE product_instances SET status = $1")
	assert.Contains(t, query, "status = $2")
	assert.Contains(t, query, "end_time <= $3")
	assert.True(t, strings.HasSuffix(query, "RETURNING tenant_id, product_id"), query)
	assert.Equal(t, []interface{}{"completed", "active", before}, args)
}
