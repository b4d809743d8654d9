package instances

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// fakeRedis хранит значения в памяти
type fakeRedis struct {
	data    map[string]string
	ttls    map[string]time.Duration
	failGet error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.failGet != nil {
		return redis.NewStringResult("", f.failGet)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.data[key] = string(value.([]byte))
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

var (
	tenantID  = uuid.MustParse("11111111-2222-4333-8444-555555555555")
	productID = uuid.MustParse("66666666-7777-4888-9999-aaaaaaaaaaaa")
)

func TestKey(t *testing.T) {
	assert.Equal(t,
		"instances:11111111-2222-4333-8444-555555555555:66666666-7777-4888-9999-aaaaaaaaaaaa",
		Key(tenantID, productID))
}

func TestCache_SetGetInvalidate(t *testing.T) {
	ctx := context.Background()
	rdb := newFakeRedis()
	cache := NewCache(rdb, 0)

	_, ok, err := cache.Get(ctx, tenantID, productID)
	require.NoError(t, err)
	assert.False(t, ok)

	start := time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC)
	list := []domain.ProductInstance{{
		ID:                uuid.MustParse("bbbbbbbb-cccc-4ddd-8eee-ffffffffffff"),
		TenantID:          tenantID,
		ProductID:         productID,
		StartTime:         start,
		EndTime:           start.Add(8 * time.Hour),
		MaxQuantity:       20,
		AvailableQuantity: 17,
		Status:            domain.InstanceStatusActive,
	}}
	require.NoError(t, cache.Set(ctx, tenantID, productID, list))
	assert.Equal(t, DefaultTTL, rdb.ttls[Key(tenantID, productID)])

	got, ok, err := cache.Get(ctx, tenantID, productID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, list[0].ID, got[0].ID)
	assert.True(t, list[0].StartTime.Equal(got[0].StartTime))
	assert.Equal(t, 17, got[0].AvailableQuantity)

	require.NoError(t, cache.Invalidate(ctx, tenantID, productID))
	_, ok, err = cache.Get(ctx, tenantID, productID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("redis failure", func(t *testing.T) {
		rdb := newFakeRedis()
		rdb.failGet = errors.New("connection refused")
		_, _, err := NewCache(rdb, time.Minute).Get(ctx, tenantID, productID)
		assert.ErrorIs(t, err, ErrCache)
	})

	t.Run("corrupted value", func(t *testing.T) {
		rdb := newFakeRedis()
		rdb.data[Key(tenantID, productID)] = "not json"
		_, _, err := NewCache(rdb, time.Minute).Get(ctx, tenantID, productID)
		assert.ErrorIs(t, err, ErrCodec)
	})
}
