package instances

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

const keyPrefix = "instances"

// DefaultTTL время жизни закэшированного списка
const DefaultTTL = 5 * time.Minute

// Cache кэш списков экземпляров продукта в redis
type Cache struct {
	client RedisClient
	ttl    time.Duration
}

// NewCache создает кэш; ttl <= 0 заменяется на DefaultTTL
func NewCache(client RedisClient, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{client: client, ttl: ttl}
}

// Key возвращает ключ списка экземпляров продукта
func Key(tenantID, productID uuid.UUID) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, tenantID, productID)
}

// Get возвращает закэшированный список. ok = false при промахе.
func (c *Cache) Get(ctx context.Context, tenantID, productID uuid.UUID) ([]domain.ProductInstance, bool, error) {
	data, err := c.client.Get(ctx, Key(tenantID, productID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: Get: %v", ErrCache, err)
	}

	var list []domain.ProductInstance
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, false, fmt.Errorf("%w: Get - decode: %v", ErrCodec, err)
	}

	return list, true, nil
}

// Set сохраняет список экземпляров продукта
func (c *Cache) Set(ctx context.Context, tenantID, productID uuid.UUID, list []domain.ProductInstance) error {
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("%w: Set - encode: %v", ErrCodec, err)
	}

	if err := c.client.Set(ctx, Key(tenantID, productID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Set: %v", ErrCache, err)
	}

	return nil
}

// Invalidate удаляет закэшированный список продукта
func (c *Cache) Invalidate(ctx context.Context, tenantID, productID uuid.UUID) error {
	if err := c.client.Del(ctx, Key(tenantID, productID)).Err(); err != nil {
		return fmt.Errorf("%w: Invalidate: %v", ErrCache, err)
	}
	return nil
}
