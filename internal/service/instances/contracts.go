package instances

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// InstanceRepository интерфейс репозитория экземпляров
type InstanceRepository interface {
	ListByProduct(ctx context.Context, filter domain.InstanceFilter) ([]domain.ProductInstance, error)
}

// InstanceCache кэш списков экземпляров продукта (может быть nil)
type InstanceCache interface {
	Get(ctx context.Context, tenantID, productID uuid.UUID) ([]domain.ProductInstance, bool, error)
	Set(ctx context.Context, tenantID, productID uuid.UUID, list []domain.ProductInstance) error
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реализация TimeProvider с реальным временем
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
