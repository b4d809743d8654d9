package sweeper

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// InstanceRepository интерфейс репозитория экземпляров
type InstanceRepository interface {
	MarkCompleted(ctx context.Context, before time.Time) (int64, []domain.ProductKey, error)
}

// InstanceCache интерфейс кэша списков экземпляров
type InstanceCache interface {
	Invalidate(ctx context.Context, tenantID, productID uuid.UUID) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
