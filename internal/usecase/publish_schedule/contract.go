package publish_schedule

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/integrations/events"
	"github.com/m04kA/SMC-AvailabilityService/internal/recurrence"
)

// ScheduleRepository интерфейс репозитория описаний расписаний
type ScheduleRepository interface {
	GetByProduct(ctx context.Context, tenantID, productID uuid.UUID) (*domain.ScheduleDescription, error)
	MarkPublished(ctx context.Context, tenantID, productID uuid.UUID, at time.Time) error
}

// InstanceRepository интерфейс репозитория экземпляров
type InstanceRepository interface {
	InsertMany(ctx context.Context, instances []domain.ProductInstance) ([]domain.ProductInstance, error)
}

// Expander интерфейс генератора экземпляров
type Expander interface {
	Expand(desc *domain.ScheduleDescription, tenantID, productID uuid.UUID) recurrence.Result
}

// InstanceCache кэш списков экземпляров (может быть nil)
type InstanceCache interface {
	Invalidate(ctx context.Context, tenantID, productID uuid.UUID) error
}

// EventPublisher интерфейс отправки событий
type EventPublisher interface {
	PublishInstancesPublished(ctx context.Context, event events.InstancesPublished) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс доменных метрик
type Metrics interface {
	ObserveExpansion(scheduleType string, instances int)
	IncPublish(result string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
