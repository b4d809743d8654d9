package preview_schedule

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/recurrence"
)

// ScheduleRepository интерфейс репозитория описаний расписаний
type ScheduleRepository interface {
	GetByProduct(ctx context.Context, tenantID, productID uuid.UUID) (*domain.ScheduleDescription, error)
}

// Expander интерфейс генератора экземпляров
type Expander interface {
	Expand(desc *domain.ScheduleDescription, tenantID, productID uuid.UUID) recurrence.Result
}

// Metrics интерфейс доменных метрик
type Metrics interface {
	ObserveExpansion(scheduleType string, instances int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
