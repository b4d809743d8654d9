package schedules

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// ScheduleRepository интерфейс репозитория описаний расписаний
type ScheduleRepository interface {
	Upsert(ctx context.Context, desc *domain.ScheduleDescription) (*domain.ScheduleDescription, error)
	GetByProduct(ctx context.Context, tenantID, productID uuid.UUID) (*domain.ScheduleDescription, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
