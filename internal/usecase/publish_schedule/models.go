package publish_schedule

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/recurrence"
)

// Результаты публикации для метрик
const (
	resultSuccess          = "success"
	resultAlreadyPublished = "already_published"
	resultNotFound         = "not_found"
	resultError            = "error"
)

// Request модель запроса публикации
type Request struct {
	TenantID  uuid.UUID
	ProductID uuid.UUID
}

// Response модель ответа с сохраненными экземплярами
type Response struct {
	ScheduleType string
	Instances    []domain.ProductInstance
	Truncated    bool
	PublishedAt  time.Time
}

// Options настройки публикации
type Options struct {
	Filters recurrence.FilterOptions
}
