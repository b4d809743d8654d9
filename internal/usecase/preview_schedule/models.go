package preview_schedule

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/recurrence"
	scheduleModels "github.com/m04kA/SMC-AvailabilityService/internal/service/schedules/models"
)

// Request модель запроса предпросмотра
type Request struct {
	TenantID    uuid.UUID
	ProductID   uuid.UUID
	Description *scheduleModels.ScheduleDescription // nil = взять сохраненное описание
}

// Response модель ответа предпросмотра; экземпляры не сохраняются и не имеют ID
type Response struct {
	ScheduleType string
	Instances    []domain.ProductInstance
	Truncated    bool
}

// Options настройки предпросмотра
type Options struct {
	Filters recurrence.FilterOptions
}
