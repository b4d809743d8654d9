package publish_schedule

import (
	"time"

	instanceModels "github.com/m04kA/SMC-AvailabilityService/internal/service/instances/models"
	publishSchedule "github.com/m04kA/SMC-AvailabilityService/internal/usecase/publish_schedule"
)

// PublishResponse ответ публикации
type PublishResponse struct {
	ScheduleType string                            `json:"scheduleType"`
	PublishedAt  string                            `json:"publishedAt"`
	Truncated    bool                              `json:"truncated"`
	Instances    []instanceModels.InstanceResponse `json:"instances"`
	Total        int                               `json:"total"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *publishSchedule.Response) *PublishResponse {
	list := instanceModels.FromDomainInstanceList(resp.Instances)
	return &PublishResponse{
		ScheduleType: resp.ScheduleType,
		PublishedAt:  resp.PublishedAt.Format(time.RFC3339),
		Truncated:    resp.Truncated,
		Instances:    list.Instances,
		Total:        list.Total,
	}
}
