package preview_schedule

import (
	"time"

	previewSchedule "github.com/m04kA/SMC-AvailabilityService/internal/usecase/preview_schedule"
)

// PreviewInstance экземпляр предпросмотра (не сохранен, без ID)
type PreviewInstance struct {
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	MaxQuantity int    `json:"maxQuantity"`
}

// PreviewResponse ответ предпросмотра
type PreviewResponse struct {
	ScheduleType string            `json:"scheduleType"`
	Instances    []PreviewInstance `json:"instances"`
	Total        int               `json:"total"`
	Truncated    bool              `json:"truncated"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *previewSchedule.Response) *PreviewResponse {
	out := &PreviewResponse{
		ScheduleType: resp.ScheduleType,
		Instances:    make([]PreviewInstance, 0, len(resp.Instances)),
		Total:        len(resp.Instances),
		Truncated:    resp.Truncated,
	}
	for _, inst := range resp.Instances {
		out.Instances = append(out.Instances, PreviewInstance{
			StartTime:   inst.StartTime.Format(time.RFC3339),
			EndTime:     inst.EndTime.Format(time.RFC3339),
			MaxQuantity: inst.MaxQuantity,
		})
	}
	return out
}
