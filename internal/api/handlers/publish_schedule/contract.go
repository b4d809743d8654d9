package publish_schedule

import (
	"context"

	publishSchedule "github.com/m04kA/SMC-AvailabilityService/internal/usecase/publish_schedule"
)

type PublishScheduleUseCase interface {
	Execute(ctx context.Context, req *publishSchedule.Request) (*publishSchedule.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
