package export_instances_ics

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/service/instances/models"
)

type InstanceService interface {
	ExportICS(ctx context.Context, req *models.ListInstancesRequest) ([]byte, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
