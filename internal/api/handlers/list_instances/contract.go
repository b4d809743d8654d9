package list_instances

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/service/instances/models"
)

type InstanceService interface {
	List(ctx context.Context, req *models.ListInstancesRequest) (*models.InstanceListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
