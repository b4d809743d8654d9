package validate_date_range

import (
	"github.com/m04kA/SMC-AvailabilityService/internal/service/instances/models"
)

type RangeValidator interface {
	ValidateRange(req *models.ValidateRangeRequest) (*models.ValidateRangeResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
