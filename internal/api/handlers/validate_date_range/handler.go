package validate_date_range

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/instances"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/instances/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	validator RangeValidator
	logger    Logger
}

func NewHandler(validator RangeValidator, logger Logger) *Handler {
	return &Handler{
		validator: validator,
		logger:    logger,
	}
}

// Handle POST /api/v1/date-ranges/validate
// Результат проверки носит рекомендательный характер: невалидный диапазон возвращается с 200 и списком ошибок
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.ValidateRangeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /date-ranges/validate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.validator.ValidateRange(&req)
	if err != nil {
		switch {
		case errors.Is(err, instances.ErrInvalidInput):
			h.logger.Warn("POST /date-ranges/validate - Invalid date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("POST /date-ranges/validate - Failed to validate range: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
