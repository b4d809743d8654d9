package get_schedule

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/schedules"
)

const (
	msgInvalidProductID = "некорректный ID продукта"
	msgMissingTenantID  = "отсутствует ID арендатора"
	msgNotFound         = "расписание продукта не найдено"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/products/{productId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(mux.Vars(r)["productId"])
	if err != nil {
		h.logger.Warn("GET /products/{id}/schedule - Invalid product ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProductID)
		return
	}

	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("GET /products/{id}/schedule - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	schedule, err := h.service.Get(r.Context(), tenantID, productID)
	if err != nil {
		switch {
		case errors.Is(err, schedules.ErrScheduleNotFound):
			h.logger.Warn("GET /products/{id}/schedule - Schedule not found: product_id=%s", productID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /products/{id}/schedule - Failed to get schedule: product_id=%s, error=%v", productID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, schedule)
}
