package save_schedule

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/schedules"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/schedules/models"
)

const (
	msgInvalidProductID   = "некорректный ID продукта"
	msgMissingTenantID    = "отсутствует ID арендатора"
	msgInvalidRequestBody = "некорректное тело запроса"
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

// Handle PUT /api/v1/products/{productId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(mux.Vars(r)["productId"])
	if err != nil {
		h.logger.Warn("PUT /products/{id}/schedule - Invalid product ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProductID)
		return
	}

	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("PUT /products/{id}/schedule - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	var req models.ScheduleDescription
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /products/{id}/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	schedule, err := h.service.Save(r.Context(), tenantID, productID, &req)
	if err != nil {
		switch {
		case errors.Is(err, schedules.ErrInvalidInput):
			h.logger.Warn("PUT /products/{id}/schedule - Invalid schedule: product_id=%s, error=%v", productID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /products/{id}/schedule - Failed to save schedule: product_id=%s, error=%v", productID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /products/{id}/schedule - Schedule saved: product_id=%s, schedule_id=%d", productID, schedule.ID)
	handlers.RespondJSON(w, http.StatusOK, schedule)
}
