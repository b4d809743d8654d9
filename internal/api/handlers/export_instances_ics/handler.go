package export_instances_ics

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/list_instances"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/instances"
)

const (
	msgInvalidProductID = "некорректный ID продукта"
	msgMissingTenantID  = "отсутствует ID арендатора"
	msgInvalidFilter    = "некорректный фильтр: from/to в формате YYYY-MM-DD, status: active|completed|cancelled"

	contentTypeCalendar = "text/calendar; charset=utf-8"
)

type Handler struct {
	service InstanceService
	logger  Logger
}

func NewHandler(service InstanceService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/products/{productId}/instances.ics
// Принимает те же фильтры, что и список экземпляров
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(mux.Vars(r)["productId"])
	if err != nil {
		h.logger.Warn("GET /products/{id}/instances.ics - Invalid product ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProductID)
		return
	}

	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("GET /products/{id}/instances.ics - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	data, err := h.service.ExportICS(r.Context(), list_instances.ParseListRequest(r, tenantID, productID))
	if err != nil {
		switch {
		case errors.Is(err, instances.ErrInvalidInput):
			h.logger.Warn("GET /products/{id}/instances.ics - Invalid filter: product_id=%s, error=%v", productID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /products/{id}/instances.ics - Failed to export: product_id=%s, error=%v", productID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	w.Header().Set("Content-Type", contentTypeCalendar)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", productID.String()+".ics"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
