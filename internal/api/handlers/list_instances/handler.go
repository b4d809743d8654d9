package list_instances

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/instances"
)

const (
	msgInvalidProductID = "некорректный ID продукта"
	msgMissingTenantID  = "отсутствует ID арендатора"
	msgInvalidFilter    = "некорректный фильтр: from/to в формате YYYY-MM-DD, status: active|completed|cancelled"
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

// Handle GET /api/v1/products/{productId}/instances?from=YYYY-MM-DD&to=YYYY-MM-DD&status=active
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(mux.Vars(r)["productId"])
	if err != nil {
		h.logger.Warn("GET /products/{id}/instances - Invalid product ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProductID)
		return
	}

	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("GET /products/{id}/instances - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	list, err := h.service.List(r.Context(), ParseListRequest(r, tenantID, productID))
	if err != nil {
		switch {
		case errors.Is(err, instances.ErrInvalidInput):
			h.logger.Warn("GET /products/{id}/instances - Invalid filter: product_id=%s, error=%v", productID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /products/{id}/instances - Failed to list instances: product_id=%s, error=%v", productID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}
