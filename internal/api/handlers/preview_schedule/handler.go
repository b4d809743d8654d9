package preview_schedule

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/schedules/models"
	previewSchedule "github.com/m04kA/SMC-AvailabilityService/internal/usecase/preview_schedule"
)

const (
	msgInvalidProductID   = "некорректный ID продукта"
	msgMissingTenantID    = "отсутствует ID арендатора"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "расписание продукта не найдено"
)

type Handler struct {
	useCase PreviewScheduleUseCase
	logger  Logger
}

func NewHandler(useCase PreviewScheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/products/{productId}/schedule/preview
// Тело запроса необязательно: без него используется сохраненное описание
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(mux.Vars(r)["productId"])
	if err != nil {
		h.logger.Warn("POST /products/{id}/schedule/preview - Invalid product ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProductID)
		return
	}

	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("POST /products/{id}/schedule/preview - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	useCaseReq := &previewSchedule.Request{TenantID: tenantID, ProductID: productID}

	if handlers.HasBody(r) {
		var desc models.ScheduleDescription
		err := handlers.DecodeJSON(r, &desc)
		switch {
		case err == nil:
			useCaseReq.Description = &desc
		case !errors.Is(err, handlers.ErrEmptyBody):
			h.logger.Warn("POST /products/{id}/schedule/preview - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, previewSchedule.ErrInvalidInput):
			h.logger.Warn("POST /products/{id}/schedule/preview - Invalid schedule: product_id=%s, error=%v", productID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, previewSchedule.ErrScheduleNotFound):
			h.logger.Warn("POST /products/{id}/schedule/preview - Schedule not found: product_id=%s", productID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("POST /products/{id}/schedule/preview - Failed to preview: product_id=%s, error=%v", productID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /products/{id}/schedule/preview - Preview built: product_id=%s, instances=%d",
		productID, len(result.Instances))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
