package publish_schedule

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	publishSchedule "github.com/m04kA/SMC-AvailabilityService/internal/usecase/publish_schedule"
)

const (
	msgInvalidProductID = "некорректный ID продукта"
	msgMissingTenantID  = "отсутствует ID арендатора"
	msgNotFound         = "расписание продукта не найдено"
	msgAlreadyPublished = "расписание продукта уже опубликовано"
)

type Handler struct {
	useCase PublishScheduleUseCase
	logger  Logger
}

func NewHandler(useCase PublishScheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/products/{productId}/schedule/publish
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(mux.Vars(r)["productId"])
	if err != nil {
		h.logger.Warn("POST /products/{id}/schedule/publish - Invalid product ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProductID)
		return
	}

	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("POST /products/{id}/schedule/publish - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &publishSchedule.Request{TenantID: tenantID, ProductID: productID})
	if err != nil {
		switch {
		case errors.Is(err, publishSchedule.ErrScheduleNotFound):
			h.logger.Warn("POST /products/{id}/schedule/publish - Schedule not found: product_id=%s", productID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, publishSchedule.ErrAlreadyPublished):
			h.logger.Warn("POST /products/{id}/schedule/publish - Already published: product_id=%s", productID)
			handlers.RespondConflict(w, msgAlreadyPublished)

		case errors.Is(err, publishSchedule.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /products/{id}/schedule/publish - Failed to publish: product_id=%s, error=%v", productID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /products/{id}/schedule/publish - Schedule published: product_id=%s, instances=%d",
		productID, len(result.Instances))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
