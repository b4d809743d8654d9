package publish_schedule

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	publishSchedule "github.com/m04kA/SMC-AvailabilityService/internal/usecase/publish_schedule"
)

type fakeUseCase struct {
	resp *publishSchedule.Response
	err  error
}

func (u *fakeUseCase) Execute(ctx context.Context, req *publishSchedule.Request) (*publishSchedule.Response, error) {
	return u.resp, u.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newRequest(productID string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products/"+productID+"/schedule/publish", nil)
	req = mux.SetURLVars(req, map[string]string{"productId": productID})
	return req.WithContext(middleware.WithTenantID(req.Context(), uuid.New()))
}

func TestHandle_Created(t *testing.T) {
	productID := uuid.New()
	start := time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{resp: &publishSchedule.Response{
		ScheduleType: "recurring",
		PublishedAt:  time.Date(2024, time.April, 20, 10, 0, 0, 0, time.UTC),
		Instances: []domain.ProductInstance{{
			ID:                uuid.New(),
			ProductID:         productID,
			StartTime:         start,
			EndTime:           start.Add(8 * time.Hour),
			MaxQuantity:       20,
			AvailableQuantity: 20,
			Status:            domain.InstanceStatusActive,
		}},
	}}
	rec := httptest.NewRecorder()

	NewHandler(uc, nopLogger{}).Handle(rec, newRequest(productID.String()))

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp PublishResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2024-04-20T10:00:00Z", resp.PublishedAt)
	assert.Equal(t, 1, resp.Total)
	assert.True(t, resp.Instances[0].Bookable)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		productID  string
		err        error
		wantStatus int
	}{
		{name: "bad product id", productID: "abc", wantStatus: http.StatusBadRequest},
		{name: "not found", productID: uuid.NewString(), err: publishSchedule.ErrScheduleNotFound, wantStatus: http.StatusNotFound},
		{name: "already published", productID: uuid.NewString(), err: publishSchedule.ErrAlreadyPublished, wantStatus: http.StatusConflict},
		{name: "internal", productID: uuid.NewString(), err: publishSchedule.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewHandler(&fakeUseCase{err: tt.err}, nopLogger{}).Handle(rec, newRequest(tt.productID))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
