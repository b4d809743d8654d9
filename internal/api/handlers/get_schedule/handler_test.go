package get_schedule

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/schedules"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/schedules/models"
)

type fakeService struct {
	err error
}

func (s *fakeService) Get(ctx context.Context, tenantID, productID uuid.UUID) (*models.ScheduleResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.ScheduleResponse{
		ID:                  5,
		ProductID:           productID.String(),
		ScheduleDescription: models.ScheduleDescription{ScheduleType: "on-demand"},
	}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestHandle(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "found", wantStatus: http.StatusOK},
		{name: "not found", err: schedules.ErrScheduleNotFound, wantStatus: http.StatusNotFound},
		{name: "internal", err: schedules.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			productID := uuid.NewString()
			req := httptest.NewRequest(http.MethodGet, "/api/v1/products/"+productID+"/schedule", nil)
			req = mux.SetURLVars(req, map[string]string{"productId": productID})
			req = req.WithContext(middleware.WithTenantID(req.Context(), uuid.New()))
			rec := httptest.NewRecorder()

			NewHandler(&fakeService{err: tt.err}, nopLogger{}).Handle(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Contains(t, rec.Body.String(), `"scheduleType":"on-demand"`)
			}
		})
	}
}
