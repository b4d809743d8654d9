package save_schedule

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/schedules"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/schedules/models"
)

type fakeService struct {
	got *models.ScheduleDescription
	err error
}

func (s *fakeService) Save(ctx context.Context, tenantID, productID uuid.UUID, req *models.ScheduleDescription) (*models.ScheduleResponse, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.ScheduleResponse{ID: 1, TenantID: tenantID.String(), ProductID: productID.String(), ScheduleDescription: *req}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newRequest(productID, body string, withTenant bool) *http.Request {
	req := httptest.NewRequest(http.MethodPut, "/api/v1/products/"+productID+"/schedule", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"productId": productID})
	if withTenant {
		req = req.WithContext(middleware.WithTenantID(req.Context(), uuid.New()))
	}
	return req
}

func TestHandle(t *testing.T) {
	productID := uuid.NewString()
	validBody := `{"scheduleType":"recurring","recurrencePattern":{"frequency":"daily","startDate":"2024-05-01"}}`

	tests := []struct {
		name       string
		productID  string
		body       string
		withTenant bool
		serviceErr error
		wantStatus int
	}{
		{name: "saved", productID: productID, body: validBody, withTenant: true, wantStatus: http.StatusOK},
		{name: "bad product id", productID: "42", body: validBody, withTenant: true, wantStatus: http.StatusBadRequest},
		{name: "no tenant", productID: productID, body: validBody, wantStatus: http.StatusUnauthorized},
		{name: "bad json", productID: productID, body: `{"scheduleType":`, withTenant: true, wantStatus: http.StatusBadRequest},
		{
			name:       "invalid schedule",
			productID:  productID,
			body:       validBody,
			withTenant: true,
			serviceErr: fmt.Errorf("%w: unknown scheduleType", schedules.ErrInvalidInput),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "internal",
			productID:  productID,
			body:       validBody,
			withTenant: true,
			serviceErr: errors.New("db down"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{err: tt.serviceErr}
			rec := httptest.NewRecorder()

			NewHandler(svc, nopLogger{}).Handle(rec, newRequest(tt.productID, tt.body, tt.withTenant))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "daily", svc.got.RecurrencePattern.Frequency)
				assert.Contains(t, rec.Body.String(), `"productId":"`+productID+`"`)
			}
		})
	}
}
