package validate_date_range

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/service/instances"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

func newHandler() *Handler {
	svc := instances.NewService(nil, nil, nil, nopLogger{}).
		WithTimeProvider(fixedClock{now: time.Date(2024, time.June, 10, 8, 0, 0, 0, time.UTC)})
	return NewHandler(svc, nopLogger{})
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "valid range",
			body:       `{"startDate":"2024-06-15","endDate":"2024-06-20"}`,
			wantStatus: http.StatusOK,
			wantBody:   `{"isValid":true,"errors":[],"state":"complete","days":6}`,
		},
		{
			name:       "invalid range is still 200",
			body:       `{"startDate":"2024-06-15","endDate":"2024-06-20","maxDate":"2024-06-18"}`,
			wantStatus: http.StatusOK,
			wantBody:   `{"isValid":false,"errors":["end date is after the maximum date"],"state":"complete","days":6}`,
		},
		{
			name:       "anchored",
			body:       `{"startDate":"2024-06-15"}`,
			wantStatus: http.StatusOK,
			wantBody:   `{"isValid":true,"errors":[],"state":"anchored","days":0}`,
		},
		{name: "bad date", body: `{"startDate":"15.06.2024"}`, wantStatus: http.StatusBadRequest},
		{name: "bad body", body: `{"startDate":15}`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/date-ranges/validate", strings.NewReader(tt.body))

			newHandler().Handle(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}
