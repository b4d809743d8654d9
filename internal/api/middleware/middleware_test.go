package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth(t *testing.T) {
	tenantID := uuid.New()

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "missing", wantStatus: http.StatusUnauthorized},
		{name: "not a uuid", header: "42", wantStatus: http.StatusUnauthorized},
		{name: "nil uuid", header: uuid.Nil.String(), wantStatus: http.StatusUnauthorized},
		{name: "valid", header: tenantID.String(), wantStatus: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got uuid.UUID
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				id, ok := GetTenantID(r.Context())
				require.True(t, ok)
				got = id
				w.WriteHeader(http.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
			if tt.header != "" {
				req.Header.Set(TenantIDHeader, tt.header)
			}
			rec := httptest.NewRecorder()

			Auth(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusNoContent {
				assert.Equal(t, tenantID, got)
			}
		})
	}
}

type observation struct {
	method string
	route  string
	status int
}

type fakeMetrics struct {
	observed []observation
}

func (m *fakeMetrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	m.observed = append(m.observed, observation{method: method, route: route, status: status})
}

func TestMetricsMiddleware(t *testing.T) {
	m := &fakeMetrics{}
	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.HandleFunc("/api/v1/products/{productId}/instances", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}).Methods(http.MethodGet)
	r.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/products/"+uuid.NewString()+"/instances", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))

	require.Len(t, m.observed, 2)
	assert.Equal(t, observation{method: "GET", route: "/api/v1/products/{productId}/instances", status: http.StatusTeapot}, m.observed[0])
	assert.Equal(t, observation{method: "GET", route: "/ok", status: http.StatusOK}, m.observed[1])
}
