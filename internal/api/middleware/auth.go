package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
)

// TenantIDHeader заголовок с идентификатором арендатора, проставляется gateway
const TenantIDHeader = "X-Tenant-ID"

const (
	msgMissingTenantID = "отсутствует заголовок X-Tenant-ID"
	msgInvalidTenantID = "некорректный X-Tenant-ID"
)

type contextKey string

const tenantIDKey contextKey = "tenant_id"

// Auth извлекает X-Tenant-ID и кладет его в контекст
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(TenantIDHeader)
		if raw == "" {
			handlers.RespondUnauthorized(w, msgMissingTenantID)
			return
		}

		tenantID, err := uuid.Parse(raw)
		if err != nil || tenantID == uuid.Nil {
			handlers.RespondUnauthorized(w, msgInvalidTenantID)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithTenantID(r.Context(), tenantID)))
	})
}

// WithTenantID кладет tenantID в контекст
func WithTenantID(ctx context.Context, tenantID uuid.UUID) context.Context {
	return context.WithValue(ctx, tenantIDKey, tenantID)
}

// GetTenantID достает tenantID из контекста
func GetTenantID(ctx context.Context) (uuid.UUID, bool) {
	tenantID, ok := ctx.Value(tenantIDKey).(uuid.UUID)
	return tenantID, ok
}
