package list_instances

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/service/instances/models"
)

// ParseListRequest собирает запрос из query параметров from, to, status
func ParseListRequest(r *http.Request, tenantID, productID uuid.UUID) *models.ListInstancesRequest {
	req := &models.ListInstancesRequest{TenantID: tenantID, ProductID: productID}

	query := r.URL.Query()
	if v := query.Get("from"); v != "" {
		req.From = &v
	}
	if v := query.Get("to"); v != "" {
		req.To = &v
	}
	if v := query.Get("status"); v != "" {
		req.Status = &v
	}

	return req
}
