package apiclient

import (
	"context"
	"net/http"

	"github.com/jhoicas/canastillas-console/internal/domain/entity"
)

// GetDashboardMetrics GET /dashboard/metrics. A diferencia de las colecciones,
// las métricas vienen en el objeto raíz (sin "data").
func (c *Client) GetDashboardMetrics(ctx context.Context) (*entity.DashboardMetrics, error) {
	r, err := c.do(ctx, http.MethodGet, "/dashboard/metrics", nil)
	if err != nil {
		return nil, err
	}
	var payload struct {
		entity.DashboardMetrics
		Error string `json:"error,omitempty"`
	}
	if err := decode(r, &payload, func() string { return payload.Error }); err != nil {
		return nil, err
	}
	m := payload.DashboardMetrics
	return &m, nil
}
