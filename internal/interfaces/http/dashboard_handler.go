package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/canastillas-console/internal/application/dto"
)

type dashboardScreen interface {
	View() dto.DashboardView
	Refresh(ctx context.Context) error
}

// DashboardHandler maneja los endpoints del dashboard.
type DashboardHandler struct {
	screen dashboardScreen
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(screen dashboardScreen) *DashboardHandler {
	return &DashboardHandler{screen: screen}
}

// Get godoc
// @Summary      Métricas del dashboard
// @Description  Contadores, porcentajes por estado, series de los gráficos y movimientos recientes.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.DashboardView
// @Router       /console/dashboard [get]
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	return c.JSON(h.screen.View())
}

// Refresh godoc
// @Summary      Recargar las métricas
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.DashboardView
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /console/dashboard/refresh [post]
func (h *DashboardHandler) Refresh(c *fiber.Ctx) error {
	if err := h.screen.Refresh(c.UserContext()); err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.screen.View())
}
