package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/canastillas-console/internal/application/dto"
)

type notificationCenter interface {
	Active() []dto.Notification
	ActiveFor(screen string) []dto.Notification
	Dismiss(id string) bool
}

// NotificationHandler banners activos de la consola.
type NotificationHandler struct {
	center notificationCenter
}

// NewNotificationHandler construye el handler.
func NewNotificationHandler(center notificationCenter) *NotificationHandler {
	return &NotificationHandler{center: center}
}

// List godoc
// @Summary      Banners activos
// @Description  Éxitos aún visibles y errores no descartados. Filtrable por pantalla.
// @Tags         notifications
// @Produce      json
// @Param        screen  query  string  false  "pantalla"
// @Success      200  {array}  dto.Notification
// @Router       /console/notifications [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	if screen := c.Query("screen"); screen != "" {
		return c.JSON(h.center.ActiveFor(screen))
	}
	return c.JSON(h.center.Active())
}

// Dismiss godoc
// @Summary      Descartar un banner
// @Tags         notifications
// @Param        id  path  string  true  "ID del banner"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /console/notifications/{id} [delete]
func (h *NotificationHandler) Dismiss(c *fiber.Ctx) error {
	if !h.center.Dismiss(c.Params("id")) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "notificación no encontrada"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
