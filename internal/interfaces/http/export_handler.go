package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/canastillas-console/internal/application/dto"
	"github.com/jhoicas/canastillas-console/internal/application/ports"
)

type viewSource interface {
	View() dto.View
}

// ExportHandler descarga en PDF la vista filtrada actual de una pantalla.
type ExportHandler struct {
	reporter ports.ViewReporter
	source   viewSource
	title    string
	filename string
}

// NewExportHandler construye el handler.
func NewExportHandler(reporter ports.ViewReporter, source viewSource, title, filename string) *ExportHandler {
	return &ExportHandler{reporter: reporter, source: source, title: title, filename: filename}
}

// PDF godoc
// @Summary      Exportar la vista filtrada a PDF
// @Tags         console
// @Produce      application/pdf
// @Param        screen  path  string  true  "inventario | movimientos"
// @Success      200  {file}  binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /console/{screen}/export.pdf [get]
func (h *ExportHandler) PDF(c *fiber.Ctx) error {
	out, err := h.reporter.ViewPDF(c.UserContext(), h.title, h.source.View())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", h.filename))
	return c.Send(out)
}
