package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/jhoicas/canastillas-console/internal/application/dto"
)

// CRUDScreen contrato de una pantalla CRUD de la consola (inventario, movimientos, usuarios).
type CRUDScreen[F any, Form any] interface {
	State() dto.ScreenState[F, Form]
	Refresh(ctx context.Context) error
	SetFilters(f F) dto.View
	OpenCreate(ctx context.Context) error
	OpenEdit(ctx context.Context, id string) error
	UpdateForm(f Form) error
	Submit(ctx context.Context) (string, error)
	Cancel() error
	RequestDelete(id string) error
	ConfirmDelete(ctx context.Context) (string, error)
}

// ScreenHandler expone una pantalla CRUD en /console/{pantalla}.
type ScreenHandler[F any, Form any] struct {
	screen CRUDScreen[F, Form]
}

// NewScreenHandler construye el handler.
func NewScreenHandler[F any, Form any](screen CRUDScreen[F, Form]) *ScreenHandler[F, Form] {
	return &ScreenHandler[F, Form]{screen: screen}
}

// Get godoc
// @Summary      Estado de la pantalla
// @Description  Vista filtrada, filtros, indicador de carga y estado del modal.
// @Tags         console
// @Produce      json
// @Param        screen  path  string  true  "inventario | movimientos | usuarios"
// @Success      200  {object}  map[string]interface{}
// @Router       /console/{screen} [get]
func (h *ScreenHandler[F, Form]) Get(c *fiber.Ctx) error {
	return c.JSON(h.screen.State())
}

// Refresh godoc
// @Summary      Recargar la colección
// @Description  Un fallo conserva la caché anterior y publica un banner de error.
// @Tags         console
// @Produce      json
// @Param        screen  path  string  true  "inventario | movimientos | usuarios"
// @Success      200  {object}  map[string]interface{}
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /console/{screen}/refresh [post]
func (h *ScreenHandler[F, Form]) Refresh(c *fiber.Ctx) error {
	if err := h.screen.Refresh(c.UserContext()); err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.screen.State())
}

// SetFilters godoc
// @Summary      Reemplazar filtros y búsqueda
// @Tags         console
// @Accept       json
// @Produce      json
// @Param        screen  path  string  true  "inventario | movimientos | usuarios"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /console/{screen}/filters [put]
func (h *ScreenHandler[F, Form]) SetFilters(c *fiber.Ctx) error {
	var f F
	if err := c.BodyParser(&f); err != nil {
		return invalidBody(c)
	}
	h.screen.SetFilters(f)
	return c.JSON(h.screen.State())
}

// OpenCreate godoc
// @Summary      Abrir el modal de alta
// @Tags         console
// @Produce      json
// @Param        screen  path  string  true  "inventario | movimientos | usuarios"
// @Success      200  {object}  map[string]interface{}
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /console/{screen}/modal/create [post]
func (h *ScreenHandler[F, Form]) OpenCreate(c *fiber.Ctx) error {
	if err := h.screen.OpenCreate(c.UserContext()); err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.screen.State())
}

// OpenEdit godoc
// @Summary      Abrir el modal de edición
// @Tags         console
// @Produce      json
// @Param        screen  path  string  true  "inventario | movimientos | usuarios"
// @Param        id      path  string  true  "ID del registro"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /console/{screen}/modal/edit/{id} [post]
func (h *ScreenHandler[F, Form]) OpenEdit(c *fiber.Ctx) error {
	if err := h.screen.OpenEdit(c.UserContext(), paramID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.screen.State())
}

// UpdateForm godoc
// @Summary      Actualizar los campos del formulario abierto
// @Tags         console
// @Accept       json
// @Produce      json
// @Param        screen  path  string  true  "inventario | movimientos | usuarios"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /console/{screen}/modal/form [put]
func (h *ScreenHandler[F, Form]) UpdateForm(c *fiber.Ctx) error {
	var f Form
	if err := c.BodyParser(&f); err != nil {
		return invalidBody(c)
	}
	if err := h.screen.UpdateForm(f); err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.screen.State())
}

// Submit godoc
// @Summary      Enviar el formulario
// @Description  POST en alta, PUT en edición. Si falla, el formulario se conserva.
// @Tags         console
// @Produce      json
// @Param        screen  path  string  true  "inventario | movimientos | usuarios"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /console/{screen}/modal/submit [post]
func (h *ScreenHandler[F, Form]) Submit(c *fiber.Ctx) error {
	msg, err := h.screen.Submit(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ScreenActionResponse[F, Form]{Message: msg, State: h.screen.State()})
}

// Cancel godoc
// @Summary      Cerrar el modal o la confirmación
// @Tags         console
// @Produce      json
// @Param        screen  path  string  true  "inventario | movimientos | usuarios"
// @Success      200  {object}  map[string]interface{}
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /console/{screen}/modal/cancel [post]
func (h *ScreenHandler[F, Form]) Cancel(c *fiber.Ctx) error {
	if err := h.screen.Cancel(); err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.screen.State())
}

// RequestDelete godoc
// @Summary      Solicitar confirmación de eliminación
// @Tags         console
// @Produce      json
// @Param        screen  path  string  true  "inventario | movimientos | usuarios"
// @Param        id      path  string  true  "ID del registro"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /console/{screen}/delete/{id} [post]
func (h *ScreenHandler[F, Form]) RequestDelete(c *fiber.Ctx) error {
	if err := h.screen.RequestDelete(paramID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.screen.State())
}

// ConfirmDelete godoc
// @Summary      Confirmar la eliminación pendiente
// @Tags         console
// @Produce      json
// @Param        screen  path  string  true  "inventario | movimientos | usuarios"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /console/{screen}/delete/confirm [post]
func (h *ScreenHandler[F, Form]) ConfirmDelete(c *fiber.Ctx) error {
	msg, err := h.screen.ConfirmDelete(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ScreenActionResponse[F, Form]{Message: msg, State: h.screen.State()})
}

// paramID copia el :id; el workflow lo conserva entre peticiones y fiber
// reutiliza el buffer de la petición.
func paramID(c *fiber.Ctx) string {
	return utils.CopyString(c.Params("id"))
}

// register monta las rutas de la pantalla bajo g.
func (h *ScreenHandler[F, Form]) register(g fiber.Router) {
	g.Get("/", h.Get)
	g.Post("/refresh", h.Refresh)
	g.Put("/filters", h.SetFilters)
	g.Post("/modal/create", h.OpenCreate)
	g.Post("/modal/edit/:id", h.OpenEdit)
	g.Put("/modal/form", h.UpdateForm)
	g.Post("/modal/submit", h.Submit)
	g.Post("/modal/cancel", h.Cancel)
	// confirm antes que :id
	g.Post("/delete/confirm", h.ConfirmDelete)
	g.Post("/delete/:id", h.RequestDelete)
}
