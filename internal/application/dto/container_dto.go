package dto

import (
	"strings"

	"github.com/jhoicas/canastillas-console/internal/domain"
	"github.com/jhoicas/canastillas-console/internal/domain/entity"
)

// ContainerForm campos del modal de canastilla; también es el cuerpo de
// POST /canastilla/add y PUT /canastilla/{id}.
type ContainerForm struct {
	ID       string `json:"id_canastilla"`
	Status   string `json:"estado"`
	Location string `json:"ubicacion"`
}

// Validate comprueba presencia de campos (la validación semántica es del servidor).
func (f ContainerForm) Validate() error {
	if strings.TrimSpace(f.ID) == "" {
		return domain.NewValidationError("id_canastilla", "es obligatorio")
	}
	if strings.TrimSpace(f.Status) == "" {
		return domain.NewValidationError("estado", "es obligatorio")
	}
	if strings.TrimSpace(f.Location) == "" {
		return domain.NewValidationError("ubicacion", "es obligatoria")
	}
	return nil
}

// ContainerFormFrom precarga el formulario de edición desde el registro en caché.
func ContainerFormFrom(c entity.Container) ContainerForm {
	return ContainerForm{ID: c.ID, Status: c.Status, Location: c.Location}
}

// InventoryFilters filtros de la pantalla de inventario.
type InventoryFilters struct {
	Status   string `json:"status"`
	Location string `json:"location"`
	Search   string `json:"search"`
}
