package dto

import (
	"strings"

	"github.com/jhoicas/canastillas-console/internal/domain"
	"github.com/jhoicas/canastillas-console/internal/domain/entity"
)

// Rangos de fecha del filtro de movimientos.
const (
	DateRangeAll   = AllFilter
	DateRangeToday = "today"
	DateRangeWeek  = "week"
	DateRangeMonth = "month"
)

// MovementForm campos del modal de movimiento; cuerpo de POST /movimiento/add
// y PUT /movimiento/{id}.
type MovementForm struct {
	ContainerID       string `json:"id_canastilla"`
	Type              string `json:"tipo_movimiento"`
	Origin            string `json:"ubicacion_origen"`
	Destination       string `json:"ubicacion_destino"`
	ResponsibleUserID int    `json:"id_usuario_responsable"`
}

func (f MovementForm) Validate() error {
	if strings.TrimSpace(f.ContainerID) == "" {
		return domain.NewValidationError("id_canastilla", "seleccione una canastilla")
	}
	if f.Type != entity.MovementTypeEntry && f.Type != entity.MovementTypeExit {
		return domain.NewValidationError("tipo_movimiento", "debe ser entrada o salida")
	}
	if strings.TrimSpace(f.Origin) == "" {
		return domain.NewValidationError("ubicacion_origen", "es obligatoria")
	}
	if strings.TrimSpace(f.Destination) == "" {
		return domain.NewValidationError("ubicacion_destino", "es obligatoria")
	}
	if f.ResponsibleUserID <= 0 {
		return domain.NewValidationError("id_usuario_responsable", "es obligatorio")
	}
	return nil
}

// MovementFormFrom precarga el formulario desde GET /movimiento/{id}.
func MovementFormFrom(m entity.Movement) MovementForm {
	return MovementForm{
		ContainerID:       m.ContainerID,
		Type:              m.Type,
		Origin:            m.Origin,
		Destination:       m.Destination,
		ResponsibleUserID: m.ResponsibleUserID,
	}
}

// MovementFilters filtros de la pantalla de movimientos.
type MovementFilters struct {
	Type      string `json:"type"`
	DateRange string `json:"date_range"`
	Search    string `json:"search"`
}
