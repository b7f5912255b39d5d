package console

import (
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/jhoicas/canastillas-console/internal/application/dto"
	"github.com/jhoicas/canastillas-console/internal/domain/entity"
	"github.com/jhoicas/canastillas-console/pkg/datefmt"
)

// matchCategory filtro categórico; "all" o vacío no filtra.
func matchCategory(selected, value string) bool {
	return selected == "" || selected == dto.AllFilter || selected == value
}

// newSearch predicado de búsqueda libre: subcadena sin distinguir mayúsculas
// sobre los campos dados. Un término vacío acepta todo.
func newSearch(term string) func(fields ...string) bool {
	if term == "" {
		return func(...string) bool { return true }
	}
	// Caser no es seguro entre goroutines: uno por derivación.
	fold := cases.Fold()
	needle := fold.String(term)
	return func(fields ...string) bool {
		for _, f := range fields {
			if f != "" && strings.Contains(fold.String(f), needle) {
				return true
			}
		}
		return false
	}
}

// inDateRange clasifica ts según el rango. Una fecha ausente o ilegible
// solo pasa con "all".
func inDateRange(ts entity.Timestamp, rng string, now time.Time) bool {
	if rng == "" || rng == dto.DateRangeAll {
		return true
	}
	t, err := ts.Time(now.Location())
	if err != nil {
		return false
	}
	switch rng {
	case dto.DateRangeToday:
		return datefmt.SameDay(t, now)
	case dto.DateRangeWeek:
		return !t.Before(datefmt.StartOfWeek(now))
	case dto.DateRangeMonth:
		return datefmt.SameMonth(t, now)
	default:
		return true
	}
}

// DeriveInventoryView vista filtrada del inventario (estado, ubicación, búsqueda por ID y ubicación).
func DeriveInventoryView(items []entity.Container, f dto.InventoryFilters) []entity.Container {
	search := newSearch(f.Search)
	out := make([]entity.Container, 0, len(items))
	for _, c := range items {
		if !matchCategory(f.Status, c.Status) || !matchCategory(f.Location, c.Location) {
			continue
		}
		if !search(c.ID, c.Location) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// DeriveMovementView vista filtrada de movimientos. now fija el calendario de los rangos de fecha.
func DeriveMovementView(items []entity.Movement, f dto.MovementFilters, now time.Time) []entity.Movement {
	search := newSearch(f.Search)
	out := make([]entity.Movement, 0, len(items))
	for _, m := range items {
		if !matchCategory(f.Type, m.Type) || !inDateRange(m.Date, f.DateRange, now) {
			continue
		}
		if !search(m.ContainerID, m.Origin, m.Destination, m.ResponsibleUser) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// DeriveUserView vista filtrada de usuarios (rol, estado, búsqueda por nombre y email).
func DeriveUserView(items []entity.User, f dto.UserFilters) []entity.User {
	search := newSearch(f.Search)
	out := make([]entity.User, 0, len(items))
	for _, u := range items {
		if !matchCategory(f.Role, u.Role) || !matchCategory(f.Status, u.Status) {
			continue
		}
		if !search(u.Name, u.Email) {
			continue
		}
		out = append(out, u)
	}
	return out
}
