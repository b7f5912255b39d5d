package console

import (
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/canastillas-console/internal/application/dto"
	"github.com/jhoicas/canastillas-console/internal/domain/entity"
	"github.com/jhoicas/canastillas-console/pkg/datefmt"
)

// Mensajes del estado vacío.
const (
	EmptyInventory = "No se encontraron canastillas"
	EmptyMovements = "No hay movimientos registrados"
	EmptyUsers     = "No se encontraron usuarios"
)

// Claves de los contadores de cabecera.
const (
	CounterTotal       = "total"
	CounterAvailable   = "disponibles"
	CounterInTransit   = "transito"
	CounterInRepair    = "mantenimiento"
	CounterEntries     = "entradas"
	CounterExits       = "salidas"
	CounterToday       = "hoy"
	CounterAdmins      = "administradores"
	CounterOperators   = "operadores"
	CounterActiveUsers = "activos"
)

const missingText = "N/A"

func orNA(s string) string {
	if s == "" {
		return missingText
	}
	return s
}

// rowActions se regeneran en cada render ligadas al ID de la fila.
func rowActions(id string) []dto.Action {
	return []dto.Action{
		{Kind: dto.ActionEdit, EntityID: id},
		{Kind: dto.ActionDelete, EntityID: id},
	}
}

// newView arma la vista; una colección vacía es el estado con mensaje, no una tabla sin filas.
func newView(rows []dto.Row, counters []dto.Counter, emptyMessage string) dto.View {
	v := dto.View{Rows: rows, Counters: counters}
	if len(rows) == 0 {
		v.Rows = []dto.Row{}
		v.Empty = true
		v.EmptyMessage = emptyMessage
	}
	return v
}

// ContainerBadge clase visual del estado de una canastilla.
func ContainerBadge(status string) string {
	switch status {
	case entity.ContainerStatusAvailable:
		return "disponible"
	case entity.ContainerStatusInTransit:
		return "transito"
	case entity.ContainerStatusInRepair:
		return "mantenimiento"
	}
	return ""
}

// MovementTypeLabel texto y clase del tipo de movimiento.
func MovementTypeLabel(kind string) (text, badge string) {
	if kind == entity.MovementTypeEntry {
		return "Entrada", entity.MovementTypeEntry
	}
	return "Salida", entity.MovementTypeExit
}

func userStatusBadge(status string) string {
	if status == entity.UserStatusActive {
		return "active"
	}
	return "inactive"
}

func roleBadge(role string) string {
	return strings.ReplaceAll(strings.ToLower(role), " ", "-")
}

// RenderInventory filas y contadores de la vista filtrada de canastillas.
func RenderInventory(items []entity.Container, loc *time.Location) dto.View {
	var available, transit, repair int
	rows := make([]dto.Row, 0, len(items))
	for _, c := range items {
		switch c.Status {
		case entity.ContainerStatusAvailable:
			available++
		case entity.ContainerStatusInTransit:
			transit++
		case entity.ContainerStatusInRepair:
			repair++
		}
		rows = append(rows, dto.Row{
			ID: c.ID,
			Cells: []dto.Cell{
				{Column: "id_canastilla", Text: orNA(c.ID)},
				{Column: "estado", Text: orNA(c.Status), Badge: ContainerBadge(c.Status)},
				{Column: "ubicacion", Text: orNA(c.Location)},
				{Column: "usuario_asignado", Text: orNA(c.AssignedUser)},
				{Column: "fecha_ultimo_movimiento", Text: datefmt.Format(string(c.LastMovement), loc)},
			},
			Actions: rowActions(c.ID),
		})
	}
	return newView(rows, []dto.Counter{
		{Key: CounterTotal, Label: "Total Canastillas", Value: len(items)},
		{Key: CounterAvailable, Label: "Disponibles", Value: available},
		{Key: CounterInTransit, Label: "En Tránsito", Value: transit},
		{Key: CounterInRepair, Label: "En Reparación", Value: repair},
	}, EmptyInventory)
}

// RenderMovements filas y contadores de la vista filtrada de movimientos.
// now define el día del contador "hoy".
func RenderMovements(items []entity.Movement, now time.Time) dto.View {
	loc := now.Location()
	var entries, exits, today int
	rows := make([]dto.Row, 0, len(items))
	for _, m := range items {
		switch m.Type {
		case entity.MovementTypeEntry:
			entries++
		case entity.MovementTypeExit:
			exits++
		}
		if t, err := m.Date.Time(loc); err == nil && datefmt.SameDay(t, now) {
			today++
		}
		id := strconv.Itoa(m.ID)
		text, badge := MovementTypeLabel(m.Type)
		rows = append(rows, dto.Row{
			ID: id,
			Cells: []dto.Cell{
				{Column: "id_movimiento", Text: id},
				{Column: "id_canastilla", Text: orNA(m.ContainerID)},
				{Column: "tipo_movimiento", Text: text, Badge: badge},
				{Column: "ubicacion_origen", Text: orNA(m.Origin)},
				{Column: "ubicacion_destino", Text: orNA(m.Destination)},
				{Column: "usuario_responsable", Text: orNA(m.ResponsibleUser)},
				{Column: "fecha_movimiento", Text: datefmt.Format(string(m.Date), loc)},
			},
			Actions: rowActions(id),
		})
	}
	return newView(rows, []dto.Counter{
		{Key: CounterTotal, Label: "Total Movimientos", Value: len(items)},
		{Key: CounterEntries, Label: "Entradas", Value: entries},
		{Key: CounterExits, Label: "Salidas", Value: exits},
		{Key: CounterToday, Label: "Hoy", Value: today},
	}, EmptyMovements)
}

// RenderUsers filas y contadores de la vista filtrada de usuarios.
// Un último acceso ausente se muestra como "Nunca".
func RenderUsers(items []entity.User, loc *time.Location) dto.View {
	var admins, operators, active int
	rows := make([]dto.Row, 0, len(items))
	for _, u := range items {
		switch u.Role {
		case entity.RoleAdministrator:
			admins++
		case entity.RoleOperator:
			operators++
		}
		if u.Status == entity.UserStatusActive {
			active++
		}
		id := strconv.Itoa(u.ID)
		rows = append(rows, dto.Row{
			ID: id,
			Cells: []dto.Cell{
				{Column: "id_usuario", Text: id},
				{Column: "nombre", Text: orNA(u.Name)},
				{Column: "email", Text: orNA(u.Email)},
				{Column: "rol", Text: orNA(u.Role), Badge: roleBadge(u.Role)},
				{Column: "estado", Text: orNA(u.Status), Badge: userStatusBadge(u.Status)},
				{Column: "fecha_creacion", Text: datefmt.Format(string(u.CreatedAt), loc)},
				{Column: "ultimo_acceso", Text: datefmt.FormatOr(string(u.LastAccess), loc, datefmt.Never)},
			},
			Actions: rowActions(id),
		})
	}
	return newView(rows, []dto.Counter{
		{Key: CounterTotal, Label: "Total Usuarios", Value: len(items)},
		{Key: CounterAdmins, Label: "Administradores", Value: admins},
		{Key: CounterOperators, Label: "Operadores", Value: operators},
		{Key: CounterActiveUsers, Label: "Activos", Value: active},
	}, EmptyUsers)
}
