package console_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/canastillas-console/internal/application/console"
	"github.com/jhoicas/canastillas-console/internal/application/dto"
	"github.com/jhoicas/canastillas-console/internal/domain/entity"
	"github.com/jhoicas/canastillas-console/pkg/datefmt"
)

func TestRenderInventory_VacioEsEstadoPropio(t *testing.T) {
	v := console.RenderInventory(nil, bogota)
	assert.True(t, v.Empty)
	assert.Equal(t, console.EmptyInventory, v.EmptyMessage)
	assert.NotNil(t, v.Rows)
	for _, c := range v.Counters {
		assert.Zero(t, c.Value, c.Key)
	}
}

func TestRenderInventory_FilasContadoresYAcciones(t *testing.T) {
	items := []entity.Container{
		{ID: "A1", Status: entity.ContainerStatusAvailable, Location: "Planta", LastMovement: "2026-10-15 08:05:00"},
		{ID: "A2", Status: entity.ContainerStatusInRepair, Location: "Taller", LastMovement: "ayer"},
		{ID: "A3", Status: entity.ContainerStatusInRepair},
	}
	v := console.RenderInventory(items, bogota)

	require.Len(t, v.Rows, 3)
	assert.False(t, v.Empty)
	assert.Equal(t, 3, v.CounterValue(console.CounterTotal))
	assert.Equal(t, 1, v.CounterValue(console.CounterAvailable))
	assert.Equal(t, 0, v.CounterValue(console.CounterInTransit))
	assert.Equal(t, 2, v.CounterValue(console.CounterInRepair))

	row := v.Rows[0]
	assert.Equal(t, "disponible", row.Cells[1].Badge)
	assert.Equal(t, "15/10/2026 08:05", row.Cells[4].Text)
	assert.Equal(t, []dto.Action{{Kind: dto.ActionEdit, EntityID: "A1"}, {Kind: dto.ActionDelete, EntityID: "A1"}}, row.Actions)

	assert.Equal(t, datefmt.InvalidDate, v.Rows[1].Cells[4].Text)
	assert.Equal(t, datefmt.NotAvailable, v.Rows[2].Cells[4].Text)
	assert.Equal(t, "N/A", v.Rows[2].Cells[2].Text)
}

func TestRenderMovements_ContadorHoy(t *testing.T) {
	v := console.RenderMovements(sampleMovements(), testNow)
	assert.Equal(t, 6, v.CounterValue(console.CounterTotal))
	assert.Equal(t, 3, v.CounterValue(console.CounterEntries))
	assert.Equal(t, 3, v.CounterValue(console.CounterExits))
	assert.Equal(t, 1, v.CounterValue(console.CounterToday))

	assert.Equal(t, "Entrada", v.Rows[0].Cells[2].Text)
	assert.Equal(t, "entrada", v.Rows[0].Cells[2].Badge)
	assert.Equal(t, datefmt.InvalidDate, v.Rows[4].Cells[6].Text)
	assert.Equal(t, datefmt.NotAvailable, v.Rows[5].Cells[6].Text)
	assert.Equal(t, "N/A", v.Rows[5].Cells[5].Text)
}

func TestRenderMovements_Vacio(t *testing.T) {
	v := console.RenderMovements([]entity.Movement{}, testNow)
	assert.True(t, v.Empty)
	assert.Equal(t, console.EmptyMovements, v.EmptyMessage)
}

func TestRenderUsers_UltimoAccesoNunca(t *testing.T) {
	v := console.RenderUsers([]entity.User{
		{ID: 9, Name: "Ana", Email: "ana@x.co", Role: entity.RoleAdministrator, Status: entity.UserStatusActive, CreatedAt: "2026-01-02 10:00:00"},
		{ID: 10, Name: "Luis", Role: "Jefe de Bodega", Status: entity.UserStatusInactive, LastAccess: "2026-10-14 18:30:00"},
	}, bogota)

	require.Len(t, v.Rows, 2)
	assert.Equal(t, "9", v.Rows[0].ID)
	assert.Equal(t, datefmt.Never, v.Rows[0].Cells[6].Text)
	assert.Equal(t, "02/01/2026 10:00", v.Rows[0].Cells[5].Text)
	assert.Equal(t, "administrador", v.Rows[0].Cells[3].Badge)
	assert.Equal(t, "active", v.Rows[0].Cells[4].Badge)
	assert.Equal(t, "jefe-de-bodega", v.Rows[1].Cells[3].Badge)
	assert.Equal(t, "inactive", v.Rows[1].Cells[4].Badge)
	assert.Equal(t, 1, v.CounterValue(console.CounterAdmins))
	assert.Equal(t, 0, v.CounterValue(console.CounterOperators))
	assert.Equal(t, 1, v.CounterValue(console.CounterActiveUsers))
}
