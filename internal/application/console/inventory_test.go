package console_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/canastillas-console/internal/application/console"
	"github.com/jhoicas/canastillas-console/internal/application/dto"
	"github.com/jhoicas/canastillas-console/internal/domain"
	"github.com/jhoicas/canastillas-console/internal/domain/entity"
)

func newInventory(t *testing.T) (*console.InventoryScreen, *fixture) {
	t.Helper()
	f := newFixture(t)
	return console.NewInventoryScreen(f.client, f.opts), f
}

func TestInventory_EstadoInicialSinCargar(t *testing.T) {
	s, _ := newInventory(t)
	st := s.State()
	assert.False(t, st.Loaded)
	assert.True(t, st.View.Empty)
	assert.Equal(t, dto.RefreshLabelIdle, st.RefreshButton.Label)
	assert.Equal(t, string(console.StateClosed), st.Modal.State)
}

func TestInventory_DataVaciaRenderizaEstadoVacio(t *testing.T) {
	s, f := newInventory(t)
	f.srv.Override(http.MethodGet, "/api/inventario", http.StatusOK, `{"data": []}`)

	require.NoError(t, s.Refresh(context.Background()))
	st := s.State()
	assert.True(t, st.Loaded)
	assert.True(t, st.View.Empty)
	assert.Equal(t, console.EmptyInventory, st.View.EmptyMessage)
	assert.Zero(t, st.View.CounterValue(console.CounterTotal))
	assert.Zero(t, f.notes.count("error"))
}

func TestInventory_CuerpoVacioConservaLaCache(t *testing.T) {
	s, f := newInventory(t)
	f.srv.SeedContainers(entity.Container{ID: "A1", Status: entity.ContainerStatusAvailable, Location: "Planta"})
	require.NoError(t, s.Refresh(context.Background()))

	f.srv.Override(http.MethodGet, "/api/inventario", http.StatusOK, "")
	err := s.Refresh(context.Background())

	var empty *domain.EmptyResponseError
	require.True(t, errors.As(err, &empty))
	assert.Equal(t, 1, f.notes.count("error"))
	assert.Len(t, s.Items(), 1)
	assert.Equal(t, 1, s.View().CounterValue(console.CounterTotal))
	assert.False(t, s.Busy(), "el indicador de carga se limpia también en el fallo")
}

func TestInventory_AltaIdaYVuelta(t *testing.T) {
	s, f := newInventory(t)
	ctx := context.Background()
	require.NoError(t, s.Refresh(ctx))

	require.NoError(t, s.OpenCreate(ctx))
	assert.Equal(t, console.StateCreating, s.Phase())
	require.NoError(t, s.UpdateForm(dto.ContainerForm{ID: "Z9", Status: entity.ContainerStatusInTransit, Location: "Muelle"}))

	msg, err := s.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Canastilla Z9 agregada con éxito", msg)
	assert.Equal(t, msg, f.notes.last("success"))
	assert.Equal(t, console.StateClosed, s.Phase())
	assert.Equal(t, dto.ContainerForm{Status: entity.ContainerStatusAvailable}, s.CurrentForm())

	var found []entity.Container
	for _, c := range s.Items() {
		if c.ID == "Z9" {
			found = append(found, c)
		}
	}
	require.Len(t, found, 1)
	assert.Equal(t, entity.ContainerStatusInTransit, found[0].Status)
	assert.Equal(t, "Muelle", found[0].Location)
}

func TestInventory_EnvioFallidoConservaElFormulario(t *testing.T) {
	s, f := newInventory(t)
	ctx := context.Background()
	f.srv.SeedContainers(entity.Container{ID: "A1"})

	require.NoError(t, s.OpenCreate(ctx))
	form := dto.ContainerForm{ID: "A1", Status: entity.ContainerStatusAvailable, Location: "Planta"}
	require.NoError(t, s.UpdateForm(form))

	_, err := s.Submit(ctx)
	require.Error(t, err)
	assert.Equal(t, console.StateError, s.Phase())
	assert.Equal(t, form, s.CurrentForm())
	assert.Equal(t, "Ya existe una canastilla con este ID", f.notes.last("error"))
	assert.Equal(t, "Ya existe una canastilla con este ID", s.State().Modal.LastError)

	// reintento sin volver a escribir los datos
	form.ID = "A2"
	require.NoError(t, s.UpdateForm(form))
	_, err = s.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, console.StateClosed, s.Phase())
}

func TestInventory_ValidacionNoEnviaNada(t *testing.T) {
	s, f := newInventory(t)
	ctx := context.Background()
	require.NoError(t, s.OpenCreate(ctx))
	require.NoError(t, s.UpdateForm(dto.ContainerForm{ID: "", Status: entity.ContainerStatusAvailable, Location: "x"}))

	_, err := s.Submit(ctx)
	var valErr *domain.ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, console.StateCreating, s.Phase())
	assert.Empty(t, f.srv.Requests(http.MethodPost, "/api/canastilla/add"))
}

func TestInventory_EdicionDesdeLaCache(t *testing.T) {
	s, f := newInventory(t)
	ctx := context.Background()
	f.srv.SeedContainers(entity.Container{ID: "A1", Status: entity.ContainerStatusAvailable, Location: "Planta"})
	require.NoError(t, s.Refresh(ctx))

	require.NoError(t, s.OpenEdit(ctx, "A1"))
	assert.Empty(t, f.srv.Requests(http.MethodGet, "/api/canastilla/A1"), "la edición se precarga desde la caché")
	st := s.State()
	assert.Equal(t, "Editar Canastilla", st.Modal.Title)
	assert.Equal(t, "Actualizar Canastilla", st.Modal.SubmitLabel)
	assert.Equal(t, "A1", st.Modal.EditingID)
	assert.Equal(t, "Planta", st.Form.Location)

	form := st.Form
	form.Location = "Bodega"
	require.NoError(t, s.UpdateForm(form))
	_, err := s.Submit(ctx)
	require.NoError(t, err)
	require.Len(t, f.srv.Requests(http.MethodPut, "/api/canastilla/A1"), 1)
	assert.Equal(t, "Bodega", s.Items()[0].Location)
}

func TestInventory_EdicionDeRegistroInexistente(t *testing.T) {
	s, f := newInventory(t)
	err := s.OpenEdit(context.Background(), "NOPE")
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, console.StateClosed, s.Phase())
	assert.Equal(t, "Error al cargar la canastilla para editar", f.notes.last("error"))
}

func TestInventory_EliminarConConfirmacion(t *testing.T) {
	s, f := newInventory(t)
	ctx := context.Background()
	f.srv.SeedContainers(entity.Container{ID: "A1"}, entity.Container{ID: "A2"})
	require.NoError(t, s.Refresh(ctx))

	// sin confirmar: cancelar deja el registro
	require.NoError(t, s.RequestDelete("A1"))
	assert.True(t, s.State().Modal.ConfirmOpen)
	require.NoError(t, s.Cancel())
	assert.Empty(t, f.srv.Requests(http.MethodDelete, "/api/canastilla/A1"))
	assert.Len(t, s.Items(), 2)

	// confirmado: DELETE y desaparece en la siguiente carga
	require.NoError(t, s.RequestDelete("A1"))
	msg, err := s.ConfirmDelete(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Canastilla A1 eliminada con éxito", msg)
	require.Len(t, f.srv.Requests(http.MethodDelete, "/api/canastilla/A1"), 1)
	assert.Equal(t, []string{"A2"}, ids(s.Items()))
}

func TestInventory_ConfirmarSinSolicitudEsValidationError(t *testing.T) {
	s, _ := newInventory(t)
	_, err := s.ConfirmDelete(context.Background())

	var valErr *domain.ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.ErrorIs(t, err, domain.ErrMissingConfirm)
}

func TestInventory_EliminacionFallidaCierraElDialogo(t *testing.T) {
	s, f := newInventory(t)
	ctx := context.Background()
	f.srv.SeedContainers(entity.Container{ID: "A1"})
	f.srv.SeedMovements(entity.Movement{ContainerID: "A1", Type: entity.MovementTypeEntry})

	require.NoError(t, s.RequestDelete("A1"))
	_, err := s.ConfirmDelete(ctx)
	require.Error(t, err)
	assert.Equal(t, console.StateClosed, s.Phase())
	assert.Equal(t, "No se puede eliminar la canastilla porque tiene movimientos asociados", f.notes.last("error"))
}

func TestInventory_TransicionInvalida(t *testing.T) {
	s, _ := newInventory(t)
	_, err := s.Submit(context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.ErrorIs(t, s.UpdateForm(dto.ContainerForm{}), domain.ErrInvalidTransition)

	require.NoError(t, s.OpenCreate(context.Background()))
	assert.ErrorIs(t, s.OpenCreate(context.Background()), domain.ErrInvalidTransition)
	assert.ErrorIs(t, s.RequestDelete("A1"), domain.ErrInvalidTransition)
}

func TestInventory_FiltrosRecalculanLaVista(t *testing.T) {
	s, f := newInventory(t)
	f.srv.SeedContainers(sampleContainers()...)
	require.NoError(t, s.Refresh(context.Background()))

	v := s.SetFilters(dto.InventoryFilters{Status: entity.ContainerStatusAvailable, Location: dto.AllFilter, Search: "A1"})
	assert.Len(t, v.Rows, 3)
	assert.Equal(t, 3, v.CounterValue(console.CounterTotal), "los contadores salen de la vista filtrada")
	assert.Equal(t, 3, v.CounterValue(console.CounterAvailable))
	assert.ElementsMatch(t, []string{"Planta", "Bodega", "Bodega A1", "Taller"}, s.State().Options)
}

func TestInventory_CargaObsoletaSeDescarta(t *testing.T) {
	s, f := newInventory(t)
	ctx := context.Background()
	f.srv.SeedContainers(entity.Container{ID: "VIEJA"})

	entered, release := f.srv.Hold(http.MethodGet, "/api/inventario")
	done := make(chan error, 1)
	go func() { done <- s.Refresh(ctx) }()
	<-entered
	assert.True(t, s.Busy())
	assert.True(t, s.State().RefreshButton.Disabled)
	assert.Equal(t, dto.RefreshLabelBusy, s.State().RefreshButton.Label)

	// una segunda carga más reciente termina antes
	f.srv.SeedContainers(entity.Container{ID: "NUEVA"})
	require.NoError(t, s.Refresh(ctx))
	assert.ElementsMatch(t, []string{"NUEVA", "VIEJA"}, ids(s.Items()))

	release()
	require.NoError(t, <-done)
	assert.ElementsMatch(t, []string{"NUEVA", "VIEJA"}, ids(s.Items()), "la respuesta atrasada no pisa la más reciente")
	assert.False(t, s.Busy())
}
