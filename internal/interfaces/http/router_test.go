package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/canastillas-console/internal/application/console"
	"github.com/jhoicas/canastillas-console/internal/application/dto"
	"github.com/jhoicas/canastillas-console/internal/application/notify"
	"github.com/jhoicas/canastillas-console/internal/domain/entity"
	"github.com/jhoicas/canastillas-console/internal/infrastructure/apiclient"
	"github.com/jhoicas/canastillas-console/internal/infrastructure/apiclient/apitest"
	"github.com/jhoicas/canastillas-console/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/canastillas-console/internal/interfaces/http"
	"github.com/jhoicas/canastillas-console/pkg/datefmt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var testNow = time.Date(2026, 10, 15, 10, 0, 0, 0, time.FixedZone("COT", -5*3600))

type testConsole struct {
	app     *fiber.App
	srv     *apitest.Server
	deps    apphttp.RouterDeps
	notices *notify.Center
}

// buildTestApp arma la consola completa contra el backend falso.
func buildTestApp(t *testing.T) *testConsole {
	t.Helper()
	srv := apitest.New(t)
	srv.SetNow(func() time.Time { return testNow })
	client := apiclient.NewClient(srv.BaseURL(), 0, nil)

	clock := datefmt.FixedClock{At: testNow}
	center := notify.NewCenter(clock, 0, nil)
	opts := console.Options{Notifier: center, Clock: clock}

	deps := apphttp.RouterDeps{
		Inventory:     console.NewInventoryScreen(client, opts),
		Movements:     console.NewMovementsScreen(client, client, opts),
		Users:         console.NewUsersScreen(client, opts),
		Dashboard:     console.NewDashboardScreen(client, opts),
		Notifications: center,
		Reporter:      pdf.NewMarotoPDFGenerator(clock),
	}
	app := fiber.New()
	apphttp.Router(app, deps)
	return &testConsole{app: app, srv: srv, deps: deps, notices: center}
}

// do ejecuta la petición y devuelve estado y cuerpo.
func (tc *testConsole) do(t *testing.T, method, path string, body any) (int, []byte, *http.Response) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := tc.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out, resp
}

func decodeError(t *testing.T, body []byte) dto.ErrorResponse {
	t.Helper()
	var e dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &e))
	return e
}

type inventoryState = dto.ScreenState[dto.InventoryFilters, dto.ContainerForm]

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestInventory_RefreshYEstado(t *testing.T) {
	tc := buildTestApp(t)
	tc.srv.SeedContainers(
		entity.Container{ID: "A1", Status: entity.ContainerStatusAvailable, Location: "Planta"},
		entity.Container{ID: "A2", Status: entity.ContainerStatusInTransit, Location: "Bodega"},
	)

	status, body, resp := tc.do(t, http.MethodPost, "/console/inventario/refresh", nil)
	require.Equal(t, http.StatusOK, status, string(body))
	assert.NotEmpty(t, resp.Header.Get(apphttp.HeaderRequestID))

	var st inventoryState
	require.NoError(t, json.Unmarshal(body, &st))
	assert.True(t, st.Loaded)
	assert.Len(t, st.View.Rows, 2)
	assert.Equal(t, 2, st.View.CounterValue(console.CounterTotal))
	assert.ElementsMatch(t, []string{"Planta", "Bodega"}, st.Options)
}

func TestInventory_FiltrosPorBody(t *testing.T) {
	tc := buildTestApp(t)
	tc.srv.SeedContainers(
		entity.Container{ID: "A1", Status: entity.ContainerStatusAvailable, Location: "Planta"},
		entity.Container{ID: "A2", Status: entity.ContainerStatusInTransit, Location: "Bodega"},
	)
	require.NoError(t, tc.deps.Inventory.Refresh(context.Background()))

	status, body, _ := tc.do(t, http.MethodPut, "/console/inventario/filters", dto.InventoryFilters{Status: entity.ContainerStatusInTransit})
	require.Equal(t, http.StatusOK, status)

	var st inventoryState
	require.NoError(t, json.Unmarshal(body, &st))
	require.Len(t, st.View.Rows, 1)
	assert.Equal(t, entity.ContainerStatusInTransit, st.Filters.Status)
}

func TestInventory_AltaCompleta(t *testing.T) {
	tc := buildTestApp(t)

	status, _, _ := tc.do(t, http.MethodPost, "/console/inventario/modal/create", nil)
	require.Equal(t, http.StatusOK, status)

	form := dto.ContainerForm{ID: "Z9", Status: entity.ContainerStatusAvailable, Location: "Muelle"}
	status, _, _ = tc.do(t, http.MethodPut, "/console/inventario/modal/form", form)
	require.Equal(t, http.StatusOK, status)

	status, body, _ := tc.do(t, http.MethodPost, "/console/inventario/modal/submit", nil)
	require.Equal(t, http.StatusOK, status, string(body))

	var res dto.ScreenActionResponse[dto.InventoryFilters, dto.ContainerForm]
	require.NoError(t, json.Unmarshal(body, &res))
	assert.Equal(t, "Canastilla Z9 agregada con éxito", res.Message)
	assert.Equal(t, string(console.StateClosed), res.State.Modal.State)
	assert.Equal(t, 1, res.State.View.CounterValue(console.CounterTotal))

	notes := tc.notices.ActiveFor(console.ScreenInventory)
	require.Len(t, notes, 1)
	assert.Equal(t, res.Message, notes[0].Message)
}

func TestInventory_EnvioSinModalEsConflicto(t *testing.T) {
	tc := buildTestApp(t)

	status, body, _ := tc.do(t, http.MethodPost, "/console/inventario/modal/submit", nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INVALID_TRANSITION", decodeError(t, body).Code)
}

func TestInventory_ValidacionDevuelve400(t *testing.T) {
	tc := buildTestApp(t)
	tc.do(t, http.MethodPost, "/console/inventario/modal/create", nil)

	status, body, _ := tc.do(t, http.MethodPost, "/console/inventario/modal/submit", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", decodeError(t, body).Code)
	assert.Empty(t, tc.srv.Requests(http.MethodPost, "/api/canastilla/add"))
}

func TestInventory_CuerpoInvalido(t *testing.T) {
	tc := buildTestApp(t)
	tc.do(t, http.MethodPost, "/console/inventario/modal/create", nil)

	req := httptest.NewRequest(http.MethodPut, "/console/inventario/modal/form", strings.NewReader("{no-json"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := tc.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestInventory_EdicionDeRegistroInexistente(t *testing.T) {
	tc := buildTestApp(t)

	status, body, _ := tc.do(t, http.MethodPost, "/console/inventario/modal/edit/NOPE", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", decodeError(t, body).Code)
}

func TestInventory_EliminacionConConfirmacion(t *testing.T) {
	tc := buildTestApp(t)
	tc.srv.SeedContainers(entity.Container{ID: "A1", Status: entity.ContainerStatusAvailable, Location: "Planta"})

	status, body, _ := tc.do(t, http.MethodPost, "/console/inventario/delete/confirm", nil)
	assert.Equal(t, http.StatusBadRequest, status, "sin solicitud previa")
	assert.Equal(t, "VALIDATION", decodeError(t, body).Code)

	status, _, _ = tc.do(t, http.MethodPost, "/console/inventario/delete/A1", nil)
	require.Equal(t, http.StatusOK, status)

	status, body, _ = tc.do(t, http.MethodPost, "/console/inventario/delete/confirm", nil)
	require.Equal(t, http.StatusOK, status, string(body))
	var res dto.ScreenActionResponse[dto.InventoryFilters, dto.ContainerForm]
	require.NoError(t, json.Unmarshal(body, &res))
	assert.Equal(t, "Canastilla A1 eliminada con éxito", res.Message)
	assert.Zero(t, res.State.View.CounterValue(console.CounterTotal))
}

func TestInventory_FalloDelBackendEs502(t *testing.T) {
	tc := buildTestApp(t)
	tc.srv.Override(http.MethodGet, "/api/inventario", http.StatusInternalServerError, `{"error":"Error interno del servidor"}`)

	status, body, _ := tc.do(t, http.MethodPost, "/console/inventario/refresh", nil)
	assert.Equal(t, http.StatusBadGateway, status)
	e := decodeError(t, body)
	assert.Equal(t, "UPSTREAM", e.Code)
	assert.Equal(t, "Error interno del servidor", e.Message)

	notes := tc.notices.ActiveFor(console.ScreenInventory)
	require.Len(t, notes, 1)
	assert.Equal(t, dto.NotificationError, notes[0].Kind)
}

func TestMovimientos_EdicionConIDInvalido(t *testing.T) {
	tc := buildTestApp(t)

	status, body, _ := tc.do(t, http.MethodPost, "/console/movimientos/modal/edit/abc", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", decodeError(t, body).Code)
}

func TestUsuarios_Estado(t *testing.T) {
	tc := buildTestApp(t)
	tc.srv.SeedUsers(entity.User{ID: 1, Name: "Ana", Email: "ana@x.co", Role: entity.RoleAdministrator, Status: entity.UserStatusActive})
	require.NoError(t, tc.deps.Users.Refresh(context.Background()))

	status, body, _ := tc.do(t, http.MethodGet, "/console/usuarios", nil)
	require.Equal(t, http.StatusOK, status)
	var st dto.ScreenState[dto.UserFilters, dto.UserForm]
	require.NoError(t, json.Unmarshal(body, &st))
	assert.Equal(t, 1, st.View.CounterValue(console.CounterAdmins))
}

func TestDashboard_Refresh(t *testing.T) {
	tc := buildTestApp(t)
	tc.srv.SeedContainers(
		entity.Container{ID: "A1", Status: entity.ContainerStatusAvailable, Location: "Planta"},
		entity.Container{ID: "A2", Status: entity.ContainerStatusInRepair, Location: "Taller"},
	)

	status, body, _ := tc.do(t, http.MethodPost, "/console/dashboard/refresh", nil)
	require.Equal(t, http.StatusOK, status)
	var view dto.DashboardView
	require.NoError(t, json.Unmarshal(body, &view))
	assert.True(t, view.Loaded)
	assert.Equal(t, []string{"Planta", "Taller"}, view.BarChart.Labels)
}

func TestNotificaciones_ListarYDescartar(t *testing.T) {
	tc := buildTestApp(t)
	tc.notices.Error(console.ScreenUsers, "No se pudo cargar la lista de usuarios")
	tc.notices.Success(console.ScreenInventory, "ok")

	status, body, _ := tc.do(t, http.MethodGet, "/console/notifications?screen=usuarios", nil)
	require.Equal(t, http.StatusOK, status)
	var notes []dto.Notification
	require.NoError(t, json.Unmarshal(body, &notes))
	require.Len(t, notes, 1)

	status, _, _ = tc.do(t, http.MethodDelete, "/console/notifications/"+notes[0].ID, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, _, _ = tc.do(t, http.MethodDelete, "/console/notifications/"+notes[0].ID, nil)
	assert.Equal(t, http.StatusNotFound, status)

	assert.Len(t, tc.notices.Active(), 1)
}

func TestExportacion_PDF(t *testing.T) {
	tc := buildTestApp(t)
	tc.srv.SeedContainers(entity.Container{ID: "A1", Status: entity.ContainerStatusAvailable, Location: "Planta"})
	require.NoError(t, tc.deps.Inventory.Refresh(context.Background()))

	status, body, resp := tc.do(t, http.MethodGet, "/console/inventario/export.pdf", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestRequestID_SeRespetaElDelCliente(t *testing.T) {
	tc := buildTestApp(t)
	req := httptest.NewRequest(http.MethodGet, "/console/dashboard", nil)
	req.Header.Set(apphttp.HeaderRequestID, "abc-123")
	resp, err := tc.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", resp.Header.Get(apphttp.HeaderRequestID))
}

func TestInventory_ConfirmacionConservaElIDTrasOtrasPeticiones(t *testing.T) {
	tc := buildTestApp(t)
	tc.srv.SeedContainers(
		entity.Container{ID: "A1", Status: entity.ContainerStatusAvailable, Location: "Planta"},
		entity.Container{ID: "B2", Status: entity.ContainerStatusAvailable, Location: "Planta"},
	)

	status, _, _ := tc.do(t, http.MethodPost, "/console/inventario/delete/A1", nil)
	require.Equal(t, http.StatusOK, status)

	// peticiones intermedias que reutilizan el buffer de fiber
	tc.do(t, http.MethodGet, "/console/inventario/xxxxxxxxxxxxxxxxxxxxxxxx", nil)
	tc.do(t, http.MethodGet, "/console/notifications?screen=zzzzzzzzzzzzzzzz", nil)

	status, body, _ := tc.do(t, http.MethodPost, "/console/inventario/delete/confirm", nil)
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Len(t, tc.srv.Requests(http.MethodDelete, "/api/canastilla/A1"), 1)
	assert.Equal(t, string(console.StateClosed), tc.deps.Inventory.State().Modal.State)
}

func TestInventory_EdicionConservaElIDTrasOtrasPeticiones(t *testing.T) {
	tc := buildTestApp(t)
	tc.srv.SeedContainers(entity.Container{ID: "A1", Status: entity.ContainerStatusAvailable, Location: "Planta"})
	require.NoError(t, tc.deps.Inventory.Refresh(context.Background()))

	status, _, _ := tc.do(t, http.MethodPost, "/console/inventario/modal/edit/A1", nil)
	require.Equal(t, http.StatusOK, status)

	tc.do(t, http.MethodGet, "/console/inventario/xxxxxxxxxxxxxxxxxxxxxxxx", nil)

	form := dto.ContainerForm{ID: "A1", Status: entity.ContainerStatusInTransit, Location: "Muelle"}
	status, _, _ = tc.do(t, http.MethodPut, "/console/inventario/modal/form", form)
	require.Equal(t, http.StatusOK, status)

	status, body, _ := tc.do(t, http.MethodPost, "/console/inventario/modal/submit", nil)
	require.Equal(t, http.StatusOK, status, string(body))

	reqs := tc.srv.Requests(http.MethodPut, "/api/canastilla/A1")
	require.Len(t, reqs, 1)
	assert.Equal(t, "Muelle", reqs[0].JSONBody()["ubicacion"])
}

func TestMovimientos_EdicionDeMovimientoInexistenteEs404(t *testing.T) {
	tc := buildTestApp(t)

	status, body, _ := tc.do(t, http.MethodPost, "/console/movimientos/modal/edit/99", nil)
	assert.Equal(t, http.StatusNotFound, status)
	e := decodeError(t, body)
	assert.Equal(t, "NOT_FOUND", e.Code)
	assert.Equal(t, "Movimiento no encontrado", e.Message)
}
