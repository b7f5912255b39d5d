package console

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/jhoicas/canastillas-console/internal/application/dto"
	"github.com/jhoicas/canastillas-console/internal/application/ports"
	"github.com/jhoicas/canastillas-console/internal/domain"
	"github.com/jhoicas/canastillas-console/internal/domain/entity"
)

// MovementsScreen pantalla de movimientos. Al abrir el modal carga las
// canastillas seleccionables desde el inventario.
type MovementsScreen struct {
	*collectionScreen[entity.Movement, dto.MovementFilters]
	*Workflow[dto.MovementForm]

	inventory ports.InventoryAPI

	optMu   sync.Mutex
	options []string
}

// NewMovementsScreen construye la pantalla. inventory alimenta el selector de canastillas.
func NewMovementsScreen(api ports.MovementAPI, inventory ports.InventoryAPI, opts Options) *MovementsScreen {
	opts = opts.withDefaults()
	s := &MovementsScreen{inventory: inventory, options: []string{}}
	s.collectionScreen = newCollectionScreen(
		ScreenMovements,
		"No se pudieron cargar los movimientos. Verifica la conexión con el servidor.",
		opts,
		dto.MovementFilters{Type: dto.AllFilter, DateRange: dto.DateRangeAll},
		api.ListMovements,
		func(items []entity.Movement, f dto.MovementFilters, now time.Time) dto.View {
			return RenderMovements(DeriveMovementView(items, f, now), now)
		},
	)
	s.Workflow = newWorkflow(workflowSpec[dto.MovementForm]{
		screen:       ScreenMovements,
		createTitle:  "Nuevo Movimiento",
		createSubmit: "Registrar Movimiento",
		editTitle:    "Editar Movimiento",
		editSubmit:   "Actualizar Movimiento",
		createdMsg:   "Movimiento registrado con éxito",
		updatedMsg:   "Movimiento actualizado con éxito",
		deletedMsg:   func(string) string { return "Movimiento eliminado con éxito" },
		submitErr:    "Error al procesar el movimiento",
		loadEditErr:  "Error al cargar el movimiento para editar",
		deleteErr:    "Error al eliminar el movimiento",
		blank:        func() dto.MovementForm { return dto.MovementForm{Type: entity.MovementTypeEntry} },
		prepare:      s.loadOptions,
		checkID:      func(id string) error { _, err := parseID(id); return err },
		loadEdit: func(ctx context.Context, id string) (dto.MovementForm, error) {
			n, _ := parseID(id)
			m, err := api.GetMovement(ctx, n)
			if err != nil {
				return dto.MovementForm{}, err
			}
			return dto.MovementFormFrom(*m), nil
		},
		validate: func(f dto.MovementForm, _ bool) error { return f.Validate() },
		create:   api.CreateMovement,
		update: func(ctx context.Context, id string, f dto.MovementForm) (string, error) {
			n, _ := parseID(id)
			return api.UpdateMovement(ctx, n, f)
		},
		remove: func(ctx context.Context, id string) (string, error) {
			n, _ := parseID(id)
			return api.DeleteMovement(ctx, n)
		},
		refresh: s.Refresh,

		refreshDelay: opts.RefreshDelay,
	}, opts)
	return s
}

// loadOptions IDs de canastilla para el selector del formulario.
func (s *MovementsScreen) loadOptions(ctx context.Context) error {
	items, err := s.inventory.ListContainers(ctx)
	if err != nil {
		return err
	}
	ids := make([]string, 0, len(items))
	for _, c := range items {
		ids = append(ids, c.ID)
	}
	s.optMu.Lock()
	s.options = ids
	s.optMu.Unlock()
	return nil
}

// ContainerOptions canastillas seleccionables cargadas en la última apertura del modal.
func (s *MovementsScreen) ContainerOptions() []string {
	s.optMu.Lock()
	defer s.optMu.Unlock()
	return append([]string(nil), s.options...)
}

// State estado completo de la pantalla.
func (s *MovementsScreen) State() dto.ScreenState[dto.MovementFilters, dto.MovementForm] {
	st := screenState(s.collectionScreen, s.Workflow)
	st.Options = s.ContainerOptions()
	return st
}

// parseID IDs numéricos de movimientos y usuarios.
func parseID(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, domain.NewValidationError("id", "identificador inválido: "+raw)
	}
	return n, nil
}
