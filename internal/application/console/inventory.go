package console

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/canastillas-console/internal/application/dto"
	"github.com/jhoicas/canastillas-console/internal/application/ports"
	"github.com/jhoicas/canastillas-console/internal/domain"
	"github.com/jhoicas/canastillas-console/internal/domain/entity"
)

// InventoryScreen pantalla de inventario de canastillas.
// La edición se precarga desde la caché; la eliminación va al servidor con confirmación.
// El backend debe exponer PUT y DELETE /canastilla/{id}.
type InventoryScreen struct {
	*collectionScreen[entity.Container, dto.InventoryFilters]
	*Workflow[dto.ContainerForm]
}

// NewInventoryScreen construye la pantalla sobre el puerto de inventario.
func NewInventoryScreen(api ports.InventoryAPI, opts Options) *InventoryScreen {
	opts = opts.withDefaults()
	s := &InventoryScreen{}
	s.collectionScreen = newCollectionScreen(
		ScreenInventory,
		"No se pudo cargar el inventario. Verifica la conexión con el servidor.",
		opts,
		dto.InventoryFilters{Status: dto.AllFilter, Location: dto.AllFilter},
		api.ListContainers,
		func(items []entity.Container, f dto.InventoryFilters, now time.Time) dto.View {
			return RenderInventory(DeriveInventoryView(items, f), now.Location())
		},
	)
	s.Workflow = newWorkflow(workflowSpec[dto.ContainerForm]{
		screen:       ScreenInventory,
		createTitle:  "Nueva Canastilla",
		createSubmit: "Registrar Canastilla",
		editTitle:    "Editar Canastilla",
		editSubmit:   "Actualizar Canastilla",
		createdMsg:   "Canastilla registrada con éxito",
		updatedMsg:   "Canastilla actualizada con éxito",
		deletedMsg:   func(id string) string { return fmt.Sprintf("Canastilla %s eliminada con éxito", id) },
		submitErr:    "Error al procesar la canastilla",
		loadEditErr:  "Error al cargar la canastilla para editar",
		deleteErr:    "Error al eliminar la canastilla",
		blank: func() dto.ContainerForm {
			return dto.ContainerForm{Status: entity.ContainerStatusAvailable}
		},
		loadEdit: s.formFromCache,
		validate: func(f dto.ContainerForm, _ bool) error { return f.Validate() },
		create:   api.CreateContainer,
		update:   api.UpdateContainer,
		remove:   api.DeleteContainer,
		refresh:  s.Refresh,

		refreshDelay: opts.RefreshDelay,
	}, opts)
	return s
}

func (s *InventoryScreen) formFromCache(_ context.Context, id string) (dto.ContainerForm, error) {
	c, ok := s.find(func(c entity.Container) bool { return c.ID == id })
	if !ok {
		return dto.ContainerForm{}, fmt.Errorf("canastilla %s: %w", id, domain.ErrNotFound)
	}
	return dto.ContainerFormFrom(c), nil
}

// Locations ubicaciones presentes en la caché, para el selector del filtro.
func (s *InventoryScreen) Locations() []string {
	seen := map[string]bool{}
	var out []string
	for _, c := range s.Items() {
		if c.Location != "" && !seen[c.Location] {
			seen[c.Location] = true
			out = append(out, c.Location)
		}
	}
	return out
}

// State estado completo de la pantalla.
func (s *InventoryScreen) State() dto.ScreenState[dto.InventoryFilters, dto.ContainerForm] {
	st := screenState(s.collectionScreen, s.Workflow)
	st.Options = s.Locations()
	return st
}

func screenState[T, F, Form any](c *collectionScreen[T, F], w *Workflow[Form]) dto.ScreenState[F, Form] {
	st := dto.ScreenState[F, Form]{Screen: c.name}
	st.Loaded, st.RefreshButton, st.Filters, st.View = c.status()
	st.Modal, st.Form = w.modal()
	return st
}
