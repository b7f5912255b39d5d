package console

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/canastillas-console/internal/application/dto"
	"github.com/jhoicas/canastillas-console/internal/application/ports"
	"github.com/jhoicas/canastillas-console/internal/domain"
	"github.com/jhoicas/canastillas-console/pkg/datefmt"
	"github.com/jhoicas/canastillas-console/pkg/logger"
)

// collectionScreen caché + filtros + vista de una pantalla CRUD.
//
// Orden de un ciclo: fetch → reemplazo de la caché → derivación → render.
// La caché solo cambia con una carga exitosa y vigente (generación más reciente).
type collectionScreen[T any, F any] struct {
	name     string
	loadErr  string
	log      *logger.Logger
	notifier ports.Notifier
	clock    datefmt.Clock
	fetch    func(ctx context.Context) ([]T, error)
	project  func(items []T, f F, now time.Time) dto.View

	mu      sync.Mutex
	tracker fetchTracker
	cache   []T
	loaded  bool
	filters F
	view    dto.View
}

func newCollectionScreen[T any, F any](
	name, loadErr string,
	opts Options,
	initial F,
	fetch func(ctx context.Context) ([]T, error),
	project func(items []T, f F, now time.Time) dto.View,
) *collectionScreen[T, F] {
	s := &collectionScreen[T, F]{
		name:     name,
		loadErr:  loadErr,
		log:      opts.Logger.Named(name),
		notifier: opts.Notifier,
		clock:    opts.Clock,
		fetch:    fetch,
		project:  project,
		cache:    []T{},
		filters:  initial,
	}
	s.view = project(s.cache, initial, s.clock.Now())
	return s
}

// Name nombre de la pantalla.
func (s *collectionScreen[T, F]) Name() string { return s.name }

// Refresh recarga la colección. Si falla, la caché anterior se conserva y se
// muestra el banner de error. El resultado de una carga superada por otra más
// reciente se descarta.
func (s *collectionScreen[T, F]) Refresh(ctx context.Context) error {
	s.mu.Lock()
	gen := s.tracker.begin()
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.tracker.done()
		s.mu.Unlock()
	}()

	items, err := s.fetch(ctx)

	s.mu.Lock()
	if !s.tracker.latest(gen) {
		s.mu.Unlock()
		s.log.Debug().Uint64("generation", gen).Err(err).Msg("carga obsoleta descartada")
		return nil
	}
	if err != nil {
		s.mu.Unlock()
		s.log.Warn().Err(err).Msg("no se pudo cargar la colección")
		s.notifier.Error(s.name, domain.UserMessage(err, s.loadErr))
		return fmt.Errorf("%s: cargar colección: %w", s.name, err)
	}
	s.cache = items
	s.loaded = true
	s.view = s.project(s.cache, s.filters, s.clock.Now())
	count := len(items)
	s.mu.Unlock()

	s.log.Debug().Int("items", count).Msg("colección actualizada")
	return nil
}

// SetFilters reemplaza el estado de filtros y recalcula la vista.
func (s *collectionScreen[T, F]) SetFilters(f F) dto.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = f
	s.view = s.project(s.cache, f, s.clock.Now())
	return s.view
}

// Filters estado de filtros actual.
func (s *collectionScreen[T, F]) Filters() F {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

// View vista renderizada actual.
func (s *collectionScreen[T, F]) View() dto.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// Busy hay al menos una carga en curso.
func (s *collectionScreen[T, F]) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.busy()
}

// Items copia de la caché.
func (s *collectionScreen[T, F]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]T(nil), s.cache...)
}

func (s *collectionScreen[T, F]) find(match func(T) bool) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.cache {
		if match(it) {
			return it, true
		}
	}
	var zero T
	return zero, false
}

func (s *collectionScreen[T, F]) status() (loaded bool, btn dto.RefreshButton, f F, v dto.View) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded, refreshButton(s.tracker.busy()), s.filters, s.view
}

func refreshButton(busy bool) dto.RefreshButton {
	if busy {
		return dto.RefreshButton{Disabled: true, Label: dto.RefreshLabelBusy}
	}
	return dto.RefreshButton{Label: dto.RefreshLabelIdle}
}
