// Package console es el motor de la consola de canastillas: por cada pantalla
// mantiene la colección en caché, compone filtros y búsqueda, proyecta la vista
// filtrada y media las altas, ediciones y eliminaciones a través del modal.
//
// Cada pantalla es un controlador explícito y único mutador de su estado.
// Las pantallas se comparten entre la superficie HTTP y el poller del dashboard,
// por eso su estado va protegido por un mutex que nunca se retiene durante una
// llamada de red.
package console

import (
	"time"

	"github.com/jhoicas/canastillas-console/internal/application/ports"
	"github.com/jhoicas/canastillas-console/pkg/datefmt"
	"github.com/jhoicas/canastillas-console/pkg/logger"
)

// Nombres de pantalla (también son el segmento de ruta en la superficie HTTP).
const (
	ScreenDashboard = "dashboard"
	ScreenInventory = "inventario"
	ScreenMovements = "movimientos"
	ScreenUsers     = "usuarios"
)

// DefaultRefreshDelay espera antes de recargar tras una mutación en inventario y movimientos.
const DefaultRefreshDelay = 500 * time.Millisecond

// Options dependencias comunes de las pantallas.
type Options struct {
	Notifier ports.Notifier
	Logger   *logger.Logger
	Clock    datefmt.Clock
	// RefreshDelay espera antes de la recarga posterior a una mutación
	// (inventario y movimientos; usuarios recarga de inmediato).
	RefreshDelay time.Duration
}

func (o Options) withDefaults() Options {
	if o.Notifier == nil {
		o.Notifier = discardNotifier{}
	}
	if o.Logger == nil {
		o.Logger = logger.Nop()
	}
	if o.Clock == nil {
		o.Clock = datefmt.RealClock{}
	}
	if o.RefreshDelay < 0 {
		o.RefreshDelay = 0
	}
	return o
}

type discardNotifier struct{}

func (discardNotifier) Success(string, string) {}
func (discardNotifier) Error(string, string)   {}

// fetchTracker generación de peticiones + cargas en curso. Se usa bajo el mutex de la pantalla.
// Solo se aplica el resultado de la petición más reciente emitida.
type fetchTracker struct {
	generation uint64
	inflight   int
}

func (t *fetchTracker) begin() uint64 {
	t.generation++
	t.inflight++
	return t.generation
}

func (t *fetchTracker) done() { t.inflight-- }

func (t *fetchTracker) latest(gen uint64) bool { return gen == t.generation }

func (t *fetchTracker) busy() bool { return t.inflight > 0 }
