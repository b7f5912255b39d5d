// Package notify implementa la superficie de notificaciones de la consola:
// banners de éxito transitorios y banners de error descartables.
package notify

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/canastillas-console/internal/application/dto"
	"github.com/jhoicas/canastillas-console/internal/application/ports"
	"github.com/jhoicas/canastillas-console/pkg/datefmt"
	"github.com/jhoicas/canastillas-console/pkg/logger"
)

var _ ports.Notifier = (*Center)(nil)

// DefaultSuccessTTL tiempo visible de un banner de éxito.
const DefaultSuccessTTL = 3 * time.Second

// slots cada pantalla tiene un único banner de éxito y un único contenedor de error;
// uno nuevo reemplaza al anterior.
type slots struct {
	success *dto.Notification
	err     *dto.Notification
}

// Center sumidero de notificaciones compartido por todas las pantallas.
type Center struct {
	mu         sync.Mutex
	clock      datefmt.Clock
	successTTL time.Duration
	log        *logger.Logger
	byScreen   map[string]*slots
}

// NewCenter construye el centro. ttl <= 0 usa DefaultSuccessTTL.
func NewCenter(clock datefmt.Clock, ttl time.Duration, log *logger.Logger) *Center {
	if clock == nil {
		clock = datefmt.RealClock{}
	}
	if ttl <= 0 {
		ttl = DefaultSuccessTTL
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Center{
		clock:      clock,
		successTTL: ttl,
		log:        log.Named("notify"),
		byScreen:   map[string]*slots{},
	}
}

func (c *Center) slotsFor(screen string) *slots {
	s, ok := c.byScreen[screen]
	if !ok {
		s = &slots{}
		c.byScreen[screen] = s
	}
	return s
}

// Success muestra un banner de éxito que se oculta solo.
func (c *Center) Success(screen, message string) {
	n := c.newNotification(dto.NotificationSuccess, screen, message, false)
	c.mu.Lock()
	c.slotsFor(screen).success = &n
	c.mu.Unlock()
	c.log.Info().Str("screen", screen).Str("id", n.ID).Msg(message)
}

// Error muestra (o reemplaza) el banner de error de la pantalla hasta que se descarte.
func (c *Center) Error(screen, message string) {
	n := c.newNotification(dto.NotificationError, screen, message, true)
	c.mu.Lock()
	c.slotsFor(screen).err = &n
	c.mu.Unlock()
	c.log.Warn().Str("screen", screen).Str("id", n.ID).Msg(message)
}

func (c *Center) newNotification(kind, screen, message string, dismissible bool) dto.Notification {
	return dto.Notification{
		ID:          uuid.NewString(),
		Kind:        kind,
		Screen:      screen,
		Message:     message,
		CreatedAt:   c.clock.Now(),
		Dismissible: dismissible,
	}
}

// Dismiss cierra un banner por ID. Devuelve false si no existe o ya expiró.
func (c *Center) Dismiss(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, s := range c.byScreen {
		if s.err != nil && s.err.ID == id {
			s.err = nil
			return true
		}
		if s.success != nil && s.success.ID == id {
			s.success = nil
			return true
		}
	}
	return false
}

// Active banners visibles de todas las pantallas, del más antiguo al más reciente.
func (c *Center) Active() []dto.Notification {
	return c.collect(func(string) bool { return true })
}

// ActiveFor banners visibles de una pantalla.
func (c *Center) ActiveFor(screen string) []dto.Notification {
	return c.collect(func(s string) bool { return s == screen })
}

func (c *Center) collect(match func(string) bool) []dto.Notification {
	now := c.clock.Now()
	c.mu.Lock()
	defer c.mu.Unlock()

	out := []dto.Notification{}
	for screen, s := range c.byScreen {
		if !match(screen) {
			continue
		}
		if s.success != nil {
			if now.Sub(s.success.CreatedAt) < c.successTTL {
				out = append(out, *s.success)
			} else {
				s.success = nil
			}
		}
		if s.err != nil {
			out = append(out, *s.err)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}
