package console

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/canastillas-console/internal/application/dto"
	"github.com/jhoicas/canastillas-console/internal/application/ports"
	"github.com/jhoicas/canastillas-console/internal/domain"
	"github.com/jhoicas/canastillas-console/internal/domain/entity"
	"github.com/jhoicas/canastillas-console/pkg/datefmt"
	"github.com/jhoicas/canastillas-console/pkg/logger"
)

// DefaultPollInterval ciclo de consulta del dashboard.
const DefaultPollInterval = 60 * time.Second

const dashboardLoadErr = "No se pudieron cargar los datos. Verifica la conexión con el servidor."

var hundred = decimal.NewFromInt(100)

// DashboardScreen métricas agregadas. La instantánea se reemplaza completa en cada ciclo.
type DashboardScreen struct {
	api      ports.DashboardAPI
	notifier ports.Notifier
	log      *logger.Logger
	clock    datefmt.Clock

	mu      sync.Mutex
	tracker fetchTracker
	metrics *entity.DashboardMetrics
	view    dto.DashboardView
}

// NewDashboardScreen construye el dashboard.
func NewDashboardScreen(api ports.DashboardAPI, opts Options) *DashboardScreen {
	opts = opts.withDefaults()
	d := &DashboardScreen{
		api:      api,
		notifier: opts.Notifier,
		log:      opts.Logger.Named(ScreenDashboard),
		clock:    opts.Clock,
	}
	d.view = RenderDashboard(entity.DashboardMetrics{}, d.clock.Now().Location())
	return d
}

// Refresh consulta /dashboard/metrics. Un fallo conserva la instantánea anterior.
func (d *DashboardScreen) Refresh(ctx context.Context) error {
	d.mu.Lock()
	gen := d.tracker.begin()
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		d.tracker.done()
		d.mu.Unlock()
	}()

	m, err := d.api.GetDashboardMetrics(ctx)

	d.mu.Lock()
	if !d.tracker.latest(gen) {
		d.mu.Unlock()
		d.log.Debug().Uint64("generation", gen).Msg("métricas obsoletas descartadas")
		return nil
	}
	if err == nil {
		d.metrics = m
		d.view = RenderDashboard(*m, d.clock.Now().Location())
		d.view.Loaded = true
	}
	d.mu.Unlock()

	if err != nil {
		d.log.Warn().Err(err).Msg("no se pudieron cargar las métricas")
		d.notifier.Error(ScreenDashboard, domain.UserMessage(err, dashboardLoadErr))
		return fmt.Errorf("%s: cargar métricas: %w", ScreenDashboard, err)
	}
	return nil
}

// Run carga de inmediato y luego cada interval hasta que ctx se cancele.
func (d *DashboardScreen) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	d.log.Info().Dur("interval", interval).Msg("consulta periódica iniciada")
	_ = d.Refresh(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			d.log.Info().Msg("consulta periódica detenida")
			return
		case <-ticker.C:
			_ = d.Refresh(ctx)
		}
	}
}

// View estado renderizado del dashboard.
func (d *DashboardScreen) View() dto.DashboardView {
	d.mu.Lock()
	defer d.mu.Unlock()
	v := d.view
	v.RefreshButton = refreshButton(d.tracker.busy())
	return v
}

// Metrics última instantánea aplicada (nil si nunca cargó).
func (d *DashboardScreen) Metrics() *entity.DashboardMetrics {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.metrics == nil {
		return nil
	}
	m := *d.metrics
	return &m
}

// RenderDashboard proyecta la instantánea de métricas.
func RenderDashboard(m entity.DashboardMetrics, loc *time.Location) dto.DashboardView {
	v := dto.DashboardView{
		Counters: []dto.Counter{
			{Key: CounterTotal, Label: "Total Canastillas", Value: m.Total},
			{Key: CounterAvailable, Label: "Disponibles", Value: m.Available},
			{Key: CounterInTransit, Label: "En Movimiento", Value: m.InTransit},
			{Key: CounterInRepair, Label: "En Mantenimiento", Value: m.InRepair},
		},
		Shares: []dto.StatusShare{
			{Key: CounterAvailable, Label: "Disponibles", Percent: share(m.Available, m.Total)},
			{Key: CounterInTransit, Label: "En Movimiento", Percent: share(m.InTransit, m.Total)},
			{Key: CounterInRepair, Label: "En Mantenimiento", Percent: share(m.InRepair, m.Total)},
		},
		TrendChart: dto.ChartView{
			Title:  "Movimientos mensuales",
			XAxis:  "Meses",
			YAxis:  "Cantidad de Movimientos",
			Labels: nonNil(m.TrendChart.Labels),
			Data:   nonNil(m.TrendChart.Data),
		},
		BarChart: dto.ChartView{
			Title:  "Cantidad de Canastillas",
			XAxis:  "Ubicaciones",
			YAxis:  "Cantidad de Canastillas",
			Labels: nonNil(m.BarChart.Labels),
			Data:   nonNil(m.BarChart.Data),
		},
		RecentMovements: make([]dto.RecentMovementView, 0, len(m.RecentMovements)),
	}
	for _, mv := range m.RecentMovements {
		text, badge := MovementTypeLabel(mv.Type)
		user := mv.ResponsibleUser
		if user == "" {
			user = "Usuario"
		}
		v.RecentMovements = append(v.RecentMovements, dto.RecentMovementView{
			Kind:   badge,
			Title:  fmt.Sprintf("%s de canastilla %s", text, mv.ContainerID),
			Detail: fmt.Sprintf("%s → %s", mv.Origin, mv.Destination),
			User:   "Por: " + user,
			Date:   datefmt.Format(string(mv.Date), loc),
		})
	}
	return v
}

// share porcentaje con un decimal; 0 cuando no hay canastillas.
func share(part, total int) decimal.Decimal {
	if total <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(part)).Mul(hundred).Div(decimal.NewFromInt(int64(total))).Round(1)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
