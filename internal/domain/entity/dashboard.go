package entity

// Series serie etiquetada para un gráfico (tendencia o barras).
type Series struct {
	Labels []string `json:"labels"`
	Data   []int    `json:"data"`
}

// DashboardMetrics instantánea agregada de GET /dashboard/metrics.
// Se reemplaza completa en cada ciclo de consulta.
type DashboardMetrics struct {
	Total           int        `json:"total"`
	Available       int        `json:"disponibles"`
	InTransit       int        `json:"en_movimiento"`
	InRepair        int        `json:"en_mantenimiento"`
	BarChart        Series     `json:"grafico_barras"`
	TrendChart      Series     `json:"grafico_tendencia"`
	RecentMovements []Movement `json:"movimientos_recientes"`
}
