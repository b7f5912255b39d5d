package dto

import "github.com/shopspring/decimal"

// ChartView serie lista para el componente de gráficos (el dibujo es externo).
type ChartView struct {
	Title  string   `json:"title"`
	XAxis  string   `json:"x_axis"`
	YAxis  string   `json:"y_axis"`
	Labels []string `json:"labels"`
	Data   []int    `json:"data"`
}

// StatusShare porcentaje del total de canastillas en un estado (un decimal).
type StatusShare struct {
	Key     string          `json:"key"`
	Label   string          `json:"label"`
	Percent decimal.Decimal `json:"percent"`
}

// RecentMovementView tarjeta de movimiento reciente del dashboard.
type RecentMovementView struct {
	Kind   string `json:"kind"` // entrada | salida
	Title  string `json:"title"`
	Detail string `json:"detail"`
	User   string `json:"user"`
	Date   string `json:"date"`
}

// DashboardView estado renderizado del dashboard.
type DashboardView struct {
	Loaded          bool                 `json:"loaded"`
	RefreshButton   RefreshButton        `json:"refresh_button"`
	Counters        []Counter            `json:"counters"`
	Shares          []StatusShare        `json:"shares"`
	TrendChart      ChartView            `json:"trend_chart"`
	BarChart        ChartView            `json:"bar_chart"`
	RecentMovements []RecentMovementView `json:"recent_movements"`
}
