// Package pdf exporta a PDF la vista filtrada de una pantalla de la consola.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del reporte          │  Fecha de generación │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CONTADORES: Total | ... (de la vista filtrada)              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: una columna por celda de la vista                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: N registros / mensaje de vista vacía                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/canastillas-console/internal/application/dto"
	"github.com/jhoicas/canastillas-console/internal/application/ports"
	"github.com/jhoicas/canastillas-console/pkg/datefmt"
)

var _ ports.ViewReporter = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

const gridSize = 12

// columnLabels encabezados de la tabla por columna de la vista.
var columnLabels = map[string]string{
	"id_canastilla":           "ID Canastilla",
	"estado":                  "Estado",
	"ubicacion":               "Ubicación",
	"usuario_asignado":        "Usuario Asignado",
	"fecha_ultimo_movimiento": "Último Movimiento",
	"id_movimiento":           "ID",
	"tipo_movimiento":         "Tipo",
	"ubicacion_origen":        "Origen",
	"ubicacion_destino":       "Destino",
	"usuario_responsable":     "Responsable",
	"fecha_movimiento":        "Fecha",
	"id_usuario":              "ID",
	"nombre":                  "Nombre",
	"email":                   "Email",
	"rol":                     "Rol",
	"fecha_creacion":          "Creado",
	"ultimo_acceso":           "Último Acceso",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa ports.ViewReporter usando Maroto v2.
type MarotoPDFGenerator struct {
	clock datefmt.Clock
}

// NewMarotoPDFGenerator construye el generador. clock fecha el encabezado.
func NewMarotoPDFGenerator(clock datefmt.Clock) *MarotoPDFGenerator {
	if clock == nil {
		clock = datefmt.RealClock{}
	}
	return &MarotoPDFGenerator{clock: clock}
}

// ViewPDF genera el PDF de la vista y devuelve sus bytes.
func (g *MarotoPDFGenerator) ViewPDF(ctx context.Context, title string, view dto.View) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(title, g.clock.Now().Format(datefmt.DisplayLayout)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	if len(view.Counters) > 0 {
		m.AddRows(countersRow(view.Counters))
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	}

	if view.Empty || len(view.Rows) == 0 {
		m.AddRows(row.New(10).Add(col.New(gridSize).Add(
			text.New(view.EmptyMessage, props.Text{Align: align.Center, Top: 3, Color: colorGray}),
		)))
	} else {
		m.AddRows(tableHeaderRow(view.Rows[0].Cells))
		m.AddRows(tableRows(view.Rows)...)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(row.New(6).Add(col.New(gridSize).Add(
		text.New(fmt.Sprintf("%d registros", len(view.Rows)), props.Text{Size: 7, Align: align.Right, Color: colorGray}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(title, generated string) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 2}),
		),
		col.New(4).Add(
			text.New("Generado: "+generated, props.Text{Size: 8, Align: align.Right, Top: 4, Color: colorGray}),
		),
	)
}

func countersRow(counters []dto.Counter) core.Row {
	sizes := spread(len(counters))
	cols := make([]core.Col, 0, len(counters))
	for i, c := range counters {
		cols = append(cols, col.New(sizes[i]).Add(
			text.New(c.Label, props.Text{Size: 7, Align: align.Center, Color: colorGray, Top: 1}),
			text.New(fmt.Sprintf("%d", c.Value), props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Center, Top: 5}),
		))
	}
	return row.New(12).Add(cols...)
}

func tableHeaderRow(cells []dto.Cell) core.Row {
	sizes := spread(len(cells))
	cols := make([]core.Col, 0, len(cells))
	for i, c := range cells {
		label, ok := columnLabels[c.Column]
		if !ok {
			label = c.Column
		}
		cols = append(cols, col.New(sizes[i]).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2, Left: 1,
		})))
	}
	return row.New(8).Add(cols...)
}

func tableRows(rows []dto.Row) []core.Row {
	out := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		sizes := spread(len(r.Cells))
		cols := make([]core.Col, 0, len(r.Cells))
		for i, c := range r.Cells {
			cols = append(cols, col.New(sizes[i]).Add(text.New(c.Text, props.Text{Size: 7, Top: 1, Left: 1})))
		}
		out = append(out, row.New(6).Add(cols...))
	}
	return out
}

// spread reparte la grilla de 12 entre n columnas; las primeras reciben el sobrante.
func spread(n int) []int {
	if n <= 0 {
		return nil
	}
	sizes := make([]int, n)
	if n > gridSize {
		for i := range sizes {
			sizes[i] = 1
		}
		return sizes
	}
	base, rem := gridSize/n, gridSize%n
	for i := range sizes {
		sizes[i] = base
		if i < rem {
			sizes[i]++
		}
	}
	return sizes
}
