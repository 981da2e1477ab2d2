// Package pdf genera la versión imprimible del plan de pedido.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: PLAN DE PEDIDO + horizonte │ Fecha + meses base    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Producto | LT | FBA | Tránsito | ROP | Pedido │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL: SKUs y unidades a pedir                             │
//	│  FOOTER: definición de la cantidad a pedir                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

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

	"github.com/jhoicas/replenishment-planner/internal/application/dto"
	"github.com/jhoicas/replenishment-planner/internal/application/planning"
)

var _ planning.PlanPDFGenerator = (*MarotoPlanGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 248}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPlanGenerator implementa planning.PlanPDFGenerator usando Maroto v2.
type MarotoPlanGenerator struct{}

// NewMarotoPlanGenerator construye el generador.
func NewMarotoPlanGenerator() *MarotoPlanGenerator { return &MarotoPlanGenerator{} }

// GeneratePlanPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPlanGenerator) GeneratePlanPDF(
	_ context.Context,
	plan *dto.OrderPlanResponse,
	generatedAt time.Time,
) ([]byte, error) {
	if plan == nil {
		return nil, fmt.Errorf("pdf: plan nil")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Plan de pedido", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(plan, generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	if len(plan.Items) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Ningún SKU requiere pedido en este horizonte.", props.Text{
				Size: 9, Align: align.Center, Color: colorGray, Top: 3,
			}),
		)))
	}
	for _, r := range tableDetailRows(plan.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(plan.Items))

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(plan))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título + horizonte (izq) y fecha + meses base (der).
func headerRow(plan *dto.OrderPlanResponse, generatedAt time.Time) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("PLAN DE PEDIDO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Horizonte de cobertura: %d días", plan.HorizonDays), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Fecha: "+generatedAt.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New("Meses base: "+nonEmpty(strings.Join(plan.WindowMonths, ", "), "—"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla con fondo primario.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("SKU", 2, align.Left),
		h("Producto", 3, align.Left),
		h("LT (días)", 1, align.Center),
		h("FBA", 1, align.Right),
		h("Tránsito", 1, align.Right),
		h("Punto reorden", 2, align.Right),
		h("Pedido", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableDetailRows: una fila por SKU, filas alternas sombreadas.
func tableDetailRows(items []dto.ProductSummaryDTO) []core.Row {
	result := make([]core.Row, 0, len(items))
	for i, it := range items {
		r := row.New(7).Add(
			col.New(2).Add(text.New(it.Product.SKU, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(nonEmpty(it.Product.Name, "—"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(strconv.Itoa(it.Product.LeadTimeDays), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(formatThousands(it.Product.FBAStock), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(formatThousands(it.Product.InboundStock), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(it.Metrics.ReorderPoint.StringFixed(1), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(formatThousands(it.Metrics.OrderUnits), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
		)
		if i%2 == 1 {
			r = r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		result = append(result, r)
	}
	return result
}

// totalsRow: cantidad de SKUs y unidades totales a pedir.
func totalsRow(items []dto.ProductSummaryDTO) core.Row {
	units := 0
	for _, it := range items {
		units += it.Metrics.OrderUnits
	}
	return row.New(10).Add(
		col.New(6),
		col.New(4).Add(text.New(fmt.Sprintf("SKUs a pedir: %d   |   Unidades:", len(items)), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 2,
		})),
		col.New(2).Add(text.New(formatThousands(units), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 2,
		})),
	)
}

// footerRow: definición de la columna Pedido.
func footerRow(plan *dto.OrderPlanResponse) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New("Pedido: "+nonEmpty(plan.OrderQuantityLabel, planning.OrderQuantityLabel)+".", props.Text{
			Size: 7, Color: colorGray, Top: 1,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatThousands inserta puntos de miles.
// Ej: 25000 → "25.000", -1250 → "-1.250"
func formatThousands(n int) string {
	s := strconv.Itoa(n)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	l := len(s)
	if l <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, l+l/3)
	for i, c := range []byte(s) {
		if i > 0 && (l-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}
