// Package pdf genera el reporte de existencias de calcetines.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + almacén      │  Fecha de generación        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FILTRO: color / comparación / rango / orden                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Color | % Algodón | Cantidad                         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Registros / TOTAL PARES                            │
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

	appsocks "github.com/jhoicas/socks-api/internal/application/socks"
	"github.com/jhoicas/socks-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorStripe  = &props.Color{Red: 235, Green: 241, Blue: 247}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ appsocks.ReportGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa socks.ReportGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	title string
	now   func() time.Time
}

// NewMarotoPDFGenerator construye el generador. title aparece en la cabecera (nombre de la app).
func NewMarotoPDFGenerator(title string) *MarotoPDFGenerator {
	if title == "" {
		title = "Almacén de calcetines"
	}
	return &MarotoPDFGenerator{title: title, now: time.Now}
}

// GenerateStockReport genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateStockReport(
	_ context.Context,
	filter entity.QuantityFilter,
	items []*entity.Socks,
	total int64,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de existencias", true).
		WithAuthor(g.title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.title, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(filterRow(filter))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(len(items), total))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(title string, at time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("REPORTE DE EXISTENCIAS", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(title, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Generado: "+at.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func filterRow(f entity.QuantityFilter) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("FILTRO APLICADO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(DescribeFilter(f), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Color", 6, align.Left),
		h("% Algodón", 3, align.Center),
		h("Cantidad", 3, align.Right),
	)
}

// tableDetailRows: una fila por registro, con fondo alterno.
func tableDetailRows(items []*entity.Socks) []core.Row {
	result := make([]core.Row, 0, len(items))
	for i, s := range items {
		r := row.New(7).Add(
			col.New(6).Add(text.New(s.Color, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(3).Add(text.New(strconv.FormatInt(s.CottonPercentage, 10)+"%", props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New(formatThousands(s.Quantity), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		)
		if i%2 == 1 {
			r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		result = append(result, r)
	}
	return result
}

func totalsRow(records int, total int64) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	return row.New(16).Add(
		col.New(6),
		col.New(3).Add(
			label("Registros:"),
			text.New("TOTAL PARES:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 6,
			}),
		),
		col.New(3).Add(
			text.New(strconv.Itoa(records), props.Text{Size: 9, Align: align.Right, Right: 1}),
			text.New(formatThousands(total), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 6,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// DescribeFilter texto legible del filtro. Ej: "color: red | algodón > 50 | orden: quantity".
func DescribeFilter(f entity.QuantityFilter) string {
	var parts []string
	if f.Color != nil {
		parts = append(parts, "color: "+*f.Color)
	}
	if cmp := f.EffectiveComparison(); cmp != entity.ComparisonNone {
		op := map[entity.Comparison]string{
			entity.ComparisonMoreThan: ">",
			entity.ComparisonLessThan: "<",
			entity.ComparisonEqual:    "=",
		}[cmp]
		parts = append(parts, fmt.Sprintf("algodón %s %d", op, *f.CottonPercentage))
	}
	if f.MinCotton != nil {
		parts = append(parts, fmt.Sprintf("algodón >= %d", *f.MinCotton))
	}
	if f.MaxCotton != nil {
		parts = append(parts, fmt.Sprintf("algodón <= %d", *f.MaxCotton))
	}
	if f.SortBy != entity.SortNone {
		parts = append(parts, "orden: "+string(f.SortBy))
	}
	if len(parts) == 0 {
		return "todos los registros"
	}
	return strings.Join(parts, " | ")
}

// formatThousands inserta puntos de miles. Ej: 1000000 → "1.000.000".
func formatThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	sign := ""
	if n < 0 {
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
