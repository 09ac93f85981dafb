// Package pdf arma el reporte de ventas en PDF con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + fuente  │  Fecha de generación            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Ingresos / Unidades / Calificación / Reseñas      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Categoría | Ingresos | Unidades                     │
//	│  TABLA: # | Producto | Ingresos                             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  GRÁFICOS: un PNG por fila                                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	mimage "github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/store-report/internal/application/dto"
	"github.com/jhoicas/store-report/internal/domain/aggregate"
	"github.com/jhoicas/store-report/pkg/numfmt"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// chartRowHeight alto (mm) reservado para cada gráfico.
const chartRowHeight = 110

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa report.ReportPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	author string
	now    func() time.Time
}

// NewMarotoReportGenerator construye el generador; author va en los metadatos del PDF.
func NewMarotoReportGenerator(author string) *MarotoReportGenerator {
	return &MarotoReportGenerator{author: author, now: time.Now}
}

// GenerateReportPDF genera el PDF con el resumen y los gráficos indicados, en ese orden.
func (g *MarotoReportGenerator) GenerateReportPDF(
	ctx context.Context,
	summary *dto.MetricsSummaryDTO,
	chartPaths []string,
) ([]byte, error) {
	if summary == nil {
		return nil, fmt.Errorf("pdf: resumen nulo")
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("pdf: %w", err)
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de ventas", true).
		WithAuthor(g.author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(summary, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(totalsRow(summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionRow("INGRESOS Y UNIDADES POR CATEGORÍA"))
	m.AddRows(tableHeaderRow(
		tableCol{"Categoría", 6, align.Left},
		tableCol{"Ingresos", 3, align.Right},
		tableCol{"Unidades", 3, align.Right},
	))
	m.AddRows(categoryRows(summary)...)

	m.AddRows(row.New(4))
	m.AddRows(sectionRow("PRODUCTOS CON MÁS INGRESOS"))
	m.AddRows(tableHeaderRow(
		tableCol{"#", 1, align.Center},
		tableCol{"Producto", 8, align.Left},
		tableCol{"Ingresos", 3, align.Right},
	))
	m.AddRows(topProductRows(summary.TopProducts)...)

	for _, path := range chartPaths {
		m.AddRows(line.NewRow(3))
		m.AddRows(sectionRow(filepath.Base(path)))
		m.AddRows(mimage.NewFromFileRow(chartRowHeight, path, props.Rect{Center: true, Percent: 100}))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título y cantidad de registros (izq), fecha de generación (der).
func headerRow(s *dto.MetricsSummaryDTO, now time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("REPORTE DE VENTAS DE LA TIENDA", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(numfmt.Int(int64(s.RecordCount))+" registros analizados", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+now.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

// totalsRow: los cuatro totales en columnas iguales.
func totalsRow(s *dto.MetricsSummaryDTO) core.Row {
	cell := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Align: align.Center, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Center, Top: 6}),
		)
	}
	return row.New(14).Add(
		cell("Ingresos totales", numfmt.Money(s.TotalRevenue)),
		cell("Unidades vendidas", numfmt.Int(s.TotalUnitsSold)),
		cell("Calificación promedio", numfmt.Rating(s.AverageRating)),
		cell("Reseñas", numfmt.Int(s.TotalReviews)),
	)
}

func sectionRow(title string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
	))
}

type tableCol struct {
	label string
	size  int
	align align.Type
}

// tableHeaderRow: cabecera de tabla con fondo azul.
func tableHeaderRow(cols ...tableCol) core.Row {
	r := row.New(7)
	for _, c := range cols {
		r.Add(col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.align,
			Color: colorWhite, Top: 1.5, Left: 1, Right: 1,
		})))
	}
	return r.WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// categoryRows: una fila por categoría con ingresos y unidades.
func categoryRows(s *dto.MetricsSummaryDTO) []core.Row {
	units := s.UnitsByCategoryMap()
	rows := make([]core.Row, 0, len(s.RevenueByCategory))
	for _, c := range s.RevenueByCategory {
		rows = append(rows, row.New(6).Add(
			col.New(6).Add(text.New(c.Key, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(numfmt.Money(c.Value), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(numfmt.Int(units[c.Key]), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

// topProductRows: ranking con posición desde 1.
func topProductRows(top []aggregate.Entry[decimal.Decimal]) []core.Row {
	rows := make([]core.Row, 0, len(top))
	for i, p := range top {
		rows = append(rows, row.New(6).Add(
			col.New(1).Add(text.New(strconv.Itoa(i+1), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(8).Add(text.New(p.Key, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(numfmt.Money(p.Value), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}
