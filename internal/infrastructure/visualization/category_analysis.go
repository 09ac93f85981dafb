package visualization

import (
	"fmt"
	"image"

	"github.com/shopspring/decimal"
	"github.com/wcharczuk/go-chart/v2"

	"github.com/jhoicas/store-report/internal/application/analytics"
	"github.com/jhoicas/store-report/internal/domain/aggregate"
	"github.com/jhoicas/store-report/internal/domain/entity"
	"github.com/jhoicas/store-report/pkg/numfmt"
)

const (
	categoryBarTitle = "Ingresos por categoría"
	categoryPieTitle = "Distribución de ingresos por categoría"
	panelWidth       = 900
	panelHeight      = 540
)

// RenderCategoryAnalysis grafica los ingresos por categoría (de mayor a menor)
// como barras y como torta con porcentajes, lado a lado. Escribe category_analysis.png.
func RenderCategoryAnalysis(table *entity.SalesTable, outputDir string) (string, error) {
	dir, err := ensureDir(outputDir)
	if err != nil {
		return "", err
	}

	categories := analytics.RevenueByCategory(table.Rows())
	aggregate.SortDesc(categories, aggregate.LessDecimal)

	bars, err := categoryBars(categories)
	if err != nil {
		return "", renderErr(CategoryAnalysisFile, err)
	}
	pie, err := categoryPie(categories)
	if err != nil {
		return "", renderErr(CategoryAnalysisFile, err)
	}
	return writePNG(dir, CategoryAnalysisFile, sideBySide(bars, pie))
}

func categoryBars(categories []aggregate.Entry[decimal.Decimal]) (image.Image, error) {
	if len(categories) == 0 {
		return placeholder(panelWidth, panelHeight, categoryBarTitle)
	}

	values := make([]float64, len(categories))
	bars := make([]chart.Value, len(categories))
	for i, c := range categories {
		values[i] = c.Value.InexactFloat64()
		color := paletteColor(i)
		bars[i] = chart.Value{
			Label: c.Key,
			Value: values[i],
			Style: chart.Style{FillColor: color, StrokeColor: color},
		}
	}

	// Ancho útil aproximado descontando márgenes y eje Y
	slot := (panelWidth - 160) / len(bars)
	barWidth := max(1, min(120, slot*6/10))

	graph := chart.BarChart{
		Title:      categoryBarTitle,
		TitleStyle: titleStyle(),
		Width:      panelWidth,
		Height:     panelHeight,
		Background: chart.Style{Padding: chart.Box{Top: 60, Left: 20, Right: 20, Bottom: 20}},
		BarWidth:   barWidth,
		BarSpacing: max(1, slot-barWidth),
		YAxis: chart.YAxis{
			Name:           "Ingresos ($)",
			Range:          valueRange(minOf(values), maxOf(values)),
			ValueFormatter: moneyTick,
		},
		Bars: bars,
	}
	return rasterize(graph)
}

// categoryPie torta con etiquetas "Categoría (45.7%)". Solo se grafica con
// valores no negativos y total positivo; si no, panel sin datos.
func categoryPie(categories []aggregate.Entry[decimal.Decimal]) (image.Image, error) {
	total := decimal.Zero
	for _, c := range categories {
		if c.Value.IsNegative() {
			return placeholder(panelWidth, panelHeight, categoryPieTitle)
		}
		total = total.Add(c.Value)
	}
	if !total.IsPositive() {
		return placeholder(panelWidth, panelHeight, categoryPieTitle)
	}

	slices := make([]chart.Value, 0, len(categories))
	for i, c := range categories {
		color := paletteColor(i)
		slices = append(slices, chart.Value{
			Label: fmt.Sprintf("%s (%s)", c.Key, numfmt.Percent(c.Value.Div(total))),
			Value: c.Value.InexactFloat64(),
			Style: chart.Style{FillColor: color, StrokeColor: color},
		})
	}

	graph := chart.PieChart{
		Title:      categoryPieTitle,
		TitleStyle: titleStyle(),
		Width:      panelWidth,
		Height:     panelHeight,
		Background: chart.Style{Padding: chart.Box{Top: 60, Left: 20, Right: 20, Bottom: 20}},
		Values:     slices,
	}
	return rasterize(graph)
}
