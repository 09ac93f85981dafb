package visualization

import (
	"image"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/jhoicas/store-report/internal/application/analytics"
	"github.com/jhoicas/store-report/internal/domain/entity"
	"github.com/jhoicas/store-report/pkg/numfmt"
)

const (
	topProductsTitle = "Top 5 productos por ingresos"
	unitsTrendTitle  = "Unidades vendidas por fecha y categoría"
	topPerformers    = 5
	performanceWidth = 1200
)

// RenderSalesPerformance apila el ranking de los 5 productos con más ingresos
// sobre la evolución de unidades vendidas por categoría. Escribe sales_performance.png.
func RenderSalesPerformance(table *entity.SalesTable, outputDir string) (string, error) {
	dir, err := ensureDir(outputDir)
	if err != nil {
		return "", err
	}
	rows := table.Rows()

	top := hbarPanel{
		title:  topProductsTitle,
		xLabel: "Ingresos ($)",
		color:  colorPurple,
		format: numfmt.MoneyFloat,
		width:  performanceWidth,
		height: 500,
	}
	for _, p := range analytics.TopProductsByRevenue(rows, topPerformers) {
		top.labels = append(top.labels, p.Key)
		top.values = append(top.values, p.Value.InexactFloat64())
	}
	upper, err := top.rasterize()
	if err != nil {
		return "", renderErr(SalesPerformanceFile, err)
	}

	lower, err := unitsTrend(rows)
	if err != nil {
		return "", renderErr(SalesPerformanceFile, err)
	}
	return writePNG(dir, SalesPerformanceFile, stacked(upper, lower))
}

// unitsTrend una línea por categoría sobre las fechas de la tabla; las fechas
// sin ventas de una categoría cuentan como 0.
func unitsTrend(rows []entity.SalesRecord) (image.Image, error) {
	const height = 600

	keys, series := analytics.UnitsByDateAndCategory(rows)
	if len(keys) == 0 || len(series) == 0 {
		return placeholder(performanceWidth, height, unitsTrendTitle)
	}
	dates, err := parseDates(keys)
	if err != nil {
		return nil, err
	}

	var all []float64
	lines := make([]chart.Series, 0, len(series))
	for i, s := range series {
		values := make([]float64, len(s.Value))
		for j, u := range s.Value {
			values[j] = float64(u)
		}
		all = append(all, values...)

		color := paletteColor(i)
		lines = append(lines, chart.TimeSeries{
			Name:    s.Key,
			XValues: dates,
			YValues: values,
			Style: chart.Style{
				StrokeColor: color,
				StrokeWidth: 2,
				DotColor:    color,
				DotWidth:    3,
			},
		})
	}

	xrange := timeRange(dates)
	graph := chart.Chart{
		Title:      unitsTrendTitle,
		TitleStyle: titleStyle(),
		Width:      performanceWidth,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 60, Left: 140, Right: 40, Bottom: 20}},
		XAxis: chart.XAxis{
			Name:  "Fecha",
			Range: xrange,
			Ticks: dateTicks(dates, xrange),
		},
		YAxis: chart.YAxis{
			Name:           "Unidades vendidas",
			Range:          valueRange(minOf(all), maxOf(all)),
			ValueFormatter: intTick,
		},
		Series: lines,
	}
	graph.Elements = []chart.Renderable{chart.LegendLeft(&graph)}
	return rasterize(graph)
}
