package visualization

import (
	"github.com/wcharczuk/go-chart/v2"

	"github.com/jhoicas/store-report/internal/application/analytics"
	"github.com/jhoicas/store-report/internal/domain/entity"
)

const revenueTrendTitle = "Tendencia diaria de ingresos"

// RenderRevenueTrend suma ingresos por fecha y los grafica como línea en orden
// cronológico. Escribe revenue_trend.png en outputDir.
func RenderRevenueTrend(table *entity.SalesTable, outputDir string) (string, error) {
	dir, err := ensureDir(outputDir)
	if err != nil {
		return "", err
	}

	daily := analytics.RevenueByDate(table.Rows())
	if len(daily) == 0 {
		img, err := placeholder(1200, 600, revenueTrendTitle)
		if err != nil {
			return "", renderErr(RevenueTrendFile, err)
		}
		return writePNG(dir, RevenueTrendFile, img)
	}

	keys := make([]string, len(daily))
	values := make([]float64, len(daily))
	for i, d := range daily {
		keys[i] = d.Key
		values[i] = d.Value.InexactFloat64()
	}
	dates, err := parseDates(keys)
	if err != nil {
		return "", renderErr(RevenueTrendFile, err)
	}

	xrange := timeRange(dates)
	graph := chart.Chart{
		Title:      revenueTrendTitle,
		TitleStyle: titleStyle(),
		Width:      1200,
		Height:     600,
		Background: chart.Style{Padding: chart.Box{Top: 60, Left: 20, Right: 40, Bottom: 20}},
		XAxis: chart.XAxis{
			Name:  "Fecha",
			Range: xrange,
			Ticks: dateTicks(dates, xrange),
		},
		YAxis: chart.YAxis{
			Name:           "Ingresos ($)",
			Range:          valueRange(minOf(values), maxOf(values)),
			ValueFormatter: moneyTick,
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Ingresos",
				XValues: dates,
				YValues: values,
				Style: chart.Style{
					StrokeColor: colorBlue,
					StrokeWidth: 2,
					DotColor:    colorBlue,
					DotWidth:    4,
				},
			},
		},
	}

	img, err := rasterize(graph)
	if err != nil {
		return "", renderErr(RevenueTrendFile, err)
	}
	return writePNG(dir, RevenueTrendFile, img)
}
