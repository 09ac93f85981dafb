package visualization

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/jhoicas/store-report/internal/domain/entity"
)

// Umbrales de píxeles del color esperado: barras y tortas son áreas llenas,
// las líneas son trazos de 2px.
const (
	minFillPixels = 1000
	minLinePixels = 150
)

func row(day int, category, product, revenue string, units int64, rating string, reviews int64) entity.SalesRecord {
	r := entity.SalesRecord{
		Date:            time.Date(2024, time.January, day, 0, 0, 0, 0, time.UTC),
		Category:        category,
		Product:         product,
		Revenue:         decimal.RequireFromString(revenue),
		UnitsSold:       units,
		CustomerReviews: reviews,
	}
	if rating != "" {
		r.Rating = decimal.NewNullDecimal(decimal.RequireFromString(rating))
	}
	return r
}

// contentTable tres categorías (Clothing, Electronics, Home) en cinco fechas.
func contentTable() *entity.SalesTable {
	return &entity.SalesTable{Records: []entity.SalesRecord{
		row(1, "Electronics", "Laptop", "1200.50", 1, "4.5", 10),
		row(1, "Clothing", "T-Shirt", "45.00", 3, "4.0", 5),
		row(2, "Electronics", "Phone", "800.00", 2, "4.8", 20),
		row(3, "Home", "Lamp", "60.25", 2, "3.5", 3),
		row(3, "Clothing", "Jeans", "90.00", 1, "3.9", 7),
		row(4, "Electronics", "Laptop", "1100.00", 1, "4.6", 8),
		row(4, "Clothing", "T-Shirt", "90.00", 6, "4.2", 6),
		row(5, "Home", "Pillow", "30.00", 4, "4.1", 4),
	}}
}

func decodePNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	return img
}

// countColor cuenta los píxeles de rect cercanos a c (tolerancia por antialiasing).
func countColor(img image.Image, rect image.Rectangle, c drawing.Color) int {
	const tolerance = 40
	near := func(a, b uint8) bool {
		d := int(a) - int(b)
		return d >= -tolerance && d <= tolerance
	}
	n := 0
	rect = rect.Intersect(img.Bounds())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			p := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if p.A > 200 && near(p.R, c.R) && near(p.G, c.G) && near(p.B, c.B) {
				n++
			}
		}
	}
	return n
}

func TestRenderRevenueTrend_DibujaLaLinea(t *testing.T) {
	path, err := RenderRevenueTrend(contentTable(), t.TempDir())
	require.NoError(t, err)
	img := decodePNG(t, path)

	assert.Greater(t, countColor(img, img.Bounds(), colorBlue), minLinePixels)
}

func TestRenderCategoryAnalysis_BarrasYTorta(t *testing.T) {
	path, err := RenderCategoryAnalysis(contentTable(), t.TempDir())
	require.NoError(t, err)
	img := decodePNG(t, path)

	left := image.Rect(0, 0, panelWidth, panelHeight)
	right := image.Rect(panelWidth, 0, 2*panelWidth, panelHeight)
	// Electronics domina; Home es una barra baja pero visible
	assert.Greater(t, countColor(img, left, paletteColor(0)), minFillPixels)
	for i := 0; i < 3; i++ {
		assert.Greater(t, countColor(img, left, paletteColor(i)), minLinePixels, "barra %d", i)
		assert.Greater(t, countColor(img, right, paletteColor(i)), minLinePixels, "porción %d", i)
	}
}

func TestRenderReviewAnalysis_DosPaneles(t *testing.T) {
	path, err := RenderReviewAnalysis(contentTable(), t.TempDir())
	require.NoError(t, err)
	img := decodePNG(t, path)

	left := image.Rect(0, 0, panelWidth, panelHeight)
	right := image.Rect(panelWidth, 0, 2*panelWidth, panelHeight)
	assert.Greater(t, countColor(img, left, colorGreen), minFillPixels)
	assert.Greater(t, countColor(img, right, colorOrange), minFillPixels)
	assert.Zero(t, countColor(img, left, colorOrange))
}

func TestRenderSalesPerformance_RankingYLineas(t *testing.T) {
	path, err := RenderSalesPerformance(contentTable(), t.TempDir())
	require.NoError(t, err)
	img := decodePNG(t, path)

	upper := image.Rect(0, 0, performanceWidth, 500)
	lower := image.Rect(0, 500, performanceWidth, img.Bounds().Dy())
	assert.Greater(t, countColor(img, upper, colorPurple), minFillPixels)

	// Una línea por categoría, en orden alfabético; la leyenda sola no alcanza el umbral
	for i, category := range []string{"Clothing", "Electronics", "Home"} {
		assert.Greater(t, countColor(img, lower, paletteColor(i)), minLinePixels, category)
	}
}

func TestDateTicks_LimitaEtiquetas(t *testing.T) {
	dates := make([]time.Time, 40)
	for i := range dates {
		dates[i] = time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i)
	}
	rng := timeRange(dates)

	labeled := 0
	for _, tk := range dateTicks(dates, rng) {
		if tk.Label != "" {
			labeled++
		}
	}
	assert.LessOrEqual(t, labeled, maxDateTicks)
	assert.Positive(t, labeled)
}
