// Package visualization genera las imágenes PNG del reporte con go-chart.
//
// Cada renderer recibe la tabla de ventas y el directorio de salida, calcula
// sus propias vistas agrupadas y escribe exactamente un archivo. Los paneles
// múltiples (barras + torta, dos rankings) se rasterizan por separado y se
// componen en una sola imagen.
package visualization

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/jhoicas/store-report/internal/domain"
	"github.com/jhoicas/store-report/pkg/numfmt"
)

// DefaultOutputDir directorio de salida cuando no se indica otro.
const DefaultOutputDir = "visualizations"

// Nombres fijos de los archivos generados.
const (
	RevenueTrendFile     = "revenue_trend.png"
	CategoryAnalysisFile = "category_analysis.png"
	ReviewAnalysisFile   = "review_analysis.png"
	SalesPerformanceFile = "sales_performance.png"
)

// maxDateTicks máximo de etiquetas de fecha en el eje X. Las etiquetas van
// horizontales: go-chart no reserva espacio para texto rotado en el eje X.
const maxDateTicks = 12

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorBlue   = drawing.ColorFromHex("1f77b4")
	colorOrange = drawing.ColorFromHex("ff7f0e")
	colorGreen  = drawing.ColorFromHex("2ca02c")
	colorPurple = drawing.ColorFromHex("9467bd")
	colorText   = drawing.ColorFromHex("333333")
	colorMuted  = drawing.ColorFromHex("999999")
	colorGrid   = drawing.ColorFromHex("e5e5e5")
	colorAxis   = drawing.ColorFromHex("888888")

	palette = []drawing.Color{
		colorBlue, colorOrange, colorGreen,
		drawing.ColorFromHex("d62728"), colorPurple, drawing.ColorFromHex("8c564b"),
		drawing.ColorFromHex("e377c2"), drawing.ColorFromHex("7f7f7f"),
		drawing.ColorFromHex("bcbd22"), drawing.ColorFromHex("17becf"),
	}
)

func paletteColor(i int) drawing.Color { return palette[i%len(palette)] }

// ── Salida ────────────────────────────────────────────────────────────────────

// ensureDir crea el directorio de salida si no existe (idempotente).
func ensureDir(dir string) (string, error) {
	if dir == "" {
		dir = DefaultOutputDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: crear directorio %s: %w", domain.ErrRender, dir, err)
	}
	return dir, nil
}

// writePNG codifica img en dir/name y devuelve la ruta.
func writePNG(dir, name string, img image.Image) (string, error) {
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", domain.ErrRender, name, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return "", fmt.Errorf("%w: %s: codificar PNG: %w", domain.ErrRender, name, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("%w: %s: %w", domain.ErrRender, name, err)
	}
	return path, nil
}

func renderErr(name string, err error) error {
	return fmt.Errorf("%w: %s: %w", domain.ErrRender, name, err)
}

// ── Rasterizado y composición ─────────────────────────────────────────────────

// renderable cualquier gráfico de go-chart (Chart, BarChart, PieChart).
type renderable interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

// rasterize renderiza un gráfico de go-chart a una imagen en memoria.
func rasterize(c renderable) (image.Image, error) {
	var buf bytes.Buffer
	if err := c.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return png.Decode(&buf)
}

// sideBySide compone paneles de izquierda a derecha.
func sideBySide(panels ...image.Image) image.Image {
	w, h := 0, 0
	for _, p := range panels {
		w += p.Bounds().Dx()
		h = max(h, p.Bounds().Dy())
	}
	dst := blank(w, h)
	x := 0
	for _, p := range panels {
		b := p.Bounds()
		draw.Draw(dst, image.Rect(x, 0, x+b.Dx(), b.Dy()), p, b.Min, draw.Over)
		x += b.Dx()
	}
	return dst
}

// stacked compone paneles de arriba hacia abajo.
func stacked(panels ...image.Image) image.Image {
	w, h := 0, 0
	for _, p := range panels {
		w = max(w, p.Bounds().Dx())
		h += p.Bounds().Dy()
	}
	dst := blank(w, h)
	y := 0
	for _, p := range panels {
		b := p.Bounds()
		draw.Draw(dst, image.Rect(0, y, b.Dx(), y+b.Dy()), p, b.Min, draw.Over)
		y += b.Dy()
	}
	return dst
}

func blank(w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	return dst
}

// ── Ejes ──────────────────────────────────────────────────────────────────────

// valueRange devuelve un rango no degenerado que incluye el cero,
// con 10% de margen superior. go-chart rechaza rangos de ancho cero.
func valueRange(lo, hi float64) *chart.ContinuousRange {
	lo = min(lo, 0)
	if hi <= lo {
		hi = lo + 1
	}
	return &chart.ContinuousRange{Min: lo, Max: hi + (hi-lo)*0.1}
}

// timeRange rango del eje temporal con medio día de margen a cada lado,
// de modo que una sola fecha también produce un rango válido.
func timeRange(dates []time.Time) *chart.ContinuousRange {
	pad := 12 * time.Hour
	return &chart.ContinuousRange{
		Min: timeToFloat(dates[0].Add(-pad)),
		Max: timeToFloat(dates[len(dates)-1].Add(pad)),
	}
}

// dateTicks etiqueta como máximo maxDateTicks fechas, más los extremos del rango sin etiqueta.
func dateTicks(dates []time.Time, rng *chart.ContinuousRange) []chart.Tick {
	step := (len(dates) + maxDateTicks - 1) / maxDateTicks
	ticks := []chart.Tick{{Value: rng.Min}}
	for i := 0; i < len(dates); i += step {
		ticks = append(ticks, chart.Tick{Value: timeToFloat(dates[i]), Label: dates[i].Format(time.DateOnly)})
	}
	return append(ticks, chart.Tick{Value: rng.Max})
}

// timeToFloat misma conversión que usa TimeSeries para sus valores X.
func timeToFloat(t time.Time) float64 { return float64(t.UnixNano()) }

func parseDates(keys []string) ([]time.Time, error) {
	out := make([]time.Time, len(keys))
	for i, k := range keys {
		t, err := time.Parse(time.DateOnly, k)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}

func moneyTick(v interface{}) string {
	if f, ok := v.(float64); ok {
		return numfmt.MoneyFloat(f)
	}
	return ""
}

func intTick(v interface{}) string {
	if f, ok := v.(float64); ok {
		return numfmt.Int(int64(f))
	}
	return ""
}

func maxOf(values []float64) float64 {
	m := 0.0
	for _, v := range values {
		m = max(m, v)
	}
	return m
}

func minOf(values []float64) float64 {
	m := 0.0
	for _, v := range values {
		m = min(m, v)
	}
	return m
}

// titleStyle estilo común de los títulos de go-chart.
func titleStyle() chart.Style {
	return chart.Style{FontSize: 14, FontColor: colorText}
}
