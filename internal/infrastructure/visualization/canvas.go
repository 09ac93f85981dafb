package visualization

import (
	"bytes"
	"image"
	"image/png"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// hbarTicks divisiones del eje X en las barras horizontales.
const hbarTicks = 5

// hbarPanel gráfico de barras horizontales dibujado directamente sobre el
// renderer de go-chart (la librería solo trae barras verticales).
// La primera barra queda arriba.
type hbarPanel struct {
	title  string
	xLabel string
	labels []string
	values []float64
	max    float64 // límite fijo del eje X; 0 = automático
	color  drawing.Color
	format func(float64) string
	width  int
	height int
}

func (p hbarPanel) rasterize() (image.Image, error) {
	if len(p.values) == 0 {
		return placeholder(p.width, p.height, p.title)
	}

	r, err := newCanvas(p.width, p.height, p.title)
	if err != nil {
		return nil, err
	}

	r.SetFontSize(10)
	labelW := 0
	for _, l := range p.labels {
		labelW = max(labelW, r.MeasureText(l).Width())
	}
	labelW = min(labelW, p.width/3)

	plot := chart.Box{Top: 60, Left: 30 + labelW, Right: p.width - 80, Bottom: p.height - 60}

	xmax := p.max
	if xmax <= 0 {
		xmax = maxOf(p.values) * 1.1
	}
	if xmax <= 0 {
		xmax = 1
	}
	scale := func(v float64) int {
		v = max(0, min(v, xmax))
		return plot.Left + int(v/xmax*float64(plot.Width()))
	}

	// Grilla y marcas del eje X
	r.SetFontSize(9)
	r.SetFontColor(colorAxis)
	for i := 0; i <= hbarTicks; i++ {
		v := xmax * float64(i) / hbarTicks
		x := scale(v)
		strokeLine(r, x, plot.Top, x, plot.Bottom, colorGrid)
		label := p.format(v)
		r.Text(label, x-r.MeasureText(label).Width()/2, plot.Bottom+16)
	}
	strokeLine(r, plot.Left, plot.Top, plot.Left, plot.Bottom, colorAxis)

	// Barras, etiquetas y valores
	slot := float64(plot.Height()) / float64(len(p.values))
	barH := max(1, int(slot*0.6))
	for i, v := range p.values {
		center := plot.Top + int(slot*float64(i)+slot/2)
		top := center - barH/2
		fillRect(r, chart.Box{Top: top, Left: plot.Left, Right: scale(v), Bottom: top + barH}, p.color)

		r.SetFontSize(10)
		r.SetFontColor(colorText)
		label := fitText(r, p.labels[i], labelW)
		lb := r.MeasureText(label)
		r.Text(label, plot.Left-8-lb.Width(), center+lb.Height()/2)

		r.SetFontSize(9)
		value := p.format(v)
		vb := r.MeasureText(value)
		r.Text(value, scale(v)+5, center+vb.Height()/2)
	}

	if p.xLabel != "" {
		r.SetFontSize(10)
		r.SetFontColor(colorText)
		xb := r.MeasureText(p.xLabel)
		r.Text(p.xLabel, plot.Left+(plot.Width()-xb.Width())/2, p.height-18)
	}

	return save(r)
}

// placeholder panel con título y la leyenda "Sin datos" (tabla vacía o valores no graficables).
func placeholder(width, height int, title string) (image.Image, error) {
	r, err := newCanvas(width, height, title)
	if err != nil {
		return nil, err
	}
	r.SetFontSize(12)
	r.SetFontColor(colorMuted)
	msg := "Sin datos"
	b := r.MeasureText(msg)
	r.Text(msg, (width-b.Width())/2, height/2)
	return save(r)
}

// newCanvas crea un renderer PNG con fondo blanco, fuente por defecto y título centrado.
func newCanvas(width, height int, title string) (chart.Renderer, error) {
	r, err := chart.PNG(width, height)
	if err != nil {
		return nil, err
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, err
	}
	r.SetFont(font)

	fillRect(r, chart.Box{Top: 0, Left: 0, Right: width, Bottom: height}, drawing.ColorWhite)

	r.SetFontSize(14)
	r.SetFontColor(colorText)
	tb := r.MeasureText(title)
	r.Text(title, (width-tb.Width())/2, 32)
	return r, nil
}

func save(r chart.Renderer) (image.Image, error) {
	var buf bytes.Buffer
	if err := r.Save(&buf); err != nil {
		return nil, err
	}
	return png.Decode(&buf)
}

func fillRect(r chart.Renderer, b chart.Box, c drawing.Color) {
	if b.Right <= b.Left || b.Bottom <= b.Top {
		return
	}
	r.SetFillColor(c)
	r.MoveTo(b.Left, b.Top)
	r.LineTo(b.Right, b.Top)
	r.LineTo(b.Right, b.Bottom)
	r.LineTo(b.Left, b.Bottom)
	r.Close()
	r.Fill()
}

func strokeLine(r chart.Renderer, x0, y0, x1, y1 int, c drawing.Color) {
	r.SetStrokeColor(c)
	r.SetStrokeWidth(1)
	r.MoveTo(x0, y0)
	r.LineTo(x1, y1)
	r.Stroke()
}

// fitText recorta s con "..." hasta que quepa en maxW píxeles.
func fitText(r chart.Renderer, s string, maxW int) string {
	if r.MeasureText(s).Width() <= maxW {
		return s
	}
	runes := []rune(s)
	for n := len(runes) - 1; n > 0; n-- {
		candidate := string(runes[:n]) + "..."
		if r.MeasureText(candidate).Width() <= maxW {
			return candidate
		}
	}
	return "..."
}
