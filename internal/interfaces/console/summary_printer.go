// Package console presenta el reporte en texto: mensajes de progreso y el
// resumen de métricas. No calcula nada.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jhoicas/store-report/internal/application/dto"
	"github.com/jhoicas/store-report/pkg/numfmt"
)

const ruleWidth = 60

var (
	doubleRule = strings.Repeat("=", ruleWidth)
	singleRule = strings.Repeat("-", ruleWidth)
)

// SummaryPrinter escribe el progreso y el resumen en out (stdout por defecto).
type SummaryPrinter struct {
	out io.Writer
}

func NewSummaryPrinter(out io.Writer) *SummaryPrinter {
	if out == nil {
		out = os.Stdout
	}
	return &SummaryPrinter{out: out}
}

// ── Resumen ───────────────────────────────────────────────────────────────────

// Print escribe totales, desgloses por categoría y el ranking de productos.
// La salida depende solo del resumen, así que es idéntica entre ejecuciones.
func (p *SummaryPrinter) Print(s *dto.MetricsSummaryDTO) error {
	if s == nil {
		return fmt.Errorf("console: resumen nulo")
	}
	w := &lineWriter{out: p.out}

	w.line("")
	w.line(doubleRule)
	w.line("RESUMEN DE MÉTRICAS DE LA TIENDA")
	w.line(doubleRule)
	w.line("")
	w.line("Ingresos totales: %s", numfmt.Money(s.TotalRevenue))
	w.line("Unidades vendidas: %s", numfmt.Int(s.TotalUnitsSold))
	w.line("Calificación promedio: %s", numfmt.Rating(s.AverageRating))
	w.line("Reseñas de clientes: %s", numfmt.Int(s.TotalReviews))

	w.section("Ingresos por categoría:")
	for _, c := range s.RevenueByCategory {
		w.line("  %s: %s", c.Key, numfmt.Money(c.Value))
	}

	w.section("Unidades vendidas por categoría:")
	for _, c := range s.UnitsByCategory {
		w.line("  %s: %s unidades", c.Key, numfmt.Int(c.Value))
	}

	w.section(fmt.Sprintf("Top %d productos por ingresos:", len(s.TopProducts)))
	for i, prod := range s.TopProducts {
		w.line("  %d. %s: %s", i+1, prod.Key, numfmt.Money(prod.Value))
	}

	w.line("")
	w.line(doubleRule)
	return w.err
}

// ── Progreso ──────────────────────────────────────────────────────────────────

func (p *SummaryPrinter) Loading(source string) {
	fmt.Fprintf(p.out, "Cargando datos de ventas desde %s...\n", source)
}

func (p *SummaryPrinter) Loaded(records int) {
	fmt.Fprintf(p.out, "Se cargaron %s registros\n", numfmt.Int(int64(records)))
}

func (p *SummaryPrinter) Calculating() {
	fmt.Fprintln(p.out, "\nCalculando métricas...")
}

func (p *SummaryPrinter) Rendering() {
	fmt.Fprintln(p.out, "\nGenerando visualizaciones...")
}

func (p *SummaryPrinter) Saved(path string) {
	fmt.Fprintf(p.out, "Archivo guardado en %s\n", path)
}

func (p *SummaryPrinter) Completed(outputDir string) {
	fmt.Fprintf(p.out, "\n%s\n¡Análisis completo! Revise la carpeta '%s' para ver los gráficos.\n%s\n",
		doubleRule, outputDir, doubleRule)
}

// lineWriter conserva el primer error de escritura y descarta el resto.
type lineWriter struct {
	out io.Writer
	err error
}

func (w *lineWriter) line(format string, args ...any) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.out, format+"\n", args...)
}

func (w *lineWriter) section(title string) {
	w.line("")
	w.line(singleRule)
	w.line("%s", title)
	w.line(singleRule)
}
