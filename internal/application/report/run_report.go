// Package report orquesta una ejecución completa del reporte de ventas.
package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jhoicas/store-report/internal/application/dto"
	"github.com/jhoicas/store-report/internal/domain/repository"
	"github.com/jhoicas/store-report/pkg/logger"
)

const (
	// DefaultOutputDir directorio de salida si no se configura otro.
	DefaultOutputDir = "visualizations"
	// PDFFile nombre del PDF opcional dentro del directorio de salida.
	PDFFile = "report.pdf"
)

// RunResult lo que produjo una ejecución.
type RunResult struct {
	Summary *dto.MetricsSummaryDTO
	Charts  []string
	PDFPath string // vacío si el PDF está deshabilitado
}

// RunReportUseCase carga la tabla, calcula métricas, imprime el resumen y genera
// los gráficos, en ese orden. El primer error aborta el resto.
type RunReportUseCase struct {
	repo       repository.SalesRepository
	calculator MetricsCalculator
	printer    SummaryPrinter
	progress   ProgressNotifier
	renderers  []ChartRenderer
	pdf        ReportPDFGenerator
	outputDir  string
	log        *logger.Logger
}

// NewRunReportUseCase construye el caso de uso. pdf nil deshabilita el PDF;
// log nil no registra nada.
func NewRunReportUseCase(
	repo repository.SalesRepository,
	calculator MetricsCalculator,
	printer SummaryPrinter,
	progress ProgressNotifier,
	renderers []ChartRenderer,
	pdf ReportPDFGenerator,
	outputDir string,
	log *logger.Logger,
) *RunReportUseCase {
	if log == nil {
		log = logger.Nop()
	}
	if outputDir == "" {
		outputDir = DefaultOutputDir
	}
	return &RunReportUseCase{
		repo:       repo,
		calculator: calculator,
		printer:    printer,
		progress:   progress,
		renderers:  renderers,
		pdf:        pdf,
		outputDir:  outputDir,
		log:        log,
	}
}

// Run ejecuta el reporte completo.
func (uc *RunReportUseCase) Run(ctx context.Context, source string) (*RunResult, error) {
	// ── 1. Cargar ─────────────────────────────────────────────────────────────
	uc.progress.Loading(source)
	table, err := uc.repo.Load(ctx)
	if err != nil {
		uc.log.Error().Err(err).Str("source", source).Msg("falló la carga")
		return nil, fmt.Errorf("report: cargar: %w", err)
	}
	uc.progress.Loaded(table.Len())
	uc.log.Info().Str("source", table.Source).Int("records", table.Len()).Msg("tabla cargada")

	// ── 2. Métricas ───────────────────────────────────────────────────────────
	uc.progress.Calculating()
	summary := uc.calculator.Calculate(table)
	if !summary.AverageRating.Valid {
		uc.log.Warn().Msg("sin calificaciones: promedio no definido")
	}

	// ── 3. Resumen ────────────────────────────────────────────────────────────
	if err := uc.printer.Print(summary); err != nil {
		return nil, fmt.Errorf("report: imprimir resumen: %w", err)
	}

	// ── 4. Gráficos ───────────────────────────────────────────────────────────
	uc.progress.Rendering()
	result := &RunResult{Summary: summary}
	for _, r := range uc.renderers {
		path, err := r.Render(table, uc.outputDir)
		if err != nil {
			uc.log.Error().Err(err).Str("chart", r.Name).Str("dir", uc.outputDir).Msg("falló el gráfico")
			return nil, fmt.Errorf("report: gráfico %s: %w", r.Name, err)
		}
		uc.progress.Saved(path)
		uc.log.Debug().Str("chart", r.Name).Str("path", path).Msg("gráfico generado")
		result.Charts = append(result.Charts, path)
	}

	// ── 5. PDF (opcional) ─────────────────────────────────────────────────────
	if uc.pdf != nil {
		pdfBytes, err := uc.pdf.GenerateReportPDF(ctx, summary, result.Charts)
		if err != nil {
			return nil, fmt.Errorf("report: generar PDF: %w", err)
		}
		if err := os.MkdirAll(uc.outputDir, 0o755); err != nil {
			return nil, fmt.Errorf("report: crear directorio: %w", err)
		}
		path := filepath.Join(uc.outputDir, PDFFile)
		if err := os.WriteFile(path, pdfBytes, 0o644); err != nil {
			return nil, fmt.Errorf("report: escribir PDF: %w", err)
		}
		uc.progress.Saved(path)
		result.PDFPath = path
	}

	uc.progress.Completed(uc.outputDir)
	uc.log.Info().Int("charts", len(result.Charts)).Bool("pdf", result.PDFPath != "").Msg("reporte completo")
	return result, nil
}
