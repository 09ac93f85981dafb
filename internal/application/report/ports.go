package report

import (
	"context"

	"github.com/jhoicas/store-report/internal/application/dto"
	"github.com/jhoicas/store-report/internal/domain/entity"
)

// MetricsCalculator calcula el resumen a partir de la tabla de ventas.
type MetricsCalculator interface {
	Calculate(table *entity.SalesTable) *dto.MetricsSummaryDTO
}

// SummaryPrinter presenta el resumen al analista.
type SummaryPrinter interface {
	Print(summary *dto.MetricsSummaryDTO) error
}

// ProgressNotifier recibe los mensajes de avance de cada fase.
type ProgressNotifier interface {
	Loading(source string)
	Loaded(records int)
	Calculating()
	Rendering()
	Saved(path string)
	Completed(outputDir string)
}

// ReportPDFGenerator arma el PDF del reporte con el resumen y los gráficos ya generados.
type ReportPDFGenerator interface {
	GenerateReportPDF(ctx context.Context, summary *dto.MetricsSummaryDTO, chartPaths []string) ([]byte, error)
}

// ChartRenderer un gráfico del reporte: escribe un archivo en outputDir y devuelve su ruta.
type ChartRenderer struct {
	Name   string
	Render func(table *entity.SalesTable, outputDir string) (string, error)
}
