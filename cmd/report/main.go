// report carga las ventas, imprime el resumen de métricas y genera los gráficos.
//
// Uso: go run ./cmd/report
// Sin configuración lee store_data.csv y escribe en visualizations/.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/jhoicas/store-report/internal/application/analytics"
	"github.com/jhoicas/store-report/internal/application/report"
	"github.com/jhoicas/store-report/internal/domain/repository"
	"github.com/jhoicas/store-report/internal/infrastructure/csvfile"
	infrapdf "github.com/jhoicas/store-report/internal/infrastructure/pdf"
	"github.com/jhoicas/store-report/internal/infrastructure/postgres"
	"github.com/jhoicas/store-report/internal/infrastructure/visualization"
	"github.com/jhoicas/store-report/internal/interfaces/console"
	"github.com/jhoicas/store-report/pkg/config"
	"github.com/jhoicas/store-report/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	}).WithRun(uuid.New().String())
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("source", cfg.Report.Source).
		Msg("iniciando reporte")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Fuente de datos
	var (
		repo   repository.SalesRepository
		source string
	)
	switch cfg.Report.Source {
	case config.SourcePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		repo = postgres.NewSalesRepository(pool, cfg.DB.Table)
		source = "postgres:" + cfg.DB.Table
	default:
		repo = csvfile.NewSalesCSVLoader(cfg.Report.InputPath, cfg.Report.InputEncoding)
		source = cfg.Report.InputPath
	}

	var pdfGen report.ReportPDFGenerator
	if cfg.Report.PDFEnabled {
		pdfGen = infrapdf.NewMarotoReportGenerator(cfg.App.Name)
	}

	printer := console.NewSummaryPrinter(os.Stdout)
	renderers := []report.ChartRenderer{
		{Name: "revenue_trend", Render: visualization.RenderRevenueTrend},
		{Name: "category_analysis", Render: visualization.RenderCategoryAnalysis},
		{Name: "review_analysis", Render: visualization.RenderReviewAnalysis},
		{Name: "sales_performance", Render: visualization.RenderSalesPerformance},
	}

	uc := report.NewRunReportUseCase(
		repo,
		analytics.NewMetricsUseCase(cfg.Report.TopProducts),
		printer,
		printer,
		renderers,
		pdfGen,
		cfg.Report.OutputDir,
		log,
	)

	res, err := uc.Run(ctx, source)
	if err != nil {
		stop()
		log.Fatal().Err(err).Msg("reporte abortado")
	}
	log.Info().
		Strs("charts", res.Charts).
		Str("pdf", res.PDFPath).
		Msg("reporte generado")
}
