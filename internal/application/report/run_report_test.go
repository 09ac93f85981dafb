package report_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/store-report/internal/application/dto"
	"github.com/jhoicas/store-report/internal/application/report"
	"github.com/jhoicas/store-report/internal/domain"
	"github.com/jhoicas/store-report/internal/domain/entity"
	"github.com/jhoicas/store-report/pkg/logger"
)

// ── Fakes ─────────────────────────────────────────────────────────────────────

type journal struct{ steps []string }

func (j *journal) add(s string) { j.steps = append(j.steps, s) }

type fakeRepo struct {
	j     *journal
	table *entity.SalesTable
	err   error
}

func (r *fakeRepo) Load(context.Context) (*entity.SalesTable, error) {
	r.j.add("load")
	return r.table, r.err
}

type fakeCalculator struct{ j *journal }

func (c *fakeCalculator) Calculate(t *entity.SalesTable) *dto.MetricsSummaryDTO {
	c.j.add("calculate")
	return &dto.MetricsSummaryDTO{RecordCount: t.Len(), TotalRevenue: decimal.NewFromInt(10)}
}

type fakePrinter struct {
	j   *journal
	err error
}

func (p *fakePrinter) Print(*dto.MetricsSummaryDTO) error {
	p.j.add("print")
	return p.err
}

type fakeProgress struct{ j *journal }

func (p *fakeProgress) Loading(string)   { p.j.add("progress:loading") }
func (p *fakeProgress) Loaded(int)       { p.j.add("progress:loaded") }
func (p *fakeProgress) Calculating()     {}
func (p *fakeProgress) Rendering()       {}
func (p *fakeProgress) Saved(string)     {}
func (p *fakeProgress) Completed(string) { p.j.add("progress:completed") }

type fakePDF struct {
	j     *journal
	paths []string
}

func (f *fakePDF) GenerateReportPDF(_ context.Context, _ *dto.MetricsSummaryDTO, paths []string) ([]byte, error) {
	f.j.add("pdf")
	f.paths = paths
	return []byte("%PDF-1.3 fake"), nil
}

func renderer(j *journal, name string, err error) report.ChartRenderer {
	return report.ChartRenderer{
		Name: name,
		Render: func(_ *entity.SalesTable, dir string) (string, error) {
			j.add("render:" + name)
			if err != nil {
				return "", err
			}
			return filepath.Join(dir, name+".png"), nil
		},
	}
}

func table() *entity.SalesTable {
	return &entity.SalesTable{Source: "fake", Records: make([]entity.SalesRecord, 3)}
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestRun_OrdenFijo(t *testing.T) {
	j := &journal{}
	uc := report.NewRunReportUseCase(
		&fakeRepo{j: j, table: table()},
		&fakeCalculator{j: j},
		&fakePrinter{j: j},
		&fakeProgress{j: j},
		[]report.ChartRenderer{renderer(j, "a", nil), renderer(j, "b", nil)},
		nil, "out", nil,
	)

	res, err := uc.Run(context.Background(), "store_data.csv")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"progress:loading", "load", "progress:loaded", "calculate", "print",
		"render:a", "render:b", "progress:completed",
	}, j.steps)
	assert.Equal(t, 3, res.Summary.RecordCount)
	assert.Equal(t, []string{filepath.Join("out", "a.png"), filepath.Join("out", "b.png")}, res.Charts)
	assert.Empty(t, res.PDFPath)
}

func TestRun_ErrorDeCargaAborta(t *testing.T) {
	j := &journal{}
	uc := report.NewRunReportUseCase(
		&fakeRepo{j: j, err: domain.ErrLoad},
		&fakeCalculator{j: j},
		&fakePrinter{j: j},
		&fakeProgress{j: j},
		[]report.ChartRenderer{renderer(j, "a", nil)},
		nil, "out", nil,
	)

	_, err := uc.Run(context.Background(), "x.csv")
	assert.ErrorIs(t, err, domain.ErrLoad)
	assert.Equal(t, []string{"progress:loading", "load"}, j.steps)
}

func TestRun_ErrorDeImpresionAborta(t *testing.T) {
	j := &journal{}
	uc := report.NewRunReportUseCase(
		&fakeRepo{j: j, table: table()},
		&fakeCalculator{j: j},
		&fakePrinter{j: j, err: errors.New("stdout cerrado")},
		&fakeProgress{j: j},
		[]report.ChartRenderer{renderer(j, "a", nil)},
		nil, "out", nil,
	)

	_, err := uc.Run(context.Background(), "x.csv")
	require.Error(t, err)
	assert.NotContains(t, j.steps, "render:a")
}

func TestRun_ErrorDeGraficoAbortaElResto(t *testing.T) {
	j := &journal{}
	uc := report.NewRunReportUseCase(
		&fakeRepo{j: j, table: table()},
		&fakeCalculator{j: j},
		&fakePrinter{j: j},
		&fakeProgress{j: j},
		[]report.ChartRenderer{
			renderer(j, "a", nil),
			renderer(j, "b", domain.ErrRender),
			renderer(j, "c", nil),
		},
		nil, "out", nil,
	)

	_, err := uc.Run(context.Background(), "x.csv")
	assert.ErrorIs(t, err, domain.ErrRender)
	assert.Contains(t, err.Error(), "gráfico b")
	assert.NotContains(t, j.steps, "render:c")
	assert.NotContains(t, j.steps, "progress:completed")
}

func TestRun_GeneraPDF(t *testing.T) {
	j := &journal{}
	dir := filepath.Join(t.TempDir(), "visualizations")
	pdf := &fakePDF{j: j}
	uc := report.NewRunReportUseCase(
		&fakeRepo{j: j, table: table()},
		&fakeCalculator{j: j},
		&fakePrinter{j: j},
		&fakeProgress{j: j},
		[]report.ChartRenderer{renderer(j, "a", nil)},
		pdf, dir, nil,
	)

	res, err := uc.Run(context.Background(), "x.csv")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, report.PDFFile), res.PDFPath)
	assert.Equal(t, res.Charts, pdf.paths)
	data, err := os.ReadFile(res.PDFPath)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3 fake", string(data))
	assert.Equal(t, []string{"render:a", "pdf", "progress:completed"}, j.steps[len(j.steps)-3:])
}

func TestNewRunReportUseCase_DirectorioPorDefecto(t *testing.T) {
	j := &journal{}
	uc := report.NewRunReportUseCase(
		&fakeRepo{j: j, table: table()},
		&fakeCalculator{j: j},
		&fakePrinter{j: j},
		&fakeProgress{j: j},
		[]report.ChartRenderer{renderer(j, "a", nil)},
		nil, "", nil,
	)

	res, err := uc.Run(context.Background(), "x.csv")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(report.DefaultOutputDir, "a.png"), res.Charts[0])
}

func TestRun_RegistraErrorDeGrafico(t *testing.T) {
	j := &journal{}
	var logs bytes.Buffer
	uc := report.NewRunReportUseCase(
		&fakeRepo{j: j, table: table()},
		&fakeCalculator{j: j},
		&fakePrinter{j: j},
		&fakeProgress{j: j},
		[]report.ChartRenderer{renderer(j, "category_analysis", domain.ErrRender)},
		nil, "out", logger.New(logger.Config{Env: "production", Level: "info", Out: &logs}),
	)

	_, err := uc.Run(context.Background(), "x.csv")
	require.ErrorIs(t, err, domain.ErrRender)

	out := logs.String()
	assert.Contains(t, out, `"level":"error"`)
	assert.Contains(t, out, `"chart":"category_analysis"`)
}
