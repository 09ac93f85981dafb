// Package analytics contiene el cálculo de métricas de negocio sobre la tabla de ventas.
package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/store-report/internal/application/dto"
	"github.com/jhoicas/store-report/internal/domain/aggregate"
	"github.com/jhoicas/store-report/internal/domain/entity"
)

// DefaultTopProducts número de productos en el ranking por ingreso.
const DefaultTopProducts = 5

// MetricsUseCase calcula el resumen de métricas de la tabla de ventas.
//
// Sin efectos secundarios: solo lee la tabla. Las sumas de ingresos usan
// aritmética decimal exacta, por lo que el resultado no depende del orden de las filas.
type MetricsUseCase struct {
	topProducts int
}

// NewMetricsUseCase construye el caso de uso. topProducts <= 0 usa DefaultTopProducts.
func NewMetricsUseCase(topProducts int) *MetricsUseCase {
	if topProducts <= 0 {
		topProducts = DefaultTopProducts
	}
	return &MetricsUseCase{topProducts: topProducts}
}

// Calculate construye el MetricsSummaryDTO.
//
// Con la tabla vacía los totales son cero y AverageRating queda inválido;
// el caller decide cómo presentarlo.
func (uc *MetricsUseCase) Calculate(table *entity.SalesTable) *dto.MetricsSummaryDTO {
	rows := table.Rows()

	summary := &dto.MetricsSummaryDTO{
		RecordCount:  len(rows),
		TotalRevenue: decimal.Zero,
	}

	var rating aggregate.Mean
	for _, r := range rows {
		summary.TotalRevenue = summary.TotalRevenue.Add(r.Revenue)
		summary.TotalUnitsSold += r.UnitsSold
		summary.TotalReviews += r.CustomerReviews
		rating = aggregate.AddMean(rating, aggregate.MeanOf(r.Rating))
	}
	summary.AverageRating = rating.Value()

	summary.RevenueByCategory = RevenueByCategory(rows)
	summary.UnitsByCategory = aggregate.Group(rows, categoryKey, unitsSold, aggregate.AddInt)

	summary.TopProducts = TopProductsByRevenue(rows, uc.topProducts)

	return summary
}

// ── Agrupamientos compartidos con las visualizaciones ─────────────────────────

// RevenueByCategory suma ingresos por categoría (orden por categoría ascendente).
func RevenueByCategory(rows []entity.SalesRecord) []aggregate.Entry[decimal.Decimal] {
	return aggregate.Group(rows, categoryKey, revenue, aggregate.AddDecimal)
}

// RevenueByProduct suma ingresos por producto (orden por producto ascendente).
func RevenueByProduct(rows []entity.SalesRecord) []aggregate.Entry[decimal.Decimal] {
	return aggregate.Group(rows, productKey, revenue, aggregate.AddDecimal)
}

// TopProductsByRevenue devuelve los n productos con mayor ingreso, de mayor a menor.
func TopProductsByRevenue(rows []entity.SalesRecord, n int) []aggregate.Entry[decimal.Decimal] {
	products := RevenueByProduct(rows)
	aggregate.SortDesc(products, aggregate.LessDecimal)
	return aggregate.Top(products, n)
}

// RevenueByDate suma ingresos por fecha (orden cronológico).
func RevenueByDate(rows []entity.SalesRecord) []aggregate.Entry[decimal.Decimal] {
	return aggregate.Group(rows, dateKey, revenue, aggregate.AddDecimal)
}

// AverageRatingByCategory promedia la calificación por categoría.
// Las categorías sin ninguna calificación se omiten.
func AverageRatingByCategory(rows []entity.SalesRecord) []aggregate.Entry[decimal.Decimal] {
	means := aggregate.Group(rows, categoryKey, ratingMean, aggregate.AddMean)
	out := make([]aggregate.Entry[decimal.Decimal], 0, len(means))
	for _, m := range means {
		if v := m.Value.Value(); v.Valid {
			out = append(out, aggregate.Entry[decimal.Decimal]{Key: m.Key, Value: v.Decimal})
		}
	}
	return out
}

// ReviewsByProduct suma reseñas por producto.
func ReviewsByProduct(rows []entity.SalesRecord) []aggregate.Entry[int64] {
	return aggregate.Group(rows, productKey, customerReviews, aggregate.AddInt)
}

// Dates devuelve las fechas distintas de la tabla en orden cronológico.
func Dates(rows []entity.SalesRecord) []string {
	seen := make(map[string]struct{})
	var dates []string
	for _, r := range rows {
		k, ok := dateKey(r)
		if !ok {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		dates = append(dates, k)
	}
	sort.Strings(dates)
	return dates
}

// UnitsByDateAndCategory devuelve, por cada categoría, las unidades vendidas en
// cada fecha de Dates(rows). Las combinaciones sin ventas valen 0.
func UnitsByDateAndCategory(rows []entity.SalesRecord) (dates []string, series []aggregate.Entry[[]int64]) {
	dates = Dates(rows)
	index := make(map[string]int, len(dates))
	for i, d := range dates {
		index[d] = i
	}

	units := func(r entity.SalesRecord) []int64 {
		v := make([]int64, len(dates))
		if i, ok := index[r.DateKey()]; ok && !r.Date.IsZero() {
			v[i] = r.UnitsSold
		}
		return v
	}
	merge := func(a, b []int64) []int64 {
		for i := range a {
			a[i] += b[i]
		}
		return a
	}
	return dates, aggregate.Group(rows, categoryKey, units, merge)
}

func categoryKey(r entity.SalesRecord) (string, bool) { return r.Category, r.Category != "" }
func productKey(r entity.SalesRecord) (string, bool)  { return r.Product, r.Product != "" }
func dateKey(r entity.SalesRecord) (string, bool)     { return r.DateKey(), !r.Date.IsZero() }

func revenue(r entity.SalesRecord) decimal.Decimal { return r.Revenue }
func unitsSold(r entity.SalesRecord) int64         { return r.UnitsSold }
func customerReviews(r entity.SalesRecord) int64   { return r.CustomerReviews }
func ratingMean(r entity.SalesRecord) aggregate.Mean {
	return aggregate.MeanOf(r.Rating)
}
