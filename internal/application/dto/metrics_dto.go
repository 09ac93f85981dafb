package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/store-report/internal/domain/aggregate"
)

// MetricsSummaryDTO resumen de métricas de una ejecución.
// Se calcula una vez y no se modifica después.
type MetricsSummaryDTO struct {
	RecordCount    int                 `json:"record_count"`
	TotalRevenue   decimal.Decimal     `json:"total_revenue"`
	TotalUnitsSold int64               `json:"total_units_sold"`
	AverageRating  decimal.NullDecimal `json:"average_rating"` // inválido (null) si no hay calificaciones
	TotalReviews   int64               `json:"total_reviews"`

	// Agrupamientos ordenados por categoría ascendente
	RevenueByCategory []aggregate.Entry[decimal.Decimal] `json:"revenue_by_category"`
	UnitsByCategory   []aggregate.Entry[int64]           `json:"units_by_category"`

	// Top productos por ingreso, de mayor a menor
	TopProducts []aggregate.Entry[decimal.Decimal] `json:"top_products"`
}

// RevenueByCategoryMap expone los ingresos por categoría como mapa.
func (s *MetricsSummaryDTO) RevenueByCategoryMap() map[string]decimal.Decimal {
	return aggregate.ToMap(s.RevenueByCategory)
}

// UnitsByCategoryMap expone las unidades por categoría como mapa.
func (s *MetricsSummaryDTO) UnitsByCategoryMap() map[string]int64 {
	return aggregate.ToMap(s.UnitsByCategory)
}
