package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Columnas esperadas en la fuente de ventas (CSV o tabla sales).
const (
	ColumnDate            = "date"
	ColumnCategory        = "category"
	ColumnProduct         = "product"
	ColumnRevenue         = "revenue"
	ColumnUnitsSold       = "units_sold"
	ColumnRating          = "rating"
	ColumnCustomerReviews = "customer_reviews"
)

// SalesColumns lista las columnas en el orden canónico del archivo.
var SalesColumns = []string{
	ColumnDate,
	ColumnCategory,
	ColumnProduct,
	ColumnRevenue,
	ColumnUnitsSold,
	ColumnRating,
	ColumnCustomerReviews,
}

// SalesRecord representa una fila de ventas. Inmutable una vez cargada.
type SalesRecord struct {
	Date            time.Time           // fecha calendario (medianoche UTC)
	Category        string              // vacío = sin categoría, no participa en agrupaciones por categoría
	Product         string              // vacío = sin producto
	Revenue         decimal.Decimal     // monto de la venta
	UnitsSold       int64               // unidades vendidas
	Rating          decimal.NullDecimal // calificación 0–5; inválida si la celda venía vacía
	CustomerReviews int64               // número de reseñas (vacío = 0)
}

// DateKey devuelve la fecha en formato YYYY-MM-DD; ordena cronológicamente como string.
func (r SalesRecord) DateKey() string {
	return r.Date.Format(time.DateOnly)
}

// SalesTable es el conjunto completo de filas cargadas para una ejecución.
// La posee el orquestador y los consumidores solo la leen.
type SalesTable struct {
	Source  string // ruta del archivo o etiqueta de la fuente
	Records []SalesRecord
}

// Len devuelve el número de filas; tolera una tabla nil.
func (t *SalesTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// Rows devuelve las filas; tolera una tabla nil.
func (t *SalesTable) Rows() []SalesRecord {
	if t == nil {
		return nil
	}
	return t.Records
}
