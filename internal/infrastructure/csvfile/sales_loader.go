// Package csvfile implementa la carga de la tabla de ventas desde un archivo CSV.
//
// Política de valores vacíos:
//   - revenue, units_sold, customer_reviews vacíos → 0
//   - rating vacío → ausente (no cuenta en promedios)
//   - category / product vacíos → la fila suma en totales pero no en esa agrupación
//   - date vacía o no reconocida → error
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/store-report/internal/domain"
	"github.com/jhoicas/store-report/internal/domain/entity"
	"github.com/jhoicas/store-report/internal/domain/repository"
)

// Codificaciones soportadas del archivo de entrada.
const (
	EncodingUTF8   = "utf-8"
	EncodingLatin1 = "iso-8859-1"
)

// dateLayouts formatos de fecha aceptados, en orden de prueba.
var dateLayouts = []string{
	time.DateOnly,
	time.RFC3339,
	time.DateTime,
	"2006/01/02",
	"01/02/2006",
	"2006-01-02T15:04:05",
}

var _ repository.SalesRepository = (*SalesCSVLoader)(nil)

// SalesCSVLoader lee la tabla de ventas desde un CSV con cabecera.
type SalesCSVLoader struct {
	path     string
	encoding string
}

// NewSalesCSVLoader construye el loader. encoding vacío equivale a UTF-8.
func NewSalesCSVLoader(path, encoding string) *SalesCSVLoader {
	return &SalesCSVLoader{path: path, encoding: encoding}
}

// Load abre el archivo y parsea todas las filas.
func (l *SalesCSVLoader) Load(ctx context.Context) (*entity.SalesTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("%w: abrir %s: %w", domain.ErrLoad, l.path, err)
	}
	defer f.Close()

	src, err := decoderFor(f, l.encoding)
	if err != nil {
		return nil, err
	}

	records, err := Parse(src)
	if err != nil {
		return nil, fmt.Errorf("csv %s: %w", l.path, err)
	}
	return &entity.SalesTable{Source: l.path, Records: records}, nil
}

// decoderFor envuelve el reader según la codificación configurada.
func decoderFor(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", EncodingUTF8, "utf8":
		return r, nil
	case EncodingLatin1, "latin1", "iso8859-1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("%w: codificación no soportada %q", domain.ErrLoad, encoding)
	}
}

// Parse lee un CSV con cabecera y devuelve las filas de ventas.
// Las columnas se localizan por nombre (sin distinguir mayúsculas ni espacios).
func Parse(r io.Reader) ([]entity.SalesRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	// Filas cortas: las celdas faltantes se tratan como vacías
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: archivo sin cabecera", domain.ErrLoad)
		}
		return nil, fmt.Errorf("%w: leer cabecera: %w", domain.ErrLoad, err)
	}

	idx, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var records []entity.SalesRecord
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: fila %d: %w", domain.ErrLoad, line, err)
		}

		rec, err := parseRow(row, idx)
		if err != nil {
			return nil, fmt.Errorf("fila %d: %w", line, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// columnIndex mapea cada columna requerida a su posición en la cabecera.
func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := idx[key]; !dup {
			idx[key] = i
		}
	}

	var missing []string
	for _, col := range entity.SalesColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrMissingColumn, strings.Join(missing, ", "))
	}
	return idx, nil
}

func parseRow(row []string, idx map[string]int) (entity.SalesRecord, error) {
	cell := func(col string) string {
		i := idx[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var rec entity.SalesRecord
	var err error

	if rec.Date, err = ParseDate(cell(entity.ColumnDate)); err != nil {
		return rec, err
	}
	rec.Category = cell(entity.ColumnCategory)
	rec.Product = cell(entity.ColumnProduct)

	if rec.Revenue, err = parseDecimal(entity.ColumnRevenue, cell(entity.ColumnRevenue)); err != nil {
		return rec, err
	}
	if rec.UnitsSold, err = parseInt(entity.ColumnUnitsSold, cell(entity.ColumnUnitsSold)); err != nil {
		return rec, err
	}
	if rec.CustomerReviews, err = parseInt(entity.ColumnCustomerReviews, cell(entity.ColumnCustomerReviews)); err != nil {
		return rec, err
	}

	if raw := cell(entity.ColumnRating); raw != "" {
		r, err := parseDecimal(entity.ColumnRating, raw)
		if err != nil {
			return rec, err
		}
		rec.Rating = decimal.NewNullDecimal(r)
	}
	return rec, nil
}

// ParseDate interpreta una fecha en cualquiera de los formatos aceptados
// y la trunca a fecha calendario en UTC.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: celda vacía", domain.ErrInvalidDate)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", domain.ErrInvalidDate, s)
}

func parseDecimal(col, s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s=%q", domain.ErrInvalidNumber, col, s)
	}
	return d, nil
}

var (
	minInt64 = decimal.NewFromInt(math.MinInt64)
	maxInt64 = decimal.NewFromInt(math.MaxInt64)
)

// parseInt acepta enteros escritos como "12" o "12.0" (exportaciones de hojas de cálculo).
// Valores fuera de int64 son error.
func parseInt(col, s string) (int64, error) {
	d, err := parseDecimal(col, s)
	if err != nil {
		return 0, err
	}
	if !d.IsInteger() {
		return 0, fmt.Errorf("%w: %s=%q no es entero", domain.ErrInvalidNumber, col, s)
	}
	if d.LessThan(minInt64) || d.GreaterThan(maxInt64) {
		return 0, fmt.Errorf("%w: %s=%q fuera de rango", domain.ErrInvalidNumber, col, s)
	}
	return d.IntPart(), nil
}
