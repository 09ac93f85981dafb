package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/store-report/internal/domain"
	"github.com/jhoicas/store-report/internal/domain/entity"
	"github.com/jhoicas/store-report/internal/domain/repository"
)

var _ repository.SalesRepository = (*SalesRepo)(nil)

// SalesRepo fuente de ventas respaldada por una tabla PostgreSQL con las mismas
// columnas que el CSV. Los NUMERIC se leen como shopspring/decimal.
type SalesRepo struct {
	pool  *pgxpool.Pool
	table string
}

// NewSalesRepository construye el adaptador. table admite "schema.tabla".
func NewSalesRepository(pool *pgxpool.Pool, table string) *SalesRepo {
	return &SalesRepo{pool: pool, table: table}
}

// Load lee la tabla completa ordenada por fecha.
// Aplica la misma política de vacíos que el CSV: NULL numérico → 0, rating NULL → ausente.
func (r *SalesRepo) Load(ctx context.Context) (*entity.SalesTable, error) {
	query := fmt.Sprintf(`
	SELECT
	    date,
	    COALESCE(category, '')          AS category,
	    COALESCE(product,  '')          AS product,
	    COALESCE(revenue,  0)           AS revenue,
	    COALESCE(units_sold, 0)         AS units_sold,
	    rating,
	    COALESCE(customer_reviews, 0)   AS customer_reviews
	FROM %s
	ORDER BY date, id`, TableIdent(r.table))

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		if isUndefinedTable(err) {
			return nil, fmt.Errorf("%w: tabla %s inexistente: %w", domain.ErrLoad, r.table, err)
		}
		return nil, fmt.Errorf("sales.Load: %w", err)
	}
	defer rows.Close()

	table := &entity.SalesTable{Source: "postgres:" + r.table}
	for rows.Next() {
		var rec entity.SalesRecord
		if err := rows.Scan(
			&rec.Date,
			&rec.Category,
			&rec.Product,
			&rec.Revenue,
			&rec.UnitsSold,
			&rec.Rating,
			&rec.CustomerReviews,
		); err != nil {
			return nil, fmt.Errorf("sales.Load scan: %w", err)
		}
		table.Records = append(table.Records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sales.Load: %w", err)
	}
	return table, nil
}

// SalesImporter carga filas en la tabla de ventas (herramienta de seed).
type SalesImporter struct {
	tx    *TxRunner
	table string
}

// NewSalesImporter construye el importador.
func NewSalesImporter(tx *TxRunner, table string) *SalesImporter {
	return &SalesImporter{tx: tx, table: table}
}

// Import crea la tabla si no existe y copia las filas en una sola transacción.
// Con truncate=true vacía la tabla antes de copiar. Sin filas no toca la base.
func (i *SalesImporter) Import(ctx context.Context, records []entity.SalesRecord, truncate bool) (int64, error) {
	if len(records) == 0 {
		return 0, domain.ErrEmptyTable
	}
	ident := TableIdent(i.table)
	var copied int64

	err := i.tx.Run(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, CreateTableSQL(ident)); err != nil {
			return fmt.Errorf("sales.Import crear tabla: %w", err)
		}
		if truncate {
			if _, err := tx.Exec(ctx, "TRUNCATE "+ident); err != nil {
				return fmt.Errorf("sales.Import truncate: %w", err)
			}
		}

		n, err := tx.CopyFrom(ctx, identifier(i.table), entity.SalesColumns, pgx.CopyFromSlice(len(records), func(idx int) ([]any, error) {
			r := records[idx]
			return []any{
				r.Date,
				nullIfEmpty(r.Category),
				nullIfEmpty(r.Product),
				r.Revenue,
				r.UnitsSold,
				r.Rating,
				r.CustomerReviews,
			}, nil
		}))
		if err != nil {
			return fmt.Errorf("sales.Import copy: %w", err)
		}
		copied = n
		return nil
	})
	return copied, err
}

// CreateTableSQL DDL idempotente de la tabla de ventas; ident ya escapado (ver TableIdent).
func CreateTableSQL(ident string) string {
	return fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS %s (
	    id               BIGSERIAL PRIMARY KEY,
	    date             DATE    NOT NULL,
	    category         TEXT,
	    product          TEXT,
	    revenue          NUMERIC NOT NULL DEFAULT 0,
	    units_sold       BIGINT  NOT NULL DEFAULT 0,
	    rating           NUMERIC(3,2),
	    customer_reviews BIGINT  NOT NULL DEFAULT 0
	)`, ident)
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
