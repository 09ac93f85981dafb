package repository

import (
	"context"

	"github.com/jhoicas/store-report/internal/domain/entity"
)

// SalesRepository fuente de lectura de la tabla de ventas.
// Las implementaciones (CSV, PostgreSQL) devuelven la tabla completa de una sola vez.
type SalesRepository interface {
	// Load lee todas las filas. Cualquier error es fatal para la ejecución.
	Load(ctx context.Context) (*entity.SalesTable, error)
}
