package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestTableIdent(t *testing.T) {
	assert.Equal(t, `"sales"`, TableIdent("sales"))
	assert.Equal(t, `"report"."sales"`, TableIdent("report.sales"))
	assert.Equal(t, `"ventas; DROP TABLE x"`, TableIdent("ventas; DROP TABLE x"))
}

func TestIsUndefinedTable(t *testing.T) {
	wrapped := fmt.Errorf("query: %w", &pgconn.PgError{Code: "42P01"})

	assert.True(t, isUndefinedTable(wrapped))
	assert.False(t, isUndefinedTable(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUndefinedTable(errors.New("42P01")))
}

func TestCreateTableSQL_UsaIdentificadorEscapado(t *testing.T) {
	sql := CreateTableSQL(TableIdent("report.sales"))

	assert.Contains(t, sql, `CREATE TABLE IF NOT EXISTS "report"."sales"`)
	assert.Contains(t, sql, "customer_reviews BIGINT")
}
