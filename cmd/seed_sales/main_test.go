package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/store-report/internal/domain/entity"
)

func TestWriteSeedSQL(t *testing.T) {
	records := []entity.SalesRecord{
		{
			Date:            time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
			Category:        "Hogar",
			Product:         "Taza D'Luca",
			Revenue:         decimal.RequireFromString("12.50"),
			UnitsSold:       2,
			Rating:          decimal.NewNullDecimal(decimal.RequireFromString("4.5")),
			CustomerReviews: 3,
		},
		{Date: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), Revenue: decimal.Zero},
	}

	var buf bytes.Buffer
	require.NoError(t, writeSeedSQL(&buf, "sales", records, true))
	out := buf.String()

	assert.Contains(t, out, `CREATE TABLE IF NOT EXISTS "sales"`)
	assert.Contains(t, out, `TRUNCATE "sales";`)
	assert.Contains(t, out, `INSERT INTO "sales" (date, category, product, revenue, units_sold, rating, customer_reviews)`)
	assert.Contains(t, out, "VALUES ('2024-01-02', 'Hogar', 'Taza D''Luca', 12.5, 2, 4.5, 3);")
	assert.Less(t, strings.Index(out, "CREATE TABLE"), strings.Index(out, "INSERT INTO"))
	assert.Contains(t, out, "VALUES ('2024-01-03', NULL, NULL, 0, 0, NULL, 0);")
}

func TestWriteSeedSQL_EsquemaYSinTruncate(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeSeedSQL(&buf, "report.sales", nil, false))
	out := buf.String()

	assert.Contains(t, out, `CREATE TABLE IF NOT EXISTS "report"."sales"`)
	assert.NotContains(t, out, "TRUNCATE")
	assert.NotContains(t, out, "INSERT")
}
