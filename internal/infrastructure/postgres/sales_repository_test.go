package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/store-report/internal/domain"
)

func TestSalesImporter_SinFilasNoAbreTransaccion(t *testing.T) {
	// TxRunner sin pool: si Import intentara abrir la transacción, fallaría con panic.
	imp := NewSalesImporter(&TxRunner{}, "sales")

	n, err := imp.Import(context.Background(), nil, true)
	require.ErrorIs(t, err, domain.ErrEmptyTable)
	assert.Zero(t, n)
}

func TestNullIfEmpty(t *testing.T) {
	assert.Nil(t, nullIfEmpty(""))
	require.NotNil(t, nullIfEmpty("Books"))
	assert.Equal(t, "Books", *nullIfEmpty("Books"))
}
