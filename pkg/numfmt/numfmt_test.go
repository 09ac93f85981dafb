package numfmt_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/store-report/pkg/numfmt"
)

func TestMoney(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"5", "$5.00"},
		{"999.999", "$1,000.00"},
		{"1234.5", "$1,234.50"},
		{"1234567.891", "$1,234,567.89"},
		{"-2500.125", "-$2,500.13"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, numfmt.Money(decimal.RequireFromString(tc.in)))
		})
	}
}

func TestInt(t *testing.T) {
	assert.Equal(t, "0", numfmt.Int(0))
	assert.Equal(t, "999", numfmt.Int(999))
	assert.Equal(t, "1,000", numfmt.Int(1000))
	assert.Equal(t, "12,345,678", numfmt.Int(12345678))
}

func TestMoneyFloat(t *testing.T) {
	assert.Equal(t, "$2,000", numfmt.MoneyFloat(2000))
	assert.Equal(t, "$12.50", numfmt.MoneyFloat(12.5))
}

func TestRating(t *testing.T) {
	assert.Equal(t, "N/A", numfmt.Rating(decimal.NullDecimal{}))
	assert.Equal(t, "4.25/5.0", numfmt.Rating(decimal.NewNullDecimal(decimal.RequireFromString("4.254"))))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "45.7%", numfmt.Percent(decimal.RequireFromString("0.4567")))
	assert.Equal(t, "100.0%", numfmt.Percent(decimal.NewFromInt(1)))
}
