// Package numfmt formatea montos y cantidades con separador de miles
// (convención en-US: "1,234,567.89") usando golang.org/x/text.
package numfmt

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Int formatea un entero con separador de miles. Ej: 1234567 → "1,234,567".
func Int(n int64) string {
	return printer.Sprintf("%d", n)
}

// Money formatea un monto con dos decimales y prefijo "$". Ej: "-$1,234.50".
// El redondeo es decimal (half away from zero), sin pasar por float64.
func Money(d decimal.Decimal) string {
	sign := ""
	fixed := d.Round(2)
	if fixed.IsNegative() {
		sign = "-"
		fixed = fixed.Neg()
	}
	_, frac, _ := strings.Cut(fixed.StringFixed(2), ".")
	return sign + "$" + Int(fixed.IntPart()) + "." + frac
}

// MoneyFloat formatea un float64 (ejes de gráficos) como monto sin decimales si es entero.
func MoneyFloat(f float64) string {
	d := decimal.NewFromFloat(f)
	if d.Round(0).Equal(d) {
		return "$" + Int(d.IntPart())
	}
	return Money(d)
}

// Rating formatea una calificación promedio como "4.25/5.0"; "N/A" si no está definida.
func Rating(r decimal.NullDecimal) string {
	if !r.Valid {
		return "N/A"
	}
	return r.Decimal.StringFixed(2) + "/5.0"
}

// Percent formatea una proporción (0–1) como porcentaje con un decimal. Ej: 0.4567 → "45.7%".
func Percent(share decimal.Decimal) string {
	return share.Mul(decimal.NewFromInt(100)).StringFixed(1) + "%"
}
