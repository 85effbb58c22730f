package render

import (
	"math"
	"strconv"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when no currency code is configured, or the
// configured one is unknown.
const DefaultCurrency = "USD"

// ValidCurrency reports whether code is a known ISO 4217 currency.
func ValidCurrency(code string) bool {
	return money.GetCurrency(strings.ToUpper(strings.TrimSpace(code))) != nil
}

// Currency formats v with the currency symbol and grouped thousands,
// e.g. 1234.5 → "$1,234.50". Only the text changes; callers keep using v
// for scaling.
func Currency(v float64, code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if money.GetCurrency(code) == nil {
		code = DefaultCurrency
	}
	cur := *money.New(0, code).Currency()
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	// go-money counts in int64 minor units; beyond that, group by hand.
	if math.Abs(v)*math.Pow10(cur.Fraction) >= math.MaxInt64 {
		sign := ""
		if v < 0 {
			sign = "-"
		}
		amount := humanize.CommafWithDigits(math.Abs(v), cur.Fraction)
		out := strings.Replace(cur.Template, "1", amount, 1)
		return sign + strings.Replace(out, "$", cur.Grapheme, 1)
	}
	minor := decimal.NewFromFloat(v).Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}

// Number formats v with grouped thousands and at most two decimals.
func Number(v float64) string {
	return humanize.CommafWithDigits(v, 2)
}

// Format renders a value according to the hints' currency flag.
func (h Hints) Format(v float64) string {
	if h.Currency {
		return Currency(v, h.CurrencyCode)
	}
	return Number(v)
}
