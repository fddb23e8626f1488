// Package currency renders DZD amounts the way the storefront displays
// them: thousands separators, no decimal places, trailing currency code.
package currency

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Code is the single currency the store operates in.
const Code = "DZD"

// Format renders an amount like "12,500 DZD".
func Format(amount decimal.Decimal) string {
	return group(amount.Round(0).String()) + " " + Code
}

// Parse reads strings like "12,500 DZD" or "12500" back into a number.
// Unparseable input yields zero.
func Parse(s string) decimal.Decimal {
	cleaned := strings.NewReplacer(Code, "", " ", "", " ", "", ",", "").Replace(s)
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Discount renders the percentage saved between the original and the
// discounted price, like "-10%". The caller guarantees original is
// non-zero.
func Discount(original, discounted decimal.Decimal) string {
	pct := original.Sub(discounted).
		Div(original).
		Mul(decimal.NewFromInt(100)).
		Round(0)
	return "-" + pct.String() + "%"
}

// group inserts a comma every three digits, working from the right.
func group(digits string) string {
	neg := strings.HasPrefix(digits, "-")
	digits = strings.TrimPrefix(digits, "-")

	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
