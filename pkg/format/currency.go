// Package format provides display formatting for monetary values.
// Rounding happens here, at the display boundary, never inside the
// calculation engine.
package format

import (
	"strings"

	"github.com/shopspring/decimal"
)

// AED formats an amount as AED currency with thousands separators at the
// given number of fractional digits (e.g., "AED 1,234.5678").
func AED(amount decimal.Decimal, places int32) string {
	if amount.IsNegative() {
		return "-AED " + groupDigits(amount.Neg().StringFixed(places))
	}
	return "AED " + groupDigits(amount.StringFixed(places))
}

// Percent formats a fractional rate as a percentage string at the given
// number of fractional digits (e.g., 0.021 -> "2.10%").
func Percent(rate decimal.Decimal, places int32) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(places) + "%"
}

func groupDigits(fixed string) string {
	intPart := fixed
	decPart := ""
	if idx := strings.IndexByte(fixed, '.'); idx >= 0 {
		intPart = fixed[:idx]
		decPart = fixed[idx:]
	}

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	return intPart + decPart
}
