package domain

import (
	"strings"

	"golang.org/x/text/currency"
)

// NormalizeCurrencyCode trims and upper-cases a currency code.
func NormalizeCurrencyCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsWellFormedCurrency reports whether code is exactly three ASCII letters.
func IsWellFormedCurrency(code string) bool {
	if len(code) != 3 {
		return false
	}
	for i := 0; i < len(code); i++ {
		c := code[i] | 0x20 // fold to lower case
		if c < 'a' || c > 'z' {
			return false
		}
	}
	return true
}

// ParseISOCurrency returns the ISO 4217 unit for a well-formed, recognised code.
func ParseISOCurrency(code string) (currency.Unit, error) {
	return currency.ParseISO(NormalizeCurrencyCode(code))
}

// Scale is the number of minor-unit digits for code (2 for USD, 0 for JPY).
// Unknown codes default to 2.
func Scale(code string) int32 {
	unit, err := ParseISOCurrency(code)
	if err != nil {
		return 2
	}
	scale, _ := currency.Standard.Rounding(unit)
	return int32(scale)
}
