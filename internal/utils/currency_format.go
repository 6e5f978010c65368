package utils

import (
	"strings"

	"github.com/SscSPs/chatledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FormatWithCurrencyPrecision formats an amount with the correct precision for a given currency
// Example: amount 12.3456 with USD (precision 2) returns "12.35"
// Example: amount 12.3456 with JPY (precision 0) returns "12"
func FormatWithCurrencyPrecision(amount decimal.Decimal, currencyCode string) string {
	return amount.StringFixed(domain.Scale(currencyCode))
}

// FormatWithPrecision formats an amount with the given precision
// This is a convenience function when you only have the precision value
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.StringFixed(int32(precision))
}

// FormatMoney renders an amount followed by its currency code, e.g. "39.10 EUR".
func FormatMoney(amount decimal.Decimal, currencyCode string) string {
	return FormatWithCurrencyPrecision(amount, currencyCode) + " " + currencyCode
}

// FormatExactMoney is FormatMoney without rounding: amounts finer than the
// currency's minor unit keep all their significant decimals, e.g. "12.345 EUR".
func FormatExactMoney(amount decimal.Decimal, currencyCode string) string {
	precision := int(domain.Scale(currencyCode))
	if _, frac, ok := strings.Cut(amount.String(), "."); ok && len(frac) > precision {
		precision = len(frac)
	}
	return FormatWithPrecision(amount, precision) + " " + currencyCode
}
