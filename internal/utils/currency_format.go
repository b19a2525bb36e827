package utils

import (
	"github.com/fincore/fx_revaluation_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RoundToCurrencyPrecision rounds an amount to the minor-unit precision of a currency.
// Example: 12.3456 with USD (precision 2) returns 12.35; with JPY (precision 0) returns 12.
func RoundToCurrencyPrecision(amount decimal.Decimal, currency domain.Currency) decimal.Decimal {
	return amount.Round(currency.Precision)
}

// FormatWithCurrencyPrecision formats an amount with the correct precision for a given currency.
func FormatWithCurrencyPrecision(amount decimal.Decimal, currency domain.Currency) string {
	return RoundToCurrencyPrecision(amount, currency).String()
}

// FormatWithPrecision formats an amount with the given precision
// This is a convenience function when you only have the precision value
func FormatWithPrecision(amount decimal.Decimal, precision int32) string {
	return amount.Round(precision).String()
}
