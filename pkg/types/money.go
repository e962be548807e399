package types

import "github.com/shopspring/decimal"

// DefaultCurrencyDecimals matches the backend's currency precision.
const DefaultCurrencyDecimals = 2

// FormatAmount rounds an internal (unrounded) amount for presentation.
// Arithmetic elsewhere stays on the full-precision decimal; rounding
// happens only at the response boundary.
func FormatAmount(amount decimal.Decimal, decimals int) string {
	if decimals < 0 {
		decimals = DefaultCurrencyDecimals
	}
	return amount.StringFixed(int32(decimals))
}

// ParseAmount converts raw input into a non-negative decimal. Unparseable
// or negative input yields zero and ok=false.
func ParseAmount(raw string) (decimal.Decimal, bool) {
	amount, err := decimal.NewFromString(raw)
	if err != nil || amount.IsNegative() {
		return decimal.Zero, false
	}
	return amount, true
}
