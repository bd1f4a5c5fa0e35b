package feed

import "github.com/shopspring/decimal"

// ParseAmount parses a decimal price string. Empty or malformed input is
// zero; a zero amount suppresses price emission downstream.
func ParseAmount(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// FormatPrice renders an amount the way Google wants it: two fixed decimal
// places, a space, then the currency code ("19.99 USD").
func FormatPrice(amount decimal.Decimal, currency string) string {
	return amount.StringFixed(2) + " " + currency
}
