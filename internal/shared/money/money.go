package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FromCents converts an integer cent amount into a decimal with two
// fraction digits. All monetary columns store cents.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// Format renders a cent amount with its currency symbol.
func Format(currency string, cents int64) string {
	major := FromCents(cents).StringFixed(2)
	switch currency {
	case "USD":
		return "$" + major
	case "EUR":
		return "€" + major
	case "INR":
		return "₹" + major
	default:
		return fmt.Sprintf("%s %s", major, currency)
	}
}
