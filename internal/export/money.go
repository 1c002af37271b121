// Package export renders derived reports as aligned text for the
// terminal and as CSV files.
package export

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Formatter renders amounts and dates per the configured preferences.
type Formatter struct {
	Currency   string
	DateFormat string
}

// NewFormatter creates a Formatter, falling back to USD and ISO dates
// when preferences are empty.
func NewFormatter(currency, dateFormat string) Formatter {
	if currency == "" {
		currency = "USD"
	}
	if dateFormat == "" {
		dateFormat = "2006-01-02"
	}
	return Formatter{Currency: currency, DateFormat: dateFormat}
}

// Money renders an amount with the currency's symbol and grouping,
// e.g. "$1,234.50". Unknown currency codes fall back to the plain
// decimal string.
func (f Formatter) Money(amount decimal.Decimal) string {
	cur := money.GetCurrency(f.Currency)
	if cur == nil {
		return amount.StringFixed(2)
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	return money.New(minor.IntPart(), f.Currency).Display()
}
