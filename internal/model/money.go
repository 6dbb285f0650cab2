package model

import (
	"github.com/shopspring/decimal"
)

// Money is an amount in a single currency.
// Positive amounts are inflows, negative amounts are outflows.
type Money struct {
	Amount   decimal.Decimal
	Currency Currency
}

// NewMoney returns Money in currency c, falling back to DefaultCurrency
// when c is empty.
func NewMoney(amount decimal.Decimal, c Currency) Money {
	if c == "" {
		c = DefaultCurrency
	}
	return Money{Amount: amount, Currency: c}
}

// Zero returns a zero amount in currency c.
func Zero(c Currency) Money {
	return NewMoney(decimal.Zero, c)
}

// Equal compares amount numerically and currency exactly.
func (m Money) Equal(other Money) bool {
	return m.Currency == other.Currency && m.Amount.Equal(other.Amount)
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool { return m.Amount.IsZero() }

// Abs returns the absolute amount.
func (m Money) Abs() decimal.Decimal { return m.Amount.Abs() }

// String renders "100.50 USD".
func (m Money) String() string {
	return m.Format(2)
}

// Format renders the amount with the given number of decimal places followed by the code.
func (m Money) Format(places int32) string {
	return m.Amount.StringFixed(places) + " " + m.Currency.Code()
}

// Display renders the amount prefixed with the currency symbol, e.g. "$100.50".
func (m Money) Display() string {
	return m.Currency.Symbol() + m.Amount.StringFixed(2)
}

// Exact renders the amount with at least two decimal places and as many
// more as it carries, e.g. "100.50 USD" or "100.125 USD".
func (m Money) Exact() string {
	if m.Amount.Round(2).Equal(m.Amount) {
		return m.String()
	}
	return m.Amount.String() + " " + m.Currency.Code()
}
