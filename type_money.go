package dofinance

import (
	"github.com/Rhymond/go-money"
)

// Money is an amount of the game currency. Dugout-online amounts are whole
// units (the finance page strips any fraction), so an integer is exact.
type Money int64

// currency returns the game currency metadata used for display.
// Dugout-online denominates every club in euros.
func (m Money) currency() *money.Currency {
	return money.New(0, money.EUR).Currency()
}

// String returns the display form of the amount, e.g. "€1,234,567.00"
// becomes the currency formatter's rendering of the whole amount.
func (m Money) String() string {
	cur := m.currency()
	// shift the whole units into the currency's minor units for the formatter.
	minor := int64(m)
	for i := 0; i < cur.Fraction; i++ {
		minor *= 10
	}
	return cur.Formatter().Format(minor)
}

// SignedString returns the string representation of the amount with an
// explicit sign. Zero is represented as "-".
func (m Money) SignedString() string {
	if m == 0 {
		return "-"
	}
	if m > 0 {
		return "+" + m.String()
	}
	return m.String()
}
