package capgains

import "github.com/shopspring/decimal"

// Taxer computes the tax owed after each transaction of an ordered list.
// The result has the same length and order as the input.
type Taxer interface {
	Taxes(txs []Transaction) []Tax
}

// RateFunc is the tax rate policy queried by a Taxer.
type RateFunc func() decimal.Decimal

// FlatRate returns a policy applying the same rate to every taxable sale.
func FlatRate(rate decimal.Decimal) RateFunc {
	return func() decimal.Decimal { return rate }
}

var (
	// DefaultRate is the capital gains tax rate: 20%.
	DefaultRate = decimal.RequireFromString("0.20")
	// DefaultExemption is the notional sale value at or below which no tax is owed.
	DefaultExemption = M("20000.00")
)
