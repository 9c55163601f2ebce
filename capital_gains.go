package capgains

import (
	"iter"

	"github.com/shopspring/decimal"
)

// State is carried from one transaction to the next while resolving a list.
// A fresh zero State is used for every list.
type State struct {
	// Position is the number of shares held. Selling more than was bought
	// drives it negative, which is accepted.
	Position int64
	// WeightedAverage is the blended cost per share of the position. Only
	// buys change it.
	WeightedAverage Money
	// Profit is the realized gain not yet taxed, or a carried loss when
	// negative.
	Profit Money
}

// Policy holds the rules a State is resolved against.
type Policy struct {
	Rate      RateFunc
	Exemption Money
}

// Step is the outcome of resolving one transaction.
type Step struct {
	Transaction Transaction
	State       State // after the transaction
	Tax         Tax
}

// Apply resolves tx against s and returns the tax owed for it.
func (s *State) Apply(tx Transaction, p Policy) Tax {
	switch tx.Operation {
	case Buy:
		// the carry-over rule looks at the position before the buy.
		s.WeightedAverage = s.weightedAverage(tx)
		s.Profit = s.dumpOrKeepProfit()
		s.Position += tx.Quantity
	case Sell:
		s.Profit = s.Profit.Add(s.profit(tx, p))
		s.Position -= tx.Quantity
	}

	var tax Tax
	if s.taxable(tx, p) {
		tax.Amount = s.Profit.MulRate(p.Rate()).Quantize()
		s.Profit = s.Profit.Sub(tax.Amount)
	}
	return tax
}

// weightedAverage blends the current position with the bought quantity.
func (s *State) weightedAverage(tx Transaction) Money {
	if s.Position == 0 {
		return tx.UnitCost
	}
	total := s.Position + tx.Quantity
	if total == 0 {
		// a buy that exactly closes a negative position has nothing to blend.
		return tx.UnitCost
	}
	held := s.WeightedAverage.Mul(s.Position)
	bought := tx.UnitCost.Mul(tx.Quantity)
	return Money{value: held.Add(bought).Decimal().DivRound(shares(total), places)}
}

// dumpOrKeepProfit discards a positive profit left on an empty position, and
// keeps losses so they offset future gains.
func (s *State) dumpOrKeepProfit() Money {
	if s.Position == 0 && s.Profit.IsPositive() {
		return Money{}
	}
	return s.Profit.Quantize()
}

// profit is the contribution of a sale to the carried profit.
func (s *State) profit(tx Transaction, p Policy) Money {
	total := tx.Total()
	if total.LessThanOrEqual(p.Exemption) && s.Profit.IsNegative() {
		return Money{}
	}
	return total.Sub(s.WeightedAverage.Mul(tx.Quantity)).Quantize()
}

// taxable reports whether the sale that just updated s owes tax.
func (s *State) taxable(tx Transaction, p Policy) bool {
	return tx.Operation == Sell &&
		s.Profit.IsPositive() &&
		tx.Total().GreaterThan(p.Exemption) &&
		tx.UnitCost.GreaterThan(s.WeightedAverage)
}

// CapitalGains computes the capital gains tax of a stream of trades on a
// single instrument, using a weighted average cost basis.
//
// It holds no state between calls and is safe for concurrent use.
type CapitalGains struct {
	policy Policy
}

// Option configures a CapitalGains.
type Option func(*CapitalGains)

// WithRate sets the tax rate policy.
func WithRate(rate RateFunc) Option {
	return func(c *CapitalGains) { c.policy.Rate = rate }
}

// WithExemption sets the exemption threshold.
func WithExemption(threshold Money) Option {
	return func(c *CapitalGains) { c.policy.Exemption = threshold }
}

// NewCapitalGains returns a resolver taxing 20% of gains on sales above 20000.00,
// unless configured otherwise.
func NewCapitalGains(opts ...Option) *CapitalGains {
	c := &CapitalGains{policy: Policy{Rate: FlatRate(DefaultRate), Exemption: DefaultExemption}}
	for _, opt := range opts {
		opt(c)
	}
	if c.policy.Rate == nil {
		c.policy.Rate = FlatRate(DefaultRate)
	}
	return c
}

// Rate returns the current tax rate.
func (c *CapitalGains) Rate() decimal.Decimal { return c.policy.Rate() }

// Exemption returns the exemption threshold.
func (c *CapitalGains) Exemption() Money { return c.policy.Exemption }

// Policy returns the rules transactions are resolved against.
func (c *CapitalGains) Policy() Policy { return c.policy }

// Taxes implements Taxer.
func (c *CapitalGains) Taxes(txs []Transaction) []Tax {
	taxes := make([]Tax, 0, len(txs))
	for _, step := range c.Steps(txs) {
		taxes = append(taxes, step.Tax)
	}
	return taxes
}

// Resolve returns every step of the resolution of txs.
func (c *CapitalGains) Resolve(txs []Transaction) []Step {
	steps := make([]Step, 0, len(txs))
	for _, step := range c.Steps(txs) {
		steps = append(steps, step)
	}
	return steps
}

// Steps folds txs in order and yields each step as soon as it is resolved.
func (c *CapitalGains) Steps(txs []Transaction) iter.Seq2[int, Step] {
	return func(yield func(int, Step) bool) {
		var s State
		for i, tx := range txs {
			tax := s.Apply(tx, c.policy)
			if !yield(i, Step{Transaction: tx, State: s, Tax: tax}) {
				return
			}
		}
	}
}
