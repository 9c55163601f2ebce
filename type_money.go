package capgains

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value. It is currency-less: a transaction
// stream is always expressed in a single currency.
type Money struct {
	value decimal.Decimal
}

// M returns the money value of an integer, a decimal literal or a decimal.
// Literals that cannot be parsed panic.
func M[T int | int32 | int64 | uint | uint32 | uint64 | string | decimal.Decimal](value T) Money {
	return Money{value: newDecimal(value)}
}

// ParseMoney parses a decimal literal like "20000.00".
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Money{value: d}, nil
}

// Decimal returns the underlying decimal value.
func (m Money) Decimal() decimal.Decimal { return m.value }

// Quantize returns m rounded to cents.
func (m Money) Quantize() Money { return Money{value: Quantize(m.value)} }

// IsCents reports whether m has no significant digit beyond the second
// fractional one. Trailing zeros do not count.
func (m Money) IsCents() bool { return m.value.Equal(m.value.Truncate(places)) }

func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) LessThanOrEqual(n Money) bool    { return m.value.LessThanOrEqual(n.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }
func (m Money) Neg() Money                      { return Money{value: m.value.Neg()} }
func (m Money) Add(n Money) Money               { return Money{value: m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money               { return Money{value: m.value.Sub(n.value)} }

// Mul multiplies m by a share count.
func (m Money) Mul(quantity int64) Money { return Money{value: m.value.Mul(shares(quantity))} }

// MulRate multiplies m by a rate, unrounded.
func (m Money) MulRate(rate decimal.Decimal) Money { return Money{value: m.value.Mul(rate)} }

// String returns the value with exactly two fractional digits.
func (m Money) String() string { return m.value.StringFixed(places) }

// Display formats m for humans using the currency's symbol and separators.
// An empty currency falls back to String.
func (m Money) Display(currency string) string {
	if currency == "" {
		return m.String()
	}
	cur := money.GetCurrency(currency)
	if cur == nil {
		// unknown currency code
		return m.String() + " " + currency
	}
	fraction := int32(cur.Fraction)
	minor := m.value.Round(fraction).Shift(fraction)
	return cur.Formatter().Format(minor.IntPart())
}

// SignedString returns the string representation of the money value with a sign.
// 0 is represented as a "-"
func (m Money) SignedString(currency string) string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.Display(currency)
	}
	return m.Display(currency)
}

// MarshalJSON encodes m as a string with exactly two fractional digits.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON accepts both number and string literals.
func (m *Money) UnmarshalJSON(data []byte) error {
	return m.value.UnmarshalJSON(data)
}
