package capgains

import "github.com/shopspring/decimal"

// places is the number of fractional digits every money value is kept at.
const places = 2

// Quantize rounds d to exactly two fractional digits, half away from zero.
func Quantize(d decimal.Decimal) decimal.Decimal {
	return d.Round(places)
}

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T int | int32 | int64 | uint | uint32 | uint64 | string | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	case string:
		return decimal.RequireFromString(v)
	default:
		panic("unsupported type")
	}
}

// shares converts a share count into a decimal multiplier.
func shares(n int64) decimal.Decimal { return decimal.NewFromInt(n) }
