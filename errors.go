package capgains

import "errors"

// Boundary errors, reported while decoding a transaction stream. The
// resolver itself never fails.
var (
	// ErrInvalidTransaction wraps every decoding failure of a single transaction.
	ErrInvalidTransaction = errors.New("invalid transaction")

	ErrUnknownOperation = errors.New("unknown operation")
	ErrMissingField     = errors.New("missing field")
	ErrNegativeQuantity = errors.New("negative quantity")
	ErrNegativeCost     = errors.New("negative unit cost")

	// ErrPrecision is returned for unit costs with more than two fractional digits.
	ErrPrecision = errors.New("too many fractional digits")
)
