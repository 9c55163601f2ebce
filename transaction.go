package capgains

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Transaction is a single trade of the tracked instrument.
type Transaction struct {
	Operation Operation
	UnitCost  Money
	Quantity  int64
}

// NewBuy creates a buy transaction.
func NewBuy(unitCost Money, quantity int64) Transaction {
	return Transaction{Operation: Buy, UnitCost: unitCost, Quantity: quantity}
}

// NewSell creates a sell transaction.
func NewSell(unitCost Money, quantity int64) Transaction {
	return Transaction{Operation: Sell, UnitCost: unitCost, Quantity: quantity}
}

// Total returns the notional value of the trade, unrounded.
func (tx Transaction) Total() Money { return tx.UnitCost.Mul(tx.Quantity) }

// Validate checks the boundary rules of a decoded transaction.
func (tx Transaction) Validate() error {
	if tx.Operation != Buy && tx.Operation != Sell {
		return fmt.Errorf("%w: %d", ErrUnknownOperation, int(tx.Operation))
	}
	if tx.Quantity < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeQuantity, tx.Quantity)
	}
	if tx.UnitCost.IsNegative() {
		return fmt.Errorf("%w: %s", ErrNegativeCost, tx.UnitCost.Decimal())
	}
	if !tx.UnitCost.IsCents() {
		return fmt.Errorf("%w: unit-cost %s", ErrPrecision, tx.UnitCost.Decimal())
	}
	return nil
}

func (tx Transaction) String() string {
	return fmt.Sprintf("%s %d@%s", tx.Operation, tx.Quantity, tx.UnitCost)
}

// MarshalJSON writes the wire form, unit cost as a number literal:
//
//	{"operation":"buy","unit-cost":10.00,"quantity":100}
func (tx Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("operation", tx.Operation)
	w.Raw("unit-cost", []byte(tx.UnitCost.String()))
	w.Optional("quantity", tx.Quantity)
	return w.MarshalJSON()
}

// UnmarshalJSON decodes and validates the wire form. A missing quantity
// defaults to 0.
func (tx *Transaction) UnmarshalJSON(data []byte) error {
	// jtransaction is the object read from the line using json parser.
	type jtransaction struct {
		Operation *Operation   `json:"operation"`
		UnitCost  *Money       `json:"unit-cost"`
		Quantity  *json.Number `json:"quantity"`
	}

	var jt jtransaction
	if err := json.Unmarshal(data, &jt); err != nil {
		return err
	}
	if jt.Operation == nil {
		return fmt.Errorf("%w: operation", ErrMissingField)
	}
	if jt.UnitCost == nil {
		return fmt.Errorf("%w: unit-cost", ErrMissingField)
	}

	ntx := Transaction{Operation: *jt.Operation, UnitCost: *jt.UnitCost}
	if jt.Quantity != nil {
		q, err := strconv.ParseInt(jt.Quantity.String(), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid quantity %q: not an integer", jt.Quantity.String())
		}
		ntx.Quantity = q
	}
	if err := ntx.Validate(); err != nil {
		return err
	}
	*tx = ntx
	return nil
}
