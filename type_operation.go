package capgains

import (
	"encoding/json"
	"fmt"
)

// Operation is the side of a trade.
type Operation int

const (
	// Buy increases the position and blends the weighted average cost.
	Buy Operation = iota
	// Sell decreases the position and realizes a profit or a loss.
	Sell
)

func (o Operation) String() string {
	switch o {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	default:
		return "unknown"
	}
}

// ParseOperation parses "buy" or "sell".
func ParseOperation(s string) (Operation, error) {
	switch s {
	case "buy":
		return Buy, nil
	case "sell":
		return Sell, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownOperation, s)
	}
}

func (o Operation) MarshalJSON() ([]byte, error) {
	if o != Buy && o != Sell {
		return nil, fmt.Errorf("%w: %d", ErrUnknownOperation, int(o))
	}
	return json.Marshal(o.String())
}

func (o *Operation) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrUnknownOperation, data)
	}
	op, err := ParseOperation(s)
	if err != nil {
		return err
	}
	*o = op
	return nil
}
