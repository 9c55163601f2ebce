package capgains

import "encoding/json"

// Tax is the amount owed after a single transaction. It is never negative.
type Tax struct {
	Amount Money
}

// MarshalJSON writes {"amount":"0.00"}.
func (t Tax) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("amount", t.Amount)
	return w.MarshalJSON()
}

func (t *Tax) UnmarshalJSON(data []byte) error {
	var jt struct {
		Amount Money `json:"amount"`
	}
	if err := json.Unmarshal(data, &jt); err != nil {
		return err
	}
	t.Amount = jt.Amount
	return nil
}

// TotalTax sums all amounts.
func TotalTax(taxes []Tax) Money {
	var total Money
	for _, t := range taxes {
		total = total.Add(t.Amount)
	}
	return total
}
