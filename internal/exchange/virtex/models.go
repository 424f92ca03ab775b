package virtex

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// OrderRow is one [price, amount] level of a VirtEx order book side, in the
// order the exchange reports it.
type OrderRow [2]decimal.Decimal

func (row OrderRow) Price() decimal.Decimal {
	return row[0]
}

func (row OrderRow) Amount() decimal.Decimal {
	return row[1]
}

func (row *OrderRow) UnmarshalJSON(data []byte) error {
	var values []decimal.Decimal
	if err := json.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("order row: %w", err)
	}
	if len(values) != len(row) {
		return fmt.Errorf("order row: expected [price, amount], got %d values", len(values))
	}
	copy(row[:], values)
	return nil
}

type RawOrderBook struct {
	Bids []OrderRow `json:"bids"`
	Asks []OrderRow `json:"asks"`
}

type RawTrade struct {
	Amount decimal.Decimal `json:"amount"`
	Price  decimal.Decimal `json:"price"`
	Date   int64           `json:"date"`
	Type   string          `json:"type"`
}

type RawTicker struct {
	Last   Number `json:"last"`
	High   Number `json:"high"`
	Low    Number `json:"low"`
	Volume Number `json:"volume"`
}

// Number holds a numeric field that VirtEx sends either as a JSON number or
// as a quoted string. It is kept as text until normalization.
type Number string

func (n *Number) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*n = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = Number(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("number field: %w", err)
	}
	*n = Number(num)
	return nil
}
