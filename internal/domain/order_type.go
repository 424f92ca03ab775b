package domain

import (
	"fmt"
	"strings"
)

type OrderType int

const (
	Bid OrderType = iota
	Ask
)

func (t OrderType) String() string {
	return []string{"BID", "ASK"}[t]
}

// OrderTypeFromLabel maps a case-insensitive "bid" to Bid and anything else,
// including the empty string, to Ask.
func OrderTypeFromLabel(label string) OrderType {
	if strings.EqualFold(label, "bid") {
		return Bid
	}
	return Ask
}

func (t OrderType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *OrderType) UnmarshalText(text []byte) error {
	switch strings.ToUpper(string(text)) {
	case "BID":
		*t = Bid
	case "ASK":
		*t = Ask
	default:
		return fmt.Errorf("unknown order type %q", text)
	}
	return nil
}
