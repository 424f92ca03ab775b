package domain

import "github.com/shopspring/decimal"

type LimitOrder struct {
	Type                OrderType       `json:"type"`
	TradableAmount      decimal.Decimal `json:"tradableAmount"`
	TradableIdentifier  string          `json:"tradableIdentifier"`
	TransactionCurrency string          `json:"transactionCurrency"`
	LimitPrice          Money           `json:"limitPrice"`
}

// OrderBook holds both sides of a snapshot, each sorted by ascending price.
type OrderBook struct {
	Asks []LimitOrder `json:"asks"`
	Bids []LimitOrder `json:"bids"`
}
