package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Trade struct {
	Type                OrderType       `json:"type"`
	TradableAmount      decimal.Decimal `json:"tradableAmount"`
	TradableIdentifier  string          `json:"tradableIdentifier"`
	TransactionCurrency string          `json:"transactionCurrency"`
	Price               Money           `json:"price"`
	Timestamp           time.Time       `json:"timestamp"`
}

// Trades keeps the order the exchange reported the trades in.
type Trades struct {
	Trades []Trade `json:"trades"`
}

type Ticker struct {
	TradableIdentifier string          `json:"tradableIdentifier"`
	Last               Money           `json:"last"`
	High               Money           `json:"high"`
	Low                Money           `json:"low"`
	Volume             decimal.Decimal `json:"volume"`
}
