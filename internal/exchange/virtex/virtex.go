// Package virtex converts raw VirtEx market data into the canonical domain
// model. Every function is pure and safe for concurrent use.
package virtex

import (
	"slices"

	"marketdata-normalizer/internal/domain"

	"github.com/shopspring/decimal"
)

// VirtEx only lists bitcoin, so orders are always for BTC.
const virtexAsset = domain.BTC

// Adapter exposes the normalizers as methods for callers that hold an
// exchange value. It carries no state.
type Adapter struct{}

func (Adapter) GetName() string {
	return domain.VirtEx.String()
}

func (Adapter) NormalizeOrder(amount, price decimal.Decimal, currency string, side string) (domain.LimitOrder, error) {
	return NormalizeOrder(amount, price, currency, side)
}

func (Adapter) NormalizeOrders(rows []OrderRow, currency string, side string) ([]domain.LimitOrder, error) {
	return NormalizeOrders(rows, currency, side)
}

func (Adapter) NormalizeOrderBook(raw RawOrderBook, currency string) (domain.OrderBook, error) {
	return NormalizeOrderBook(raw, currency)
}

func (Adapter) NormalizeTrade(trade RawTrade, currency string, tradableIdentifier string) (domain.Trade, error) {
	return NormalizeTrade(trade, currency, tradableIdentifier)
}

func (Adapter) NormalizeTrades(trades []RawTrade, currency string, tradableIdentifier string) (domain.Trades, error) {
	return NormalizeTrades(trades, currency, tradableIdentifier)
}

func (Adapter) NormalizeTicker(ticker RawTicker, currency string, tradableIdentifier string) (domain.Ticker, error) {
	return NormalizeTicker(ticker, currency, tradableIdentifier)
}

// NormalizeOrder builds a BTC limit order priced in currency. A side label
// other than a case-insensitive "bid" yields an ask. The amount is not
// validated.
func NormalizeOrder(amount, price decimal.Decimal, currency string, side string) (order domain.LimitOrder, err error) {
	limitPrice, err := domain.NewMoney(currency, price)
	if err != nil {
		return order, err
	}

	return domain.LimitOrder{
		Type:                domain.OrderTypeFromLabel(side),
		TradableAmount:      amount,
		TradableIdentifier:  virtexAsset,
		TransactionCurrency: currency,
		LimitPrice:          limitPrice,
	}, nil
}

// NormalizeOrders sorts one side of a VirtEx book by ascending price and
// converts every row. VirtEx does not return its book in order. Rows with
// equal prices keep their relative order and rows is left untouched.
func NormalizeOrders(rows []OrderRow, currency string, side string) (output []domain.LimitOrder, err error) {
	sorted := slices.Clone(rows)
	slices.SortStableFunc(sorted, func(a, b OrderRow) int {
		return a.Price().Cmp(b.Price())
	})

	output = make([]domain.LimitOrder, 0, len(sorted))
	for _, row := range sorted {
		order, err := NormalizeOrder(row.Amount(), row.Price(), currency, side)
		if err != nil {
			return nil, err
		}
		output = append(output, order)
	}

	return output, nil
}

// NormalizeOrderBook converts both sides of a snapshot. Each side is sorted
// by ascending price, so the best bid is the last bid.
func NormalizeOrderBook(raw RawOrderBook, currency string) (output domain.OrderBook, err error) {
	asks, err := NormalizeOrders(raw.Asks, currency, "ask")
	if err != nil {
		return output, err
	}
	bids, err := NormalizeOrders(raw.Bids, currency, "bid")
	if err != nil {
		return output, err
	}

	return domain.OrderBook{Asks: asks, Bids: bids}, nil
}

// NormalizeTrade converts a single VirtEx trade. The side comes from the
// trade's type field with the same bid-or-ask rule as orders.
func NormalizeTrade(trade RawTrade, currency string, tradableIdentifier string) (output domain.Trade, err error) {
	price, err := domain.NewMoney(currency, trade.Price)
	if err != nil {
		return output, err
	}
	timestamp, err := domain.FromSecondsUTC(trade.Date)
	if err != nil {
		return output, err
	}

	return domain.Trade{
		Type:                domain.OrderTypeFromLabel(trade.Type),
		TradableAmount:      trade.Amount,
		TradableIdentifier:  tradableIdentifier,
		TransactionCurrency: currency,
		Price:               price,
		Timestamp:           timestamp,
	}, nil
}

// NormalizeTrades converts trades in the order given. The first failing
// trade aborts the batch.
func NormalizeTrades(trades []RawTrade, currency string, tradableIdentifier string) (output domain.Trades, err error) {
	list := make([]domain.Trade, 0, len(trades))
	for _, raw := range trades {
		trade, err := NormalizeTrade(raw, currency, tradableIdentifier)
		if err != nil {
			return output, err
		}
		list = append(list, trade)
	}

	return domain.Trades{Trades: list}, nil
}

func NormalizeTicker(ticker RawTicker, currency string, tradableIdentifier string) (output domain.Ticker, err error) {
	last, err := domain.ParseMoney(currency, string(ticker.Last))
	if err != nil {
		return output, err
	}
	high, err := domain.ParseMoney(currency, string(ticker.High))
	if err != nil {
		return output, err
	}
	low, err := domain.ParseMoney(currency, string(ticker.Low))
	if err != nil {
		return output, err
	}
	// Volume is counted in the traded asset, not the quote currency.
	volume, err := domain.ParseDecimal(string(ticker.Volume))
	if err != nil {
		return output, err
	}

	return domain.Ticker{
		TradableIdentifier: tradableIdentifier,
		Last:               last,
		High:               high,
		Low:                low,
		Volume:             volume,
	}, nil
}

// PriceString renders a price the way VirtEx expects it in requests: plain
// notation without trailing zeros.
func PriceString(price domain.Money) string {
	return price.PlainString()
}
