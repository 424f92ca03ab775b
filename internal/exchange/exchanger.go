package exchange

import (
	"fmt"
	"slices"
	"strings"

	"marketdata-normalizer/internal/domain"
	"marketdata-normalizer/internal/exchange/virtex"

	"github.com/shopspring/decimal"
)

// Normalizer converts one exchange's raw records into domain values. The raw
// record types are VirtEx's wire shapes, the only feed registered so far; a
// second exchange needs its own record types behind this interface.
type Normalizer interface {
	GetName() string
	NormalizeOrder(amount, price decimal.Decimal, currency string, side string) (domain.LimitOrder, error)
	NormalizeOrders(rows []virtex.OrderRow, currency string, side string) ([]domain.LimitOrder, error)
	NormalizeOrderBook(raw virtex.RawOrderBook, currency string) (domain.OrderBook, error)
	NormalizeTrade(trade virtex.RawTrade, currency string, tradableIdentifier string) (domain.Trade, error)
	NormalizeTrades(trades []virtex.RawTrade, currency string, tradableIdentifier string) (domain.Trades, error)
	NormalizeTicker(ticker virtex.RawTicker, currency string, tradableIdentifier string) (domain.Ticker, error)
}

type UnknownExchangeError struct {
	Name string
}

func (e *UnknownExchangeError) Error() string {
	return fmt.Sprintf("unknown exchange %q", e.Name)
}

var normalizers = map[string]Normalizer{
	strings.ToLower(domain.VirtEx.String()): virtex.Adapter{},
}

// Get looks up a normalizer by exchange name, ignoring case.
func Get(name string) (Normalizer, error) {
	if normalizer, ok := normalizers[strings.ToLower(name)]; ok {
		return normalizer, nil
	}
	return nil, &UnknownExchangeError{Name: name}
}

// Names lists the registered exchanges as they are keyed, sorted.
func Names() []string {
	names := make([]string, 0, len(normalizers))
	for name := range normalizers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
