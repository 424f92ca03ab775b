package server

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"marketdata-normalizer/internal/domain"
	"marketdata-normalizer/internal/exchange"
	"marketdata-normalizer/internal/exchange/virtex"
)

const (
	kindOrder     = "order"
	kindOrders    = "orders"
	kindOrderBook = "orderbook"
	kindTrades    = "trades"
	kindTicker    = "ticker"
)

// request is one normalization job, received over HTTP or the websocket
// stream. Empty Currency and Base fall back to the exchange's configuration.
type request struct {
	Kind     string          `json:"kind"`
	Currency string          `json:"currency"`
	Side     string          `json:"side"`
	Base     string          `json:"base"`
	Payload  json.RawMessage `json:"payload"`
}

func (s *FiberServer) normalize(ctx context.Context, exchangeName string, req request) (output any, err error) {
	normalizer, err := exchange.Get(exchangeName)
	if err != nil {
		return nil, err
	}
	exchangeConfig, ok := s.config.ExchangeConfig(exchangeName)
	if !ok {
		return nil, &exchange.UnknownExchangeError{Name: exchangeName}
	}

	currency := req.Currency
	if currency == "" {
		currency = exchangeConfig.QuoteCurrency
	}
	base := req.Base
	if base == "" {
		base = exchangeConfig.BaseAsset
	}

	switch req.Kind {
	case kindOrder:
		var row virtex.OrderRow
		if err := decodePayload(req.Payload, &row); err != nil {
			return nil, err
		}
		return normalizer.NormalizeOrder(row.Amount(), row.Price(), currency, req.Side)

	case kindOrders:
		var rows []virtex.OrderRow
		if err := decodePayload(req.Payload, &rows); err != nil {
			return nil, err
		}
		return normalizer.NormalizeOrders(rows, currency, req.Side)

	case kindOrderBook:
		var book virtex.RawOrderBook
		if err := decodePayload(req.Payload, &book); err != nil {
			return nil, err
		}
		return normalizer.NormalizeOrderBook(book, currency)

	case kindTrades:
		var raws []virtex.RawTrade
		if err := decodePayload(req.Payload, &raws); err != nil {
			return nil, err
		}
		trades, err := normalizer.NormalizeTrades(raws, currency, base)
		if err != nil {
			return nil, err
		}
		s.journal(ctx, normalizer.GetName(), trades)
		return trades, nil

	case kindTicker:
		var ticker virtex.RawTicker
		if err := decodePayload(req.Payload, &ticker); err != nil {
			return nil, err
		}
		return normalizer.NormalizeTicker(ticker, currency, base)

	default:
		return nil, fiber.NewError(fiber.StatusBadRequest, "unknown kind "+strconv.Quote(req.Kind))
	}
}

// journal persists a batch when the journal is enabled. A journal failure is
// logged and does not fail the request.
func (s *FiberServer) journal(ctx context.Context, exchangeName string, trades domain.Trades) {
	if s.db == nil || len(trades.Trades) == 0 {
		return
	}
	written, err := s.db.SaveTrades(ctx, exchangeName, trades)
	if err != nil {
		s.logger.Error("Failed to journal trades: "+err.Error(), zap.String("exchange", exchangeName), zap.Int("trades", len(trades.Trades)))
		return
	}
	s.journalLogger.Info("Journaled trades", zap.String("exchange", exchangeName), zap.Int64("written", written))
}

func decodePayload(payload []byte, v any) error {
	if len(payload) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "empty request body")
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed request body: "+err.Error())
	}
	return nil
}
