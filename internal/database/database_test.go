package database

import (
	"context"
	"path/filepath"
	"testing"

	"marketdata-normalizer/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *service {
	t.Helper()
	svc, err := New(filepath.Join(t.TempDir(), "nested", "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })
	return svc.(*service)
}

func testTrades(t *testing.T) domain.Trades {
	t.Helper()
	var trades []domain.Trade
	for i, price := range []string{"101.50", "0.00000001", "99999999999.123456789"} {
		money, err := domain.ParseMoney(domain.CAD, price)
		require.NoError(t, err)
		ts, err := domain.FromSecondsUTC(int64(1700000000 + i))
		require.NoError(t, err)
		trades = append(trades, domain.Trade{
			Type:                domain.OrderType(i % 2),
			TradableAmount:      decimal.RequireFromString("0.5"),
			TradableIdentifier:  domain.BTC,
			TransactionCurrency: domain.CAD,
			Price:               money,
			Timestamp:           ts,
		})
	}
	return domain.Trades{Trades: trades}
}

func TestSaveTrades(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	written, err := svc.SaveTrades(ctx, "virtex", testTrades(t))
	require.NoError(t, err)
	assert.Equal(t, int64(3), written)

	rows, err := svc.db.QueryContext(ctx, `SELECT type, price, price_currency, timestamp_ms FROM trades ORDER BY id`)
	require.NoError(t, err)
	defer rows.Close()

	type stored struct {
		side, price, currency string
		ts                    int64
	}
	var got []stored
	for rows.Next() {
		var s stored
		require.NoError(t, rows.Scan(&s.side, &s.price, &s.currency, &s.ts))
		got = append(got, s)
	}
	require.NoError(t, rows.Err())

	assert.Equal(t, []stored{
		{"BID", "101.5", "CAD", 1700000000000},
		{"ASK", "0.00000001", "CAD", 1700000001000},
		{"BID", "99999999999.123456789", "CAD", 1700000002000},
	}, got)
}

func TestSaveTradesEmpty(t *testing.T) {
	svc := newTestService(t)

	written, err := svc.SaveTrades(context.Background(), "virtex", domain.Trades{})
	require.NoError(t, err)
	assert.Zero(t, written)
}

func TestSaveTradesCanceledContext(t *testing.T) {
	svc := newTestService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.SaveTrades(ctx, "virtex", testTrades(t))
	assert.Error(t, err)

	assert.Equal(t, "0", svc.Health()["journaled_trades"])
}

func TestHealth(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.SaveTrades(context.Background(), "virtex", testTrades(t))
	require.NoError(t, err)

	stats := svc.Health()
	assert.Equal(t, "up", stats["status"])
	assert.Equal(t, "3", stats["journaled_trades"])

	require.NoError(t, svc.Close())
	assert.Equal(t, "down", svc.Health()["status"])
}
