package server

import (
	"context"
	"encoding/json"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"marketdata-normalizer/internal/database"
	"marketdata-normalizer/internal/domain"
	"marketdata-normalizer/internal/platform/config"
)

func TestStream(t *testing.T) {
	cfg, err := config.Parse([]byte(testConfig))
	require.NoError(t, err)
	// The stream goroutine outlives the test, so it cannot log through zaptest.
	server := New(cfg, nil, zap.NewNop(), zap.NewNop())
	server.RegisterFiberRoutes()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = server.Listener(listener) }()
	t.Cleanup(func() { _ = server.Shutdown() })

	conn, _, err := websocket.DefaultDialer.Dial("ws://"+listener.Addr().String()+"/ws/virtex", nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	type streamReply struct {
		Kind  string          `json:"kind"`
		Data  json.RawMessage `json:"data"`
		Error string          `json:"error"`
	}
	exchange := func(message string) streamReply {
		t.Helper()
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(message)))
		var out streamReply
		require.NoError(t, conn.ReadJSON(&out))
		return out
	}

	out := exchange(`{"kind": "orders", "currency": "USD", "payload": [[2, 1], [1, 3]]}`)
	require.Empty(t, out.Error)
	var orders []domain.LimitOrder
	require.NoError(t, json.Unmarshal(out.Data, &orders))
	require.Len(t, orders, 2)
	assert.True(t, orders[0].LimitPrice.Amount.Equal(decimal.NewFromInt(1)))
	assert.Equal(t, domain.Ask, orders[0].Type)

	out = exchange(`{"kind": "orders", "payload": [[101.5]]}`)
	assert.Contains(t, out.Error, "order row")

	out = exchange(`{"kind": "ticker", "payload": {"last": 1, "high": 2, "low": 1, "volume": 3}}`)
	assert.Equal(t, "ticker", out.Kind)
	assert.Empty(t, out.Error, "stream stays open after a failed message")
}

func TestHandleMessageWithCancelledContext(t *testing.T) {
	db, err := database.New(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	server := newTestServer(t, db)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	raw := server.handleMessage(ctx, "virtex", []byte(`{"kind": "trades", "payload": [{"amount": 1, "price": 2, "date": 1700000000, "type": "bid"}]}`))

	var out map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.NotContains(t, out, "error")

	var trades domain.Trades
	require.NoError(t, json.Unmarshal(out["data"], &trades))
	assert.Len(t, trades.Trades, 1)
	assert.Equal(t, "0", db.Health()["journaled_trades"], "journal write is abandoned with its context")
}
