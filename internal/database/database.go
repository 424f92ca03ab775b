package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"marketdata-normalizer/internal/domain"
)

// Service is an append-only journal of normalized trades.
type Service interface {
	// Health returns a map of health status information.
	// The keys and values in the map are service-specific.
	Health() map[string]string

	// SaveTrades appends a batch in order and returns the number of rows
	// written. A failed batch writes nothing.
	SaveTrades(ctx context.Context, exchange string, trades domain.Trades) (int64, error)

	// Close terminates the database connection.
	Close() error
}

type service struct {
	db   *sql.DB
	path string
}

const schema = `
CREATE TABLE IF NOT EXISTS trades (
	id                   INTEGER PRIMARY KEY AUTOINCREMENT,
	exchange             TEXT    NOT NULL,
	type                 TEXT    NOT NULL,
	tradable_amount      TEXT    NOT NULL,
	tradable_identifier  TEXT    NOT NULL,
	transaction_currency TEXT    NOT NULL,
	price                TEXT    NOT NULL,
	price_currency       TEXT    NOT NULL,
	timestamp_ms         INTEGER NOT NULL,
	recorded_at_ms       INTEGER NOT NULL
)`

// New opens (and creates if needed) the sqlite journal at path.
func New(path string) (Service, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create journal directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	// sqlite allows a single writer
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create journal schema: %w", err)
	}

	return &service{db: db, path: path}, nil
}

func (s *service) SaveTrades(ctx context.Context, exchange string, trades domain.Trades) (int64, error) {
	if len(trades.Trades) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin journal transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO trades (exchange, type, tradable_amount, tradable_identifier, transaction_currency,
			price, price_currency, timestamp_ms, recorded_at_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare journal insert: %w", err)
	}
	defer stmt.Close()

	recordedAt := time.Now().UTC().UnixMilli()
	var written int64
	for _, trade := range trades.Trades {
		_, err := stmt.ExecContext(ctx,
			exchange,
			trade.Type.String(),
			trade.TradableAmount.String(),
			trade.TradableIdentifier,
			trade.TransactionCurrency,
			trade.Price.Amount.String(),
			trade.Price.Currency,
			trade.Timestamp.UnixMilli(),
			recordedAt,
		)
		if err != nil {
			return 0, fmt.Errorf("insert journal trade: %w", err)
		}
		written++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit journal transaction: %w", err)
	}
	return written, nil
}

// Health checks the health of the database connection by pinging the database.
func (s *service) Health() map[string]string {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	stats := make(map[string]string)

	err := s.db.PingContext(ctx)
	if err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		return stats
	}

	stats["status"] = "up"
	stats["message"] = "It's healthy"

	dbStats := s.db.Stats()
	stats["open_connections"] = strconv.Itoa(dbStats.OpenConnections)
	stats["in_use"] = strconv.Itoa(dbStats.InUse)
	stats["idle"] = strconv.Itoa(dbStats.Idle)
	stats["wait_count"] = strconv.FormatInt(dbStats.WaitCount, 10)
	stats["wait_duration"] = dbStats.WaitDuration.String()

	var count int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM trades`).Scan(&count); err == nil {
		stats["journaled_trades"] = strconv.FormatInt(count, 10)
	}

	return stats
}

// Close closes the database connection.
func (s *service) Close() error {
	return s.db.Close()
}
