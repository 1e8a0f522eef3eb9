package repository

import (
	"context"
	"database/sql"
	"fmt"

	"FinTalk/internal/domain/models"
	domrepo "FinTalk/internal/domain/repository"
)

// ClickHouseTurnLog implements TurnLog on ClickHouse.
type ClickHouseTurnLog struct {
	db    *sql.DB
	table string
}

func NewClickHouseTurnLog(db *sql.DB, table string) domrepo.TurnLog {
	if table == "" {
		table = "chat_turns"
	}
	return &ClickHouseTurnLog{db: db, table: table}
}

// TurnLogSchema returns the DDL for the turn log table.
func TurnLogSchema(table string) []string {
	if table == "" {
		table = "chat_turns"
	}
	return []string{fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
    ts DateTime64(3),
    session_key String,
    query String,
    intents Array(String),
    entity String,
    symbol String,
    from_memory UInt8,
    duration_ms UInt32,
    error_kind String
) ENGINE = MergeTree()
PARTITION BY toYYYYMM(ts)
ORDER BY (session_key, ts)
TTL toDateTime(ts) + INTERVAL 90 DAY`, table)}
}

func (l *ClickHouseTurnLog) Insert(ctx context.Context, rec *models.TurnRecord) error {
	q := fmt.Sprintf(
		"INSERT INTO %s (ts, session_key, query, intents, entity, symbol, from_memory, duration_ms, error_kind) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		l.table)

	fromMemory := uint8(0)
	if rec.FromMemory {
		fromMemory = 1
	}
	_, err := l.db.ExecContext(ctx, q,
		rec.At,
		rec.SessionKey,
		rec.Query,
		rec.Intents,
		rec.Entity,
		rec.Symbol,
		fromMemory,
		uint32(rec.DurationMs),
		rec.ErrorKind,
	)
	if err != nil {
		return fmt.Errorf("insert turn: %w", err)
	}
	return nil
}

func (l *ClickHouseTurnLog) Close() error {
	return nil // DB connection owned by the clickhouse client
}
