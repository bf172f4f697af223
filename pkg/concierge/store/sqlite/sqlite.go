package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/concierge/pkg/concierge/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled and creates the
// orders table if needed.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// A single writer connection avoids SQLITE_BUSY under concurrent saves.
	db.SetMaxOpenConns(1)

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS orders (
	id TEXT PRIMARY KEY,
	room TEXT NOT NULL,
	created_at TEXT NOT NULL,
	source TEXT,
	order_json TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_orders_room ON orders(room, id);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

func (s *sqliteStore) SaveOrder(ctx context.Context, rec store.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	payload, err := json.Marshal(rec.Order)
	if err != nil {
		return fmt.Errorf("encode order %s: %w", rec.ID, err)
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO orders (id, room, created_at, source, order_json)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	room = excluded.room,
	created_at = excluded.created_at,
	source = excluded.source,
	order_json = excluded.order_json`,
		rec.ID, rec.Room(), rec.CreatedAt.UTC().Format(time.RFC3339Nano), rec.Source, string(payload))
	return err
}

func (s *sqliteStore) GetOrder(ctx context.Context, id string) (store.Record, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, source, order_json FROM orders WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return store.Record{}, false, nil
	}
	if err != nil {
		return store.Record{}, false, err
	}
	return rec, true, nil
}

func (s *sqliteStore) ListByRoom(ctx context.Context, room string, limit int) ([]store.Record, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, source, order_json FROM orders WHERE room = ? ORDER BY id DESC LIMIT ?`,
		store.RoomKey(room), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []store.Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (store.Record, error) {
	var (
		rec       store.Record
		createdAt string
		source    sql.NullString
		payload   string
	)
	if err := sc.Scan(&rec.ID, &createdAt, &source, &payload); err != nil {
		return store.Record{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return store.Record{}, fmt.Errorf("order %s: created_at: %w", rec.ID, err)
	}
	rec.CreatedAt = t
	rec.Source = source.String
	if err := json.Unmarshal([]byte(payload), &rec.Order); err != nil {
		return store.Record{}, fmt.Errorf("order %s: decode: %w", rec.ID, err)
	}
	return rec, nil
}
