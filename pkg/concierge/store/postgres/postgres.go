// Package postgres archives orders in PostgreSQL through lib/pq.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/cognicore/concierge/pkg/concierge/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS orders (
	id TEXT PRIMARY KEY,
	room TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	source TEXT,
	order_json JSONB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_orders_room ON orders(room, id DESC)`

const (
	upsertOrder = `INSERT INTO orders (id, room, created_at, source, order_json)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO UPDATE SET
	room = EXCLUDED.room,
	created_at = EXCLUDED.created_at,
	source = EXCLUDED.source,
	order_json = EXCLUDED.order_json`
	selectOrder     = `SELECT id, created_at, source, order_json FROM orders WHERE id = $1`
	selectByRoom    = `SELECT id, created_at, source, order_json FROM orders WHERE room = $1 ORDER BY id DESC LIMIT $2`
	selectAllByRoom = `SELECT id, created_at, source, order_json FROM orders WHERE room = $1 ORDER BY id DESC`
)

// Store implements store.Store on a *sql.DB opened with the "postgres"
// driver.
type Store struct {
	db *sql.DB
}

// Open connects with dsn, pings the server and ensures the schema exists.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: postgres: %v", store.ErrStoreUnavailable, err)
	}
	s := New(db)
	if err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an open database. Call Migrate before first use.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Migrate creates the orders table and index if missing.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) SaveOrder(ctx context.Context, rec store.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	payload, err := json.Marshal(rec.Order)
	if err != nil {
		return fmt.Errorf("encode order %s: %w", rec.ID, err)
	}
	_, err = s.db.ExecContext(ctx, upsertOrder,
		rec.ID, rec.Room(), rec.CreatedAt.UTC(), rec.Source, payload)
	return err
}

func (s *Store) GetOrder(ctx context.Context, id string) (store.Record, bool, error) {
	rec, err := scanRecord(s.db.QueryRowContext(ctx, selectOrder, id))
	if err == sql.ErrNoRows {
		return store.Record{}, false, nil
	}
	if err != nil {
		return store.Record{}, false, err
	}
	return rec, true, nil
}

func (s *Store) ListByRoom(ctx context.Context, room string, limit int) ([]store.Record, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if limit > 0 {
		rows, err = s.db.QueryContext(ctx, selectByRoom, store.RoomKey(room), limit)
	} else {
		rows, err = s.db.QueryContext(ctx, selectAllByRoom, store.RoomKey(room))
	}
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
		createdAt time.Time
		source    sql.NullString
		payload   []byte
	)
	if err := sc.Scan(&rec.ID, &createdAt, &source, &payload); err != nil {
		return store.Record{}, err
	}
	rec.CreatedAt = createdAt.UTC()
	rec.Source = source.String
	if err := json.Unmarshal(payload, &rec.Order); err != nil {
		return store.Record{}, fmt.Errorf("order %s: decode: %w", rec.ID, err)
	}
	return rec, nil
}
