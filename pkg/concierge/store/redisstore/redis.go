// Package redisstore archives orders in Redis: one JSON value per order
// plus a sorted set per room scored by creation time.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/cognicore/concierge/pkg/concierge/store"
)

// DefaultPrefix namespaces every key written by the store.
const DefaultPrefix = "concierge"

// Store implements store.Store on a Redis client.
type Store struct {
	rdb    redis.UniversalClient
	prefix string
}

// New wraps an existing client. An empty prefix uses DefaultPrefix.
func New(rdb redis.UniversalClient, prefix string) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store{rdb: rdb, prefix: prefix}
}

// Options configures Open.
type Options struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// Open connects to opts.Addr and pings it.
func Open(ctx context.Context, opts Options) (*Store, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("%w: redis %s: %v", store.ErrStoreUnavailable, opts.Addr, err)
	}
	return New(rdb, opts.Prefix), nil
}

// Close closes the underlying client.
func (s *Store) Close() error {
	return s.rdb.Close()
}

func (s *Store) orderKey(id string) string  { return s.prefix + ":order:" + id }
func (s *Store) roomKey(room string) string { return s.prefix + ":room:" + room }

// SaveOrder writes the record and moves it to its room's index.
func (s *Store) SaveOrder(ctx context.Context, rec store.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode order %s: %w", rec.ID, err)
	}

	old, found, err := s.GetOrder(ctx, rec.ID)
	if err != nil {
		return err
	}

	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if found && old.Room() != rec.Room() {
			pipe.ZRem(ctx, s.roomKey(old.Room()), rec.ID)
		}
		pipe.Set(ctx, s.orderKey(rec.ID), payload, 0)
		pipe.ZAdd(ctx, s.roomKey(rec.Room()), redis.Z{
			Score:  float64(rec.CreatedAt.UnixMilli()),
			Member: rec.ID,
		})
		return nil
	})
	return err
}

// GetOrder returns a record by ID.
func (s *Store) GetOrder(ctx context.Context, id string) (store.Record, bool, error) {
	raw, err := s.rdb.Get(ctx, s.orderKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return store.Record{}, false, nil
	}
	if err != nil {
		return store.Record{}, false, err
	}
	var rec store.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return store.Record{}, false, fmt.Errorf("order %s: decode: %w", id, err)
	}
	return rec, true, nil
}

// ListByRoom returns the records for room, newest first.
func (s *Store) ListByRoom(ctx context.Context, room string, limit int) ([]store.Record, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}
	ids, err := s.rdb.ZRevRange(ctx, s.roomKey(store.RoomKey(room)), 0, stop).Result()
	if err != nil {
		return nil, err
	}

	out := make([]store.Record, 0, len(ids))
	for _, id := range ids {
		rec, found, err := s.GetOrder(ctx, id)
		if err != nil {
			return nil, err
		}
		if found {
			out = append(out, rec)
		}
	}
	return out, nil
}
