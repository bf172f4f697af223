package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/cognicore/concierge/pkg/concierge/order"
	"github.com/cognicore/concierge/pkg/concierge/store"
)

// Store is an in-memory implementation of store.Store.
type Store struct {
	mu      sync.RWMutex
	records map[string]store.Record
	byRoom  map[string]map[string]struct{}
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		records: make(map[string]store.Record),
		byRoom:  make(map[string]map[string]struct{}),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// SaveOrder inserts or replaces a record, keyed by ID.
func (s *Store) SaveOrder(ctx context.Context, rec store.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.records[rec.ID]; ok {
		if ids := s.byRoom[old.Room()]; ids != nil {
			delete(ids, rec.ID)
		}
	}
	s.records[rec.ID] = copyRecord(rec)
	room := rec.Room()
	if s.byRoom[room] == nil {
		s.byRoom[room] = make(map[string]struct{})
	}
	s.byRoom[room][rec.ID] = struct{}{}
	return nil
}

// GetOrder returns a record by ID.
func (s *Store) GetOrder(ctx context.Context, id string) (store.Record, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return store.Record{}, false, nil
	}
	return copyRecord(rec), true, nil
}

// ListByRoom returns the records for room, newest first.
func (s *Store) ListByRoom(ctx context.Context, room string, limit int) ([]store.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.byRoom[store.RoomKey(room)]))
	for id := range s.byRoom[store.RoomKey(room)] {
		ids = append(ids, id)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(ids)))
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}

	out := make([]store.Record, 0, len(ids))
	for _, id := range ids {
		out = append(out, copyRecord(s.records[id]))
	}
	return out, nil
}

func copyRecord(r store.Record) store.Record {
	if r.Order.Items != nil {
		r.Order.Items = append([]order.Item(nil), r.Order.Items...)
	}
	return r
}
