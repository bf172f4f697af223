package store

import (
	"context"
	"crypto/rand"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/concierge/pkg/concierge/order"
)

// Sentinel errors shared by the backends.
var (
	ErrInvalidRecord    = errors.New("invalid record")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Store archives synthesized orders on behalf of the caller. The pipeline
// itself never reads from or writes to a Store.
type Store interface {
	Close() error

	// SaveOrder inserts or replaces the record with rec.ID.
	SaveOrder(ctx context.Context, rec Record) error
	GetOrder(ctx context.Context, id string) (Record, bool, error)
	// ListByRoom returns up to limit records for room, newest first.
	// limit <= 0 means no limit.
	ListByRoom(ctx context.Context, room string, limit int) ([]Record, error)
}

// Record is one archived order.
type Record struct {
	ID        string        `json:"id"`
	CreatedAt time.Time     `json:"createdAt"`
	Source    string        `json:"source"` // summary text the order was built from
	Order     order.Summary `json:"order"`
}

// Room returns the record's room key, "" when the order has no usable room.
func (r Record) Room() string {
	return RoomKey(r.Order.RoomNumber)
}

// Validate checks the fields every backend relies on.
func (r Record) Validate() error {
	if r.ID == "" {
		return errors.Join(ErrInvalidRecord, errors.New("empty id"))
	}
	if r.CreatedAt.IsZero() {
		return errors.Join(ErrInvalidRecord, errors.New("zero created_at"))
	}
	return nil
}

// RoomKey normalizes a room number for indexing. Unknown rooms map to "".
func RoomKey(room string) string {
	r := strings.ToUpper(strings.TrimSpace(room))
	if r == "" || r == "UNKNOWN" || r == strings.ToUpper(order.RoomNotSpecified) {
		return ""
	}
	return r
}

// IDs generates lexically sortable record ids.
type IDs struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// NewIDs returns a generator backed by crypto/rand.
func NewIDs() *IDs {
	return &IDs{entropy: ulid.Monotonic(rand.Reader, 0)}
}

// Next returns a new id for t. Ids for increasing t sort increasingly.
func (g *IDs) Next(t time.Time) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), g.entropy).String()
}

// NewRecord stamps an order with a fresh id and creation time.
func (g *IDs) NewRecord(now time.Time, source string, sum order.Summary) Record {
	return Record{
		ID:        g.Next(now),
		CreatedAt: now.UTC(),
		Source:    source,
		Order:     sum,
	}
}
