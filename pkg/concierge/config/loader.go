package config

import (
	"context"
	"fmt"

	"github.com/cognicore/concierge/pkg/concierge/dict"
	"github.com/cognicore/concierge/pkg/concierge/segment"
	"github.com/cognicore/concierge/pkg/concierge/store"
	"github.com/cognicore/concierge/pkg/concierge/store/memstore"
	"github.com/cognicore/concierge/pkg/concierge/store/postgres"
	"github.com/cognicore/concierge/pkg/concierge/store/redisstore"
	"github.com/cognicore/concierge/pkg/concierge/store/sqlite"
)

// Loader loads the dictionary asset and constructs components
type Loader struct {
	DictPath string
}

// Components holds the loaded, read-only components
type Components struct {
	Index       *dict.Index
	DictVersion string
	Segmenter   *segment.Tiered
}

// Load reads the dictionary asset. An empty DictPath yields an empty index,
// which segments every input character by character.
func (l *Loader) Load() (*Components, error) {
	comp := &Components{}

	if l.DictPath != "" {
		idx, version, err := dict.Load(l.DictPath)
		if err != nil {
			return nil, fmt.Errorf("load dictionary: %w", err)
		}
		comp.Index = idx
		comp.DictVersion = version
	} else {
		comp.Index = dict.MustNew(nil)
	}

	comp.Segmenter = segment.NewTiered(segment.NewMaxMatch(comp.Index))
	return comp, nil
}

// OpenStore opens the configured archive. DriverNone returns a nil Store.
func OpenStore(ctx context.Context, c Store) (store.Store, error) {
	switch c.Driver {
	case "", DriverNone:
		return nil, nil
	case DriverMemory:
		return memstore.New(), nil
	case DriverSQLite:
		return sqlite.OpenSQLite(ctx, c.Path)
	case DriverPostgres:
		st, err := postgres.Open(ctx, c.DSN)
		if err != nil {
			return nil, err
		}
		return st, nil
	case DriverRedis:
		st, err := redisstore.Open(ctx, redisstore.Options{
			Addr:     c.Addr,
			Password: c.Password,
			DB:       c.DB,
			Prefix:   c.Prefix,
		})
		if err != nil {
			return nil, err
		}
		return st, nil
	}
	return nil, fmt.Errorf("%w: unknown store driver %q", ErrInvalidConfig, c.Driver)
}
