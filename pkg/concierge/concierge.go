// Package concierge turns free-form hotel call summaries into structured,
// priced orders and segments assistant text against a dictionary of known
// terms. Engine wires the pipeline packages together:
//
//	extract -> normalize -> dedup -> synth
//
// Every stage is a pure function of its input and the read-only dictionary,
// so one Engine can serve concurrent callers.
package concierge

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/cognicore/concierge/pkg/concierge/dict"
	"github.com/cognicore/concierge/pkg/concierge/extract"
	"github.com/cognicore/concierge/pkg/concierge/order"
	"github.com/cognicore/concierge/pkg/concierge/segment"
	"github.com/cognicore/concierge/pkg/concierge/store"
	"github.com/cognicore/concierge/pkg/concierge/synth"
)

// ErrNoStore is returned by the archive methods when Options.Store is nil.
var ErrNoStore = errors.New("no order store configured")

// Options configures an Engine
type Options struct {
	Index   *dict.Index   // nil means an empty dictionary
	Pricing synth.Pricing // empty means synth.PricingCategory
	Store   store.Store   // optional order archive
	Logger  *zap.Logger
	Now     func() time.Time
}

// Engine is the main facade
type Engine struct {
	index    *dict.Index
	maxMatch *segment.MaxMatch
	tiered   *segment.Tiered
	synth    *synth.Synthesizer
	store    store.Store
	ids      *store.IDs
	log      *zap.Logger
	now      func() time.Time
}

// New creates an Engine with the given dependencies
func New(opts Options) *Engine {
	idx := opts.Index
	if idx == nil {
		idx = dict.MustNew(nil)
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	mm := segment.NewMaxMatch(idx)
	return &Engine{
		index:    idx,
		maxMatch: mm,
		tiered:   segment.NewTiered(mm),
		synth:    synth.New(opts.Pricing, log.Named("synth")),
		store:    opts.Store,
		ids:      store.NewIDs(),
		log:      log,
		now:      now,
	}
}

// Close releases the archive, if any.
func (e *Engine) Close() error {
	if e.store == nil {
		return nil
	}
	return e.store.Close()
}

// Index returns the dictionary the engine segments against.
func (e *Engine) Index() *dict.Index { return e.index }

// Segment splits text with the two-tier policy: the coarse word segmenter
// when its result is usable, dictionary maximum matching otherwise.
func (e *Engine) Segment(text string) []segment.Token {
	return e.tiered.Segment(text)
}

// Match splits text by dictionary maximum matching only.
func (e *Engine) Match(text string) []segment.Token {
	return e.maxMatch.Segment(text)
}

// MatchPartial is Match for a buffer that may still grow. The returned
// pending suffix could extend into a longer dictionary term and should be
// resubmitted with the next chunk.
func (e *Engine) MatchPartial(text string) ([]segment.Token, string) {
	return e.maxMatch.SegmentPartial(text)
}

// Requests extracts the guest requests in summary.
func (e *Engine) Requests(summary string) []order.Request {
	return extract.Requests(summary)
}

// Summarize builds the order for summary, falling back to prior for fields
// the text does not mention.
func (e *Engine) Summarize(summary string, prior *order.Summary) order.Summary {
	return e.synth.Synthesize(summary, prior)
}

// SummarizeJSON is Summarize for a JSON-encoded summary. Anything other
// than a JSON string yields an *order.InputError.
func (e *Engine) SummarizeJSON(raw json.RawMessage, prior *order.Summary) (order.Summary, error) {
	text, err := DecodeSummary(raw)
	if err != nil {
		return order.Summary{}, err
	}
	return e.Summarize(text, prior), nil
}

// DecodeSummary decodes a JSON string. Numbers, objects, arrays, booleans,
// null and malformed JSON are rejected with an *order.InputError.
func DecodeSummary(raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	kind := jsonKind(trimmed)
	if kind != "string" {
		return "", &order.InputError{Field: "summary", Kind: kind}
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return "", &order.InputError{Field: "summary", Kind: "malformed string"}
	}
	return s, nil
}

func jsonKind(b []byte) string {
	if len(b) == 0 {
		return "nothing"
	}
	if !json.Valid(b) {
		return "malformed JSON"
	}
	switch b[0] {
	case '"':
		return "string"
	case '{':
		return "object"
	case '[':
		return "array"
	case 't', 'f':
		return "boolean"
	case 'n':
		return "null"
	}
	return "number"
}

// Submit summarizes text and archives the result. The latest archived order
// for the room named in text, if any, serves as prior.
func (e *Engine) Submit(ctx context.Context, text string) (store.Record, error) {
	if e.store == nil {
		return store.Record{}, ErrNoStore
	}

	var prior *order.Summary
	if room, ok := extract.RoomNumber(text); ok {
		recs, err := e.store.ListByRoom(ctx, room, 1)
		if err != nil {
			return store.Record{}, err
		}
		if len(recs) > 0 {
			prior = &recs[0].Order
			e.log.Debug("using prior order", zap.String("room", room), zap.String("prior", recs[0].ID))
		}
	}

	rec := e.ids.NewRecord(e.now(), text, e.Summarize(text, prior))
	if err := e.store.SaveOrder(ctx, rec); err != nil {
		return store.Record{}, err
	}
	e.log.Info("order archived",
		zap.String("id", rec.ID),
		zap.String("room", rec.Order.RoomNumber),
		zap.Int("items", len(rec.Order.Items)),
		zap.Float64("total", rec.Order.TotalAmount))
	return rec, nil
}

// History lists archived orders for room, newest first.
func (e *Engine) History(ctx context.Context, room string, limit int) ([]store.Record, error) {
	if e.store == nil {
		return nil, ErrNoStore
	}
	return e.store.ListByRoom(ctx, room, limit)
}

// Order returns an archived order by id.
func (e *Engine) Order(ctx context.Context, id string) (store.Record, bool, error) {
	if e.store == nil {
		return store.Record{}, false, ErrNoStore
	}
	return e.store.GetOrder(ctx, id)
}
