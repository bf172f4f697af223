// Package synth aggregates the requests found in a call summary into a
// single priced order.
package synth

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/cognicore/concierge/pkg/concierge/dedup"
	"github.com/cognicore/concierge/pkg/concierge/extract"
	"github.com/cognicore/concierge/pkg/concierge/normalize"
	"github.com/cognicore/concierge/pkg/concierge/order"
)

// Pricing selects how order items are built and priced.
type Pricing string

const (
	// PricingCategory emits one flat-priced item per category, with the
	// number of requests in that category as quantity. It is the default.
	PricingCategory Pricing = "category"
	// PricingItem prices every extracted item phrase by its own keywords.
	PricingItem Pricing = "item"
)

// ErrUnknownPricing is returned by ParsePricing.
var ErrUnknownPricing = errors.New("unknown pricing mode")

// ParsePricing maps a config value onto a Pricing. Empty means
// PricingCategory.
func ParsePricing(s string) (Pricing, error) {
	switch p := Pricing(strings.ToLower(strings.TrimSpace(s))); p {
	case "", PricingCategory:
		return PricingCategory, nil
	case PricingItem:
		return p, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPricing, s)
}

// OrderTypeSeparator joins categories in Summary.OrderType.
const OrderTypeSeparator = ", "

// Synthesizer turns summary text into an order.Summary. It holds no state
// between calls and is safe for concurrent use.
type Synthesizer struct {
	pricing Pricing
	log     *zap.Logger
}

// New returns a Synthesizer. Empty pricing means PricingCategory; a nil
// logger discards output.
func New(pricing Pricing, log *zap.Logger) *Synthesizer {
	if pricing == "" {
		pricing = PricingCategory
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Synthesizer{pricing: pricing, log: log}
}

// Pricing reports the configured pricing mode.
func (s *Synthesizer) Pricing() Pricing { return s.pricing }

// Synthesize builds the order for summary. prior, when non-nil, supplies
// the room number and guest fields the text does not mention.
func (s *Synthesizer) Synthesize(summary string, prior *order.Summary) order.Summary {
	reqs := dedup.Requests(extract.Requests(summary))
	return s.build(summary, reqs, prior)
}

// SynthesizeRequests is Synthesize with the requests already extracted.
func (s *Synthesizer) SynthesizeRequests(summary string, reqs []order.Request, prior *order.Summary) order.Summary {
	return s.build(summary, dedup.Requests(reqs), prior)
}

func (s *Synthesizer) build(summary string, reqs []order.Request, prior *order.Summary) order.Summary {
	groups := GroupRequests(reqs)

	var items []order.Item
	switch s.pricing {
	case PricingItem:
		items = dedup.Items(phraseItems(summary, reqs))
	default:
		items = dedup.Items(categoryItems(groups))
	}

	out := order.Summary{
		OrderType:           orderType(summary, groups),
		DeliveryTime:        deliveryTime(summary, groups),
		RoomNumber:          roomNumber(summary, reqs, prior),
		Items:               items,
		TotalAmount:         order.Total(items),
		GuestName:           extract.GuestName(summary),
		GuestEmail:          extract.GuestEmail(summary),
		GuestPhone:          extract.GuestPhone(summary),
		SpecialInstructions: extract.SpecialInstructions(summary),
	}
	if prior != nil {
		out.GuestName = orPrior(out.GuestName, prior.GuestName)
		out.GuestEmail = orPrior(out.GuestEmail, prior.GuestEmail)
		out.GuestPhone = orPrior(out.GuestPhone, prior.GuestPhone)
		out.SpecialInstructions = orPrior(out.SpecialInstructions, prior.SpecialInstructions)
	}

	if stated, ok := extract.ExplicitTotal(summary); ok && stated != out.TotalAmount {
		s.log.Debug("stated total differs from computed total",
			zap.Float64("stated", stated),
			zap.Float64("computed", out.TotalAmount))
	}
	s.log.Debug("order synthesized",
		zap.Int("requests", len(reqs)),
		zap.Int("groups", len(groups)),
		zap.Int("items", len(items)),
		zap.String("orderType", out.OrderType),
		zap.String("deliveryTime", string(out.DeliveryTime)),
		zap.String("pricing", string(s.pricing)))
	return out
}

// phraseItems builds one item per extracted phrase. An embedded request
// block is not a phrase source. When the text yields no phrases the request
// texts are used instead.
func phraseItems(summary string, reqs []order.Request) []order.Item {
	phrases := extract.Items(extract.StripRequestBlock(summary))
	if len(phrases) == 0 {
		for _, r := range reqs {
			phrases = append(phrases, r.Text)
		}
	}
	items := make([]order.Item, 0, len(phrases))
	for i, p := range phrases {
		items = append(items, normalize.Item(p, i))
	}
	return items
}

// orderType lists the canonical categories of the requests in order of
// first appearance. Without requests it falls back to the categories
// detected on the whole text, which is "other" for empty text.
func orderType(summary string, groups []Group) string {
	var keys []string
	seen := make(map[string]bool)
	add := func(k string) {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	for _, g := range groups {
		add(g.Category)
	}
	if len(keys) == 0 {
		for _, label := range extract.ServiceTypes(summary) {
			add(normalize.RequestType(label))
		}
	}
	return strings.Join(keys, OrderTypeSeparator)
}

func deliveryTime(summary string, groups []Group) order.DeliveryTime {
	for _, g := range groups {
		if g.Urgent {
			return order.DeliveryASAP
		}
	}
	return extract.DeliveryTime(summary)
}

// roomNumber prefers the first request with a usable room, then the room
// stated in the text, then the prior order's room.
func roomNumber(summary string, reqs []order.Request, prior *order.Summary) string {
	for _, r := range reqs {
		if room := r.Detail(order.DetailRoomNumber); usableRoom(room) {
			return room
		}
	}
	if room, ok := extract.RoomNumber(summary); ok {
		return room
	}
	if prior != nil && usableRoom(prior.RoomNumber) {
		return prior.RoomNumber
	}
	return order.RoomNotSpecified
}

func usableRoom(room string) bool {
	r := strings.ToLower(strings.TrimSpace(room))
	return r != "" && r != "unknown" && r != strings.ToLower(order.RoomNotSpecified)
}

func orPrior(v, prior string) string {
	if v != "" {
		return v
	}
	return prior
}
