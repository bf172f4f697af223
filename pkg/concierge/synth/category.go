package synth

import (
	"strings"

	"github.com/cognicore/concierge/pkg/concierge/normalize"
	"github.com/cognicore/concierge/pkg/concierge/order"
)

// Category describes a canonical service category.
type Category struct {
	Key   string
	Name  string
	Price float64
}

// DefaultCategoryPrice applies to categories without a flat price.
const DefaultCategoryPrice = 10

var categories = []Category{
	{order.CategoryRoomService, "Room Service", 15},
	{order.CategoryHousekeeping, "Housekeeping", 8},
	{order.CategoryTransportation, "Transportation", 25},
	{order.CategoryToursActivities, "Tours & Activities", 35},
	{order.CategorySpa, "Spa & Wellness", 30},
	{order.CategoryMaintenance, "Maintenance", DefaultCategoryPrice},
	{order.CategoryConcierge, "Concierge", DefaultCategoryPrice},
	{order.CategorySecurity, "Security", DefaultCategoryPrice},
	{order.CategorySpecialOccasion, "Special Occasion", DefaultCategoryPrice},
	{order.CategoryOther, "Other", DefaultCategoryPrice},
}

// Categories returns the category table in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// Lookup returns the table entry for key.
func Lookup(key string) (Category, bool) {
	for _, c := range categories {
		if c.Key == key {
			return c, true
		}
	}
	return Category{}, false
}

// CategoryPrice is the flat per-request price for a canonical category.
func CategoryPrice(key string) float64 {
	if c, ok := Lookup(key); ok {
		return c.Price
	}
	return DefaultCategoryPrice
}

// Group aggregates the requests that share a canonical category.
type Group struct {
	Category string
	Count    int
	Urgent   bool
	Requests []order.Request
}

// GroupRequests buckets requests by normalized type, in order of first
// appearance. A group is urgent when any member's time detail mentions
// "urgent" or "immediate".
func GroupRequests(reqs []order.Request) []Group {
	var groups []Group
	pos := make(map[string]int)
	for _, r := range reqs {
		key := normalize.RequestType(r.Type)
		i, ok := pos[key]
		if !ok {
			i = len(groups)
			pos[key] = i
			groups = append(groups, Group{Category: key})
		}
		g := &groups[i]
		g.Count++
		g.Requests = append(g.Requests, r)
		if isUrgent(r.Detail(order.DetailTime)) {
			g.Urgent = true
		}
	}
	return groups
}

func isUrgent(timeDetail string) bool {
	t := strings.ToLower(timeDetail)
	return strings.Contains(t, "urgent") || strings.Contains(t, "immediate")
}

// categoryItems builds one flat-priced item per group.
func categoryItems(groups []Group) []order.Item {
	items := make([]order.Item, 0, len(groups))
	for _, g := range groups {
		name := g.Category
		if c, ok := Lookup(g.Category); ok {
			name = c.Name
		}
		texts := make([]string, len(g.Requests))
		for i, r := range g.Requests {
			texts[i] = "- " + r.Text
		}
		items = append(items, order.Item{
			Name:        name,
			Description: strings.Join(texts, "\n"),
			Quantity:    g.Count,
			Price:       CategoryPrice(g.Category),
			ServiceType: g.Category,
		})
	}
	return items
}
