package normalize

import "regexp"

// Per-item price groups. These estimate a single ad-hoc item from its name
// and are separate from the per-category flat prices used when aggregating
// whole categories (see synth.CategoryPrice).
const (
	GroupFood         = "food"
	GroupBeverage     = "beverage"
	GroupRoomSupplies = "room-supplies"
	GroupServices     = "services"
	GroupTransport    = "transport"
	GroupDefault      = "default"
)

type priceRule struct {
	group   string
	price   float64
	pattern *regexp.Regexp
}

var priceRules = []priceRule{
	{GroupFood, 15, regexp.MustCompile(`(?i)\b(?:sandwich|burger|pizza|meal|breakfast|brunch|lunch|dinner|salad|soup|pasta|steak|dessert|pho\b|noodle|rice|food|snack|fruit|cake)`)},
	{GroupBeverage, 8, regexp.MustCompile(`(?i)\b(?:coffee|tea\b|juice|wine|beer|water|drink|soda|cocktail|beverage|smoothie)`)},
	{GroupRoomSupplies, 5, regexp.MustCompile(`(?i)\b(?:towel|pillow|blanket|sheet|soap|shampoo|toothbrush|toothpaste|toiletr|amenit|linen|hanger|slipper|robe)`)},
	{GroupServices, 20, regexp.MustCompile(`(?i)\b(?:clean|laundry|massage|spa\b|wake[\s-]?up|ironing|service|repair|housekeeping|facial)`)},
	{GroupTransport, 30, regexp.MustCompile(`(?i)\b(?:taxi|cab\b|shuttle|car\b|transfer|airport|limo|ride)`)},
}

// DefaultItemPrice applies when no group matches.
const DefaultItemPrice = 10

// PriceGroup returns the first price group whose keywords appear in name.
func PriceGroup(name string) (string, float64) {
	for _, r := range priceRules {
		if r.pattern.MatchString(name) {
			return r.group, r.price
		}
	}
	return GroupDefault, DefaultItemPrice
}

// ItemPrice returns the heuristic unit price for an item name.
func ItemPrice(name string) float64 {
	_, p := PriceGroup(name)
	return p
}
