package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/cognicore/concierge/pkg/concierge/order"
)

var explicitTotal = regexp.MustCompile(`(?i)\b(?:total|cost|price)(?:\s+amount)?\s*(?:is\s+|[:=]\s*)?\$\s?(\d+(?:,\d{3})*(?:\.\d{1,2})?)`)

// ExplicitTotal returns a "total/cost/price: $N" figure stated in text.
func ExplicitTotal(text string) (float64, bool) {
	m := explicitTotal.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return order.Round(v), true
}

// TotalAmount returns the explicit total stated in text, or the sum of
// price times quantity over items.
func TotalAmount(text string, items []order.Item) float64 {
	if v, ok := ExplicitTotal(text); ok {
		return v
	}
	return order.Total(items)
}
