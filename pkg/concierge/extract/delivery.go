package extract

import (
	"regexp"

	"github.com/cognicore/concierge/pkg/concierge/order"
)

type deliveryRule struct {
	value   order.DeliveryTime
	pattern *regexp.Regexp
}

// Evaluated in this order; the first hit wins.
var deliveryRules = []deliveryRule{
	{order.DeliveryASAP, regexp.MustCompile(`(?i)\b(?:asap|as soon as possible|immediate(?:ly)?|right away|right now|urgent(?:ly)?|straight away|quickly)\b`)},
	{order.Delivery30Min, regexp.MustCompile(`(?i)(?:\b(?:30|thirty)\s*-?\s*min(?:ute)?s?\b|\bhalf(?: an|-an)? hour\b|\bhalf-hour\b)`)},
	{order.Delivery1Hour, regexp.MustCompile(`(?i)(?:\b(?:1|one|an)\s*-?\s*h(?:ou)?r\b|\bwithin the hour\b|\b60\s*min(?:ute)?s?\b)`)},
	{order.DeliverySpecific, regexp.MustCompile(`(?i)(?:\bat\s+\d{1,2}(?::\d{2})?\s*(?:am|pm|a\.m\.|p\.m\.|h)?\b|\b\d{1,2}:\d{2}\b|\b\d{1,2}\s*(?:am|pm)\b|\btomorrow\b|\btonight\b|\bthis (?:morning|afternoon|evening)\b|\b(?:morning|afternoon|evening)\b|\bnoon\b|\bmidnight\b|\bspecific time\b|\bscheduled\b)`)},
}

// DeliveryTime returns the delivery preference expressed in text. Rules are
// tested asap, 30min, 1hour, specific; the default is asap.
func DeliveryTime(text string) order.DeliveryTime {
	for _, rule := range deliveryRules {
		if rule.pattern.MatchString(text) {
			return rule.value
		}
	}
	return order.DeliveryASAP
}
