package extract

import (
	"strings"

	"github.com/cognicore/concierge/pkg/concierge/order"
)

const weekday = `(?:mon|tues|wednes|thurs|fri|satur|sun)day`

var (
	dateDetectors = []Detector{
		rx("relative-date", `(?i)\b(today|tonight|tomorrow|day after tomorrow|(?:this|next)\s+(?:`+weekday+`|week(?:end)?))\b`),
		rx("weekday", `(?i)\b(?:on\s+)?(`+weekday+`)\b`),
		rx("numeric-date", `\b(\d{1,2}[/-]\d{1,2}(?:[/-]\d{2,4})?)\b`),
		rx("month-date", `(?i)\b((?:jan|feb|mar|apr|may|jun|jul|aug|sep|sept|oct|nov|dec)[a-z]*\.?\s+\d{1,2}(?:st|nd|rd|th)?)\b`),
	}
	peopleDetectors = []Detector{
		rx("count", `(?i)\b(\d{1,3}|one|two|three|four|five|six|seven|eight|nine|ten|twelve)\s+(?:people|persons?|guests?|adults?|pax|of us)\b`),
		rx("party", `(?i)\b(?:party|group|table) (?:of|for) (\d{1,3})\b`),
	}
	locationDetectors = []Detector{
		rx("place", `(?i)\b(?:to|at|from|in|near|by)\s+(?:the\s+)?(airport|lobby|pool(?:side)?|beach|spa|restaurant|bar|gym|reception|front desk|train station|bus station|station|city cent(?:er|re)|old town|downtown|hotel entrance|entrance|rooftop|terrace|balcony|room\s+\d{1,5})\b`),
		rx("proper-noun", `\b(?:to|at|from|near)\s+((?:[\p{Lu}][\p{L}]+)(?:\s+[\p{Lu}][\p{L}]+){0,3})`),
	}
	timeDetectors = []Detector{
		rx("clock", `(?i)\b(\d{1,2}(?::\d{2})?\s*(?:am|pm|a\.m\.|p\.m\.))`),
		rx("24h", `\b(\d{1,2}:\d{2})\b`),
		rx("part-of-day", `(?i)\b((?:this\s+)?(?:morning|afternoon|evening|noon|midnight)|tonight)\b`),
		rx("urgency", `(?i)\b(urgent(?:ly)?|immediate(?:ly)?|asap|right away)\b`),
	}
	amountDetectors = []Detector{
		rx("dollar", `(\$\s?\d+(?:,\d{3})*(?:\.\d{1,2})?)`),
		rx("suffix", `(?i)\b(\d+(?:[.,]\d+)*\s*(?:usd|dollars?|vnd|dong|eur|euros?))\b`),
	}
)

// Date returns a date expression ("tomorrow", "friday", "12/05").
func Date(text string) (string, bool) { return First(dateDetectors, text) }

// People returns a party size ("2", "four").
func People(text string) (string, bool) { return First(peopleDetectors, text) }

// Location returns a destination or venue ("airport", "Ben Thanh Market").
func Location(text string) (string, bool) { return First(locationDetectors, text) }

// TimeOfDay returns a time expression ("9am", "19:30", "this evening"),
// falling back to an urgency cue ("immediately").
func TimeOfDay(text string) (string, bool) { return First(timeDetectors, text) }

// Amount returns a currency amount ("$15", "200000 vnd").
func Amount(text string) (string, bool) { return First(amountDetectors, text) }

// Details collects every detail detector that hits on text, keyed by the
// order.Detail* constants. Absent fields are omitted.
func Details(text string) map[string]string {
	details := make(map[string]string)
	set := func(key string, fn func(string) (string, bool)) {
		if v, ok := fn(text); ok {
			details[key] = v
		}
	}
	set(order.DetailDate, Date)
	set(order.DetailTime, TimeOfDay)
	set(order.DetailLocation, Location)
	set(order.DetailPeople, People)
	set(order.DetailAmount, Amount)
	return details
}

// normalizeSpace collapses whitespace runs into single spaces.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
