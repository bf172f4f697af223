// Package normalize maps raw request labels onto canonical categories and
// turns raw item phrases into priced order items.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cognicore/concierge/pkg/concierge/extract"
	"github.com/cognicore/concierge/pkg/concierge/order"
)

// Canonical lists every category key RequestType can return.
var Canonical = []string{
	order.CategoryRoomService,
	order.CategoryHousekeeping,
	order.CategoryTransportation,
	order.CategoryToursActivities,
	order.CategorySpa,
	order.CategoryMaintenance,
	order.CategoryConcierge,
	order.CategorySecurity,
	order.CategorySpecialOccasion,
	order.CategoryOther,
}

type alias struct {
	substr   string
	category string
}

// Checked in order; the first substring found wins.
var aliases = []alias{
	{"room service", order.CategoryRoomService},
	{"in-room dining", order.CategoryRoomService},
	{"food", order.CategoryRoomService},
	{"dining", order.CategoryRoomService},
	{"meal", order.CategoryRoomService},
	{"breakfast", order.CategoryRoomService},
	{"lunch", order.CategoryRoomService},
	{"dinner", order.CategoryRoomService},
	{"drink", order.CategoryRoomService},
	{"beverage", order.CategoryRoomService},
	{"menu", order.CategoryRoomService},

	{"housekeeping", order.CategoryHousekeeping},
	{"cleaning", order.CategoryHousekeeping},
	{"clean", order.CategoryHousekeeping},
	{"towel", order.CategoryHousekeeping},
	{"laundry", order.CategoryHousekeeping},
	{"linen", order.CategoryHousekeeping},
	{"amenit", order.CategoryHousekeeping},
	{"toiletr", order.CategoryHousekeeping},

	{"transport", order.CategoryTransportation},
	{"taxi", order.CategoryTransportation},
	{"shuttle", order.CategoryTransportation},
	{"airport", order.CategoryTransportation},
	{"transfer", order.CategoryTransportation},
	{"cab", order.CategoryTransportation},
	{"rental car", order.CategoryTransportation},
	{"car service", order.CategoryTransportation},

	{"tour", order.CategoryToursActivities},
	{"activit", order.CategoryToursActivities},
	{"excursion", order.CategoryToursActivities},
	{"sightseeing", order.CategoryToursActivities},

	{"spa", order.CategorySpa},
	{"massage", order.CategorySpa},
	{"wellness", order.CategorySpa},
	{"sauna", order.CategorySpa},
	{"gym", order.CategorySpa},
	{"fitness", order.CategorySpa},

	{"technical", order.CategoryMaintenance},
	{"maintenance", order.CategoryMaintenance},
	{"repair", order.CategoryMaintenance},
	{"wifi", order.CategoryMaintenance},
	{"wi-fi", order.CategoryMaintenance},

	{"concierge", order.CategoryConcierge},
	{"reservation", order.CategoryConcierge},
	{"booking", order.CategoryConcierge},

	{"security", order.CategorySecurity},
	{"lost", order.CategorySecurity},
	{"emergency", order.CategorySecurity},

	{"special occasion", order.CategorySpecialOccasion},
	{"birthday", order.CategorySpecialOccasion},
	{"anniversary", order.CategorySpecialOccasion},
	{"celebrat", order.CategorySpecialOccasion},
}

// RequestType maps a raw label to a canonical category. Labels that already
// are canonical keys pass through; otherwise the alias table is searched
// case-insensitively by substring. Anything unmatched is "other".
func RequestType(label string) string {
	l := strings.ToLower(strings.TrimSpace(label))
	if l == "" {
		return order.CategoryOther
	}
	for _, c := range Canonical {
		if l == c {
			return c
		}
	}
	for _, a := range aliases {
		if strings.Contains(l, a.substr) {
			return a.category
		}
	}
	return order.CategoryOther
}

var (
	leadingMarker  = regexp.MustCompile(`^\s*(?:[-*•–]+|\d{1,2}[.)])\s*`)
	quantityPrefix = regexp.MustCompile(`^(\d{1,3})(?:\s*[x×])?\s+(\S.*)$`)
	leadingArticle = regexp.MustCompile(`(?i)^(?:a|an|the|some)\s+`)
)

// Item builds the order item for a raw phrase. index is the zero-based
// position in the extracted list and becomes ID index+1.
func Item(rawText string, index int) order.Item {
	text := strings.TrimSpace(leadingMarker.ReplaceAllString(rawText, ""))

	quantity := 1
	if m := quantityPrefix.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			quantity = n
		}
		text = m[2]
	}
	text = leadingArticle.ReplaceAllString(text, "")
	name := Capitalize(strings.Join(strings.Fields(text), " "))

	return order.Item{
		ID:          strconv.Itoa(index + 1),
		Name:        name,
		Description: Description(name),
		Quantity:    quantity,
		Price:       ItemPrice(name),
		ServiceType: RequestType(extract.ServiceTypes(name)[0]),
	}
}

// Description lists the date, people, location, time and amount found in
// text, one "Label: value" line each, omitting absent fields. With none
// found it returns "Details for <text>".
func Description(text string) string {
	fields := []struct {
		label string
		fn    func(string) (string, bool)
	}{
		{"Date", extract.Date},
		{"People", extract.People},
		{"Location", extract.Location},
		{"Time", extract.TimeOfDay},
		{"Amount", extract.Amount},
	}

	var lines []string
	for _, f := range fields {
		if v, ok := f.fn(text); ok {
			lines = append(lines, f.label+": "+v)
		}
	}
	if len(lines) == 0 {
		return "Details for " + text
	}
	return strings.Join(lines, "\n")
}

// Capitalize upper-cases the first letter of s.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// MaxDisplayName is the longest name DisplayName returns, in code points.
const MaxDisplayName = 60

// DisplayName shortens name for display, ending it with "..." when it is
// longer than MaxDisplayName code points.
func DisplayName(name string) string {
	runes := []rune(name)
	if len(runes) <= MaxDisplayName {
		return name
	}
	return strings.TrimRight(string(runes[:MaxDisplayName-3]), " ") + "..."
}
