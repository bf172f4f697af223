package normalize

import (
	"strings"
	"testing"

	"github.com/cognicore/concierge/pkg/concierge/order"
)

func TestRequestTypeCanonicalPassThrough(t *testing.T) {
	for _, c := range Canonical {
		if got := RequestType(c); got != c {
			t.Errorf("RequestType(%q) = %q, want unchanged", c, got)
		}
	}
}

func TestRequestTypeAliases(t *testing.T) {
	cases := map[string]string{
		"food":                   order.CategoryRoomService,
		"Food & Beverage":        order.CategoryRoomService,
		"Dining":                 order.CategoryRoomService,
		"cleaning":               order.CategoryHousekeeping,
		"Extra Towels":           order.CategoryHousekeeping,
		"taxi":                   order.CategoryTransportation,
		"Airport Transfer":       order.CategoryTransportation,
		"tours":                  order.CategoryToursActivities,
		"activities":             order.CategoryToursActivities,
		"wellness":               order.CategorySpa,
		"Massage":                order.CategorySpa,
		"technical":              order.CategoryMaintenance,
		"WiFi":                   order.CategoryMaintenance,
		"restaurant reservation": order.CategoryConcierge,
		"Lost item":              order.CategorySecurity,
		"birthday":               order.CategorySpecialOccasion,
		"  ROOM-SERVICE ":        order.CategoryRoomService,
	}
	for in, want := range cases {
		if got := RequestType(in); got != want {
			t.Errorf("RequestType(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRequestTypeUnknown(t *testing.T) {
	for _, in := range []string{"", "   ", "xyz", "general"} {
		if got := RequestType(in); got != order.CategoryOther {
			t.Errorf("RequestType(%q) = %q, want other", in, got)
		}
	}
}

func TestRequestTypeAlwaysCanonical(t *testing.T) {
	canonical := make(map[string]bool)
	for _, c := range Canonical {
		canonical[c] = true
	}
	for _, in := range []string{"food", "spa day", "Transport", "??", "tech support", "security guard", "x"} {
		if got := RequestType(in); !canonical[got] {
			t.Errorf("RequestType(%q) = %q, not canonical", in, got)
		}
	}
}

func TestItemQuantityAndName(t *testing.T) {
	item := Item("2 club sandwiches", 0)
	if item.ID != "1" {
		t.Errorf("ID = %q, want 1", item.ID)
	}
	if item.Quantity != 2 {
		t.Errorf("Quantity = %d, want 2", item.Quantity)
	}
	if item.Name != "Club sandwiches" {
		t.Errorf("Name = %q", item.Name)
	}
	if item.Price != 15 {
		t.Errorf("Price = %v, want 15", item.Price)
	}
	if item.Description != "Details for Club sandwiches" {
		t.Errorf("Description = %q", item.Description)
	}
	if item.ServiceType != order.CategoryRoomService {
		t.Errorf("ServiceType = %q", item.ServiceType)
	}
}

func TestItemDetails(t *testing.T) {
	item := Item("a taxi to the airport tomorrow at 9am", 1)
	if item.ID != "2" || item.Quantity != 1 {
		t.Fatalf("ID/Quantity = %q/%d", item.ID, item.Quantity)
	}
	if item.Name != "Taxi to the airport tomorrow at 9am" {
		t.Errorf("Name = %q", item.Name)
	}
	want := "Date: tomorrow\nLocation: airport\nTime: 9am"
	if item.Description != want {
		t.Errorf("Description = %q, want %q", item.Description, want)
	}
	if item.Price != 30 {
		t.Errorf("Price = %v, want 30", item.Price)
	}
	if item.ServiceType != order.CategoryTransportation {
		t.Errorf("ServiceType = %q", item.ServiceType)
	}
}

func TestItemMarkers(t *testing.T) {
	cases := []struct {
		raw  string
		name string
		qty  int
	}{
		{"- 3 x towels", "Towels", 3},
		{"* coffee", "Coffee", 1},
		{"1. Pho bo", "Pho bo", 1},
		{"2x   iced   tea", "Iced tea", 2},
		{"0 pillows", "Pillows", 1},
	}
	for _, tc := range cases {
		item := Item(tc.raw, 0)
		if item.Name != tc.name || item.Quantity != tc.qty {
			t.Errorf("Item(%q) = %q x%d, want %q x%d", tc.raw, item.Name, item.Quantity, tc.name, tc.qty)
		}
		if item.Quantity < 1 || item.Price < 0 {
			t.Errorf("Item(%q) violates quantity/price bounds: %+v", tc.raw, item)
		}
	}
}

func TestPriceGroups(t *testing.T) {
	cases := []struct {
		name  string
		group string
		price float64
	}{
		{"Club sandwich", GroupFood, 15},
		{"Pot of tea", GroupBeverage, 8},
		{"Steak", GroupFood, 15},
		{"Extra towels", GroupRoomSupplies, 5},
		{"Laundry pickup", GroupServices, 20},
		{"Taxi to the station", GroupTransport, 30},
		{"Umbrella", GroupDefault, 10},
		{"Best price", GroupDefault, 10},
	}
	for _, tc := range cases {
		g, p := PriceGroup(tc.name)
		if g != tc.group || p != tc.price {
			t.Errorf("PriceGroup(%q) = %s/%v, want %s/%v", tc.name, g, p, tc.group, tc.price)
		}
		if ItemPrice(tc.name) != tc.price {
			t.Errorf("ItemPrice(%q) disagrees with PriceGroup", tc.name)
		}
	}
}

func TestCapitalize(t *testing.T) {
	cases := map[string]string{
		"":       "",
		"taxi":   "Taxi",
		"Taxi":   "Taxi",
		"đi chợ": "Đi chợ",
		"9am":    "9am",
	}
	for in, want := range cases {
		if got := Capitalize(in); got != want {
			t.Errorf("Capitalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDisplayName(t *testing.T) {
	short := "Club sandwich"
	if DisplayName(short) != short {
		t.Errorf("short name changed")
	}
	long := strings.Repeat("ábc ", 30)
	got := DisplayName(long)
	if n := len([]rune(got)); n > MaxDisplayName {
		t.Errorf("DisplayName length = %d runes, want <= %d", n, MaxDisplayName)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("DisplayName(%q) = %q, want ellipsis", long, got)
	}
}
