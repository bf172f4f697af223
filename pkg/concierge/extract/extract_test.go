package extract

import (
	"reflect"
	"testing"

	"github.com/cognicore/concierge/pkg/concierge/order"
)

const roomServiceCall = "Room 301: guest requests 2 club sandwiches and a taxi to the airport tomorrow at 9am, ASAP please"

func TestRoomNumber(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{"primary", roomServiceCall, "301", true},
		{"hash", "Guest in room #1204 needs towels", "1204", true},
		{"dash", "room-12B wants breakfast", "12B", true},
		{"number word", "Room number: 88, late checkout", "88", true},
		{"vietnamese", "Khách ở phòng 405 cần taxi", "405", true},
		{"room details", "Room details - the guest is staying in 512 this week", "512", true},
		{"details then room", "Booking details: guest name Anna, room is 77", "77", true},
		{"room service is not a room", "Room service for two please", "", false},
		{"empty", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := RoomNumber(tt.text)
			if got != tt.want || ok != tt.ok {
				t.Errorf("RoomNumber(%q) = %q, %v; want %q, %v", tt.text, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func contains(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}

func TestServiceTypes(t *testing.T) {
	got := ServiceTypes(roomServiceCall)
	if !contains(got, LabelFood) || !contains(got, LabelTransportation) {
		t.Errorf("expected food and transportation, got %v", got)
	}

	got = ServiceTypes("Please bring extra towels and book a massage at the spa")
	if !contains(got, LabelHousekeeping) || !contains(got, LabelSpa) {
		t.Errorf("categories are not exclusive, got %v", got)
	}

	got = ServiceTypes("Could you send breakfast up to my room")
	if !contains(got, LabelRoomService) || !contains(got, LabelFood) {
		t.Errorf("expected room-service and food, got %v", got)
	}

	for _, text := range []string{"", "   ", "hello there"} {
		if got := ServiceTypes(text); !reflect.DeepEqual(got, []string{LabelOther}) {
			t.Errorf("ServiceTypes(%q) = %v, want [other]", text, got)
		}
	}
}

func TestServiceTypesRuleOrder(t *testing.T) {
	got := ServiceTypes("birthday cake, wifi broken, taxi, gym")
	want := []string{LabelTransportation, LabelTechnical, LabelWellness, LabelSpecialOccasion}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected rule order %v, got %v", want, got)
	}
	if len(CategoryRules()) != 12 {
		t.Errorf("expected 12 rules, got %d", len(CategoryRules()))
	}
}

func TestDeliveryTime(t *testing.T) {
	tests := []struct {
		text string
		want order.DeliveryTime
	}{
		{"Bring it immediately, or tomorrow afternoon at the latest", order.DeliveryASAP},
		{"tomorrow afternoon is fine, but immediately would be best", order.DeliveryASAP},
		{"within 30 minutes please", order.Delivery30Min},
		{"in half an hour", order.Delivery30Min},
		{"in about an hour, not 30 minutes", order.Delivery30Min},
		{"in 1 hour", order.Delivery1Hour},
		{"at 7:30 tonight", order.DeliverySpecific},
		{"tomorrow morning", order.DeliverySpecific},
		{"deliver at 9am", order.DeliverySpecific},
		{"", order.DeliveryASAP},
		{"extra pillows", order.DeliveryASAP},
	}
	for _, tt := range tests {
		if got := DeliveryTime(tt.text); got != tt.want {
			t.Errorf("DeliveryTime(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestSpecialInstructions(t *testing.T) {
	text := "Guest wants dinner.\nSpecial instructions: no peanuts, extra napkins.\nThanks"
	if got := SpecialInstructions(text); got != "no peanuts, extra napkins" {
		t.Errorf("unexpected instructions %q", got)
	}
	if got := SpecialInstructions("special notes - knock twice"); got != "knock twice" {
		t.Errorf("unexpected notes %q", got)
	}
	if got := SpecialInstructions("nothing special here"); got != "" {
		t.Errorf("expected empty, got %q", got)
	}
}

func TestItemsRoomServiceCall(t *testing.T) {
	got := Items(roomServiceCall)
	want := []string{"2 club sandwiches", "a taxi to the airport tomorrow at 9am"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestItemsLayersConcatenate(t *testing.T) {
	text := "Summary:\n- 2 towels\n- club sandwich\nThe guest ordered a club sandwich.\nItems: towels, water & ice"
	got := Items(text)
	want := []string{"2 towels", "club sandwich", "a club sandwich", "towels", "water", "ice"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestItemsNumberedList(t *testing.T) {
	got := Items("1. Pho bo\n2) Spring rolls + iced coffee")
	want := []string{"Pho bo", "Spring rolls + iced coffee"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestItemsSentenceFallback(t *testing.T) {
	text := "The guest called about the pool. They need two extra pillows! Could you also check the minibar?"
	got := Items(text)
	want := []string{"They need two extra pillows", "Could you also check the minibar"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestItemsEmpty(t *testing.T) {
	for _, text := range []string{"", "   \n\t", "Hello."} {
		got := Items(text)
		if got == nil || len(got) != 0 {
			t.Errorf("Items(%q) = %#v, want empty list", text, got)
		}
	}
}

func TestTotalAmount(t *testing.T) {
	items := []order.Item{
		{Name: "Club sandwich", Quantity: 2, Price: 15},
		{Name: "Taxi", Quantity: 1, Price: 30},
	}
	if got := TotalAmount("Total: $1,250.50", items); got != 1250.5 {
		t.Errorf("expected explicit total, got %v", got)
	}
	if got := TotalAmount("the price is $42", items); got != 42 {
		t.Errorf("expected 42, got %v", got)
	}
	if got := TotalAmount("no figures here", items); got != 60 {
		t.Errorf("expected computed 60, got %v", got)
	}
	if got := TotalAmount("", nil); got != 0 {
		t.Errorf("expected 0, got %v", got)
	}
}

func TestDetails(t *testing.T) {
	d := Details("a taxi to the airport tomorrow at 9am for 3 people, about $25")
	want := map[string]string{
		order.DetailDate:     "tomorrow",
		order.DetailTime:     "9am",
		order.DetailLocation: "airport",
		order.DetailPeople:   "3",
		order.DetailAmount:   "$25",
	}
	if !reflect.DeepEqual(d, want) {
		t.Errorf("expected %v, got %v", want, d)
	}

	if d := Details("extra pillows"); len(d) != 0 {
		t.Errorf("expected no details, got %v", d)
	}

	d = Details("dinner table for four guests on Friday at 19:30 urgently")
	if d[order.DetailPeople] != "four" || d[order.DetailDate] != "Friday" || d[order.DetailTime] != "19:30" {
		t.Errorf("unexpected details %v", d)
	}

	d = Details("fix the AC immediately")
	if d[order.DetailTime] != "immediately" {
		t.Errorf("urgency cue should fill time, got %v", d)
	}

	d = Details("a car to Ben Thanh Market")
	if d[order.DetailLocation] != "Ben Thanh Market" {
		t.Errorf("expected proper noun location, got %v", d)
	}
}

func TestGuestContact(t *testing.T) {
	text := "Guest name: Linh Tran (room 12). Email: Linh.Tran@Example.com. Phone: +84 903 123 456."
	if got := GuestName(text); got != "Linh Tran" {
		t.Errorf("unexpected name %q", got)
	}
	if got := GuestEmail(text); got != "linh.tran@example.com" {
		t.Errorf("unexpected email %q", got)
	}
	if got := GuestPhone(text); got != "+84 903 123 456" {
		t.Errorf("unexpected phone %q", got)
	}

	if got := GuestName("Mr. John Smith requested towels"); got != "Mr. John Smith" {
		t.Errorf("unexpected honorific name %q", got)
	}
	if got := GuestPhone("call back on (555) 123-4567"); got != "(555) 123-4567" {
		t.Errorf("unexpected local phone %q", got)
	}
	if GuestName("") != "" || GuestEmail("") != "" || GuestPhone("") != "" {
		t.Error("empty text should yield empty contact fields")
	}
}

func TestRequestsDerived(t *testing.T) {
	reqs := Requests(roomServiceCall)
	if len(reqs) != 2 {
		t.Fatalf("expected 2 requests, got %+v", reqs)
	}
	if reqs[0].Type != LabelFood || reqs[1].Type != LabelTransportation {
		t.Errorf("unexpected types %q, %q", reqs[0].Type, reqs[1].Type)
	}
	for _, r := range reqs {
		if r.Detail(order.DetailRoomNumber) != "301" {
			t.Errorf("room number should be attached, got %+v", r)
		}
	}
	if reqs[1].Detail(order.DetailLocation) != "airport" {
		t.Errorf("expected airport location, got %+v", reqs[1])
	}
}

func TestRequestsUnclassifiedItemTakesOverallLabel(t *testing.T) {
	reqs := Requests("Housekeeping call.\n- two more please-bring items")
	if len(reqs) != 1 {
		t.Fatalf("expected 1 request, got %+v", reqs)
	}
	if reqs[0].Type != LabelHousekeeping {
		t.Errorf("expected overall label, got %q", reqs[0].Type)
	}
}

func TestRequestsEmbeddedJSON(t *testing.T) {
	text := "Call summary follows.\n```json\n" +
		`{"requests":[{"type":"Cleaning","text":"Fresh towels","details":{"time":"urgent","roomNumber":"210","color":"blue"}},` +
		`{"type":"","text":"dropped"},{"type":"taxi","text":"Airport run","details":{"people":2}}]}` +
		"\n```"
	reqs := Requests(text)
	if len(reqs) != 2 {
		t.Fatalf("expected 2 valid requests, got %+v", reqs)
	}
	if reqs[0].Type != "Cleaning" || reqs[0].Detail(order.DetailTime) != "urgent" || reqs[0].Detail(order.DetailRoomNumber) != "210" {
		t.Errorf("unexpected first request %+v", reqs[0])
	}
	if _, ok := reqs[0].Details["color"]; ok {
		t.Error("unknown detail keys should be dropped")
	}
	if reqs[1].Detail(order.DetailPeople) != "2" {
		t.Errorf("numeric details should be stringified, got %+v", reqs[1])
	}
}

func TestRequestsBareArrayAndBrokenJSON(t *testing.T) {
	reqs := Requests(`[{"type":"spa","text":"Couples massage"}]`)
	if len(reqs) != 1 || reqs[0].Text != "Couples massage" {
		t.Errorf("unexpected requests %+v", reqs)
	}

	reqs = Requests(`{"requests": [ broken. The guest ordered a pizza.`)
	if len(reqs) != 1 || reqs[0].Text != "a pizza" {
		t.Errorf("broken JSON should fall back to text, got %+v", reqs)
	}
}

func TestRequestsEmpty(t *testing.T) {
	if reqs := Requests(""); len(reqs) != 0 {
		t.Errorf("expected no requests, got %+v", reqs)
	}
}

func TestRequestsRejectsMalformedBlock(t *testing.T) {
	text := `{"requests":[{"type":7,"text":"Fresh towels"}]} The guest asked for fresh towels.`
	reqs := Requests(text)
	if len(reqs) != 1 || reqs[0].Text != "fresh towels" {
		t.Fatalf("non-conforming block should be ignored, got %+v", reqs)
	}
	if reqs[0].Type != LabelHousekeeping {
		t.Errorf("derived request should be classified, got %q", reqs[0].Type)
	}
}

func TestStripRequestBlock(t *testing.T) {
	block := `{"requests":[{"type":"food","text":"club sandwich please","details":{}}]}`
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"block removed", "Room 12. " + block + " Thanks.", "Room 12.  Thanks."},
		{"bare array removed", `[{"type":"spa","text":"Couples massage"}]`, ""},
		{"no block", "Room 12 needs towels", "Room 12 needs towels"},
		{"non-conforming block kept", `{"requests":[{"type":7,"text":"x"}]} towels`, `{"requests":[{"type":7,"text":"x"}]} towels`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripRequestBlock(tt.in); got != tt.want {
				t.Errorf("StripRequestBlock(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
