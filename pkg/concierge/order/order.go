package order

import (
	"errors"
	"fmt"
	"math"
)

// Detail keys carried by a Request.
const (
	DetailDate         = "date"
	DetailTime         = "time"
	DetailLocation     = "location"
	DetailPeople       = "people"
	DetailAmount       = "amount"
	DetailRoomNumber   = "roomNumber"
	DetailOtherDetails = "otherDetails"
)

// DetailKeys lists the recognised detail keys in declaration order.
var DetailKeys = []string{
	DetailDate, DetailTime, DetailLocation, DetailPeople,
	DetailAmount, DetailRoomNumber, DetailOtherDetails,
}

// Canonical service categories.
const (
	CategoryRoomService     = "room-service"
	CategoryHousekeeping    = "housekeeping"
	CategoryTransportation  = "transportation"
	CategoryToursActivities = "tours-activities"
	CategorySpa             = "spa"
	CategoryMaintenance     = "maintenance"
	CategoryConcierge       = "concierge"
	CategorySecurity        = "security"
	CategorySpecialOccasion = "special-occasion"
	CategoryOther           = "other"
)

// RoomNotSpecified is the room number used when none could be determined.
const RoomNotSpecified = "Not specified"

// DeliveryTime is the guest's delivery preference.
type DeliveryTime string

const (
	DeliveryASAP     DeliveryTime = "asap"
	Delivery30Min    DeliveryTime = "30min"
	Delivery1Hour    DeliveryTime = "1hour"
	DeliverySpecific DeliveryTime = "specific"
)

// Valid reports whether d is one of the four known preferences.
func (d DeliveryTime) Valid() bool {
	switch d {
	case DeliveryASAP, Delivery30Min, Delivery1Hour, DeliverySpecific:
		return true
	}
	return false
}

// Request is one guest ask parsed out of a summary, before normalization.
type Request struct {
	Type    string            `json:"type"`
	Text    string            `json:"text"`
	Details map[string]string `json:"details,omitempty"`
}

// Valid reports whether the request carries both a type and a text.
func (r Request) Valid() bool {
	return r.Type != "" && r.Text != ""
}

// Detail returns the value for key, or "" when absent.
func (r Request) Detail(key string) string {
	if r.Details == nil {
		return ""
	}
	return r.Details[key]
}

// Item is a priced order line.
type Item struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	ServiceType string  `json:"serviceType,omitempty"`
}

// Subtotal returns price times quantity, rounded to cents.
func (i Item) Subtotal() float64 {
	return Round(i.Price * float64(i.Quantity))
}

// Summary is the aggregated order for one call.
type Summary struct {
	OrderType           string       `json:"orderType"`
	DeliveryTime        DeliveryTime `json:"deliveryTime"`
	RoomNumber          string       `json:"roomNumber"`
	Items               []Item       `json:"items"`
	TotalAmount         float64      `json:"totalAmount"`
	GuestName           string       `json:"guestName"`
	GuestEmail          string       `json:"guestEmail"`
	GuestPhone          string       `json:"guestPhone"`
	SpecialInstructions string       `json:"specialInstructions"`
}

// Total sums price times quantity over items.
func Total(items []Item) float64 {
	var sum float64
	for _, it := range items {
		sum += it.Price * float64(it.Quantity)
	}
	return Round(sum)
}

// Round rounds v to two decimal places.
func Round(v float64) float64 {
	return math.Round(v*100) / 100
}

// ErrInvalidInput is matched by every *InputError.
var ErrInvalidInput = errors.New("invalid input")

// InputError reports a summary payload that is not a string.
type InputError struct {
	Field string
	Kind  string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input: %s must be a string, got %s", e.Field, e.Kind)
}

// Is makes errors.Is(err, ErrInvalidInput) hold.
func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}
