package models

import "time"

// IntentKind identifies which form produced a submit intent
type IntentKind string

const (
	IntentEnquiry      IntentKind = "enquiry"
	IntentHotelEnquiry IntentKind = "hotel_enquiry"
	IntentAddToCart    IntentKind = "add_to_cart"
	IntentCustomTrip   IntentKind = "custom_trip"
)

// Intent represents a validated form submission forwarded to the backend
type Intent struct {
	ID        string            `json:"id"`
	Kind      IntentKind        `json:"kind"`
	Target    string            `json:"target,omitempty"` // Destination or hotel id
	Fields    map[string]string `json:"fields"`
	CreatedAt time.Time         `json:"createdAt"`
}

// EnquiryRequest represents the contact form body
type EnquiryRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// HotelEnquiryRequest represents the hotel detail enquiry body
type HotelEnquiryRequest struct {
	HotelID  string `json:"hotelId"`
	CheckIn  string `json:"checkIn"`  // YYYY-MM-DD
	CheckOut string `json:"checkOut"` // YYYY-MM-DD
	Guests   int    `json:"guests"`
	Email    string `json:"email"`
}

// AddToCartRequest represents the destination detail add-to-cart body
type AddToCartRequest struct {
	DestinationID string `json:"destinationId"`
	Date          string `json:"date"`
	Package       string `json:"package"`
}

// CustomTripRequest represents the home page custom trip form body
type CustomTripRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Destination string `json:"destination"`
	Travellers  int    `json:"travellers"`
	Notes       string `json:"notes"`
}

// IntentResponse represents the acknowledgement returned for a submit intent
type IntentResponse struct {
	ID      string            `json:"id"`
	Kind    IntentKind        `json:"kind"`
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Quote   *StayQuote        `json:"quote,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// StayQuote represents the price estimate attached to a hotel enquiry
type StayQuote struct {
	Nights        int    `json:"nights"`
	PricePerNight int64  `json:"pricePerNight"`
	Total         int64  `json:"total"`
	Formatted     string `json:"formatted"`
}
