package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"adrija-tours/models"
	"adrija-tours/queue"
	"adrija-tours/repository"
	"adrija-tours/utils"
)

// IntentAccepted is the status of an intent handed to the sink
const IntentAccepted = "accepted"

// ValidationError reports a rejected form field
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidationError reports whether err is or wraps a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IntentService validates submit intents and forwards them to a sink
type IntentService struct {
	listings ListingServiceInterface
	sink     queue.IntentSink
	now      func() time.Time
}

// NewIntentService creates a new IntentService
func NewIntentService(listings ListingServiceInterface, sink queue.IntentSink) *IntentService {
	return &IntentService{
		listings: listings,
		sink:     sink,
		now:      time.Now,
	}
}

// SubmitEnquiry handles the contact form
func (s *IntentService) SubmitEnquiry(ctx context.Context, req models.EnquiryRequest) (*models.IntentResponse, error) {
	name := strings.TrimSpace(req.Name)
	message := strings.TrimSpace(req.Message)
	if name == "" {
		return nil, invalid("name", "is required")
	}
	if err := validateEmail(req.Email, true); err != nil {
		return nil, err
	}
	if message == "" {
		return nil, invalid("message", "is required")
	}

	fields := map[string]string{
		"name":    name,
		"email":   strings.TrimSpace(req.Email),
		"message": message,
	}
	putIfSet(fields, "phone", req.Phone)
	putIfSet(fields, "subject", req.Subject)

	return s.forward(ctx, models.IntentEnquiry, "", fields, "Thank you for contacting us. We will respond soon.", nil)
}

// SubmitHotelEnquiry handles the hotel detail enquiry and attaches a stay quote
func (s *IntentService) SubmitHotelEnquiry(ctx context.Context, req models.HotelEnquiryRequest) (*models.IntentResponse, error) {
	if strings.TrimSpace(req.HotelID) == "" {
		return nil, invalid("hotelId", "is required")
	}
	hotel, err := s.listings.Hotel(strings.TrimSpace(req.HotelID))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, invalid("hotelId", fmt.Sprintf("unknown hotel %q", req.HotelID))
	}
	if err != nil {
		return nil, err
	}
	if !hotel.Available {
		return nil, invalid("hotelId", hotel.Title+" is not accepting bookings")
	}

	if strings.TrimSpace(req.CheckIn) == "" || strings.TrimSpace(req.CheckOut) == "" {
		return nil, invalid("dates", "Please select check-in and check-out dates.")
	}
	nights, err := utils.ParseStay(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, invalid("dates", err.Error())
	}

	guests := req.Guests
	if guests == 0 {
		guests = 1
	}
	if guests < 0 {
		return nil, invalid("guests", "must be at least 1")
	}
	if err := validateEmail(req.Email, false); err != nil {
		return nil, err
	}

	total := utils.CalculateStayTotal(hotel.Price, nights)
	quote := &models.StayQuote{
		Nights:        nights,
		PricePerNight: hotel.Price,
		Total:         total,
		Formatted:     utils.FormatINR(total),
	}

	checkIn, checkOut := strings.TrimSpace(req.CheckIn), strings.TrimSpace(req.CheckOut)
	fields := map[string]string{
		"checkIn":  checkIn,
		"checkOut": checkOut,
		"guests":   strconv.Itoa(guests),
		"nights":   strconv.Itoa(nights),
		"total":    strconv.FormatInt(total, 10),
	}
	putIfSet(fields, "email", req.Email)

	message := fmt.Sprintf("Enquiry sent for %s | %s to %s", hotel.Title, checkIn, checkOut)
	return s.forward(ctx, models.IntentHotelEnquiry, hotel.ID, fields, message, quote)
}

// AddToCart handles the destination detail add-to-cart action
func (s *IntentService) AddToCart(ctx context.Context, req models.AddToCartRequest) (*models.IntentResponse, error) {
	if strings.TrimSpace(req.DestinationID) == "" {
		return nil, invalid("destinationId", "is required")
	}
	dest, err := s.listings.Destination(strings.TrimSpace(req.DestinationID))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, invalid("destinationId", fmt.Sprintf("unknown destination %q", req.DestinationID))
	}
	if err != nil {
		return nil, err
	}

	date := strings.TrimSpace(req.Date)
	if date == "" {
		return nil, invalid("date", "Please select a date.")
	}
	if !slices.Contains(dest.Dates, date) {
		return nil, invalid("date", fmt.Sprintf("%s has no departure on %s", dest.Title, date))
	}

	pkg := strings.TrimSpace(req.Package)
	if pkg == "" {
		if len(dest.Packages) == 0 {
			return nil, invalid("package", "no packages available")
		}
		pkg = dest.Packages[0]
	}
	if !slices.Contains(dest.Packages, pkg) {
		return nil, invalid("package", fmt.Sprintf("%s does not offer the %s package", dest.Title, pkg))
	}

	fields := map[string]string{
		"date":    date,
		"package": pkg,
		"price":   strconv.FormatInt(dest.Price, 10),
	}
	message := fmt.Sprintf("Added to cart: %s | %s | %s", dest.Title, pkg, date)
	return s.forward(ctx, models.IntentAddToCart, dest.ID, fields, message, nil)
}

// SubmitCustomTrip handles the home page custom trip form
func (s *IntentService) SubmitCustomTrip(ctx context.Context, req models.CustomTripRequest) (*models.IntentResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, invalid("name", "is required")
	}
	if err := validateEmail(req.Email, true); err != nil {
		return nil, err
	}
	if req.Travellers < 0 {
		return nil, invalid("travellers", "must not be negative")
	}

	fields := map[string]string{
		"name":  name,
		"email": strings.TrimSpace(req.Email),
	}
	putIfSet(fields, "destination", req.Destination)
	putIfSet(fields, "notes", req.Notes)
	if req.Travellers > 0 {
		fields["travellers"] = strconv.Itoa(req.Travellers)
	}

	return s.forward(ctx, models.IntentCustomTrip, "", fields, "Thanks! Our travel experts will reach out with a custom plan.", nil)
}

func (s *IntentService) forward(ctx context.Context, kind models.IntentKind, target string, fields map[string]string, message string, quote *models.StayQuote) (*models.IntentResponse, error) {
	intent := models.Intent{
		ID:        uuid.NewString(),
		Kind:      kind,
		Target:    target,
		Fields:    fields,
		CreatedAt: s.now().UTC(),
	}

	if _, err := s.sink.Publish(ctx, intent); err != nil {
		log.Printf("❌ Error forwarding %s intent %s: %v", kind, intent.ID, err)
		return nil, fmt.Errorf("failed to forward intent: %w", err)
	}

	log.Printf("✓ %s intent %s accepted", kind, intent.ID)
	return &models.IntentResponse{
		ID:      intent.ID,
		Kind:    kind,
		Status:  IntentAccepted,
		Message: message,
		Quote:   quote,
		Fields:  fields,
	}, nil
}

func validateEmail(email string, required bool) error {
	email = strings.TrimSpace(email)
	if email == "" {
		if required {
			return invalid("email", "is required")
		}
		return nil
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return invalid("email", "must be a valid email address")
	}
	return nil
}

func putIfSet(fields map[string]string, key, value string) {
	if v := strings.TrimSpace(value); v != "" {
		fields[key] = v
	}
}
