package utils

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar date format used by booking forms
const DateLayout = "2006-01-02"

// ParseStay parses check-in and check-out dates and returns the number of nights.
// Check-out must fall after check-in.
func ParseStay(checkIn, checkOut string) (int, error) {
	in, err := time.Parse(DateLayout, strings.TrimSpace(checkIn))
	if err != nil {
		return 0, fmt.Errorf("invalid check-in date %q: expected YYYY-MM-DD", checkIn)
	}
	out, err := time.Parse(DateLayout, strings.TrimSpace(checkOut))
	if err != nil {
		return 0, fmt.Errorf("invalid check-out date %q: expected YYYY-MM-DD", checkOut)
	}

	nights := int(out.Sub(in).Hours() / 24)
	if nights < 1 {
		return 0, fmt.Errorf("check-out %s must be after check-in %s", checkOut, checkIn)
	}
	return nights, nil
}

// CalculateStayTotal returns the price of a stay in whole rupees
func CalculateStayTotal(pricePerNight int64, nights int) int64 {
	if nights < 0 {
		return 0
	}
	return pricePerNight * int64(nights)
}

// Slugify turns a title into a lowercase URL slug, e.g. "Delhi & Agra" -> "delhi-agra"
func Slugify(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
