package listing

import "strings"

// SortKey names an ordering a listing can be requested in
type SortKey string

const (
	// SortDefault keeps catalog insertion order (placeholder for a relevance score)
	SortDefault          SortKey = "default"
	SortPriceAscending   SortKey = "priceAscending"
	SortPriceDescending  SortKey = "priceDescending"
	SortRatingDescending SortKey = "ratingDescending"
)

// sortAliases maps every accepted spelling (lowercased) to its canonical key.
// The short names are the values the site's sort dropdowns send.
var sortAliases = map[string]SortKey{
	"":                 SortDefault,
	"default":          SortDefault,
	"relevance":        SortDefault,
	"popularity":       SortDefault,
	"priceascending":   SortPriceAscending,
	"price_asc":        SortPriceAscending,
	"pricelow":         SortPriceAscending,
	"pricedescending":  SortPriceDescending,
	"price_desc":       SortPriceDescending,
	"pricehigh":        SortPriceDescending,
	"ratingdescending": SortRatingDescending,
	"rating_desc":      SortRatingDescending,
	"rating":           SortRatingDescending,
}

// ParseSortKey normalizes a user supplied sort value. Anything unrecognized
// becomes SortDefault.
func ParseSortKey(s string) SortKey {
	if key, ok := sortAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return key
	}
	return SortDefault
}

// String returns the canonical name of the key
func (k SortKey) String() string {
	if k == "" {
		return string(SortDefault)
	}
	return string(k)
}
