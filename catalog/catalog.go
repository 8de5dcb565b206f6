// Package catalog instantiates the listing pipeline for the three catalogs
// the site lists: destinations, hotels and blog posts.
package catalog

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"adrija-tours/listing"
	"adrija-tours/models"
)

// Attribute names accepted as query parameters
const (
	AttrRegion   = "region"
	AttrPackage  = "package"
	AttrCity     = "city"
	AttrStars    = "stars"
	AttrCategory = "category"
)

// Destinations is the schema of the destinations listing
var Destinations = listing.Schema[models.Destination]{
	Name:       "destinations",
	ID:         func(d models.Destination) string { return d.ID },
	SearchText: func(d models.Destination) []string { return []string{d.Title} },
	Attributes: map[string]func(models.Destination) string{
		AttrRegion:  func(d models.Destination) string { return d.Region },
		AttrPackage: func(d models.Destination) string { return d.PackageType },
	},
	Sorts: map[listing.SortKey]func(a, b models.Destination) int{
		listing.SortPriceAscending:   listing.Ascending(func(d models.Destination) int64 { return d.Price }),
		listing.SortPriceDescending:  listing.Descending(func(d models.Destination) int64 { return d.Price }),
		listing.SortRatingDescending: listing.Descending(func(d models.Destination) float64 { return d.Rating }),
	},
}

// Hotels is the schema of the hotels listing
var Hotels = listing.Schema[models.Hotel]{
	Name:       "hotels",
	ID:         func(h models.Hotel) string { return h.ID },
	SearchText: func(h models.Hotel) []string { return []string{h.Title, h.City} },
	Attributes: map[string]func(models.Hotel) string{
		AttrCity:  func(h models.Hotel) string { return h.City },
		AttrStars: func(h models.Hotel) string { return strconv.Itoa(h.Stars) },
	},
	Sorts: map[listing.SortKey]func(a, b models.Hotel) int{
		listing.SortPriceAscending:   listing.Ascending(func(h models.Hotel) int64 { return h.Price }),
		listing.SortPriceDescending:  listing.Descending(func(h models.Hotel) int64 { return h.Price }),
		listing.SortRatingDescending: listing.Descending(func(h models.Hotel) float64 { return h.Rating }),
	},
}

// BlogPosts is the schema of the blog listing. Posts only list in catalog order.
var BlogPosts = listing.Schema[models.BlogPost]{
	Name:       "blog",
	ID:         func(p models.BlogPost) string { return p.ID },
	SearchText: func(p models.BlogPost) []string { return []string{p.Title, p.Excerpt} },
	Attributes: map[string]func(models.BlogPost) string{
		AttrCategory: func(p models.BlogPost) string { return p.Category },
	},
}

// DestinationAttributes lists the filters the destinations listing accepts
var DestinationAttributes = []string{AttrRegion, AttrPackage}

// HotelAttributes lists the filters the hotels listing accepts
var HotelAttributes = []string{AttrCity, AttrStars}

// BlogAttributes lists the filters the blog listing accepts
var BlogAttributes = []string{AttrCategory}

// QueryFromValues builds a listing query from request parameters.
// "q" is the search text, "sort" the sort key, and each attribute may be
// repeated or comma separated (category=Family&category=Corporate or
// category=Family,Corporate). Blank values are ignored.
func QueryFromValues(values url.Values, attrs ...string) listing.Query {
	q := listing.Query{
		Search:  values.Get("q"),
		Sort:    listing.ParseSortKey(values.Get("sort")),
		Filters: make(map[string][]string, len(attrs)),
	}

	for _, attr := range attrs {
		var accepted []string
		for _, raw := range values[attr] {
			for _, v := range strings.Split(raw, ",") {
				if v = strings.TrimSpace(v); v != "" {
					accepted = append(accepted, v)
				}
			}
		}
		if len(accepted) > 0 {
			q.Filters[attr] = accepted
		}
	}

	return q
}

// ValidateHotelQuery checks that star filters are whole star counts
func ValidateHotelQuery(q listing.Query) error {
	for _, v := range q.Filters[AttrStars] {
		stars, err := strconv.Atoi(v)
		if err != nil || stars < 1 || stars > 5 {
			return fmt.Errorf("invalid stars value %q: must be a whole number from 1 to 5", v)
		}
	}
	return nil
}
