package catalog

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adrija-tours/listing"
	"adrija-tours/models"
)

var destinations = []models.Destination{
	{ID: "kashmir", Title: "Kashmir", Region: "North", PackageType: "Standard", Price: 34999, Rating: 4.7},
	{ID: "rajasthan", Title: "Rajasthan", Region: "West", PackageType: "Luxury", Price: 45999, Rating: 4.6},
	{ID: "goa", Title: "Goa", Region: "West", PackageType: "Economy", Price: 19999, Rating: 4.5},
}

var hotels = []models.Hotel{
	{ID: "goa-seaside", Title: "Seaside Resort", City: "Goa", Stars: 5, Rating: 5, Price: 8999},
	{ID: "jaipur-palace", Title: "Royal Palace", City: "Jaipur", Stars: 5, Rating: 5, Price: 12999},
	{ID: "manali-retreat", Title: "Mountain Retreat", City: "Manali", Stars: 4, Rating: 4, Price: 5999},
	{ID: "kolkata-business", Title: "City Business Hotel", City: "Kolkata", Stars: 4, Rating: 4, Price: 6999},
	{ID: "bangkok-sky", Title: "Bangkok Sky Hotel", City: "International", Stars: 5, Rating: 5, Price: 9999},
}

var posts = []models.BlogPost{
	{ID: "corporate-offsites", Title: "Planning Corporate Offsites in India", Category: "Corporate", Excerpt: "Tips to plan productive and fun offsites."},
	{ID: "family-kashmir", Title: "Family Trip to Kashmir", Category: "Family", Excerpt: "How to make the most of 6 days in Kashmir."},
	{ID: "international-starters", Title: "First Time International Destinations", Category: "International", Excerpt: "Beginner-friendly international trips from India."},
}

func titles[T any](items []T, title func(T) string) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = title(it)
	}
	return out
}

func destinationTitle(d models.Destination) string { return d.Title }
func hotelTitle(h models.Hotel) string             { return h.Title }
func postID(p models.BlogPost) string              { return p.ID }

func TestDestinations_WestRegionByPrice(t *testing.T) {
	p, err := listing.NewPipeline(Destinations, destinations)
	require.NoError(t, err)

	q := QueryFromValues(url.Values{"region": {"West"}, "sort": {"priceLow"}}, DestinationAttributes...)
	res := p.Run(q)

	assert.Equal(t, []string{"Goa", "Rajasthan"}, titles(res.Items, destinationTitle))
	assert.Equal(t, listing.SortPriceAscending, res.Sort)
}

func TestDestinations_EastRegionIsEmpty(t *testing.T) {
	p, err := listing.NewPipeline(Destinations, destinations)
	require.NoError(t, err)

	res := p.Run(QueryFromValues(url.Values{"region": {"East"}}, DestinationAttributes...))

	assert.True(t, res.Empty)
	assert.Empty(t, res.Items)
}

func TestDestinations_SearchMatchesTitleOnly(t *testing.T) {
	p, err := listing.NewPipeline(Destinations, destinations)
	require.NoError(t, err)

	assert.Equal(t, []string{"Goa"}, titles(p.Run(listing.Query{Search: "GOA"}).Items, destinationTitle))
	assert.True(t, p.Run(listing.Query{Search: "west"}).Empty)
}

func TestHotels_SearchMatchesTitleAndCity(t *testing.T) {
	p, err := listing.NewPipeline(Hotels, hotels)
	require.NoError(t, err)

	res := p.Run(listing.Query{Search: "jaipur"})
	assert.Equal(t, []string{"Royal Palace"}, titles(res.Items, hotelTitle))

	res = p.Run(listing.Query{Search: "hotel"})
	assert.Equal(t, []string{"City Business Hotel", "Bangkok Sky Hotel"}, titles(res.Items, hotelTitle))
}

func TestHotels_StarsFilterUsesStructuredValue(t *testing.T) {
	p, err := listing.NewPipeline(Hotels, hotels)
	require.NoError(t, err)

	q := QueryFromValues(url.Values{"stars": {"4"}, "sort": {"priceHigh"}}, HotelAttributes...)
	require.NoError(t, ValidateHotelQuery(q))

	res := p.Run(q)
	assert.Equal(t, []string{"City Business Hotel", "Mountain Retreat"}, titles(res.Items, hotelTitle))
}

func TestHotels_RatingSortKeepsTiesInCatalogOrder(t *testing.T) {
	p, err := listing.NewPipeline(Hotels, hotels)
	require.NoError(t, err)

	res := p.Run(listing.Query{Sort: listing.SortRatingDescending})

	assert.Equal(t, []string{
		"Seaside Resort", "Royal Palace", "Bangkok Sky Hotel", "Mountain Retreat", "City Business Hotel",
	}, titles(res.Items, hotelTitle))
}

func TestValidateHotelQuery(t *testing.T) {
	tests := []struct {
		stars   string
		wantErr bool
	}{
		{"5", false},
		{"1", false},
		{"5★", true},
		{"0", true},
		{"6", true},
		{"four", true},
	}

	for _, tt := range tests {
		t.Run(tt.stars, func(t *testing.T) {
			q := QueryFromValues(url.Values{"stars": {tt.stars}}, HotelAttributes...)
			err := ValidateHotelQuery(q)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBlog_CategoryChecklist(t *testing.T) {
	p, err := listing.NewPipeline(BlogPosts, posts)
	require.NoError(t, err)

	assert.Equal(t, []string{"Corporate", "Family", "International"}, p.Distinct(AttrCategory))

	q := QueryFromValues(url.Values{"category": {"Family", "International"}}, BlogAttributes...)
	assert.Equal(t, []string{"family-kashmir", "international-starters"}, titles(p.Run(q).Items, postID))

	q = QueryFromValues(url.Values{"category": {"Corporate,Family"}, "q": {"kashmir"}}, BlogAttributes...)
	assert.Equal(t, []string{"family-kashmir"}, titles(p.Run(q).Items, postID))
}

func TestBlog_SearchCoversExcerpt(t *testing.T) {
	p, err := listing.NewPipeline(BlogPosts, posts)
	require.NoError(t, err)

	res := p.Run(listing.Query{Search: "beginner"})
	assert.Equal(t, []string{"international-starters"}, titles(res.Items, postID))
}

func TestBlog_PriceSortFallsBackToDefault(t *testing.T) {
	p, err := listing.NewPipeline(BlogPosts, posts)
	require.NoError(t, err)

	res := p.Run(listing.Query{Sort: listing.SortPriceDescending})

	assert.Equal(t, listing.SortDefault, res.Sort)
	assert.Equal(t, []string{"corporate-offsites", "family-kashmir", "international-starters"}, titles(res.Items, postID))
}

func TestQueryFromValues(t *testing.T) {
	values := url.Values{
		"q":       {"  goa "},
		"sort":    {"rating"},
		"region":  {"West", " , North,"},
		"package": {""},
		"color":   {"red"},
	}

	q := QueryFromValues(values, DestinationAttributes...)

	assert.Equal(t, "  goa ", q.Search)
	assert.Equal(t, listing.SortRatingDescending, q.Sort)
	assert.Equal(t, map[string][]string{"region": {"West", "North"}}, q.Filters)
}
