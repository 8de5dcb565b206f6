package listing

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tour struct {
	id      string
	title   string
	region  string
	pkg     string
	price   int
	rating  float64
	excerpt string
}

var tourSchema = Schema[tour]{
	Name:       "tours",
	ID:         func(t tour) string { return t.id },
	SearchText: func(t tour) []string { return []string{t.title, t.excerpt} },
	Attributes: map[string]func(tour) string{
		"region":  func(t tour) string { return t.region },
		"package": func(t tour) string { return t.pkg },
	},
	Sorts: map[SortKey]func(a, b tour) int{
		SortPriceAscending:   Ascending(func(t tour) int { return t.price }),
		SortPriceDescending:  Descending(func(t tour) int { return t.price }),
		SortRatingDescending: Descending(func(t tour) float64 { return t.rating }),
	},
}

var threeTours = []tour{
	{id: "kashmir", title: "Kashmir", region: "North", pkg: "Standard", price: 34999, rating: 4.7},
	{id: "rajasthan", title: "Rajasthan", region: "West", pkg: "Luxury", price: 45999, rating: 4.6},
	{id: "goa", title: "Goa", region: "West", pkg: "Economy", price: 19999, rating: 4.5},
}

var sixTours = []tour{
	{id: "kashmir", title: "Kashmir", region: "North", pkg: "Standard", price: 34999, rating: 4.7},
	{id: "rajasthan", title: "Rajasthan", region: "West", pkg: "Luxury", price: 45999, rating: 4.6},
	{id: "goa", title: "Goa", region: "West", pkg: "Economy", price: 19999, rating: 4.5},
	{id: "sikkim", title: "Sikkim", region: "East", pkg: "Standard", price: 27999, rating: 4.4},
	{id: "delhi-agra", title: "Delhi & Agra", region: "North", pkg: "Economy", price: 16999, rating: 4.2},
	{id: "thailand", title: "Thailand", region: "International", pkg: "Standard", price: 39999, rating: 4.6},
}

func newTours(t *testing.T, items []tour) *Pipeline[tour] {
	t.Helper()
	p, err := NewPipeline(tourSchema, items)
	require.NoError(t, err)
	return p
}

func ids(items []tour) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.id
	}
	return out
}

func TestRun_WestByPriceAscending(t *testing.T) {
	p := newTours(t, threeTours)

	res := p.Run(Query{Sort: SortPriceAscending}.WithFilter("region", "West"))

	assert.False(t, res.Empty)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, SortPriceAscending, res.Sort)
	if diff := cmp.Diff([]string{"goa", "rajasthan"}, ids(res.Items)); diff != "" {
		t.Errorf("unexpected order (-want +got):\n%s", diff)
	}
}

func TestRun_NoMatchesSignalsEmpty(t *testing.T) {
	p := newTours(t, threeTours)

	res := p.Run(Query{Sort: SortDefault}.WithFilter("region", "East"))

	assert.True(t, res.Empty)
	assert.Equal(t, 0, res.Total)
	require.NotNil(t, res.Items)
	assert.Empty(t, res.Items)
}

func TestRun_EmptyInputsReturnWholeCatalogInOrder(t *testing.T) {
	p := newTours(t, sixTours)

	for _, q := range []Query{
		{},
		{Search: "   "},
		{Filters: map[string][]string{"region": nil, "package": {""}}},
	} {
		res := p.Run(q)
		assert.False(t, res.Empty)
		assert.Equal(t, SortDefault, res.Sort)
		assert.Equal(t, ids(sixTours), ids(res.Items))
	}
}

func TestRun_EmptyCatalog(t *testing.T) {
	p := newTours(t, nil)

	res := p.Run(Query{Search: "goa"})

	assert.True(t, res.Empty)
	assert.NotNil(t, res.Items)
	assert.Equal(t, 0, p.Len())
}

func TestRun_SearchIsCaseInsensitiveSubstring(t *testing.T) {
	p := newTours(t, sixTours)

	tests := []struct {
		search string
		want   []string
	}{
		{"KASH", []string{"kashmir"}},
		{"  a  ", []string{"kashmir", "rajasthan", "goa", "delhi-agra", "thailand"}},
		{"& agra", []string{"delhi-agra"}},
		{"paris", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			res := p.Run(Query{Search: tt.search})
			assert.Equal(t, tt.want, ids(res.Items))
			assert.Equal(t, len(tt.want) == 0, res.Empty)
		})
	}
}

func TestRun_SearchCoversEverySearchableField(t *testing.T) {
	p := newTours(t, []tour{
		{id: "a", title: "Family Trip", excerpt: "Six days in Kashmir"},
		{id: "b", title: "Offsites", excerpt: "Tips for teams"},
	})

	assert.Equal(t, []string{"a"}, ids(p.Run(Query{Search: "kashmir"}).Items))
	assert.Equal(t, []string{"b"}, ids(p.Run(Query{Search: "offsite"}).Items))
}

func TestRun_SearchDoesNotSpanFieldBoundaries(t *testing.T) {
	p := newTours(t, []tour{{id: "a", title: "Goa", excerpt: "Beach"}})

	assert.True(t, p.Run(Query{Search: "goabeach"}).Empty)
	assert.True(t, p.Run(Query{Search: "goa\nbeach"}).Empty)
	assert.True(t, p.Run(Query{Search: "goa beach"}).Empty)
	assert.False(t, p.Run(Query{Search: "bea"}).Empty)
}

func TestRun_FilterCorrectnessAcrossEveryConstraint(t *testing.T) {
	p := newTours(t, sixTours)

	q := Query{Search: "a"}.
		WithFilter("region", "North", "West").
		WithFilter("package", "Economy")

	res := p.Run(q)

	for _, item := range sixTours {
		want := containsFold(item.title, "a") &&
			(item.region == "North" || item.region == "West") &&
			item.pkg == "Economy"
		assert.Equal(t, want, contains(ids(res.Items), item.id), item.id)
	}
	assert.Equal(t, []string{"goa", "delhi-agra"}, ids(res.Items))
}

func TestRun_MultiSelectAcceptsAnyListedValue(t *testing.T) {
	p := newTours(t, sixTours)

	res := p.Run(Query{}.WithFilter("region", "East", "International"))

	assert.Equal(t, []string{"sikkim", "thailand"}, ids(res.Items))
}

func TestRun_UnknownAttributeIsUnconstrained(t *testing.T) {
	p := newTours(t, threeTours)

	res := p.Run(Query{}.WithFilter("color", "red"))

	assert.Equal(t, ids(threeTours), ids(res.Items))
}

func TestRun_SortMonotonicity(t *testing.T) {
	p := newTours(t, sixTours)

	asc := p.Run(Query{Sort: SortPriceAscending}).Items
	for i := 1; i < len(asc); i++ {
		assert.LessOrEqual(t, asc[i-1].price, asc[i].price)
	}

	desc := p.Run(Query{Sort: SortPriceDescending}).Items
	for i := 1; i < len(desc); i++ {
		assert.GreaterOrEqual(t, desc[i-1].price, desc[i].price)
	}

	byRating := p.Run(Query{Sort: SortRatingDescending}).Items
	for i := 1; i < len(byRating); i++ {
		assert.GreaterOrEqual(t, byRating[i-1].rating, byRating[i].rating)
	}
}

func TestRun_TiesKeepCatalogOrder(t *testing.T) {
	p := newTours(t, sixTours)

	res := p.Run(Query{Sort: SortRatingDescending})

	// rajasthan and thailand both rate 4.6; rajasthan comes first in the catalog
	assert.Equal(t, []string{"kashmir", "rajasthan", "thailand", "goa", "sikkim", "delhi-agra"}, ids(res.Items))

	tied := []tour{
		{id: "x", price: 100}, {id: "y", price: 50}, {id: "z", price: 100}, {id: "w", price: 50},
	}
	p = newTours(t, tied)
	assert.Equal(t, []string{"y", "w", "x", "z"}, ids(p.Run(Query{Sort: SortPriceAscending}).Items))
	assert.Equal(t, []string{"x", "z", "y", "w"}, ids(p.Run(Query{Sort: SortPriceDescending}).Items))
}

func TestRun_UnsupportedSortFallsBackToDefault(t *testing.T) {
	schema := tourSchema
	schema.Sorts = nil
	p, err := NewPipeline(schema, sixTours)
	require.NoError(t, err)

	res := p.Run(Query{Sort: SortPriceAscending})
	assert.Equal(t, SortDefault, res.Sort)
	assert.Equal(t, ids(sixTours), ids(res.Items))

	res = newTours(t, sixTours).Run(Query{Sort: SortKey("bogus")})
	assert.Equal(t, SortDefault, res.Sort)
	assert.Equal(t, ids(sixTours), ids(res.Items))
}

func TestRun_IdempotentAndDoesNotMutateCatalog(t *testing.T) {
	input := append([]tour(nil), sixTours...)
	p := newTours(t, input)
	q := Query{Search: "a", Sort: SortPriceDescending}.WithFilter("package", "Standard", "Economy")

	first := p.Run(q)
	second := p.Run(q)

	if diff := cmp.Diff(ids(first.Items), ids(second.Items)); diff != "" {
		t.Errorf("second run differs (-first +second):\n%s", diff)
	}
	assert.Equal(t, ids(sixTours), ids(p.Items()))
	assert.Equal(t, ids(sixTours), ids(input))

	first.Items[0].title = "changed"
	item, ok := p.Lookup(first.Items[0].id)
	require.True(t, ok)
	assert.NotEqual(t, "changed", item.title)
}

func TestNewPipeline_RejectsDuplicateIDs(t *testing.T) {
	_, err := NewPipeline(tourSchema, []tour{{id: "goa"}, {id: "goa"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate id "goa"`)
}

func TestNewPipeline_RequiresIDAccessor(t *testing.T) {
	_, err := NewPipeline(Schema[tour]{Name: "broken"}, threeTours)
	require.Error(t, err)
}

func TestLookupAndDistinct(t *testing.T) {
	p := newTours(t, sixTours)

	item, ok := p.Lookup("goa")
	require.True(t, ok)
	assert.Equal(t, "Goa", item.title)

	_, ok = p.Lookup("paris")
	assert.False(t, ok)

	assert.Equal(t, []string{"North", "West", "East", "International"}, p.Distinct("region"))
	assert.Empty(t, p.Distinct("color"))
}

func TestWithFilter_DoesNotAliasOriginal(t *testing.T) {
	base := Query{}.WithFilter("region", "West")
	derived := base.WithFilter("region", "East")

	assert.Equal(t, []string{"West"}, base.Filters["region"])
	assert.Equal(t, []string{"West", "East"}, derived.Filters["region"])
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
