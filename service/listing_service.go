package service

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"

	"adrija-tours/catalog"
	"adrija-tours/listing"
	"adrija-tours/models"
	"adrija-tours/repository"
)

// HomeFeaturedLimit is the number of featured cards per home page section
const HomeFeaturedLimit = 4

// ErrCatalogNotLoaded is returned by queries issued before the first successful Load
var ErrCatalogNotLoaded = errors.New("catalog not loaded")

// Snapshot is one immutable, fully validated version of every catalog
type Snapshot struct {
	Destinations *listing.Pipeline[models.Destination]
	Hotels       *listing.Pipeline[models.Hotel]
	BlogPosts    *listing.Pipeline[models.BlogPost]
	FAQs         []models.FAQ
	Testimonials []models.Testimonial
	Source       string
	LoadedAt     time.Time

	destinationSlugs map[string]string
	hotelSlugs       map[string]string
	postSlugs        map[string]string
}

// BuildSnapshot validates c and builds its pipelines
func BuildSnapshot(c *models.Catalog, source string) (*Snapshot, error) {
	destinations, err := listing.NewPipeline(catalog.Destinations, c.Destinations)
	if err != nil {
		return nil, err
	}
	hotels, err := listing.NewPipeline(catalog.Hotels, c.Hotels)
	if err != nil {
		return nil, err
	}
	posts, err := listing.NewPipeline(catalog.BlogPosts, c.BlogPosts)
	if err != nil {
		return nil, err
	}

	for _, h := range c.Hotels {
		if h.Stars < 1 || h.Stars > 5 {
			return nil, fmt.Errorf("hotels: %q has stars %d, must be 1 to 5", h.ID, h.Stars)
		}
	}

	s := &Snapshot{
		Destinations: destinations,
		Hotels:       hotels,
		BlogPosts:    posts,
		FAQs:         slices.Clone(c.FAQs),
		Testimonials: slices.Clone(c.Testimonials),
		Source:       source,
		LoadedAt:     time.Now(),
	}

	if s.destinationSlugs, err = slugIndex("destinations", c.Destinations, func(d models.Destination) (string, string) { return d.Slug, d.ID }); err != nil {
		return nil, err
	}
	if s.hotelSlugs, err = slugIndex("hotels", c.Hotels, func(h models.Hotel) (string, string) { return h.Slug, h.ID }); err != nil {
		return nil, err
	}
	if s.postSlugs, err = slugIndex("blog posts", c.BlogPosts, func(p models.BlogPost) (string, string) { return p.Slug, p.ID }); err != nil {
		return nil, err
	}

	return s, nil
}

func slugIndex[T any](name string, items []T, key func(T) (slug, id string)) (map[string]string, error) {
	index := make(map[string]string, len(items))
	for _, item := range items {
		slug, id := key(item)
		if slug == "" {
			continue
		}
		if prev, dup := index[slug]; dup && prev != id {
			return nil, fmt.Errorf("%s: duplicate slug %q", name, slug)
		}
		index[slug] = id
	}
	return index, nil
}

// resolve maps a slug to an id; ids are accepted as well
func resolve(slugs map[string]string, slugOrID string) string {
	if id, ok := slugs[slugOrID]; ok {
		return id
	}
	return slugOrID
}

// ListingService serves queries against the current catalog snapshot.
// Readers never block; Load swaps the snapshot atomically.
type ListingService struct {
	source  repository.CatalogSource
	current atomic.Pointer[Snapshot]
	loadMu  sync.Mutex
}

// NewListingService creates a new ListingService. Call Load before serving queries.
func NewListingService(source repository.CatalogSource) *ListingService {
	return &ListingService{source: source}
}

// Ensure ListingService implements ListingServiceInterface
var _ ListingServiceInterface = (*ListingService)(nil)

// Load reads the catalog from the source and installs it as the current snapshot.
// On error the previous snapshot stays in place.
func (s *ListingService) Load(ctx context.Context) (*Snapshot, error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	c, err := repository.LoadCatalog(ctx, s.source)
	if err != nil {
		log.Printf("❌ Catalog load failed, keeping previous snapshot: %v", err)
		return nil, err
	}

	snap, err := BuildSnapshot(c, s.source.Name())
	if err != nil {
		log.Printf("❌ Catalog from %s is invalid, keeping previous snapshot: %v", s.source.Name(), err)
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	s.current.Store(snap)
	log.Printf("✓ Catalog snapshot installed from %s: %d destinations, %d hotels, %d blog posts",
		snap.Source, snap.Destinations.Len(), snap.Hotels.Len(), snap.BlogPosts.Len())
	return snap, nil
}

// Snapshot returns the current snapshot
func (s *ListingService) Snapshot() (*Snapshot, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, ErrCatalogNotLoaded
	}
	return snap, nil
}

// SearchDestinations runs q against the destinations catalog
func (s *ListingService) SearchDestinations(q listing.Query) (listing.Result[models.Destination], error) {
	snap, err := s.Snapshot()
	if err != nil {
		return listing.Result[models.Destination]{}, err
	}
	return snap.Destinations.Run(q), nil
}

// SearchHotels runs q against the hotels catalog
func (s *ListingService) SearchHotels(q listing.Query) (listing.Result[models.Hotel], error) {
	snap, err := s.Snapshot()
	if err != nil {
		return listing.Result[models.Hotel]{}, err
	}
	return snap.Hotels.Run(q), nil
}

// SearchBlog runs q against the blog catalog
func (s *ListingService) SearchBlog(q listing.Query) (listing.Result[models.BlogPost], error) {
	snap, err := s.Snapshot()
	if err != nil {
		return listing.Result[models.BlogPost]{}, err
	}
	return snap.BlogPosts.Run(q), nil
}

// Destination finds a destination by slug or id
func (s *ListingService) Destination(slug string) (models.Destination, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return models.Destination{}, err
	}
	d, ok := snap.Destinations.Lookup(resolve(snap.destinationSlugs, slug))
	if !ok {
		return models.Destination{}, fmt.Errorf("destination %q: %w", slug, repository.ErrNotFound)
	}
	return d, nil
}

// Hotel finds a hotel by slug or id
func (s *ListingService) Hotel(slug string) (models.Hotel, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return models.Hotel{}, err
	}
	h, ok := snap.Hotels.Lookup(resolve(snap.hotelSlugs, slug))
	if !ok {
		return models.Hotel{}, fmt.Errorf("hotel %q: %w", slug, repository.ErrNotFound)
	}
	return h, nil
}

// BlogPost finds a blog post by slug or id
func (s *ListingService) BlogPost(slug string) (models.BlogPost, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return models.BlogPost{}, err
	}
	p, ok := snap.BlogPosts.Lookup(resolve(snap.postSlugs, slug))
	if !ok {
		return models.BlogPost{}, fmt.Errorf("blog post %q: %w", slug, repository.ErrNotFound)
	}
	return p, nil
}

// BlogCategories returns the distinct blog categories in first-seen order
func (s *ListingService) BlogCategories() ([]string, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	return snap.BlogPosts.Distinct(catalog.AttrCategory), nil
}

// Home assembles the home page sections
func (s *ListingService) Home() (*models.HomeData, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return nil, err
	}

	destinations := []models.Destination{}
	for _, d := range snap.Destinations.Items() {
		if d.Featured {
			destinations = append(destinations, d)
		}
	}

	hotels := []models.Hotel{}
	for _, h := range snap.Hotels.Items() {
		if h.Featured {
			hotels = append(hotels, h)
		}
	}
	slices.SortStableFunc(hotels, func(a, b models.Hotel) int {
		return cmp.Or(cmp.Compare(b.Rating, a.Rating), strings.Compare(a.Title, b.Title))
	})

	testimonials := []models.Testimonial{}
	for _, t := range snap.Testimonials {
		if t.Approved {
			testimonials = append(testimonials, t)
		}
	}

	return &models.HomeData{
		FeaturedDestinations: firstN(destinations, HomeFeaturedLimit),
		FeaturedHotels:       firstN(hotels, HomeFeaturedLimit),
		FAQs:                 append([]models.FAQ{}, snap.FAQs...),
		Testimonials:         testimonials,
	}, nil
}

// ImageRef returns the image reference of an item in the named catalog
func (s *ListingService) ImageRef(catalogName, slug string) (models.ImageRef, error) {
	var url, id string
	switch catalogName {
	case catalog.Destinations.Name:
		d, err := s.Destination(slug)
		if err != nil {
			return models.ImageRef{}, err
		}
		id, url = d.ID, d.Image
	case catalog.Hotels.Name:
		h, err := s.Hotel(slug)
		if err != nil {
			return models.ImageRef{}, err
		}
		id, url = h.ID, h.Image
	case catalog.BlogPosts.Name:
		p, err := s.BlogPost(slug)
		if err != nil {
			return models.ImageRef{}, err
		}
		id, url = p.ID, p.Image
	default:
		return models.ImageRef{}, fmt.Errorf("catalog %q: %w", catalogName, repository.ErrNotFound)
	}

	if url == "" {
		return models.ImageRef{}, fmt.Errorf("%s %q has no image: %w", catalogName, slug, repository.ErrNotFound)
	}
	return models.ImageRef{Catalog: catalogName, ID: id, URL: url}, nil
}

// ImageRefs lists the image of every item in every catalog
func (s *ListingService) ImageRefs() ([]models.ImageRef, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return nil, err
	}

	refs := []models.ImageRef{}
	add := func(catalogName, id, url string) {
		if url != "" {
			refs = append(refs, models.ImageRef{Catalog: catalogName, ID: id, URL: url})
		}
	}
	for _, d := range snap.Destinations.Items() {
		add(catalog.Destinations.Name, d.ID, d.Image)
	}
	for _, h := range snap.Hotels.Items() {
		add(catalog.Hotels.Name, h.ID, h.Image)
	}
	for _, p := range snap.BlogPosts.Items() {
		add(catalog.BlogPosts.Name, p.ID, p.Image)
	}
	return refs, nil
}

func firstN[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
