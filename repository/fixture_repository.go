package repository

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"adrija-tours/models"
	"adrija-tours/utils"
)

//go:embed fixtures/catalog.yaml
var embeddedCatalog []byte

// FixtureRepository reads the catalog from a YAML document, either the
// embedded default or a file on disk
type FixtureRepository struct {
	path string
}

// NewFixtureRepository creates a FixtureRepository. An empty path selects the embedded catalog.
func NewFixtureRepository(path string) *FixtureRepository {
	return &FixtureRepository{path: path}
}

// Ensure FixtureRepository implements CatalogSource and CatalogReader
var (
	_ CatalogSource = (*FixtureRepository)(nil)
	_ CatalogReader = (*FixtureRepository)(nil)
)

// Name returns the source name used in logs
func (r *FixtureRepository) Name() string {
	if r.path == "" {
		return "embedded fixtures"
	}
	return "fixtures " + r.path
}

// Catalog parses the whole document
func (r *FixtureRepository) Catalog(ctx context.Context) (*models.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data := embeddedCatalog
	if r.path != "" {
		var err error
		data, err = os.ReadFile(r.path)
		if err != nil {
			return nil, fmt.Errorf("failed to read fixtures file: %w", err)
		}
	}

	c, err := ParseCatalog(data)
	if err != nil {
		log.Printf("❌ Error parsing %s: %v", r.Name(), err)
		return nil, err
	}
	return c, nil
}

// ParseCatalog decodes a YAML catalog document. Unknown fields are rejected.
func ParseCatalog(data []byte) (*models.Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var c models.Catalog
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("failed to decode catalog yaml: %w", err)
	}

	for i := range c.Destinations {
		d := &c.Destinations[i]
		d.ID, d.Slug = identify(d.ID, d.Slug, d.Title)
	}
	for i := range c.Hotels {
		h := &c.Hotels[i]
		h.ID, h.Slug = identify(h.ID, h.Slug, h.Title)
	}
	for i := range c.BlogPosts {
		p := &c.BlogPosts[i]
		p.ID, p.Slug = identify(p.ID, p.Slug, p.Title)
	}
	return &c, nil
}

// identify fills a missing id from the title and a missing slug from the id
func identify(id, slug, title string) (string, string) {
	if id == "" {
		id = utils.Slugify(title)
	}
	if slug == "" {
		slug = id
	}
	return id, slug
}

// Destinations returns all destinations
func (r *FixtureRepository) Destinations(ctx context.Context) ([]models.Destination, error) {
	c, err := r.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	return c.Destinations, nil
}

// Hotels returns all hotels
func (r *FixtureRepository) Hotels(ctx context.Context) ([]models.Hotel, error) {
	c, err := r.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	return c.Hotels, nil
}

// BlogPosts returns all blog posts
func (r *FixtureRepository) BlogPosts(ctx context.Context) ([]models.BlogPost, error) {
	c, err := r.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	return c.BlogPosts, nil
}

// FAQs returns all FAQs
func (r *FixtureRepository) FAQs(ctx context.Context) ([]models.FAQ, error) {
	c, err := r.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	return c.FAQs, nil
}

// Testimonials returns all testimonials, approved or not
func (r *FixtureRepository) Testimonials(ctx context.Context) ([]models.Testimonial, error) {
	c, err := r.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	return c.Testimonials, nil
}
