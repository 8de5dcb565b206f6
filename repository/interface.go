package repository

import (
	"context"
	"errors"

	"adrija-tours/models"
)

// ErrNotFound is returned when a catalog item does not exist
var ErrNotFound = errors.New("not found")

// CatalogSource defines the contract for reading catalog collections.
// Items are returned in catalog order.
type CatalogSource interface {
	Name() string
	Destinations(ctx context.Context) ([]models.Destination, error)
	Hotels(ctx context.Context) ([]models.Hotel, error)
	BlogPosts(ctx context.Context) ([]models.BlogPost, error)
	FAQs(ctx context.Context) ([]models.FAQ, error)
	Testimonials(ctx context.Context) ([]models.Testimonial, error)
}

// CatalogReader is implemented by sources that can read every collection in
// one consistent pass
type CatalogReader interface {
	Catalog(ctx context.Context) (*models.Catalog, error)
}
