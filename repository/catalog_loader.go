package repository

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"adrija-tours/models"
)

// LoadCatalog reads every collection from src. Sources implementing
// CatalogReader are read in one pass, others collection by collection.
func LoadCatalog(ctx context.Context, src CatalogSource) (*models.Catalog, error) {
	log.Printf("📥 LoadCatalog: Reading catalog from %s source", src.Name())

	if reader, ok := src.(CatalogReader); ok {
		c, err := reader.Catalog(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s catalog: %w", src.Name(), err)
		}
		return c, nil
	}

	var c models.Catalog
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		c.Destinations, err = src.Destinations(gctx)
		return wrap("destinations", err)
	})
	g.Go(func() (err error) {
		c.Hotels, err = src.Hotels(gctx)
		return wrap("hotels", err)
	})
	g.Go(func() (err error) {
		c.BlogPosts, err = src.BlogPosts(gctx)
		return wrap("blog posts", err)
	})
	g.Go(func() (err error) {
		c.FAQs, err = src.FAQs(gctx)
		return wrap("faqs", err)
	})
	g.Go(func() (err error) {
		c.Testimonials, err = src.Testimonials(gctx)
		return wrap("testimonials", err)
	})

	if err := g.Wait(); err != nil {
		log.Printf("❌ Error reading catalog from %s: %v", src.Name(), err)
		return nil, fmt.Errorf("failed to read %s catalog: %w", src.Name(), err)
	}

	log.Printf("✓ Catalog read: %d destinations, %d hotels, %d blog posts",
		len(c.Destinations), len(c.Hotels), len(c.BlogPosts))
	return &c, nil
}

func wrap(collection string, err error) error {
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", collection, err)
	}
	return nil
}
