package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"adrija-tours/models"
)

// Seed replaces every catalog table with the contents of c in one transaction.
// Collection order becomes the stored position.
func (r *CatalogRepository) Seed(ctx context.Context, c *models.Catalog) error {
	log.Printf("🌱 Seed: Writing %d destinations, %d hotels, %d blog posts",
		len(c.Destinations), len(c.Hotels), len(c.BlogPosts))

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Printf("❌ Seed: Error starting transaction: %v", err)
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"destinations", "hotels", "blog_posts", "faqs", "testimonials"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for i, d := range c.Destinations {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO destinations (id, position, slug, title, subtitle, region, package_type, price, rating,
				image, country, best_time_to_visit, featured, description, dates, packages, itinerary, is_active)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, true)
		`,
			d.ID, i, d.Slug, d.Title, d.Subtitle, d.Region, d.PackageType, d.Price, d.Rating,
			d.Image, d.Country, d.BestTimeToVisit, d.Featured, d.Description,
			jsonArray(d.Dates), jsonArray(d.Packages), jsonArray(d.Itinerary),
		)
		if err != nil {
			log.Printf("❌ Seed: Error inserting destination %s: %v", d.ID, err)
			return fmt.Errorf("failed to insert destination %s: %w", d.ID, err)
		}
	}

	for i, h := range c.Hotels {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO hotels (id, position, slug, title, city, stars, rating, price_per_night,
				image, address, description, amenities, featured, available)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		`,
			h.ID, i, h.Slug, h.Title, h.City, h.Stars, h.Rating, h.Price,
			h.Image, h.Address, h.Description, jsonArray(h.Amenities), h.Featured, h.Available,
		)
		if err != nil {
			log.Printf("❌ Seed: Error inserting hotel %s: %v", h.ID, err)
			return fmt.Errorf("failed to insert hotel %s: %w", h.ID, err)
		}
	}

	for i, p := range c.BlogPosts {
		var publishedAt sql.NullTime
		if p.PublishedAt != "" {
			t, err := time.Parse(time.RFC3339, p.PublishedAt)
			if err != nil {
				return fmt.Errorf("blog post %s: invalid publishedAt: %w", p.ID, err)
			}
			publishedAt = sql.NullTime{Time: t, Valid: true}
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO blog_posts (id, position, slug, title, category, tags, excerpt, content, image, status, published_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 'published', $10)
		`,
			p.ID, i, p.Slug, p.Title, p.Category, jsonArray(p.Tags), p.Excerpt, p.Content, p.Image, publishedAt,
		)
		if err != nil {
			log.Printf("❌ Seed: Error inserting blog post %s: %v", p.ID, err)
			return fmt.Errorf("failed to insert blog post %s: %w", p.ID, err)
		}
	}

	for i, f := range c.FAQs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO faqs (position, question, answer) VALUES ($1, $2, $3)`, i, f.Question, f.Answer,
		); err != nil {
			return fmt.Errorf("failed to insert faq: %w", err)
		}
	}

	// Testimonials are read newest first, so the first one gets the latest timestamp
	base := time.Now().UTC()
	for i, t := range c.Testimonials {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO testimonials (content, name, is_approved, created_at) VALUES ($1, $2, $3, $4)`,
			t.Quote, t.Name, t.Approved, base.Add(-time.Duration(i)*time.Second),
		); err != nil {
			return fmt.Errorf("failed to insert testimonial: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Printf("❌ Seed: Error committing transaction: %v", err)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("✅ Seed: Catalog written to postgres")
	return nil
}

// jsonArray encodes a slice for a jsonb column; nil becomes an empty array
func jsonArray[T any](v []T) string {
	if v == nil {
		return "[]"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(b)
}
