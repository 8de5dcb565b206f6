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

// CatalogRepository reads the catalog from PostgreSQL
type CatalogRepository struct {
	db *sql.DB
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// Ensure CatalogRepository implements CatalogSource
var _ CatalogSource = (*CatalogRepository)(nil)

// Name returns the source name used in logs
func (r *CatalogRepository) Name() string {
	return "postgres"
}

// Destinations retrieves all active destinations in catalog order
func (r *CatalogRepository) Destinations(ctx context.Context) ([]models.Destination, error) {
	log.Printf("🔍 Destinations: Fetching destinations")

	query := `
		SELECT
			id,
			slug,
			title,
			COALESCE(subtitle, ''),
			region,
			package_type,
			price,
			rating::float8,
			COALESCE(image, ''),
			COALESCE(country, ''),
			COALESCE(best_time_to_visit, ''),
			featured,
			COALESCE(description, ''),
			COALESCE(dates, '[]'::jsonb),
			COALESCE(packages, '[]'::jsonb),
			COALESCE(itinerary, '[]'::jsonb)
		FROM destinations
		WHERE is_active = true
		ORDER BY position ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		log.Printf("❌ Error querying destinations: %v", err)
		return nil, fmt.Errorf("failed to query destinations: %w", err)
	}
	defer rows.Close()

	destinations := []models.Destination{}
	for rows.Next() {
		var d models.Destination
		var dates, packages, itinerary []byte

		err := rows.Scan(
			&d.ID,
			&d.Slug,
			&d.Title,
			&d.Subtitle,
			&d.Region,
			&d.PackageType,
			&d.Price,
			&d.Rating,
			&d.Image,
			&d.Country,
			&d.BestTimeToVisit,
			&d.Featured,
			&d.Description,
			&dates,
			&packages,
			&itinerary,
		)
		if err != nil {
			log.Printf("❌ Error scanning destination: %v", err)
			return nil, fmt.Errorf("failed to scan destination: %w", err)
		}

		if err := decodeJSONColumns(
			jsonColumn{"dates", dates, &d.Dates},
			jsonColumn{"packages", packages, &d.Packages},
			jsonColumn{"itinerary", itinerary, &d.Itinerary},
		); err != nil {
			return nil, fmt.Errorf("destination %s: %w", d.ID, err)
		}

		destinations = append(destinations, d)
	}

	if err := rows.Err(); err != nil {
		log.Printf("❌ Error iterating destinations: %v", err)
		return nil, fmt.Errorf("failed to iterate destinations: %w", err)
	}

	log.Printf("✓ Successfully fetched %d destinations", len(destinations))
	return destinations, nil
}

// Hotels retrieves all hotels in catalog order
func (r *CatalogRepository) Hotels(ctx context.Context) ([]models.Hotel, error) {
	log.Printf("🔍 Hotels: Fetching hotels")

	query := `
		SELECT
			id,
			slug,
			title,
			city,
			stars,
			rating::float8,
			price_per_night,
			COALESCE(image, ''),
			COALESCE(address, ''),
			COALESCE(description, ''),
			COALESCE(amenities, '[]'::jsonb),
			featured,
			available
		FROM hotels
		ORDER BY position ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		log.Printf("❌ Error querying hotels: %v", err)
		return nil, fmt.Errorf("failed to query hotels: %w", err)
	}
	defer rows.Close()

	hotels := []models.Hotel{}
	for rows.Next() {
		var h models.Hotel
		var amenities []byte

		err := rows.Scan(
			&h.ID,
			&h.Slug,
			&h.Title,
			&h.City,
			&h.Stars,
			&h.Rating,
			&h.Price,
			&h.Image,
			&h.Address,
			&h.Description,
			&amenities,
			&h.Featured,
			&h.Available,
		)
		if err != nil {
			log.Printf("❌ Error scanning hotel: %v", err)
			return nil, fmt.Errorf("failed to scan hotel: %w", err)
		}

		if err := decodeJSONColumns(jsonColumn{"amenities", amenities, &h.Amenities}); err != nil {
			return nil, fmt.Errorf("hotel %s: %w", h.ID, err)
		}

		hotels = append(hotels, h)
	}

	if err := rows.Err(); err != nil {
		log.Printf("❌ Error iterating hotels: %v", err)
		return nil, fmt.Errorf("failed to iterate hotels: %w", err)
	}

	log.Printf("✓ Successfully fetched %d hotels", len(hotels))
	return hotels, nil
}

// BlogPosts retrieves published blog posts in catalog order
func (r *CatalogRepository) BlogPosts(ctx context.Context) ([]models.BlogPost, error) {
	log.Printf("🔍 BlogPosts: Fetching published posts")

	query := `
		SELECT
			id,
			slug,
			title,
			COALESCE(category, ''),
			COALESCE(tags, '[]'::jsonb),
			COALESCE(excerpt, ''),
			COALESCE(content, ''),
			COALESCE(image, ''),
			published_at
		FROM blog_posts
		WHERE status = 'published'
		ORDER BY position ASC, published_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		log.Printf("❌ Error querying blog posts: %v", err)
		return nil, fmt.Errorf("failed to query blog posts: %w", err)
	}
	defer rows.Close()

	posts := []models.BlogPost{}
	for rows.Next() {
		var p models.BlogPost
		var tags []byte
		var publishedAt sql.NullTime

		err := rows.Scan(
			&p.ID,
			&p.Slug,
			&p.Title,
			&p.Category,
			&tags,
			&p.Excerpt,
			&p.Content,
			&p.Image,
			&publishedAt,
		)
		if err != nil {
			log.Printf("❌ Error scanning blog post: %v", err)
			return nil, fmt.Errorf("failed to scan blog post: %w", err)
		}

		if err := decodeJSONColumns(jsonColumn{"tags", tags, &p.Tags}); err != nil {
			return nil, fmt.Errorf("blog post %s: %w", p.ID, err)
		}
		if publishedAt.Valid {
			p.PublishedAt = publishedAt.Time.UTC().Format(time.RFC3339)
		}

		posts = append(posts, p)
	}

	if err := rows.Err(); err != nil {
		log.Printf("❌ Error iterating blog posts: %v", err)
		return nil, fmt.Errorf("failed to iterate blog posts: %w", err)
	}

	log.Printf("✓ Successfully fetched %d blog posts", len(posts))
	return posts, nil
}

// FAQs retrieves all FAQs in display order
func (r *CatalogRepository) FAQs(ctx context.Context) ([]models.FAQ, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT question, answer FROM faqs ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query faqs: %w", err)
	}
	defer rows.Close()

	faqs := []models.FAQ{}
	for rows.Next() {
		var f models.FAQ
		if err := rows.Scan(&f.Question, &f.Answer); err != nil {
			return nil, fmt.Errorf("failed to scan faq: %w", err)
		}
		faqs = append(faqs, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate faqs: %w", err)
	}
	return faqs, nil
}

// Testimonials retrieves all testimonials, newest first
func (r *CatalogRepository) Testimonials(ctx context.Context) ([]models.Testimonial, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT content, name, is_approved
		FROM testimonials
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query testimonials: %w", err)
	}
	defer rows.Close()

	testimonials := []models.Testimonial{}
	for rows.Next() {
		var t models.Testimonial
		if err := rows.Scan(&t.Quote, &t.Name, &t.Approved); err != nil {
			return nil, fmt.Errorf("failed to scan testimonial: %w", err)
		}
		testimonials = append(testimonials, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate testimonials: %w", err)
	}
	return testimonials, nil
}

type jsonColumn struct {
	name string
	raw  []byte
	dst  any
}

// decodeJSONColumns unmarshals jsonb array columns; NULL or empty input leaves dst untouched
func decodeJSONColumns(cols ...jsonColumn) error {
	for _, c := range cols {
		if len(c.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(c.raw, c.dst); err != nil {
			return fmt.Errorf("failed to decode %s column: %w", c.name, err)
		}
	}
	return nil
}
