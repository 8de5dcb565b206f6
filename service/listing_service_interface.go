package service

import (
	"context"

	"adrija-tours/listing"
	"adrija-tours/models"
)

// ListingServiceInterface defines the contract for catalog listing operations
type ListingServiceInterface interface {
	Load(ctx context.Context) (*Snapshot, error)
	SearchDestinations(q listing.Query) (listing.Result[models.Destination], error)
	SearchHotels(q listing.Query) (listing.Result[models.Hotel], error)
	SearchBlog(q listing.Query) (listing.Result[models.BlogPost], error)
	Destination(slug string) (models.Destination, error)
	Hotel(slug string) (models.Hotel, error)
	BlogPost(slug string) (models.BlogPost, error)
	BlogCategories() ([]string, error)
	Home() (*models.HomeData, error)
	ImageRef(catalogName, slug string) (models.ImageRef, error)
	ImageRefs() ([]models.ImageRef, error)
}
