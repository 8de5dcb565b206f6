package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"golang.org/x/sync/singleflight"
	"resty.dev/v3"

	"adrija-tours/models"
)

// ErrDriveNotConfigured is returned for drive:// images when no Drive credentials are set
var ErrDriveNotConfigured = errors.New("google drive is not configured")

// imageRefResolver is the part of ListingService the image service needs
type imageRefResolver interface {
	ImageRef(catalogName, slug string) (models.ImageRef, error)
	ImageRefs() ([]models.ImageRef, error)
}

// WarmReport summarizes a cache warm-up run
type WarmReport struct {
	Total     int      `json:"total"`
	Optimized int      `json:"optimized"`
	Skipped   int      `json:"skipped"`
	Errors    []string `json:"errors"`
}

// ImageService serves optimized catalog images backed by a disk cache
type ImageService struct {
	refs    imageRefResolver
	drive   DriveServiceInterface
	client  *resty.Client
	limiter ratelimit.Limiter
	cache   *ImageCache
	flight  singleflight.Group
	timeout time.Duration
}

// NewImageService creates a new ImageService. drive may be nil.
func NewImageService(refs imageRefResolver, drive DriveServiceInterface, cache *ImageCache, timeout time.Duration, rps int) *ImageService {
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetResponseBodyLimit(maxImageBytes).
		SetHeader("Accept", "image/jpeg,image/png,image/*;q=0.8")

	return &ImageService{
		refs:    refs,
		drive:   drive,
		client:  client,
		limiter: ratelimit.New(rps),
		cache:   cache,
		timeout: timeout,
	}
}

// Close releases the HTTP client
func (s *ImageService) Close() error {
	return s.client.Close()
}

// Get returns the optimized image of one catalog item, from cache when possible
func (s *ImageService) Get(ctx context.Context, catalogName, slug string, size ImageSize) ([]byte, error) {
	ref, err := s.refs.ImageRef(catalogName, slug)
	if err != nil {
		return nil, err
	}
	return s.optimized(ctx, ref, size)
}

func (s *ImageService) optimized(ctx context.Context, ref models.ImageRef, size ImageSize) ([]byte, error) {
	path := s.cache.Path(ref.Catalog, ref.ID, size)

	data, ok, err := s.cache.Read(path)
	if err != nil {
		log.Printf("⚠️  Cache read failed for %s: %v", path, err)
	}
	if ok {
		return data, nil
	}

	v, err, _ := s.flight.Do(path, func() (any, error) {
		// Shared by every waiting caller, so one caller going away must not cancel it
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()

		raw, err := s.fetch(fctx, ref.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch image for %s/%s: %w", ref.Catalog, ref.ID, err)
		}

		optimized, err := OptimizeImage(raw, size)
		if err != nil {
			return nil, fmt.Errorf("failed to optimize image for %s/%s: %w", ref.Catalog, ref.ID, err)
		}

		if err := s.cache.Save(path, optimized); err != nil {
			// Serve the image even if caching fails
			log.Printf("⚠️  %v", err)
		}
		return optimized, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// fetch downloads the original bytes from Drive or over HTTP
func (s *ImageService) fetch(ctx context.Context, url string) ([]byte, error) {
	if fileID, ok := DriveFileID(url); ok {
		if s.drive == nil {
			return nil, ErrDriveNotConfigured
		}
		return s.drive.DownloadImage(ctx, fileID)
	}

	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return nil, fmt.Errorf("unsupported image reference %q", url)
	}

	s.limiter.Take()

	resp, err := s.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("request cancelled: %w", ctx.Err())
		}
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode(), resp.Status())
	}
	return resp.Bytes(), nil
}

// WarmCache optimizes every catalog image that is not cached yet.
// Failures are collected in the report and do not stop the run.
func (s *ImageService) WarmCache(ctx context.Context, size ImageSize) (*WarmReport, error) {
	refs, err := s.refs.ImageRefs()
	if err != nil {
		return nil, err
	}

	log.Printf("📥 Warming %s image cache for %d items", size, len(refs))
	report := &WarmReport{Total: len(refs), Errors: []string{}}

	for _, ref := range refs {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		path := s.cache.Path(ref.Catalog, ref.ID, size)
		_, ok, err := s.cache.Read(path)
		if err != nil {
			log.Printf("⚠️  Cache read failed for %s: %v", path, err)
		}
		if ok {
			report.Skipped++
			continue
		}

		if _, err := s.optimized(ctx, ref, size); err != nil {
			log.Printf("❌ %v", err)
			report.Errors = append(report.Errors, err.Error())
			continue
		}
		report.Optimized++
	}

	log.Printf("🎉 Image cache warm-up finished: %d optimized, %d skipped, %d errors",
		report.Optimized, report.Skipped, len(report.Errors))
	return report, nil
}
