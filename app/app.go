package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"adrija-tours/app/controller"
	"adrija-tours/app/router"
	"adrija-tours/config"
	"adrija-tours/db"
	"adrija-tours/queue"
	"adrija-tours/repository"
	"adrija-tours/service"
)

// App holds the wired HTTP server and the services with a lifecycle
type App struct {
	Echo     *echo.Echo
	Listings *service.ListingService
	Images   *service.ImageService
	// Watcher is nil unless catalog.watch is enabled
	Watcher *service.CatalogWatcher

	closers []func() error
}

// Close releases every connection the app opened
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	return errors.Join(errs...)
}

// OpenSource returns the configured catalog source and its closer
func OpenSource(ctx context.Context, cfg *config.Config) (repository.CatalogSource, func() error, error) {
	if cfg.Catalog.Source != config.SourcePostgres {
		return repository.NewFixtureRepository(cfg.Catalog.FixturesPath), func() error { return nil }, nil
	}

	conn, err := db.Open(ctx, cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := db.EnsureSchema(ctx, conn); err != nil {
		conn.Close()
		return nil, nil, err
	}
	return repository.NewCatalogRepository(conn), conn.Close, nil
}

// Initialize initializes the application
func Initialize(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{}
	ok := false
	defer func() {
		if !ok {
			a.Close()
		}
	}()

	// Initialize catalog source
	source, closeSource, err := OpenSource(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, closeSource)

	a.Listings = service.NewListingService(source)
	if _, err := a.Listings.Load(ctx); err != nil {
		return nil, fmt.Errorf("failed to load catalog from %s: %w", source.Name(), err)
	}

	render, err := service.NewRenderService()
	if err != nil {
		return nil, err
	}

	sink, err := newIntentSink(ctx, cfg, a)
	if err != nil {
		return nil, err
	}

	controllers := &router.Controllers{
		Listing:  controller.NewListingController(a.Listings, render),
		Intent:   controller.NewIntentController(service.NewIntentService(a.Listings, sink)),
		Brochure: controller.NewBrochureController(service.NewBrochureService(a.Listings, render, cfg.Server.BaseURL, cfg.Brochure.ChromePath, cfg.Brochure.Timeout)),
		Admin:    controller.NewAdminController(a.Listings),
	}

	if cfg.Images.CacheDir != "" {
		images, err := NewImageService(ctx, cfg, a.Listings)
		if err != nil {
			return nil, err
		}
		a.Images = images
		a.closers = append(a.closers, images.Close)
		controllers.Image = controller.NewImageController(images)
	} else {
		log.Printf("⚠️  images.cache_dir is empty, image endpoints disabled")
	}

	if cfg.Catalog.Watch {
		watcher, err := service.NewCatalogWatcher(cfg.Catalog.FixturesPath, a.Listings, service.DefaultReloadDebounce)
		if err != nil {
			return nil, err
		}
		a.Watcher = watcher
	}

	a.Echo = router.New(controllers)
	ok = true
	return a, nil
}

func newIntentSink(ctx context.Context, cfg *config.Config, a *App) (queue.IntentSink, error) {
	if !cfg.Redis.Enabled {
		log.Printf("⚠️  Redis disabled, intents are only logged")
		return queue.NewLogSink(nil), nil
	}

	client, err := queue.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, client.Close)
	return queue.NewRedisSink(client, cfg.Redis.Stream), nil
}

// NewImageService builds the image service from the images and drive config
func NewImageService(ctx context.Context, cfg *config.Config, listings *service.ListingService) (*service.ImageService, error) {
	cache, err := service.NewImageCache(cfg.Images.CacheDir)
	if err != nil {
		return nil, err
	}

	// Drive is only needed for drive:// image references
	var drive service.DriveServiceInterface
	if cfg.Drive.CredentialsFile != "" {
		ds, err := service.NewDriveService(ctx, cfg.Drive.CredentialsFile)
		if err != nil {
			return nil, err
		}
		drive = ds
	}

	return service.NewImageService(listings, drive, cache, cfg.Images.FetchTimeout, cfg.Images.FetchRPS), nil
}
