package router

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"

	"adrija-tours/app/controller"
)

type Controllers struct {
	Listing  *controller.ListingController
	Intent   *controller.IntentController
	Image    *controller.ImageController
	Brochure *controller.BrochureController
	Admin    *controller.AdminController
}

// pingHandler handles GET /ping
func pingHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// New creates the echo instance with middleware and every route registered
func New(controllers *Controllers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			entry := log.WithFields(log.Fields{
				"method":  v.Method,
				"uri":     v.URI,
				"status":  v.Status,
				"latency": v.Latency.Round(time.Microsecond).String(),
			})
			if v.Error != nil {
				entry.WithError(v.Error).Warn("request failed")
				return nil
			}
			entry.Info("request")
			return nil
		},
	}))

	RegisterRoutes(e, controllers)
	return e
}

// RegisterRoutes wires every controller onto e
func RegisterRoutes(e *echo.Echo, controllers *Controllers) {
	// Ping endpoint
	e.GET("/ping", pingHandler)

	api := e.Group("/api")
	api.GET("/home", controllers.Listing.Home)

	// Listings and detail pages
	api.GET("/destinations", controllers.Listing.ListDestinations)
	api.GET("/destinations/:slug", controllers.Listing.GetDestination)
	api.GET("/hotels", controllers.Listing.ListHotels)
	api.GET("/hotels/:slug", controllers.Listing.GetHotel)
	api.GET("/blog", controllers.Listing.ListBlog)
	api.GET("/blog/categories", controllers.Listing.BlogCategories)
	api.GET("/blog/:slug", controllers.Listing.GetBlogPost)

	// Form submissions
	intents := api.Group("/intents")
	intents.POST("/enquiry", controllers.Intent.Enquiry)
	intents.POST("/hotel-enquiry", controllers.Intent.HotelEnquiry)
	intents.POST("/cart", controllers.Intent.AddToCart)
	intents.POST("/custom-trip", controllers.Intent.CustomTrip)

	// Images are optional: no cache dir, no image routes
	if controllers.Image != nil {
		e.GET("/images/:catalog/:id", controllers.Image.GetImage)
		e.POST("/admin/images/warm", controllers.Image.WarmCache)
	}

	e.GET("/brochure", controllers.Brochure.Download)
	e.GET("/brochure/render", controllers.Brochure.Render)

	e.POST("/admin/catalog/reload", controllers.Admin.ReloadCatalog)
}
