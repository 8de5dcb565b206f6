package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"adrija-tours/catalog"
	"adrija-tours/service"
)

// ListingController handles HTTP requests for the catalog listings and detail pages
type ListingController struct {
	listings service.ListingServiceInterface
	render   *service.RenderService
}

// NewListingController creates a new ListingController
func NewListingController(listings service.ListingServiceInterface, render *service.RenderService) *ListingController {
	return &ListingController{
		listings: listings,
		render:   render,
	}
}

// Home handles GET /api/home
func (lc *ListingController) Home(c echo.Context) error {
	home, err := lc.listings.Home()
	if err != nil {
		return respondError(c, "Home", err)
	}
	return c.JSON(http.StatusOK, home)
}

// ListDestinations handles GET /api/destinations?q=&region=&package=&sort=&format=
func (lc *ListingController) ListDestinations(c echo.Context) error {
	format, ok := listingFormat(c)
	if !ok {
		return badRequest(c, "format", "invalid format %q: must be json or html", format)
	}

	q := catalog.QueryFromValues(c.QueryParams(), catalog.DestinationAttributes...)
	res, err := lc.listings.SearchDestinations(q)
	if err != nil {
		return respondError(c, "ListDestinations", err)
	}

	log.Debugf("🔍 destinations q=%q filters=%v sort=%s -> %d", q.Search, q.Filters, res.Sort, res.Total)
	return respondListing(c, "ListDestinations", format, res, catalog.NoDestinationsMessage, lc.render.RenderDestinations)
}

// GetDestination handles GET /api/destinations/:slug
func (lc *ListingController) GetDestination(c echo.Context) error {
	d, err := lc.listings.Destination(c.Param("slug"))
	if err != nil {
		return respondError(c, "GetDestination", err)
	}
	return c.JSON(http.StatusOK, d)
}

// ListHotels handles GET /api/hotels?q=&city=&stars=&sort=&format=
func (lc *ListingController) ListHotels(c echo.Context) error {
	format, ok := listingFormat(c)
	if !ok {
		return badRequest(c, "format", "invalid format %q: must be json or html", format)
	}

	q := catalog.QueryFromValues(c.QueryParams(), catalog.HotelAttributes...)
	if err := catalog.ValidateHotelQuery(q); err != nil {
		return badRequest(c, catalog.AttrStars, "%s", err.Error())
	}

	res, err := lc.listings.SearchHotels(q)
	if err != nil {
		return respondError(c, "ListHotels", err)
	}

	log.Debugf("🔍 hotels q=%q filters=%v sort=%s -> %d", q.Search, q.Filters, res.Sort, res.Total)
	return respondListing(c, "ListHotels", format, res, catalog.NoHotelsMessage, lc.render.RenderHotels)
}

// GetHotel handles GET /api/hotels/:slug
func (lc *ListingController) GetHotel(c echo.Context) error {
	h, err := lc.listings.Hotel(c.Param("slug"))
	if err != nil {
		return respondError(c, "GetHotel", err)
	}
	return c.JSON(http.StatusOK, h)
}

// ListBlog handles GET /api/blog?q=&category=&format=
func (lc *ListingController) ListBlog(c echo.Context) error {
	format, ok := listingFormat(c)
	if !ok {
		return badRequest(c, "format", "invalid format %q: must be json or html", format)
	}

	q := catalog.QueryFromValues(c.QueryParams(), catalog.BlogAttributes...)
	res, err := lc.listings.SearchBlog(q)
	if err != nil {
		return respondError(c, "ListBlog", err)
	}
	return respondListing(c, "ListBlog", format, res, catalog.NoArticlesMessage, lc.render.RenderBlog)
}

// BlogCategories handles GET /api/blog/categories
func (lc *ListingController) BlogCategories(c echo.Context) error {
	categories, err := lc.listings.BlogCategories()
	if err != nil {
		return respondError(c, "BlogCategories", err)
	}
	return c.JSON(http.StatusOK, map[string][]string{"categories": categories})
}

// GetBlogPost handles GET /api/blog/:slug
func (lc *ListingController) GetBlogPost(c echo.Context) error {
	p, err := lc.listings.BlogPost(c.Param("slug"))
	if err != nil {
		return respondError(c, "GetBlogPost", err)
	}
	return c.JSON(http.StatusOK, p)
}
