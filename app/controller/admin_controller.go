package controller

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"adrija-tours/service"
)

// ReloadResponse describes the snapshot installed by a reload
type ReloadResponse struct {
	Source       string    `json:"source"`
	Destinations int       `json:"destinations"`
	Hotels       int       `json:"hotels"`
	BlogPosts    int       `json:"blogPosts"`
	LoadedAt     time.Time `json:"loadedAt"`
}

// AdminController handles operational endpoints
type AdminController struct {
	listings service.ListingServiceInterface
}

// NewAdminController creates a new AdminController
func NewAdminController(listings service.ListingServiceInterface) *AdminController {
	return &AdminController{listings: listings}
}

// ReloadCatalog handles POST /admin/catalog/reload.
// A failed reload keeps serving the previous snapshot and reports the cause.
func (ac *AdminController) ReloadCatalog(c echo.Context) error {
	log.Printf("🔄 Catalog reload requested")

	snap, err := ac.listings.Load(c.Request().Context())
	if err != nil {
		log.Printf("❌ ReloadCatalog: %v", err)
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	}

	return c.JSON(http.StatusOK, ReloadResponse{
		Source:       snap.Source,
		Destinations: snap.Destinations.Len(),
		Hotels:       snap.Hotels.Len(),
		BlogPosts:    snap.BlogPosts.Len(),
		LoadedAt:     snap.LoadedAt,
	})
}
