package controller

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"adrija-tours/service"
)

type imageProvider interface {
	Get(ctx context.Context, catalogName, slug string, size service.ImageSize) ([]byte, error)
	WarmCache(ctx context.Context, size service.ImageSize) (*service.WarmReport, error)
}

// ImageController serves optimized catalog images
type ImageController struct {
	images imageProvider
}

// NewImageController creates a new ImageController
func NewImageController(images imageProvider) *ImageController {
	return &ImageController{images: images}
}

// GetImage handles GET /images/:catalog/:id?size=thumb|medium
func (ic *ImageController) GetImage(c echo.Context) error {
	size := service.ParseImageSize(c.QueryParam("size"))

	data, err := ic.images.Get(c.Request().Context(), c.Param("catalog"), c.Param("id"), size)
	if err != nil {
		return respondError(c, "GetImage", err)
	}

	c.Response().Header().Set("Cache-Control", "public, max-age=86400")
	return c.Blob(http.StatusOK, "image/jpeg", data)
}

// WarmCache handles POST /admin/images/warm?size=
func (ic *ImageController) WarmCache(c echo.Context) error {
	report, err := ic.images.WarmCache(c.Request().Context(), service.ParseImageSize(c.QueryParam("size")))
	if err != nil {
		return respondError(c, "WarmCache", err)
	}
	return c.JSON(http.StatusOK, report)
}
