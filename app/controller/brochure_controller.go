package controller

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"adrija-tours/catalog"
	"adrija-tours/listing"
)

type brochureGenerator interface {
	RenderHTML(q listing.Query) (string, error)
	GeneratePDF(ctx context.Context, rawQuery string) ([]byte, error)
}

// BrochureController handles the printable destinations brochure
type BrochureController struct {
	brochures brochureGenerator
}

// NewBrochureController creates a new BrochureController
func NewBrochureController(brochures brochureGenerator) *BrochureController {
	return &BrochureController{brochures: brochures}
}

// Download handles GET /brochure?<destination query>
func (bc *BrochureController) Download(c echo.Context) error {
	pdf, err := bc.brochures.GeneratePDF(c.Request().Context(), c.QueryString())
	if err != nil {
		return respondError(c, "Download", err)
	}

	filename := fmt.Sprintf("adrija-destinations-%s.pdf", time.Now().Format("2006-01-02"))
	c.Response().Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}

// Render handles GET /brochure/render?<destination query>
func (bc *BrochureController) Render(c echo.Context) error {
	q := catalog.QueryFromValues(c.QueryParams(), catalog.DestinationAttributes...)
	html, err := bc.brochures.RenderHTML(q)
	if err != nil {
		return respondError(c, "Render", err)
	}
	return c.HTML(http.StatusOK, html)
}
