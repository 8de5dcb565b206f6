package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"adrija-tours/listing"
	"adrija-tours/models"
	"adrija-tours/repository"
	"adrija-tours/service"
)

// ErrorResponse is the body of every non-2xx JSON response
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// respondError maps err to a status code and writes it as JSON.
// Causes of 5xx responses are logged and not echoed to the client.
func respondError(c echo.Context, op string, err error) error {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		log.Printf("⚠️  %s: %v", op, err)
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: ve.Message, Field: ve.Field})
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrCatalogNotLoaded), errors.Is(err, service.ErrDriveNotConfigured):
		log.Printf("❌ %s: %v", op, err)
		return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: err.Error()})
	}

	log.Printf("❌ %s: %v", op, err)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

func badRequest(c echo.Context, field, format string, args ...any) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf(format, args...), Field: field})
}

// Listing output formats
const (
	formatJSON = "json"
	formatHTML = "html"
)

func listingFormat(c echo.Context) (string, bool) {
	switch format := strings.ToLower(strings.TrimSpace(c.QueryParam("format"))); format {
	case "", formatJSON:
		return formatJSON, true
	case formatHTML:
		return formatHTML, true
	default:
		return format, false
	}
}

// respondListing writes res as a JSON ListingResponse or as the rendered HTML fragment
func respondListing[T any](c echo.Context, op, format string, res listing.Result[T], emptyMessage string, render func(listing.Result[T]) (string, error)) error {
	if format == formatHTML {
		html, err := render(res)
		if err != nil {
			return respondError(c, op, err)
		}
		return c.HTML(http.StatusOK, html)
	}

	resp := models.ListingResponse[T]{
		Items: res.Items,
		Total: res.Total,
		Sort:  res.Sort.String(),
		Empty: res.Empty,
	}
	if res.Empty {
		resp.Message = emptyMessage
	}
	return c.JSON(http.StatusOK, resp)
}
