package service

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"adrija-tours/catalog"
	"adrija-tours/listing"
	"adrija-tours/models"
	"adrija-tours/utils"
)

//go:embed templates/*.html
var templateFS embed.FS

// RenderService renders listing results as HTML fragments.
// Each fragment is a complete replacement for the listing container.
type RenderService struct {
	tmpl *template.Template
}

// NewRenderService parses the embedded templates
func NewRenderService() (*RenderService, error) {
	funcs := template.FuncMap{
		"inr":      utils.FormatINR,
		"nightly":  utils.FormatNightly,
		"join":     strings.Join,
		"imageURL": imageURL,
	}

	tmpl, err := template.New("cards").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	return &RenderService{tmpl: tmpl}, nil
}

// imageURL serves drive:// images through the image route
func imageURL(catalogName, id, ref string) string {
	if strings.HasPrefix(ref, DriveRefPrefix) {
		return "/images/" + url.PathEscape(catalogName) + "/" + url.PathEscape(id)
	}
	return ref
}

type fragment[T any] struct {
	Items   []T
	Empty   bool
	Message string
}

// RenderDestinations renders destination cards or the empty-state message
func (s *RenderService) RenderDestinations(res listing.Result[models.Destination]) (string, error) {
	return s.execute("destinations", fragment[models.Destination]{
		Items: res.Items, Empty: res.Empty, Message: catalog.NoDestinationsMessage,
	})
}

// RenderHotels renders hotel cards or the empty-state message
func (s *RenderService) RenderHotels(res listing.Result[models.Hotel]) (string, error) {
	return s.execute("hotels", fragment[models.Hotel]{
		Items: res.Items, Empty: res.Empty, Message: catalog.NoHotelsMessage,
	})
}

// RenderBlog renders blog cards or the empty-state message
func (s *RenderService) RenderBlog(res listing.Result[models.BlogPost]) (string, error) {
	return s.execute("blog", fragment[models.BlogPost]{
		Items: res.Items, Empty: res.Empty, Message: catalog.NoArticlesMessage,
	})
}

// RenderBrochure renders the printable brochure page
func (s *RenderService) RenderBrochure(data models.BrochureData) (string, error) {
	return s.execute("brochure", data)
}

func (s *RenderService) execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	return buf.String(), nil
}
