package service

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	log "github.com/sirupsen/logrus"

	"adrija-tours/catalog"
	"adrija-tours/listing"
	"adrija-tours/models"
)

// BrochureService prints filtered destination listings to PDF
type BrochureService struct {
	listings   ListingServiceInterface
	render     *RenderService
	baseURL    string // Base URL headless Chrome loads the render page from
	chromePath string
	timeout    time.Duration
}

// NewBrochureService creates a new BrochureService
func NewBrochureService(listings ListingServiceInterface, render *RenderService, baseURL, chromePath string, timeout time.Duration) *BrochureService {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &BrochureService{
		listings:   listings,
		render:     render,
		baseURL:    strings.TrimRight(baseURL, "/"),
		chromePath: chromePath,
		timeout:    timeout,
	}
}

// detectChromePath returns the configured Chrome path when it exists, then common installation paths
func detectChromePath(configured string) string {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured
		}
		log.Printf("⚠️  Configured chrome path %s not found, probing defaults", configured)
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// BrochureData runs q against the destinations catalog and prepares the printable page
func (s *BrochureService) BrochureData(q listing.Query) (models.BrochureData, error) {
	res, err := s.listings.SearchDestinations(q)
	if err != nil {
		return models.BrochureData{}, err
	}

	data := models.BrochureData{
		Title:        "Adrija Tours Destinations",
		Filters:      DescribeQuery(q, res.Sort),
		Destinations: res.Items,
		GeneratedAt:  time.Now().Format("02 Jan 2006"),
	}
	if res.Empty {
		data.Message = catalog.NoDestinationsMessage
	}
	return data, nil
}

// RenderHTML renders the printable brochure page for q
func (s *BrochureService) RenderHTML(q listing.Query) (string, error) {
	data, err := s.BrochureData(q)
	if err != nil {
		return "", err
	}
	return s.render.RenderBrochure(data)
}

// GeneratePDF loads /brochure/render with the same query in headless Chrome and prints it to A4
func (s *BrochureService) GeneratePDF(ctx context.Context, rawQuery string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
		chromedp.Flag("enable-print-preview", true),
	)
	if chromePath := detectChromePath(s.chromePath); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	renderURL := s.baseURL + "/brochure/render"
	if rawQuery != "" {
		renderURL += "?" + rawQuery
	}
	log.Printf("🖨️  Generating brochure PDF from %s", renderURL)

	var pdfBuf []byte
	err := chromedp.Run(chromedpCtx,
		chromedp.EmulateViewport(794, 1123), // A4 at 96 DPI
		chromedp.Navigate(renderURL),
		chromedp.WaitReady("body"),
		// Wait for fonts and images to load
		chromedp.Evaluate(`
			Promise.all([
				document.fonts.ready,
				...Array.from(document.images).map(img => img.complete ? null : new Promise(resolve => {
					const timeout = setTimeout(resolve, 5000);
					img.onload = img.onerror = () => { clearTimeout(timeout); resolve(); };
				}))
			]).then(() => true);
		`, nil, func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
			return p.WithAwaitPromise(true)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).   // 210mm in inches
				WithPaperHeight(11.69). // 297mm in inches
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		log.Printf("❌ Error generating brochure PDF: %v", err)
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	log.Printf("✓ Brochure PDF generated: %d bytes", len(pdfBuf))
	return pdfBuf, nil
}

// DescribeQuery summarizes the applied filters for print, e.g. "Search: goa · Region: West · Sort: price, low to high"
func DescribeQuery(q listing.Query, applied listing.SortKey) string {
	var parts []string
	if text := strings.TrimSpace(q.Search); text != "" {
		parts = append(parts, "Search: "+text)
	}

	attrs := make([]string, 0, len(q.Filters))
	for attr, values := range q.Filters {
		if len(values) > 0 {
			attrs = append(attrs, attr)
		}
	}
	slices.Sort(attrs)
	for _, attr := range attrs {
		label := strings.ToUpper(attr[:1]) + attr[1:]
		parts = append(parts, label+": "+strings.Join(q.Filters[attr], ", "))
	}

	switch applied {
	case listing.SortPriceAscending:
		parts = append(parts, "Sort: price, low to high")
	case listing.SortPriceDescending:
		parts = append(parts, "Sort: price, high to low")
	case listing.SortRatingDescending:
		parts = append(parts, "Sort: rating")
	}

	if len(parts) == 0 {
		return "All destinations"
	}
	return strings.Join(parts, " · ")
}
