package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"adrija-tours/app"
	"adrija-tours/catalog"
	"adrija-tours/listing"
	"adrija-tours/models"
	"adrija-tours/service"
	"adrija-tours/utils"
)

type listOptions struct {
	search  string
	filters []string
	sort    string
	output  string
}

func newListCommand() *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:       "list destinations|hotels|blog",
		Short:     "Search, filter and sort a catalog",
		Example:   "  adrija list destinations --filter region=West --sort priceLow\n  adrija list blog --filter category=Family,International",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{catalog.Destinations.Name, catalog.Hotels.Name, catalog.BlogPosts.Name},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, args[0], opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.search, "q", "", "free-text search")
	f.StringArrayVar(&opts.filters, "filter", nil, "attribute filter as attr=value (repeatable, values may be comma separated)")
	f.StringVar(&opts.sort, "sort", "", "sort key: default, priceLow, priceHigh, rating")
	f.StringVarP(&opts.output, "output", "o", "table", "output format: table, json")

	return cmd
}

func (o *listOptions) values() (url.Values, error) {
	values := url.Values{}
	values.Set("q", o.search)
	values.Set("sort", o.sort)
	for _, f := range o.filters {
		attr, value, ok := strings.Cut(f, "=")
		if !ok || strings.TrimSpace(attr) == "" {
			return nil, fmt.Errorf("invalid filter %q: expected attr=value", f)
		}
		values.Add(strings.TrimSpace(attr), value)
	}
	return values, nil
}

func runList(cmd *cobra.Command, catalogName string, opts *listOptions) error {
	if opts.output != "table" && opts.output != "json" {
		return &ExitError{Code: 2, Err: fmt.Errorf("invalid output %q: must be table or json", opts.output)}
	}
	values, err := opts.values()
	if err != nil {
		return &ExitError{Code: 2, Err: err}
	}

	ctx := cmd.Context()
	source, closeSource, err := app.OpenSource(ctx, configFrom(ctx))
	if err != nil {
		return err
	}
	defer closeSource()

	listings := service.NewListingService(source)
	if _, err := listings.Load(ctx); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch catalogName {
	case catalog.Destinations.Name:
		res, err := listings.SearchDestinations(catalog.QueryFromValues(values, catalog.DestinationAttributes...))
		if err != nil {
			return err
		}
		return printListing(out, opts.output, res, catalog.NoDestinationsMessage,
			[]string{"ID", "TITLE", "REGION", "PACKAGE", "PRICE", "RATING"},
			func(d models.Destination) []string {
				return []string{d.ID, d.Title, d.Region, d.PackageType, utils.FormatINR(d.Price), rating(d.Rating)}
			})

	case catalog.Hotels.Name:
		q := catalog.QueryFromValues(values, catalog.HotelAttributes...)
		if err := catalog.ValidateHotelQuery(q); err != nil {
			return &ExitError{Code: 2, Err: err}
		}
		res, err := listings.SearchHotels(q)
		if err != nil {
			return err
		}
		return printListing(out, opts.output, res, catalog.NoHotelsMessage,
			[]string{"ID", "TITLE", "CITY", "STARS", "PRICE", "RATING"},
			func(h models.Hotel) []string {
				return []string{h.ID, h.Title, h.City, strconv.Itoa(h.Stars), utils.FormatNightly(h.Price), rating(h.Rating)}
			})

	case catalog.BlogPosts.Name:
		res, err := listings.SearchBlog(catalog.QueryFromValues(values, catalog.BlogAttributes...))
		if err != nil {
			return err
		}
		return printListing(out, opts.output, res, catalog.NoArticlesMessage,
			[]string{"ID", "TITLE", "CATEGORY"},
			func(p models.BlogPost) []string {
				return []string{p.ID, p.Title, p.Category}
			})
	}

	return &ExitError{Code: 2, Err: fmt.Errorf("unknown catalog %q: must be destinations, hotels or blog", catalogName)}
}

func printListing[T any](out io.Writer, format string, res listing.Result[T], emptyMessage string, header []string, row func(T) []string) error {
	if format == "json" {
		resp := models.ListingResponse[T]{Items: res.Items, Total: res.Total, Sort: res.Sort.String(), Empty: res.Empty}
		if res.Empty {
			resp.Message = emptyMessage
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	if res.Empty {
		_, err := fmt.Fprintln(out, emptyMessage)
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for _, item := range res.Items {
		fmt.Fprintln(w, strings.Join(row(item), "\t"))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "%d result(s), sort: %s\n", res.Total, res.Sort)
	return err
}

func rating(r float64) string {
	return strconv.FormatFloat(r, 'f', 1, 64)
}
