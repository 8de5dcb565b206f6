// Package listing implements the search/filter/sort pipeline shared by every
// catalog the site lists (destinations, hotels, blog posts).
//
// A Pipeline owns an immutable copy of one catalog. Each call to Run receives
// the full filter state (search text, categorical filters, sort key) and
// returns a fresh Result; nothing is remembered between calls.
package listing

import (
	"fmt"
	"slices"
	"strings"
)

// Schema describes how the pipeline reads one item type.
//
// SearchText returns the text fields matched by free-text search, Attributes
// maps a categorical attribute name to its accessor, and Sorts maps every sort
// key the catalog supports (other than SortDefault) to a three-way comparator.
type Schema[T any] struct {
	Name       string
	ID         func(T) string
	SearchText func(T) []string
	Attributes map[string]func(T) string
	Sorts      map[SortKey]func(a, b T) int
}

// Query is the filter state supplied by the caller on every invocation
type Query struct {
	// Search is matched case-insensitively as a substring of the searchable text.
	// Empty or whitespace-only text matches everything.
	Search string
	// Filters maps an attribute name to the set of accepted values.
	// An empty set leaves the attribute unconstrained.
	Filters map[string][]string
	Sort    SortKey
}

// WithFilter returns a copy of q with values accepted for attr
func (q Query) WithFilter(attr string, values ...string) Query {
	filters := make(map[string][]string, len(q.Filters)+1)
	for k, v := range q.Filters {
		filters[k] = v
	}
	filters[attr] = append(append([]string(nil), filters[attr]...), values...)
	q.Filters = filters
	return q
}

// Result is the ordered output of one pipeline run
type Result[T any] struct {
	Items []T
	Total int
	// Sort is the key actually applied, after unsupported keys fell back to default
	Sort SortKey
	// Empty signals that nothing matched and an empty-state message should be shown
	Empty bool
}

// Pipeline runs queries against one immutable catalog
type Pipeline[T any] struct {
	schema Schema[T]
	items  []T
	search [][]string // lowercased searchable fields per item
	index  map[string]int
}

// NewPipeline copies items into a new pipeline. Item ids must be unique.
func NewPipeline[T any](schema Schema[T], items []T) (*Pipeline[T], error) {
	if schema.ID == nil {
		return nil, fmt.Errorf("%s: schema has no id accessor", schema.Name)
	}

	p := &Pipeline[T]{
		schema: schema,
		items:  slices.Clone(items),
		search: make([][]string, len(items)),
		index:  make(map[string]int, len(items)),
	}
	if p.items == nil {
		p.items = []T{}
	}

	for i, item := range p.items {
		id := schema.ID(item)
		if _, dup := p.index[id]; dup {
			return nil, fmt.Errorf("%s: duplicate id %q", schema.Name, id)
		}
		p.index[id] = i
		if schema.SearchText != nil {
			fields := schema.SearchText(item)
			p.search[i] = make([]string, len(fields))
			for j, f := range fields {
				p.search[i][j] = strings.ToLower(f)
			}
		}
	}

	return p, nil
}

// Name returns the catalog name from the schema
func (p *Pipeline[T]) Name() string {
	return p.schema.Name
}

// Len returns the number of items in the catalog
func (p *Pipeline[T]) Len() int {
	return len(p.items)
}

// Items returns a copy of the catalog in insertion order
func (p *Pipeline[T]) Items() []T {
	return slices.Clone(p.items)
}

// Lookup finds an item by id
func (p *Pipeline[T]) Lookup(id string) (T, bool) {
	i, ok := p.index[id]
	if !ok {
		var zero T
		return zero, false
	}
	return p.items[i], true
}

// Supports reports whether the catalog can be ordered by key
func (p *Pipeline[T]) Supports(key SortKey) bool {
	if key == SortDefault {
		return true
	}
	_, ok := p.schema.Sorts[key]
	return ok
}

// Distinct returns the distinct values of attr in first-seen catalog order
func (p *Pipeline[T]) Distinct(attr string) []string {
	get, ok := p.schema.Attributes[attr]
	if !ok {
		return []string{}
	}
	seen := make(map[string]bool)
	values := []string{}
	for _, item := range p.items {
		v := get(item)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	return values
}

// Run filters and orders the catalog for q
func (p *Pipeline[T]) Run(q Query) Result[T] {
	text := strings.ToLower(strings.TrimSpace(q.Search))
	constraints := p.constraints(q.Filters)

	items := make([]T, 0, len(p.items))
	for i, item := range p.items {
		if text != "" && !anyContains(p.search[i], text) {
			continue
		}
		if !matchesAll(item, constraints) {
			continue
		}
		items = append(items, item)
	}

	key := q.Sort
	if !p.Supports(key) {
		key = SortDefault
	}
	if key != SortDefault {
		slices.SortStableFunc(items, p.schema.Sorts[key])
	}

	return Result[T]{
		Items: items,
		Total: len(items),
		Sort:  key,
		Empty: len(items) == 0,
	}
}

type constraint[T any] struct {
	get      func(T) string
	accepted map[string]bool
}

// constraints drops filters with no accepted values and filters on
// attributes the schema does not declare.
func (p *Pipeline[T]) constraints(filters map[string][]string) []constraint[T] {
	var out []constraint[T]
	for attr, values := range filters {
		get, ok := p.schema.Attributes[attr]
		if !ok {
			continue
		}
		accepted := make(map[string]bool, len(values))
		for _, v := range values {
			if v = strings.TrimSpace(v); v != "" {
				accepted[v] = true
			}
		}
		if len(accepted) == 0 {
			continue
		}
		out = append(out, constraint[T]{get: get, accepted: accepted})
	}
	return out
}

func matchesAll[T any](item T, constraints []constraint[T]) bool {
	for _, c := range constraints {
		if !c.accepted[c.get(item)] {
			return false
		}
	}
	return true
}

func anyContains(fields []string, text string) bool {
	for _, f := range fields {
		if strings.Contains(f, text) {
			return true
		}
	}
	return false
}
