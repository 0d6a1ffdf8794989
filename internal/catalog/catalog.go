// Package catalog serves the studio's fixed product list. Listing can be
// backed by a Redis sorted set and search by Elasticsearch; both fall back to
// the in-process list when unavailable.
package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/thinkcraftlab/studio/internal/logging"
)

const (
	Category3DPrinting     = "3D Printing"
	CategoryDesignServices = "Design Services"
	CategoryPrototyping    = "Prototyping"

	DefaultSize = "Medium"
)

var (
	Categories = []string{Category3DPrinting, CategoryDesignServices, CategoryPrototyping}
	Sizes      = []string{"Small", DefaultSize, "Large", "X-Large"}
)

var ErrProductNotFound = errors.New("product not found")

type Product struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Price       string `json:"price"`
	Image       string `json:"image"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

type Page struct {
	Items []Product `json:"items"`
	Total int64     `json:"total"`
	Page  int       `json:"page"`
	Size  int       `json:"size"`
}

// Cache keeps an ordered copy of the catalog for paginated reads.
type Cache interface {
	Count(ctx context.Context) (int64, error)
	Range(ctx context.Context, offset, limit int) ([]Product, error)
	Fill(ctx context.Context, items []Product) error
}

type Searcher interface {
	Search(ctx context.Context, query string, from, size int) (int64, []Product, error)
}

type Catalog struct {
	Cache    Cache
	Searcher Searcher
}

// All returns a copy of every product ordered by id.
func All() []Product {
	out := make([]Product, len(products))
	copy(out, products)
	return out
}

func Find(id int) (Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

func ValidSize(size string) bool {
	for _, s := range Sizes {
		if s == size {
			return true
		}
	}
	return false
}

func (c *Catalog) Get(ctx context.Context, id int) (Product, error) {
	p, ok := Find(id)
	if !ok {
		return Product{}, ErrProductNotFound
	}
	return p, nil
}

func (c *Catalog) List(ctx context.Context, category string, page, size int) (Page, error) {
	from, limit := Calculate(page, size)
	res := Page{Page: pageNumber(page), Size: limit}

	if category != "" {
		filtered := make([]Product, 0, len(products))
		for _, p := range products {
			if p.Category == category {
				filtered = append(filtered, p)
			}
		}
		res.Items = window(filtered, from, limit)
		res.Total = int64(len(filtered))
		return res, nil
	}

	if c.Cache != nil {
		items, total, err := c.listCached(ctx, from, limit)
		if err == nil {
			res.Items, res.Total = items, total
			return res, nil
		}
		logging.FromContext(ctx).Warn("catalog_cache_unavailable", "error", err)
	}

	res.Items = window(products, from, limit)
	res.Total = int64(len(products))
	return res, nil
}

func (c *Catalog) listCached(ctx context.Context, from, limit int) ([]Product, int64, error) {
	total, err := c.Cache.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	if total != int64(len(products)) {
		if err := c.Cache.Fill(ctx, All()); err != nil {
			return nil, 0, err
		}
		total = int64(len(products))
	}
	if int64(from) >= total {
		return []Product{}, total, nil
	}

	items, err := c.Cache.Range(ctx, from, limit)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (c *Catalog) Search(ctx context.Context, query string, page, size int) (Page, error) {
	from, limit := Calculate(page, size)
	res := Page{Page: pageNumber(page), Size: limit}

	if c.Searcher != nil {
		total, items, err := c.Searcher.Search(ctx, query, from, limit)
		if err == nil {
			res.Items, res.Total = items, total
			return res, nil
		}
		logging.FromContext(ctx).Warn("catalog_search_unavailable", "error", err)
	}

	total, items, err := MemorySearcher{}.Search(ctx, query, from, limit)
	if err != nil {
		return Page{}, err
	}
	res.Items, res.Total = items, total
	return res, nil
}

// MemorySearcher matches the query case-insensitively against name,
// description and category.
type MemorySearcher struct{}

func (MemorySearcher) Search(ctx context.Context, query string, from, size int) (int64, []Product, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	matched := make([]Product, 0)
	for _, p := range products {
		if q == "" ||
			strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) ||
			strings.Contains(strings.ToLower(p.Category), q) {
			matched = append(matched, p)
		}
	}
	return int64(len(matched)), window(matched, from, size), nil
}

func window(items []Product, from, limit int) []Product {
	if from < 0 || limit <= 0 || from >= len(items) {
		return []Product{}
	}
	end := from + limit
	if end > len(items) || end < from {
		end = len(items)
	}
	out := make([]Product, end-from)
	copy(out, items[from:end])
	return out
}

func pageNumber(page int) int {
	if page < 1 {
		return 1
	}
	return page
}
