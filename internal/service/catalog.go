package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/thinkcraftlab/studio/internal/catalog"
	"github.com/thinkcraftlab/studio/internal/media"
)

type CatalogService struct {
	Catalog *catalog.Catalog
	Images  media.Resolver
}

func (h *CatalogService) List(ctx context.Context, category string, page, size int) (catalog.Page, error) {
	if category != "" && !catalog.ValidCategory(category) {
		return catalog.Page{}, fmt.Errorf("%w: unknown category %q", ErrValidation, category)
	}
	res, err := h.Catalog.List(ctx, category, page, size)
	if err != nil {
		return catalog.Page{}, err
	}
	h.resolveImages(ctx, res.Items)
	return res, nil
}

func (h *CatalogService) Get(ctx context.Context, id int) (catalog.Product, error) {
	p, err := h.Catalog.Get(ctx, id)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			return catalog.Product{}, fmt.Errorf("product %d: %w", id, ErrNotFound)
		}
		return catalog.Product{}, err
	}
	items := []catalog.Product{p}
	h.resolveImages(ctx, items)
	return items[0], nil
}

func (h *CatalogService) Search(ctx context.Context, query string, page, size int) (catalog.Page, error) {
	res, err := h.Catalog.Search(ctx, query, page, size)
	if err != nil {
		return catalog.Page{}, err
	}
	h.resolveImages(ctx, res.Items)
	return res, nil
}

// resolveImages rewrites image paths in place.
func (h *CatalogService) resolveImages(ctx context.Context, items []catalog.Product) {
	for i := range items {
		items[i].Image = imageURL(ctx, h.Images, items[i].ID, items[i].Image)
	}
}
