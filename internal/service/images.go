package service

import (
	"context"

	"github.com/thinkcraftlab/studio/internal/logging"
	"github.com/thinkcraftlab/studio/internal/media"
	"github.com/thinkcraftlab/studio/internal/models"
)

// imageURL maps a stored image path to a fetchable URL. A nil resolver or a
// failed lookup keeps the path.
func imageURL(ctx context.Context, r media.Resolver, productID int, path string) string {
	if r == nil {
		return path
	}
	u, err := r.URL(ctx, path)
	if err != nil {
		logging.FromContext(ctx).Warn("image_url_failed", "product_id", productID, "error", err)
		return path
	}
	return u
}

func resolveCartImages(ctx context.Context, r media.Resolver, items []models.CartItem) {
	for i := range items {
		items[i].ProductImage = imageURL(ctx, r, items[i].ProductID, items[i].ProductImage)
	}
}

func resolveWishlistImages(ctx context.Context, r media.Resolver, items []models.WishlistItem) {
	for i := range items {
		items[i].ProductImage = imageURL(ctx, r, items[i].ProductID, items[i].ProductImage)
	}
}
