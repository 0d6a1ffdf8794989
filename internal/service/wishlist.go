package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/thinkcraftlab/studio/internal/catalog"
	"github.com/thinkcraftlab/studio/internal/events"
	"github.com/thinkcraftlab/studio/internal/media"
	"github.com/thinkcraftlab/studio/internal/models"
	"github.com/thinkcraftlab/studio/internal/repo"
)

type WishlistService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
	Images media.Resolver
}

func (h *WishlistService) GetWishlist(ctx context.Context, userID uuid.UUID) ([]models.WishlistItem, error) {
	items, err := h.Repo.GetWishlistByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.WishlistItem{}
	}
	resolveWishlistImages(ctx, h.Images, items)
	return items, nil
}

// AddToWishlist returns the stored row and whether it was newly created.
func (h *WishlistService) AddToWishlist(ctx context.Context, userID uuid.UUID, productID int) (*models.WishlistItem, bool, error) {
	p, ok := catalog.Find(productID)
	if !ok {
		return nil, false, fmt.Errorf("product %d: %w", productID, ErrNotFound)
	}

	item := &models.WishlistItem{
		UserID:             userID,
		ProductID:          p.ID,
		ProductName:        p.Name,
		ProductPrice:       p.Price,
		ProductImage:       p.Image,
		ProductDescription: p.Description,
	}
	created, err := h.Repo.AddToWishlist(ctx, item)
	if err != nil {
		return nil, false, err
	}

	if created {
		events.Emit(ctx, h.Events, events.TopicCartEvents, events.Event{
			Type: events.WishlistItemAdded, UserID: userID.String(), ProductID: p.ID,
		})
	}
	item.ProductImage = imageURL(ctx, h.Images, item.ProductID, item.ProductImage)
	return item, created, nil
}

func (h *WishlistService) RemoveFromWishlist(ctx context.Context, userID, wishlistID uuid.UUID) error {
	if err := h.Repo.RemoveFromWishlist(ctx, userID, wishlistID); err != nil {
		return notFound(err, "wishlist item")
	}
	events.Emit(ctx, h.Events, events.TopicCartEvents, events.Event{Type: events.WishlistItemRemoved, UserID: userID.String()})
	return nil
}

func (h *WishlistService) MoveToCart(ctx context.Context, userID, wishlistID uuid.UUID) (*models.CartItem, error) {
	item, err := h.Repo.MoveToCart(ctx, userID, wishlistID)
	if err != nil {
		return nil, notFound(err, "wishlist item")
	}
	events.Emit(ctx, h.Events, events.TopicCartEvents, events.Event{
		Type: events.WishlistItemMoved, UserID: userID.String(), ProductID: item.ProductID, Size: item.Size, Quantity: item.Quantity,
	})
	item.ProductImage = imageURL(ctx, h.Images, item.ProductID, item.ProductImage)
	return item, nil
}
