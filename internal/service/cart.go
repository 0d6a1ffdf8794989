package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/thinkcraftlab/studio/internal/catalog"
	"github.com/thinkcraftlab/studio/internal/events"
	"github.com/thinkcraftlab/studio/internal/logging"
	"github.com/thinkcraftlab/studio/internal/media"
	"github.com/thinkcraftlab/studio/internal/models"
	"github.com/thinkcraftlab/studio/internal/repo"
	"github.com/thinkcraftlab/studio/pkg/money"
)

type CartService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
	Images media.Resolver
}

type CartView struct {
	Items []models.CartItem `json:"items"`
	Total string            `json:"total"`
	Count int               `json:"count"`
}

func NewCartView(items []models.CartItem) *CartView {
	if items == nil {
		items = []models.CartItem{}
	}
	count := 0
	for _, it := range items {
		count += it.Quantity
	}
	return &CartView{Items: items, Total: money.Total(items), Count: count}
}

func (h *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*CartView, error) {
	items, err := h.Repo.GetCartByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resolveCartImages(ctx, h.Images, items)
	return NewCartView(items), nil
}

// AddToCart snapshots the catalog product into the user's cart. An empty size
// means the default size and a zero quantity means one.
func (h *CartService) AddToCart(ctx context.Context, userID uuid.UUID, productID int, size string, quantity int) (*models.CartItem, error) {
	l := logging.FromContext(ctx).With("svc", "cart.add")

	p, ok := catalog.Find(productID)
	if !ok {
		return nil, fmt.Errorf("product %d: %w", productID, ErrNotFound)
	}
	if size == "" {
		size = catalog.DefaultSize
	}
	if !catalog.ValidSize(size) {
		return nil, fmt.Errorf("%w: unknown size %q", ErrValidation, size)
	}
	if quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must not be negative", ErrValidation)
	}
	if quantity == 0 {
		quantity = 1
	}

	item := &models.CartItem{
		UserID:             userID,
		ProductID:          p.ID,
		ProductName:        p.Name,
		ProductPrice:       p.Price,
		ProductImage:       p.Image,
		ProductDescription: p.Description,
		Size:               size,
		Quantity:           quantity,
	}
	if err := h.Repo.AddToCart(ctx, item); err != nil {
		l.Error("add_to_cart_error", "status", 500, "error", err)
		return nil, err
	}

	events.Emit(ctx, h.Events, events.TopicCartEvents, events.Event{
		Type: events.CartItemAdded, UserID: userID.String(), ProductID: p.ID, Size: size, Quantity: item.Quantity,
	})
	item.ProductImage = imageURL(ctx, h.Images, item.ProductID, item.ProductImage)
	return item, nil
}

func (h *CartService) UpdateQuantity(ctx context.Context, userID, cartID uuid.UUID, quantity int) (*models.CartItem, bool, error) {
	item, deleted, err := h.Repo.UpdateCartQuantity(ctx, userID, cartID, quantity)
	if err != nil {
		return nil, false, notFound(err, "cart item")
	}

	ev := events.Event{Type: events.CartItemUpdated, UserID: userID.String(), Quantity: quantity}
	if deleted {
		ev.Type = events.CartItemRemoved
		ev.Quantity = 0
	} else {
		ev.ProductID, ev.Size = item.ProductID, item.Size
	}
	events.Emit(ctx, h.Events, events.TopicCartEvents, ev)
	if item != nil {
		item.ProductImage = imageURL(ctx, h.Images, item.ProductID, item.ProductImage)
	}
	return item, deleted, nil
}

func (h *CartService) RemoveFromCart(ctx context.Context, userID, cartID uuid.UUID) error {
	if err := h.Repo.RemoveFromCart(ctx, userID, cartID); err != nil {
		return notFound(err, "cart item")
	}
	events.Emit(ctx, h.Events, events.TopicCartEvents, events.Event{Type: events.CartItemRemoved, UserID: userID.String()})
	return nil
}

func (h *CartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	if err := h.Repo.ClearCart(ctx, userID); err != nil {
		return err
	}
	events.Emit(ctx, h.Events, events.TopicCartEvents, events.Event{Type: events.CartCleared, UserID: userID.String()})
	return nil
}
