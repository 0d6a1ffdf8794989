package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/thinkcraftlab/studio/internal/logging"
	"github.com/thinkcraftlab/studio/internal/service"
)

type WishlistHandler struct {
	Svc *service.WishlistService
}

type addToWishlistRequest struct {
	ProductID int `json:"product_id" validate:"required,gt=0"`
}

func (h *WishlistHandler) GetWishlist(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.get")

	userID, err := currentUser(c, l, "get_wishlist_error")
	if err != nil {
		return err
	}

	items, err := h.Svc.GetWishlist(ctx, userID)
	if err != nil {
		return fail(l, "get_wishlist_error", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *WishlistHandler) AddToWishlist(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.add")

	userID, err := currentUser(c, l, "add_to_wishlist_error")
	if err != nil {
		return err
	}

	var req addToWishlistRequest
	if err := bindAndValidate(c, l, "add_to_wishlist_error", &req); err != nil {
		return err
	}

	item, created, err := h.Svc.AddToWishlist(ctx, userID, req.ProductID)
	if err != nil {
		return fail(l, "add_to_wishlist_error", err)
	}

	if !created {
		return c.JSON(http.StatusOK, item)
	}
	return c.JSON(http.StatusCreated, item)
}

func (h *WishlistHandler) RemoveFromWishlist(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.remove")

	userID, err := currentUser(c, l, "remove_from_wishlist_error")
	if err != nil {
		return err
	}
	id, err := uuidParam(c, l, "remove_from_wishlist_error", "id")
	if err != nil {
		return err
	}

	if err := h.Svc.RemoveFromWishlist(ctx, userID, id); err != nil {
		return fail(l, "remove_from_wishlist_error", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *WishlistHandler) MoveToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.move_to_cart")

	userID, err := currentUser(c, l, "move_to_cart_error")
	if err != nil {
		return err
	}
	id, err := uuidParam(c, l, "move_to_cart_error", "id")
	if err != nil {
		return err
	}

	item, err := h.Svc.MoveToCart(ctx, userID, id)
	if err != nil {
		return fail(l, "move_to_cart_error", err)
	}

	l.Info("wishlist item moved to cart", "product_id", item.ProductID)
	return c.JSON(http.StatusOK, item)
}
