package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/thinkcraftlab/studio/internal/logging"
	"github.com/thinkcraftlab/studio/internal/service"
)

type CartHandler struct {
	Svc *service.CartService
}

type addToCartRequest struct {
	ProductID int    `json:"product_id" validate:"required,gt=0"`
	Size      string `json:"size"       validate:"omitempty,oneof=Small Medium Large X-Large"`
	Quantity  int    `json:"quantity"   validate:"gte=0"`
}

type updateCartRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

func (h *CartHandler) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	userID, err := currentUser(c, l, "get_cart_error")
	if err != nil {
		return err
	}

	view, err := h.Svc.GetCart(ctx, userID)
	if err != nil {
		return fail(l, "get_cart_error", err)
	}

	return c.JSON(http.StatusOK, view)
}

func (h *CartHandler) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	userID, err := currentUser(c, l, "add_to_cart_error")
	if err != nil {
		return err
	}

	var req addToCartRequest
	if err := bindAndValidate(c, l, "add_to_cart_error", &req); err != nil {
		return err
	}

	item, err := h.Svc.AddToCart(ctx, userID, req.ProductID, req.Size, req.Quantity)
	if err != nil {
		return fail(l, "add_to_cart_error", err)
	}

	l.Info("item added to cart", "product_id", item.ProductID, "quantity", item.Quantity)
	return c.JSON(http.StatusCreated, item)
}

func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update")

	userID, err := currentUser(c, l, "update_cart_error")
	if err != nil {
		return err
	}
	cartID, err := uuidParam(c, l, "update_cart_error", "id")
	if err != nil {
		return err
	}

	var req updateCartRequest
	if err := bindAndValidate(c, l, "update_cart_error", &req); err != nil {
		return err
	}

	item, deleted, err := h.Svc.UpdateQuantity(ctx, userID, cartID, *req.Quantity)
	if err != nil {
		return fail(l, "update_cart_error", err)
	}

	if deleted {
		return c.JSON(http.StatusOK, echo.Map{"deleted": true})
	}
	return c.JSON(http.StatusOK, item)
}

func (h *CartHandler) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove")

	userID, err := currentUser(c, l, "remove_from_cart_error")
	if err != nil {
		return err
	}
	cartID, err := uuidParam(c, l, "remove_from_cart_error", "id")
	if err != nil {
		return err
	}

	if err := h.Svc.RemoveFromCart(ctx, userID, cartID); err != nil {
		return fail(l, "remove_from_cart_error", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.clear")

	userID, err := currentUser(c, l, "clear_cart_error")
	if err != nil {
		return err
	}

	if err := h.Svc.ClearCart(ctx, userID); err != nil {
		return fail(l, "clear_cart_error", err)
	}

	l.Info("cart successfully cleared")
	return c.NoContent(http.StatusNoContent)
}
