package authclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/thinkcraftlab/studio/pkg/shop"
)

type Product struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Price       string `json:"price"`
	Image       string `json:"image"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// ShopProduct converts a catalog entry for the local cart.
func (p Product) ShopProduct() shop.Product {
	return shop.Product{ID: p.ID, Name: p.Name, Price: p.Price, Image: p.Image, Description: p.Description}
}

type PageMeta struct {
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
	HasPrev    bool  `json:"has_prev"`
	HasNext    bool  `json:"has_next"`
}

type ProductPage struct {
	Data []Product `json:"data"`
	Meta PageMeta  `json:"meta"`
}

type CartItem struct {
	ID                 string    `json:"id"`
	ProductID          int       `json:"product_id"`
	ProductName        string    `json:"product_name"`
	ProductPrice       string    `json:"product_price"`
	ProductImage       string    `json:"product_image"`
	ProductDescription string    `json:"product_description"`
	Size               string    `json:"size"`
	Quantity           int       `json:"quantity"`
	AddedAt            time.Time `json:"added_at"`
}

type Cart struct {
	Items []CartItem `json:"items"`
	Total string     `json:"total"`
	Count int        `json:"count"`
}

type WishlistItem struct {
	ID                 string    `json:"id"`
	ProductID          int       `json:"product_id"`
	ProductName        string    `json:"product_name"`
	ProductPrice       string    `json:"product_price"`
	ProductImage       string    `json:"product_image"`
	ProductDescription string    `json:"product_description"`
	AddedAt            time.Time `json:"added_at"`
}

func (c *Client) Products(ctx context.Context, category string, page, size int) (*ProductPage, error) {
	q := url.Values{}
	if category != "" {
		q.Set("category", category)
	}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if size > 0 {
		q.Set("size", strconv.Itoa(size))
	}

	var res ProductPage
	if err := c.do(ctx, http.MethodGet, withQuery("/products", q), nil, &res, false); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) SearchProducts(ctx context.Context, query string, page, size int) (*ProductPage, error) {
	q := url.Values{"q": {query}}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if size > 0 {
		q.Set("size", strconv.Itoa(size))
	}

	var res ProductPage
	if err := c.do(ctx, http.MethodGet, withQuery("/products/search", q), nil, &res, false); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Product(ctx context.Context, id int) (*Product, error) {
	var p Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, &p, false); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) GetCart(ctx context.Context) (*Cart, error) {
	var cart Cart
	if err := c.do(ctx, http.MethodGet, "/cart", nil, &cart, true); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *Client) AddToCart(ctx context.Context, productID int, size string, quantity int) (*CartItem, error) {
	var item CartItem
	err := c.do(ctx, http.MethodPost, "/cart", map[string]any{
		"product_id": productID,
		"size":       size,
		"quantity":   quantity,
	}, &item, true)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateCartQuantity returns nil when the server deleted the line.
func (c *Client) UpdateCartQuantity(ctx context.Context, cartID string, quantity int) (*CartItem, error) {
	var raw struct {
		CartItem
		Deleted bool `json:"deleted"`
	}
	if err := c.do(ctx, http.MethodPatch, "/cart/"+url.PathEscape(cartID), map[string]int{"quantity": quantity}, &raw, true); err != nil {
		return nil, err
	}
	if raw.Deleted {
		return nil, nil
	}
	return &raw.CartItem, nil
}

func (c *Client) RemoveFromCart(ctx context.Context, cartID string) error {
	return c.do(ctx, http.MethodDelete, "/cart/"+url.PathEscape(cartID), nil, nil, true)
}

func (c *Client) ClearCart(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/cart", nil, nil, true)
}

func (c *Client) GetWishlist(ctx context.Context) ([]WishlistItem, error) {
	var items []WishlistItem
	if err := c.do(ctx, http.MethodGet, "/wishlist", nil, &items, true); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) AddToWishlist(ctx context.Context, productID int) (*WishlistItem, error) {
	var item WishlistItem
	if err := c.do(ctx, http.MethodPost, "/wishlist", map[string]int{"product_id": productID}, &item, true); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) RemoveFromWishlist(ctx context.Context, wishlistID string) error {
	return c.do(ctx, http.MethodDelete, "/wishlist/"+url.PathEscape(wishlistID), nil, nil, true)
}

func (c *Client) MoveToCart(ctx context.Context, wishlistID string) (*CartItem, error) {
	var item CartItem
	if err := c.do(ctx, http.MethodPost, "/wishlist/"+url.PathEscape(wishlistID)+"/move-to-cart", nil, &item, true); err != nil {
		return nil, err
	}
	return &item, nil
}

func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}
