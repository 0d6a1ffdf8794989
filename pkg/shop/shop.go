// Package shop holds the client-side cart and wishlist. Every mutation is
// written through to a Storage so the state survives restarts.
package shop

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/thinkcraftlab/studio/internal/logging"
	"github.com/thinkcraftlab/studio/pkg/money"
)

const (
	CartKey     = "cart"
	WishlistKey = "wishlist"

	DefaultSize = "Medium"
)

// Sizes lists the print sizes the studio accepts.
var Sizes = []string{"Small", "Medium", "Large", "X-Large"}

var ErrInvalidSize = errors.New("invalid size")

func ValidSize(size string) bool {
	return slices.Contains(Sizes, size)
}

type Product struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Price       string `json:"price"`
	Image       string `json:"image"`
	Description string `json:"desc"`
}

type CartLine struct {
	Product
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

func (l CartLine) UnitPrice() string { return l.Price }

func (l CartLine) Units() int { return l.Quantity }

type Store struct {
	mu       sync.RWMutex
	storage  Storage
	cart     []CartLine
	wishlist []Product
}

// Open rehydrates the cart and wishlist from st. Missing, unreadable or
// malformed entries leave that collection empty.
func Open(ctx context.Context, st Storage) *Store {
	s := &Store{storage: st}
	s.cart = load[CartLine](ctx, st, CartKey)
	s.wishlist = load[Product](ctx, st, WishlistKey)
	return s
}

func load[T any](ctx context.Context, st Storage, key string) []T {
	l := logging.FromContext(ctx).With("store", "shop", "key", key)

	raw, err := st.Get(ctx, key)
	if err != nil {
		l.Warn("shop_state_unreadable", "error", err)
		return nil
	}
	if len(raw) == 0 {
		return nil
	}

	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		l.Warn("shop_state_malformed", "error", err)
		return nil
	}
	return out
}

// AddToCart bumps the quantity of the (product, size) line or appends a new
// line with quantity 1.
func (s *Store) AddToCart(ctx context.Context, p Product, size string) error {
	if size == "" {
		size = DefaultSize
	}
	if !ValidSize(size) {
		return fmt.Errorf("%w: %q", ErrInvalidSize, size)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.addLocked(p, size)
	return s.saveCartLocked(ctx)
}

func (s *Store) addLocked(p Product, size string) {
	for i := range s.cart {
		if s.cart[i].ID == p.ID && s.cart[i].Size == size {
			s.cart[i].Quantity++
			return
		}
	}
	s.cart = append(s.cart, CartLine{Product: p, Size: size, Quantity: 1})
}

// RemoveFromCart drops every line of the product regardless of size.
func (s *Store) RemoveFromCart(ctx context.Context, productID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.removeLocked(productID)
	return s.saveCartLocked(ctx)
}

// RemoveLine drops only the line matching both product and size.
func (s *Store) RemoveLine(ctx context.Context, productID int, size string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart = slices.DeleteFunc(s.cart, func(l CartLine) bool {
		return l.ID == productID && l.Size == size
	})
	return s.saveCartLocked(ctx)
}

func (s *Store) removeLocked(productID int) {
	s.cart = slices.DeleteFunc(s.cart, func(l CartLine) bool { return l.ID == productID })
}

// UpdateCartQuantity sets the quantity on every line of the product. A
// quantity of zero or less removes them.
func (s *Store) UpdateCartQuantity(ctx context.Context, productID, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.removeLocked(productID)
		return s.saveCartLocked(ctx)
	}
	for i := range s.cart {
		if s.cart[i].ID == productID {
			s.cart[i].Quantity = quantity
		}
	}
	return s.saveCartLocked(ctx)
}

func (s *Store) ClearCart(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart = nil
	return s.saveCartLocked(ctx)
}

// AddToWishlist reports whether p was added. A product already on the
// wishlist is left as is.
func (s *Store) AddToWishlist(ctx context.Context, p Product) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inWishlistLocked(p.ID) {
		return false, nil
	}
	s.wishlist = append(s.wishlist, p)
	return true, s.saveWishlistLocked(ctx)
}

func (s *Store) RemoveFromWishlist(ctx context.Context, productID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.wishlist = slices.DeleteFunc(s.wishlist, func(p Product) bool { return p.ID == productID })
	return s.saveWishlistLocked(ctx)
}

// MoveToCart adds the wishlisted product to the cart in the default size and
// takes it off the wishlist. It reports false if the product was not
// wishlisted.
func (s *Store) MoveToCart(ctx context.Context, productID int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.wishlist, func(p Product) bool { return p.ID == productID })
	if idx < 0 {
		return false, nil
	}

	s.addLocked(s.wishlist[idx], DefaultSize)
	s.wishlist = slices.Delete(s.wishlist, idx, idx+1)

	if err := s.saveCartLocked(ctx); err != nil {
		return false, err
	}
	return true, s.saveWishlistLocked(ctx)
}

func (s *Store) IsInWishlist(productID int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inWishlistLocked(productID)
}

func (s *Store) inWishlistLocked(productID int) bool {
	return slices.ContainsFunc(s.wishlist, func(p Product) bool { return p.ID == productID })
}

func (s *Store) IsInCart(productID int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.ContainsFunc(s.cart, func(l CartLine) bool { return l.ID == productID })
}

// CartCount is the number of units in the cart, as shown on the nav badge.
func (s *Store) CartCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, l := range s.cart {
		n += l.Quantity
	}
	return n
}

func (s *Store) CartTotal() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return money.Total(s.cart)
}

func (s *Store) Cart() []CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.cart)
}

func (s *Store) Wishlist() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.wishlist)
}

func (s *Store) saveCartLocked(ctx context.Context) error {
	return save(ctx, s.storage, CartKey, s.cart)
}

func (s *Store) saveWishlistLocked(ctx context.Context) error {
	return save(ctx, s.storage, WishlistKey, s.wishlist)
}

func save[T any](ctx context.Context, st Storage, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return st.Set(ctx, key, raw)
}
