package authclient

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thinkcraftlab/studio/internal/catalog"
	"github.com/thinkcraftlab/studio/internal/db"
	"github.com/thinkcraftlab/studio/internal/events"
	"github.com/thinkcraftlab/studio/internal/handlers"
	"github.com/thinkcraftlab/studio/internal/logging"
	"github.com/thinkcraftlab/studio/internal/middleware/auth"
	"github.com/thinkcraftlab/studio/internal/middleware/csrf"
	"github.com/thinkcraftlab/studio/internal/migrations"
	"github.com/thinkcraftlab/studio/internal/repo"
	"github.com/thinkcraftlab/studio/internal/service"
	httpserver "github.com/thinkcraftlab/studio/internal/transport/http"
	"github.com/thinkcraftlab/studio/pkg/shop"
)

func newBackend(t *testing.T) string {
	t.Helper()
	return newBackendWithCSRF(t, nil)
}

func newBackendWithCSRF(t *testing.T, csrfCfg *csrf.Config) string {
	t.Helper()

	gdb, err := db.OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	require.NoError(t, migrations.AutoMigrate(gdb))
	t.Cleanup(func() { _ = db.Close(gdb) })

	r := &repo.GormRepo{DB: gdb}
	secret := []byte("access-secret")
	authSvc := &service.AuthService{
		Repo:          r,
		JWTSecret:     secret,
		RefreshSecret: []byte("refresh-secret"),
		AccessTTL:     time.Minute,
		RefreshTTL:    time.Hour,
		Events:        events.Nop{},
	}

	e := httpserver.New(logging.NewWithWriter(io.Discard, "error"), &httpserver.Deps{
		AuthHandler:     &handlers.AuthHandler{Svc: authSvc},
		CartHandler:     &handlers.CartHandler{Svc: &service.CartService{Repo: r, Events: events.Nop{}}},
		WishlistHandler: &handlers.WishlistHandler{Svc: &service.WishlistService{Repo: r, Events: events.Nop{}}},
		ProductHandler:  &handlers.ProductHandler{Svc: &service.CatalogService{Catalog: &catalog.Catalog{}}},
		AuthMW:          auth.NewAutoRefreshMiddleware(secret, authSvc, false),
		CSRF:            csrfCfg,
	})

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv.URL + "/api/v1"
}

func TestSession_SignupLoginLogout(t *testing.T) {
	ctx := context.Background()
	base := newBackend(t)
	st := shop.NewMemoryStorage()

	s := OpenSession(ctx, NewClient(base), st)
	assert.False(t, s.IsAuthenticated())
	_, err := s.RequireUser()
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = s.Signup(ctx, "maker", "maker@example.com", "12345")
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	u, err := s.Signup(ctx, "maker", "maker@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "maker", u.Username)
	assert.True(t, s.IsAuthenticated())

	_, err = OpenSession(ctx, NewClient(base), shop.NewMemoryStorage()).
		Signup(ctx, "maker", "other@example.com", "secret1")
	assert.ErrorIs(t, err, ErrAlreadyExists)

	me, err := s.Client().Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "maker@example.com", me.Email)

	oldRefresh := s.Client().Tokens().RefreshToken
	require.NoError(t, s.Logout(ctx))
	assert.False(t, s.IsAuthenticated())

	raw, err := st.Get(ctx, SessionKey)
	require.NoError(t, err)
	assert.Nil(t, raw)

	c := NewClient(base)
	c.SetTokens(Tokens{RefreshToken: oldRefresh})
	assert.ErrorIs(t, c.Refresh(ctx), ErrInvalidCredentials)
}

func TestSession_LogoutWithCSRFEnabled(t *testing.T) {
	ctx := context.Background()
	cfg := csrf.DefaultConfig()
	base := newBackendWithCSRF(t, &cfg)

	s := OpenSession(ctx, NewClient(base), shop.NewMemoryStorage())
	_, err := s.Signup(ctx, "csrf_maker", "csrf@example.com", "secret1")
	require.NoError(t, err)

	oldRefresh := s.Client().Tokens().RefreshToken
	require.NotEmpty(t, oldRefresh)
	require.NoError(t, s.Logout(ctx))

	c := NewClient(base)
	c.SetTokens(Tokens{RefreshToken: oldRefresh})
	assert.ErrorIs(t, c.Refresh(ctx), ErrInvalidCredentials)
}

type failingSetStorage struct {
	*shop.MemoryStorage
}

func (failingSetStorage) Set(ctx context.Context, key string, value []byte) error {
	return errors.New("disk full")
}

func TestSession_LoginSaveFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	base := newBackend(t)

	_, err := OpenSession(ctx, NewClient(base), shop.NewMemoryStorage()).Signup(ctx, "maker", "maker@example.com", "secret1")
	require.NoError(t, err)

	s := OpenSession(ctx, NewClient(base), failingSetStorage{shop.NewMemoryStorage()})
	_, err = s.Login(ctx, "maker", "secret1")
	require.Error(t, err)

	assert.False(t, s.IsAuthenticated())
	assert.Equal(t, Tokens{}, s.Client().Tokens())
	_, err = s.RequireUser()
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestSession_LoginWrongPassword(t *testing.T) {
	ctx := context.Background()
	base := newBackend(t)

	s := OpenSession(ctx, NewClient(base), shop.NewMemoryStorage())
	_, err := s.Signup(ctx, "maker", "maker@example.com", "secret1")
	require.NoError(t, err)

	other := OpenSession(ctx, NewClient(base), shop.NewMemoryStorage())
	_, err = other.Login(ctx, "maker", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.False(t, other.IsAuthenticated())
}

func TestSession_RestoresAndRotates(t *testing.T) {
	ctx := context.Background()
	base := newBackend(t)
	st := shop.NewMemoryStorage()

	s := OpenSession(ctx, NewClient(base), st)
	_, err := s.Signup(ctx, "maker", "maker@example.com", "secret1")
	require.NoError(t, err)
	saved := s.Client().Tokens()

	restored := OpenSession(ctx, NewClient(base), st)
	require.True(t, restored.IsAuthenticated())
	assert.Equal(t, "maker", restored.User().Username)

	// a bad access token forces a rotation through the saved refresh token
	tk := restored.Client().Tokens()
	tk.AccessToken = "garbage"
	restored.Client().SetTokens(tk)

	me, err := restored.Client().Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "maker", me.Username)
	assert.NotEqual(t, saved.RefreshToken, restored.Client().Tokens().RefreshToken)

	again := OpenSession(ctx, NewClient(base), st)
	assert.Equal(t, restored.Client().Tokens().RefreshToken, again.Client().Tokens().RefreshToken)
}

func TestOpenSession_IgnoresMalformed(t *testing.T) {
	ctx := context.Background()
	st := shop.NewMemoryStorage()
	require.NoError(t, st.Set(ctx, SessionKey, []byte(`{"user":`)))

	s := OpenSession(ctx, NewClient("http://127.0.0.1:1"), st)
	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, s.Client().Tokens().AccessToken)
}

func TestClient_ShopCalls(t *testing.T) {
	ctx := context.Background()
	base := newBackend(t)

	s := OpenSession(ctx, NewClient(base), shop.NewMemoryStorage())
	_, err := s.Signup(ctx, "buyer", "buyer@example.com", "secret1")
	require.NoError(t, err)
	c := s.Client()

	page, err := c.Products(ctx, "Design Services", 1, 5)
	require.NoError(t, err)
	assert.Len(t, page.Data, 5)
	assert.Equal(t, int64(18), page.Meta.Total)
	assert.True(t, page.Meta.HasNext)

	p, err := c.Product(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "179.00", p.Price)
	assert.Equal(t, 1, p.ShopProduct().ID)

	_, err = c.Product(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)

	found, err := c.SearchProducts(ctx, "gear", 1, 10)
	require.NoError(t, err)
	assert.NotEmpty(t, found.Data)

	line, err := c.AddToCart(ctx, 1, "Large", 2)
	require.NoError(t, err)

	w, err := c.AddToWishlist(ctx, 5)
	require.NoError(t, err)
	moved, err := c.MoveToCart(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, "Medium", moved.Size)

	wl, err := c.GetWishlist(ctx)
	require.NoError(t, err)
	assert.Empty(t, wl)

	cart, err := c.GetCart(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, cart.Count)
	assert.Equal(t, "447.00", cart.Total)

	updated, err := c.UpdateCartQuantity(ctx, line.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.Quantity)

	gone, err := c.UpdateCartQuantity(ctx, line.ID, 0)
	require.NoError(t, err)
	assert.Nil(t, gone)

	require.NoError(t, c.RemoveFromCart(ctx, moved.ID))
	assert.ErrorIs(t, c.RemoveFromCart(ctx, moved.ID), ErrNotFound)

	_, err = c.AddToWishlist(ctx, 2)
	require.NoError(t, err)
	wl, err = c.GetWishlist(ctx)
	require.NoError(t, err)
	require.Len(t, wl, 1)
	require.NoError(t, c.RemoveFromWishlist(ctx, wl[0].ID))

	require.NoError(t, c.ClearCart(ctx))
}
