package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
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
)

var accessSecret = []byte("access-secret")

func newTestDeps(t *testing.T) *Deps {
	t.Helper()

	gdb, err := db.OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	require.NoError(t, migrations.AutoMigrate(gdb))
	t.Cleanup(func() { _ = db.Close(gdb) })

	r := &repo.GormRepo{DB: gdb}
	authSvc := &service.AuthService{
		Repo:          r,
		JWTSecret:     accessSecret,
		RefreshSecret: []byte("refresh-secret"),
		AccessTTL:     time.Minute,
		RefreshTTL:    time.Hour,
		Events:        events.Nop{},
	}

	return &Deps{
		AuthHandler:     &handlers.AuthHandler{Svc: authSvc},
		CartHandler:     &handlers.CartHandler{Svc: &service.CartService{Repo: r, Events: events.Nop{}}},
		WishlistHandler: &handlers.WishlistHandler{Svc: &service.WishlistService{Repo: r, Events: events.Nop{}}},
		ProductHandler:  &handlers.ProductHandler{Svc: &service.CatalogService{Catalog: &catalog.Catalog{}}},
		AuthMW:          auth.NewAutoRefreshMiddleware(accessSecret, authSvc, false),
		Ready:           func(ctx context.Context) error { return db.Ping(ctx, gdb) },
	}
}

func newTestServer(t *testing.T, d *Deps) *echo.Echo {
	t.Helper()
	return New(logging.NewWithWriter(io.Discard, "error"), d)
}

type call struct {
	method  string
	path    string
	body    any
	bearer  string
	cookies []*http.Cookie
	header  map[string]string
}

func do(t *testing.T, e *echo.Echo, c call) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if c.body != nil {
		b, err := json.Marshal(c.body)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	}
	req := httptest.NewRequest(c.method, c.path, body)
	if c.body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if c.bearer != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+c.bearer)
	}
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	for k, v := range c.header {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func signupAndLogin(t *testing.T, e *echo.Echo, username string) (handlers.SessionResponse, []*http.Cookie) {
	t.Helper()

	rec := do(t, e, call{method: http.MethodPost, path: "/api/v1/auth/signup", body: map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "secret1",
	}})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, e, call{method: http.MethodPost, path: "/api/v1/auth/login", body: map[string]string{
		"username": username,
		"password": "secret1",
	}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var session handlers.SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))
	return session, rec.Result().Cookies()
}

func cookieNamed(cookies []*http.Cookie, name string) *http.Cookie {
	for _, ck := range cookies {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}

func TestHealth(t *testing.T) {
	d := newTestDeps(t)
	e := newTestServer(t, d)

	assert.Equal(t, http.StatusOK, do(t, e, call{method: http.MethodGet, path: "/health/live"}).Code)
	assert.Equal(t, http.StatusOK, do(t, e, call{method: http.MethodGet, path: "/health/ready"}).Code)

	d.Ready = func(ctx context.Context) error { return errors.New("db down") }
	assert.Equal(t, http.StatusServiceUnavailable, do(t, e, call{method: http.MethodGet, path: "/health/ready"}).Code)
}

func TestShoppingFlow_Bearer(t *testing.T) {
	e := newTestServer(t, newTestDeps(t))
	session, _ := signupAndLogin(t, e, "maker")

	rec := do(t, e, call{method: http.MethodGet, path: "/api/v1/cart"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, e, call{method: http.MethodPost, path: "/api/v1/cart", bearer: session.AccessToken,
		body: map[string]any{"product_id": 2, "size": "Small", "quantity": 2}})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, e, call{method: http.MethodPost, path: "/api/v1/wishlist", bearer: session.AccessToken,
		body: map[string]any{"product_id": 5}})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var wish struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &wish))

	rec = do(t, e, call{method: http.MethodPost, path: "/api/v1/wishlist/" + wish.ID + "/move-to-cart", bearer: session.AccessToken})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, e, call{method: http.MethodGet, path: "/api/v1/cart/", bearer: session.AccessToken})
	require.Equal(t, http.StatusOK, rec.Code)

	var view service.CartView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Len(t, view.Items, 2)
	assert.Equal(t, 3, view.Count)
	// 2 x 99.00 + 1 x 89.00
	assert.Equal(t, "287.00", view.Total)

	rec = do(t, e, call{method: http.MethodDelete, path: "/api/v1/cart", bearer: session.AccessToken})
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, e, call{method: http.MethodGet, path: "/api/v1/auth/me", bearer: session.AccessToken})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"maker"`)
}

func TestCookieSession_RotatesWhenAccessMissing(t *testing.T) {
	e := newTestServer(t, newTestDeps(t))
	_, cookies := signupAndLogin(t, e, "cookie_user")

	refresh := cookieNamed(cookies, "refreshToken")
	require.NotNil(t, refresh)

	rec := do(t, e, call{method: http.MethodGet, path: "/api/v1/auth/me", cookies: []*http.Cookie{refresh}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rotated := rec.Result().Cookies()
	require.NotNil(t, cookieNamed(rotated, "accessToken"))
	newRefresh := cookieNamed(rotated, "refreshToken")
	require.NotNil(t, newRefresh)
	assert.NotEqual(t, refresh.Value, newRefresh.Value)

	// the spent refresh cookie no longer opens a session
	rec = do(t, e, call{method: http.MethodGet, path: "/api/v1/auth/me", cookies: []*http.Cookie{refresh}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProducts(t *testing.T) {
	e := newTestServer(t, newTestDeps(t))

	rec := do(t, e, call{method: http.MethodGet, path: "/api/v1/products?category=Prototyping&size=100"})
	require.Equal(t, http.StatusOK, rec.Code)

	var page struct {
		Data []catalog.Product `json:"data"`
		Meta map[string]any    `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Len(t, page.Data, 14)
	for _, p := range page.Data {
		assert.Equal(t, catalog.CategoryPrototyping, p.Category)
	}

	rec = do(t, e, call{method: http.MethodGet, path: "/api/v1/products/search?q=drone"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.NotEmpty(t, page.Data)
	assert.Contains(t, page.Data[0].Description, "Drone")

	rec = do(t, e, call{method: http.MethodGet, path: "/api/v1/products/options"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"default_size":"Medium"`)

	assert.Equal(t, http.StatusNotFound, do(t, e, call{method: http.MethodGet, path: "/api/v1/products/77"}).Code)
}

func TestCSRF_CookieSessionNeedsToken(t *testing.T) {
	d := newTestDeps(t)
	cfg := csrf.DefaultConfig()
	cfg.EnforceSameOrigin = false
	d.CSRF = &cfg
	e := newTestServer(t, d)

	session, cookies := signupAndLogin(t, e, "csrf_user")
	access := cookieNamed(cookies, "accessToken")
	require.NotNil(t, access)

	body := map[string]any{"product_id": 1}

	rec := do(t, e, call{method: http.MethodPost, path: "/api/v1/cart", body: body, cookies: []*http.Cookie{access}})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, e, call{method: http.MethodPost, path: "/api/v1/cart", body: body, cookies: []*http.Cookie{
		access,
		{Name: "XSRF-TOKEN", Value: "token-value"},
	}, header: map[string]string{"X-CSRF-Token": "token-value"}})
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, e, call{method: http.MethodPost, path: "/api/v1/cart", body: body, bearer: session.AccessToken})
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestCSRF_BearerLogoutRevokes(t *testing.T) {
	d := newTestDeps(t)
	cfg := csrf.DefaultConfig()
	d.CSRF = &cfg
	e := newTestServer(t, d)

	session, cookies := signupAndLogin(t, e, "csrf_logout")
	refresh := cookieNamed(cookies, "refreshToken")
	require.NotNil(t, refresh)

	body := map[string]string{"refresh_token": refresh.Value}

	rec := do(t, e, call{method: http.MethodPost, path: "/api/v1/auth/logout", body: body})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, e, call{method: http.MethodPost, path: "/api/v1/auth/logout", body: body, bearer: session.AccessToken})
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, e, call{method: http.MethodPost, path: "/api/v1/auth/refresh", body: body})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
