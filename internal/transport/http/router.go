package httpserver

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/thinkcraftlab/studio/internal/handlers"
	"github.com/thinkcraftlab/studio/internal/middleware/auth"
	"github.com/thinkcraftlab/studio/internal/middleware/csrf"
	loggingmw "github.com/thinkcraftlab/studio/internal/middleware/logging"
)

type Deps struct {
	AuthHandler     *handlers.AuthHandler
	CartHandler     *handlers.CartHandler
	WishlistHandler *handlers.WishlistHandler
	ProductHandler  *handlers.ProductHandler
	AuthMW          *auth.AutoRefreshMiddleware

	// Ready backs /health/ready. Nil means always ready.
	Ready func(ctx context.Context) error

	// CSRF enables double-submit protection for cookie sessions when set.
	CSRF *csrf.Config
}

// New builds the echo instance with the shared middleware chain and all routes.
func New(base *slog.Logger, d *Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handlers.NewValidator()

	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(loggingmw.RequestLogger(base))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization, "X-CSRF-Token"},
		AllowCredentials: false,
	}))
	if d.CSRF != nil {
		cfg := *d.CSRF
		cfg.SkipPaths = append(cfg.SkipPaths,
			"/health/live",
			"/health/ready",
			"/api/v1/auth/signup",
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
		)
		e.Use(csrf.Middleware(cfg))
	}

	Register(e, d)
	return e
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready == nil {
			return c.NoContent(http.StatusOK)
		}
		ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
		defer cancel()
		if err := d.Ready(ctx); err != nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "unavailable"})
		}
		return c.NoContent(http.StatusOK)
	})

	v1 := e.Group("/api/v1")

	authGroup := v1.Group("/auth")
	authGroup.POST("/signup", d.AuthHandler.Signup)
	authGroup.POST("/login", d.AuthHandler.Login)
	authGroup.POST("/refresh", d.AuthHandler.Refresh)
	authGroup.POST("/logout", d.AuthHandler.LogOut)
	authGroup.GET("/me", d.AuthHandler.Me, d.AuthMW.RequireAuth)

	products := v1.Group("/products")
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/search", d.ProductHandler.SearchProducts)
	products.GET("/options", d.ProductHandler.GetOptions)
	products.GET("/:id", d.ProductHandler.GetProduct)

	cart := v1.Group("/cart", d.AuthMW.RequireAuth)
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("", d.CartHandler.AddToCart)
	cart.DELETE("", d.CartHandler.ClearCart)
	cart.PATCH("/:id", d.CartHandler.UpdateQuantity)
	cart.DELETE("/:id", d.CartHandler.RemoveFromCart)

	wishlist := v1.Group("/wishlist", d.AuthMW.RequireAuth)
	wishlist.GET("", d.WishlistHandler.GetWishlist)
	wishlist.POST("", d.WishlistHandler.AddToWishlist)
	wishlist.DELETE("/:id", d.WishlistHandler.RemoveFromWishlist)
	wishlist.POST("/:id/move-to-cart", d.WishlistHandler.MoveToCart)
}
