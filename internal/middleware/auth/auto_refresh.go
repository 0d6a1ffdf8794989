package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/thinkcraftlab/studio/internal/jwthelp"
	"github.com/thinkcraftlab/studio/internal/logging"
	"github.com/thinkcraftlab/studio/internal/service"
	"github.com/thinkcraftlab/studio/internal/tokens"
)

const (
	ctxUserID   = "user_id"
	ctxUsername = "username"
)

var ErrUnauthorized = errors.New("unauthorized")

type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (*service.LoginResult, error)
}

type AutoRefreshMiddleware struct {
	JWTSecret    []byte
	Refresher    Refresher
	CookieSecure bool
}

func NewAutoRefreshMiddleware(secret []byte, refresher Refresher, cookieSecure bool) *AutoRefreshMiddleware {
	return &AutoRefreshMiddleware{
		JWTSecret:    secret,
		Refresher:    refresher,
		CookieSecure: cookieSecure,
	}
}

// RequireAuth accepts an access token from the Authorization header or the
// access cookie. A cookie session whose access token is missing or expired
// is rotated through the refresh cookie and the new pair is set on the
// response.
func (m *AutoRefreshMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		l := logging.FromContext(c.Request().Context()).With("mw", "auth")

		if raw, ok := BearerToken(c.Request()); ok {
			claims, err := tokens.AccessClaimsFromToken(raw, m.JWTSecret)
			if err != nil {
				l.Warn("auth_failed", "status", 401, "reason", "invalid bearer token", "error", err)
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
			}
			setUserContext(c, claims)
			return next(c)
		}

		accessCookie, err := c.Cookie(jwthelp.AccessCookie)
		if err == nil && accessCookie.Value != "" {
			claims, err := tokens.AccessClaimsFromToken(accessCookie.Value, m.JWTSecret)
			if err == nil {
				setUserContext(c, claims)
				return next(c)
			}
			if !errors.Is(err, jwt.ErrTokenExpired) {
				m.clearAuthCookies(c)
				l.Warn("auth_failed", "status", 401, "reason", "invalid access token", "error", err)
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
			}
		}

		refreshCookie, rErr := c.Cookie(jwthelp.RefreshCookie)
		if rErr != nil || refreshCookie.Value == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
		}

		res, err := m.Refresher.Refresh(c.Request().Context(), refreshCookie.Value)
		if err != nil {
			m.clearAuthCookies(c)
			l.Warn("auth_failed", "status", 401, "reason", "refresh failed", "error", err)
			return echo.NewHTTPError(http.StatusUnauthorized, "refresh failed")
		}

		c.SetCookie(jwthelp.CreateCookie(jwthelp.AccessCookie, res.AccessToken, "/", res.AccessExp, m.CookieSecure))
		c.SetCookie(jwthelp.CreateCookie(jwthelp.RefreshCookie, res.RefreshToken, "/", res.RefreshExp, m.CookieSecure))

		newClaims, err := tokens.AccessClaimsFromToken(res.AccessToken, m.JWTSecret)
		if err != nil {
			m.clearAuthCookies(c)
			return echo.NewHTTPError(http.StatusUnauthorized, "new access token invalid")
		}
		l.Info("session_refreshed", "user_id", newClaims.Subject)

		setUserContext(c, newClaims)
		return next(c)
	}
}

func (m *AutoRefreshMiddleware) clearAuthCookies(c echo.Context) {
	c.SetCookie(jwthelp.DeleteCookie(jwthelp.AccessCookie, "/", m.CookieSecure))
	c.SetCookie(jwthelp.DeleteCookie(jwthelp.RefreshCookie, "/", m.CookieSecure))
}

func setUserContext(c echo.Context, claims *tokens.AccessClaims) {
	c.Set(ctxUserID, claims.Subject)
	c.Set(ctxUsername, claims.Username)
}

// BearerToken extracts the token from an "Authorization: Bearer" header.
func BearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get(echo.HeaderAuthorization)
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func UserID(c echo.Context) (uuid.UUID, error) {
	s, ok := c.Get(ctxUserID).(string)
	if !ok || s == "" {
		return uuid.Nil, ErrUnauthorized
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, ErrUnauthorized
	}
	return id, nil
}
