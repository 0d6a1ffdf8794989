package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/thinkcraftlab/studio/internal/jwthelp"
	"github.com/thinkcraftlab/studio/internal/logging"
	"github.com/thinkcraftlab/studio/internal/models"
	"github.com/thinkcraftlab/studio/internal/service"
)

type AuthHandler struct {
	Svc          *service.AuthService
	CookieSecure bool
}

type signupRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type SessionResponse struct {
	User             *models.User `json:"user"`
	AccessToken      string       `json:"access_token"`
	RefreshToken     string       `json:"refresh_token"`
	AccessExpiresAt  time.Time    `json:"access_expires_at"`
	RefreshExpiresAt time.Time    `json:"refresh_expires_at"`
}

func (h *AuthHandler) Signup(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_signup")

	var req signupRequest
	if err := bindAndValidate(c, l, "signup_error", &req); err != nil {
		return err
	}

	user, err := h.Svc.Signup(ctx, service.SignupInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return fail(l, "signup_error", err)
	}

	l.Info("signup_successful", "user_id", user.ID.String())
	return c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req loginRequest
	if err := bindAndValidate(c, l, "login_error", &req); err != nil {
		return err
	}

	res, err := h.Svc.Login(ctx, req.Username, req.Password)
	if err != nil {
		return fail(l, "login_failed", err)
	}

	h.setSessionCookies(c, res)
	l.Info("login_successful", "user_id", res.User.ID.String())

	return c.JSON(http.StatusOK, sessionResponse(res))
}

func (h *AuthHandler) Refresh(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_refresh")

	raw := refreshTokenFrom(c)
	if raw == "" {
		l.Warn("refresh_failed", "status", 401, "reason", "missing refresh token")
		return echo.NewHTTPError(http.StatusUnauthorized, "missing refresh token")
	}

	res, err := h.Svc.Refresh(ctx, raw)
	if err != nil {
		h.clearSessionCookies(c)
		return fail(l, "refresh_failed", err)
	}

	h.setSessionCookies(c, res)
	l.Info("refresh_successful", "user_id", res.User.ID.String())

	return c.JSON(http.StatusOK, sessionResponse(res))
}

func (h *AuthHandler) LogOut(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_logout")

	err := h.Svc.LogOut(ctx, refreshTokenFrom(c))
	h.clearSessionCookies(c)
	if err != nil {
		l.Error("logout_failed", "status", 500, "reason", "cannot revoke refresh token", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	l.Info("successful_logout")
	return c.JSON(http.StatusOK, echo.Map{
		"message": "logged out",
	})
}

func (h *AuthHandler) Me(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_me")

	userID, err := currentUser(c, l, "me_error")
	if err != nil {
		return err
	}

	user, err := h.Svc.Me(ctx, userID)
	if err != nil {
		return fail(l, "me_error", err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) setSessionCookies(c echo.Context, res *service.LoginResult) {
	c.SetCookie(jwthelp.CreateCookie(jwthelp.AccessCookie, res.AccessToken, "/", res.AccessExp, h.CookieSecure))
	c.SetCookie(jwthelp.CreateCookie(jwthelp.RefreshCookie, res.RefreshToken, "/", res.RefreshExp, h.CookieSecure))
}

func (h *AuthHandler) clearSessionCookies(c echo.Context) {
	c.SetCookie(jwthelp.DeleteCookie(jwthelp.RefreshCookie, "/", h.CookieSecure))
	c.SetCookie(jwthelp.DeleteCookie(jwthelp.AccessCookie, "/", h.CookieSecure))
}

// refreshTokenFrom prefers the refresh cookie and falls back to a JSON body.
func refreshTokenFrom(c echo.Context) string {
	if ck, err := c.Cookie(jwthelp.RefreshCookie); err == nil && ck.Value != "" {
		return ck.Value
	}
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return ""
	}
	return req.RefreshToken
}

func sessionResponse(res *service.LoginResult) SessionResponse {
	return SessionResponse{
		User:             res.User,
		AccessToken:      res.AccessToken,
		RefreshToken:     res.RefreshToken,
		AccessExpiresAt:  res.AccessExp,
		RefreshExpiresAt: res.RefreshExp,
	}
}
