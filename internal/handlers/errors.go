package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/thinkcraftlab/studio/internal/middleware/auth"
	"github.com/thinkcraftlab/studio/internal/service"
)

// fail maps a service error onto an HTTP error and logs it under event.
func fail(l *slog.Logger, event string, err error) error {
	var code int
	msg := err.Error()
	switch {
	case errors.Is(err, service.ErrValidation):
		code = http.StatusBadRequest
	case errors.Is(err, service.ErrConflict):
		code = http.StatusConflict
	case errors.Is(err, service.ErrInvalidCredentials):
		code = http.StatusUnauthorized
		msg = "invalid username or password"
	case errors.Is(err, service.ErrInvalidRefreshToken):
		code = http.StatusUnauthorized
		msg = "invalid refresh token"
	case errors.Is(err, service.ErrNotFound):
		code = http.StatusNotFound
	default:
		l.Error(event, "status", http.StatusInternalServerError, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	l.Warn(event, "status", code, "error", err)
	return echo.NewHTTPError(code, msg)
}

func currentUser(c echo.Context, l *slog.Logger, event string) (uuid.UUID, error) {
	id, err := auth.UserID(c)
	if err != nil {
		l.Warn(event, "status", http.StatusUnauthorized, "error", err)
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return id, nil
}

func uuidParam(c echo.Context, l *slog.Logger, event, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		l.Warn(event, "status", http.StatusBadRequest, "reason", name+" is not a uuid", "error", err)
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, name+" must be a uuid")
	}
	return id, nil
}

func bindAndValidate(c echo.Context, l *slog.Logger, event string, req any) error {
	if err := c.Bind(req); err != nil {
		l.Warn(event, "status", http.StatusBadRequest, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(req); err != nil {
		l.Warn(event, "status", http.StatusBadRequest, "reason", "validation", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
