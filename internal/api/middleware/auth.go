package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cedrulion/murika-farm/internal/core/domain"
	"github.com/cedrulion/murika-farm/internal/core/ports"
	"github.com/cedrulion/murika-farm/internal/core/service"
)

// Context keys set by Auth for downstream handlers.
const (
	CtxUserID   = "user_id"
	CtxUsername = "username"
	CtxRole     = "role"
	CtxUser     = "current_user"
)

// ExtractBearerToken pulls the token out of an Authorization header value.
// The canonical form is "Bearer <token>"; a bare token is accepted as a
// deprecated compatibility input. All token parsing goes through here so the
// two forms never drift apart.
func ExtractBearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 {
		if !strings.EqualFold(parts[0], "bearer") {
			return "", false
		}
		return strings.TrimSpace(parts[1]), parts[1] != ""
	}
	return header, true
}

// Auth validates the bearer token, confirms the referenced user still
// exists, and injects the resolved identity into the request context. Any
// failure is a 401; expired and tampered tokens render the same message but
// are distinguished in logs by the wrapped sentinel.
func Auth(tokens *service.TokenManager, users ports.UserRepository, presence ports.PresenceStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			raw, ok := ExtractBearerToken(header)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := tokens.Validate(raw)
			if err != nil {
				// Same body for expired and tampered tokens; the
				// internal error keeps them apart in logs.
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token").SetInternal(err)
			}

			user, err := users.FindByID(c.Request().Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					return echo.NewHTTPError(http.StatusUnauthorized, "user no longer exists")
				}
				return err
			}

			c.Set(CtxUserID, user.ID)
			c.Set(CtxUsername, user.Username)
			c.Set(CtxRole, string(user.Role))
			c.Set(CtxUser, user)

			if presence != nil {
				// Best effort: an unreachable presence store must not
				// fail the request.
				_ = presence.Touch(c.Request().Context(), user.ID)
			}

			return next(c)
		}
	}
}
