package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cedrulion/murika-farm/internal/api/middleware"
	"github.com/cedrulion/murika-farm/internal/core/domain"
	"github.com/cedrulion/murika-farm/internal/core/ports"
)

// ctxActor extracts the identity injected by the Auth middleware. A missing
// user id means the middleware did not run on this route; fail closed.
func ctxActor(c echo.Context) (ports.Actor, error) {
	userID, _ := c.Get(middleware.CtxUserID).(string)
	if userID == "" {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	role, _ := c.Get(middleware.CtxRole).(string)
	return ports.Actor{UserID: userID, Role: domain.Role(role)}, nil
}

// ctxUser returns the full resolved user attached by the Auth middleware.
func ctxUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get(middleware.CtxUser).(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return user, nil
}
