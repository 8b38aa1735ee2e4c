package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chamathdew/hiruayurvedaresorts/internal/core/domain"
)

// ctxIdentity extracts the identity claims injected by the Auth middleware
// and fast-fails before any service call: a non-empty role proves the
// middleware ran, and every non-admin account must carry a branch claim.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	id := domain.Identity{}
	id.UserID, _ = c.Get("user_id").(string)
	id.Username, _ = c.Get("username").(string)
	id.Role, _ = c.Get("role").(string)
	id.HotelBranch, _ = c.Get("hotel_branch").(string)

	if id.Role == "" {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	if id.Role != domain.RoleAdmin && id.HotelBranch == "" {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "token missing branch assignment")
	}
	return id, nil
}
