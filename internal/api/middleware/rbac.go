package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/usermgmt/users-api/internal/core/domain"
)

// Public attaches the caller's claims when a valid token is present and
// admits everyone.
func (a *Access) Public() echo.MiddlewareFunc {
	return a.Require(domain.Public())
}

// Authenticated requires a valid token of any role.
func (a *Access) Authenticated() echo.MiddlewareFunc {
	return a.Require(domain.AnyAuthenticated())
}

// RoleAtLeast requires a valid token whose role meets min.
func (a *Access) RoleAtLeast(min domain.Role) echo.MiddlewareFunc {
	return a.Require(domain.RoleAtLeast(min))
}
