package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/usermgmt/users-api/internal/core/domain"
)

// ClaimsKey is the echo context key under which the access middleware stores
// the caller's claims.
const ClaimsKey = "claims"

// emptyResponse documents the {} body of every error response.
type emptyResponse struct{}

// ClaimsFrom returns the caller's claims, or nil for anonymous requests.
func ClaimsFrom(c echo.Context) *domain.Claims {
	claims, _ := c.Get(ClaimsKey).(*domain.Claims)
	return claims
}
