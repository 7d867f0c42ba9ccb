package service

import (
	"github.com/usermgmt/users-api/internal/core/domain"
)

// ClaimsValidator decodes a session token.
type ClaimsValidator interface {
	Validate(token string) (*domain.Claims, error)
}

// AccessGate evaluates route policies against the presented token.
// It holds no mutable state and never touches the user store.
type AccessGate struct {
	validator ClaimsValidator
}

func NewAccessGate(validator ClaimsValidator) *AccessGate {
	return &AccessGate{validator: validator}
}

// Authorize returns the decision for a request guarded by policy.
// An empty token means the request carried none.
//
// Public routes are always admitted; a valid token there attaches its
// claims, anything else leaves the request anonymous.
func (g *AccessGate) Authorize(policy domain.Policy, token string) domain.AccessDecision {
	var claims *domain.Claims
	if token != "" {
		if c, err := g.validator.Validate(token); err == nil {
			claims = c
		}
	}

	if policy.IsPublic() {
		return domain.AccessDecision{Allowed: true, Claims: claims}
	}
	if claims == nil {
		return domain.AccessDecision{Denial: domain.ErrUnauthenticated}
	}
	if min, ok := policy.MinRole(); ok && !claims.Role.AtLeast(min) {
		return domain.AccessDecision{Claims: claims, Denial: domain.ErrForbidden}
	}
	return domain.AccessDecision{Allowed: true, Claims: claims}
}
