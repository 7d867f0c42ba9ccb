package ports

import (
	"context"

	"github.com/usermgmt/users-api/internal/core/domain"
)

// SessionService exchanges credentials for a signed session token.
type SessionService interface {
	CreateSession(ctx context.Context, name, password string) (string, error)
}

// AccessGate decides whether a request carrying token may reach a route
// guarded by policy. An empty token means none was supplied.
type AccessGate interface {
	Authorize(policy domain.Policy, token string) domain.AccessDecision
}
