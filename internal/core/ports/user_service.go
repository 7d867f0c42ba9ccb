package ports

import (
	"context"

	"github.com/usermgmt/users-api/internal/core/domain"
)

// RegisterUserInput carries the data needed to create an account.
// Caller is the authenticated requester, nil when anonymous.
type RegisterUserInput struct {
	Name     string
	Password string
	Role     domain.Role
	Caller   *domain.Claims
}

// UserService defines the user management use cases.
type UserService interface {
	Register(ctx context.Context, in RegisterUserInput) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Delete(ctx context.Context, id string) (*domain.User, error)
}
