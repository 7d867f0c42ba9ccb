package ports

import (
	"context"

	"github.com/usermgmt/users-api/internal/core/domain"
)

// UserRepository defines the interface for user persistence.
// Lookups of unknown users return domain.ErrUserNotFound.
type UserRepository interface {
	FindByName(ctx context.Context, name string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	// Create returns domain.ErrUserExists when the name is taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// Delete removes the user and returns the deleted record.
	Delete(ctx context.Context, id string) (*domain.User, error)
}
