package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/usermgmt/users-api/internal/core/domain"
	"github.com/usermgmt/users-api/internal/core/ports"
)

// UserService implements account management on top of the user store.
type UserService struct {
	repo ports.UserRepository
	cost int
}

// NewUserService builds a UserService hashing passwords with the given bcrypt
// cost. The cost must match the one the CredentialVerifier is built with.
func NewUserService(repo ports.UserRepository, cost int) *UserService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &UserService{repo: repo, cost: cost}
}

// Register creates an account. Only an admin caller may create another admin.
func (s *UserService) Register(ctx context.Context, in ports.RegisterUserInput) (*domain.User, error) {
	if in.Name == "" || in.Password == "" {
		return nil, domain.ErrValidation
	}
	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, role)
	}
	if role == domain.RoleAdmin && (in.Caller == nil || !in.Caller.Role.AtLeast(domain.RoleAdmin)) {
		return nil, domain.ErrForbidden
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: password too long", domain.ErrValidation)
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	return s.repo.Create(ctx, &domain.User{
		Name:         in.Name,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) Delete(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.Delete(ctx, id)
}
