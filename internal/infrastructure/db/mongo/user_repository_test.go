package mongo

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/usermgmt/users-api/internal/core/domain"
)

func TestMongoUser_ToDomain(t *testing.T) {
	oid := primitive.NewObjectID()
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	u := mongoUser{
		ID:           oid,
		Name:         "john",
		PasswordHash: "$2a$10$hash",
		Role:         "admin",
		CreatedAt:    created.Unix(),
	}.toDomain()

	if u.ID != oid.Hex() || u.Name != "john" || u.Role != domain.RoleAdmin {
		t.Fatalf("unexpected user: %+v", u)
	}
	if !u.CreatedAt.Equal(created) {
		t.Fatalf("expected created_at %v, got %v", created, u.CreatedAt)
	}
	if !u.UpdatedAt.IsZero() {
		t.Fatalf("expected zero updated_at, got %v", u.UpdatedAt)
	}
}

func TestUserRepository_MalformedIDIsNotFound(t *testing.T) {
	var repo UserRepository

	if _, err := repo.FindByID(context.Background(), "1234"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("FindByID: expected ErrUserNotFound, got %v", err)
	}
	if _, err := repo.Delete(context.Background(), "1234"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("Delete: expected ErrUserNotFound, got %v", err)
	}
}
