package service

import (
	"context"
	"sort"

	"golang.org/x/crypto/bcrypt"

	"github.com/usermgmt/users-api/internal/core/domain"
)

type stubUserRepo struct {
	users   map[string]*domain.User // by name
	findErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

// seed stores a user with a MinCost bcrypt hash of password.
func (r *stubUserRepo) seed(name, password string, role domain.Role) *domain.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	u := &domain.User{ID: "id-" + name, Name: name, PasswordHash: string(hash), Role: role}
	r.users[name] = u
	return cloneUser(u)
}

func (r *stubUserRepo) FindByName(_ context.Context, name string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[name]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Name]; exists {
		return nil, domain.ErrUserExists
	}
	copy := cloneUser(user)
	if copy.ID == "" {
		copy.ID = "id-" + user.Name
	}
	r.users[copy.Name] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) (*domain.User, error) {
	for name, u := range r.users {
		if u.ID == id {
			delete(r.users, name)
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}
