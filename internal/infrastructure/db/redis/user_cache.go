package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/usermgmt/users-api/internal/api/metrics"
	"github.com/usermgmt/users-api/internal/core/domain"
	"github.com/usermgmt/users-api/internal/core/ports"
)

// CachedUserRepository is a read-through cache over a UserRepository for
// lookups by name, the hot path of every login.
// Key format: user:name:<name>
//
// Redis failures never fail a request: reads fall through to the store and
// failed writes are only logged.
type CachedUserRepository struct {
	ports.UserRepository
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

// NewCachedUserRepository wraps next. A ttl <= 0 returns next unchanged.
func NewCachedUserRepository(next ports.UserRepository, client *redis.Client, ttl time.Duration, log zerolog.Logger) ports.UserRepository {
	if ttl <= 0 || client == nil {
		return next
	}
	return &CachedUserRepository{UserRepository: next, client: client, ttl: ttl, log: log}
}

type cachedUser struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	PasswordHash string      `json:"password_hash"`
	Role         domain.Role `json:"role"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

func (r *CachedUserRepository) FindByName(ctx context.Context, name string) (*domain.User, error) {
	raw, err := r.client.Get(ctx, nameKey(name)).Bytes()
	switch {
	case err == nil:
		var cu cachedUser
		if jsonErr := json.Unmarshal(raw, &cu); jsonErr == nil {
			metrics.UserCacheTotal.WithLabelValues("hit").Inc()
			return &domain.User{
				ID:           cu.ID,
				Name:         cu.Name,
				PasswordHash: cu.PasswordHash,
				Role:         cu.Role,
				CreatedAt:    cu.CreatedAt,
				UpdatedAt:    cu.UpdatedAt,
			}, nil
		}
		metrics.UserCacheTotal.WithLabelValues("error").Inc()
	case errors.Is(err, redis.Nil):
		metrics.UserCacheTotal.WithLabelValues("miss").Inc()
	default:
		metrics.UserCacheTotal.WithLabelValues("error").Inc()
		r.log.Warn().Err(err).Msg("user cache read failed, using store")
	}

	user, err := r.UserRepository.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	r.store(ctx, user)
	return user, nil
}

func (r *CachedUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	created, err := r.UserRepository.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx, created.Name)
	return created, nil
}

func (r *CachedUserRepository) Delete(ctx context.Context, id string) (*domain.User, error) {
	deleted, err := r.UserRepository.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx, deleted.Name)
	return deleted, nil
}

func (r *CachedUserRepository) store(ctx context.Context, u *domain.User) {
	raw, err := json.Marshal(cachedUser{
		ID:           u.ID,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	})
	if err != nil {
		return
	}
	if err := r.client.Set(ctx, nameKey(u.Name), raw, r.ttl).Err(); err != nil {
		r.log.Warn().Err(err).Msg("user cache write failed")
	}
}

func (r *CachedUserRepository) invalidate(ctx context.Context, name string) {
	if err := r.client.Del(ctx, nameKey(name)).Err(); err != nil {
		r.log.Warn().Err(err).Str("name", name).Msg("user cache invalidation failed")
	}
}

func nameKey(name string) string {
	return fmt.Sprintf("user:name:%s", name)
}
