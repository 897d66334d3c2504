package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/loginapi/login-service/internal/pkg/metrics"
	"github.com/loginapi/login-service/internal/core/domain"
	"github.com/loginapi/login-service/internal/core/ports"
)

const defaultCacheTTL = 5 * time.Minute

// CachedUserRepository is a read-through cache in front of another
// UserRepository. Key format: login:user:<normalized email>
//
// Only found users are cached. Redis failures are logged and the lookup
// falls through to the backing store.
type CachedUserRepository struct {
	next   ports.UserRepository
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

// NewCachedUserRepository wraps next with a Redis cache.
func NewCachedUserRepository(next ports.UserRepository, client *redis.Client, ttl time.Duration, log zerolog.Logger) *CachedUserRepository {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &CachedUserRepository{
		next:   next,
		client: client,
		ttl:    ttl,
		log:    log.With().Str("component", "credential_cache").Logger(),
	}
}

// cachedUser mirrors domain.User; the domain type hides the hash from JSON.
type cachedUser struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

func (c *CachedUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	key := cacheKey(email)

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cu cachedUser
		if jerr := json.Unmarshal(raw, &cu); jerr == nil {
			metrics.CredentialCacheTotal.WithLabelValues("hit").Inc()
			return cu.toDomain(), nil
		}
		c.log.Warn().Str("key", key).Msg("discarding undecodable cache entry")
		_ = c.client.Del(ctx, key).Err()
		metrics.CredentialCacheTotal.WithLabelValues("miss").Inc()
	case errors.Is(err, redis.Nil):
		metrics.CredentialCacheTotal.WithLabelValues("miss").Inc()
	default:
		metrics.CredentialCacheTotal.WithLabelValues("error").Inc()
		c.log.Warn().Err(err).Msg("credential cache read failed")
	}

	user, err := c.next.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if err := c.store(ctx, key, user); err != nil {
		c.log.Warn().Err(err).Msg("credential cache write failed")
	}
	return user, nil
}

// Seed forwards to the backing store when it supports seeding and drops any
// cached copy of the email.
func (c *CachedUserRepository) Seed(ctx context.Context, user *domain.User) (*domain.User, error) {
	seeder, ok := c.next.(ports.UserSeeder)
	if !ok {
		return nil, fmt.Errorf("credential store %T cannot seed users", c.next)
	}
	stored, err := seeder.Seed(ctx, user)
	if err != nil {
		return nil, err
	}
	if err := c.client.Del(ctx, cacheKey(user.Email)).Err(); err != nil {
		c.log.Warn().Err(err).Msg("credential cache invalidation failed")
	}
	return stored, nil
}

// Ping reports whether Redis is reachable.
func (c *CachedUserRepository) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *CachedUserRepository) store(ctx context.Context, key string, u *domain.User) error {
	raw, err := json.Marshal(cachedUser{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	})
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, raw, c.ttl).Err()
}

func (cu cachedUser) toDomain() *domain.User {
	return &domain.User{
		ID:           cu.ID,
		Email:        cu.Email,
		PasswordHash: cu.PasswordHash,
		CreatedAt:    cu.CreatedAt.UTC(),
	}
}

func cacheKey(email string) string {
	return "login:user:" + domain.NormalizeEmail(email)
}
