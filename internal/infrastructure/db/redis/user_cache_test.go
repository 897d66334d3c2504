package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loginapi/login-service/internal/core/domain"
	"github.com/loginapi/login-service/internal/infrastructure/db/memory"
	"github.com/loginapi/login-service/internal/pkg/metrics"
)

// unreachableClient points at a closed port so every command fails fast.
func unreachableClient(t *testing.T) *redis.Client {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func seededStore(t *testing.T) *memory.UserRepository {
	t.Helper()
	store := memory.NewUserRepository()
	_, err := store.Seed(context.Background(), &domain.User{Email: "test@example.com", PasswordHash: "hash"})
	require.NoError(t, err)
	return store
}

func TestCacheKey_Normalizes(t *testing.T) {
	assert.Equal(t, "login:user:test@example.com", cacheKey(" TEST@Example.com "))
}

func TestCachedUserRepository_FallsThroughWhenRedisDown(t *testing.T) {
	repo := NewCachedUserRepository(seededStore(t), unreachableClient(t), time.Minute, zerolog.Nop())

	u, err := repo.FindByEmail(context.Background(), "test@example.com")
	require.NoError(t, err)
	assert.Equal(t, "hash", u.PasswordHash)

	_, err = repo.FindByEmail(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestCachedUserRepository_CountsReadErrors(t *testing.T) {
	repo := NewCachedUserRepository(seededStore(t), unreachableClient(t), time.Minute, zerolog.Nop())
	before := testutil.ToFloat64(metrics.CredentialCacheTotal.WithLabelValues("error"))

	_, err := repo.FindByEmail(context.Background(), "test@example.com")
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.CredentialCacheTotal.WithLabelValues("error"))-before)
}

func TestCachedUserRepository_SeedForwards(t *testing.T) {
	store := memory.NewUserRepository()
	repo := NewCachedUserRepository(store, unreachableClient(t), time.Minute, zerolog.Nop())

	created, err := repo.Seed(context.Background(), &domain.User{Email: "new@example.com", PasswordHash: "h"})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", created.Email)

	found, err := store.FindByEmail(context.Background(), "new@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
}

func TestCachedUserRepository_PingReportsFailure(t *testing.T) {
	repo := NewCachedUserRepository(seededStore(t), unreachableClient(t), time.Minute, zerolog.Nop())
	assert.Error(t, repo.Ping(context.Background()))
}

func TestCachedUser_RoundTripKeepsHash(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cu := cachedUser{ID: 7, Email: "a@example.com", PasswordHash: "$2a$10$x", CreatedAt: created}
	u := cu.toDomain()
	assert.Equal(t, &domain.User{ID: 7, Email: "a@example.com", PasswordHash: "$2a$10$x", CreatedAt: created}, u)
}

// Integration coverage against a live Redis, enabled with TEST_REDIS_ADDR.
func TestCachedUserRepository_Integration(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	client, err := Connect(ctx, Config{Addr: addr, Timeout: time.Second})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Del(ctx, cacheKey("test@example.com")).Err())

	store := seededStore(t)
	repo := NewCachedUserRepository(store, client, time.Minute, zerolog.Nop())

	first, err := repo.FindByEmail(ctx, "test@example.com")
	require.NoError(t, err)

	n, err := client.Exists(ctx, cacheKey("test@example.com")).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	second, err := repo.FindByEmail(ctx, "TEST@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.PasswordHash, second.PasswordHash)

	_, err = repo.FindByEmail(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	n, err = client.Exists(ctx, cacheKey("ghost@example.com")).Result()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestConnect_Unreachable(t *testing.T) {
	_, err := Connect(context.Background(), Config{Addr: "127.0.0.1:1", Timeout: 200 * time.Millisecond})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "127.0.0.1:1")
}
