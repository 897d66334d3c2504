// Package memory holds a process-local credential store, used for
// development and tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/loginapi/login-service/internal/core/domain"
)

type UserRepository struct {
	mu     sync.RWMutex
	users  map[string]*domain.User
	nextID int64
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]*domain.User), nextID: 1}
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[domain.NormalizeEmail(email)]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

// Seed stores user under its normalized email unless that email is taken.
// ID and CreatedAt are assigned when zero.
func (r *UserRepository) Seed(_ context.Context, user *domain.User) (*domain.User, error) {
	key := domain.NormalizeEmail(user.Email)

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.users[key]; ok {
		return cloneUser(existing), nil
	}

	stored := cloneUser(user)
	stored.Email = key
	if stored.ID == 0 {
		stored.ID = r.nextID
	}
	if stored.ID >= r.nextID {
		r.nextID = stored.ID + 1
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	r.users[key] = stored
	return cloneUser(stored), nil
}

func cloneUser(u *domain.User) *domain.User {
	clone := *u
	return &clone
}
