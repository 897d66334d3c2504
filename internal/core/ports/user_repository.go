package ports

import (
	"context"

	"github.com/loginapi/login-service/internal/core/domain"
)

// UserRepository is the read side of the credential store used by login.
// Implementations receive an already normalized email and return
// domain.ErrUserNotFound when no record matches.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserSeeder inserts a user unless one with the same email already exists.
// It returns the stored record in both cases.
type UserSeeder interface {
	Seed(ctx context.Context, user *domain.User) (*domain.User, error)
}
