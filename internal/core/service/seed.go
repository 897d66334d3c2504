package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/loginapi/login-service/internal/core/domain"
	"github.com/loginapi/login-service/internal/core/ports"
)

// SeedUser provisions a user with the given credentials unless the email is
// already taken. The existing record, if any, is returned unchanged.
func SeedUser(ctx context.Context, seeder ports.UserSeeder, hasher ports.PasswordHasher, email, plaintext string) (*domain.User, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || plaintext == "" {
		return nil, errors.New("seed: email and password are required")
	}

	hash, err := hasher.Hash(plaintext)
	if err != nil {
		return nil, fmt.Errorf("seed: hash password: %w", err)
	}

	user, err := seeder.Seed(ctx, &domain.User{Email: email, PasswordHash: hash})
	if err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}
	return user, nil
}
