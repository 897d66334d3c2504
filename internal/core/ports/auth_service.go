package ports

import (
	"context"

	"github.com/loginapi/login-service/internal/core/domain"
)

type AuthService interface {
	Login(ctx context.Context, req domain.LoginRequest) domain.LoginResult
}

// PasswordVerifier checks a plaintext password against a stored salted hash.
type PasswordVerifier interface {
	Verify(plaintext, storedHash string) bool
}

// PasswordHasher produces hashes that a PasswordVerifier accepts.
type PasswordHasher interface {
	PasswordVerifier
	Hash(plaintext string) (string, error)
}

// TokenIssuer signs a time-bounded token asserting an email identity.
type TokenIssuer interface {
	Issue(email string) (string, error)
}
