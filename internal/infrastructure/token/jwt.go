// Package token issues and verifies the signed session tokens returned by a
// successful login. Tokens are stateless HS256 JWTs; nothing is stored
// server-side.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/loginapi/login-service/internal/pkg/config"
)

var ErrMissingSecret = errors.New("token: signing secret is empty")
var ErrInvalidToken = errors.New("token: invalid token")

// Claims is the payload carried by a session token. Subject and Email both
// hold the authenticated email.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// JWTIssuer signs and verifies session tokens with a process-wide secret.
// It is safe for concurrent use; all fields are read-only after construction.
type JWTIssuer struct {
	secret   []byte
	ttl      time.Duration
	issuer   string
	audience string
	now      func() time.Time
}

// NewJWTIssuer builds an issuer from the token section of the configuration.
func NewJWTIssuer(cfg config.TokenConfig) (*JWTIssuer, error) {
	if cfg.Secret == "" {
		return nil, ErrMissingSecret
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &JWTIssuer{
		secret:   []byte(cfg.Secret),
		ttl:      ttl,
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		now:      time.Now,
	}, nil
}

// Issue returns a signed token asserting email. Every call gets a fresh jti,
// so two tokens for the same email never compare equal.
func (i *JWTIssuer) Issue(email string) (string, error) {
	now := i.now()

	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   email,
			Issuer:    i.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	if i.audience != "" {
		claims.Audience = jwt.ClaimStrings{i.audience}
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses tokenString and checks algorithm, signature, expiry, issuer
// and audience. Any failure is reported as ErrInvalidToken wrapping the cause.
func (i *JWTIssuer) Verify(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(i.now),
	}
	if i.issuer != "" {
		opts = append(opts, jwt.WithIssuer(i.issuer))
	}
	if i.audience != "" {
		opts = append(opts, jwt.WithAudience(i.audience))
	}

	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !tkn.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// TTL is the lifetime stamped on every issued token.
func (i *JWTIssuer) TTL() time.Duration {
	return i.ttl
}
