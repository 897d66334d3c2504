package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/loginapi/login-service/internal/core/domain"
	"github.com/loginapi/login-service/internal/core/ports"
)

// AuthService implements login: lookup, password verification and token issuance.
type AuthService struct {
	repo     ports.UserRepository
	verifier ports.PasswordVerifier
	issuer   ports.TokenIssuer
	log      zerolog.Logger

	// decoyHash is compared against when the email is unknown. Empty when the
	// verifier cannot hash.
	decoyHash string
}

func NewAuthService(repo ports.UserRepository, verifier ports.PasswordVerifier, issuer ports.TokenIssuer, log zerolog.Logger) *AuthService {
	s := &AuthService{
		repo:     repo,
		verifier: verifier,
		issuer:   issuer,
		log:      log.With().Str("component", "auth_service").Logger(),
	}
	if hasher, ok := verifier.(ports.PasswordHasher); ok {
		hash, err := hasher.Hash(strings.ReplaceAll(uuid.NewString(), "-", ""))
		if err != nil {
			s.log.Warn().Err(err).Msg("decoy hash unavailable")
		}
		s.decoyHash = hash
	}
	return s
}

// Login never returns an error: every fault is folded into the result and
// the cause is logged. Unknown email and wrong password yield the same
// ReasonInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, req domain.LoginRequest) (result domain.LoginResult) {
	start := time.Now()
	email := domain.NormalizeEmail(req.Email)

	defer func() {
		if r := recover(); r != nil {
			s.log.Error().
				Str("email", email).
				Str("panic", fmt.Sprint(r)).
				Msg("login aborted by panic")
			result = domain.LoginFailed(domain.ReasonInternalError)
		}
		s.logAttempt(email, result, time.Since(start))
	}()

	if email == "" || req.Password == "" {
		return domain.LoginFailed(domain.ReasonInvalidInput)
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.burnDecoy(req.Password)
			return domain.LoginFailed(domain.ReasonInvalidCredentials)
		}
		s.log.Error().Err(err).Str("email", email).Msg("credential lookup failed")
		return domain.LoginFailed(domain.ReasonInternalError)
	}

	if !s.verifier.Verify(req.Password, user.PasswordHash) {
		return domain.LoginFailed(domain.ReasonInvalidCredentials)
	}

	token, err := s.issuer.Issue(user.Email)
	if err != nil {
		s.log.Error().Err(err).Str("email", email).Msg("token issuance failed")
		return domain.LoginFailed(domain.ReasonInternalError)
	}

	return domain.LoginSucceeded(token, user.Email)
}

// burnDecoy spends one hash comparison on a throwaway hash so that an unknown
// email costs about as much as a wrong password.
func (s *AuthService) burnDecoy(password string) {
	if s.decoyHash != "" {
		_ = s.verifier.Verify(password, s.decoyHash)
	}
}

func (s *AuthService) logAttempt(email string, result domain.LoginResult, elapsed time.Duration) {
	ev := s.log.Info()
	if !result.Succeeded() {
		ev = s.log.Warn()
	}
	ev.Str("email", email).
		Str("outcome", result.Outcome()).
		Dur("elapsed", elapsed).
		Msg("login attempt")
}
