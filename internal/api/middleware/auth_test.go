package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/loginapi/login-service/internal/infrastructure/token"
	"github.com/loginapi/login-service/internal/pkg/config"
)

func newIssuer(t *testing.T, secret string) *token.JWTIssuer {
	t.Helper()
	iss, err := token.NewJWTIssuer(config.TokenConfig{
		Secret:   secret,
		TTL:      time.Hour,
		Issuer:   "login-api",
		Audience: "login-api-users",
	})
	if err != nil {
		t.Fatalf("issuer: %v", err)
	}
	return iss
}

func runAuth(t *testing.T, verifier TokenVerifier, header string) (*httptest.ResponseRecorder, bool, any) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	var email any
	handler := Auth(verifier)(func(c echo.Context) error {
		called = true
		email = c.Get(ContextEmailKey)
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called, email
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	iss := newIssuer(t, strings.Repeat("k", 32))
	signed, err := iss.Issue("alice@example.com")
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	rec, called, email := runAuth(t, iss, "Bearer "+signed)

	if !called {
		t.Fatalf("next not called")
	}
	if email != "alice@example.com" {
		t.Fatalf("email not set, got %v", email)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_LowercaseScheme(t *testing.T) {
	iss := newIssuer(t, strings.Repeat("k", 32))
	signed, _ := iss.Issue("alice@example.com")

	rec, called, _ := runAuth(t, iss, "bearer "+signed)
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected scheme match to be case-insensitive, got %d", rec.Code)
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	iss := newIssuer(t, strings.Repeat("k", 32))
	foreign := newIssuer(t, strings.Repeat("x", 32))
	forged, _ := foreign.Issue("alice@example.com")

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Token abc"},
		{"no token", "Bearer"},
		{"garbage token", "Bearer not-a-jwt"},
		{"wrong key", "Bearer " + forged},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, called, _ := runAuth(t, iss, tt.header)
			if called {
				t.Fatalf("should not reach next")
			}
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}
