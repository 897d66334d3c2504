package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func TestHealthHandler_Liveness(t *testing.T) {
	e := echo.New()
	h := NewHealthHandler()
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 123456789, time.FixedZone("CET", 3600))
	h.now = func() time.Time { return fixed }

	req := httptest.NewRequest(http.MethodGet, "/api/auth/health", nil)
	rec := httptest.NewRecorder()
	if err := h.Liveness(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp healthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Status != "API is running" {
		t.Fatalf("unexpected status %q", resp.Status)
	}
	if resp.Timestamp != "2026-03-01T11:00:00.123456789Z" {
		t.Fatalf("expected UTC RFC3339 timestamp, got %q", resp.Timestamp)
	}
}

func TestHealthHandler_Liveness_TimestampsAdvance(t *testing.T) {
	e := echo.New()
	h := NewHealthHandler()

	stamp := func() time.Time {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/auth/health", nil)
		if err := h.Liveness(e.NewContext(req, rec)); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		var resp healthResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		ts, err := time.Parse(time.RFC3339Nano, resp.Timestamp)
		if err != nil {
			t.Fatalf("timestamp not RFC3339: %v", err)
		}
		return ts
	}

	first := stamp()
	second := stamp()
	if second.Before(first) {
		t.Fatalf("timestamps went backwards: %v then %v", first, second)
	}
}

func TestReadinessHandler(t *testing.T) {
	ok := DependencyCheck{Name: "postgres", Ping: func(context.Context) error { return nil }}
	down := DependencyCheck{Name: "redis", Ping: func(context.Context) error {
		return errors.New("dial tcp 10.0.0.7:6379: connection refused")
	}}

	tests := []struct {
		name   string
		checks []DependencyCheck
		code   int
		status string
	}{
		{"no dependencies", nil, http.StatusOK, "ok"},
		{"all healthy", []DependencyCheck{ok}, http.StatusOK, "ok"},
		{"one down", []DependencyCheck{ok, down}, http.StatusServiceUnavailable, "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			h := NewReadinessHandler(tt.checks, zerolog.Nop())

			req := httptest.NewRequest(http.MethodGet, "/api/auth/health/ready", nil)
			rec := httptest.NewRecorder()
			if err := h.Readiness(e.NewContext(req, rec)); err != nil {
				t.Fatalf("handler error: %v", err)
			}

			if rec.Code != tt.code {
				t.Fatalf("expected %d, got %d", tt.code, rec.Code)
			}
			var resp readinessResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp.Status != tt.status {
				t.Fatalf("expected %q, got %q", tt.status, resp.Status)
			}
			if len(resp.Dependencies) != len(tt.checks) {
				t.Fatalf("expected %d dependencies, got %+v", len(tt.checks), resp.Dependencies)
			}
			if strings.Contains(rec.Body.String(), "connection refused") {
				t.Fatalf("dependency error leaked to client: %s", rec.Body.String())
			}
		})
	}
}
