package middleware

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/influencer-portal/backend/internal/auth"
	"github.com/influencer-portal/backend/internal/config"
	"go.uber.org/zap"
)

type stubSessions map[string]string

func (s stubSessions) Authenticate(_ context.Context, id string) (string, error) {
	email, ok := s[id]
	if !ok {
		return "", errors.New("no session")
	}
	return email, nil
}

func newAuthApp(cfg *config.Config, sessions SessionChecker) *fiber.App {
	app := fiber.New()
	app.Use(RequestIDMiddleware())
	app.Get("/me", AuthMiddleware(cfg, sessions, zap.NewNop()), func(c *fiber.Ctx) error {
		return c.SendString(GetEmail(c) + "|" + GetSessionID(c))
	})
	return app
}

func TestAuthMiddleware(t *testing.T) {
	cfg := &config.Config{JWTSecret: "secret"}
	sessions := stubSessions{"s1": "ava@example.com", "s2": "someone@else.com"}
	app := newAuthApp(cfg, sessions)

	valid, _ := auth.GenerateJWT(cfg.JWTSecret, "ava@example.com", "s1", time.Hour)
	loggedOut, _ := auth.GenerateJWT(cfg.JWTSecret, "ava@example.com", "gone", time.Hour)
	mismatch, _ := auth.GenerateJWT(cfg.JWTSecret, "ava@example.com", "s2", time.Hour)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", fiber.StatusUnauthorized},
		{"not bearer", valid, fiber.StatusUnauthorized},
		{"garbage token", "Bearer nope", fiber.StatusUnauthorized},
		{"logged out session", "Bearer " + loggedOut, fiber.StatusUnauthorized},
		{"session of another user", "Bearer " + mismatch, fiber.StatusUnauthorized},
		{"valid", "Bearer " + valid, fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
		})
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(RequestIDMiddleware())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-ID", "req-42")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if got := resp.Header.Get("X-Request-ID"); got != "req-42" {
		t.Errorf("X-Request-ID = %q, want req-42", got)
	}

	resp, _ = app.Test(httptest.NewRequest("GET", "/", nil))
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("expected a generated request id")
	}
}

func TestRequestIDRejectsOversizedHeader(t *testing.T) {
	app := fiber.New()
	app.Use(RequestIDMiddleware())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString(GetRequestID(c)) })

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-ID", strings.Repeat("x", maxRequestIDLen+1))
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if got := resp.Header.Get("X-Request-ID"); len(got) > maxRequestIDLen {
		t.Errorf("oversized request id was kept: %d chars", len(got))
	}
}
