package auth

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/ViniZap4/lumi-notes/store/memory"
)

func newTestGate(t *testing.T) (*Gate, *time.Time) {
	t.Helper()
	g, err := New(memory.New(), Options{Password: "open sesame", Secret: "test-secret", TTL: 24 * time.Hour, Logger: zerolog.Nop()})
	if err != nil {
		t.Fatalf("new gate: %v", err)
	}
	now := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	g.now = func() time.Time { return now }
	return g, &now
}

func TestLoginRejectsBadPasswords(t *testing.T) {
	g, _ := newTestGate(t)
	ctx := context.Background()

	if _, err := g.Login(ctx, ""); !errors.Is(err, ErrMissingPassword) {
		t.Fatalf("expected missing password, got %v", err)
	}
	if _, err := g.Login(ctx, "wrong"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected invalid password, got %v", err)
	}
}

func TestLoginVerifyLogout(t *testing.T) {
	g, _ := newTestGate(t)
	ctx := context.Background()

	sess, err := g.Login(ctx, "open sesame")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !sess.Authenticated || sess.Token == "" {
		t.Fatalf("unexpected session %+v", sess)
	}
	got, err := g.Verify(ctx, sess.Token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got.ID != sess.ID {
		t.Fatalf("verify returned session %q, want %q", got.ID, sess.ID)
	}

	if err := g.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := g.Verify(ctx, sess.Token); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected revoked session, got %v", err)
	}
}

func TestNewLoginReplacesOldToken(t *testing.T) {
	g, _ := newTestGate(t)
	ctx := context.Background()

	first, err := g.Login(ctx, "open sesame")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	firstToken := first.Token
	second, err := g.Login(ctx, "open sesame")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("session record was not reused")
	}
	if _, err := g.Verify(ctx, firstToken); !errors.Is(err, ErrNoSession) {
		t.Fatalf("old token still accepted: %v", err)
	}
	if _, err := g.Verify(ctx, second.Token); err != nil {
		t.Fatalf("new token rejected: %v", err)
	}
}

func TestVerifyRejectsBadTokens(t *testing.T) {
	g, now := newTestGate(t)
	ctx := context.Background()
	sess, err := g.Login(ctx, "open sesame")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{Authenticated: true})
	forgedToken, _ := forged.SignedString([]byte("other-secret"))

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{"empty", "", ErrMissingToken},
		{"garbage", "not.a.jwt", ErrInvalidToken},
		{"wrong key", forgedToken, ErrInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := g.Verify(ctx, tt.token); !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}

	*now = now.Add(25 * time.Hour)
	if _, err := g.Verify(ctx, sess.Token); !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected expired token, got %v", err)
	}
}

func TestMiddleware(t *testing.T) {
	g, _ := newTestGate(t)
	sess, err := g.Login(context.Background(), "open sesame")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if IsAuthError(err) {
				return c.Status(fiber.StatusUnauthorized).SendString(err.Error())
			}
			return c.Status(fiber.StatusInternalServerError).SendString(err.Error())
		},
	})
	app.Get("/private", g.Middleware(), func(c *fiber.Ctx) error {
		return c.SendString("hello")
	})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"no header", "", fiber.StatusUnauthorized},
		{"wrong scheme", "Basic " + sess.Token, fiber.StatusUnauthorized},
		{"valid", "Bearer " + sess.Token, fiber.StatusOK},
		{"lowercase scheme", "bearer " + sess.Token, fiber.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/private", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tt.status {
				body, _ := io.ReadAll(resp.Body)
				t.Fatalf("status %d, want %d: %s", resp.StatusCode, tt.status, body)
			}
		})
	}
}
