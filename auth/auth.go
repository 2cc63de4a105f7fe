// auth/auth.go
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/ViniZap4/lumi-notes/domain"
	"github.com/ViniZap4/lumi-notes/store"
)

var (
	ErrMissingPassword = errors.New("password is required")
	ErrInvalidPassword = errors.New("invalid password")
	ErrMissingToken    = errors.New("no token provided")
	ErrInvalidToken    = errors.New("invalid token")
	ErrExpiredToken    = errors.New("token expired")
	ErrNoSession       = errors.New("invalid session")
)

// LocalsSession is the fiber locals key holding the verified *domain.Session.
const LocalsSession = "session"

type claims struct {
	Authenticated bool `json:"authenticated"`
	jwt.RegisteredClaims
}

type Options struct {
	Password string
	Secret   string
	TTL      time.Duration
	Logger   zerolog.Logger
}

// Gate guards the API with one shared password. A successful login stores
// its token in the single session record, so only the newest token is
// accepted and logout revokes it.
type Gate struct {
	sessions store.SessionStore
	hash     []byte
	secret   []byte
	ttl      time.Duration
	log      zerolog.Logger
	now      func() time.Time
}

func New(sessions store.SessionStore, opts Options) (*Gate, error) {
	if opts.Password == "" {
		return nil, errors.New("auth: empty password")
	}
	if opts.Secret == "" {
		return nil, errors.New("auth: empty token secret")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(opts.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("auth: hash password: %w", err)
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Gate{
		sessions: sessions,
		hash:     hash,
		secret:   []byte(opts.Secret),
		ttl:      ttl,
		log:      opts.Logger,
		now:      func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}, nil
}

// Login checks the shared password and issues a new token, replacing the
// stored session.
func (g *Gate) Login(ctx context.Context, password string) (*domain.Session, error) {
	if password == "" {
		return nil, ErrMissingPassword
	}
	if err := bcrypt.CompareHashAndPassword(g.hash, []byte(password)); err != nil {
		g.log.Warn().Msg("login rejected")
		return nil, ErrInvalidPassword
	}

	now := g.now()
	token, err := g.sign(now)
	if err != nil {
		return nil, err
	}

	sess, err := g.sessions.GetSession(ctx)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		sess = &domain.Session{ID: uuid.NewString(), CreatedAt: now}
	case err != nil:
		return nil, fmt.Errorf("load session: %w", err)
	}
	sess.Token = token
	sess.Authenticated = true
	sess.LastLogin = now
	sess.UpdatedAt = now
	if err := g.sessions.SaveSession(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	g.log.Info().Str("session", sess.ID).Msg("login")
	return sess, nil
}

// Verify accepts a token that is well signed, unexpired and still the one
// held by the session.
func (g *Gate) Verify(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, ErrMissingToken
	}
	var c claims
	_, err := jwt.ParseWithClaims(token, &c, func(*jwt.Token) (any, error) {
		return g.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(g.now))
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpiredToken
	case err != nil || !c.Authenticated:
		return nil, ErrInvalidToken
	}

	sess, err := g.sessions.GetSession(ctx)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return nil, ErrNoSession
	case err != nil:
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !sess.Authenticated || subtle.ConstantTimeCompare([]byte(sess.Token), []byte(token)) != 1 {
		return nil, ErrNoSession
	}
	return sess, nil
}

// Logout revokes the stored session.
func (g *Gate) Logout(ctx context.Context) error {
	if err := g.sessions.ClearSessions(ctx); err != nil {
		return fmt.Errorf("clear sessions: %w", err)
	}
	g.log.Info().Msg("logout")
	return nil
}

// Middleware rejects requests without a valid bearer token.
func (g *Gate) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := g.Verify(c.UserContext(), BearerToken(c))
		if err != nil {
			return err
		}
		c.Locals(LocalsSession, sess)
		return c.Next()
	}
}

// BearerToken extracts the token from the Authorization header.
func BearerToken(c *fiber.Ctx) string {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

func (g *Gate) sign(now time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Authenticated: true,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
		},
	})
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// IsAuthError reports whether err is one of the gate's rejections.
func IsAuthError(err error) bool {
	for _, target := range []error{
		ErrMissingPassword, ErrInvalidPassword, ErrMissingToken,
		ErrInvalidToken, ErrExpiredToken, ErrNoSession,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
