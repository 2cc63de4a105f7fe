// config/config.go
package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr          string
	DatabaseURL   string
	MongoDatabase string
	Migrate       bool

	Password string
	// JWTSecret is random per process when NOTES_JWT_SECRET is unset, which
	// invalidates every token on restart.
	JWTSecret          string
	JWTSecretGenerated bool
	TokenTTL           time.Duration

	Location    *time.Location
	BodyLimit   int
	CORSOrigins string

	LogLevel  string
	LogFormat string
}

// Load reads .env when present, then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		Addr:          envOr("NOTES_ADDR", ":8080"),
		DatabaseURL:   envOr("DATABASE_URL", "memory://"),
		MongoDatabase: envOr("NOTES_MONGO_DATABASE", "notesapp"),
		Password:      envOr("NOTES_PASSWORD", "notesapp2024"),
		JWTSecret:     os.Getenv("NOTES_JWT_SECRET"),
		CORSOrigins:   envOr("NOTES_CORS_ORIGINS", "*"),
		LogLevel:      strings.ToLower(envOr("NOTES_LOG_LEVEL", "info")),
		LogFormat:     strings.ToLower(envOr("NOTES_LOG_FORMAT", "json")),
	}

	var err error
	if cfg.Migrate, err = parseBoolOr("NOTES_MIGRATE", true); err != nil {
		return Config{}, err
	}
	if cfg.TokenTTL, err = parseDurationOr("NOTES_TOKEN_TTL", 24*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.BodyLimit, err = parseIntOr("NOTES_BODY_LIMIT", 50*1024*1024); err != nil {
		return Config{}, err
	}

	zone := envOr("NOTES_TIMEZONE", "Local")
	if cfg.Location, err = time.LoadLocation(zone); err != nil {
		return Config{}, fmt.Errorf("NOTES_TIMEZONE: %w", err)
	}

	if cfg.JWTSecret == "" {
		secret := make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return Config{}, fmt.Errorf("generate jwt secret: %w", err)
		}
		cfg.JWTSecret = hex.EncodeToString(secret)
		cfg.JWTSecretGenerated = true
	}

	switch cfg.LogFormat {
	case "json", "console":
	default:
		return Config{}, fmt.Errorf("NOTES_LOG_FORMAT: unknown format %q", cfg.LogFormat)
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func parseDurationOr(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s: invalid duration %q", key, v)
	}
	return d, nil
}

func parseIntOr(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil || i <= 0 {
		return 0, fmt.Errorf("%s: invalid positive integer %q", key, v)
	}
	return i, nil
}

func parseBoolOr(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: invalid boolean %q", key, v)
	}
	return b, nil
}
