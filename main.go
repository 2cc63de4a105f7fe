// main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/ViniZap4/lumi-notes/auth"
	"github.com/ViniZap4/lumi-notes/config"
	httpserver "github.com/ViniZap4/lumi-notes/http"
	"github.com/ViniZap4/lumi-notes/service"
	"github.com/ViniZap4/lumi-notes/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		l := zerolog.New(os.Stderr)
		l.Fatal().Err(err).Msg("load config")
	}
	log := newLogger(cfg)

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func newLogger(cfg config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.TimeFieldFormat = time.RFC3339Nano

	if cfg.LogFormat == "console" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
			Level(level).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
}

func run(cfg config.Config, log zerolog.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if cfg.JWTSecretGenerated {
		log.Warn().Msg("NOTES_JWT_SECRET is not set, using a random secret; tokens will not survive a restart")
	}

	st, err := store.Open(ctx, store.Options{
		URL:           cfg.DatabaseURL,
		MongoDatabase: cfg.MongoDatabase,
		Migrate:       cfg.Migrate,
		Logger:        log.With().Str("component", "store").Logger(),
	})
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := st.Close(closeCtx); err != nil {
			log.Error().Err(err).Msg("close store")
		}
	}()

	svc := service.New(st, service.Options{
		Logger:   log.With().Str("component", "service").Logger(),
		Location: cfg.Location,
	})
	gate, err := auth.New(st, auth.Options{
		Password: cfg.Password,
		Secret:   cfg.JWTSecret,
		TTL:      cfg.TokenTTL,
		Logger:   log.With().Str("component", "auth").Logger(),
	})
	if err != nil {
		return err
	}
	server := httpserver.NewServer(svc, gate, httpserver.Options{
		BodyLimit:   cfg.BodyLimit,
		CORSOrigins: cfg.CORSOrigins,
		Logger:      log.With().Str("component", "http").Logger(),
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Listen(cfg.Addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutdown requested")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	return server.Shutdown(shutdownCtx)
}
