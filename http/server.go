// http/server.go
package http

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"github.com/ViniZap4/lumi-notes/auth"
	"github.com/ViniZap4/lumi-notes/domain"
	"github.com/ViniZap4/lumi-notes/service"
)

type Options struct {
	BodyLimit   int
	CORSOrigins string
	Logger      zerolog.Logger
}

type Server struct {
	app  *fiber.App
	svc  *service.Service
	gate *auth.Gate
	log  zerolog.Logger
}

func NewServer(svc *service.Service, gate *auth.Gate, opts Options) *Server {
	s := &Server{svc: svc, gate: gate, log: opts.Logger}

	origins := opts.CORSOrigins
	if origins == "" {
		origins = "*"
	}
	s.app = fiber.New(fiber.Config{
		AppName:               "lumi-notes",
		BodyLimit:             opts.BodyLimit,
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
	})
	s.app.Use(s.logRequests)
	s.app.Use(recover.New())
	s.app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	s.routes()
	return s
}

func (s *Server) routes() {
	s.app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	authGroup := s.app.Group("/auth")
	authGroup.Post("/login", s.handleLogin)
	authGroup.Post("/logout", s.handleLogout)
	authGroup.Get("/verify", s.handleVerify)

	folders := s.app.Group("/folders", s.gate.Middleware())
	folders.Get("/", s.handleListFolders)
	folders.Post("/", s.handleCreateFolder)
	folders.Get("/:id/stats", s.handleFolderStats)
	folders.Get("/:id", s.handleGetFolder)
	folders.Put("/:id", s.handleUpdateFolder)
	folders.Delete("/:id", s.handleDeleteFolder)

	notes := s.app.Group("/notes", s.gate.Middleware())
	notes.Get("/search/global", s.handleSearchNotes)
	notes.Get("/folder/:folderId", s.handleListFolderNotes)
	notes.Post("/folder/:folderId/import", s.handleImportNote)
	notes.Post("/", s.handleCreateNote)
	notes.Get("/:id/export", s.handleExportNote)
	notes.Patch("/:id/pin", s.handleTogglePin)
	notes.Get("/:id", s.handleGetNote)
	notes.Put("/:id", s.handleUpdateNote)
	notes.Delete("/:id", s.handleDeleteNote)
}

// App exposes the fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Listen(addr string) error {
	s.log.Info().Str("addr", addr).Msg("server listening")
	return s.app.Listen(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// handleError turns handler errors into {"message"} responses. Details of
// unexpected errors stay in the log.
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	status, msg := classify(err)
	return c.Status(status).JSON(fiber.Map{"message": msg})
}

func classify(err error) (int, string) {
	var fe *fiber.Error
	var de *domain.Error
	switch {
	case errors.As(err, &de):
		switch de.Kind {
		case domain.KindValidation, domain.KindConflict:
			return fiber.StatusBadRequest, de.Message
		case domain.KindNotFound:
			return fiber.StatusNotFound, de.Message
		}
	case errors.Is(err, auth.ErrMissingPassword):
		return fiber.StatusBadRequest, "Password is required"
	case errors.Is(err, auth.ErrInvalidPassword):
		return fiber.StatusUnauthorized, "Invalid password"
	case errors.Is(err, auth.ErrMissingToken):
		return fiber.StatusUnauthorized, "No token provided"
	case errors.Is(err, auth.ErrExpiredToken):
		return fiber.StatusUnauthorized, "Token expired"
	case errors.Is(err, auth.ErrNoSession):
		return fiber.StatusUnauthorized, "Invalid session"
	case errors.Is(err, auth.ErrInvalidToken):
		return fiber.StatusUnauthorized, "Invalid token"
	case errors.As(err, &fe):
		return fe.Code, fe.Message
	}
	return fiber.StatusInternalServerError, "Server error"
}

// logRequests logs one line per request. Errors are rendered here so the
// logged status is the one the client sees.
func (s *Server) logRequests(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	if err != nil {
		if herr := c.App().ErrorHandler(c, err); herr != nil {
			_ = c.SendStatus(fiber.StatusInternalServerError)
		}
	}

	status := c.Response().StatusCode()
	event := s.log.Info()
	switch {
	case status >= fiber.StatusInternalServerError:
		event = s.log.Error().Err(err)
	case status >= fiber.StatusBadRequest:
		event = s.log.Warn()
	}
	event.
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", status).
		Dur("latency", time.Since(start)).
		Msg("request")
	return nil
}
