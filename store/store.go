// store/store.go
package store

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/ViniZap4/lumi-notes/domain"
	"github.com/ViniZap4/lumi-notes/store/memory"
	"github.com/ViniZap4/lumi-notes/store/mongo"
	"github.com/ViniZap4/lumi-notes/store/postgres"
)

// FolderStore persists folders. Lookups return domain.ErrNotFound for
// unknown ids; creating or renaming onto an existing name returns
// domain.ErrDuplicate.
type FolderStore interface {
	ListFolders(ctx context.Context) ([]domain.Folder, error)
	GetFolder(ctx context.Context, id string) (*domain.Folder, error)
	FindFolderByName(ctx context.Context, name string) (*domain.Folder, error)
	CreateFolder(ctx context.Context, f *domain.Folder) error
	UpdateFolder(ctx context.Context, f *domain.Folder) error
	SetNotesCount(ctx context.Context, id string, count int) error
	DeleteFolder(ctx context.Context, id string) error
}

// NoteStore persists notes. Returned notes carry their folder reference.
type NoteStore interface {
	GetNote(ctx context.Context, id string) (*domain.Note, error)
	CreateNote(ctx context.Context, n *domain.Note) error
	UpdateNote(ctx context.Context, n *domain.Note) error
	DeleteNote(ctx context.Context, id string) error
	CountNotes(ctx context.Context, filter domain.NoteFilter) (int, error)
	// ListNotes returns one page ordered pinned-first plus the total match count.
	ListNotes(ctx context.Context, q domain.NoteQuery) ([]domain.Note, int, error)
	// SearchNotes runs a full-text search over every folder ordered by
	// relevance, then newest first.
	SearchNotes(ctx context.Context, text string, page, limit int) ([]domain.Note, int, error)
}

// SessionStore keeps the single login session.
type SessionStore interface {
	GetSession(ctx context.Context) (*domain.Session, error)
	SaveSession(ctx context.Context, s *domain.Session) error
	ClearSessions(ctx context.Context) error
}

type Store interface {
	FolderStore
	NoteStore
	SessionStore
	Close(ctx context.Context) error
}

type Options struct {
	URL           string
	MongoDatabase string
	Migrate       bool
	Logger        zerolog.Logger
}

// Open connects to the backend named by the URL scheme.
func Open(ctx context.Context, opts Options) (Store, error) {
	u, err := url.Parse(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	switch u.Scheme {
	case "memory":
		opts.Logger.Warn().Msg("using in-memory store, data is lost on restart")
		return memory.New(), nil
	case "postgres", "postgresql":
		connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()
		return postgres.Open(connectCtx, opts.URL, postgres.Options{Migrate: opts.Migrate, Logger: opts.Logger})
	case "mongodb", "mongodb+srv":
		connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()
		return mongo.Open(connectCtx, opts.URL, mongo.Options{
			Database:      opts.MongoDatabase,
			EnsureIndexes: opts.Migrate,
			Logger:        opts.Logger,
		})
	default:
		return nil, fmt.Errorf("unsupported database url scheme %q", u.Scheme)
	}
}
