package mongo

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ViniZap4/lumi-notes/domain"
)

// openTestStore connects to NOTES_TEST_MONGO_URL using a throwaway database.
func openTestStore(t *testing.T) *Store {
	t.Helper()
	uri := os.Getenv("NOTES_TEST_MONGO_URL")
	if uri == "" {
		t.Skip("NOTES_TEST_MONGO_URL not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s, err := Open(ctx, uri, Options{
		Database:      "notesapp_test_" + uuid.NewString()[:8],
		EnsureIndexes: true,
		Logger:        zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		s.db.Drop(context.Background())
		s.Close(context.Background())
	})
	return s
}

func TestMongoFolderAndNoteRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	folder := &domain.Folder{ID: uuid.NewString(), Name: "Work", Color: domain.DefaultFolderColor, CreatedAt: now, UpdatedAt: now}
	folder.RecordCreated(nil, now)
	if err := s.CreateFolder(ctx, folder); err != nil {
		t.Fatalf("create folder: %v", err)
	}
	dup := *folder
	dup.ID = uuid.NewString()
	if err := s.CreateFolder(ctx, &dup); !errors.Is(err, domain.ErrDuplicate) {
		t.Fatalf("expected duplicate error, got %v", err)
	}

	note := &domain.Note{
		ID: uuid.NewString(), FolderID: folder.ID, Title: "Groceries", Content: "buy apples and pears",
		Tags: []string{"home"}, CreatedAt: now,
	}
	note.RecordCreated(nil, now)
	note.RecordModified(nil, now)
	if err := s.CreateNote(ctx, note); err != nil {
		t.Fatalf("create note: %v", err)
	}

	got, err := s.GetNote(ctx, note.ID)
	if err != nil {
		t.Fatalf("get note: %v", err)
	}
	if got.Folder == nil || got.Folder.Name != "Work" {
		t.Fatalf("folder not populated: %+v", got.Folder)
	}
	if got.CreatedDates.Len() != 1 || !got.MainLastModified().Equal(now) {
		t.Fatalf("histories not restored: %+v", got)
	}

	notes, total, err := s.SearchNotes(ctx, "groceries", 1, 10)
	if err != nil {
		t.Fatalf("search notes: %v", err)
	}
	if total != 1 || len(notes) != 1 {
		t.Fatalf("expected one hit, got %d/%d", len(notes), total)
	}

	if err := s.DeleteFolder(ctx, folder.ID); !errors.Is(err, domain.ErrReferenced) {
		t.Fatalf("expected referenced error, got %v", err)
	}
	if err := s.DeleteNote(ctx, note.ID); err != nil {
		t.Fatalf("delete note: %v", err)
	}
	if err := s.DeleteFolder(ctx, folder.ID); err != nil {
		t.Fatalf("delete folder: %v", err)
	}
}

func TestMongoSessionLifecycle(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.GetSession(ctx); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected no session, got %v", err)
	}
	now := time.Now().UTC().Truncate(time.Millisecond)
	sess := &domain.Session{ID: "default", Token: "tok", Authenticated: true, LastLogin: now, CreatedAt: now, UpdatedAt: now}
	if err := s.SaveSession(ctx, sess); err != nil {
		t.Fatalf("save session: %v", err)
	}
	if err := s.ClearSessions(ctx); err != nil {
		t.Fatalf("clear sessions: %v", err)
	}
	got, err := s.GetSession(ctx)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if got.Authenticated || got.Token != "" {
		t.Fatalf("session not cleared: %+v", got)
	}
}
