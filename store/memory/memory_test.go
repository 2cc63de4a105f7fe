package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ViniZap4/lumi-notes/domain"
)

func seed(t *testing.T, s *Store) (*domain.Folder, time.Time) {
	t.Helper()
	now := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	f := &domain.Folder{ID: "f1", Name: "Work", Color: domain.DefaultFolderColor, CreatedAt: now, UpdatedAt: now}
	if err := s.CreateFolder(context.Background(), f); err != nil {
		t.Fatalf("create folder: %v", err)
	}
	return f, now
}

func TestFolderNameUniqueness(t *testing.T) {
	s := New()
	ctx := context.Background()
	f, now := seed(t, s)

	other := &domain.Folder{ID: "f2", Name: "Work", CreatedAt: now}
	if err := s.CreateFolder(ctx, other); !errors.Is(err, domain.ErrDuplicate) {
		t.Fatalf("expected duplicate, got %v", err)
	}
	other.Name = "Home"
	if err := s.CreateFolder(ctx, other); err != nil {
		t.Fatalf("create folder: %v", err)
	}
	other.Name = "Work"
	if err := s.UpdateFolder(ctx, other); !errors.Is(err, domain.ErrDuplicate) {
		t.Fatalf("expected duplicate on rename, got %v", err)
	}

	f.Description = "renamed in place"
	if err := s.UpdateFolder(ctx, f); err != nil {
		t.Fatalf("update folder keeping its own name: %v", err)
	}
}

func TestCreateNoteRequiresFolder(t *testing.T) {
	s := New()
	n := &domain.Note{ID: "n1", FolderID: "missing", Title: "A"}
	if err := s.CreateNote(context.Background(), n); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListNotesPinnedFirstAndPaged(t *testing.T) {
	s := New()
	ctx := context.Background()
	f, now := seed(t, s)

	for i, title := range []string{"alpha", "bravo", "charlie", "delta"} {
		n := &domain.Note{
			ID: title, FolderID: f.ID, Title: title, Content: "x",
			IsPinned:  title == "charlie",
			CreatedAt: now.Add(time.Duration(i) * time.Minute),
		}
		if err := s.CreateNote(ctx, n); err != nil {
			t.Fatalf("create note: %v", err)
		}
	}

	notes, total, err := s.ListNotes(ctx, domain.NoteQuery{FolderID: f.ID, SortBy: domain.SortByTitle, Ascending: true, Page: 1, Limit: 3})
	if err != nil {
		t.Fatalf("list notes: %v", err)
	}
	if total != 4 || len(notes) != 3 {
		t.Fatalf("expected 3 of 4, got %d of %d", len(notes), total)
	}
	want := []string{"charlie", "alpha", "bravo"}
	for i, n := range notes {
		if n.Title != want[i] {
			t.Fatalf("position %d: got %q, want %q", i, n.Title, want[i])
		}
		if n.Folder == nil || n.Folder.Name != "Work" {
			t.Fatalf("folder not populated on %q", n.Title)
		}
	}

	notes, _, _ = s.ListNotes(ctx, domain.NoteQuery{FolderID: f.ID, Page: 2, Limit: 3})
	if len(notes) != 1 {
		t.Fatalf("expected 1 note on page 2, got %d", len(notes))
	}
}

func TestPagePastEndOrNegativeSkip(t *testing.T) {
	s := New()
	ctx := context.Background()
	f, now := seed(t, s)
	s.CreateNote(ctx, &domain.Note{ID: "a", FolderID: f.ID, Title: "milk", CreatedAt: now})

	notes, total, err := s.ListNotes(ctx, domain.NoteQuery{FolderID: f.ID, Page: domain.MaxPage, Limit: domain.MaxLimit})
	if err != nil || total != 1 || len(notes) != 0 {
		t.Fatalf("far page: got %d notes of %d, err %v", len(notes), total, err)
	}
	if got := s.page([]domain.Note{{ID: "a"}}, -10, 5); len(got) != 0 {
		t.Fatalf("negative skip returned %d notes", len(got))
	}
}

func TestSearchNotesRanksByScore(t *testing.T) {
	s := New()
	ctx := context.Background()
	f, now := seed(t, s)

	s.CreateNote(ctx, &domain.Note{ID: "a", FolderID: f.ID, Title: "milk", Content: "buy milk and milk", CreatedAt: now})
	s.CreateNote(ctx, &domain.Note{ID: "b", FolderID: f.ID, Title: "eggs", Content: "milk", CreatedAt: now.Add(time.Hour)})
	s.CreateNote(ctx, &domain.Note{ID: "c", FolderID: f.ID, Title: "bread", Content: "flour", CreatedAt: now})

	notes, total, err := s.SearchNotes(ctx, "MILK", 1, 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if total != 2 || notes[0].ID != "a" || notes[1].ID != "b" {
		t.Fatalf("unexpected ranking: total=%d %+v", total, notes)
	}
}

func TestReturnedNotesAreCopies(t *testing.T) {
	s := New()
	ctx := context.Background()
	f, now := seed(t, s)

	s.CreateNote(ctx, &domain.Note{
		ID: "a", FolderID: f.ID, Title: "t", CreatedAt: now,
		Tags:   []string{"one"},
		Images: []domain.Image{{Filename: "a.png"}},
	})
	got, _ := s.GetNote(ctx, "a")
	got.Tags[0] = "changed"
	got.Images[0].Filename = "changed.png"

	again, _ := s.GetNote(ctx, "a")
	if again.Tags[0] != "one" || again.Images[0].Filename != "a.png" {
		t.Fatalf("store was mutated through a returned note")
	}
}

func TestCountNotesFilter(t *testing.T) {
	s := New()
	ctx := context.Background()
	f, now := seed(t, s)

	s.CreateNote(ctx, &domain.Note{ID: "old", FolderID: f.ID, CreatedAt: now.AddDate(0, 0, -30)})
	s.CreateNote(ctx, &domain.Note{ID: "new", FolderID: f.ID, IsPinned: true, CreatedAt: now})

	tests := []struct {
		name   string
		filter domain.NoteFilter
		want   int
	}{
		{"folder", domain.NoteFilter{FolderID: f.ID}, 2},
		{"pinned", domain.NoteFilter{FolderID: f.ID, PinnedOnly: true}, 1},
		{"recent", domain.NoteFilter{FolderID: f.ID, CreatedSince: now.AddDate(0, 0, -7)}, 1},
		{"other folder", domain.NoteFilter{FolderID: "f9"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.CountNotes(ctx, tt.filter)
			if err != nil || got != tt.want {
				t.Fatalf("got %d (%v), want %d", got, err, tt.want)
			}
		})
	}
}

func TestSessionClear(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, err := s.GetSession(ctx); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected no session, got %v", err)
	}
	s.SaveSession(ctx, &domain.Session{ID: "s", Token: "tok", Authenticated: true})
	s.ClearSessions(ctx)
	got, err := s.GetSession(ctx)
	if err != nil || got.Authenticated || got.Token != "" {
		t.Fatalf("session not cleared: %+v %v", got, err)
	}
}
