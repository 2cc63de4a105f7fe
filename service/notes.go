// service/notes.go
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ViniZap4/lumi-notes/domain"
)

const (
	msgNoteNotFound     = "Note not found"
	msgSearchRequired   = "Search query is required"
	msgFolderIDRequired = "Folder ID is required"
)

// ListFolderNotes returns one page of a folder's notes, pinned first.
func (s *Service) ListFolderNotes(ctx context.Context, q domain.NoteQuery) (domain.NotePage, error) {
	notes, total, err := s.store.ListNotes(ctx, q)
	if err != nil {
		return domain.NotePage{}, fmt.Errorf("list notes: %w", err)
	}
	return domain.NewNotePage(notes, total, q.Page, q.Limit), nil
}

// SearchNotes runs a full-text search over every folder, best match first.
// Pin status does not affect the order.
func (s *Service) SearchNotes(ctx context.Context, text string, page, limit int) (domain.NotePage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.NotePage{}, domain.Validation(msgSearchRequired)
	}
	notes, total, err := s.store.SearchNotes(ctx, text, page, limit)
	if err != nil {
		return domain.NotePage{}, fmt.Errorf("search notes: %w", err)
	}
	return domain.NewNotePage(notes, total, page, limit), nil
}

func (s *Service) GetNote(ctx context.Context, id string) (*domain.Note, error) {
	n, err := s.store.GetNote(ctx, id)
	if err != nil {
		return nil, notFound(err, msgNoteNotFound)
	}
	return n, nil
}

// CreateNote validates in, stores the note and recounts its folder.
func (s *Service) CreateNote(ctx context.Context, in NoteInput) (*domain.Note, error) {
	var title, content, folderID string
	if in.Title != nil {
		title = *in.Title
	}
	if in.Content != nil {
		content = *in.Content
	}
	if in.FolderID != nil {
		folderID = strings.TrimSpace(*in.FolderID)
	}

	n := &domain.Note{Tags: []string{}}
	var err error
	if n.Title, err = requireText(title, "Note title", domain.MaxNoteTitleLength); err != nil {
		return nil, err
	}
	if n.Content, err = requireText(content, "Note content", domain.MaxNoteContentLength); err != nil {
		return nil, err
	}
	if folderID == "" {
		return nil, domain.Validation(msgFolderIDRequired)
	}
	if _, err := s.store.GetFolder(ctx, folderID); err != nil {
		return nil, notFound(err, msgFolderNotFound)
	}
	n.FolderID = folderID

	created, err := s.parseDate(in.CustomCreatedAt)
	if err != nil {
		return nil, err
	}
	modified, err := s.parseDate(in.CustomLastModified)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if in.Tags != nil {
		n.Tags = *in.Tags
	}
	if in.IsPinned != nil {
		n.IsPinned = bool(*in.IsPinned)
	}
	if n.Images, err = processImages(in.Images, now); err != nil {
		return nil, err
	}

	n.ID = uuid.NewString()
	n.CreatedAt = now
	n.RecordCreated(created, now)
	n.RecordModified(modified, now)

	if err := s.store.CreateNote(ctx, n); err != nil {
		return nil, notFound(err, msgFolderNotFound)
	}
	if _, err := s.Recount(ctx, n.FolderID); err != nil {
		return nil, err
	}
	s.log.Info().Str("note", n.ID).Str("folder", n.FolderID).Msg("note created")
	return s.GetNote(ctx, n.ID)
}

// UpdateNote applies the present fields of in. Moving the note to another
// folder recounts both folders.
func (s *Service) UpdateNote(ctx context.Context, id string, in NoteInput) (*domain.Note, error) {
	n, err := s.store.GetNote(ctx, id)
	if err != nil {
		return nil, notFound(err, msgNoteNotFound)
	}
	previousFolder := n.FolderID

	if in.Title != nil {
		if n.Title, err = requireText(*in.Title, "Note title", domain.MaxNoteTitleLength); err != nil {
			return nil, err
		}
	}
	if in.Content != nil {
		if n.Content, err = requireText(*in.Content, "Note content", domain.MaxNoteContentLength); err != nil {
			return nil, err
		}
	}
	if in.FolderID != nil {
		target := strings.TrimSpace(*in.FolderID)
		if target == "" {
			return nil, domain.Validation(msgFolderIDRequired)
		}
		if target != n.FolderID {
			if _, err := s.store.GetFolder(ctx, target); err != nil {
				return nil, notFound(err, msgFolderNotFound)
			}
			n.FolderID = target
		}
	}

	created, err := s.parseDate(in.CustomCreatedAt)
	if err != nil {
		return nil, err
	}
	modified, err := s.parseDate(in.CustomLastModified)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if in.Tags != nil {
		n.Tags = *in.Tags
	}
	if in.IsPinned != nil {
		n.IsPinned = bool(*in.IsPinned)
	}
	n.Images = removeImages(n.Images, in.RemoveImages)
	added, err := processImages(in.Images, now)
	if err != nil {
		return nil, err
	}
	n.Images = append(n.Images, added...)

	n.RecordCreated(created, now)
	n.RecordModified(modified, now)

	if err := s.store.UpdateNote(ctx, n); err != nil {
		return nil, notFound(err, msgNoteNotFound)
	}
	if n.FolderID != previousFolder {
		for _, folderID := range []string{previousFolder, n.FolderID} {
			if _, err := s.Recount(ctx, folderID); err != nil {
				return nil, err
			}
		}
		s.log.Info().Str("note", id).Str("from", previousFolder).Str("to", n.FolderID).Msg("note moved")
	}
	return s.GetNote(ctx, id)
}

func (s *Service) DeleteNote(ctx context.Context, id string) error {
	n, err := s.store.GetNote(ctx, id)
	if err != nil {
		return notFound(err, msgNoteNotFound)
	}
	if err := s.store.DeleteNote(ctx, id); err != nil {
		return notFound(err, msgNoteNotFound)
	}
	if _, err := s.Recount(ctx, n.FolderID); err != nil {
		return err
	}
	s.log.Info().Str("note", id).Str("folder", n.FolderID).Msg("note deleted")
	return nil
}

// TogglePin flips the pin flag. It counts as a modification.
func (s *Service) TogglePin(ctx context.Context, id string) (*domain.Note, error) {
	n, err := s.store.GetNote(ctx, id)
	if err != nil {
		return nil, notFound(err, msgNoteNotFound)
	}
	n.IsPinned = !n.IsPinned
	n.RecordModified(nil, s.now())
	if err := s.store.UpdateNote(ctx, n); err != nil {
		return nil, notFound(err, msgNoteNotFound)
	}
	return s.GetNote(ctx, id)
}
