// service/folders.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ViniZap4/lumi-notes/domain"
)

const (
	msgFolderNotFound  = "Folder not found"
	msgFolderExists    = "Folder with this name already exists"
	msgFolderHasNotes  = "Cannot delete folder that contains notes. Please move or delete all notes first."
	msgFolderNameField = "Folder name"
)

// ListFolders returns every folder, newest first, with recounted notes.
func (s *Service) ListFolders(ctx context.Context) ([]domain.Folder, error) {
	folders, err := s.store.ListFolders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	for i := range folders {
		count, err := s.Recount(ctx, folders[i].ID)
		if err != nil {
			return nil, err
		}
		folders[i].NotesCount = count
	}
	return folders, nil
}

func (s *Service) GetFolder(ctx context.Context, id string) (*domain.Folder, error) {
	f, err := s.store.GetFolder(ctx, id)
	if err != nil {
		return nil, notFound(err, msgFolderNotFound)
	}
	if f.NotesCount, err = s.Recount(ctx, id); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *Service) CreateFolder(ctx context.Context, in FolderInput) (*domain.Folder, error) {
	var name string
	if in.Name != nil {
		name = *in.Name
	}
	name, err := requireText(name, msgFolderNameField, domain.MaxFolderNameLength)
	if err != nil {
		return nil, err
	}
	if err := s.checkNameFree(ctx, name, ""); err != nil {
		return nil, err
	}
	created, err := s.parseDate(in.CustomCreatedAt)
	if err != nil {
		return nil, err
	}

	now := s.now()
	f := &domain.Folder{
		ID:        uuid.NewString(),
		Name:      name,
		Color:     domain.DefaultFolderColor,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := applyFolderDetails(f, in); err != nil {
		return nil, err
	}
	f.RecordCreated(created, now)

	if err := s.store.CreateFolder(ctx, f); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.Validation(msgFolderExists)
		}
		return nil, fmt.Errorf("create folder: %w", err)
	}
	s.log.Info().Str("folder", f.ID).Str("name", f.Name).Msg("folder created")
	return f, nil
}

// UpdateFolder applies the present fields of in. A created-date override is
// recorded only when it moves the main created date by more than the
// tolerance.
func (s *Service) UpdateFolder(ctx context.Context, id string, in FolderInput) (*domain.Folder, error) {
	f, err := s.store.GetFolder(ctx, id)
	if err != nil {
		return nil, notFound(err, msgFolderNotFound)
	}

	if in.Name != nil {
		name, err := requireText(*in.Name, msgFolderNameField, domain.MaxFolderNameLength)
		if err != nil {
			return nil, err
		}
		if name != f.Name {
			if err := s.checkNameFree(ctx, name, f.ID); err != nil {
				return nil, err
			}
		}
		f.Name = name
	}
	if err := applyFolderDetails(f, in); err != nil {
		return nil, err
	}
	created, err := s.parseDate(in.CustomCreatedAt)
	if err != nil {
		return nil, err
	}

	now := s.now()
	f.RecordCreated(created, now)
	f.UpdatedAt = now

	if err := s.store.UpdateFolder(ctx, f); err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicate):
			return nil, domain.Validation(msgFolderExists)
		case errors.Is(err, domain.ErrNotFound):
			return nil, domain.NotFound(msgFolderNotFound)
		}
		return nil, fmt.Errorf("update folder: %w", err)
	}
	if f.NotesCount, err = s.Recount(ctx, id); err != nil {
		return nil, err
	}
	return f, nil
}

// DeleteFolder removes an empty folder. Folders that still own notes are a
// conflict.
func (s *Service) DeleteFolder(ctx context.Context, id string) error {
	count, err := s.store.CountNotes(ctx, domain.NoteFilter{FolderID: id})
	if err != nil {
		return fmt.Errorf("count notes: %w", err)
	}
	if count > 0 {
		return domain.Conflict(msgFolderHasNotes)
	}

	err = s.store.DeleteFolder(ctx, id)
	switch {
	case err == nil:
		s.log.Info().Str("folder", id).Msg("folder deleted")
		return nil
	case errors.Is(err, domain.ErrReferenced):
		return domain.Conflict(msgFolderHasNotes)
	case errors.Is(err, domain.ErrNotFound):
		return domain.NotFound(msgFolderNotFound)
	default:
		return fmt.Errorf("delete folder: %w", err)
	}
}

func (s *Service) FolderStats(ctx context.Context, id string) (*domain.FolderStats, error) {
	f, err := s.store.GetFolder(ctx, id)
	if err != nil {
		return nil, notFound(err, msgFolderNotFound)
	}

	stats := &domain.FolderStats{LastModified: f.UpdatedAt}
	filters := []struct {
		dst    *int
		filter domain.NoteFilter
	}{
		{&stats.TotalNotes, domain.NoteFilter{FolderID: id}},
		{&stats.PinnedNotes, domain.NoteFilter{FolderID: id, PinnedOnly: true}},
		{&stats.RecentNotes, domain.NoteFilter{FolderID: id, CreatedSince: s.now().Add(-recentWindow)}},
	}
	for _, c := range filters {
		if *c.dst, err = s.store.CountNotes(ctx, c.filter); err != nil {
			return nil, fmt.Errorf("count notes: %w", err)
		}
	}
	return stats, nil
}

func (s *Service) checkNameFree(ctx context.Context, name, exceptID string) error {
	existing, err := s.store.FindFolderByName(ctx, name)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("find folder: %w", err)
	case existing.ID != exceptID:
		return domain.Validation(msgFolderExists)
	}
	return nil
}

func applyFolderDetails(f *domain.Folder, in FolderInput) error {
	if in.Description != nil {
		desc := strings.TrimSpace(*in.Description)
		if err := checkLength(desc, "Folder description", domain.MaxFolderDescriptionLength); err != nil {
			return err
		}
		f.Description = desc
	}
	if in.Color != nil {
		f.Color = strings.TrimSpace(*in.Color)
		if f.Color == "" {
			f.Color = domain.DefaultFolderColor
		}
	}
	return nil
}
