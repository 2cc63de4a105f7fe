// service/service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/ViniZap4/lumi-notes/domain"
	"github.com/ViniZap4/lumi-notes/store"
)

const recentWindow = 7 * 24 * time.Hour

type Options struct {
	Logger zerolog.Logger
	// Location interprets client dates that carry no zone.
	Location *time.Location
}

// Service implements folder and note operations on top of a store. It owns
// the date histories and keeps folder note counts in step with the notes.
type Service struct {
	store store.Store
	log   zerolog.Logger
	loc   *time.Location
	now   func() time.Time
}

func New(st store.Store, opts Options) *Service {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		store: st,
		log:   opts.Logger,
		loc:   loc,
		now: func() time.Time {
			return time.Now().UTC().Truncate(time.Millisecond)
		},
	}
}

// Recount stores the real number of notes in the folder and returns it.
// Concurrent recounts of the same folder are last-write-wins.
func (s *Service) Recount(ctx context.Context, folderID string) (int, error) {
	count, err := s.store.CountNotes(ctx, domain.NoteFilter{FolderID: folderID})
	if err != nil {
		return 0, fmt.Errorf("count notes: %w", err)
	}
	if err := s.store.SetNotesCount(ctx, folderID, count); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return count, nil
		}
		return 0, fmt.Errorf("set notes count: %w", err)
	}
	return count, nil
}

func (s *Service) parseDate(value *string) (*time.Time, error) {
	t, err := domain.ParseOptionalDate(value, s.loc)
	if err != nil || t == nil {
		return nil, err
	}
	truncated := t.Truncate(time.Millisecond)
	return &truncated, nil
}

// requireText trims value and checks it is present and within max runes.
func requireText(value, field string, max int) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", domain.Validationf("%s is required", field)
	}
	return value, checkLength(value, field, max)
}

func checkLength(value, field string, max int) error {
	if utf8.RuneCountInString(value) > max {
		return domain.Validationf("%s cannot exceed %d characters", field, max)
	}
	return nil
}

func notFound(err error, msg string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NotFound(msg)
	}
	return err
}
