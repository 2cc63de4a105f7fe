// store/memory/memory.go
package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/ViniZap4/lumi-notes/domain"
)

// Store keeps everything in process memory. Returned values are copies, so
// callers can mutate them freely.
type Store struct {
	mu      sync.RWMutex
	folders map[string]domain.Folder
	notes   map[string]domain.Note
	session *domain.Session
}

func New() *Store {
	return &Store{
		folders: make(map[string]domain.Folder),
		notes:   make(map[string]domain.Note),
	}
}

func (s *Store) Close(ctx context.Context) error {
	return nil
}

func (s *Store) ListFolders(ctx context.Context) ([]domain.Folder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	folders := make([]domain.Folder, 0, len(s.folders))
	for _, f := range s.folders {
		folders = append(folders, f)
	}
	slices.SortFunc(folders, func(a, b domain.Folder) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return folders, nil
}

func (s *Store) GetFolder(ctx context.Context, id string) (*domain.Folder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.folders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &f, nil
}

func (s *Store) FindFolderByName(ctx context.Context, name string) (*domain.Folder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, f := range s.folders {
		if f.Name == name {
			return &f, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *Store) CreateFolder(ctx context.Context, f *domain.Folder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.nameTaken(f.Name, f.ID) {
		return domain.ErrDuplicate
	}
	s.folders[f.ID] = *f
	return nil
}

func (s *Store) UpdateFolder(ctx context.Context, f *domain.Folder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.folders[f.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if s.nameTaken(f.Name, f.ID) {
		return domain.ErrDuplicate
	}
	updated := *f
	updated.NotesCount = current.NotesCount
	updated.CreatedAt = current.CreatedAt
	s.folders[f.ID] = updated
	return nil
}

func (s *Store) SetNotesCount(ctx context.Context, id string, count int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.folders[id]
	if !ok {
		return domain.ErrNotFound
	}
	f.NotesCount = count
	s.folders[id] = f
	return nil
}

func (s *Store) DeleteFolder(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.folders[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.folders, id)
	return nil
}

func (s *Store) nameTaken(name, exceptID string) bool {
	for id, f := range s.folders {
		if id != exceptID && f.Name == name {
			return true
		}
	}
	return false
}

func (s *Store) GetNote(ctx context.Context, id string) (*domain.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.notes[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	n := cloneNote(stored)
	s.populate(&n)
	return &n, nil
}

func (s *Store) CreateNote(ctx context.Context, n *domain.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.folders[n.FolderID]; !ok {
		return domain.ErrNotFound
	}
	s.notes[n.ID] = cloneNote(*n)
	return nil
}

func (s *Store) UpdateNote(ctx context.Context, n *domain.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.notes[n.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if _, ok := s.folders[n.FolderID]; !ok {
		return domain.ErrNotFound
	}
	updated := cloneNote(*n)
	updated.CreatedAt = current.CreatedAt
	s.notes[n.ID] = updated
	return nil
}

func (s *Store) DeleteNote(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.notes[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.notes, id)
	return nil
}

func (s *Store) CountNotes(ctx context.Context, filter domain.NoteFilter) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, n := range s.notes {
		if filter.FolderID != "" && n.FolderID != filter.FolderID {
			continue
		}
		if filter.PinnedOnly && !n.IsPinned {
			continue
		}
		if !filter.CreatedSince.IsZero() && n.CreatedAt.Before(filter.CreatedSince) {
			continue
		}
		count++
	}
	return count, nil
}

func (s *Store) ListNotes(ctx context.Context, q domain.NoteQuery) ([]domain.Note, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	terms := searchTerms(q.Search)
	var matched []domain.Note
	for _, n := range s.notes {
		if q.FolderID != "" && n.FolderID != q.FolderID {
			continue
		}
		if len(terms) > 0 && score(&n, terms) == 0 {
			continue
		}
		matched = append(matched, n)
	}
	slices.SortFunc(matched, func(a, b domain.Note) int {
		return domain.CompareNotes(&a, &b, q.SortBy, q.Ascending)
	})
	return s.page(matched, q.Skip(), q.Limit), len(matched), nil
}

func (s *Store) SearchNotes(ctx context.Context, text string, page, limit int) ([]domain.Note, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	terms := searchTerms(text)
	type hit struct {
		note  domain.Note
		score int
	}
	var hits []hit
	for _, n := range s.notes {
		if sc := score(&n, terms); sc > 0 {
			hits = append(hits, hit{note: n, score: sc})
		}
	}
	slices.SortFunc(hits, func(a, b hit) int {
		if a.score != b.score {
			return b.score - a.score
		}
		if c := b.note.CreatedAt.Compare(a.note.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.note.ID, b.note.ID)
	})

	notes := make([]domain.Note, len(hits))
	for i, h := range hits {
		notes[i] = h.note
	}
	return s.page(notes, (page-1)*limit, limit), len(notes), nil
}

func (s *Store) page(notes []domain.Note, skip, limit int) []domain.Note {
	if skip < 0 || skip >= len(notes) {
		return []domain.Note{}
	}
	end := min(skip+limit, len(notes))
	out := make([]domain.Note, 0, end-skip)
	for _, n := range notes[skip:end] {
		n = cloneNote(n)
		s.populate(&n)
		out = append(out, n)
	}
	return out
}

func (s *Store) populate(n *domain.Note) {
	if f, ok := s.folders[n.FolderID]; ok {
		n.Folder = &domain.FolderRef{ID: f.ID, Name: f.Name, Color: f.Color}
	}
}

func (s *Store) GetSession(ctx context.Context) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil {
		return nil, domain.ErrNotFound
	}
	sess := *s.session
	return &sess, nil
}

func (s *Store) SaveSession(ctx context.Context, sess *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := *sess
	s.session = &saved
	return nil
}

func (s *Store) ClearSessions(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session != nil {
		s.session.Authenticated = false
		s.session.Token = ""
	}
	return nil
}

func cloneNote(n domain.Note) domain.Note {
	n.Images = slices.Clone(n.Images)
	n.Tags = slices.Clone(n.Tags)
	n.Folder = nil
	return n
}

func searchTerms(text string) []string {
	return strings.Fields(strings.ToLower(text))
}

// score counts term occurrences across title, content and tags. Any single
// matching term is enough for a note to match.
func score(n *domain.Note, terms []string) int {
	if len(terms) == 0 {
		return 0
	}
	haystack := strings.ToLower(n.Title + "\n" + n.Content + "\n" + strings.Join(n.Tags, " "))
	total := 0
	for _, term := range terms {
		total += strings.Count(haystack, term)
	}
	return total
}
