// store/postgres/notes.go
package postgres

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/ViniZap4/lumi-notes/domain"
)

const noteColumns = `n.id::text, n.folder_id::text, n.title, n.content, n.images, n.tags, n.is_pinned,
	n.created_dates, n.modified_dates, n.last_modified, n.created_at, n.updated_at, f.name, f.color`

const noteFrom = ` FROM notes n JOIN folders f ON f.id = n.folder_id`

func scanNote(row pgx.Row) (*domain.Note, error) {
	var (
		n                 domain.Note
		created, modified []domain.DateEntry
		ref               domain.FolderRef
	)
	err := row.Scan(&n.ID, &n.FolderID, &n.Title, &n.Content, &n.Images, &n.Tags, &n.IsPinned,
		&created, &modified, &n.LastModified, &n.CreatedAt, &n.UpdatedAt, &ref.Name, &ref.Color)
	if err != nil {
		return nil, translate(err)
	}
	ref.ID = n.FolderID
	n.Folder = &ref
	n.CreatedDates = domain.RestoreHistory(created)
	n.ModifiedDates = domain.RestoreHistory(modified)
	return &n, nil
}

func collectNotes(rows pgx.Rows) ([]domain.Note, error) {
	defer rows.Close()
	notes := []domain.Note{}
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, *n)
	}
	return notes, rows.Err()
}

func (s *Store) GetNote(ctx context.Context, id string) (*domain.Note, error) {
	return scanNote(s.pool.QueryRow(ctx, `SELECT `+noteColumns+noteFrom+` WHERE n.id = $1`, id))
}

func (s *Store) CreateNote(ctx context.Context, n *domain.Note) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO notes (id, folder_id, title, content, images, tags, tags_text, is_pinned,
			created_dates, modified_dates, last_modified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		n.ID, n.FolderID, n.Title, n.Content, images(n), tags(n), strings.Join(n.Tags, " "), n.IsPinned,
		n.CreatedDates.Entries(), n.ModifiedDates.Entries(), n.LastModified, n.CreatedAt, n.UpdatedAt)
	return translate(err)
}

func (s *Store) UpdateNote(ctx context.Context, n *domain.Note) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE notes
		SET folder_id = $2, title = $3, content = $4, images = $5, tags = $6, tags_text = $7,
			is_pinned = $8, created_dates = $9, modified_dates = $10, last_modified = $11, updated_at = $12
		WHERE id = $1`,
		n.ID, n.FolderID, n.Title, n.Content, images(n), tags(n), strings.Join(n.Tags, " "),
		n.IsPinned, n.CreatedDates.Entries(), n.ModifiedDates.Entries(), n.LastModified, n.UpdatedAt)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteNote(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store) CountNotes(ctx context.Context, filter domain.NoteFilter) (int, error) {
	w := noteFilterWhere(filter)
	var count int
	err := s.pool.QueryRow(ctx, `SELECT count(*) FROM notes n`+w.String(), w.args...).Scan(&count)
	return count, err
}

func (s *Store) ListNotes(ctx context.Context, q domain.NoteQuery) ([]domain.Note, int, error) {
	w := noteFilterWhere(domain.NoteFilter{FolderID: q.FolderID})
	if q.Search != "" {
		query := tsQuery(q.Search)
		if query == "" {
			return []domain.Note{}, 0, nil
		}
		w.add("n.search @@ to_tsquery('english', ?)", query)
	}

	var total int
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM notes n`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	stmt := `SELECT ` + noteColumns + noteFrom + w.String() +
		` ORDER BY ` + orderClause(q.SortBy, q.Ascending) +
		` LIMIT ` + w.placeholder(1) + ` OFFSET ` + w.placeholder(2)
	rows, err := s.pool.Query(ctx, stmt, append(w.args, q.Limit, q.Skip())...)
	if err != nil {
		return nil, 0, err
	}
	notes, err := collectNotes(rows)
	if err != nil {
		return nil, 0, err
	}
	return notes, total, nil
}

func (s *Store) SearchNotes(ctx context.Context, text string, page, limit int) ([]domain.Note, int, error) {
	query := tsQuery(text)
	if query == "" {
		return []domain.Note{}, 0, nil
	}

	var total int
	err := s.pool.QueryRow(ctx,
		`SELECT count(*) FROM notes n WHERE n.search @@ to_tsquery('english', $1)`, query).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := s.pool.Query(ctx, `
		SELECT `+noteColumns+noteFrom+`
		WHERE n.search @@ to_tsquery('english', $1)
		ORDER BY ts_rank(n.search, to_tsquery('english', $1)) DESC, n.created_at DESC, n.id ASC
		LIMIT $2 OFFSET $3`, query, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	notes, err := collectNotes(rows)
	if err != nil {
		return nil, 0, err
	}
	return notes, total, nil
}

func images(n *domain.Note) []domain.Image {
	if n.Images == nil {
		return []domain.Image{}
	}
	return n.Images
}

func tags(n *domain.Note) []string {
	if n.Tags == nil {
		return []string{}
	}
	return n.Tags
}
