// store/postgres/folders.go
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ViniZap4/lumi-notes/domain"
)

const folderColumns = `id::text, name, description, color, notes_count, created_dates, created_at, updated_at`

func scanFolder(row pgx.Row) (*domain.Folder, error) {
	var (
		f       domain.Folder
		created []domain.DateEntry
	)
	err := row.Scan(&f.ID, &f.Name, &f.Description, &f.Color, &f.NotesCount, &created, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, translate(err)
	}
	f.CreatedDates = domain.RestoreHistory(created)
	return &f, nil
}

func (s *Store) ListFolders(ctx context.Context) ([]domain.Folder, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+folderColumns+` FROM folders ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	folders := []domain.Folder{}
	for rows.Next() {
		f, err := scanFolder(rows)
		if err != nil {
			return nil, err
		}
		folders = append(folders, *f)
	}
	return folders, rows.Err()
}

func (s *Store) GetFolder(ctx context.Context, id string) (*domain.Folder, error) {
	return scanFolder(s.pool.QueryRow(ctx, `SELECT `+folderColumns+` FROM folders WHERE id = $1`, id))
}

func (s *Store) FindFolderByName(ctx context.Context, name string) (*domain.Folder, error) {
	return scanFolder(s.pool.QueryRow(ctx, `SELECT `+folderColumns+` FROM folders WHERE name = $1`, name))
}

func (s *Store) CreateFolder(ctx context.Context, f *domain.Folder) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO folders (id, name, description, color, notes_count, created_dates, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		f.ID, f.Name, f.Description, f.Color, f.NotesCount, f.CreatedDates.Entries(), f.CreatedAt, f.UpdatedAt)
	return translate(err)
}

// UpdateFolder saves the editable fields. notes_count is owned by
// SetNotesCount and is left alone.
func (s *Store) UpdateFolder(ctx context.Context, f *domain.Folder) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE folders
		SET name = $2, description = $3, color = $4, created_dates = $5, updated_at = $6
		WHERE id = $1`,
		f.ID, f.Name, f.Description, f.Color, f.CreatedDates.Entries(), f.UpdatedAt)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store) SetNotesCount(ctx context.Context, id string, count int) error {
	tag, err := s.pool.Exec(ctx, `UPDATE folders SET notes_count = $2 WHERE id = $1`, id, count)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteFolder(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM folders WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return domain.ErrReferenced
		}
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
