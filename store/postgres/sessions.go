// store/postgres/sessions.go
package postgres

import (
	"context"

	"github.com/ViniZap4/lumi-notes/domain"
)

func (s *Store) GetSession(ctx context.Context) (*domain.Session, error) {
	var sess domain.Session
	err := s.pool.QueryRow(ctx, `
		SELECT id::text, token, authenticated, last_login, created_at, updated_at
		FROM sessions ORDER BY created_at LIMIT 1`).
		Scan(&sess.ID, &sess.Token, &sess.Authenticated, &sess.LastLogin, &sess.CreatedAt, &sess.UpdatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return &sess, nil
}

func (s *Store) SaveSession(ctx context.Context, sess *domain.Session) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO sessions (id, token, authenticated, last_login, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE
		SET token = EXCLUDED.token, authenticated = EXCLUDED.authenticated,
			last_login = EXCLUDED.last_login, updated_at = EXCLUDED.updated_at`,
		sess.ID, sess.Token, sess.Authenticated, sess.LastLogin, sess.CreatedAt, sess.UpdatedAt)
	return translate(err)
}

func (s *Store) ClearSessions(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `UPDATE sessions SET authenticated = FALSE, token = '', updated_at = now()`)
	return err
}
