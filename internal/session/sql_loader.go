package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"frontend-api/internal/shared"
)

// SQLLoader loads sessions from the session, user and api_key tables.
// The DSN must set parseTime=true so expires scans into a time.Time.
type SQLLoader struct {
	db *sql.DB
}

func NewSQLLoader(db *sql.DB) *SQLLoader {
	return &SQLLoader{db: db}
}

func (l *SQLLoader) LoadSession(ctx context.Context, tokenHash string) (*shared.Session, error) {
	var (
		user    shared.User
		name    sql.NullString
		expires sql.NullTime
	)
	err := l.db.QueryRowContext(ctx, `
	SELECT
	user.id,
	user.email,
	user.name,
	api_key.id,
	session.expires
	FROM session
	INNER JOIN user ON session.user_id = user.id
	INNER JOIN api_key ON api_key.user_id = user.id
	WHERE session.token_hash = ?
	ORDER BY api_key.created_at DESC
	LIMIT 1
	`, tokenHash).Scan(
		&user.ID,
		&user.Email,
		&name,
		&user.APIKey,
		&expires,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query session: %w", err)
	}
	user.Name = name.String

	s := &shared.Session{User: &user}
	if expires.Valid {
		s.Expires = expires.Time
	}
	return s, nil
}
