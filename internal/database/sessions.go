package database

import (
	"context"
	"errors"

	"photo-gallery/internal/models"

	"github.com/jackc/pgx/v5"
)

func (q *Queries) CreateSession(ctx context.Context, session *models.Session) error {
	query := `
		INSERT INTO sessions (id, user_id, user_agent, client_ip, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := q.db.Exec(ctx, query,
		session.ID,
		session.UserID,
		session.UserAgent,
		session.ClientIP,
		session.ExpiresAt,
		session.CreatedAt,
	)
	return err
}

func (q *Queries) GetSession(ctx context.Context, id string) (*models.Session, error) {
	query := `
		SELECT id, user_id, user_agent, client_ip, expires_at, created_at
		FROM sessions
		WHERE id = $1 AND expires_at > NOW()
	`
	var session models.Session
	err := q.db.QueryRow(ctx, query, id).Scan(
		&session.ID,
		&session.UserID,
		&session.UserAgent,
		&session.ClientIP,
		&session.ExpiresAt,
		&session.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (q *Queries) DeleteSession(ctx context.Context, id string) error {
	query := `DELETE FROM sessions WHERE id = $1`
	_, err := q.db.Exec(ctx, query, id)
	return err
}

func (q *Queries) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	query := `DELETE FROM sessions WHERE expires_at <= NOW()`
	res, err := q.db.Exec(ctx, query)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected(), nil
}
