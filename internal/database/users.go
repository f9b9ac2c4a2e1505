package database

import (
	"context"
	"errors"

	"photo-gallery/internal/models"

	"github.com/jackc/pgx/v5"
)

const userColumns = `id, username, email, password_hash, created_at`

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (*models.User, error) {
	query := `
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING ` + userColumns

	var user models.User
	err := q.db.QueryRow(ctx, query, arg.Username, arg.Email, arg.PasswordHash).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, translatePgError(err)
	}

	return &user, nil
}

func (q *Queries) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return q.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (q *Queries) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return q.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return q.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (q *Queries) getUser(ctx context.Context, query string, arg interface{}) (*models.User, error) {
	var user models.User

	err := q.db.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}
