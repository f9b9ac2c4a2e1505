package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"photo-gallery/internal/models"

	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
)

// SQLiteStore is the single-file engine used for local development and
// tests.
type SQLiteStore struct {
	db *sqlx.DB
	*sqliteQueries
}

type sqliteQueries struct {
	db sqlx.ExtContext
}

func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	dsn := path
	if !strings.Contains(dsn, "?") {
		dsn += "?_foreign_keys=on&_busy_timeout=5000"
	}

	db, err := sqlx.ConnectContext(ctx, "sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to open sqlite database: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	return &SQLiteStore{db: db, sqliteQueries: &sqliteQueries{db: db}}, nil
}

func (s *SQLiteStore) ExecTx(ctx context.Context, fn func(Querier) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(&sqliteQueries{db: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return fmt.Errorf("tx err: %v, rb err: %v", err, rbErr)
		}
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	schema, err := readSchema("sqlite.sql")
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, schema)
	return err
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) DB() *sqlx.DB {
	return s.db
}

func translateSQLiteError(err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		switch {
		case strings.Contains(sqliteErr.Error(), "users.username"):
			return ErrUsernameTaken
		case strings.Contains(sqliteErr.Error(), "users.email"):
			return ErrEmailTaken
		}
	}
	return err
}

func (q *sqliteQueries) CreateUser(ctx context.Context, arg CreateUserParams) (*models.User, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO users (username, email, password_hash, created_at) VALUES (?, ?, ?, ?)`,
		arg.Username, arg.Email, arg.PasswordHash, time.Now().UTC(),
	)
	if err != nil {
		return nil, translateSQLiteError(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return q.GetUserByID(ctx, id)
}

func (q *sqliteQueries) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return q.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

func (q *sqliteQueries) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return q.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
}

func (q *sqliteQueries) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return q.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
}

func (q *sqliteQueries) getUser(ctx context.Context, query string, arg interface{}) (*models.User, error) {
	var user models.User
	if err := sqlx.GetContext(ctx, q.db, &user, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (q *sqliteQueries) CreatePhoto(ctx context.Context, arg CreatePhotoParams) (*models.Photo, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO photos (filename, original_filename, description, user_id, uploaded_at) VALUES (?, ?, ?, ?, ?)`,
		arg.Filename, arg.OriginalFilename, arg.Description, arg.UserID, time.Now().UTC(),
	)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return q.GetPhotoByID(ctx, id)
}

func (q *sqliteQueries) GetPhotoByID(ctx context.Context, id int64) (*models.Photo, error) {
	var photo models.Photo
	err := sqlx.GetContext(ctx, q.db, &photo, `SELECT `+photoColumns+` FROM photos WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &photo, nil
}

func (q *sqliteQueries) ListPhotosByOwner(ctx context.Context, ownerID int64) ([]models.Photo, error) {
	photos := []models.Photo{}
	err := sqlx.SelectContext(ctx, q.db, &photos,
		`SELECT `+photoColumns+` FROM photos WHERE user_id = ? ORDER BY id ASC`, ownerID)
	if err != nil {
		return nil, err
	}
	return photos, nil
}

func (q *sqliteQueries) DeletePhoto(ctx context.Context, id int64, ownerID int64) (bool, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM photos WHERE id = ? AND user_id = ?`, id, ownerID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (q *sqliteQueries) CreateSession(ctx context.Context, session *models.Session) error {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO sessions (id, user_id, user_agent, client_ip, expires_at, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		session.ID, session.UserID, session.UserAgent, session.ClientIP,
		session.ExpiresAt.UTC(), session.CreatedAt.UTC(),
	)
	return err
}

func (q *sqliteQueries) GetSession(ctx context.Context, id string) (*models.Session, error) {
	var session models.Session
	err := sqlx.GetContext(ctx, q.db, &session,
		`SELECT id, user_id, user_agent, client_ip, expires_at, created_at FROM sessions WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if session.Expired(time.Now()) {
		return nil, nil
	}
	return &session, nil
}

func (q *sqliteQueries) DeleteSession(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	return err
}

func (q *sqliteQueries) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= ?`, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
