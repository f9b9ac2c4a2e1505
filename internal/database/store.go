package database

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"photo-gallery/internal/config"
	"photo-gallery/internal/models"
)

//go:embed schema/*.sql
var schemaFS embed.FS

var (
	ErrUsernameTaken = errors.New("username already exists")
	ErrEmailTaken    = errors.New("email already exists")
)

type CreateUserParams struct {
	Username     string
	Email        string
	PasswordHash string
}

type CreatePhotoParams struct {
	Filename         string
	OriginalFilename string
	Description      string
	UserID           int64
}

// Querier is the typed repository used by the rest of the application.
// Lookups return (nil, nil) when the row does not exist.
type Querier interface {
	CreateUser(ctx context.Context, arg CreateUserParams) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	CreatePhoto(ctx context.Context, arg CreatePhotoParams) (*models.Photo, error)
	GetPhotoByID(ctx context.Context, id int64) (*models.Photo, error)
	ListPhotosByOwner(ctx context.Context, ownerID int64) ([]models.Photo, error)
	DeletePhoto(ctx context.Context, id int64, ownerID int64) (bool, error)

	CreateSession(ctx context.Context, session *models.Session) error
	GetSession(ctx context.Context, id string) (*models.Session, error)
	DeleteSession(ctx context.Context, id string) error
	DeleteExpiredSessions(ctx context.Context) (int64, error)
}

type Store interface {
	Querier
	ExecTx(ctx context.Context, fn func(Querier) error) error
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}

// Open connects to the configured engine. The schema is not applied; call
// Migrate for that.
func Open(ctx context.Context, cfg config.DBConfig) (Store, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return OpenPostgres(ctx, cfg.Source)
	case config.DriverSQLite:
		return OpenSQLite(ctx, cfg.Source)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func readSchema(name string) (string, error) {
	b, err := schemaFS.ReadFile("schema/" + name)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
