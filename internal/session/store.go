package session

import (
	"context"

	"photo-gallery/internal/models"
)

// Store persists server-side sessions. Get returns (nil, nil) for a missing
// or expired session. database.Store satisfies it.
type Store interface {
	CreateSession(ctx context.Context, session *models.Session) error
	GetSession(ctx context.Context, id string) (*models.Session, error)
	DeleteSession(ctx context.Context, id string) error
}

type expiredSessionSweeper interface {
	DeleteExpiredSessions(ctx context.Context) (int64, error)
}
