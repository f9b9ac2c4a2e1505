package database

import (
	"context"
	"testing"
	"time"

	"photo-gallery/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestSessionLifecycle(t *testing.T) {
	forEachStore(t, func(t *testing.T, store Store) {
		ctx := context.Background()
		owner := userID(t, store, createRandomUser(t, store))
		now := time.Now().UTC().Truncate(time.Second)

		session := &models.Session{
			ID:        uuid.NewString(),
			UserID:    owner,
			UserAgent: "test-agent",
			ClientIP:  "127.0.0.1",
			CreatedAt: now,
			ExpiresAt: now.Add(time.Hour),
		}
		require.NoError(t, store.CreateSession(ctx, session))

		found, err := store.GetSession(ctx, session.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		require.Equal(t, owner, found.UserID)
		require.Equal(t, "test-agent", found.UserAgent)
		require.WithinDuration(t, session.ExpiresAt, found.ExpiresAt, time.Second)

		require.NoError(t, store.DeleteSession(ctx, session.ID))

		found, err = store.GetSession(ctx, session.ID)
		require.NoError(t, err)
		require.Nil(t, found)
	})
}

func TestExpiredSessions(t *testing.T) {
	forEachStore(t, func(t *testing.T, store Store) {
		ctx := context.Background()
		owner := userID(t, store, createRandomUser(t, store))
		now := time.Now().UTC()

		expired := &models.Session{
			ID:        uuid.NewString(),
			UserID:    owner,
			CreatedAt: now.Add(-2 * time.Hour),
			ExpiresAt: now.Add(-time.Hour),
		}
		require.NoError(t, store.CreateSession(ctx, expired))

		found, err := store.GetSession(ctx, expired.ID)
		require.NoError(t, err)
		require.Nil(t, found, "expired session must not be returned")

		removed, err := store.DeleteExpiredSessions(ctx)
		require.NoError(t, err)
		require.GreaterOrEqual(t, removed, int64(1))
	})
}
