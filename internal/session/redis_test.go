package session

import (
	"context"
	"fmt"
	"testing"
	"time"

	"photo-gallery/internal/models"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startRedis(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379/tcp")
	require.NoError(t, err)

	return fmt.Sprintf("redis://%s:%s/0", host, port.Port())
}

func TestRedisStore(t *testing.T) {
	if testing.Short() {
		t.Skip("requires docker")
	}
	ctx := context.Background()

	rdb, err := OpenRedis(ctx, startRedis(t))
	require.NoError(t, err)
	defer rdb.Close()

	store := NewRedisStore(rdb)
	now := time.Now().UTC()
	session := &models.Session{
		ID:        "redis-session-id",
		UserID:    7,
		UserAgent: "agent",
		ClientIP:  "10.0.0.1",
		CreatedAt: now,
		ExpiresAt: now.Add(time.Minute),
	}
	require.NoError(t, store.CreateSession(ctx, session))

	ttl, err := rdb.TTL(ctx, "session:redis-session-id").Result()
	require.NoError(t, err)
	require.Greater(t, ttl, time.Duration(0))
	require.LessOrEqual(t, ttl, time.Minute)

	found, err := store.GetSession(ctx, session.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, int64(7), found.UserID)
	require.Equal(t, "agent", found.UserAgent)
	require.WithinDuration(t, session.ExpiresAt, found.ExpiresAt, time.Millisecond)

	require.NoError(t, store.DeleteSession(ctx, session.ID))
	found, err = store.GetSession(ctx, session.ID)
	require.NoError(t, err)
	require.Nil(t, found)

	err = store.CreateSession(ctx, &models.Session{ID: "old", UserID: 1, ExpiresAt: now.Add(-time.Second)})
	require.Error(t, err)

	m, err := NewManager(store, Options{Secret: "s"})
	require.NoError(t, err)
	janitorCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()
	m.RunJanitor(janitorCtx, time.Millisecond) // returns immediately: redis expires keys itself
}
