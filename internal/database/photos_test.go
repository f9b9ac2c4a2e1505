package database

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func createTestPhoto(t *testing.T, q Querier, ownerID int64, original string) int64 {
	t.Helper()
	photo, err := q.CreatePhoto(context.Background(), CreatePhotoParams{
		Filename:         uuid.NewString() + ".png",
		OriginalFilename: original,
		UserID:           ownerID,
	})
	require.NoError(t, err)
	return photo.ID
}

func userID(t *testing.T, q Querier, params *CreateUserParams) int64 {
	t.Helper()
	user, err := q.GetUserByUsername(context.Background(), params.Username)
	require.NoError(t, err)
	require.NotNil(t, user)
	return user.ID
}

func TestCreateAndGetPhoto(t *testing.T) {
	forEachStore(t, func(t *testing.T, store Store) {
		ctx := context.Background()
		owner := userID(t, store, createRandomUser(t, store))

		created, err := store.CreatePhoto(ctx, CreatePhotoParams{
			Filename:         "0b9c2a7e-1111-4c3e-9d3a-2f1a9e0f7b10.png",
			OriginalFilename: "cat.png",
			Description:      "a cat",
			UserID:           owner,
		})
		require.NoError(t, err)
		require.NotZero(t, created.ID)
		require.Equal(t, "a cat", created.Description)
		require.False(t, created.UploadedAt.IsZero())

		found, err := store.GetPhotoByID(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		require.Equal(t, created.Filename, found.Filename)
		require.Equal(t, "cat.png", found.OriginalFilename)
		require.Equal(t, owner, found.UserID)

		missing, err := store.GetPhotoByID(ctx, created.ID+100000)
		require.NoError(t, err)
		require.Nil(t, missing)
	})
}

func TestListPhotosByOwner(t *testing.T) {
	forEachStore(t, func(t *testing.T, store Store) {
		ctx := context.Background()
		alice := userID(t, store, createRandomUser(t, store))
		bob := userID(t, store, createRandomUser(t, store))

		first := createTestPhoto(t, store, alice, "a1.png")
		second := createTestPhoto(t, store, alice, "a2.png")
		createTestPhoto(t, store, bob, "b1.png")

		photos, err := store.ListPhotosByOwner(ctx, alice)
		require.NoError(t, err)
		require.Len(t, photos, 2)
		require.Equal(t, first, photos[0].ID)
		require.Equal(t, second, photos[1].ID)

		nobody := userID(t, store, createRandomUser(t, store))
		empty, err := store.ListPhotosByOwner(ctx, nobody)
		require.NoError(t, err)
		require.NotNil(t, empty)
		require.Empty(t, empty)
	})
}

func TestDeletePhoto_RequiresOwner(t *testing.T) {
	forEachStore(t, func(t *testing.T, store Store) {
		ctx := context.Background()
		alice := userID(t, store, createRandomUser(t, store))
		bob := userID(t, store, createRandomUser(t, store))
		photoID := createTestPhoto(t, store, alice, "mine.png")

		deleted, err := store.DeletePhoto(ctx, photoID, bob)
		require.NoError(t, err)
		require.False(t, deleted)

		deleted, err = store.DeletePhoto(ctx, photoID, alice)
		require.NoError(t, err)
		require.True(t, deleted)

		photo, err := store.GetPhotoByID(ctx, photoID)
		require.NoError(t, err)
		require.Nil(t, photo)
	})
}
