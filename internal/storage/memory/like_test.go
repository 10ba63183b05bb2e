package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m-saad-siddique/graphql-backend/internal/apperr"
)

func TestLikeMemoryStorage_ToggleLike(t *testing.T) {
	photoStorage := NewPhotoMemoryStorage()
	storage := NewLikeMemoryStorage(photoStorage)

	ctx := createUserContext(123)

	photo, err := photoStorage.CreatePhoto(ctx, "Test Photo")
	require.NoError(t, err)

	t.Run("Toggle twice: liked then unliked", func(t *testing.T) {
		liked, err := storage.ToggleLike(ctx, photo.ID)
		require.NoError(t, err)
		assert.True(t, liked)

		isLiked, err := storage.IsLikedBy(photo.ID, "123")
		require.NoError(t, err)
		assert.True(t, isLiked)

		liked, err = storage.ToggleLike(ctx, photo.ID)
		require.NoError(t, err)
		assert.False(t, liked)

		isLiked, err = storage.IsLikedBy(photo.ID, "123")
		require.NoError(t, err)
		assert.False(t, isLiked)
	})

	t.Run("Error when no authorization", func(t *testing.T) {
		_, err := storage.ToggleLike(context.Background(), photo.ID)
		assert.Error(t, err)
		assert.Equal(t, "UNAUTHORIZED", apperr.Code(err))
	})

	t.Run("Error when photo does not exist", func(t *testing.T) {
		_, err := storage.ToggleLike(ctx, "999")
		assert.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.Code(err))
	})

	t.Run("Likes by different users are independent edges", func(t *testing.T) {
		otherCtx := createUserContext(456)

		liked, err := storage.ToggleLike(ctx, photo.ID)
		require.NoError(t, err)
		assert.True(t, liked)

		liked, err = storage.ToggleLike(otherCtx, photo.ID)
		require.NoError(t, err)
		assert.True(t, liked)

		likes, err := storage.GetLikesForPhoto(photo.ID)
		require.NoError(t, err)
		assert.Len(t, likes, 2)
	})
}

func TestLikeMemoryStorage_ConcurrentToggles(t *testing.T) {
	photoStorage := NewPhotoMemoryStorage()
	storage := NewLikeMemoryStorage(photoStorage)

	ctx := createUserContext(123)

	photo, err := photoStorage.CreatePhoto(ctx, "Contested Photo")
	require.NoError(t, err)

	t.Run("Never more than one edge per user and photo", func(t *testing.T) {
		const workers = 20

		var wg sync.WaitGroup
		wg.Add(workers)
		for i := 0; i < workers; i++ {
			go func() {
				defer wg.Done()
				_, err := storage.ToggleLike(ctx, photo.ID)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		likes, err := storage.GetLikesForPhoto(photo.ID)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(likes), 1)

		// an even number of toggles must land back on "not liked"
		isLiked, err := storage.IsLikedBy(photo.ID, "123")
		require.NoError(t, err)
		assert.False(t, isLiked)
	})
}

func TestLikeMemoryStorage_Lookups(t *testing.T) {
	photoStorage := NewPhotoMemoryStorage()
	storage := NewLikeMemoryStorage(photoStorage)

	aliceCtx := createUserContext(1)
	bobCtx := createUserContext(2)

	photo1, err := photoStorage.CreatePhoto(aliceCtx, "First")
	require.NoError(t, err)
	photo2, err := photoStorage.CreatePhoto(aliceCtx, "Second")
	require.NoError(t, err)

	_, err = storage.ToggleLike(aliceCtx, photo1.ID)
	require.NoError(t, err)
	_, err = storage.ToggleLike(bobCtx, photo1.ID)
	require.NoError(t, err)
	_, err = storage.ToggleLike(bobCtx, photo2.ID)
	require.NoError(t, err)

	t.Run("GetAllLikes returns every edge", func(t *testing.T) {
		likes, err := storage.GetAllLikes()
		require.NoError(t, err)
		assert.Len(t, likes, 3)
	})

	t.Run("GetLikesForPhoto filters by photo", func(t *testing.T) {
		likes, err := storage.GetLikesForPhoto(photo1.ID)
		require.NoError(t, err)
		assert.Len(t, likes, 2)
	})

	t.Run("GetLikeById finds a single edge", func(t *testing.T) {
		all, err := storage.GetAllLikes()
		require.NoError(t, err)
		require.NotEmpty(t, all)

		like, err := storage.GetLikeById(all[0].ID)
		require.NoError(t, err)
		assert.Equal(t, all[0].UserID, like.UserID)
	})

	t.Run("GetLikeById on unknown id is not found", func(t *testing.T) {
		_, err := storage.GetLikeById("999")
		assert.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.Code(err))
	})
}
