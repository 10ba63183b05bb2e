package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m-saad-siddique/graphql-backend/internal/apperr"
	"github.com/m-saad-siddique/graphql-backend/models"
)

func TestLikePostgresStorage_ToggleLike(t *testing.T) {
	storage := NewLikePostgresStorage()

	t.Run("Toggle twice: liked then unliked", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		userID := createTestUser(t)
		photoID := createTestPhoto(t, userID, "Test Photo")
		ctx := createUserContext(userID)

		liked, err := storage.ToggleLike(ctx, fmt.Sprint(photoID))
		require.NoError(t, err)
		assert.True(t, liked)

		var count int
		err = DB.Model(&models.Like{}).Where("user_id = ? AND photo_id = ?", userID, photoID).Count(&count).Error
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		liked, err = storage.ToggleLike(ctx, fmt.Sprint(photoID))
		require.NoError(t, err)
		assert.False(t, liked)

		err = DB.Model(&models.Like{}).Where("user_id = ? AND photo_id = ?", userID, photoID).Count(&count).Error
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("Re-like after unlike", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		userID := createTestUser(t)
		photoID := createTestPhoto(t, userID, "Test Photo")
		ctx := createUserContext(userID)

		// the row is hard-deleted on unlike, so the unique index must accept
		// the same pair again
		for _, want := range []bool{true, false, true} {
			liked, err := storage.ToggleLike(ctx, fmt.Sprint(photoID))
			require.NoError(t, err)
			assert.Equal(t, want, liked)
		}
	})

	t.Run("Error: no authorization", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		userID := createTestUser(t)
		photoID := createTestPhoto(t, userID, "Test Photo")

		_, err := storage.ToggleLike(context.Background(), fmt.Sprint(photoID))
		assert.Error(t, err)
		assert.Equal(t, "UNAUTHORIZED", apperr.Code(err))
	})

	t.Run("Error: photo does not exist", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		userID := createTestUser(t)
		ctx := createUserContext(userID)

		_, err := storage.ToggleLike(ctx, "999")
		assert.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.Code(err))

		_, err = storage.ToggleLike(ctx, "not-a-number")
		assert.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.Code(err))
	})

	t.Run("Duplicate insert race is absorbed as liked", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		userID := createTestUser(t)
		photoID := createTestPhoto(t, userID, "Test Photo")

		// the unique index rejects a second insert for the same pair; the
		// storage reports the state the index enforced
		err := DB.Create(&models.Like{UserID: userID, PhotoID: photoID}).Error
		require.NoError(t, err)

		err = DB.Create(&models.Like{UserID: userID, PhotoID: photoID}).Error
		require.Error(t, err)
		assert.True(t, isUniqueViolation(err))
	})
}

func TestIsUniqueViolation(t *testing.T) {
	t.Run("Recognizes the postgres duplicate key code", func(t *testing.T) {
		err := &pq.Error{Code: "23505"}
		assert.True(t, isUniqueViolation(err))
	})

	t.Run("Recognizes the sqlite constraint message", func(t *testing.T) {
		err := errors.New("UNIQUE constraint failed: likes.user_id, likes.photo_id")
		assert.True(t, isUniqueViolation(err))
	})

	t.Run("Ignores unrelated errors", func(t *testing.T) {
		assert.False(t, isUniqueViolation(errors.New("connection refused")))
		assert.False(t, isUniqueViolation(&pq.Error{Code: "23503"}))
	})
}

func TestLikePostgresStorage_Lookups(t *testing.T) {
	storage := NewLikePostgresStorage()

	t.Run("GetAllLikes and GetLikesForPhoto", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		userID := createTestUser(t)

		otherUser := &models.User{
			Email:    "other@example.com",
			Password: "password123",
		}
		err := DB.Create(otherUser).Error
		require.NoError(t, err)

		photo1ID := createTestPhoto(t, userID, "First")
		photo2ID := createTestPhoto(t, userID, "Second")

		require.NoError(t, DB.Create(&models.Like{UserID: userID, PhotoID: photo1ID}).Error)
		require.NoError(t, DB.Create(&models.Like{UserID: otherUser.ID, PhotoID: photo1ID}).Error)
		require.NoError(t, DB.Create(&models.Like{UserID: otherUser.ID, PhotoID: photo2ID}).Error)

		all, err := storage.GetAllLikes()
		require.NoError(t, err)
		assert.Len(t, all, 3)

		forPhoto, err := storage.GetLikesForPhoto(fmt.Sprint(photo1ID))
		require.NoError(t, err)
		require.Len(t, forPhoto, 2)
		assert.Equal(t, fmt.Sprint(photo1ID), forPhoto[0].PhotoID)
		assert.Equal(t, fmt.Sprint(photo1ID), forPhoto[1].PhotoID)
	})

	t.Run("GetLikeById", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		userID := createTestUser(t)
		photoID := createTestPhoto(t, userID, "Test Photo")

		dbLike := &models.Like{UserID: userID, PhotoID: photoID}
		require.NoError(t, DB.Create(dbLike).Error)

		like, err := storage.GetLikeById(fmt.Sprint(dbLike.ID))
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprint(userID), like.UserID)
		assert.Equal(t, fmt.Sprint(photoID), like.PhotoID)

		_, err = storage.GetLikeById("999")
		assert.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.Code(err))
	})

	t.Run("IsLikedBy", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		userID := createTestUser(t)
		photoID := createTestPhoto(t, userID, "Test Photo")

		require.NoError(t, DB.Create(&models.Like{UserID: userID, PhotoID: photoID}).Error)

		liked, err := storage.IsLikedBy(fmt.Sprint(photoID), fmt.Sprint(userID))
		require.NoError(t, err)
		assert.True(t, liked)

		liked, err = storage.IsLikedBy(fmt.Sprint(photoID), "999")
		require.NoError(t, err)
		assert.False(t, liked)
	})
}
