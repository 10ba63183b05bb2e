package postgres

import (
	"context"
	"fmt"
	"testing"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m-saad-siddique/graphql-backend/internal/auth"
	"github.com/m-saad-siddique/graphql-backend/models"
)

func createUserContext(userID uint) context.Context {
	ctx := context.Background()
	return auth.WithUserID(ctx, userID)
}

// setupTestDB opens an in-memory SQLite database, migrates the schema and
// installs it as the global connection. It returns the previous connection so
// the caller can restore it.
func setupTestDB(t *testing.T) *gorm.DB {
	oldDB := GetDB()

	db, err := gorm.Open("sqlite3", ":memory:")
	require.NoError(t, err, "Failed to connect to in-memory SQLite")

	db.Exec("PRAGMA foreign_keys = ON")
	db.LogMode(false)
	err = db.AutoMigrate(&models.User{}, &models.Photo{}, &models.Like{}).Error
	require.NoError(t, err, "Failed to migrate database schema")
	InitDBWithConnection(db)

	return oldDB
}

func teardownTestDB(db *gorm.DB) {
	InitDBWithConnection(db)
}

func createTestUser(t *testing.T) uint {
	user := &models.User{
		Email:    "test@example.com",
		Password: "password123",
	}

	err := DB.Create(user).Error
	require.NoError(t, err, "Failed to create test user")

	return user.ID
}

func createTestPhoto(t *testing.T, userID uint, title string) uint {
	photo := &models.Photo{
		Title:  title,
		UserID: userID,
	}

	err := DB.Create(photo).Error
	require.NoError(t, err, "Failed to create test photo")

	return photo.ID
}

func strPtr(v string) *string { return &v }

func TestPhotoPostgresStorage_CreatePhoto(t *testing.T) {
	storage := NewPhotoPostgresStorage()

	t.Run("Success photo creation", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		userID := createTestUser(t)
		ctx := createUserContext(userID)

		testTitle := "Sunset over the bay"
		photo, err := storage.CreatePhoto(ctx, testTitle)
		assert.NoError(t, err)
		assert.NotNil(t, photo)
		assert.Equal(t, testTitle, photo.Title)
		assert.Equal(t, fmt.Sprint(userID), photo.UserID)
		assert.Nil(t, photo.ImageURL)

		var dbPhoto models.Photo
		err = DB.First(&dbPhoto, photo.ID).Error
		assert.NoError(t, err)
		assert.Equal(t, testTitle, dbPhoto.Title)
		assert.Equal(t, userID, dbPhoto.UserID)
	})

	t.Run("Error: no authorization", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		ctx := context.Background()
		photo, err := storage.CreatePhoto(ctx, "Test Title")
		assert.Error(t, err)
		assert.Nil(t, photo)
		assert.Contains(t, err.Error(), "unauthorized")
	})
}

func TestPhotoPostgresStorage_GetPhotoById(t *testing.T) {
	storage := NewPhotoPostgresStorage()

	t.Run("Getting exists photo", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		userID := createTestUser(t)
		photoID := createTestPhoto(t, userID, "Mountain Trail")

		photo, err := storage.GetPhotoById(fmt.Sprint(photoID))
		assert.NoError(t, err)
		assert.NotNil(t, photo)
		assert.Equal(t, fmt.Sprint(photoID), photo.ID)
		assert.Equal(t, "Mountain Trail", photo.Title)
		assert.Equal(t, fmt.Sprint(userID), photo.UserID)
	})

	t.Run("Trying to get not exist photo", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		photo, err := storage.GetPhotoById("999")
		assert.Error(t, err)
		assert.Nil(t, photo)
		assert.Contains(t, err.Error(), "not found")
	})
}

func TestPhotoPostgresStorage_GetPhotosByUser(t *testing.T) {
	storage := NewPhotoPostgresStorage()

	t.Run("Only the user's photos, ordered by id", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		userID := createTestUser(t)

		otherUser := &models.User{
			Email:    "other@example.com",
			Password: "password123",
		}
		err := DB.Create(otherUser).Error
		require.NoError(t, err)

		createTestPhoto(t, userID, "First")
		createTestPhoto(t, otherUser.ID, "Stranger")
		createTestPhoto(t, userID, "Second")

		photos, err := storage.GetPhotosByUser(fmt.Sprint(userID))
		assert.NoError(t, err)
		require.Len(t, photos, 2)
		assert.Equal(t, "First", photos[0].Title)
		assert.Equal(t, "Second", photos[1].Title)
	})
}

func TestPhotoPostgresStorage_ListPhotos(t *testing.T) {
	storage := NewPhotoPostgresStorage()

	t.Run("Without filter returns everything up to the limit", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		userID := createTestUser(t)
		createTestPhoto(t, userID, "One")
		createTestPhoto(t, userID, "Two")
		createTestPhoto(t, userID, "Three")

		list, err := storage.ListPhotos(nil, 10, 0)
		assert.NoError(t, err)
		assert.Equal(t, 3, list.TotalCount)
		require.Len(t, list.Photos, 3)
		assert.Equal(t, "One", list.Photos[0].Title)
		assert.Equal(t, "Three", list.Photos[2].Title)
	})

	t.Run("Title filter is case insensitive", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		userID := createTestUser(t)
		createTestPhoto(t, userID, "Sleepy Cat")
		createTestPhoto(t, userID, "CATAMARAN")
		createTestPhoto(t, userID, "Dog Park")

		list, err := storage.ListPhotos(strPtr("cat"), 10, 0)
		assert.NoError(t, err)
		assert.Equal(t, 2, list.TotalCount)
		require.Len(t, list.Photos, 2)
		assert.Equal(t, "Sleepy Cat", list.Photos[0].Title)
		assert.Equal(t, "CATAMARAN", list.Photos[1].Title)
	})

	t.Run("TotalCount ignores limit and offset", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		userID := createTestUser(t)
		for i := 0; i < 5; i++ {
			createTestPhoto(t, userID, fmt.Sprintf("Photo %d", i+1))
		}

		list, err := storage.ListPhotos(nil, 2, 0)
		assert.NoError(t, err)
		assert.Equal(t, 5, list.TotalCount)
		require.Len(t, list.Photos, 2)
		assert.Equal(t, "Photo 1", list.Photos[0].Title)

		list, err = storage.ListPhotos(nil, 2, 2)
		assert.NoError(t, err)
		assert.Equal(t, 5, list.TotalCount)
		require.Len(t, list.Photos, 2)
		assert.Equal(t, "Photo 3", list.Photos[0].Title)
	})

	t.Run("Offset past the end yields an empty page", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		userID := createTestUser(t)
		createTestPhoto(t, userID, "Only One")

		list, err := storage.ListPhotos(nil, 10, 50)
		assert.NoError(t, err)
		assert.Equal(t, 1, list.TotalCount)
		assert.Empty(t, list.Photos)
	})
}

func TestPhotoPostgresStorage_AttachImage(t *testing.T) {
	storage := NewPhotoPostgresStorage()

	t.Run("Attach sets the image path", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		userID := createTestUser(t)
		photoID := createTestPhoto(t, userID, "Bare Photo")

		err := storage.AttachImage(fmt.Sprint(photoID), "/uploads/1-abc.png")
		assert.NoError(t, err)

		photo, err := storage.GetPhotoById(fmt.Sprint(photoID))
		require.NoError(t, err)
		require.NotNil(t, photo.ImageURL)
		assert.Equal(t, "/uploads/1-abc.png", *photo.ImageURL)
	})

	t.Run("Attach to not exist photo", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		err := storage.AttachImage("999", "/uploads/whatever.png")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}
