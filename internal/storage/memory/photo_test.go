package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m-saad-siddique/graphql-backend/internal/apperr"
	"github.com/m-saad-siddique/graphql-backend/internal/auth"
)

func createUserContext(userID uint) context.Context {
	ctx := context.Background()
	return auth.WithUserID(ctx, userID)
}

func strPtr(v string) *string { return &v }

func TestPhotoMemoryStorage_CreatePhoto(t *testing.T) {
	storage := NewPhotoMemoryStorage()

	t.Run("Successful photo creation", func(t *testing.T) {
		ctx := createUserContext(123)

		photo, err := storage.CreatePhoto(ctx, "Test Photo")
		require.NoError(t, err)
		assert.NotEmpty(t, photo.ID)
		assert.Equal(t, "Test Photo", photo.Title)
		assert.Equal(t, "123", photo.UserID)
		assert.Nil(t, photo.ImageURL)
	})

	t.Run("Error when no authorization", func(t *testing.T) {
		photo, err := storage.CreatePhoto(context.Background(), "Title")
		assert.Error(t, err)
		assert.Nil(t, photo)
		assert.Equal(t, "UNAUTHORIZED", apperr.Code(err))
	})
}

func TestPhotoMemoryStorage_GetPhotoById(t *testing.T) {
	storage := NewPhotoMemoryStorage()
	ctx := createUserContext(123)

	photo, err := storage.CreatePhoto(ctx, "Test Photo")
	require.NoError(t, err)

	t.Run("Successfully get photo by ID", func(t *testing.T) {
		found, err := storage.GetPhotoById(photo.ID)
		require.NoError(t, err)
		assert.Equal(t, photo.Title, found.Title)
	})

	t.Run("Error when photo not found", func(t *testing.T) {
		_, err := storage.GetPhotoById("999")
		assert.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.Code(err))
	})
}

func TestPhotoMemoryStorage_GetPhotosByUser(t *testing.T) {
	storage := NewPhotoMemoryStorage()

	_, err := storage.CreatePhoto(createUserContext(1), "Mine")
	require.NoError(t, err)
	_, err = storage.CreatePhoto(createUserContext(2), "Theirs")
	require.NoError(t, err)
	_, err = storage.CreatePhoto(createUserContext(1), "Also mine")
	require.NoError(t, err)

	t.Run("Returns only the user's photos in insertion order", func(t *testing.T) {
		photos, err := storage.GetPhotosByUser("1")
		require.NoError(t, err)
		require.Len(t, photos, 2)
		assert.Equal(t, "Mine", photos[0].Title)
		assert.Equal(t, "Also mine", photos[1].Title)
	})

	t.Run("User without photos gets an empty result", func(t *testing.T) {
		photos, err := storage.GetPhotosByUser("999")
		require.NoError(t, err)
		assert.Len(t, photos, 0)
	})
}

func TestPhotoMemoryStorage_ListPhotos(t *testing.T) {
	storage := NewPhotoMemoryStorage()
	ctx := createUserContext(123)

	titles := []string{"Cat sleeping", "Dog running", "CATALOG cover", "Sunset", "My cat again"}
	for _, title := range titles {
		_, err := storage.CreatePhoto(ctx, title)
		require.NoError(t, err)
	}

	t.Run("No filter returns everything", func(t *testing.T) {
		feed, err := storage.ListPhotos(nil, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, 5, feed.TotalCount)
		assert.Len(t, feed.Photos, 5)
	})

	t.Run("Case-insensitive substring filter", func(t *testing.T) {
		feed, err := storage.ListPhotos(strPtr("cat"), 10, 0)
		require.NoError(t, err)
		assert.Equal(t, 3, feed.TotalCount)

		for _, p := range feed.Photos {
			assert.Contains(t, []string{"Cat sleeping", "CATALOG cover", "My cat again"}, p.Title)
		}
	})

	t.Run("Empty filter string means no filter", func(t *testing.T) {
		feed, err := storage.ListPhotos(strPtr(""), 10, 0)
		require.NoError(t, err)
		assert.Equal(t, 5, feed.TotalCount)
	})

	t.Run("TotalCount ignores pagination", func(t *testing.T) {
		feed, err := storage.ListPhotos(strPtr("cat"), 1, 0)
		require.NoError(t, err)
		assert.Equal(t, 3, feed.TotalCount)
		assert.Len(t, feed.Photos, 1)
	})

	t.Run("Pagination partitions the set", func(t *testing.T) {
		seen := make(map[string]bool)
		for offset := 0; offset < 5; offset += 2 {
			feed, err := storage.ListPhotos(nil, 2, offset)
			require.NoError(t, err)
			for _, p := range feed.Photos {
				assert.False(t, seen[p.ID])
				seen[p.ID] = true
			}
		}
		assert.Len(t, seen, 5)
	})

	t.Run("Offset beyond the set returns empty page", func(t *testing.T) {
		feed, err := storage.ListPhotos(nil, 10, 50)
		require.NoError(t, err)
		assert.Equal(t, 5, feed.TotalCount)
		assert.Len(t, feed.Photos, 0)
	})

	t.Run("Negative limit means no limit", func(t *testing.T) {
		feed, err := storage.ListPhotos(nil, -1, 1)
		require.NoError(t, err)
		assert.Equal(t, 5, feed.TotalCount)
		assert.Len(t, feed.Photos, 4)
	})

	t.Run("Negative offset means no offset", func(t *testing.T) {
		feed, err := storage.ListPhotos(nil, 2, -5)
		require.NoError(t, err)
		assert.Equal(t, 5, feed.TotalCount)
		assert.Len(t, feed.Photos, 2)
		assert.Equal(t, "Cat sleeping", feed.Photos[0].Title)
	})

	t.Run("Underscore in the filter matches a single character", func(t *testing.T) {
		feed, err := storage.ListPhotos(strPtr("c_t"), 10, 0)
		require.NoError(t, err)
		assert.Equal(t, 3, feed.TotalCount)
	})

	t.Run("Percent in the filter matches any run", func(t *testing.T) {
		feed, err := storage.ListPhotos(strPtr("cat%cover"), 10, 0)
		require.NoError(t, err)
		require.Len(t, feed.Photos, 1)
		assert.Equal(t, "CATALOG cover", feed.Photos[0].Title)
	})
}

func TestPhotoMemoryStorage_AttachImage(t *testing.T) {
	storage := NewPhotoMemoryStorage()
	ctx := createUserContext(123)

	photo, err := storage.CreatePhoto(ctx, "With image")
	require.NoError(t, err)

	t.Run("Attaches an image URL", func(t *testing.T) {
		err := storage.AttachImage(photo.ID, "/uploads/abc.jpg")
		require.NoError(t, err)

		found, err := storage.GetPhotoById(photo.ID)
		require.NoError(t, err)
		require.NotNil(t, found.ImageURL)
		assert.Equal(t, "/uploads/abc.jpg", *found.ImageURL)
	})

	t.Run("Error when photo not found", func(t *testing.T) {
		err := storage.AttachImage("999", "/uploads/abc.jpg")
		assert.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.Code(err))
	})
}
