package memory

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlobMemoryStorage_Attach(t *testing.T) {
	storage := NewBlobMemoryStorage()

	t.Run("Stores bytes and content type", func(t *testing.T) {
		url, err := storage.Attach("42", strings.NewReader("image-bytes"), "cat.png", "image/png")
		require.NoError(t, err)
		assert.Equal(t, "/uploads/42", url)

		data, contentType, ok := storage.Get("42")
		require.True(t, ok)
		assert.Equal(t, []byte("image-bytes"), data)
		assert.Equal(t, "image/png", contentType)
	})

	t.Run("Attach overwrites an earlier blob for the same photo", func(t *testing.T) {
		_, err := storage.Attach("42", strings.NewReader("newer-bytes"), "cat2.jpg", "image/jpeg")
		require.NoError(t, err)

		data, contentType, ok := storage.Get("42")
		require.True(t, ok)
		assert.Equal(t, []byte("newer-bytes"), data)
		assert.Equal(t, "image/jpeg", contentType)
	})

	t.Run("Get on unknown photo reports missing", func(t *testing.T) {
		_, _, ok := storage.Get("999")
		assert.False(t, ok)
	})
}
