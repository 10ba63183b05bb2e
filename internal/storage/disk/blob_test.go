package disk

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlobDiskStorage_Attach(t *testing.T) {
	t.Run("Writes the file and returns its URL", func(t *testing.T) {
		dir := t.TempDir()
		storage, err := NewBlobDiskStorage(dir)
		require.NoError(t, err)

		url, err := storage.Attach("42", strings.NewReader("image-bytes"), "cat.png", "image/png")
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(url, "/uploads/42-"), "url %q should start with /uploads/42-", url)
		assert.True(t, strings.HasSuffix(url, ".png"), "url %q should keep the extension", url)

		data, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, "/uploads/")))
		require.NoError(t, err)
		assert.Equal(t, []byte("image-bytes"), data)
	})

	t.Run("Re-uploads get distinct filenames", func(t *testing.T) {
		dir := t.TempDir()
		storage, err := NewBlobDiskStorage(dir)
		require.NoError(t, err)

		url1, err := storage.Attach("7", strings.NewReader("first"), "a.jpg", "image/jpeg")
		require.NoError(t, err)
		url2, err := storage.Attach("7", strings.NewReader("second"), "a.jpg", "image/jpeg")
		require.NoError(t, err)

		assert.NotEqual(t, url1, url2)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("Filename without extension is accepted", func(t *testing.T) {
		dir := t.TempDir()
		storage, err := NewBlobDiskStorage(dir)
		require.NoError(t, err)

		url, err := storage.Attach("9", strings.NewReader("raw"), "noext", "application/octet-stream")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(url, "/uploads/9-"))
	})
}

func TestNewBlobDiskStorage_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")

	_, err := NewBlobDiskStorage(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
