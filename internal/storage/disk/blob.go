package disk

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// BlobDiskStorage writes uploaded images to a local directory. The returned
// URLs are paths under /uploads/, served by the HTTP server's file handler.
type BlobDiskStorage struct {
	dir string
}

func NewBlobDiskStorage(dir string) (*BlobDiskStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("could not create upload directory %s: %w", dir, err)
	}
	return &BlobDiskStorage{dir: dir}, nil
}

func (s *BlobDiskStorage) Attach(photoID string, file io.Reader, filename, contentType string) (string, error) {
	// uuid in the name so re-uploads never collide with an older file
	name := photoID + "-" + uuid.New().String() + filepath.Ext(filename)
	path := filepath.Join(s.dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("could not create file %s: %w", path, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("could not write image: %w", err)
	}

	return "/uploads/" + name, nil
}
