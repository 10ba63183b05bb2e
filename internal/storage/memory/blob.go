package memory

import (
	"fmt"
	"io"
	"sync"
)

// BlobMemoryStorage keeps uploaded image bytes in memory. It backs the
// -storage=memory mode and the tests.
type BlobMemoryStorage struct {
	mu           sync.Mutex
	blobs        map[string][]byte
	contentTypes map[string]string
}

func NewBlobMemoryStorage() *BlobMemoryStorage {
	return &BlobMemoryStorage{
		blobs:        make(map[string][]byte),
		contentTypes: make(map[string]string),
	}
}

func (s *BlobMemoryStorage) Attach(photoID string, file io.Reader, filename, contentType string) (string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("could not read image: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.blobs[photoID] = data
	s.contentTypes[photoID] = contentType

	return "/uploads/" + photoID, nil
}

// Get returns the stored bytes and content type for a photo (used in tests).
func (s *BlobMemoryStorage) Get(photoID string) ([]byte, string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.blobs[photoID]
	if !ok {
		return nil, "", false
	}
	return data, s.contentTypes[photoID], true
}
