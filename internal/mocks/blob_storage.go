package mocks

import (
	"errors"
	"io"
	"sync"
)

// MockBlobStorage implements blob.BlobStorage for testing. Set FailAttach to
// simulate a blob-store outage during the attach phase of an upload.
type MockBlobStorage struct {
	mu         sync.Mutex
	FailAttach bool
	attached   map[string]string // photoID -> filename
}

func NewMockBlobStorage() *MockBlobStorage {
	return &MockBlobStorage{
		attached: make(map[string]string),
	}
}

func (m *MockBlobStorage) Attach(photoID string, file io.Reader, filename, contentType string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailAttach {
		return "", errors.New("blob store unavailable")
	}

	if _, err := io.Copy(io.Discard, file); err != nil {
		return "", err
	}

	m.attached[photoID] = filename
	return "/uploads/" + photoID, nil
}

// Attached reports whether an image was stored for the photo (test helper).
func (m *MockBlobStorage) Attached(photoID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.attached[photoID]
	return ok
}
