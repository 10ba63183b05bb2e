package mocks

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/m-saad-siddique/graphql-backend/graph/model"
	"github.com/m-saad-siddique/graphql-backend/internal/apperr"
	"github.com/m-saad-siddique/graphql-backend/internal/auth"
)

// MockPhotoStorage implements photo.PhotoStorage for testing.
type MockPhotoStorage struct {
	mu     sync.Mutex
	photos map[string]*model.Photo
	nextID int
}

func NewMockPhotoStorage() *MockPhotoStorage {
	return &MockPhotoStorage{
		photos: make(map[string]*model.Photo),
		nextID: 1,
	}
}

func (m *MockPhotoStorage) CreatePhoto(ctx context.Context, title string) (*model.Photo, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("unauthorized: %w", apperr.ErrUnauthorized)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id := strconv.Itoa(m.nextID)
	m.nextID++

	photo := &model.Photo{
		ID:     id,
		Title:  title,
		UserID: fmt.Sprint(userID),
	}
	m.photos[id] = photo

	return photo, nil
}

func (m *MockPhotoStorage) GetPhotoById(id string) (*model.Photo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	photo, ok := m.photos[id]
	if !ok {
		return nil, fmt.Errorf("photo %s: %w", id, apperr.ErrNotFound)
	}
	return photo, nil
}

func (m *MockPhotoStorage) GetPhotosByUser(userID string) ([]*model.Photo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var photos []*model.Photo
	for _, photo := range m.photos {
		if photo.UserID == userID {
			photos = append(photos, photo)
		}
	}
	sortMockPhotos(photos)

	return photos, nil
}

func (m *MockPhotoStorage) ListPhotos(titleContains *string, limit, offset int) (*model.PhotoList, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matches func(string) bool
	if titleContains != nil && *titleContains != "" {
		matches = titleMatcher(*titleContains)
	}

	var filtered []*model.Photo
	for _, photo := range m.photos {
		if matches != nil && !matches(photo.Title) {
			continue
		}
		filtered = append(filtered, photo)
	}
	sortMockPhotos(filtered)

	totalCount := len(filtered)

	// negative paging arguments cancel the clause, matching the stores
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = len(filtered)
	}

	if offset >= len(filtered) {
		return &model.PhotoList{TotalCount: totalCount, Photos: []*model.Photo{}}, nil
	}

	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}

	return &model.PhotoList{
		TotalCount: totalCount,
		Photos:     filtered[offset:end],
	}, nil
}

func (m *MockPhotoStorage) AttachImage(id, imageURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	photo, ok := m.photos[id]
	if !ok {
		return fmt.Errorf("photo %s: %w", id, apperr.ErrNotFound)
	}

	photo.ImageURL = &imageURL
	return nil
}

// titleMatcher mirrors the stores' LIKE semantics: case-insensitive,
// unanchored, % matching any run of characters and _ exactly one.
func titleMatcher(filter string) func(string) bool {
	var pattern strings.Builder
	pattern.WriteString("(?is)")
	for _, r := range filter {
		switch r {
		case '%':
			pattern.WriteString(".*")
		case '_':
			pattern.WriteString(".")
		default:
			pattern.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	return regexp.MustCompile(pattern.String()).MatchString
}

func sortMockPhotos(photos []*model.Photo) {
	sort.Slice(photos, func(i, j int) bool {
		a, _ := strconv.Atoi(photos[i].ID)
		b, _ := strconv.Atoi(photos[j].ID)
		return a < b
	})
}
