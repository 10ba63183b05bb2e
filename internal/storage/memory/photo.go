package memory

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

type PhotoMemoryStorage struct {
	mu     sync.Mutex
	photos map[string]*model.Photo
	nextId int
}

func NewPhotoMemoryStorage() *PhotoMemoryStorage {
	return &PhotoMemoryStorage{
		photos: make(map[string]*model.Photo),
		nextId: 1,
	}
}

func (s *PhotoMemoryStorage) CreatePhoto(ctx context.Context, title string) (*model.Photo, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("unauthorized: %w", apperr.ErrUnauthorized)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := strconv.Itoa(s.nextId)
	s.nextId++

	photo := &model.Photo{
		ID:     id,
		Title:  title,
		UserID: fmt.Sprint(userID),
	}

	s.photos[id] = photo
	return photo, nil
}

func (s *PhotoMemoryStorage) GetPhotoById(id string) (*model.Photo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	photo, exists := s.photos[id]
	if !exists {
		return nil, fmt.Errorf("photo %s: %w", id, apperr.ErrNotFound)
	}

	return photo, nil
}

func (s *PhotoMemoryStorage) GetPhotosByUser(userID string) ([]*model.Photo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var photos []*model.Photo
	for _, photo := range s.photos {
		if photo.UserID == userID {
			photos = append(photos, photo)
		}
	}
	sortPhotosByID(photos)

	return photos, nil
}

func (s *PhotoMemoryStorage) ListPhotos(titleContains *string, limit, offset int) (*model.PhotoList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matches func(string) bool
	if titleContains != nil && *titleContains != "" {
		matches = titleMatcher(*titleContains)
	}

	var filtered []*model.Photo
	for _, photo := range s.photos {
		if matches != nil && !matches(photo.Title) {
			continue
		}
		filtered = append(filtered, photo)
	}
	sortPhotosByID(filtered)

	// the full filtered set counts, not the returned page
	totalCount := len(filtered)

	// negative paging arguments cancel the clause, the same way gorm drops
	// a negative Limit/Offset from the SQL
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = len(filtered)
	}

	if offset >= len(filtered) {
		return &model.PhotoList{
			TotalCount: totalCount,
			Photos:     []*model.Photo{},
		}, nil
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

func (s *PhotoMemoryStorage) AttachImage(id, imageURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	photo, exists := s.photos[id]
	if !exists {
		return fmt.Errorf("photo %s: %w", id, apperr.ErrNotFound)
	}

	photo.ImageURL = &imageURL
	return nil
}

// titleMatcher compiles a filter into the match LOWER(title) LIKE
// LOWER('%' || filter || '%') performs in the SQL store: case-insensitive,
// unanchored, with % matching any run of characters and _ exactly one.
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

// sortPhotosByID keeps the feed order stable: ascending numeric ID, which is
// insertion order.
func sortPhotosByID(photos []*model.Photo) {
	sort.Slice(photos, func(i, j int) bool {
		a, _ := strconv.Atoi(photos[i].ID)
		b, _ := strconv.Atoi(photos[j].ID)
		return a < b
	})
}
