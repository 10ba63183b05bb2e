package mocks

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/m-saad-siddique/graphql-backend/graph/model"
	"github.com/m-saad-siddique/graphql-backend/internal/apperr"
	"github.com/m-saad-siddique/graphql-backend/internal/auth"
	"github.com/m-saad-siddique/graphql-backend/internal/photo"
)

// MockLikeStorage implements like.LikeStorage for testing.
type MockLikeStorage struct {
	mu           sync.Mutex
	likes        map[string]*model.Like
	edges        map[string]string // "userID:photoID" -> likeID
	nextID       int
	photoStorage photo.PhotoStorage
}

func NewMockLikeStorage(photoStore photo.PhotoStorage) *MockLikeStorage {
	return &MockLikeStorage{
		likes:        make(map[string]*model.Like),
		edges:        make(map[string]string),
		nextID:       1,
		photoStorage: photoStore,
	}
}

func (m *MockLikeStorage) ToggleLike(ctx context.Context, photoID string) (bool, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return false, fmt.Errorf("unauthorized: %w", apperr.ErrUnauthorized)
	}

	if _, err := m.photoStorage.GetPhotoById(photoID); err != nil {
		return false, fmt.Errorf("photo %s: %w", photoID, apperr.ErrNotFound)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := fmt.Sprint(userID) + ":" + photoID

	if likeID, exists := m.edges[key]; exists {
		delete(m.likes, likeID)
		delete(m.edges, key)
		return false, nil
	}

	id := strconv.Itoa(m.nextID)
	m.nextID++

	like := &model.Like{
		ID:      id,
		UserID:  fmt.Sprint(userID),
		PhotoID: photoID,
	}
	m.likes[id] = like
	m.edges[key] = id

	return true, nil
}

func (m *MockLikeStorage) GetLikeById(id string) (*model.Like, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	like, ok := m.likes[id]
	if !ok {
		return nil, fmt.Errorf("like %s: %w", id, apperr.ErrNotFound)
	}
	return like, nil
}

func (m *MockLikeStorage) GetAllLikes() ([]*model.Like, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	likes := make([]*model.Like, 0, len(m.likes))
	for _, like := range m.likes {
		likes = append(likes, like)
	}
	return likes, nil
}

func (m *MockLikeStorage) GetLikesForPhoto(photoID string) ([]*model.Like, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var likes []*model.Like
	for _, like := range m.likes {
		if like.PhotoID == photoID {
			likes = append(likes, like)
		}
	}
	return likes, nil
}

func (m *MockLikeStorage) IsLikedBy(photoID, userID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, exists := m.edges[userID+":"+photoID]
	return exists, nil
}

// LikeCount is a test helper reporting the number of stored like edges.
func (m *MockLikeStorage) LikeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.likes)
}
