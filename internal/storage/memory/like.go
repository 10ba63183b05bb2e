package memory

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/m-saad-siddique/graphql-backend/graph/model"
	"github.com/m-saad-siddique/graphql-backend/internal/apperr"
	"github.com/m-saad-siddique/graphql-backend/internal/auth"
	"github.com/m-saad-siddique/graphql-backend/internal/photo"
)

type LikeMemoryStorage struct {
	mu           sync.Mutex
	likes        map[string]*model.Like
	edges        map[string]string // "userID:photoID" -> likeID, the uniqueness index
	nextID       int
	photoStorage photo.PhotoStorage // dependency injection, like edges must reference a real photo
}

func NewLikeMemoryStorage(photoStore photo.PhotoStorage) *LikeMemoryStorage {
	return &LikeMemoryStorage{
		likes:        make(map[string]*model.Like),
		edges:        make(map[string]string),
		nextID:       1,
		photoStorage: photoStore,
	}
}

func edgeKey(userID, photoID string) string {
	return userID + ":" + photoID
}

func (s *LikeMemoryStorage) ToggleLike(ctx context.Context, photoID string) (bool, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return false, fmt.Errorf("unauthorized: %w", apperr.ErrUnauthorized)
	}

	if _, err := s.photoStorage.GetPhotoById(photoID); err != nil {
		return false, fmt.Errorf("photo %s: %w", photoID, apperr.ErrNotFound)
	}

	// the whole check-then-act runs under one lock, so concurrent toggles
	// serialize here the way the unique index serializes them in postgres
	s.mu.Lock()
	defer s.mu.Unlock()

	key := edgeKey(fmt.Sprint(userID), photoID)

	if likeID, exists := s.edges[key]; exists {
		delete(s.likes, likeID)
		delete(s.edges, key)
		return false, nil
	}

	id := strconv.Itoa(s.nextID)
	s.nextID++

	like := &model.Like{
		ID:      id,
		UserID:  fmt.Sprint(userID),
		PhotoID: photoID,
	}

	s.likes[id] = like
	s.edges[key] = id

	return true, nil
}

func (s *LikeMemoryStorage) GetLikeById(id string) (*model.Like, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	like, exists := s.likes[id]
	if !exists {
		return nil, fmt.Errorf("like %s: %w", id, apperr.ErrNotFound)
	}

	return like, nil
}

func (s *LikeMemoryStorage) GetAllLikes() ([]*model.Like, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	likes := make([]*model.Like, 0, len(s.likes))
	for _, like := range s.likes {
		likes = append(likes, like)
	}
	sortLikesByID(likes)

	return likes, nil
}

func (s *LikeMemoryStorage) GetLikesForPhoto(photoID string) ([]*model.Like, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var likes []*model.Like
	for _, like := range s.likes {
		if like.PhotoID == photoID {
			likes = append(likes, like)
		}
	}
	sortLikesByID(likes)

	return likes, nil
}

func (s *LikeMemoryStorage) IsLikedBy(photoID, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists := s.edges[edgeKey(userID, photoID)]
	return exists, nil
}

func sortLikesByID(likes []*model.Like) {
	sort.Slice(likes, func(i, j int) bool {
		a, _ := strconv.Atoi(likes[i].ID)
		b, _ := strconv.Atoi(likes[j].ID)
		return a < b
	})
}
