package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jinzhu/gorm"
	"github.com/lib/pq"

	"github.com/m-saad-siddique/graphql-backend/graph/model"
	"github.com/m-saad-siddique/graphql-backend/internal/apperr"
	"github.com/m-saad-siddique/graphql-backend/internal/auth"
	"github.com/m-saad-siddique/graphql-backend/models"
)

type LikePostgresStorage struct{}

func NewLikePostgresStorage() *LikePostgresStorage {
	return &LikePostgresStorage{}
}

func toGraphLike(like *models.Like) *model.Like {
	return &model.Like{
		ID:      fmt.Sprint(like.ID),
		UserID:  fmt.Sprint(like.UserID),
		PhotoID: fmt.Sprint(like.PhotoID),
	}
}

func (s *LikePostgresStorage) ToggleLike(ctx context.Context, photoID string) (bool, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return false, fmt.Errorf("unauthorized: %w", apperr.ErrUnauthorized)
	}

	photoIDInt, err := strconv.Atoi(photoID)
	if err != nil {
		return false, fmt.Errorf("photo %s: %w", photoID, apperr.ErrNotFound)
	}

	var photo models.Photo
	if err := DB.First(&photo, photoIDInt).Error; err != nil {
		return false, fmt.Errorf("photo %s: %w", photoID, apperr.ErrNotFound)
	}

	var like models.Like
	err = DB.Where("user_id = ? AND photo_id = ?", userID, uint(photoIDInt)).First(&like).Error
	if err == nil {
		if err := DB.Delete(&like).Error; err != nil {
			return false, fmt.Errorf("could not remove like: %w", err)
		}
		return false, nil
	}
	if !gorm.IsRecordNotFoundError(err) {
		return false, fmt.Errorf("could not look up like: %w", err)
	}

	like = models.Like{
		UserID:  userID,
		PhotoID: uint(photoIDInt),
	}

	if err := DB.Create(&like).Error; err != nil {
		// A concurrent call may have inserted the edge between our lookup and
		// this insert. The unique index is the authority: report the state it
		// enforced instead of failing a retryable call.
		if isUniqueViolation(err) {
			return true, nil
		}
		return false, fmt.Errorf("could not create like: %w", err)
	}

	return true, nil
}

// isUniqueViolation reports whether err is the storage-level rejection of a
// duplicate (user_id, photo_id) insert. The tests run on sqlite, so both
// drivers' shapes are recognized.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func (s *LikePostgresStorage) GetLikeById(id string) (*model.Like, error) {
	var like models.Like
	if err := DB.First(&like, id).Error; err != nil {
		return nil, fmt.Errorf("like %s: %w", id, apperr.ErrNotFound)
	}

	return toGraphLike(&like), nil
}

func (s *LikePostgresStorage) GetAllLikes() ([]*model.Like, error) {
	var likes []models.Like
	if err := DB.Order("id asc").Find(&likes).Error; err != nil {
		return nil, fmt.Errorf("could not get likes: %w", err)
	}

	results := make([]*model.Like, 0, len(likes))
	for i := range likes {
		results = append(results, toGraphLike(&likes[i]))
	}

	return results, nil
}

func (s *LikePostgresStorage) GetLikesForPhoto(photoID string) ([]*model.Like, error) {
	var likes []models.Like
	err := DB.Where("photo_id = ?", photoID).Order("id asc").Find(&likes).Error
	if err != nil {
		return nil, fmt.Errorf("could not get likes for photo %s: %w", photoID, err)
	}

	results := make([]*model.Like, 0, len(likes))
	for i := range likes {
		results = append(results, toGraphLike(&likes[i]))
	}

	return results, nil
}

func (s *LikePostgresStorage) IsLikedBy(photoID, userID string) (bool, error) {
	var count int
	err := DB.Model(&models.Like{}).
		Where("photo_id = ? AND user_id = ?", photoID, userID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("could not check like: %w", err)
	}

	return count > 0, nil
}
