package postgres

import (
	"context"
	"fmt"

	"github.com/m-saad-siddique/graphql-backend/graph/model"
	"github.com/m-saad-siddique/graphql-backend/internal/apperr"
	"github.com/m-saad-siddique/graphql-backend/internal/auth"
	"github.com/m-saad-siddique/graphql-backend/models"
)

type PhotoPostgresStorage struct{}

func NewPhotoPostgresStorage() *PhotoPostgresStorage {
	return &PhotoPostgresStorage{}
}

func toGraphPhoto(photo *models.Photo) *model.Photo {
	result := &model.Photo{
		ID:     fmt.Sprint(photo.ID),
		Title:  photo.Title,
		UserID: fmt.Sprint(photo.UserID),
	}
	if photo.ImagePath != "" {
		imageURL := photo.ImagePath
		result.ImageURL = &imageURL
	}
	return result
}

func (s *PhotoPostgresStorage) CreatePhoto(ctx context.Context, title string) (*model.Photo, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("unauthorized: %w", apperr.ErrUnauthorized)
	}

	photo := &models.Photo{
		Title:  title,
		UserID: userID,
	}

	if err := DB.Create(photo).Error; err != nil {
		return nil, fmt.Errorf("could not create photo: %w", err)
	}

	return toGraphPhoto(photo), nil
}

func (s *PhotoPostgresStorage) GetPhotoById(id string) (*model.Photo, error) {
	var photo models.Photo
	if err := DB.First(&photo, id).Error; err != nil {
		return nil, fmt.Errorf("photo %s: %w", id, apperr.ErrNotFound)
	}

	return toGraphPhoto(&photo), nil
}

func (s *PhotoPostgresStorage) GetPhotosByUser(userID string) ([]*model.Photo, error) {
	var photos []models.Photo
	err := DB.Where("user_id = ?", userID).Order("id asc").Find(&photos).Error
	if err != nil {
		return nil, fmt.Errorf("could not get photos for user %s: %w", userID, err)
	}

	results := make([]*model.Photo, 0, len(photos))
	for i := range photos {
		results = append(results, toGraphPhoto(&photos[i]))
	}

	return results, nil
}

func (s *PhotoPostgresStorage) ListPhotos(titleContains *string, limit, offset int) (*model.PhotoList, error) {
	query := DB.Model(&models.Photo{})
	if titleContains != nil && *titleContains != "" {
		// LOWER/LIKE instead of ILIKE so the same query also runs on the
		// sqlite database the tests use
		query = query.Where("LOWER(title) LIKE LOWER(?)", "%"+*titleContains+"%")
	}

	// count before pagination
	var totalCount int
	if err := query.Count(&totalCount).Error; err != nil {
		return nil, fmt.Errorf("could not count photos: %w", err)
	}

	var photos []models.Photo
	err := query.Order("id asc").Limit(limit).Offset(offset).Find(&photos).Error
	if err != nil {
		return nil, fmt.Errorf("could not get photos: %w", err)
	}

	results := make([]*model.Photo, 0, len(photos))
	for i := range photos {
		results = append(results, toGraphPhoto(&photos[i]))
	}

	return &model.PhotoList{
		TotalCount: totalCount,
		Photos:     results,
	}, nil
}

func (s *PhotoPostgresStorage) AttachImage(id, imageURL string) error {
	var photo models.Photo
	if err := DB.First(&photo, id).Error; err != nil {
		return fmt.Errorf("photo %s: %w", id, apperr.ErrNotFound)
	}

	err := DB.Model(&photo).Update("image_path", imageURL).Error
	if err != nil {
		return fmt.Errorf("could not attach image: %w", err)
	}

	return nil
}
