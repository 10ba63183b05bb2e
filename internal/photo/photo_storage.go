package photo

import (
	"context"

	"github.com/m-saad-siddique/graphql-backend/graph/model"
)

type PhotoStorage interface {
	CreatePhoto(ctx context.Context, title string) (*model.Photo, error)
	GetPhotoById(id string) (*model.Photo, error)
	GetPhotosByUser(userID string) ([]*model.Photo, error)
	// ListPhotos returns the feed page: totalCount is counted on the filtered
	// set before limit/offset are applied, photos are ordered by ascending id.
	ListPhotos(titleContains *string, limit, offset int) (*model.PhotoList, error)
	AttachImage(id, imageURL string) error
}
