package like

import (
	"context"

	"github.com/m-saad-siddique/graphql-backend/graph/model"
)

type LikeStorage interface {
	// ToggleLike creates the (user, photo) like edge if absent and removes it
	// if present. The returned bool reports the new state. A duplicate insert
	// caused by a concurrent call is absorbed as liked=true, not an error.
	ToggleLike(ctx context.Context, photoID string) (bool, error)
	GetLikeById(id string) (*model.Like, error)
	GetAllLikes() ([]*model.Like, error)
	GetLikesForPhoto(photoID string) ([]*model.Like, error)
	IsLikedBy(photoID, userID string) (bool, error)
}
