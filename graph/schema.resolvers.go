package graph

// This file will be automatically regenerated based on the schema, any resolver implementations
// will be copied through when generating and any unknown code will be moved to the end.
// Code generated by github.com/99designs/gqlgen version v0.17.49

import (
	"context"
	"fmt"
	"strings"

	"github.com/99designs/gqlgen/graphql"
	"github.com/m-saad-siddique/graphql-backend/graph/generated"
	"github.com/m-saad-siddique/graphql-backend/graph/model"
	"github.com/m-saad-siddique/graphql-backend/internal/apperr"
	"github.com/m-saad-siddique/graphql-backend/internal/auth"
)

// User is the resolver for the user field.
func (r *likeResolver) User(ctx context.Context, obj *model.Like) (*model.User, error) {
	return r.UserStore.GetUserById(obj.UserID)
}

// Photo is the resolver for the photo field.
func (r *likeResolver) Photo(ctx context.Context, obj *model.Like) (*model.Photo, error) {
	return r.PhotoStore.GetPhotoById(obj.PhotoID)
}

// SignIn is the resolver for the signIn field.
func (r *mutationResolver) SignIn(ctx context.Context, email string, password string) (*model.AuthPayload, error) {
	token, user, err := r.UserStore.LoginUser(email, password)
	if err != nil {
		return nil, err
	}

	return &model.AuthPayload{Token: token, User: user}, nil
}

// SignUp is the resolver for the signUp field.
func (r *mutationResolver) SignUp(ctx context.Context, email string, password string) (*model.AuthPayload, error) {
	if _, err := r.UserStore.RegisterUser(email, password); err != nil {
		return nil, err
	}

	// after registration the flow is identical to signing in
	return r.SignIn(ctx, email, password)
}

// UploadPhoto is the resolver for the uploadPhoto field.
func (r *mutationResolver) UploadPhoto(ctx context.Context, title string, image graphql.Upload) (*model.Photo, error) {
	if _, err := auth.GetUserIDFromContext(ctx); err != nil {
		return nil, fmt.Errorf("unauthorized: %w", apperr.ErrUnauthorized)
	}

	if strings.TrimSpace(title) == "" {
		return nil, apperr.Validation("title can't be blank")
	}

	// phase (a): the photo row must exist before any bytes are written
	photo, err := r.PhotoStore.CreatePhoto(ctx, title)
	if err != nil {
		return nil, err
	}

	// phase (b): attach the image. On failure the row from phase (a) is kept:
	// a titled photo without an image is valid, queryable state.
	imageURL, err := r.BlobStore.Attach(photo.ID, image.File, image.Filename, image.ContentType)
	if err != nil {
		return nil, apperr.Upload(err)
	}

	if err := r.PhotoStore.AttachImage(photo.ID, imageURL); err != nil {
		return nil, apperr.Upload(err)
	}
	photo.ImageURL = &imageURL

	if r.SubscriptionManager != nil {
		r.SubscriptionManager.Publish(photo)
	}

	return photo, nil
}

// ToggleLike is the resolver for the toggleLike field.
func (r *mutationResolver) ToggleLike(ctx context.Context, photoID string) (*model.ToggleLikePayload, error) {
	liked, err := r.LikeStore.ToggleLike(ctx, photoID)
	if err != nil {
		return nil, err
	}

	return &model.ToggleLikePayload{Liked: liked}, nil
}

// User is the resolver for the user field.
func (r *photoResolver) User(ctx context.Context, obj *model.Photo) (*model.User, error) {
	return r.UserStore.GetUserById(obj.UserID)
}

// Likes is the resolver for the likes field.
func (r *photoResolver) Likes(ctx context.Context, obj *model.Photo) ([]*model.Like, error) {
	return r.LikeStore.GetLikesForPhoto(obj.ID)
}

// LikedByCurrentUser is the resolver for the likedByCurrentUser field.
func (r *photoResolver) LikedByCurrentUser(ctx context.Context, obj *model.Photo) (bool, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return false, nil // anonymous viewers have liked nothing
	}

	return r.LikeStore.IsLikedBy(obj.ID, fmt.Sprint(userID))
}

// Node is the resolver for the node field.
func (r *queryResolver) Node(ctx context.Context, id string) (model.Node, error) {
	// absence is not a failure: unknown ids resolve to null
	return r.NodeRegistry.Resolve(id), nil
}

// Nodes is the resolver for the nodes field.
func (r *queryResolver) Nodes(ctx context.Context, ids []string) ([]model.Node, error) {
	return r.NodeRegistry.ResolveMany(ids), nil
}

// Me is the resolver for the me field.
func (r *queryResolver) Me(ctx context.Context) (*model.User, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, nil // anonymous
	}

	user, err := r.UserStore.GetUserById(fmt.Sprint(userID))
	if err != nil {
		return nil, nil
	}

	return user, nil
}

// Photos is the resolver for the photos field.
func (r *queryResolver) Photos(ctx context.Context, limit *int, offset *int, titleContains *string) (*model.PhotoList, error) {
	l, o := 10, 0
	if limit != nil {
		l = *limit
	}
	if offset != nil {
		o = *offset
	}

	return r.PhotoStore.ListPhotos(titleContains, l, o)
}

// Likes is the resolver for the likes field.
func (r *queryResolver) Likes(ctx context.Context) ([]*model.Like, error) {
	return r.LikeStore.GetAllLikes()
}

// PhotoUploaded is the resolver for the photoUploaded field.
func (r *subscriptionResolver) PhotoUploaded(ctx context.Context) (<-chan *model.Photo, error) {
	ch, cancel := r.SubscriptionManager.Subscribe()

	go func() {
		<-ctx.Done()
		cancel()
	}()

	return ch, nil
}

// Photos is the resolver for the photos field.
func (r *userResolver) Photos(ctx context.Context, obj *model.User) ([]*model.Photo, error) {
	return r.PhotoStore.GetPhotosByUser(obj.ID)
}

// Like returns generated.LikeResolver implementation.
func (r *Resolver) Like() generated.LikeResolver { return &likeResolver{r} }

// Mutation returns generated.MutationResolver implementation.
func (r *Resolver) Mutation() generated.MutationResolver { return &mutationResolver{r} }

// Photo returns generated.PhotoResolver implementation.
func (r *Resolver) Photo() generated.PhotoResolver { return &photoResolver{r} }

// Query returns generated.QueryResolver implementation.
func (r *Resolver) Query() generated.QueryResolver { return &queryResolver{r} }

// Subscription returns generated.SubscriptionResolver implementation.
func (r *Resolver) Subscription() generated.SubscriptionResolver { return &subscriptionResolver{r} }

// User returns generated.UserResolver implementation.
func (r *Resolver) User() generated.UserResolver { return &userResolver{r} }

type likeResolver struct{ *Resolver }
type mutationResolver struct{ *Resolver }
type photoResolver struct{ *Resolver }
type queryResolver struct{ *Resolver }
type subscriptionResolver struct{ *Resolver }
type userResolver struct{ *Resolver }
