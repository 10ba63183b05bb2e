package graph

import (
	"github.com/m-saad-siddique/graphql-backend/internal/blob"
	"github.com/m-saad-siddique/graphql-backend/internal/like"
	"github.com/m-saad-siddique/graphql-backend/internal/node"
	"github.com/m-saad-siddique/graphql-backend/internal/photo"
	"github.com/m-saad-siddique/graphql-backend/internal/subscription"
	"github.com/m-saad-siddique/graphql-backend/internal/user"
)

//go:generate go run github.com/99designs/gqlgen generate

// Resolver is the root of all resolvers. Storage dependencies are injected
// here; the resolvers themselves hold no state of their own.
type Resolver struct {
	UserStore           user.UserStorage
	PhotoStore          photo.PhotoStorage
	LikeStore           like.LikeStorage
	BlobStore           blob.BlobStorage
	NodeRegistry        *node.Registry
	SubscriptionManager subscription.Manager
}
