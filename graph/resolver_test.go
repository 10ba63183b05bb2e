package graph

import (
	"context"
	"strings"
	"testing"

	"github.com/99designs/gqlgen/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m-saad-siddique/graphql-backend/graph/model"
	"github.com/m-saad-siddique/graphql-backend/internal/apperr"
	"github.com/m-saad-siddique/graphql-backend/internal/auth"
	"github.com/m-saad-siddique/graphql-backend/internal/mocks"
	"github.com/m-saad-siddique/graphql-backend/internal/node"
)

func createUserContext(userID uint) context.Context {
	ctx := context.Background()
	return auth.WithUserID(ctx, userID)
}

func testUpload(content, filename, contentType string) graphql.Upload {
	return graphql.Upload{
		File:        strings.NewReader(content),
		Filename:    filename,
		Size:        int64(len(content)),
		ContentType: contentType,
	}
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func TestMutationResolver_SignUpAndSignIn(t *testing.T) {
	mockUserStorage := mocks.NewMockUserStorage()

	resolver := &Resolver{
		UserStore: mockUserStorage,
	}

	ctx := context.Background()

	t.Run("Successful sign up", func(t *testing.T) {
		payload, err := resolver.Mutation().SignUp(ctx, "test@example.com", "password123")
		require.NoError(t, err)
		require.NotNil(t, payload)
		assert.Contains(t, payload.Token, "jwt-token-for-user-")
		require.NotNil(t, payload.User)
		assert.Equal(t, "test@example.com", payload.User.Email)
	})

	t.Run("Successful sign in", func(t *testing.T) {
		payload, err := resolver.Mutation().SignIn(ctx, "test@example.com", "password123")
		require.NoError(t, err)
		require.NotNil(t, payload)
		assert.NotEmpty(t, payload.Token)
		assert.Equal(t, "test@example.com", payload.User.Email)
	})

	t.Run("Sign up with duplicate email fails with validation error", func(t *testing.T) {
		payload, err := resolver.Mutation().SignUp(ctx, "test@example.com", "password456")
		assert.Error(t, err)
		assert.Nil(t, payload)
		assert.Equal(t, "VALIDATION_ERROR", apperr.Code(err))
	})

	t.Run("Sign up with blank fields aggregates all messages", func(t *testing.T) {
		_, err := resolver.Mutation().SignUp(ctx, "", "")
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.Code(err))
		assert.Contains(t, err.Error(), "email can't be blank")
		assert.Contains(t, err.Error(), "password can't be blank")
	})

	t.Run("Sign in with wrong password and with unknown email look identical", func(t *testing.T) {
		_, errWrongPassword := resolver.Mutation().SignIn(ctx, "test@example.com", "wrongpassword")
		_, errUnknownEmail := resolver.Mutation().SignIn(ctx, "nobody@example.com", "password123")

		require.Error(t, errWrongPassword)
		require.Error(t, errUnknownEmail)
		assert.Equal(t, errWrongPassword.Error(), errUnknownEmail.Error())
		assert.Equal(t, "UNAUTHENTICATED", apperr.Code(errWrongPassword))
		assert.Equal(t, "UNAUTHENTICATED", apperr.Code(errUnknownEmail))
	})
}

func TestMutationResolver_UploadPhoto(t *testing.T) {
	t.Run("Successful upload", func(t *testing.T) {
		mockPhotoStorage := mocks.NewMockPhotoStorage()
		mockBlobStorage := mocks.NewMockBlobStorage()
		subscriptionManager := mocks.NewMockSubscriptionManager()

		resolver := &Resolver{
			PhotoStore:          mockPhotoStorage,
			BlobStore:           mockBlobStorage,
			SubscriptionManager: subscriptionManager,
		}

		ctx := createUserContext(123)

		photo, err := resolver.Mutation().UploadPhoto(ctx, "My Cat", testUpload("image-bytes", "cat.jpg", "image/jpeg"))
		require.NoError(t, err)
		require.NotNil(t, photo)
		assert.Equal(t, "My Cat", photo.Title)
		assert.Equal(t, "123", photo.UserID)
		require.NotNil(t, photo.ImageURL)
		assert.Equal(t, "/uploads/"+photo.ID, *photo.ImageURL)
		assert.True(t, mockBlobStorage.Attached(photo.ID))

		// a fully successful upload is announced to subscribers
		notifications := subscriptionManager.Notifications()
		require.Len(t, notifications, 1)
		assert.Equal(t, photo.ID, notifications[0].ID)
	})

	t.Run("Error when no authorization", func(t *testing.T) {
		mockPhotoStorage := mocks.NewMockPhotoStorage()

		resolver := &Resolver{
			PhotoStore: mockPhotoStorage,
			BlobStore:  mocks.NewMockBlobStorage(),
		}

		photo, err := resolver.Mutation().UploadPhoto(context.Background(), "Title", testUpload("x", "x.jpg", "image/jpeg"))
		assert.Error(t, err)
		assert.Nil(t, photo)
		assert.Equal(t, "UNAUTHORIZED", apperr.Code(err))
	})

	t.Run("Empty title fails with validation error and creates no photo", func(t *testing.T) {
		mockPhotoStorage := mocks.NewMockPhotoStorage()

		resolver := &Resolver{
			PhotoStore: mockPhotoStorage,
			BlobStore:  mocks.NewMockBlobStorage(),
		}

		ctx := createUserContext(123)

		photo, err := resolver.Mutation().UploadPhoto(ctx, "  ", testUpload("x", "x.jpg", "image/jpeg"))
		assert.Error(t, err)
		assert.Nil(t, photo)
		assert.Equal(t, "VALIDATION_ERROR", apperr.Code(err))
		assert.Contains(t, err.Error(), "title can't be blank")

		feed, err := mockPhotoStorage.ListPhotos(nil, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, 0, feed.TotalCount)
	})

	t.Run("Failing blob attach keeps the photo row and surfaces upload failure", func(t *testing.T) {
		mockPhotoStorage := mocks.NewMockPhotoStorage()
		mockBlobStorage := mocks.NewMockBlobStorage()
		mockBlobStorage.FailAttach = true
		subscriptionManager := mocks.NewMockSubscriptionManager()

		resolver := &Resolver{
			PhotoStore:          mockPhotoStorage,
			BlobStore:           mockBlobStorage,
			SubscriptionManager: subscriptionManager,
		}

		ctx := createUserContext(123)

		photo, err := resolver.Mutation().UploadPhoto(ctx, "Orphaned", testUpload("x", "x.jpg", "image/jpeg"))
		require.Error(t, err)
		assert.Nil(t, photo)
		assert.Equal(t, "UPLOAD_FAILED", apperr.Code(err))
		assert.Contains(t, err.Error(), "upload failed")
		assert.Contains(t, err.Error(), "blob store unavailable")

		// no rollback: the titled photo stays queryable through the feed,
		// just without an image
		feed, err := mockPhotoStorage.ListPhotos(nil, 10, 0)
		require.NoError(t, err)
		require.Equal(t, 1, feed.TotalCount)
		assert.Equal(t, "Orphaned", feed.Photos[0].Title)
		assert.Nil(t, feed.Photos[0].ImageURL)

		// an incomplete upload is not announced
		assert.Len(t, subscriptionManager.Notifications(), 0)
	})
}

func TestMutationResolver_ToggleLike(t *testing.T) {
	mockPhotoStorage := mocks.NewMockPhotoStorage()
	mockLikeStorage := mocks.NewMockLikeStorage(mockPhotoStorage)

	resolver := &Resolver{
		PhotoStore: mockPhotoStorage,
		LikeStore:  mockLikeStorage,
	}

	ctx := createUserContext(123)

	photo, err := mockPhotoStorage.CreatePhoto(ctx, "Test Photo")
	require.NoError(t, err)

	t.Run("Two calls in a row report liked then unliked", func(t *testing.T) {
		first, err := resolver.Mutation().ToggleLike(ctx, photo.ID)
		require.NoError(t, err)
		assert.True(t, first.Liked)

		second, err := resolver.Mutation().ToggleLike(ctx, photo.ID)
		require.NoError(t, err)
		assert.False(t, second.Liked)

		assert.Equal(t, 0, mockLikeStorage.LikeCount())
	})

	t.Run("Error when no authorization", func(t *testing.T) {
		payload, err := resolver.Mutation().ToggleLike(context.Background(), photo.ID)
		assert.Error(t, err)
		assert.Nil(t, payload)
		assert.Equal(t, "UNAUTHORIZED", apperr.Code(err))
		assert.Equal(t, 0, mockLikeStorage.LikeCount())
	})

	t.Run("Error when photo does not exist", func(t *testing.T) {
		payload, err := resolver.Mutation().ToggleLike(ctx, "non-existent-id")
		assert.Error(t, err)
		assert.Nil(t, payload)
		assert.Equal(t, "NOT_FOUND", apperr.Code(err))
	})
}

func TestQueryResolver_Photos(t *testing.T) {
	mockPhotoStorage := mocks.NewMockPhotoStorage()

	resolver := &Resolver{
		PhotoStore: mockPhotoStorage,
	}

	ctx := createUserContext(123)

	titles := []string{"Cat sleeping", "Dog running", "CATALOG cover", "Sunset", "My cat again"}
	for _, title := range titles {
		_, err := mockPhotoStorage.CreatePhoto(ctx, title)
		require.NoError(t, err)
	}

	t.Run("Defaults apply when arguments are omitted", func(t *testing.T) {
		feed, err := resolver.Query().Photos(ctx, nil, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, 5, feed.TotalCount)
		assert.Len(t, feed.Photos, 5)
	})

	t.Run("Case-insensitive title filter with full count", func(t *testing.T) {
		feed, err := resolver.Query().Photos(ctx, intPtr(1), intPtr(0), strPtr("cat"))
		require.NoError(t, err)

		// totalCount covers the whole filtered set, not the returned page
		assert.Equal(t, 3, feed.TotalCount)
		require.Len(t, feed.Photos, 1)
		assert.Equal(t, "Cat sleeping", feed.Photos[0].Title)
	})

	t.Run("Offset pagination partitions the feed with no gaps or duplicates", func(t *testing.T) {
		seen := make(map[string]bool)
		for offset := 0; offset < 5; offset += 2 {
			feed, err := resolver.Query().Photos(ctx, intPtr(2), intPtr(offset), nil)
			require.NoError(t, err)
			assert.Equal(t, 5, feed.TotalCount)
			for _, p := range feed.Photos {
				assert.False(t, seen[p.ID], "photo %s returned twice", p.ID)
				seen[p.ID] = true
			}
		}
		assert.Len(t, seen, 5)
	})

	t.Run("Offset past the end returns an empty page", func(t *testing.T) {
		feed, err := resolver.Query().Photos(ctx, intPtr(10), intPtr(100), nil)
		require.NoError(t, err)
		assert.Equal(t, 5, feed.TotalCount)
		assert.Len(t, feed.Photos, 0)
	})

	t.Run("Negative paging arguments are served, not a crash", func(t *testing.T) {
		feed, err := resolver.Query().Photos(ctx, intPtr(-1), intPtr(1), nil)
		require.NoError(t, err)
		assert.Equal(t, 5, feed.TotalCount)
		assert.Len(t, feed.Photos, 4)

		feed, err = resolver.Query().Photos(ctx, intPtr(2), intPtr(-3), nil)
		require.NoError(t, err)
		assert.Len(t, feed.Photos, 2)
	})
}

func TestPhotoResolver_LikedByCurrentUser(t *testing.T) {
	mockPhotoStorage := mocks.NewMockPhotoStorage()
	mockLikeStorage := mocks.NewMockLikeStorage(mockPhotoStorage)

	resolver := &Resolver{
		PhotoStore: mockPhotoStorage,
		LikeStore:  mockLikeStorage,
	}

	likerCtx := createUserContext(123)
	otherCtx := createUserContext(456)

	photo, err := mockPhotoStorage.CreatePhoto(likerCtx, "Test Photo")
	require.NoError(t, err)

	_, err = mockLikeStorage.ToggleLike(likerCtx, photo.ID)
	require.NoError(t, err)

	t.Run("True for the user who liked", func(t *testing.T) {
		liked, err := resolver.Photo().LikedByCurrentUser(likerCtx, photo)
		require.NoError(t, err)
		assert.True(t, liked)
	})

	t.Run("False for another user", func(t *testing.T) {
		liked, err := resolver.Photo().LikedByCurrentUser(otherCtx, photo)
		require.NoError(t, err)
		assert.False(t, liked)
	})

	t.Run("False for anonymous viewers", func(t *testing.T) {
		liked, err := resolver.Photo().LikedByCurrentUser(context.Background(), photo)
		require.NoError(t, err)
		assert.False(t, liked)
	})
}

func TestQueryResolver_Me(t *testing.T) {
	mockUserStorage := mocks.NewMockUserStorage()

	resolver := &Resolver{
		UserStore: mockUserStorage,
	}

	registered, err := mockUserStorage.RegisterUser("me@example.com", "password123")
	require.NoError(t, err)

	t.Run("Returns the current user", func(t *testing.T) {
		ctx := createUserContext(1)

		user, err := resolver.Query().Me(ctx)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, registered.Email, user.Email)
	})

	t.Run("Anonymous request returns null, not an error", func(t *testing.T) {
		user, err := resolver.Query().Me(context.Background())
		assert.NoError(t, err)
		assert.Nil(t, user)
	})
}

func TestQueryResolver_NodeAndNodes(t *testing.T) {
	mockUserStorage := mocks.NewMockUserStorage()
	mockPhotoStorage := mocks.NewMockPhotoStorage()

	registry := node.NewRegistry()
	registry.Register("User", func(id string) (model.Node, error) {
		u, err := mockUserStorage.GetUserById(id)
		if err != nil {
			return nil, err
		}
		return u, nil
	})
	registry.Register("Photo", func(id string) (model.Node, error) {
		p, err := mockPhotoStorage.GetPhotoById(id)
		if err != nil {
			return nil, err
		}
		return p, nil
	})

	resolver := &Resolver{
		UserStore:    mockUserStorage,
		PhotoStore:   mockPhotoStorage,
		NodeRegistry: registry,
	}

	user, err := mockUserStorage.RegisterUser("node@example.com", "password123")
	require.NoError(t, err)

	ctx := createUserContext(1)
	photo, err := mockPhotoStorage.CreatePhoto(ctx, "Node Photo")
	require.NoError(t, err)

	t.Run("Resolves an entity by global ID", func(t *testing.T) {
		entity, err := resolver.Query().Node(ctx, node.EncodeID("Photo", photo.ID))
		require.NoError(t, err)
		require.NotNil(t, entity)
		assert.Equal(t, photo.ID, entity.GetID())
	})

	t.Run("Unknown ID resolves to null without error", func(t *testing.T) {
		entity, err := resolver.Query().Node(ctx, "garbage")
		assert.NoError(t, err)
		assert.Nil(t, entity)
	})

	t.Run("Batch resolution is positionally aligned", func(t *testing.T) {
		nodes, err := resolver.Query().Nodes(ctx, []string{
			node.EncodeID("Photo", photo.ID),
			"garbage",
			node.EncodeID("User", user.ID),
		})
		require.NoError(t, err)
		require.Len(t, nodes, 3)

		require.NotNil(t, nodes[0])
		assert.Equal(t, photo.ID, nodes[0].GetID())
		assert.Nil(t, nodes[1])
		require.NotNil(t, nodes[2])
		assert.Equal(t, user.ID, nodes[2].GetID())
	})
}

func TestSubscriptionResolver_PhotoUploaded(t *testing.T) {
	mockPhotoStorage := mocks.NewMockPhotoStorage()
	mockBlobStorage := mocks.NewMockBlobStorage()
	subscriptionManager := mocks.NewMockSubscriptionManager()

	resolver := &Resolver{
		PhotoStore:          mockPhotoStorage,
		BlobStore:           mockBlobStorage,
		SubscriptionManager: subscriptionManager,
	}

	t.Run("Subscriber receives uploaded photos", func(t *testing.T) {
		subCtx, cancel := context.WithCancel(context.Background())
		defer cancel()

		ch, err := resolver.Subscription().PhotoUploaded(subCtx)
		require.NoError(t, err)

		ctx := createUserContext(123)
		uploaded, err := resolver.Mutation().UploadPhoto(ctx, "Streamed", testUpload("x", "x.jpg", "image/jpeg"))
		require.NoError(t, err)

		received := <-ch
		require.NotNil(t, received)
		assert.Equal(t, uploaded.ID, received.ID)
	})
}
