package node

import (
	"errors"
	"testing"

	"github.com/m-saad-siddique/graphql-backend/graph/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry() *Registry {
	registry := NewRegistry()

	photos := map[string]*model.Photo{
		"1": {ID: "1", Title: "Sunset", UserID: "7"},
	}
	users := map[string]*model.User{
		"7": {ID: "7", Email: "alice@example.com"},
	}

	registry.Register("Photo", func(id string) (model.Node, error) {
		p, ok := photos[id]
		if !ok {
			return nil, errors.New("photo not found")
		}
		return p, nil
	})
	registry.Register("User", func(id string) (model.Node, error) {
		u, ok := users[id]
		if !ok {
			return nil, errors.New("user not found")
		}
		return u, nil
	})

	return registry
}

func TestEncodeDecodeID(t *testing.T) {
	t.Run("Round trip", func(t *testing.T) {
		globalID := EncodeID("Photo", "42")

		kind, id, err := DecodeID(globalID)
		require.NoError(t, err)
		assert.Equal(t, "Photo", kind)
		assert.Equal(t, "42", id)
	})

	t.Run("Garbage is rejected", func(t *testing.T) {
		_, _, err := DecodeID("!!!not-base64!!!")
		assert.Error(t, err)
	})

	t.Run("Decodable but malformed payload is rejected", func(t *testing.T) {
		_, _, err := DecodeID(EncodeID("", "42"))
		assert.Error(t, err)

		_, _, err = DecodeID(EncodeID("Photo", ""))
		assert.Error(t, err)
	})
}

func TestRegistry_Resolve(t *testing.T) {
	registry := newTestRegistry()

	t.Run("Resolves a known photo", func(t *testing.T) {
		entity := registry.Resolve(EncodeID("Photo", "1"))
		require.NotNil(t, entity)

		photo, ok := entity.(*model.Photo)
		require.True(t, ok)
		assert.Equal(t, "Sunset", photo.Title)
	})

	t.Run("Missing row resolves to nil", func(t *testing.T) {
		assert.Nil(t, registry.Resolve(EncodeID("Photo", "999")))
	})

	t.Run("Unknown kind resolves to nil", func(t *testing.T) {
		assert.Nil(t, registry.Resolve(EncodeID("Album", "1")))
	})

	t.Run("Garbage resolves to nil", func(t *testing.T) {
		assert.Nil(t, registry.Resolve("garbage"))
	})
}

func TestRegistry_ResolveMany(t *testing.T) {
	registry := newTestRegistry()

	t.Run("Output is positionally aligned with input", func(t *testing.T) {
		nodes := registry.ResolveMany([]string{
			EncodeID("Photo", "1"),
			"garbage",
			EncodeID("User", "7"),
		})

		require.Len(t, nodes, 3)
		require.NotNil(t, nodes[0])
		assert.Equal(t, "1", nodes[0].GetID())
		assert.Nil(t, nodes[1])
		require.NotNil(t, nodes[2])
		assert.Equal(t, "7", nodes[2].GetID())
	})

	t.Run("Empty input yields empty output", func(t *testing.T) {
		nodes := registry.ResolveMany(nil)
		assert.Len(t, nodes, 0)
	})
}
