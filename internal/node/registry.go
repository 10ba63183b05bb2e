package node

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/m-saad-siddique/graphql-backend/graph/model"
)

// LookupFunc resolves a storage-level ID to an entity of one kind.
type LookupFunc func(id string) (model.Node, error)

// Registry dispatches opaque global identifiers to per-kind lookup
// functions. Kinds are registered at wiring time, one per nodeable entity.
type Registry struct {
	lookups map[string]LookupFunc
}

func NewRegistry() *Registry {
	return &Registry{lookups: make(map[string]LookupFunc)}
}

func (r *Registry) Register(kind string, fn LookupFunc) {
	r.lookups[kind] = fn
}

// EncodeID builds the opaque global identifier for a kind/id pair.
func EncodeID(kind, id string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(kind + ":" + id))
}

// DecodeID splits a global identifier back into kind and storage ID.
func DecodeID(globalID string) (string, string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(globalID)
	if err != nil {
		return "", "", fmt.Errorf("invalid global id: %w", err)
	}

	parts := strings.SplitN(string(raw), ":", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid global id %q", string(raw))
	}

	return parts[0], parts[1], nil
}

// Resolve maps a global ID to its entity. Garbage IDs, unknown kinds and
// missing rows all resolve to nil - absence is not a failure.
func (r *Registry) Resolve(globalID string) model.Node {
	kind, id, err := DecodeID(globalID)
	if err != nil {
		return nil
	}

	lookup, ok := r.lookups[kind]
	if !ok {
		return nil
	}

	entity, err := lookup(id)
	if err != nil {
		return nil
	}

	return entity
}

// ResolveMany resolves a batch of global IDs. The result is positionally
// aligned with the input: element i corresponds to globalIDs[i], with nil
// standing in for anything that did not resolve.
func (r *Registry) ResolveMany(globalIDs []string) []model.Node {
	nodes := make([]model.Node, len(globalIDs))
	for i, id := range globalIDs {
		nodes[i] = r.Resolve(id)
	}
	return nodes
}
