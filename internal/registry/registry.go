// Package registry implements the identity registry: a bidirectional
// mapping between stable user identifiers and dense graph node indices.
package registry

import (
	"github.com/paymolabs/trustgraph/model"
)

// Registry assigns dense NodeIDs to UserIDs in first-seen order and keeps
// both directions of the mapping. The two mappings are mutual inverses for
// the lifetime of the process: a UserID is never assigned two nodes and a
// node is never reused. Not safe for concurrent use; callers serialize
// mutation behind a single writer.
type Registry struct {
	forward  map[model.UserID]model.NodeID
	backward []model.UserID
}

// New creates an empty registry with capacity for the given number of users.
func New(capacity int) *Registry {
	return &Registry{
		forward:  make(map[model.UserID]model.NodeID, capacity),
		backward: make([]model.UserID, 0, capacity),
	}
}

// ResolveOrCreate returns the node for the given user, allocating the next
// unused index on first sight. Total: it succeeds for any UserID value.
func (r *Registry) ResolveOrCreate(u model.UserID) model.NodeID {
	if n, ok := r.forward[u]; ok {
		return n
	}

	n := model.NodeID(len(r.backward))
	r.forward[u] = n
	r.backward = append(r.backward, u)

	return n
}

// Lookup returns the node for the given user without allocating.
func (r *Registry) Lookup(u model.UserID) (model.NodeID, bool) {
	n, ok := r.forward[u]
	return n, ok
}

// UserOf returns the user for the given node.
func (r *Registry) UserOf(n model.NodeID) (model.UserID, bool) {
	if int(n) >= len(r.backward) {
		return model.UserID{}, false
	}
	return r.backward[n], true
}

// Len returns the number of registered users.
func (r *Registry) Len() int {
	return len(r.backward)
}
