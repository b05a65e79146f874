// Package graph implements the undirected relationship graph over dense
// node indices. The graph is simple (no parallel edges, no self-loops) and
// monotonically growing: nodes and edges are never removed.
package graph

import (
	"iter"

	"github.com/paymolabs/trustgraph/model"
)

// Graph is an adjacency-list graph over NodeIDs. Not safe for concurrent
// use; callers serialize mutation behind a single writer.
type Graph struct {
	adjacency [][]model.NodeID
	numEdges  int
}

// New creates an empty graph with capacity for the given number of nodes.
func New(capacity int) *Graph {
	return &Graph{
		adjacency: make([][]model.NodeID, 0, capacity),
	}
}

// EnsureNode grows the graph so that node n exists.
func (g *Graph) EnsureNode(n model.NodeID) {
	for uint32(len(g.adjacency)) <= n {
		g.adjacency = append(g.adjacency, nil)
	}
}

// NumNodes returns the number of nodes in the graph.
func (g *Graph) NumNodes() int {
	return len(g.adjacency)
}

// NumEdges returns the number of edges in the graph.
func (g *Graph) NumEdges() int {
	return g.numEdges
}

// AddEdge inserts the undirected edge {a,b} if it does not already exist
// and reports whether an insertion happened. Self-loops are ignored.
// Idempotent: a second call with the same unordered pair is a no-op.
func (g *Graph) AddEdge(a, b model.NodeID) bool {
	if a == b {
		return false
	}

	g.EnsureNode(a)
	g.EnsureNode(b)

	if g.HasEdge(a, b) {
		return false
	}

	g.adjacency[a] = append(g.adjacency[a], b)
	g.adjacency[b] = append(g.adjacency[b], a)
	g.numEdges++

	return true
}

// HasEdge reports whether the undirected edge {a,b} exists. It scans the
// shorter of the two adjacency lists.
func (g *Graph) HasEdge(a, b model.NodeID) bool {
	if int(a) >= len(g.adjacency) || int(b) >= len(g.adjacency) {
		return false
	}

	scan, want := a, b
	if len(g.adjacency[b]) < len(g.adjacency[a]) {
		scan, want = b, a
	}

	for _, n := range g.adjacency[scan] {
		if n == want {
			return true
		}
	}

	return false
}

// Neighbors returns a snapshot copy of the nodes adjacent to n. The copy
// reflects state at call time, not a live view.
func (g *Graph) Neighbors(n model.NodeID) []model.NodeID {
	if int(n) >= len(g.adjacency) {
		return nil
	}

	conns := g.adjacency[n]
	if len(conns) == 0 {
		return nil
	}

	out := make([]model.NodeID, len(conns))
	copy(out, conns)

	return out
}

// Adjacent returns the live adjacency slice for n. It must not be mutated
// or retained across graph mutations; search hot paths use it to avoid
// per-layer allocations.
func (g *Graph) Adjacent(n model.NodeID) []model.NodeID {
	if int(n) >= len(g.adjacency) {
		return nil
	}
	return g.adjacency[n]
}

// Edges iterates every edge exactly once in canonical order, smaller node
// first per edge, ascending by first node.
func (g *Graph) Edges() iter.Seq2[model.NodeID, model.NodeID] {
	return func(yield func(model.NodeID, model.NodeID) bool) {
		for a, conns := range g.adjacency {
			for _, b := range conns {
				if uint32(a) < b {
					if !yield(uint32(a), b) {
						return
					}
				}
			}
		}
	}
}
