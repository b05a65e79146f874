// Package search implements the degree-of-separation search: an unweighted
// breadth-first expansion that stops the instant the target is discovered.
//
// All edges carry implicit unit cost, so frontier expansion layer by layer
// yields exact shortest-path distances. The early stop is an ordinary
// return on target discovery, not a control-flow signal: the worst case
// without it is O(V+E) over the reachable component, while the typical
// cost with it is the size of the ball around the start node up to the
// discovery radius.
package search

import (
	"github.com/paymolabs/trustgraph/internal/graph"
	"github.com/paymolabs/trustgraph/model"
)

// Searcher runs degree-of-separation searches over a graph. It owns
// reusable scratch state (visited bitset, frontier buffers) so repeated
// searches allocate nothing on the steady state. Not safe for concurrent
// use; one Searcher per logical writer.
type Searcher struct {
	visited  *visitedSet
	frontier []model.NodeID
	next     []model.NodeID
	expanded int
}

// NewSearcher creates a Searcher sized for the given number of nodes.
func NewSearcher(capacity int) *Searcher {
	return &Searcher{
		visited:  newVisitedSet(capacity),
		frontier: make([]model.NodeID, 0, 128),
		next:     make([]model.NodeID, 0, 128),
	}
}

// Degree returns the shortest-path distance from start to target in g, or
// model.Unreachable if target is not in start's component.
//
// Callers are expected to handle the direct-edge case (degree 1) via the
// direct-connection index before searching; the search itself still
// returns correct distances for any start/target in the graph. A search
// for start == target reports Unreachable: no self-loop can exist, so the
// case never arises from payment pairs.
func (s *Searcher) Degree(g *graph.Graph, start, target model.NodeID) model.Degree {
	s.expanded = 0

	if start == target {
		return model.Unreachable
	}

	s.visited.ensureCapacity(g.NumNodes())
	defer func() {
		s.expanded = s.visited.count()
		s.visited.reset()
	}()

	s.visited.visit(start)
	s.frontier = append(s.frontier[:0], start)

	for depth := model.Degree(1); len(s.frontier) > 0; depth++ {
		s.next = s.next[:0]

		for _, n := range s.frontier {
			for _, neighbor := range g.Adjacent(n) {
				if s.visited.visited(neighbor) {
					continue
				}
				if neighbor == target {
					// Discovered in non-decreasing distance order, so the
					// first discovery is the exact shortest distance.
					return depth
				}

				s.visited.visit(neighbor)
				s.next = append(s.next, neighbor)
			}
		}

		s.frontier, s.next = s.next, s.frontier
	}

	return model.Unreachable
}

// Expanded returns the number of nodes visited by the most recent search.
func (s *Searcher) Expanded() int {
	return s.expanded
}
