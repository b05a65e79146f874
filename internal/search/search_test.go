package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/paymolabs/trustgraph/internal/graph"
	"github.com/paymolabs/trustgraph/model"
)

// line builds the path graph 0-1-2-...-n.
func line(n int) *graph.Graph {
	g := graph.New(n + 1)
	for i := 0; i < n; i++ {
		g.AddEdge(model.NodeID(i), model.NodeID(i+1))
	}
	return g
}

func TestSearcher_Degree(t *testing.T) {
	g := line(5)
	s := NewSearcher(g.NumNodes())

	assert.Equal(t, model.Degree(1), s.Degree(g, 0, 1))
	assert.Equal(t, model.Degree(2), s.Degree(g, 0, 2))
	assert.Equal(t, model.Degree(5), s.Degree(g, 0, 5))
	assert.Equal(t, model.Degree(3), s.Degree(g, 4, 1))
}

func TestSearcher_Degree_Symmetric(t *testing.T) {
	g := line(4)
	s := NewSearcher(g.NumNodes())

	for a := model.NodeID(0); a <= 4; a++ {
		for b := model.NodeID(0); b <= 4; b++ {
			if a == b {
				continue
			}
			assert.Equal(t, s.Degree(g, a, b), s.Degree(g, b, a), "a=%d b=%d", a, b)
		}
	}
}

func TestSearcher_Degree_Unreachable(t *testing.T) {
	g := line(2)
	g.EnsureNode(9) // isolated node
	s := NewSearcher(g.NumNodes())

	assert.Equal(t, model.Unreachable, s.Degree(g, 0, 9))
	assert.Equal(t, model.Unreachable, s.Degree(g, 9, 0))
	assert.False(t, s.Degree(g, 0, 9).Reachable())
}

func TestSearcher_Degree_SameNode(t *testing.T) {
	g := line(2)
	s := NewSearcher(g.NumNodes())

	assert.Equal(t, model.Unreachable, s.Degree(g, 1, 1))
}

func TestSearcher_ShortestOverLongerPath(t *testing.T) {
	// Two routes from 0 to 3: 0-1-2-3 and the shortcut 0-4-3
	g := graph.New(5)
	g.AddEdge(0, 1)
	g.AddEdge(1, 2)
	g.AddEdge(2, 3)
	g.AddEdge(0, 4)
	g.AddEdge(4, 3)
	s := NewSearcher(g.NumNodes())

	assert.Equal(t, model.Degree(2), s.Degree(g, 0, 3))
}

func TestSearcher_Reuse(t *testing.T) {
	// Scratch state must fully reset between searches
	g := line(4)
	s := NewSearcher(g.NumNodes())

	assert.Equal(t, model.Degree(4), s.Degree(g, 0, 4))
	assert.Equal(t, model.Degree(4), s.Degree(g, 0, 4))
	assert.Equal(t, model.Degree(1), s.Degree(g, 2, 3))
}

func TestSearcher_Expanded(t *testing.T) {
	g := line(10)
	s := NewSearcher(g.NumNodes())

	// Early stop: finding the immediate neighbor of 0 must not walk the
	// whole line
	assert.Equal(t, model.Degree(1), s.Degree(g, 0, 1))
	assert.Less(t, s.Expanded(), 3)

	s.Degree(g, 0, 10)
	assert.Greater(t, s.Expanded(), 5)
}

func TestSearcher_GrowsWithGraph(t *testing.T) {
	g := line(2)
	s := NewSearcher(g.NumNodes())
	assert.Equal(t, model.Degree(2), s.Degree(g, 0, 2))

	// Graph grows after the searcher was created
	for i := 2; i < 200; i++ {
		g.AddEdge(model.NodeID(i), model.NodeID(i+1))
	}
	assert.Equal(t, model.Degree(200), s.Degree(g, 0, 200))
}
