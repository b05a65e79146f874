package testutil

import (
	"math/rand"
	"sync"

	"github.com/paymolabs/trustgraph/model"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// RandomPairs generates num payment pairs over a population of users
// users. Self pairs are avoided; repeated pairs are possible, as in a
// real payment feed.
func (r *RNG) RandomPairs(num, users int) []model.Pair {
	r.mu.Lock()
	defer r.mu.Unlock()

	pairs := make([]model.Pair, num)
	for i := range pairs {
		a := r.rand.Intn(users)
		b := r.rand.Intn(users - 1)
		if b >= a {
			b++
		}
		pairs[i] = model.Pair{A: model.UID(uint64(a)), B: model.UID(uint64(b))}
	}

	return pairs
}

// Chain generates the pairs of a line graph 0-1-2-...-n, useful for
// exercising searches at a known exact depth.
func Chain(n int) []model.Pair {
	pairs := make([]model.Pair, n)
	for i := range pairs {
		pairs[i] = model.Pair{A: model.UID(uint64(i)), B: model.UID(uint64(i + 1))}
	}
	return pairs
}

// ExactDegree computes the degree of separation between a and b over the
// given pairs with a plain breadth-first search, as ground truth for the
// engine's early-terminating search. Returns model.Unreachable when no
// path exists or a == b.
func ExactDegree(pairs []model.Pair, a, b model.UserID) model.Degree {
	if a == b {
		return model.Unreachable
	}

	adjacency := make(map[model.UserID][]model.UserID)
	for _, p := range pairs {
		if p.A == p.B {
			continue
		}
		adjacency[p.A] = append(adjacency[p.A], p.B)
		adjacency[p.B] = append(adjacency[p.B], p.A)
	}

	visited := map[model.UserID]bool{a: true}
	frontier := []model.UserID{a}

	for depth := model.Degree(1); len(frontier) > 0; depth++ {
		var next []model.UserID
		for _, u := range frontier {
			for _, v := range adjacency[u] {
				if v == b {
					return depth
				}
				if !visited[v] {
					visited[v] = true
					next = append(next, v)
				}
			}
		}
		frontier = next
	}

	return model.Unreachable
}
