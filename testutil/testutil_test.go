package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/paymolabs/trustgraph/model"
)

func TestRNG_Deterministic(t *testing.T) {
	a := NewRNG(42).RandomPairs(100, 50)
	b := NewRNG(42).RandomPairs(100, 50)

	assert.Equal(t, a, b)
}

func TestRandomPairs_NoSelfPairs(t *testing.T) {
	for _, p := range NewRNG(1).RandomPairs(1000, 10) {
		assert.NotEqual(t, p.A, p.B)
	}
}

func TestChain(t *testing.T) {
	pairs := Chain(3)

	assert.Equal(t, []model.Pair{
		{A: model.UID(0), B: model.UID(1)},
		{A: model.UID(1), B: model.UID(2)},
		{A: model.UID(2), B: model.UID(3)},
	}, pairs)
}

func TestExactDegree(t *testing.T) {
	pairs := Chain(4)

	assert.Equal(t, model.Degree(1), ExactDegree(pairs, model.UID(0), model.UID(1)))
	assert.Equal(t, model.Degree(4), ExactDegree(pairs, model.UID(0), model.UID(4)))
	assert.Equal(t, model.Unreachable, ExactDegree(pairs, model.UID(0), model.UID(99)))
	assert.Equal(t, model.Unreachable, ExactDegree(pairs, model.UID(0), model.UID(0)))
}
