package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/paymolabs/trustgraph/model"
)

func TestRegistry_ResolveOrCreate(t *testing.T) {
	r := New(4)

	n1 := r.ResolveOrCreate(model.UID(52575))
	n2 := r.ResolveOrCreate(model.UID(1120))

	// Dense, first-seen order
	assert.Equal(t, model.NodeID(0), n1)
	assert.Equal(t, model.NodeID(1), n2)
	assert.Equal(t, 2, r.Len())

	// Same user, same node
	assert.Equal(t, n1, r.ResolveOrCreate(model.UID(52575)))
	assert.Equal(t, 2, r.Len())
}

func TestRegistry_MutualInverses(t *testing.T) {
	r := New(4)

	users := []model.UserID{
		model.UID(7),
		model.UserString("alice"),
		model.UID(0),
	}

	for _, u := range users {
		n := r.ResolveOrCreate(u)

		back, ok := r.UserOf(n)
		assert.True(t, ok)
		assert.Equal(t, u, back)

		got, ok := r.Lookup(u)
		assert.True(t, ok)
		assert.Equal(t, n, got)
	}
}

func TestRegistry_Lookup_Unknown(t *testing.T) {
	r := New(0)

	_, ok := r.Lookup(model.UID(1))
	assert.False(t, ok)

	_, ok = r.UserOf(0)
	assert.False(t, ok)
}

func TestRegistry_NumericAndStringDistinct(t *testing.T) {
	r := New(4)

	// The numeric user 42 and the string user "42" are different users
	n1 := r.ResolveOrCreate(model.UID(42))
	n2 := r.ResolveOrCreate(model.UserString("42"))

	assert.NotEqual(t, n1, n2)
	assert.Equal(t, 2, r.Len())
}
