// Package pairset implements the direct-connection index: a membership set
// over canonical node pairs answering "have these two users transacted
// before?" without touching adjacency lists.
package pairset

import (
	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/paymolabs/trustgraph/model"
)

// Canonical orders an unordered node pair so the numerically smaller node
// comes first. Canonical(a,b) == Canonical(b,a) for any a, b.
func Canonical(a, b model.NodeID) (lo, hi model.NodeID) {
	if a < b {
		return a, b
	}
	return b, a
}

// key packs a canonical pair into a single uint64. The packing is a
// bijection over ordered uint32 pairs, so membership answers can never
// collide across distinct pairs.
func key(lo, hi model.NodeID) uint64 {
	return uint64(lo)<<32 | uint64(hi)
}

// Set is a direct-connection membership set backed by a 64-bit roaring
// bitmap. Not safe for concurrent use; callers serialize mutation behind a
// single writer.
type Set struct {
	bm *roaring64.Bitmap
}

// New creates an empty pair set.
func New() *Set {
	return &Set{bm: roaring64.New()}
}

// Add records that the pair {a,b} is directly connected.
func (s *Set) Add(a, b model.NodeID) {
	lo, hi := Canonical(a, b)
	s.bm.Add(key(lo, hi))
}

// Contains reports whether the pair {a,b} is directly connected.
func (s *Set) Contains(a, b model.NodeID) bool {
	lo, hi := Canonical(a, b)
	return s.bm.Contains(key(lo, hi))
}

// Len returns the number of directly connected pairs.
func (s *Set) Len() int {
	return int(s.bm.GetCardinality())
}
