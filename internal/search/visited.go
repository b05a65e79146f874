package search

import "github.com/paymolabs/trustgraph/model"

// visitedSet tracks visited nodes with a bitset plus a dirty list so that
// Reset costs O(visited), not O(capacity). Reused across searches.
type visitedSet struct {
	bits  []uint64
	dirty []model.NodeID
}

func newVisitedSet(capacity int) *visitedSet {
	return &visitedSet{
		bits:  make([]uint64, (capacity+63)/64),
		dirty: make([]model.NodeID, 0, 128),
	}
}

// visit marks a node as visited.
func (v *visitedSet) visit(id model.NodeID) {
	wordIdx := int(id >> 6)
	bitMask := uint64(1) << (id & 63)

	if wordIdx >= len(v.bits) {
		v.grow(wordIdx + 1)
	}

	if v.bits[wordIdx]&bitMask == 0 {
		v.bits[wordIdx] |= bitMask
		v.dirty = append(v.dirty, id)
	}
}

// visited returns true if the node has been visited.
func (v *visitedSet) visited(id model.NodeID) bool {
	wordIdx := int(id >> 6)
	if wordIdx >= len(v.bits) {
		return false
	}
	return v.bits[wordIdx]&(uint64(1)<<(id&63)) != 0
}

// count returns the number of nodes visited since the last reset.
func (v *visitedSet) count() int {
	return len(v.dirty)
}

// reset clears the visited status for all nodes visited in the current
// session.
func (v *visitedSet) reset() {
	for _, id := range v.dirty {
		wordIdx := int(id >> 6)
		bitMask := uint64(1) << (id & 63)
		v.bits[wordIdx] &^= bitMask
	}
	v.dirty = v.dirty[:0]
}

// ensureCapacity ensures the set can hold at least capacity nodes.
func (v *visitedSet) ensureCapacity(capacity int) {
	wordIdx := (capacity + 63) / 64
	if wordIdx > len(v.bits) {
		v.grow(wordIdx)
	}
}

func (v *visitedSet) grow(newLen int) {
	newCap := len(v.bits) * 2
	if newCap < newLen {
		newCap = newLen
	}

	newBits := make([]uint64, newCap)
	copy(newBits, v.bits)
	v.bits = newBits
}
