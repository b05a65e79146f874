package model

import (
	"fmt"
	"math"
	"strconv"
)

// NodeID is a dense, internal identifier for a user in the relationship graph.
// It is assigned in first-seen order and used for all hot-path structures
// (adjacency slices, bitsets, search frontiers).
// Invariant: never reused, exactly one per UserID for the process lifetime.
type NodeID = uint32

// UserIDKind discriminates the representation of a UserID.
type UserIDKind uint8

const (
	// UserIDKindUint64 is a numeric user identifier.
	UserIDKindUint64 UserIDKind = 0
	// UserIDKindString is a string user identifier.
	UserIDKindString UserIDKind = 1
)

// UserID is the stable, user-facing identifier of a payment-network user.
// It is an immutable value type: either a uint64 or a string, comparable
// and usable as a map key.
type UserID struct {
	kind UserIDKind
	num  uint64
	str  string
}

// UID creates a numeric UserID.
func UID(v uint64) UserID {
	return UserID{kind: UserIDKindUint64, num: v}
}

// UserString creates a string UserID.
func UserString(s string) UserID {
	return UserID{kind: UserIDKindString, str: s}
}

// Kind returns the representation kind of the UserID.
func (u UserID) Kind() UserIDKind {
	return u.kind
}

// Uint64 returns the numeric value. ok is false for string UserIDs.
func (u UserID) Uint64() (v uint64, ok bool) {
	return u.num, u.kind == UserIDKindUint64
}

// StringValue returns the string value. ok is false for numeric UserIDs.
func (u UserID) StringValue() (s string, ok bool) {
	return u.str, u.kind == UserIDKindString
}

// String returns a display representation of the UserID.
func (u UserID) String() string {
	if u.kind == UserIDKindUint64 {
		return strconv.FormatUint(u.num, 10)
	}
	return u.str
}

// Pair is an unordered pair of users linked by at least one payment.
type Pair struct {
	A UserID
	B UserID
}

// String returns a display representation of the Pair.
func (p Pair) String() string {
	return fmt.Sprintf("(%s,%s)", p.A, p.B)
}

// Degree is the degree of separation between two users: the shortest-path
// distance, in edge count, in the relationship graph.
type Degree int32

// Unreachable is the sentinel Degree for users in disconnected components.
// It is larger than any real distance, so threshold comparisons of the form
// degree <= limit classify unreachable pairs as unverified without a
// special case.
const Unreachable Degree = math.MaxInt32

// Reachable reports whether d represents an actual path.
func (d Degree) Reachable() bool {
	return d != Unreachable
}

// String returns a display representation of the Degree.
func (d Degree) String() string {
	if d == Unreachable {
		return "unreachable"
	}
	return strconv.FormatInt(int64(d), 10)
}
