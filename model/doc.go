// Package model defines core types used throughout trustgraph.
//
// # Identity Types
//
//   - UserID: Stable, user-facing identifier (numeric or string kind)
//   - NodeID: Dense, internal graph index assigned in first-seen order
//
// NodeIDs are used for all hot-path structures (adjacency slices, bitsets,
// search frontiers). UserIDs appear only at the API boundary and in exports.
//
// # Data Types
//
//   - Pair: An unordered pair of UserIDs, one payment relationship
//   - Degree: Shortest-path distance between two users, or Unreachable
package model
