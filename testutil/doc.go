// Package testutil provides testing utilities for trustgraph.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating reproducible payment graphs and an
// exact reference computation of the degree of separation.
//
// # Random Graph Generation
//
//	rng := testutil.NewRNG(seed)
//	pairs := rng.RandomPairs(10_000, 2_000) // 10k payments over 2k users
//
// # Exact Degree (Ground Truth)
//
//	degree := testutil.ExactDegree(pairs, a, b)
package testutil
