// Package trustgraph flags potentially fraudulent peer-to-peer payments by
// measuring how socially close two users already were before a new payment
// between them is accepted.
//
// Closeness is the degree of separation in an undirected relationship graph
// built from historic payments: users are nodes, and an edge means at least
// one payment has occurred between the two users. Each new payment is
// classified into three independent trust tiers from the degree of
// separation computed on the graph as it stood before that payment.
//
// # Quick Start
//
// Build a network from historic payments, then evaluate live ones:
//
//	net := trustgraph.New()
//
//	net.LoadHistoric(ctx, slices.Values([]model.Pair{
//	    {A: model.UID(1), B: model.UID(2)},
//	    {A: model.UID(2), B: model.UID(3)},
//	}))
//
//	ev := net.Evaluate(ctx, model.UID(1), model.UID(3))
//	// ev.Degree == 2, ev.Tier1 == false, ev.Tier2 == true, ev.Tier3 == true
//
// Every evaluated payment becomes part of history for all payments that
// follow it, so a stream of payments is evaluated in order, each against
// the state left by its predecessors.
//
// # Trust Tiers
//
// A fixed policy maps the degree of separation to three verdicts:
//
//   - Tier 1: trusted iff degree <= 1 (a prior direct payment)
//   - Tier 2: trusted iff degree <= 2 (a friend of a friend)
//   - Tier 3: trusted iff degree <= 4
//
// Users in disconnected components have an unreachable degree and are
// unverified on all tiers.
//
// # Collaborators
//
// The core is in-memory and total over its inputs. CSV ingestion lives in
// package ingest, DOT visualization, verdict streams and binary snapshots
// in package export, and storage backends (local, S3, MinIO) in package
// blobstore. See cmd/trustgraph for the batch-then-stream process loop.
package trustgraph
