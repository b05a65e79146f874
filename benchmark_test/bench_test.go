package benchmark_test

import (
	"context"
	"slices"
	"strconv"
	"testing"

	"github.com/paymolabs/trustgraph"
	"github.com/paymolabs/trustgraph/model"
	"github.com/paymolabs/trustgraph/testutil"
)

func loadedNetwork(b *testing.B, pairs []model.Pair) *trustgraph.Network {
	b.Helper()

	net := trustgraph.New(trustgraph.WithInitialCapacity(len(pairs)))
	net.LoadHistoric(context.Background(), slices.Values(pairs))
	return net
}

func BenchmarkLoadHistoric(b *testing.B) {
	pairs := testutil.NewRNG(1).RandomPairs(100_000, 20_000)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		net := trustgraph.New(trustgraph.WithInitialCapacity(len(pairs)))
		net.LoadHistoric(context.Background(), slices.Values(pairs))
	}
}

func BenchmarkEvaluate_Direct(b *testing.B) {
	ctx := context.Background()
	net := loadedNetwork(b, testutil.NewRNG(1).RandomPairs(100_000, 20_000))
	pairs := testutil.NewRNG(1).RandomPairs(1, 20_000)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		net.Evaluate(ctx, pairs[0].A, pairs[0].B)
	}
}

func BenchmarkEvaluate_Shallow(b *testing.B) {
	ctx := context.Background()
	net := loadedNetwork(b, testutil.Chain(4))

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		// Degree 2 on the first call; the direct-connection shortcut takes
		// over after the evaluated payment becomes history.
		net.Evaluate(ctx, model.UID(0), model.UID(2))
	}
}

func BenchmarkEvaluate_Unreachable(b *testing.B) {
	ctx := context.Background()
	net := loadedNetwork(b, testutil.Chain(1000))

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		// A fresh counterparty every iteration keeps the search exhausting
		// the chain component instead of hitting the committed edge.
		net.Evaluate(ctx, model.UID(500), model.UserString(strconv.Itoa(i)))
	}
}

func BenchmarkEvaluate_RandomStream(b *testing.B) {
	ctx := context.Background()
	net := loadedNetwork(b, testutil.NewRNG(1).RandomPairs(100_000, 20_000))
	stream := testutil.NewRNG(2).RandomPairs(100_000, 20_000)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p := stream[i%len(stream)]
		net.Evaluate(ctx, p.A, p.B)
	}
}
