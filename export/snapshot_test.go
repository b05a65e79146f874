package export

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paymolabs/trustgraph"
	"github.com/paymolabs/trustgraph/blobstore"
	"github.com/paymolabs/trustgraph/model"
)

func chainNetwork(t *testing.T) *trustgraph.Network {
	t.Helper()

	net := trustgraph.New()
	net.LoadHistoric(context.Background(), func(yield func(model.Pair) bool) {
		pairs := []model.Pair{
			{A: model.UID(1), B: model.UID(2)},
			{A: model.UID(2), B: model.UID(3)},
			{A: model.UID(3), B: model.UserString("mallory")},
		}
		for _, p := range pairs {
			if !yield(p) {
				return
			}
		}
	})

	return net
}

func TestSnapshot_RoundTrip(t *testing.T) {
	compressions := map[string]Compression{
		"none": CompressionNone,
		"lz4":  CompressionLZ4,
		"zstd": CompressionZSTD,
	}

	for name, compression := range compressions {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			net := chainNetwork(t)
			store := blobstore.NewMemoryStore()

			err := WriteSnapshot(ctx, store, "graph.snap", net, func(o *SnapshotOptions) {
				o.Compression = compression
			})
			require.NoError(t, err)

			edges, err := ReadSnapshot(ctx, store, "graph.snap")
			require.NoError(t, err)
			assert.Equal(t, net.Edges(), edges)
		})
	}
}

func TestSnapshot_Restore(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	require.NoError(t, WriteSnapshot(ctx, store, "graph.snap", chainNetwork(t)))

	restored, err := RestoreSnapshot(ctx, store, "graph.snap")
	require.NoError(t, err)

	assert.Equal(t, 3, restored.EdgeCount())
	assert.Equal(t, 4, restored.Users())
	assert.True(t, restored.Connected(model.UID(1), model.UID(2)))
	assert.True(t, restored.Connected(model.UID(3), model.UserString("mallory")))

	ev := restored.Evaluate(ctx, model.UID(1), model.UID(3))
	assert.Equal(t, model.Degree(2), ev.Degree)
}

func TestReadSnapshot_NotFound(t *testing.T) {
	_, err := ReadSnapshot(context.Background(), blobstore.NewMemoryStore(), "missing.snap")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestReadSnapshot_Corrupted(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	require.NoError(t, WriteSnapshot(ctx, store, "graph.snap", chainNetwork(t)))

	blob, err := store.Open(ctx, "graph.snap")
	require.NoError(t, err)
	data, err := blobstore.ReadAll(blob)
	require.NoError(t, err)
	require.NoError(t, blob.Close())

	t.Run("flipped byte", func(t *testing.T) {
		corrupted := append([]byte(nil), data...)
		corrupted[len(corrupted)/2] ^= 0xff

		require.NoError(t, store.Put(ctx, "bad.snap", corrupted))
		_, err := ReadSnapshot(ctx, store, "bad.snap")
		assert.ErrorIs(t, err, ErrBadSnapshot)
	})

	t.Run("truncated", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "short.snap", data[:5]))
		_, err := ReadSnapshot(ctx, store, "short.snap")
		assert.ErrorIs(t, err, ErrBadSnapshot)
	})
}

func TestSnapshot_EmptyNetwork(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	require.NoError(t, WriteSnapshot(ctx, store, "empty.snap", trustgraph.New()))

	edges, err := ReadSnapshot(ctx, store, "empty.snap")
	require.NoError(t, err)
	assert.Empty(t, edges)
}

func TestSnapshot_ManyEdges(t *testing.T) {
	ctx := context.Background()
	net := trustgraph.New()

	net.LoadHistoric(ctx, func(yield func(model.Pair) bool) {
		for i := range 500 {
			p := model.Pair{A: model.UID(uint64(i)), B: model.UID(uint64(i + 1))}
			if !yield(p) {
				return
			}
		}
	})

	store := blobstore.NewMemoryStore()
	for _, compression := range []Compression{CompressionLZ4, CompressionZSTD} {
		name := fmt.Sprintf("many-%d.snap", compression)
		err := WriteSnapshot(ctx, store, name, net, func(o *SnapshotOptions) {
			o.Compression = compression
		})
		require.NoError(t, err)

		edges, err := ReadSnapshot(ctx, store, name)
		require.NoError(t, err)
		assert.Len(t, edges, 500)
	}
}
