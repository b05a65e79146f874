package trustgraph

import (
	"context"
	"iter"
	"sync"
	"time"

	"github.com/paymolabs/trustgraph/internal/graph"
	"github.com/paymolabs/trustgraph/internal/pairset"
	"github.com/paymolabs/trustgraph/internal/registry"
	"github.com/paymolabs/trustgraph/internal/search"
	"github.com/paymolabs/trustgraph/model"
)

// Network is the incremental relationship-graph engine. It owns the
// identity registry, the relationship graph, the direct-connection index
// and the search scratch state, and serializes all mutation behind a
// single mutex: one logical writer, with each payment fully resolved,
// searched, classified and committed before the next one is considered.
type Network struct {
	mu       sync.Mutex
	registry *registry.Registry
	graph    *graph.Graph
	direct   *pairset.Set
	searcher *search.Searcher

	logger  *Logger
	metrics MetricsCollector
}

// New creates an empty payment network.
func New(optFns ...Option) *Network {
	opts := applyOptions(optFns)

	return &Network{
		registry: registry.New(opts.initialCapacity),
		graph:    graph.New(opts.initialCapacity),
		direct:   pairset.New(),
		searcher: search.NewSearcher(opts.initialCapacity),
		logger:   opts.logger,
		metrics:  opts.metrics,
	}
}

// Register resolves the node for the given user, allocating a fresh dense
// index on first sight. Total over any UserID value.
func (n *Network) Register(u model.UserID) model.NodeID {
	n.mu.Lock()
	defer n.mu.Unlock()

	return n.registry.ResolveOrCreate(u)
}

// LoadHistoric folds a sequence of historic payment pairs into the network
// without classifying them. It returns the number of edges actually
// inserted; repeated and self pairs insert nothing.
func (n *Network) LoadHistoric(ctx context.Context, pairs iter.Seq[model.Pair]) int {
	start := time.Now()

	n.mu.Lock()

	var total, inserted int
	for p := range pairs {
		total++
		if n.commit(n.registry.ResolveOrCreate(p.A), n.registry.ResolveOrCreate(p.B)) {
			inserted++
		}
	}

	n.mu.Unlock()

	n.metrics.RecordBulkLoad(total, inserted, time.Since(start))
	n.logger.LogBulkLoad(ctx, total, inserted)

	return inserted
}

// Evaluate classifies one live payment between two users and then folds it
// into the network, so it counts as history for every payment after it.
//
// The degree is computed strictly against the pre-payment graph: if the
// users have already transacted the degree is fixed at 1 by the
// direct-connection index, with no search; otherwise a
// degree-of-separation search runs over the graph as it stands before this
// payment's edge exists. Classification uses that degree, and only then is
// the edge committed. A payment can therefore never be judged trusted by
// the very connection it creates.
func (n *Network) Evaluate(ctx context.Context, a, b model.UserID) Evaluation {
	start := time.Now()

	n.mu.Lock()

	na := n.registry.ResolveOrCreate(a)
	nb := n.registry.ResolveOrCreate(b)
	n.graph.EnsureNode(na)
	n.graph.EnsureNode(nb)

	var (
		degree model.Degree
		direct bool
	)

	switch {
	case na == nb:
		// Self payment: no self-loop can exist, nothing is inserted.
		degree = model.Unreachable
	case n.direct.Contains(na, nb):
		degree = 1
		direct = true
	default:
		searchStart := time.Now()
		degree = n.searcher.Degree(n.graph, na, nb)
		n.metrics.RecordSearch(n.searcher.Expanded(), time.Since(searchStart))

		n.commit(na, nb)
	}

	n.mu.Unlock()

	ev := Evaluation{
		Degree:   degree,
		Verdicts: Classify(degree),
		Direct:   direct,
	}

	n.metrics.RecordEvaluate(time.Since(start), degree, direct)
	n.logger.LogEvaluate(ctx, a, b, degree, direct)

	return ev
}

// commit inserts the edge {a,b} into the graph and the direct-connection
// index. The two structures stay exactly consistent: the pair is marked
// connected iff the edge insertion happened. Caller holds n.mu.
func (n *Network) commit(a, b model.NodeID) bool {
	if !n.graph.AddEdge(a, b) {
		return false
	}
	n.direct.Add(a, b)

	return true
}

// Connected reports whether two users share a prior direct payment. Users
// never seen before are not connected to anyone.
func (n *Network) Connected(a, b model.UserID) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	na, ok := n.registry.Lookup(a)
	if !ok {
		return false
	}
	nb, ok := n.registry.Lookup(b)
	if !ok {
		return false
	}

	return n.direct.Contains(na, nb)
}

// Edges returns a snapshot of every relationship as user pairs, in
// canonical per-edge order. The slice reflects state at call time, not a
// live view, and is safe to hand to visualization or persistence
// collaborators while the network keeps growing.
func (n *Network) Edges() []model.Pair {
	start := time.Now()

	n.mu.Lock()

	out := make([]model.Pair, 0, n.graph.NumEdges())
	for a, b := range n.graph.Edges() {
		ua, _ := n.registry.UserOf(a)
		ub, _ := n.registry.UserOf(b)
		out = append(out, model.Pair{A: ua, B: ub})
	}

	n.mu.Unlock()

	n.metrics.RecordExport(len(out), time.Since(start))

	return out
}

// Users returns the number of registered users.
func (n *Network) Users() int {
	n.mu.Lock()
	defer n.mu.Unlock()

	return n.registry.Len()
}

// EdgeCount returns the number of relationships in the network.
func (n *Network) EdgeCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()

	return n.graph.NumEdges()
}
