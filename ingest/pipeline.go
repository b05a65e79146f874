package ingest

import (
	"context"
	"io"
	"iter"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/paymolabs/trustgraph"
	"github.com/paymolabs/trustgraph/model"
)

// Options configures the ingest pipelines.
type Options struct {
	// Logger receives progress and completion logs.
	Logger *trustgraph.Logger

	// ChannelDepth is the buffer between the parser and the graph writer.
	ChannelDepth int
}

// DefaultOptions are the default pipeline options.
var DefaultOptions = Options{
	ChannelDepth: 1024,
}

// VerdictSink receives one evaluation per streamed payment, in the order
// the payments were evaluated.
type VerdictSink interface {
	WriteVerdict(p Payment, ev trustgraph.Evaluation) error
}

// LoadBatch parses historic payments from r and bulk-loads them into net.
// Parsing runs concurrently with graph insertion; the graph still sees a
// single writer, in record order. Returns the number of records consumed.
// A malformed record aborts the load.
func LoadBatch(ctx context.Context, net *trustgraph.Network, r io.Reader, optFns ...func(*Options)) (int, error) {
	opts := applyOptions(optFns)

	g, ctx := errgroup.WithContext(ctx)
	ch := make(chan model.Pair, opts.ChannelDepth)

	var records int
	g.Go(func() error {
		defer close(ch)
		return parseInto(ctx, r, ch, &records, opts)
	})

	g.Go(func() error {
		net.LoadHistoric(ctx, drain(ch))
		return nil
	})

	if err := g.Wait(); err != nil {
		return records, err
	}
	return records, nil
}

// EvaluateStream parses live payments from r, evaluates each against net
// and delivers the verdicts to sink in payment order. Every evaluated
// payment becomes history for the payments after it. A malformed record or
// a sink error aborts the stream.
func EvaluateStream(ctx context.Context, net *trustgraph.Network, r io.Reader, sink VerdictSink, optFns ...func(*Options)) (int, error) {
	opts := applyOptions(optFns)

	g, ctx := errgroup.WithContext(ctx)
	ch := make(chan Payment, opts.ChannelDepth)

	g.Go(func() error {
		defer close(ch)

		reader := NewReader(r)
		progress := rate.Sometimes{Interval: time.Second}

		n := 0
		for {
			p, err := reader.Next()
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return err
			}

			select {
			case ch <- p:
			case <-ctx.Done():
				return ctx.Err()
			}

			n++
			if opts.Logger != nil {
				progress.Do(func() {
					opts.Logger.DebugContext(ctx, "stream progress", "records", n)
				})
			}
		}
	})

	var evaluated int
	g.Go(func() error {
		for p := range ch {
			ev := net.Evaluate(ctx, p.From, p.To)
			if err := sink.WriteVerdict(p, ev); err != nil {
				return err
			}
			evaluated++
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return evaluated, err
	}
	return evaluated, nil
}

// parseInto feeds user pairs from r into ch until EOF or error.
func parseInto(ctx context.Context, r io.Reader, ch chan<- model.Pair, records *int, opts Options) error {
	reader := NewReader(r)
	progress := rate.Sometimes{Interval: time.Second}

	for {
		p, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		select {
		case ch <- p.Pair():
		case <-ctx.Done():
			return ctx.Err()
		}

		*records++
		if opts.Logger != nil {
			n := *records
			progress.Do(func() {
				opts.Logger.DebugContext(ctx, "batch progress", "records", n)
			})
		}
	}
}

// drain adapts a channel of pairs to the sequence LoadHistoric consumes.
func drain(ch <-chan model.Pair) iter.Seq[model.Pair] {
	return func(yield func(model.Pair) bool) {
		for p := range ch {
			if !yield(p) {
				return
			}
		}
	}
}

func applyOptions(optFns []func(*Options)) Options {
	opts := DefaultOptions
	for _, fn := range optFns {
		if fn != nil {
			fn(&opts)
		}
	}
	if opts.ChannelDepth <= 0 {
		opts.ChannelDepth = DefaultOptions.ChannelDepth
	}
	return opts
}
