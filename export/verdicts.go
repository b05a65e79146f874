// Package export delivers network state to the outside world: per-tier
// verdict streams, DOT visualizations and binary snapshots stored through
// a blobstore.
package export

import (
	"bufio"
	"io"

	"github.com/paymolabs/trustgraph"
	"github.com/paymolabs/trustgraph/ingest"
)

// Verdict labels, one line per evaluated payment per tier.
const (
	labelTrusted    = "Trusted"
	labelUnverified = "Unverified"
)

// TierWriter writes the three verdict streams, one Trusted/Unverified line
// per payment per tier, in payment order. It implements ingest.VerdictSink.
type TierWriter struct {
	tier1 *bufio.Writer
	tier2 *bufio.Writer
	tier3 *bufio.Writer
}

var _ ingest.VerdictSink = (*TierWriter)(nil)

// NewTierWriter creates a TierWriter over the three tier outputs.
func NewTierWriter(tier1, tier2, tier3 io.Writer) *TierWriter {
	return &TierWriter{
		tier1: bufio.NewWriter(tier1),
		tier2: bufio.NewWriter(tier2),
		tier3: bufio.NewWriter(tier3),
	}
}

// WriteVerdict implements ingest.VerdictSink.
func (t *TierWriter) WriteVerdict(_ ingest.Payment, ev trustgraph.Evaluation) error {
	if err := writeLabel(t.tier1, ev.Tier1); err != nil {
		return err
	}
	if err := writeLabel(t.tier2, ev.Tier2); err != nil {
		return err
	}
	return writeLabel(t.tier3, ev.Tier3)
}

// Flush flushes all three streams.
func (t *TierWriter) Flush() error {
	if err := t.tier1.Flush(); err != nil {
		return err
	}
	if err := t.tier2.Flush(); err != nil {
		return err
	}
	return t.tier3.Flush()
}

func writeLabel(w *bufio.Writer, trusted bool) error {
	label := labelUnverified
	if trusted {
		label = labelTrusted
	}

	if _, err := w.WriteString(label); err != nil {
		return err
	}
	return w.WriteByte('\n')
}
