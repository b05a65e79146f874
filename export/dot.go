package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/paymolabs/trustgraph/model"
)

// WriteDOT renders the relationship network as a Graphviz document. The
// relationship semantics are undirected, so edges use "--".
func WriteDOT(w io.Writer, edges []model.Pair) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "graph paymo {")
	fmt.Fprintln(bw, "  rankdir=LR")
	fmt.Fprintln(bw, "  edge[style=\"bold\"]")
	fmt.Fprintln(bw, "  node[shape=\"oval\"]")

	for _, e := range edges {
		if _, err := fmt.Fprintf(bw, "  %q -- %q\n", e.A.String(), e.B.String()); err != nil {
			return err
		}
	}

	fmt.Fprintln(bw, "}")

	return bw.Flush()
}
