package trustgraph

import "github.com/paymolabs/trustgraph/model"

// Trust tier thresholds. A tier is trusted iff the degree of separation is
// at or below its threshold.
const (
	Tier1MaxDegree = model.Degree(1)
	Tier2MaxDegree = model.Degree(2)
	Tier3MaxDegree = model.Degree(4)
)

// Verdicts holds the three independent trust verdicts for one payment.
// true means trusted, false means unverified.
type Verdicts struct {
	Tier1 bool
	Tier2 bool
	Tier3 bool
}

// Classify maps a degree of separation to the three tier verdicts. Pure:
// no side effects, no error conditions. Unreachable degrees compare above
// every threshold and yield unverified on all tiers.
func Classify(d model.Degree) Verdicts {
	return Verdicts{
		Tier1: d <= Tier1MaxDegree,
		Tier2: d <= Tier2MaxDegree,
		Tier3: d <= Tier3MaxDegree,
	}
}

// Evaluation is the outcome of evaluating one live payment.
type Evaluation struct {
	// Degree is the degree of separation between the two users on the
	// graph as it stood before this payment.
	Degree model.Degree

	// Verdicts are the tier verdicts derived from Degree.
	Verdicts

	// Direct reports that the degree came from the direct-connection
	// shortcut: the two users had already transacted, so the degree is
	// fixed at 1 without a search.
	Direct bool
}
