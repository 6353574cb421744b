// Package opt implements Belady's look-ahead ("optimal") replacement policy.
//
// Optimal is the one policy that cannot operate on a true one-pass stream:
// every eviction decision scans the remaining trace to find how soon each
// resident page is referenced again.
package opt

import (
	"math"

	"github.com/pranita383/virtual-memory-and-cache-optimizer/policy"
)

// never marks a page with no further reference in the trace.
const never = math.MaxInt

type opt[P comparable] struct {
	h policy.Hooks[P]
}

type optPolicy[P comparable] struct{}

// New returns a Policy factory that constructs per-run look-ahead instances.
func New[P comparable]() policy.Policy[P] { return optPolicy[P]{} }

func (optPolicy[P]) Name() string { return "opt" }

func (optPolicy[P]) New(h policy.Hooks[P]) policy.RunPolicy[P] {
	return &opt[P]{h: h}
}

// OnAdmit places the new page at MRU.
func (p *opt[P]) OnAdmit(n policy.Node[P]) { p.h.PushFront(n) }

// OnHit needs no bookkeeping: decisions are recomputed from the suffix.
func (p *opt[P]) OnHit(_ policy.Node[P]) {}

// Victim evicts the resident whose next reference is farthest in the future;
// a page never referenced again always loses. Equal distances fall back to
// the earliest admission. When the missed page itself is referenced later
// than every resident, Victim returns nil and the page is not admitted:
// keeping the residents is strictly better in that case.
func (p *opt[P]) Victim(next P, future []P) policy.Node[P] {
	nextRef := make(map[P]int, len(future))
	for i, pg := range future {
		if _, seen := nextRef[pg]; !seen {
			nextRef[pg] = i
		}
	}

	var victim policy.Node[P]
	far := -1
	for _, n := range p.h.Residents() {
		d, ok := nextRef[n.Page()]
		if !ok {
			d = never
		}
		if victim == nil || d > far || (d == far && n.Seq() < victim.Seq()) {
			victim, far = n, d
		}
	}

	d, ok := nextRef[next]
	if !ok {
		d = never
	}
	if d > far {
		return nil // bypass: the incoming page is the worst candidate
	}
	return victim
}

// OnEvict is a no-op: there is no per-page state to discard.
func (p *opt[P]) OnEvict(_ policy.Node[P]) {}
