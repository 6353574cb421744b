// Package random implements uniform random replacement.
package random

import (
	"math/rand"

	"github.com/pranita383/virtual-memory-and-cache-optimizer/policy"
)

// random evicts a uniformly chosen resident. The generator is owned by the
// run instance; nothing global is touched.
type random[P comparable] struct {
	h   policy.Hooks[P]
	rng *rand.Rand
}

type randomPolicy[P comparable] struct {
	seed int64
}

// New returns a Policy factory seeded with the given value. Every run gets
// its own generator re-seeded from that value, so a (trace, seed) pair
// always reproduces the same eviction sequence.
func New[P comparable](seed int64) policy.Policy[P] { return randomPolicy[P]{seed: seed} }

func (randomPolicy[P]) Name() string { return "random" }

func (p randomPolicy[P]) New(h policy.Hooks[P]) policy.RunPolicy[P] {
	return &random[P]{h: h, rng: rand.New(rand.NewSource(p.seed))}
}

// OnAdmit places the new page at MRU.
func (p *random[P]) OnAdmit(n policy.Node[P]) { p.h.PushFront(n) }

// OnHit is a no-op: residency is all that matters.
func (p *random[P]) OnHit(_ policy.Node[P]) {}

// Victim picks a resident uniformly at random.
func (p *random[P]) Victim(_ P, _ []P) policy.Node[P] {
	rs := p.h.Residents()
	if len(rs) == 0 {
		return nil
	}
	return rs[p.rng.Intn(len(rs))]
}

// OnEvict is a no-op.
func (p *random[P]) OnEvict(_ policy.Node[P]) {}
