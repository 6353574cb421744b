// Package lfu implements the Least-Frequently-Used replacement policy.
package lfu

import "github.com/pranita383/virtual-memory-and-cache-optimizer/policy"

// lfu counts accesses per resident page. The victim is the lowest count;
// equal counts fall back to the earliest admission (smallest Seq), which
// keeps runs reproducible.
type lfu[P comparable] struct {
	h    policy.Hooks[P]
	freq map[policy.Node[P]]uint64
}

type lfuPolicy[P comparable] struct{}

// New returns a Policy factory that constructs per-run LFU instances.
func New[P comparable]() policy.Policy[P] { return lfuPolicy[P]{} }

func (lfuPolicy[P]) Name() string { return "lfu" }

func (lfuPolicy[P]) New(h policy.Hooks[P]) policy.RunPolicy[P] {
	return &lfu[P]{h: h, freq: make(map[policy.Node[P]]uint64)}
}

// OnAdmit places the new page at MRU with an access count of one.
func (p *lfu[P]) OnAdmit(n policy.Node[P]) {
	p.h.PushFront(n)
	p.freq[n] = 1
}

// OnHit bumps the access count. The list is left alone: LFU ordering lives
// entirely in the counters.
func (p *lfu[P]) OnHit(n policy.Node[P]) { p.freq[n]++ }

// Victim scans the residents for the lowest access count, breaking ties by
// the smallest admission sequence number.
func (p *lfu[P]) Victim(_ P, _ []P) policy.Node[P] {
	var victim policy.Node[P]
	var low uint64
	for _, n := range p.h.Residents() {
		f := p.freq[n]
		if victim == nil || f < low || (f == low && n.Seq() < victim.Seq()) {
			victim, low = n, f
		}
	}
	return victim
}

// OnEvict forgets the counter for the departing page.
func (p *lfu[P]) OnEvict(n policy.Node[P]) { delete(p.freq, n) }
