// Package lru implements the Least-Recently-Used replacement policy.
package lru

import "github.com/pranita383/virtual-memory-and-cache-optimizer/policy"

// lru is a classic "move-to-front" policy: hits promote the page to MRU,
// and the victim is whatever sank to the back of the run's list.
type lru[P comparable] struct {
	h policy.Hooks[P]
}

type lruPolicy[P comparable] struct{}

// New returns a Policy factory that constructs per-run LRU instances.
func New[P comparable]() policy.Policy[P] { return lruPolicy[P]{} }

func (lruPolicy[P]) Name() string { return "lru" }

// New implements policy.Policy by binding run hooks and returning
// a run-local policy instance.
func (lruPolicy[P]) New(h policy.Hooks[P]) policy.RunPolicy[P] {
	return &lru[P]{h: h}
}

// OnAdmit places the new page at MRU.
func (p *lru[P]) OnAdmit(n policy.Node[P]) { p.h.PushFront(n) }

// OnHit promotes the page to MRU.
func (p *lru[P]) OnHit(n policy.Node[P]) { p.h.MoveToFront(n) }

// Victim is the least-recently-used resident: the back of the list.
func (p *lru[P]) Victim(_ P, _ []P) policy.Node[P] { return p.h.Back() }

// OnEvict is a no-op for pure LRU (nothing to clean up in policy state).
func (p *lru[P]) OnEvict(_ policy.Node[P]) {}
