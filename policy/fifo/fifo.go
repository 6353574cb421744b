// Package fifo implements the First-In-First-Out replacement policy.
package fifo

import (
	"github.com/gammazero/deque"

	"github.com/pranita383/virtual-memory-and-cache-optimizer/policy"
)

// fifo evicts in admission order regardless of later hits. The policy keeps
// its own admission queue; hits never reorder, so the queue front is always
// the oldest still-resident page.
type fifo[P comparable] struct {
	h policy.Hooks[P]
	q *deque.Deque[policy.Node[P]]
}

type fifoPolicy[P comparable] struct{}

// New returns a Policy factory that constructs per-run FIFO instances.
func New[P comparable]() policy.Policy[P] { return fifoPolicy[P]{} }

func (fifoPolicy[P]) Name() string { return "fifo" }

func (fifoPolicy[P]) New(h policy.Hooks[P]) policy.RunPolicy[P] {
	return &fifo[P]{h: h, q: deque.New[policy.Node[P]]()}
}

// OnAdmit places the new page at MRU and records it at the tail of the
// admission queue.
func (p *fifo[P]) OnAdmit(n policy.Node[P]) {
	p.h.PushFront(n)
	p.q.PushBack(n)
}

// OnHit does nothing: re-referencing a resident page never refreshes its
// position under FIFO.
func (p *fifo[P]) OnHit(_ policy.Node[P]) {}

// Victim is the oldest admitted resident: the front of the admission queue.
func (p *fifo[P]) Victim(_ P, _ []P) policy.Node[P] {
	if p.q.Len() == 0 {
		return nil
	}
	return p.q.Front()
}

// OnEvict drops the node from the admission queue. The driver always evicts
// the node Victim proposed, so this pops the front.
func (p *fifo[P]) OnEvict(n policy.Node[P]) {
	if p.q.Len() > 0 && p.q.Front() == n {
		p.q.PopFront()
		return
	}
	for i := 0; i < p.q.Len(); i++ {
		if p.q.At(i) == n {
			p.q.Remove(i)
			return
		}
	}
}
