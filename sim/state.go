package sim

import (
	"github.com/pranita383/virtual-memory-and-cache-optimizer/policy"
)

// state is the per-run cache state: a page->node map for O(1) residency
// checks and an intrusive doubly linked list (head=MRU, tail=LRU) whose
// order is maintained by the active policy through hooks.
//
// A state belongs to exactly one Run call and is never shared, so no
// locking is needed.
type state[P comparable] struct {
	m    map[P]*node[P]
	head *node[P] // MRU
	tail *node[P] // LRU
	len  int      // number of resident pages
	cap  int      // residency limit
	seq  uint64   // admission counter
}

func newState[P comparable](capacity int) *state[P] {
	return &state[P]{
		m:   make(map[P]*node[P], capacity),
		cap: capacity,
	}
}

// lookup returns the resident node for a page, if any.
func (s *state[P]) lookup(p P) (*node[P], bool) {
	n, ok := s.m[p]
	return n, ok
}

// full reports whether the next admission needs an eviction first.
func (s *state[P]) full() bool { return s.len >= s.cap }

// admit creates a node for a missed page and registers it in the map.
// List placement is left to the policy (OnAdmit pushes via hooks).
func (s *state[P]) admit(p P) *node[P] {
	s.seq++
	n := &node[P]{page: p, seq: s.seq}
	s.m[p] = n
	return n
}

// evict removes n from the list and the map.
func (s *state[P]) evict(n *node[P]) {
	s.removeNode(n)
	delete(s.m, n.page)
}

// -------------------- list operations --------------------

// insertFront inserts n at MRU in O(1).
func (s *state[P]) insertFront(n *node[P]) {
	n.prev = nil
	n.next = s.head
	if s.head != nil {
		s.head.prev = n
	}
	s.head = n
	if s.tail == nil {
		s.tail = n
	}
	s.len++
}

// moveToFront promotes n to MRU in O(1).
func (s *state[P]) moveToFront(n *node[P]) {
	if n == s.head {
		return
	}
	// detach
	if n.prev != nil {
		n.prev.next = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	}
	if s.tail == n {
		s.tail = n.prev
	}
	// insert at head
	n.prev = nil
	n.next = s.head
	if s.head != nil {
		s.head.prev = n
	}
	s.head = n
	if s.tail == nil {
		s.tail = n
	}
}

// removeNode removes n from the list and updates counters in O(1).
func (s *state[P]) removeNode(n *node[P]) {
	if n.prev != nil {
		n.prev.next = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	}
	if s.head == n {
		s.head = n.next
	}
	if s.tail == n {
		s.tail = n.prev
	}
	n.prev, n.next = nil, nil
	s.len--
}

// back returns the current LRU node in O(1).
func (s *state[P]) back() *node[P] { return s.tail }

// -------------------- policy hooks --------------------

// stateHooks adapts the state's list operations to policy.Hooks.
type stateHooks[P comparable] struct{ s *state[P] }

func (h stateHooks[P]) MoveToFront(x policy.Node[P]) { h.s.moveToFront(x.(*node[P])) }
func (h stateHooks[P]) PushFront(x policy.Node[P])   { h.s.insertFront(x.(*node[P])) }

func (h stateHooks[P]) Back() policy.Node[P] {
	if h.s.tail == nil {
		return nil
	}
	return h.s.tail
}

func (h stateHooks[P]) Len() int { return h.s.len }

// Residents snapshots the list front to back. The driver calls Victim at
// most once per reference, so the allocation stays proportional to misses.
func (h stateHooks[P]) Residents() []policy.Node[P] {
	rs := make([]policy.Node[P], 0, h.s.len)
	for n := h.s.head; n != nil; n = n.next {
		rs = append(rs, n)
	}
	return rs
}
