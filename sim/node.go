package sim

// node is an intrusive doubly linked list element owned by a run's state.
// It stores the page identifier alongside list links and the admission
// sequence number policies use for deterministic tie-breaks.
type node[P comparable] struct {
	page P

	// Intrusive list links: head is MRU, tail is LRU.
	prev *node[P]
	next *node[P]

	// Admission sequence number, unique and increasing within one run.
	seq uint64
}

// Page returns the page identifier (part of policy.Node interface).
func (n *node[P]) Page() P { return n.page }

// Seq returns the admission sequence number (part of policy.Node interface).
func (n *node[P]) Seq() uint64 { return n.seq }
