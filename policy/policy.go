package policy

// Node is the minimal contract a resident page must satisfy for a policy.
// Seq is the admission sequence number: it grows monotonically within one
// run and identifies the earliest-inserted resident for tie-breaks.
type Node[P comparable] interface {
	Page() P
	Seq() uint64
}

// Hooks expose O(1) list operations a policy can use to manipulate the run's
// intrusive MRU/LRU list, plus a resident-set snapshot for policies that must
// scan it (LFU, Optimal, Random). Implementations are provided by the
// simulation state.
//
// Concurrency: a run is single-goroutine; hooks are never called concurrently.
// Important: hooks manage only the list; the state owns the page->node map.
type Hooks[P comparable] interface {
	// MoveToFront promotes the node to MRU.
	MoveToFront(Node[P])
	// PushFront inserts the node at MRU (used on admission).
	PushFront(Node[P])
	// Back returns the current LRU node (or nil if empty).
	Back() Node[P]
	// Len returns the number of resident pages.
	Len() int
	// Residents returns the resident nodes in list order, front to back.
	Residents() []Node[P]
}

// RunPolicy is a per-run policy instance bound to that run's hooks.
//
// Driver protocol, one reference at a time:
//   - resident page        -> OnHit
//   - miss with room       -> OnAdmit (after the state created the node)
//   - miss with full cache -> Victim; on a non-nil victim the driver calls
//     OnEvict for it and then OnAdmit for the new node.
//
// Victim receives the missed reference and the remaining trace after it;
// only the look-ahead policy reads the suffix. A nil return means "admit
// nothing": the reference still counts as a miss, but the resident set is
// left untouched. Only the look-ahead policy ever declines.
type RunPolicy[P comparable] interface {
	OnAdmit(Node[P])
	OnHit(Node[P])
	Victim(next P, future []P) Node[P]
	OnEvict(Node[P])
}

// Policy is a factory that creates run-local policy instances bound to a
// particular run's hooks. Factories are reusable across runs; instances
// never are.
type Policy[P comparable] interface {
	Name() string
	New(Hooks[P]) RunPolicy[P]
}
