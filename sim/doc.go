// Package sim replays page reference traces against a bounded cache under
// pluggable replacement policies and tallies hits, misses, and the hit ratio.
//
// Design
//
//   - State: each run owns a map[P]*node for residency checks and an
//     intrusive MRU↔LRU doubly linked list for ordering. All per-reference
//     operations are O(1) except the look-ahead policy's victim scan.
//
//   - Policies: replacement behavior is pluggable via the policy package.
//     LRU, FIFO, LFU, a Belady look-ahead ("opt"), and seeded random are
//     provided; PolicyFor is the single dispatch point from selector names.
//     More policies can be added without changing the driver.
//
//   - Determinism: every policy is deterministic for a given trace; random
//     is deterministic for a given (trace, seed) pair. Tie-breaks (LFU,
//     look-ahead) resolve by earliest admission, so results are reproducible.
//
//   - Concurrency: a run is single-goroutine and lock-free. Any number of
//     runs may execute in parallel as long as each has its own Options and
//     state; Compare does exactly that over a shared read-only trace.
//
//   - Metrics: Options.Metrics receives Hit/Miss/Evict signals. By default
//     NoopMetrics is used; plug the Prometheus adapter to export counters.
//
// Basic usage
//
//	res, err := sim.Run([]int{1, 2, 3, 1, 4}, sim.Options[int]{
//	    Capacity: 3,
//	    Policy:   lru.New[int](),
//	})
//	// res.Hits == 1, res.Misses == 4
//
// Selecting a policy by name
//
//	pol, err := sim.PolicyFor[string]("lfu", 0)
//	if err != nil {
//	    // unknown or empty selector
//	}
//
// Comparing policies
//
//	results, err := sim.Compare(ctx, trace, 64,
//	    lru.New[int](), fifo.New[int](), opt.New[int]())
package sim
