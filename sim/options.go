package sim

import (
	"github.com/pranita383/virtual-memory-and-cache-optimizer/policy"
)

// Options configures a single simulation run.
type Options[P comparable] struct {
	// Capacity is the number of pages the cache can hold. Must be >= 1.
	Capacity int

	// Policy is the replacement policy factory; Run creates a fresh
	// run-local instance from it. Required: there is no silent default.
	Policy policy.Policy[P]

	// Observability
	// OnEvict is called with every evicted page, in eviction order.
	// Keep callbacks lightweight.
	OnEvict func(page P)
	// Metrics receives Hit/Miss/Evict signals. Nil => NoopMetrics.
	Metrics Metrics
}

func (o Options[P]) validate() error {
	if o.Capacity < 1 {
		return ErrInvalidCapacity
	}
	if o.Policy == nil {
		return ErrNoPolicy
	}
	return nil
}
