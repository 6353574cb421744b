package prom

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pranita383/virtual-memory-and-cache-optimizer/sim"
)

// Adapter exports simulation counters to Prometheus, labeled by policy.
// Safe for concurrent use; all Prometheus metric types are goroutine-safe.
type Adapter struct {
	hits   *prometheus.CounterVec
	misses *prometheus.CounterVec
	evicts *prometheus.CounterVec
	runs   *prometheus.CounterVec
}

// New constructs a Prometheus metrics adapter.
//   - reg:          registry to register metrics with (nil => prometheus.DefaultRegisterer)
//   - ns, sub:      Prometheus namespace and subsystem
//   - constLabels:  static labels applied to all metrics (may be nil)
func New(reg prometheus.Registerer, ns, sub string, constLabels prometheus.Labels) *Adapter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	labels := []string{"policy"}
	a := &Adapter{
		hits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "hits_total",
			Help:        "Simulated cache hits",
			ConstLabels: constLabels,
		}, labels),
		misses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "misses_total",
			Help:        "Simulated cache misses",
			ConstLabels: constLabels,
		}, labels),
		evicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "evictions_total",
			Help:        "Simulated evictions",
			ConstLabels: constLabels,
		}, labels),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "runs_total",
			Help:        "Completed simulation runs",
			ConstLabels: constLabels,
		}, labels),
	}
	reg.MustRegister(a.hits, a.misses, a.evicts, a.runs)
	return a
}

// For returns a sim.Metrics bound to one policy label value.
func (a *Adapter) For(policyName string) sim.Metrics {
	return bound{
		hits:   a.hits.WithLabelValues(policyName),
		misses: a.misses.WithLabelValues(policyName),
		evicts: a.evicts.WithLabelValues(policyName),
	}
}

// RunCompleted counts one finished run for a policy.
func (a *Adapter) RunCompleted(policyName string) {
	a.runs.WithLabelValues(policyName).Inc()
}

// bound implements sim.Metrics for a single policy label.
type bound struct {
	hits   prometheus.Counter
	misses prometheus.Counter
	evicts prometheus.Counter
}

func (b bound) Hit()   { b.hits.Inc() }
func (b bound) Miss()  { b.misses.Inc() }
func (b bound) Evict() { b.evicts.Inc() }

// Compile-time check: ensure the bound view implements sim.Metrics.
var _ sim.Metrics = bound{}
