// Package report shapes simulation results for presentation. It performs no
// computation that affects the tallies; callers hand it finished results.
package report

import (
	"fmt"
	"io"
	"math"
	"sort"
	"text/tabwriter"

	"github.com/pranita383/virtual-memory-and-cache-optimizer/sim"
)

// Summary is one run plus the parameters that produced it, ready for
// serialization or rendering.
type Summary struct {
	Policy      string  `json:"policy"`
	CacheSize   int     `json:"cache_size"`
	TraceLength int     `json:"trace_length"`
	Hits        int64   `json:"hits"`
	Misses      int64   `json:"misses"`
	HitRatio    float64 `json:"hit_ratio"`
}

// New builds a Summary from a run result and its parameters.
func New(policyName string, cacheSize, traceLength int, r sim.Result) Summary {
	return Summary{
		Policy:      policyName,
		CacheSize:   cacheSize,
		TraceLength: traceLength,
		Hits:        r.Hits,
		Misses:      r.Misses,
		HitRatio:    r.HitRatio,
	}
}

// FromResults converts a policy->result map into summaries sorted by
// descending hit ratio, ties by policy name.
func FromResults(results map[string]sim.Result, cacheSize, traceLength int) []Summary {
	sums := make([]Summary, 0, len(results))
	for name, r := range results {
		sums = append(sums, New(name, cacheSize, traceLength, r))
	}
	sort.Slice(sums, func(i, j int) bool {
		if sums[i].HitRatio != sums[j].HitRatio {
			return sums[i].HitRatio > sums[j].HitRatio
		}
		return sums[i].Policy < sums[j].Policy
	})
	return sums
}

// Comparison reports a before/after pair of hit ratios and the relative
// improvement in percent.
type Comparison struct {
	BeforeRatio float64 `json:"before_ratio"`
	AfterRatio  float64 `json:"after_ratio"`
	Improvement float64 `json:"improvement"`
}

// Compare computes the relative improvement percentage, rounded to two
// decimals. A zero "before" ratio yields 0 rather than dividing by zero.
func Compare(before, after float64) Comparison {
	c := Comparison{BeforeRatio: before, AfterRatio: after}
	if before != 0 {
		c.Improvement = math.Round((after-before)/before*100*100) / 100
	}
	return c
}

// Table renders summaries as an aligned text table for terminal output.
func Table(w io.Writer, sums []Summary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "POLICY\tCACHE\tREFS\tHITS\tMISSES\tHIT RATIO")
	for _, s := range sums {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%.4f\n",
			s.Policy, s.CacheSize, s.TraceLength, s.Hits, s.Misses, s.HitRatio)
	}
	return tw.Flush()
}
