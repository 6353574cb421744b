package sim

// Result is the outcome of one simulation run.
// Hits+Misses always equals the trace length. HitRatio is hits over total
// references, and 0 (not NaN) for an empty trace.
type Result struct {
	Hits     int64   `json:"hits"`
	Misses   int64   `json:"misses"`
	HitRatio float64 `json:"hit_ratio"`
}

// Total returns the number of processed references.
func (r Result) Total() int64 { return r.Hits + r.Misses }

func (r *Result) finalize() {
	if t := r.Total(); t > 0 {
		r.HitRatio = float64(r.Hits) / float64(t)
	}
}
