package sim

import "errors"

// Configuration errors, reported before any run state is created.
var (
	// ErrInvalidCapacity means the cache cannot hold even one page.
	ErrInvalidCapacity = errors.New("sim: capacity must be >= 1")
	// ErrNoPolicy means no replacement policy was selected.
	ErrNoPolicy = errors.New("sim: no replacement policy selected")
	// ErrUnknownPolicy means the selector does not name a supported policy.
	ErrUnknownPolicy = errors.New("sim: unknown replacement policy")
)

// Run replays trace against a fresh cache state under opt.Policy and returns
// the tallied result. The trace is only read; the same slice may be passed
// to any number of runs, concurrent ones included.
//
// Configuration problems are returned before the first reference is
// processed. A nil victim from the policy declines admission: the reference
// counts as a miss and the resident set stays as it is. A resident set found
// over capacity indicates a driver bug and panics.
func Run[P comparable](trace []P, opt Options[P]) (Result, error) {
	if err := opt.validate(); err != nil {
		return Result{}, err
	}
	met := opt.Metrics
	if met == nil {
		met = NoopMetrics{}
	}

	st := newState[P](opt.Capacity)
	pol := opt.Policy.New(stateHooks[P]{s: st})

	var res Result
	for i, p := range trace {
		if n, ok := st.lookup(p); ok {
			res.Hits++
			pol.OnHit(n)
			met.Hit()
			continue
		}
		res.Misses++
		met.Miss()

		if st.full() {
			v := pol.Victim(p, trace[i+1:])
			if v == nil {
				// Look-ahead declined admission; the resident set stays.
				continue
			}
			vn := v.(*node[P])
			pol.OnEvict(vn)
			st.evict(vn)
			met.Evict()
			if cb := opt.OnEvict; cb != nil {
				cb(vn.page)
			}
		}
		pol.OnAdmit(st.admit(p))
		if st.len > st.cap {
			panic("sim: resident set exceeded capacity")
		}
	}
	res.finalize()
	return res, nil
}
