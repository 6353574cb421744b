package sim

import (
	"context"
	"math/rand"
	"sync"
	"testing"

	"github.com/pranita383/virtual-memory-and-cache-optimizer/policy/fifo"
	"github.com/pranita383/virtual-memory-and-cache-optimizer/policy/lfu"
	"github.com/pranita383/virtual-memory-and-cache-optimizer/policy/lru"
	"github.com/pranita383/virtual-memory-and-cache-optimizer/policy/opt"
	"github.com/pranita383/virtual-memory-and-cache-optimizer/policy/random"
)

// Many goroutines replay the same trace concurrently. Each run owns its
// state, so this should pass under `-race` without detector reports.
func TestRace_ParallelRuns(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	trace := make([]int, 3000)
	for i := range trace {
		trace[i] = r.Intn(50)
	}

	const goroutines = 16
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for g := 0; g < goroutines; g++ {
		go func(id int) {
			defer wg.Done()
			pol, err := PolicyFor[int](PolicyNames()[id%5], int64(id))
			if err != nil {
				t.Error(err)
				return
			}
			res, err := Run(trace, Options[int]{Capacity: 12, Policy: pol})
			if err != nil {
				t.Error(err)
				return
			}
			if res.Total() != int64(len(trace)) {
				t.Errorf("hits+misses=%d, want %d", res.Total(), len(trace))
			}
		}(g)
	}
	wg.Wait()
}

// Concurrent Compare calls share trace and factories but never state.
func TestRace_ParallelCompare(t *testing.T) {
	r := rand.New(rand.NewSource(13))
	trace := make([]int, 2000)
	for i := range trace {
		trace[i] = r.Intn(30)
	}

	const rounds = 8
	var wg sync.WaitGroup
	wg.Add(rounds)
	for i := 0; i < rounds; i++ {
		go func() {
			defer wg.Done()
			results, err := Compare(context.Background(), trace, 8,
				lru.New[int](), fifo.New[int](), lfu.New[int](), opt.New[int](), random.New[int](5))
			if err != nil {
				t.Error(err)
				return
			}
			if len(results) != 5 {
				t.Errorf("want 5 results, got %d", len(results))
			}
		}()
	}
	wg.Wait()
}
