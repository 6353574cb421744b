package trace

import "math/rand"

// Uniform returns n references drawn uniformly from the page set
// [0, pages). The generator is local and seeded, so the same arguments
// always produce the same trace.
func Uniform(n, pages int, seed int64) []int {
	if n <= 0 || pages <= 0 {
		return nil
	}
	r := rand.New(rand.NewSource(seed))
	refs := make([]int, n)
	for i := range refs {
		refs[i] = r.Intn(pages)
	}
	return refs
}

// Zipf returns n references with Zipf-skewed popularity over [0, pages):
// a few hot pages dominate, the long tail is cold. s must be > 1 and
// v >= 1 (math/rand constraints); pages must be >= 1.
func Zipf(n int, s, v float64, pages int, seed int64) []int {
	if n <= 0 || pages <= 0 {
		return nil
	}
	r := rand.New(rand.NewSource(seed))
	z := rand.NewZipf(r, s, v, uint64(pages-1))
	refs := make([]int, n)
	for i := range refs {
		refs[i] = int(z.Uint64())
	}
	return refs
}
