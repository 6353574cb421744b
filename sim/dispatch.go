package sim

import (
	"fmt"
	"strings"

	"github.com/pranita383/virtual-memory-and-cache-optimizer/policy"
	"github.com/pranita383/virtual-memory-and-cache-optimizer/policy/fifo"
	"github.com/pranita383/virtual-memory-and-cache-optimizer/policy/lfu"
	"github.com/pranita383/virtual-memory-and-cache-optimizer/policy/lru"
	"github.com/pranita383/virtual-memory-and-cache-optimizer/policy/opt"
	"github.com/pranita383/virtual-memory-and-cache-optimizer/policy/random"
)

// PolicyFor maps a policy selector to its factory. It is the single dispatch
// point for the supported policy set; unknown or empty selectors are
// configuration errors, never a silent default. Selectors are
// case-insensitive; "optimal" is accepted as an alias for "opt".
// seed feeds only the random policy.
func PolicyFor[P comparable](name string, seed int64) (policy.Policy[P], error) {
	switch strings.ToLower(name) {
	case "lru":
		return lru.New[P](), nil
	case "fifo":
		return fifo.New[P](), nil
	case "lfu":
		return lfu.New[P](), nil
	case "opt", "optimal":
		return opt.New[P](), nil
	case "random":
		return random.New[P](seed), nil
	case "":
		return nil, ErrNoPolicy
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
	}
}

// PolicyNames lists the canonical selector of every supported policy,
// in a stable order.
func PolicyNames() []string {
	return []string{"lru", "fifo", "lfu", "opt", "random"}
}
