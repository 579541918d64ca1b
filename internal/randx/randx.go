// Package randx provides the seeded pseudo-random source used for demo data
// and placeholder scoring. A Source is safe for concurrent use; the same seed
// always yields the same sequence when calls are made in the same order.
package randx

import (
	"math/rand"
	"sync"
	"time"
)

// Source is a mutex-guarded *rand.Rand.
type Source struct {
	mu sync.Mutex
	r  *rand.Rand
}

// New returns a Source seeded with seed. A zero seed uses the current time.
func New(seed int64) *Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Source{r: rand.New(rand.NewSource(seed))}
}

// Float64Range returns a uniform value in [lo, hi).
func (s *Source) Float64Range(lo, hi float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return lo + s.r.Float64()*(hi-lo)
}

// IntRange returns a uniform integer in [lo, hi] (inclusive).
func (s *Source) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return lo + s.r.Intn(hi-lo+1)
}

// Bool returns true with probability 1/2.
func (s *Source) Bool() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Intn(2) == 1
}

// Pick returns one element of items. It panics on an empty slice.
func Pick[T any](s *Source, items []T) T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return items[s.r.Intn(len(items))]
}

// Sample returns k distinct elements of items in random order, without
// modifying items. k is clamped to len(items).
func Sample[T any](s *Source, items []T, k int) []T {
	if k > len(items) {
		k = len(items)
	}
	if k <= 0 {
		return []T{}
	}
	s.mu.Lock()
	idx := s.r.Perm(len(items))[:k]
	s.mu.Unlock()

	out := make([]T, k)
	for i, j := range idx {
		out[i] = items[j]
	}
	return out
}
