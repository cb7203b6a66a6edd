package memory

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/rlmesh/rlmesh/core"
)

// Ring is a bounded in-process circular buffer of transitions. Once capacity
// is reached the oldest transition is overwritten. It is safe for concurrent
// access and stores clones so callers can reuse their slices between steps.
//
// Sampling draws uniformly without replacement. Suitable for tests and
// single-process training; use Badger for durability.
type Ring struct {
	mu       sync.RWMutex
	buf      []core.Transition
	next     int
	capacity int
	rng      *rand.Rand
}

// NewRing constructs an empty ring buffer with the given capacity.
func NewRing(capacity int, seed int64) (*Ring, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("ring capacity must be positive, got %d", capacity)
	}
	return &Ring{
		buf:      make([]core.Transition, 0, capacity),
		capacity: capacity,
		rng:      rand.New(rand.NewSource(seed)),
	}, nil
}

// Record appends a clone of the transition, evicting the oldest entry when full.
func (r *Ring) Record(t core.Transition) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.buf) < r.capacity {
		r.buf = append(r.buf, t.Clone())
		r.next = len(r.buf) % r.capacity
		return nil
	}
	r.buf[r.next] = t.Clone()
	r.next = (r.next + 1) % r.capacity
	return nil
}

// Sample returns up to n transitions drawn uniformly without replacement.
// The returned transitions are clones safe for caller mutation.
func (r *Ring) Sample(n int) ([]core.Transition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n <= 0 {
		return nil, fmt.Errorf("sample size must be positive, got %d", n)
	}
	if n > len(r.buf) {
		n = len(r.buf)
	}
	out := make([]core.Transition, 0, n)
	for _, idx := range r.rng.Perm(len(r.buf))[:n] {
		out = append(out, r.buf[idx].Clone())
	}
	return out, nil
}

// Len returns the number of stored transitions.
func (r *Ring) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.buf)
}

// Clear removes all stored transitions, keeping the capacity.
func (r *Ring) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buf = r.buf[:0]
	r.next = 0
	return nil
}
