package testutil

import (
	"fmt"
	"math/rand"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Counts generates a features × samples matrix of non-negative
// pseudo-random counts, with maxCount as the exclusive upper bound.
func (r *RNG) Counts(features, samples, maxCount int) [][]float64 {
	data := make([][]float64, features)
	for i := range data {
		row := make([]float64, samples)
		for j := range row {
			row[j] = float64(r.Intn(maxCount))
		}
		data[i] = row
	}
	return data
}

// IDs generates n sequential identifiers with the given prefix
// (prefix1, prefix2, ...).
func IDs(prefix string, n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("%s%d", prefix, i+1)
	}
	return ids
}
