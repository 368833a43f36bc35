// Package rng provides the random source every game draws from. Engines only
// depend on Source, so a seeded or scripted source makes a round reproducible.
package rng

import (
	crand "crypto/rand"
	"encoding/binary"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/fadedpez/neonroyal/internal/logging"
)

var entropy io.Reader = crand.Reader

// Source produces uniform draws in [0, 1)
type Source interface {
	Float64() float64
}

// Rand is a Source backed by math/rand. It is safe for concurrent use.
type Rand struct {
	mu sync.Mutex
	r  *rand.Rand
}

// New creates a Source seeded from the system entropy source. If that
// source cannot be read it falls back to a clock-derived seed.
func New(logger *logging.Logger) *Rand {
	var buf [8]byte
	if _, err := io.ReadFull(entropy, buf[:]); err != nil {
		seed := time.Now().UnixNano()
		logger.Warn("System entropy unavailable (%v), seeding from the clock", err)
		return NewSeeded(seed)
	}
	return NewSeeded(int64(binary.LittleEndian.Uint64(buf[:])))
}

// NewSeeded creates a deterministic Source for the given seed
func NewSeeded(seed int64) *Rand {
	return &Rand{r: rand.New(rand.NewSource(seed))}
}

// Float64 returns a uniform draw in [0, 1)
func (s *Rand) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}

// Intn returns a uniform integer in [0, n). n must be positive.
func Intn(src Source, n int) int {
	if n <= 0 {
		panic("rng: Intn called with non-positive n")
	}
	i := int(src.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// Chance returns true with probability p
func Chance(src Source, p float64) bool {
	return src.Float64() < p
}

// Shuffle performs a Fisher-Yates shuffle of n elements using swap
func Shuffle(src Source, n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := Intn(src, i+1)
		swap(i, j)
	}
}

// Weighted selects an index with probability proportional to its weight.
// Weights must be non-negative and sum to a positive total.
func Weighted(src Source, weights []int) int {
	total := 0
	for _, w := range weights {
		if w < 0 {
			panic("rng: negative weight")
		}
		total += w
	}
	if total <= 0 {
		panic("rng: weights must sum to a positive total")
	}

	target := Intn(src, total)
	cumulative := 0
	for i, w := range weights {
		cumulative += w
		if target < cumulative {
			return i
		}
	}
	return len(weights) - 1
}
