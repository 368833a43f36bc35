package rng

import "sync"

// Sequence is a Source that replays a fixed list of draws, cycling when it
// runs out. Use it to script an outcome.
type Sequence struct {
	mu     sync.Mutex
	values []float64
	next   int
}

// NewSequence creates a Sequence over values. Each value must be in [0, 1).
func NewSequence(values ...float64) *Sequence {
	if len(values) == 0 {
		values = []float64{0}
	}
	for _, v := range values {
		if v < 0 || v >= 1 {
			panic("rng: sequence values must be in [0, 1)")
		}
	}
	return &Sequence{values: values}
}

// Float64 returns the next scripted draw
func (s *Sequence) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

// Draws returns how many values have been consumed
func (s *Sequence) Draws() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next
}

// ForIndex returns the draw that makes Intn(src, n) return i
func ForIndex(i, n int) float64 {
	return (float64(i) + 0.5) / float64(n)
}
