package tactics

import "math/rand"

// Source supplies pseudo-random integers to the engine.
// *rand.Rand satisfies it; tests can pass a scripted sequence.
type Source interface {
	// Intn returns a value in [0, n). n is always > 0.
	Intn(n int) int
}

// NewSource returns a math/rand backed Source for the given seed.
// Seed it once per session, not per call.
func NewSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// between returns a value in the inclusive range [lo, hi].
func between(rng Source, lo, hi int) int {
	return lo + rng.Intn(hi-lo+1)
}
