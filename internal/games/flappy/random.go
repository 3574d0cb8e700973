package flappy

import "math/rand"

// RandomSource supplies uniform values in [0, 1) for obstacle placement.
// *rand.Rand satisfies it; tests substitute fixed sequences.
type RandomSource interface {
	Float64() float64
}

// NewRandom returns the production random source for a seed.
func NewRandom(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
