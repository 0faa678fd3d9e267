package game

import (
	"math/rand"
	"time"
)

// RandomSource supplies uniform floats in [0,1).
// *rand.Rand satisfies it; tests pass a seeded one.
type RandomSource interface {
	Float64() float64
}

// NewRandomSource returns a seeded source. Seed 0 means time-based.
func NewRandomSource(seed int64) RandomSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// intn returns a uniform int in [0,n).
func intn(rng RandomSource, n int) int {
	i := int(rng.Float64() * float64(n))
	if i >= n { // guards sources returning exactly 1
		i = n - 1
	}
	return i
}

// shuffle applies a Fisher–Yates shuffle in place.
func shuffle[T any](rng RandomSource, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := intn(rng, i+1)
		s[i], s[j] = s[j], s[i]
	}
}
