package service

import (
	"math/rand/v2"
	"sync"
)

// RandomSource is the randomness the workout generator draws from. Tests
// inject a seeded source to make selection reproducible.
type RandomSource interface {
	// IntN returns a uniform int in [0, n). n must be > 0.
	IntN(n int) int
}

type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRandomSource returns a goroutine safe RandomSource. A zero seed draws the
// seed from the runtime.
func NewRandomSource(seed uint64) RandomSource {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &lockedRand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}
