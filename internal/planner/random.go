package planner

import (
	"math/rand/v2"
	"sync"
	"time"
)

// RandomSource picks uniformly among n suitable candidates.
type RandomSource interface {
	// IntN returns a value in [0, n). n is always > 0.
	IntN(n int) int
}

type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRandomSource returns a RandomSource safe for concurrent use. A zero
// seed is replaced by the current time.
func NewRandomSource(seed int64) RandomSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &lockedRand{r: rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1|1))}
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}
