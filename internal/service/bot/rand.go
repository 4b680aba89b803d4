package bot

import (
	"math/rand"
	"sync"
	"time"
)

// lockedRand serializes draws from one rand.Rand. The engine is shared by
// every request goroutine and WS session, and rand.Rand itself is not safe
// for concurrent use.
type lockedRand struct {
	mu  sync.Mutex
	src *rand.Rand
}

func newLockedRand(src *rand.Rand) *lockedRand {
	if src == nil {
		src = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &lockedRand{src: src}
}

func (r *lockedRand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.Intn(n)
}

func (r *lockedRand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.Float64()
}
