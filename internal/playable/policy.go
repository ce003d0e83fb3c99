package playable

import (
	"math/rand"
	"time"
)

// Rand is the random source behind win decisions. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// NewRand returns a seeded source; seed 0 means seed from the clock.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// WinPolicy decides whether a play wins. The last play of a session always
// wins; every other play wins with probability one half.
type WinPolicy struct {
	rng Rand
}

// NewWinPolicy wraps rng. A nil rng is replaced by a clock-seeded source.
func NewWinPolicy(rng Rand) WinPolicy {
	if rng == nil {
		rng = NewRand(0)
	}
	return WinPolicy{rng: rng}
}

// ShouldTriggerWin applies the rule isLastPlay || random() > 0.5.
func (p WinPolicy) ShouldTriggerWin(isLastPlay bool) bool {
	if isLastPlay {
		return true
	}
	return p.rng.Float64() > 0.5
}
