// Package randutil centralises how random sources are created and injected.
package randutil

import (
	rand "math/rand/v2"
	"time"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// Source is the randomness capability the engine depends on. *rand.Rand
// satisfies it; tests may supply scripted sequences.
type Source interface {
	// IntN returns a value in [0, n). It panics if n <= 0.
	IntN(n int) int
}

// New returns a *rand.Rand seeded deterministically from the provided int64.
// The two 64-bit PCG seeds are derived with splitmix so that nearby seeds
// still produce unrelated sequences.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// NewFromTime returns a source seeded from the wall clock, for interactive play.
func NewFromTime() *rand.Rand {
	return New(time.Now().UnixNano())
}

// Seeded returns New(seed) when seed is non-zero and a time-seeded source
// otherwise, matching the "0 means unset" convention of the config file.
func Seeded(seed int64) *rand.Rand {
	if seed == 0 {
		return NewFromTime()
	}
	return New(seed)
}

// Scripted replays a fixed list of values (each reduced modulo n). It is
// meant for tests that need to force specific shuffles or bot choices.
type Scripted struct {
	Values []int
	next   int
}

// IntN implements Source.
func (s *Scripted) IntN(n int) int {
	if n <= 0 {
		panic("randutil: IntN called with n <= 0")
	}
	if len(s.Values) == 0 {
		return 0
	}
	v := s.Values[s.next%len(s.Values)]
	s.next++
	if v < 0 {
		v = -v
	}
	return v % n
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
