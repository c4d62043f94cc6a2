package sim

import "math/rand"

// rng wraps a deterministic source with the probability helper the engines
// use everywhere.
type rng struct {
	*rand.Rand
}

func newRNG(seed int64) *rng {
	return &rng{rand.New(rand.NewSource(seed))}
}

// Chance returns true with probability p. 0 never fires, 1 always does.
func (r *rng) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return r.Float64() < p
}

// Stream salts for the sequential engine passes.
const (
	streamReaction = -1
	streamColor    = -2
	streamSpawn    = -3
)

// streamSeed derives a deterministic RNG stream for one region (or engine
// pass) within one tick, so results do not depend on goroutine scheduling.
// splitmix64 finalizer.
func streamSeed(seed int64, tick uint64, stream int) int64 {
	z := uint64(seed) ^ tick*0x9e3779b97f4a7c15 ^ uint64(int64(stream)+4)*0xbf58476d1ce4e5b9
	z ^= z >> 30
	z *= 0xbf58476d1ce4e5b9
	z ^= z >> 27
	z *= 0x94d049bb133111eb
	z ^= z >> 31
	return int64(z)
}
