// Package transport carries particle history state across a simulation
// (§5 "Concurrency & resource model"): per-history RNG seeding, the
// runtime failure-code policy of §7, and a thin driver-facing orchestration
// layer over geometry.Navigator. Reaction sampling, tallying, and the
// random-number generator's own algorithm are out of scope (§1 Non-goals);
// this package only fixes the seeding policy and the particle's stack of
// per-history bookkeeping.
package transport

import "math/rand"

// SeedHistory derives a history's RNG seed deterministically from a global
// seed and the history's index (§5 "Ordering guarantees": reproducibility
// comes from seeding each history from a global seed plus history index,
// never from wall-clock or goroutine scheduling order). The mixing step is
// splitmix64, chosen because it is a fixed, well-known bijection on
// uint64 with no external dependency — exactly the kind of small, pure
// utility this package should not reach for a library to do.
func SeedHistory(globalSeed uint64, historyIndex int64) uint64 {
	z := globalSeed + uint64(historyIndex)*0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// NewHistoryRNG builds the *rand.Rand a single history's sampling draws
// from, seeded per SeedHistory.
func NewHistoryRNG(globalSeed uint64, historyIndex int64) *rand.Rand {
	seed := SeedHistory(globalSeed, historyIndex)
	return rand.New(rand.NewSource(int64(seed)))
}
