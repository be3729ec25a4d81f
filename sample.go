package banditpam

import "math/rand"

// defaultSeed is used when a Config does not specify one. It is arbitrary
// but stable, following the zero-seed convention in the TSP heuristics'
// RNG helper (rngFromSeed): a fixed, named default rather than a
// time-based source, so two fits of the same data are reproducible.
const defaultSeed int64 = 1

// newRNG returns a deterministic *rand.Rand for the given seed, defaulting
// seed==0 to defaultSeed.
func newRNG(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultSeed
	}
	return rand.New(rand.NewSource(seed))
}

// sampleWithoutReplacement draws size distinct indices from [0,n) using rng.
// rng is not goroutine-safe: callers must draw on a single goroutine (the
// driver thread) before fanning the resulting slice out to parallel
// workers, per the concurrency model's "single PRNG, draw once per round"
// rule. size is clamped to n.
func sampleWithoutReplacement(rng *rand.Rand, n, size int) []int {
	if size > n {
		size = n
	}
	return rng.Perm(n)[:size]
}
