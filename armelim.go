package banditpam

import (
	"math"
	"math/rand"
)

// ucbCFactor is the constant inside the UCB confidence radius
// C(a,T) = sigma_a * sqrt(cFactor * log(1/delta) / T). BUILD and SWAP are
// both instances of Hoeffding-style UCB elimination, whose standard radius
// uses cFactor = 2 (see DESIGN.md).
const ucbCFactor = 2.0

// armElimination runs the UCB-style arm elimination shared by BUILD and
// SWAP: each round draws a fresh batch of reference points, pulls every
// still-active arm against that batch, and drops any arm whose lower
// confidence bound exceeds the best upper confidence bound, until one arm
// remains. BUILD and SWAP differ only in what an "arm" is and how it is
// sampled, so both are expressed as a sample/exactMean pair over abstract
// arm ids rather than duplicating the elimination loop twice.
type armElimination struct {
	rng        *rand.Rand
	n          int // size of the reference population, used for delta and the exact-evaluation threshold
	batchSize  int
	confidence int
	workers    int

	sigma     []float64                        // pre-estimated sigma, indexed by arm id
	sample    func(refs []int, arm int) float64 // sum of per-reference rewards for one round
	exactMean func(arm int) float64             // exact mean reward over the whole population
}

// run eliminates arms from active (a slice of arm ids) until a single
// winner remains and returns it. active is consumed; callers that need the
// original slice afterwards should pass a copy.
func (e *armElimination) run(active []int) int {
	if len(active) == 1 {
		return active[0]
	}

	logTerm := float64(e.confidence) * math.Log(float64(e.n))

	sums := make([]float64, len(e.sigma))
	pulls := make([]int, len(e.sigma))
	exactVal := make([]float64, len(e.sigma))
	isExact := make([]bool, len(e.sigma))

	for len(active) > 1 {
		bs := e.batchSize
		if bs > e.n {
			bs = e.n
		}
		refs := sampleWithoutReplacement(e.rng, e.n, bs)

		partial := make([]float64, len(active))
		runParallel(len(active), e.workers, func(start, end int) {
			for ai := start; ai < end; ai++ {
				arm := active[ai]
				if isExact[arm] {
					continue
				}
				partial[ai] = e.sample(refs, arm)
			}
		})

		for ai, arm := range active {
			if isExact[arm] {
				continue
			}
			sums[arm] += partial[ai]
			pulls[arm] += len(refs)
			if pulls[arm] >= e.n {
				isExact[arm] = true
				exactVal[arm] = e.exactMean(arm)
			}
		}

		mu := make([]float64, len(active))
		c := make([]float64, len(active))
		lStar := math.Inf(1)
		for ai, arm := range active {
			if isExact[arm] {
				mu[ai] = exactVal[arm]
				c[ai] = 0
			} else {
				mu[ai] = sums[arm] / float64(pulls[arm])
				c[ai] = e.sigma[arm] * math.Sqrt(ucbCFactor*logTerm/float64(pulls[arm]))
			}
			if u := mu[ai] + c[ai]; u < lStar {
				lStar = u
			}
		}

		survivors := 0
		for ai := range active {
			if mu[ai]-c[ai] <= lStar {
				survivors++
			}
		}

		// A round that eliminates nothing among arms whose confidence radius
		// has already collapsed to zero (exact, or sigma == 0) will never
		// eliminate anything on any later round either: every remaining
		// round recomputes the same mu/c and the same lStar. This happens on
		// inputs with duplicate points, where every arm's marginal cost is
		// identical. Break the tie here by lowest arm index among the
		// minimum-mu survivors instead of spinning forever.
		if survivors == len(active) {
			stalled := true
			for ai := range active {
				if c[ai] != 0 {
					stalled = false
					break
				}
			}
			if stalled {
				best := active[0]
				bestMu := mu[0]
				for ai := 1; ai < len(active); ai++ {
					if mu[ai] < bestMu {
						bestMu = mu[ai]
						best = active[ai]
					}
				}
				return best
			}
		}

		kept := active[:0]
		for ai, arm := range active {
			if mu[ai]-c[ai] <= lStar {
				kept = append(kept, arm)
			}
		}
		active = kept
	}

	return active[0]
}
