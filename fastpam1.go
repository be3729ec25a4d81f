package banditpam

import (
	"math"
	"math/rand"
)

// fastPAM1Engine shares naiveEngine's BUILD step but replaces exhaustive
// SWAP with FastPAM1: a single O(N) pass per candidate that computes its
// replacement delta against every medoid slot simultaneously, using the
// precomputed best/second/assign from the assignment engine, instead of
// recomputing the whole-dataset loss for every (slot, candidate) pair.
type fastPAM1Engine struct{}

func (fastPAM1Engine) run(D Data, loss Loss, cfg engineConfig, _ Observer, _ *rand.Rand) (fitResult, error) {
	mBuild := exactBuild(D, loss, cfg.k, cfg.workers)
	mFinal, steps := fastSwap(D, loss, mBuild, cfg.maxIter, cfg.workers)

	finalLoss := computeLoss(D, mFinal, loss, cfg.workers)
	_, _, assign := recompute(D, mFinal, loss, cfg.workers)

	return fitResult{
		MedoidsBuild: mBuild,
		MedoidsFinal: mFinal,
		Assign:       assign,
		Steps:        steps,
		FinalLoss:    finalLoss,
	}, nil
}

// candidateDelta holds, for one non-medoid candidate h, everything needed
// to compute its improvement Δ(slot,h) for every medoid slot in O(1): the
// baseline term shared by all slots, and one extra term per slot that
// only points currently assigned to that slot contribute to.
type candidateDelta struct {
	base  float64
	extra []float64 // length k
}

// fastSwap runs FastPAM1's single-pass SWAP local search until no
// candidate improves the loss or maxIter iterations have run.
//
// For a fixed candidate h and current medoid slot j, replacing slot j with
// h changes total loss by
//
//	Δ(j,h) = Σ_i best[i] - newCost(i)
//
// where newCost(i) uses second[i] for points currently assigned to j and
// best[i] otherwise. Splitting the sum into a per-h baseline (independent
// of j) and a per-(j,h) correction that only points assigned to j
// contribute lets one O(N) pass over the dataset compute Δ(j,h) for every
// slot j at once, rather than one O(N) pass per (slot,candidate) pair.
func fastSwap(D Data, loss Loss, mBuild []int, maxIter, workers int) ([]int, int) {
	current := append([]int(nil), mBuild...)
	k := len(current)
	features, n := D.Dims()
	steps := 0

	for steps < maxIter {
		best, second, assign := recompute(D, current, loss, workers)
		inM := make([]bool, n)
		for _, m := range current {
			inM[m] = true
		}

		deltas := make([]candidateDelta, n)
		runParallel(n, workers, func(start, end int) {
			hbuf := make([]float64, features)
			buf := make([]float64, features)

			for h := start; h < end; h++ {
				if inM[h] {
					continue
				}
				D.col(hbuf, h)

				extra := make([]float64, k)
				var base float64
				for i := 0; i < n; i++ {
					D.col(buf, i)
					dhi := loss.dist(hbuf, buf)
					base += math.Max(0, best[i]-dhi)
					slot := assign[i]
					extra[slot] += math.Min(dhi, best[i]) - math.Min(dhi, second[i])
				}
				deltas[h] = candidateDelta{base: base, extra: extra}
			}
		})

		bestDelta := 0.0
		bestSlot, bestCand := -1, -1
		for h := 0; h < n; h++ {
			if inM[h] {
				continue
			}
			d := deltas[h]
			for slot := 0; slot < k; slot++ {
				delta := d.base + d.extra[slot]
				if delta > bestDelta {
					bestDelta = delta
					bestSlot, bestCand = slot, h
				}
			}
		}

		if bestCand == -1 {
			break
		}
		current[bestSlot] = bestCand
		steps++
	}

	return current, steps
}
