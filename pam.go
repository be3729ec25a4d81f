package banditpam

import "math/rand"

// naiveEngine is classical exact PAM: greedy BUILD followed by exhaustive
// SWAP, both evaluated by full recomputation of the loss. It is the ground
// truth oracle other algorithms are checked against on small inputs.
type naiveEngine struct{}

func (naiveEngine) run(D Data, loss Loss, cfg engineConfig, _ Observer, _ *rand.Rand) (fitResult, error) {
	mBuild := exactBuild(D, loss, cfg.k, cfg.workers)
	mFinal, steps := exactSwap(D, loss, mBuild, cfg.maxIter, cfg.workers)

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

// exactBuild greedily grows the medoid set from empty to k, at each step
// appending the point that minimizes the total loss of the resulting set.
// Ties are broken by smallest index. Shared by naiveEngine and
// fastPAM1Engine, which must produce the same BUILD medoids as each other
// and differ only in their SWAP phase.
func exactBuild(D Data, loss Loss, k, workers int) []int {
	_, n := D.Dims()

	medoids := make([]int, 0, k)
	inM := make([]bool, n)

	for len(medoids) < k {
		costs := make([]float64, n)
		runParallel(n, workers, func(start, end int) {
			for c := start; c < end; c++ {
				if inM[c] {
					continue
				}
				candidate := append(append([]int(nil), medoids...), c)
				costs[c] = computeLoss(D, candidate, loss, 1)
			}
		})

		best := -1
		for c := 0; c < n; c++ {
			if inM[c] {
				continue
			}
			if best == -1 || costs[c] < costs[best] {
				best = c
			}
		}

		medoids = append(medoids, best)
		inM[best] = true
	}

	return medoids
}

// exactSwap performs classical PAM local search: at each iteration, it
// evaluates every (slot, candidate) replacement by fully recomputing the
// loss and commits the one with the strictly smallest resulting loss,
// stopping when no replacement improves on the current loss or maxIter
// iterations have run.
func exactSwap(D Data, loss Loss, mBuild []int, maxIter, workers int) ([]int, int) {
	current := append([]int(nil), mBuild...)
	k := len(current)
	_, n := D.Dims()

	currentLoss := computeLoss(D, current, loss, workers)
	steps := 0

	for steps < maxIter {
		inM := make([]bool, n)
		for _, m := range current {
			inM[m] = true
		}

		bestLoss := currentLoss
		bestSlot, bestCand := -1, -1

		for slot := 0; slot < k; slot++ {
			orig := current[slot]
			for cand := 0; cand < n; cand++ {
				if inM[cand] {
					continue
				}
				current[slot] = cand
				l := computeLoss(D, current, loss, workers)
				if l < bestLoss {
					bestLoss = l
					bestSlot, bestCand = slot, cand
				}
			}
			current[slot] = orig
		}

		if bestSlot == -1 {
			break
		}
		current[bestSlot] = bestCand
		currentLoss = bestLoss
		steps++
	}

	return current, steps
}
