package banditpam

import (
	"math"
	"math/rand"
)

// banditEngine runs the bandit-accelerated BUILD and SWAP loops.
type banditEngine struct{}

func (banditEngine) run(D Data, loss Loss, cfg engineConfig, obs Observer, rng *rand.Rand) (fitResult, error) {
	mBuild := banditBuild(D, loss, cfg.k, cfg.batchSize, cfg.buildConfidence, cfg.workers, rng, obs)
	mFinal, steps := banditSwap(D, loss, mBuild, cfg.maxIter, cfg.batchSize, cfg.swapConfidence, cfg.workers, rng, obs)

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

// banditBuild grows the medoid set from empty to k, one bandit-selected arm
// at a time.
func banditBuild(D Data, loss Loss, k, batchSize, buildConfidence, workers int, rng *rand.Rand, obs Observer) []int {
	features, n := D.Dims()

	medoids := make([]int, 0, k)
	best := make([]float64, n)
	for i := range best {
		best[i] = math.Inf(1)
	}

	for len(medoids) < k {
		useAbsolute := len(medoids) == 0

		sigmaBatch := batchSize
		if sigmaBatch > n {
			sigmaBatch = n
		}
		sigma := buildSigma(D, loss, best, sampleWithoutReplacement(rng, n, sigmaBatch), useAbsolute, workers)
		if obs != nil {
			obs.OnBuildSigma(computeSigmaStats(sigma))
		}

		inM := make([]bool, n)
		for _, m := range medoids {
			inM[m] = true
		}
		active := make([]int, 0, n-len(medoids))
		for i := 0; i < n; i++ {
			if !inM[i] {
				active = append(active, i)
			}
		}

		elim := &armElimination{
			rng: rng, n: n, batchSize: batchSize, confidence: buildConfidence, workers: workers,
			sigma: sigma,
			sample: func(refs []int, arm int) float64 {
				return buildArmSample(D, loss, arm, best, refs, useAbsolute, features)
			},
			exactMean: func(arm int) float64 {
				return buildExactMean(D, loss, arm, best, useAbsolute, features, n)
			},
		}
		winner := elim.run(active)

		medoids = append(medoids, winner)
		best, _, _ = recompute(D, medoids, loss, workers)
	}

	return medoids
}

// banditSwap runs the bandit-accelerated local search from mBuild until no
// improving swap remains or maxIter iterations have run. It returns the
// final medoid set and the number of swaps applied.
func banditSwap(D Data, loss Loss, mBuild []int, maxIter, batchSize, swapConfidence, workers int, rng *rand.Rand, obs Observer) ([]int, int) {
	current := append([]int(nil), mBuild...)
	k := len(current)
	features, n := D.Dims()

	best, second, assign := recompute(D, current, loss, workers)
	steps := 0

	for steps < maxIter {
		sigmaBatch := batchSize
		if sigmaBatch > n {
			sigmaBatch = n
		}
		sigmaMat := swapSigma(D, loss, best, second, assign, sampleWithoutReplacement(rng, n, sigmaBatch), k, workers)
		if obs != nil {
			obs.OnSwapSigma(computeSigmaStatsMat(sigmaMat))
		}

		sigmaFlat := make([]float64, k*n)
		for idx := range sigmaFlat {
			slot, cand := idx%k, idx/k
			sigmaFlat[idx] = sigmaMat[slot][cand]
		}

		inM := make([]bool, n)
		for _, m := range current {
			inM[m] = true
		}
		active := make([]int, 0, k*(n-k))
		for idx := 0; idx < k*n; idx++ {
			if !inM[idx/k] {
				active = append(active, idx)
			}
		}

		elim := &armElimination{
			rng: rng, n: n, batchSize: batchSize, confidence: swapConfidence, workers: workers,
			sigma: sigmaFlat,
			sample: func(refs []int, arm int) float64 {
				slot, cand := arm%k, arm/k
				return swapArmSample(D, loss, slot, cand, best, second, assign, refs, features)
			},
			exactMean: func(arm int) float64 {
				slot, cand := arm%k, arm/k
				return swapExactMean(D, loss, slot, cand, best, second, assign, features, n)
			},
		}
		winner := elim.run(active)
		winSlot, winCand := winner%k, winner/k

		// Confirm the winner exactly before committing or stopping: a
		// sampled non-positive mean isn't proof that no improving swap
		// exists, so every round's elimination winner gets one exact
		// evaluation before it is trusted (see DESIGN.md).
		winMean := swapExactMean(D, loss, winSlot, winCand, best, second, assign, features, n)
		if winMean >= 0 {
			break
		}

		current[winSlot] = winCand
		best, second, assign = recompute(D, current, loss, workers)
		steps++
	}

	return current, steps
}
