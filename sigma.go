package banditpam

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// buildSigma estimates, for every candidate point, the sample standard
// deviation of its marginal cost contribution across the reference sample
// refs. best holds the current best distance of each point to the medoids
// chosen so far (+Inf for every point before the first BUILD arm).
// useAbsolute is set for that first arm, where the marginal contribution
// collapses to the raw distance (best[r] is +Inf and must never be
// subtracted from itself).
func buildSigma(D Data, loss Loss, best []float64, refs []int, useAbsolute bool, workers int) []float64 {
	features, n := D.Dims()
	sigma := make([]float64, n)

	runParallel(n, workers, func(start, end int) {
		buf := make([]float64, features)
		other := make([]float64, features)
		sample := make([]float64, len(refs))

		for i := start; i < end; i++ {
			D.col(buf, i)
			for j, r := range refs {
				D.col(other, r)
				cost := loss.dist(buf, other)
				if useAbsolute {
					sample[j] = cost
				} else {
					sample[j] = math.Min(cost, best[r]) - best[r]
				}
			}
			sigma[i] = stat.StdDev(sample, nil)
		}
	})

	return sigma
}

// buildArmSample returns the sum, over refs, of arm i's marginal cost
// contribution. It is the per-arm, per-round inner loop that armElimination
// parallelizes across active arms.
func buildArmSample(D Data, loss Loss, arm int, best []float64, refs []int, useAbsolute bool, features int) float64 {
	buf := D.col(make([]float64, features), arm)
	other := make([]float64, features)

	var s float64
	for _, r := range refs {
		D.col(other, r)
		cost := loss.dist(buf, other)
		if useAbsolute {
			s += cost
		} else {
			s += math.Min(cost, best[r]) - best[r]
		}
	}
	return s
}

// buildExactMean evaluates arm i's marginal cost exactly over all N
// reference points, used once an arm's pull count reaches N. This path is
// rare (only hit when sampling fails to separate a winner) so it runs
// sequentially rather than through runParallel.
func buildExactMean(D Data, loss Loss, arm int, best []float64, useAbsolute bool, features, n int) float64 {
	buf := D.col(make([]float64, features), arm)
	other := make([]float64, features)

	var s float64
	for r := 0; r < n; r++ {
		D.col(other, r)
		cost := loss.dist(buf, other)
		if useAbsolute {
			s += cost
		} else {
			s += math.Min(cost, best[r]) - best[r]
		}
	}
	return s / float64(n)
}

// swapReward is the candidate-arm reward used by both swapSigma and the
// SWAP arm samplers: if r is currently assigned to the medoid slot k being
// considered for eviction, the reward is its cost against the second-best
// medoid (since the best one is about to disappear); otherwise it is
// capped at the current best.
func swapReward(cost, best, second float64, assignedToK bool) float64 {
	if assignedToK {
		return math.Min(cost, second)
	}
	return math.Min(cost, best)
}

// swapSigma estimates the sample standard deviation of every (slot,
// candidate) SWAP arm's reward across the reference sample refs, returning
// a K×N matrix indexed [slot][candidate].
func swapSigma(D Data, loss Loss, best, second []float64, assign []int, refs []int, k, workers int) [][]float64 {
	features, n := D.Dims()
	sigma := make([][]float64, k)
	for slot := range sigma {
		sigma[slot] = make([]float64, n)
	}

	total := k * n
	runParallel(total, workers, func(start, end int) {
		buf := make([]float64, features)
		other := make([]float64, features)
		sample := make([]float64, len(refs))

		for idx := start; idx < end; idx++ {
			slot, cand := idx%k, idx/k
			D.col(buf, cand)
			for j, r := range refs {
				D.col(other, r)
				c := loss.dist(buf, other)
				reward := swapReward(c, best[r], second[r], assign[r] == slot)
				sample[j] = reward - best[r]
			}
			sigma[slot][cand] = stat.StdDev(sample, nil)
		}
	})

	return sigma
}

// swapArmSample returns the sum, over refs, of the (slot, candidate) arm's
// reward less the current best cost, the per-arm per-round inner loop
// parallelized by armElimination.
func swapArmSample(D Data, loss Loss, slot, cand int, best, second []float64, assign []int, refs []int, features int) float64 {
	buf := D.col(make([]float64, features), cand)
	other := make([]float64, features)

	var s float64
	for _, r := range refs {
		D.col(other, r)
		c := loss.dist(buf, other)
		reward := swapReward(c, best[r], second[r], assign[r] == slot)
		s += reward - best[r]
	}
	return s
}

// swapExactMean evaluates the (slot, candidate) arm's mean reward exactly
// over all N points. Used once an arm's pull count reaches N, and again to
// confirm the winning arm before a SWAP iteration commits or terminates.
func swapExactMean(D Data, loss Loss, slot, cand int, best, second []float64, assign []int, features, n int) float64 {
	buf := D.col(make([]float64, features), cand)
	other := make([]float64, features)

	var s float64
	for r := 0; r < n; r++ {
		D.col(other, r)
		c := loss.dist(buf, other)
		reward := swapReward(c, best[r], second[r], assign[r] == slot)
		s += reward - best[r]
	}
	return s / float64(n)
}

// sigmaStats summarizes a sigma distribution for diagnostics: min, quartiles,
// max, and mean.
type sigmaStats struct {
	Min, P25, Median, P75, Max, Mean float64
}

// computeSigmaStats summarizes values. It makes a sorted copy rather than
// mutating the caller's slice.
func computeSigmaStats(values []float64) sigmaStats {
	sorted := sortedCopy(values)
	return sigmaStats{
		Min:    quantileSorted(sorted, 0),
		P25:    quantileSorted(sorted, 0.25),
		Median: quantileSorted(sorted, 0.5),
		P75:    quantileSorted(sorted, 0.75),
		Max:    quantileSorted(sorted, 1),
		Mean:   stat.Mean(values, nil),
	}
}

// computeSigmaStatsMat flattens a K×N sigma matrix and summarizes it, for
// the SWAP diagnostics line.
func computeSigmaStatsMat(sigma [][]float64) sigmaStats {
	flat := make([]float64, 0, len(sigma)*len(sigma[0]))
	for _, row := range sigma {
		flat = append(flat, row...)
	}
	return computeSigmaStats(flat)
}
