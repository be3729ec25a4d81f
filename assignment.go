package banditpam

import "math"

// recompute computes, for every point, its nearest ("best") and second
// nearest ("second") medoid distance and the slot in medoids of the
// nearest one. Ties are broken by enumeration order: the first medoid
// (lowest slot) achieving the minimum wins. recompute does not mutate D
// or medoids.
//
// Complexity is Θ(N·|medoids|); the per-point scan runs in parallel across
// workers goroutines.
func recompute(D Data, medoids []int, loss Loss, workers int) (best, second []float64, assign []int) {
	features, n := D.Dims()
	k := len(medoids)

	best = make([]float64, n)
	second = make([]float64, n)
	assign = make([]int, n)

	if k == 0 {
		for i := range best {
			best[i] = math.Inf(1)
			second[i] = math.Inf(1)
		}
		return best, second, assign
	}

	medoidCols := make([][]float64, k)
	for s, m := range medoids {
		medoidCols[s] = D.col(make([]float64, features), m)
	}

	if k == 1 {
		for i := range second {
			second[i] = math.Inf(1)
		}
	}

	runParallel(n, workers, func(start, end int) {
		buf := make([]float64, features)
		for i := start; i < end; i++ {
			D.col(buf, i)

			b, s, a := math.Inf(1), math.Inf(1), 0
			for slot, col := range medoidCols {
				c := loss.dist(col, buf)
				if c < b {
					a = slot
					s = b
					b = c
				} else if c < s {
					s = c
				}
			}
			best[i] = b
			second[i] = s
			assign[i] = a
		}
	})

	return best, second, assign
}
