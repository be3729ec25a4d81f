package banditpam

// computeLoss returns Σᵢ minₘ∈medoids d(D, m, i), the total clustering cost
// of the given medoid set. It is used both as a verification primitive and
// internally by the exact oracles.
func computeLoss(D Data, medoids []int, loss Loss, workers int) float64 {
	best, _, _ := recompute(D, medoids, loss, workers)

	var total float64
	for _, b := range best {
		total += b
	}
	return total
}
