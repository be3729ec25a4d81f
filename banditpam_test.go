package banditpam

import "testing"

func TestBanditBuild_ProducesKDistinctMedoids(t *testing.T) {
	cols := make([][]float64, 30)
	for i := range cols {
		cols[i] = []float64{float64(i)}
	}
	D := newColData(t, cols)
	loss, _ := ParseLoss("L2")
	rng := newRNG(11)

	medoids := banditBuild(D, loss, 3, 10, 5, 1, rng, nil)
	if len(medoids) != 3 {
		t.Fatalf("len(medoids) = %d, want 3", len(medoids))
	}
	if !distinct(medoids) {
		t.Errorf("banditBuild produced duplicate medoids: %v", medoids)
	}
}

func TestBanditSwap_NeverWorsensBuildLoss(t *testing.T) {
	cols := make([][]float64, 40)
	for i := range cols {
		cols[i] = []float64{float64(i)}
	}
	D := newColData(t, cols)
	loss, _ := ParseLoss("L2")
	rng := newRNG(21)

	mBuild := exactBuild(D, loss, 3, 1)
	buildLoss := computeLoss(D, mBuild, loss, 1)

	mFinal, _ := banditSwap(D, loss, mBuild, 30, 10, 100, 1, rng, nil)
	finalLoss := computeLoss(D, mFinal, loss, 1)

	if finalLoss > buildLoss+floatTol {
		t.Errorf("banditSwap loss %v worse than build loss %v", finalLoss, buildLoss)
	}
}

func TestBanditEngine_IdenticalPointsZeroLoss(t *testing.T) {
	cols := make([][]float64, 15)
	for i := range cols {
		cols[i] = []float64{4, 4}
	}
	D := newColData(t, cols)
	loss, _ := ParseLoss("L2")
	rng := newRNG(1)

	res, err := banditEngine{}.run(D, loss, engineConfig{
		k: 2, maxIter: 20, buildConfidence: 5, swapConfidence: 5, batchSize: 8, workers: 1,
	}, nil, rng)
	if err != nil {
		t.Fatalf("run returned error: %v", err)
	}
	if res.FinalLoss != 0 {
		t.Errorf("FinalLoss = %v, want 0", res.FinalLoss)
	}
	if len(res.MedoidsFinal) != 2 || !distinct(res.MedoidsFinal) {
		t.Errorf("MedoidsFinal = %v, want 2 distinct medoids", res.MedoidsFinal)
	}
}

func TestBanditEngine_AgreesWithNaiveOnWellSeparatedClusters(t *testing.T) {
	cols := [][]float64{
		{0}, {1}, {2}, // cluster A
		{50}, {51}, {52}, // cluster B
	}
	D := newColData(t, cols)
	loss, _ := ParseLoss("L2")
	rng := newRNG(4)

	naive, err := naiveEngine{}.run(D, loss, engineConfig{k: 2, maxIter: 20, workers: 1}, nil, nil)
	if err != nil {
		t.Fatalf("naive run error: %v", err)
	}
	bandit, err := banditEngine{}.run(D, loss, engineConfig{
		k: 2, maxIter: 20, buildConfidence: 20, swapConfidence: 20, batchSize: 6, workers: 1,
	}, nil, rng)
	if err != nil {
		t.Fatalf("bandit run error: %v", err)
	}

	if !almostEqual(naive.FinalLoss, bandit.FinalLoss, 1e-6) {
		t.Errorf("naive loss %v, bandit loss %v, want equal on well-separated clusters", naive.FinalLoss, bandit.FinalLoss)
	}
}
