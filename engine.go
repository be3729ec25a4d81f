package banditpam

import "math/rand"

// engineConfig is the immutable view of run parameters shared by every
// engine strategy. It is derived from Config once per Fit call.
type engineConfig struct {
	k               int
	maxIter         int
	buildConfidence int
	swapConfidence  int
	batchSize       int
	workers         int
}

// fitResult is what every engine strategy produces.
type fitResult struct {
	MedoidsBuild []int
	MedoidsFinal []int
	Assign       []int
	Steps        int
	FinalLoss    float64
}

// engine is the strategy interface selected by the driver's tagged
// Algorithm value. Each implementation owns its own mutable working state
// for the duration of one run and shares only the immutable (D, loss, cfg)
// view; there is no shared base type or downcasting.
type engine interface {
	run(D Data, loss Loss, cfg engineConfig, obs Observer, rng *rand.Rand) (fitResult, error)
}
