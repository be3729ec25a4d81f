package banditpam

import (
	"fmt"
	"os"
	"runtime"
)

// Algorithm selects the BUILD/SWAP strategy. naive and FastPAM1 share the
// same exact BUILD; BanditPAM runs its own bandit-accelerated BUILD.
type Algorithm string

const (
	// AlgorithmBanditPAM accelerates BUILD and SWAP with UCB arm elimination.
	AlgorithmBanditPAM Algorithm = "BanditPAM"
	// AlgorithmNaive is classical exact PAM.
	AlgorithmNaive Algorithm = "naive"
	// AlgorithmFastPAM1 is the single-pass exact SWAP variant.
	AlgorithmFastPAM1 Algorithm = "FastPAM1"
)

// Config controls a k-medoids fit. Start from [DefaultConfig] and override
// the fields you need.
type Config struct {
	// NMedoids is k, the number of medoids to find. Required, must be >= 1.
	NMedoids int

	// Algorithm selects BanditPAM, naive, or FastPAM1. Default: BanditPAM.
	Algorithm Algorithm

	// Loss is the dissimilarity tag: "L<p>", "manhattan", "inf", "cos", or a
	// bare integer p. Default: "L2".
	Loss string

	// MaxIter caps the number of SWAP iterations. Reaching it without
	// convergence is not an error. Default: 1000.
	MaxIter int

	// BuildConfidence sets delta = N^-BuildConfidence for BUILD's UCB
	// radius. Only used by AlgorithmBanditPAM. Default: 1000.
	BuildConfidence int

	// SwapConfidence sets delta = N^-SwapConfidence for SWAP's UCB radius.
	// Only used by AlgorithmBanditPAM. Default: 10000.
	SwapConfidence int

	// BatchSize is the number of reference points sampled per bandit round,
	// capped at N. Only used by AlgorithmBanditPAM. Default: 100.
	BatchSize int

	// Verbosity controls diagnostics: 0 emits nothing, >0 writes LogFilename.
	Verbosity int

	// LogFilename is the diagnostic sink path when Verbosity > 0.
	LogFilename string

	// Seed drives the deterministic PRNG used by AlgorithmBanditPAM's
	// sampling. Not part of the original algorithm's parameters, added so
	// a fit is reproducible given a fixed seed. 0 uses a stable default.
	Seed int64

	// Workers caps the goroutines used by parallel loops. 0 means
	// runtime.NumCPU().
	Workers int
}

// DefaultConfig returns a Config with reasonable defaults. NMedoids still
// must be set before use.
func DefaultConfig() Config {
	return Config{
		Algorithm:       AlgorithmBanditPAM,
		Loss:            "L2",
		MaxIter:         1000,
		BuildConfidence: 1000,
		SwapConfidence:  10000,
		BatchSize:       100,
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Algorithm == "" {
		cfg.Algorithm = AlgorithmBanditPAM
	}
	if cfg.Loss == "" {
		cfg.Loss = "L2"
	}
	if cfg.MaxIter == 0 {
		cfg.MaxIter = 1000
	}
	if cfg.BuildConfidence == 0 {
		cfg.BuildConfidence = 1000
	}
	if cfg.SwapConfidence == 0 {
		cfg.SwapConfidence = 10000
	}
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 100
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
}

// validateConfig checks fields that don't require knowing N yet.
func validateConfig(cfg *Config) error {
	if cfg.NMedoids < 1 {
		return fmt.Errorf("banditpam: NMedoids must be >= 1, got %d", cfg.NMedoids)
	}
	switch cfg.Algorithm {
	case AlgorithmBanditPAM, AlgorithmNaive, AlgorithmFastPAM1:
	default:
		return fmt.Errorf("banditpam: unrecognized algorithm %q", cfg.Algorithm)
	}
	if _, err := ParseLoss(cfg.Loss); err != nil {
		return err
	}
	if cfg.MaxIter < 1 {
		return fmt.Errorf("banditpam: MaxIter must be >= 1, got %d", cfg.MaxIter)
	}
	if cfg.BuildConfidence < 1 {
		return fmt.Errorf("banditpam: BuildConfidence must be >= 1, got %d", cfg.BuildConfidence)
	}
	if cfg.SwapConfidence < 1 {
		return fmt.Errorf("banditpam: SwapConfidence must be >= 1, got %d", cfg.SwapConfidence)
	}
	if cfg.BatchSize < 1 {
		return fmt.Errorf("banditpam: BatchSize must be >= 1, got %d", cfg.BatchSize)
	}
	return nil
}

// KMedoids holds a fit's configuration and, after a successful Fit, its
// results. Accessors validate the same way the constructor does; a failed
// Fit leaves the results of a prior successful Fit untouched.
type KMedoids struct {
	nMedoids        int
	algorithm       Algorithm
	lossTag         string
	maxIter         int
	buildConfidence int
	swapConfidence  int
	batchSize       int
	verbosity       int
	logFilename     string
	seed            int64
	workers         int

	medoidsBuild []int
	medoidsFinal []int
	assign       []int
	steps        int
	finalLoss    float64
}

// New validates cfg, applies defaults to unset fields, and returns a
// KMedoids ready for Fit.
func New(cfg Config) (*KMedoids, error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &KMedoids{
		nMedoids:        cfg.NMedoids,
		algorithm:       cfg.Algorithm,
		lossTag:         cfg.Loss,
		maxIter:         cfg.MaxIter,
		buildConfidence: cfg.BuildConfidence,
		swapConfidence:  cfg.SwapConfidence,
		batchSize:       cfg.BatchSize,
		verbosity:       cfg.Verbosity,
		logFilename:     cfg.LogFilename,
		seed:            cfg.Seed,
		workers:         cfg.Workers,
	}, nil
}

// Fit finds medoids for D under the configured algorithm and loss. On
// error, D is never mutated and any results from a prior successful Fit
// are left in place.
func (km *KMedoids) Fit(D Data) error {
	features, n := D.Dims()
	if features < 1 || n < 1 {
		return fmt.Errorf("banditpam: D must have at least one feature and one point")
	}
	if n < km.nMedoids {
		return fmt.Errorf("banditpam: N (%d) must be >= NMedoids (%d)", n, km.nMedoids)
	}

	loss, err := ParseLoss(km.lossTag)
	if err != nil {
		return err
	}
	if loss.Kind == LossCosine {
		if err := checkNoZeroNormColumns(D); err != nil {
			return err
		}
	}

	var eng engine
	switch km.algorithm {
	case AlgorithmNaive:
		eng = naiveEngine{}
	case AlgorithmFastPAM1:
		eng = fastPAM1Engine{}
	default:
		eng = banditEngine{}
	}

	var obs Observer = noopObserver{}
	if km.verbosity > 0 {
		f, err := os.Create(km.logFilename)
		if err != nil {
			return fmt.Errorf("banditpam: opening log file: %w", err)
		}
		defer f.Close()
		obs = newFileObserver(f)
	}

	res, err := eng.run(D, loss, engineConfig{
		k:               km.nMedoids,
		maxIter:         km.maxIter,
		buildConfidence: km.buildConfidence,
		swapConfidence:  km.swapConfidence,
		batchSize:       km.batchSize,
		workers:         km.workers,
	}, obs, newRNG(km.seed))
	if err != nil {
		return err
	}

	km.medoidsBuild = res.MedoidsBuild
	km.medoidsFinal = res.MedoidsFinal
	km.assign = res.Assign
	km.steps = res.Steps
	km.finalLoss = res.FinalLoss

	obs.OnComplete(Summary{
		MedoidsBuild: res.MedoidsBuild,
		MedoidsFinal: res.MedoidsFinal,
		Steps:        res.Steps,
		FinalLoss:    res.FinalLoss,
	})

	return nil
}

// checkNoZeroNormColumns reports a configuration error if any column of D
// has zero L2 norm, which makes cosine dissimilarity undefined (0/0).
func checkNoZeroNormColumns(D Data) error {
	features, n := D.Dims()
	buf := make([]float64, features)
	for i := 0; i < n; i++ {
		if hasZeroNorm(D, buf, i) {
			return fmt.Errorf("banditpam: column %d has zero norm, undefined under cosine loss", i)
		}
	}
	return nil
}

// MedoidsBuild returns the medoid set after BUILD, before any SWAP.
func (km *KMedoids) MedoidsBuild() []int { return km.medoidsBuild }

// MedoidsFinal returns the medoid set after SWAP converged or MaxIter was reached.
func (km *KMedoids) MedoidsFinal() []int { return km.medoidsFinal }

// Assignments returns, for each point, the slot in MedoidsFinal of its nearest medoid.
func (km *KMedoids) Assignments() []int { return km.assign }

// Steps returns the number of SWAP iterations the last Fit executed.
func (km *KMedoids) Steps() int { return km.steps }

// FinalLoss returns the total loss of MedoidsFinal from the last Fit.
func (km *KMedoids) FinalLoss() float64 { return km.finalLoss }

// NMedoids returns the configured k.
func (km *KMedoids) NMedoids() int { return km.nMedoids }

// SetNMedoids validates and sets k for the next Fit.
func (km *KMedoids) SetNMedoids(k int) error {
	if k < 1 {
		return fmt.Errorf("banditpam: NMedoids must be >= 1, got %d", k)
	}
	km.nMedoids = k
	return nil
}

// Algorithm returns the configured algorithm.
func (km *KMedoids) Algorithm() Algorithm { return km.algorithm }

// SetAlgorithm validates and sets the algorithm for the next Fit.
func (km *KMedoids) SetAlgorithm(a Algorithm) error {
	switch a {
	case AlgorithmBanditPAM, AlgorithmNaive, AlgorithmFastPAM1:
	default:
		return fmt.Errorf("banditpam: unrecognized algorithm %q", a)
	}
	km.algorithm = a
	return nil
}

// LossTag returns the configured loss tag.
func (km *KMedoids) LossTag() string { return km.lossTag }

// SetLossTag validates and sets the loss tag for the next Fit.
func (km *KMedoids) SetLossTag(tag string) error {
	if _, err := ParseLoss(tag); err != nil {
		return err
	}
	km.lossTag = tag
	return nil
}

// MaxIter returns the configured SWAP iteration cap.
func (km *KMedoids) MaxIter() int { return km.maxIter }

// SetMaxIter validates and sets the SWAP iteration cap.
func (km *KMedoids) SetMaxIter(m int) error {
	if m < 1 {
		return fmt.Errorf("banditpam: MaxIter must be >= 1, got %d", m)
	}
	km.maxIter = m
	return nil
}

// BuildConfidence returns the configured BUILD confidence exponent.
func (km *KMedoids) BuildConfidence() int { return km.buildConfidence }

// SetBuildConfidence validates and sets the BUILD confidence exponent.
func (km *KMedoids) SetBuildConfidence(c int) error {
	if c < 1 {
		return fmt.Errorf("banditpam: BuildConfidence must be >= 1, got %d", c)
	}
	km.buildConfidence = c
	return nil
}

// SwapConfidence returns the configured SWAP confidence exponent.
func (km *KMedoids) SwapConfidence() int { return km.swapConfidence }

// SetSwapConfidence validates and sets the SWAP confidence exponent.
func (km *KMedoids) SetSwapConfidence(c int) error {
	if c < 1 {
		return fmt.Errorf("banditpam: SwapConfidence must be >= 1, got %d", c)
	}
	km.swapConfidence = c
	return nil
}

// Verbosity returns the configured verbosity.
func (km *KMedoids) Verbosity() int { return km.verbosity }

// SetVerbosity sets the verbosity; 0 disables diagnostics.
func (km *KMedoids) SetVerbosity(v int) { km.verbosity = v }

// LogFilename returns the configured diagnostic sink path.
func (km *KMedoids) LogFilename() string { return km.logFilename }

// SetLogFilename sets the diagnostic sink path used when Verbosity > 0.
func (km *KMedoids) SetLogFilename(name string) { km.logFilename = name }
