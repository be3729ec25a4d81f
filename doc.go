// Package banditpam implements k-medoids clustering: given N points in a
// metric space and a target cluster count k, it selects k dataset points
// (the "medoids") that minimize the sum of each point's distance to its
// nearest medoid. Unlike k-means centroids, medoids are themselves data
// points, so the method works with arbitrary dissimilarities and is robust
// to outliers.
//
// Three algorithms are available. "BanditPAM" accelerates classical PAM by
// treating each candidate medoid assignment as a multi-armed-bandit arm and
// only sampling reference points until confidence bounds separate a winner
// from the rest, reducing the expected per-step cost from O(N²) to
// O(N log N); it applies this to both the BUILD seeding step and the SWAP
// local search. "naive" is classical exact PAM. "FastPAM1" is a single-pass
// swap variant of PAM. naive and FastPAM1 share the same exact BUILD step
// and differ only in their SWAP local-search strategy.
//
// Basic usage:
//
//	cfg := banditpam.DefaultConfig()
//	cfg.NMedoids = 3
//	cfg.Loss = "L2"
//	km, err := banditpam.New(cfg)
//	err = km.Fit(banditpam.NewData(D))
//	// km.MedoidsFinal() are the chosen columns of D
//	// km.Assignments()[i] is the medoid slot point i belongs to
//
// D is a dense d×N matrix (d features, N samples); see [Data] and [NewData].
package banditpam
