package banditpam

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// LossKind identifies a dissimilarity family: a small tagged value so the
// loss is a plain parameter rather than hidden object state.
type LossKind int

const (
	// LossLp is the Lp norm for an integer p >= 1 (Loss.P holds p).
	LossLp LossKind = iota
	// LossManhattan is L1, kept distinct from LossLp for the "manhattan" tag.
	LossManhattan
	// LossLInf is the Chebyshev / L-infinity norm.
	LossLInf
	// LossCosine is 1 - cosine similarity.
	LossCosine
)

// Loss is a resolved dissimilarity: a kind plus, for LossLp, its exponent.
// It is a value, not a hidden parameter of the dissimilarity call, so it can
// be passed around and compared like any other configuration value.
type Loss struct {
	Kind LossKind
	P    int
}

// ParseLoss parses a loss tag into a Loss. Recognized forms: "L<p>" for an
// integer p >= 1, "manhattan" (equivalent to "L1"), "inf" (L-infinity),
// "cos" (cosine dissimilarity), or a bare integer string (interpreted as p).
// Any other tag is a configuration error.
func ParseLoss(tag string) (Loss, error) {
	switch tag {
	case "manhattan":
		return Loss{Kind: LossManhattan}, nil
	case "inf":
		return Loss{Kind: LossLInf}, nil
	case "cos":
		return Loss{Kind: LossCosine}, nil
	}

	pStr := tag
	if strings.HasPrefix(tag, "L") || strings.HasPrefix(tag, "l") {
		pStr = tag[1:]
	}
	p, err := strconv.Atoi(pStr)
	if err != nil || p < 1 {
		return Loss{}, fmt.Errorf("banditpam: unrecognized loss %q", tag)
	}
	if pStr == "1" {
		return Loss{Kind: LossManhattan}, nil
	}
	return Loss{Kind: LossLp, P: p}, nil
}

// String renders the loss the way it round-trips through ParseLoss.
func (l Loss) String() string {
	switch l.Kind {
	case LossManhattan:
		return "manhattan"
	case LossLInf:
		return "inf"
	case LossCosine:
		return "cos"
	default:
		return fmt.Sprintf("L%d", l.P)
	}
}

// hasZeroNorm reports whether column i of D has zero L2 norm, which makes
// cosine dissimilarity undefined (0/0).
func hasZeroNorm(D Data, buf []float64, i int) bool {
	D.col(buf, i)
	return floats.Norm(buf, 2) == 0
}

// dist computes the dissimilarity between two already-extracted feature
// vectors of equal length. Cosine dissimilarity uses 1 - cos(a,b), so
// identical vectors cost 0 and it can be minimized like every other loss
// here (see DESIGN.md for the sign-convention rationale).
func (l Loss) dist(a, b []float64) float64 {
	switch l.Kind {
	case LossManhattan:
		return floats.Distance(a, b, 1)
	case LossLInf:
		return floats.Distance(a, b, math.Inf(1))
	case LossCosine:
		dot := floats.Dot(a, b)
		na := floats.Norm(a, 2)
		nb := floats.Norm(b, 2)
		return 1 - dot/(na*nb)
	default:
		return floats.Distance(a, b, float64(l.P))
	}
}
