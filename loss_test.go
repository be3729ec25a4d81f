package banditpam

import (
	"math"
	"testing"
)

func TestParseLoss_Lp(t *testing.T) {
	for _, tc := range []struct {
		tag  string
		kind LossKind
		p    int
	}{
		{"L2", LossLp, 2},
		{"2", LossLp, 2},
		{"L3", LossLp, 3},
		{"L1", LossManhattan, 0},
		{"1", LossManhattan, 0},
		{"manhattan", LossManhattan, 0},
		{"inf", LossLInf, 0},
		{"cos", LossCosine, 0},
	} {
		l, err := ParseLoss(tc.tag)
		if err != nil {
			t.Fatalf("ParseLoss(%q): unexpected error: %v", tc.tag, err)
		}
		if l.Kind != tc.kind {
			t.Errorf("ParseLoss(%q).Kind = %v, want %v", tc.tag, l.Kind, tc.kind)
		}
		if tc.kind == LossLp && l.P != tc.p {
			t.Errorf("ParseLoss(%q).P = %d, want %d", tc.tag, l.P, tc.p)
		}
	}
}

func TestParseLoss_Invalid(t *testing.T) {
	for _, tag := range []string{"", "euclidean", "L", "Lx", "L0", "-1"} {
		if _, err := ParseLoss(tag); err == nil {
			t.Errorf("ParseLoss(%q): expected error, got nil", tag)
		}
	}
}

func TestLoss_L1AndManhattanAgree(t *testing.T) {
	l1, _ := ParseLoss("L1")
	manhattan, _ := ParseLoss("manhattan")
	a := []float64{1, 2, 3}
	b := []float64{4, 0, -3}
	if d1, d2 := l1.dist(a, b), manhattan.dist(a, b); d1 != d2 {
		t.Errorf("L1 dist = %v, manhattan dist = %v, want equal", d1, d2)
	}
}

func TestLoss_L2Euclidean(t *testing.T) {
	l2, _ := ParseLoss("L2")
	a := []float64{1, 2, 3}
	b := []float64{4, 6, 3}
	if got := l2.dist(a, b); !almostEqual(got, 5.0, floatTol) {
		t.Errorf("L2 dist = %v, want 5.0", got)
	}
}

func TestLoss_LInf(t *testing.T) {
	inf, _ := ParseLoss("inf")
	a := []float64{0, 0, 0}
	b := []float64{1, 5, 3}
	if got := inf.dist(a, b); got != 5 {
		t.Errorf("LInf dist = %v, want 5", got)
	}
}

func TestLoss_Cosine_IdenticalVectors(t *testing.T) {
	cos, _ := ParseLoss("cos")
	a := []float64{1, 2, 3}
	if got := cos.dist(a, a); !almostEqual(got, 0, floatTol) {
		t.Errorf("cosine dissimilarity of identical vectors = %v, want 0", got)
	}
}

func TestLoss_Cosine_Orthogonal(t *testing.T) {
	cos, _ := ParseLoss("cos")
	a := []float64{1, 0}
	b := []float64{0, 1}
	if got := cos.dist(a, b); !almostEqual(got, 1, floatTol) {
		t.Errorf("cosine dissimilarity of orthogonal vectors = %v, want 1", got)
	}
}

func TestLoss_Cosine_AntiParallel(t *testing.T) {
	cos, _ := ParseLoss("cos")
	a := []float64{1, 0}
	b := []float64{-1, 0}
	got := cos.dist(a, b)
	if !almostEqual(got, 2, floatTol) {
		t.Errorf("cosine dissimilarity of anti-parallel vectors = %v, want 2", got)
	}
	if math.IsNaN(got) {
		t.Error("anti-parallel cosine dissimilarity must not be NaN")
	}
}

func TestLoss_String_RoundTrip(t *testing.T) {
	for _, tag := range []string{"L2", "L3", "manhattan", "inf", "cos"} {
		l, err := ParseLoss(tag)
		if err != nil {
			t.Fatalf("ParseLoss(%q): %v", tag, err)
		}
		again, err := ParseLoss(l.String())
		if err != nil {
			t.Fatalf("ParseLoss(String()=%q): %v", l.String(), err)
		}
		if again.Kind != l.Kind || again.P != l.P {
			t.Errorf("round trip through %q failed: got %+v, want %+v", tag, again, l)
		}
	}
}

func TestHasZeroNorm(t *testing.T) {
	D := newColData(t, [][]float64{{1, 1}, {0, 0}, {2, -2}})
	buf := make([]float64, 2)
	if hasZeroNorm(D, buf, 0) {
		t.Error("column 0 is non-zero, hasZeroNorm returned true")
	}
	if !hasZeroNorm(D, buf, 1) {
		t.Error("column 1 is all zero, hasZeroNorm returned false")
	}
}
