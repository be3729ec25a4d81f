package banditpam

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// floatTol is the tolerance used by almostEqual throughout this package's
// tests.
const floatTol = 1e-9

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// newColData builds a Data matrix from column vectors (one []float64 per
// point), the most readable way to hand-write small test fixtures.
func newColData(t *testing.T, cols [][]float64) Data {
	t.Helper()
	if len(cols) == 0 {
		t.Fatal("newColData: no columns")
	}
	features := len(cols[0])
	m := mat.NewDense(features, len(cols), nil)
	for j, col := range cols {
		if len(col) != features {
			t.Fatalf("newColData: column %d has %d features, want %d", j, len(col), features)
		}
		m.SetCol(j, col)
	}
	return NewData(m)
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

func distinct(xs []int) bool {
	seen := make(map[int]bool, len(xs))
	for _, x := range xs {
		if seen[x] {
			return false
		}
		seen[x] = true
	}
	return true
}
