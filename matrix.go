package banditpam

import "gonum.org/v1/gonum/mat"

// Data is the d-feature by N-sample matrix backing a fit. Columns are
// points; rows are features. Data is never mutated by this package.
type Data struct {
	m *mat.Dense
}

// NewData wraps a dense matrix as clustering input. m must not be modified
// for the lifetime of any KMedoids fit that references it.
func NewData(m *mat.Dense) Data {
	return Data{m: m}
}

// Dims returns the number of features (rows) and points (columns).
func (d Data) Dims() (features, points int) {
	return d.m.Dims()
}

// col fills buf with column i and returns it, allocating a new slice of the
// right length when buf is nil. Reuse buf across calls to avoid per-point
// allocation in hot loops.
func (d Data) col(buf []float64, i int) []float64 {
	return mat.Col(buf, i, d.m)
}
