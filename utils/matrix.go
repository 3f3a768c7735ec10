package utils

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"
)

// Matrix wraps a gonum Dense with the chainable batch operations the
// samplers need. A point batch of npoints points in dim dimensions is a
// Matrix with npoints rows and dim columns (leading batch axis of size one
// is implicit).
type Matrix struct {
	M *mat.Dense
}

func NewMatrix(nr, nc int, dataO ...[]float64) (R Matrix) {
	var m *mat.Dense
	if len(dataO) != 0 {
		if len(dataO[0]) != nr*nc {
			err := fmt.Errorf("mismatch in allocation: NewMatrix nr,nc = %v,%v, len(data[0]) = %v", nr, nc, len(dataO[0]))
			panic(err)
		}
		m = mat.NewDense(nr, nc, dataO[0])
	} else {
		m = mat.NewDense(nr, nc, make([]float64, nr*nc))
	}
	R = Matrix{m}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m Matrix) Dims() (r, c int)          { return m.M.Dims() }
func (m Matrix) At(i, j int) float64       { return m.M.At(i, j) }
func (m Matrix) T() mat.Matrix             { return m.M.T() }
func (m Matrix) RawMatrix() blas64.General { return m.M.RawMatrix() }
func (m Matrix) RawData() []float64        { return m.M.RawMatrix().Data }

func (m Matrix) IsEmpty() bool { return m.M == nil }

func (m Matrix) Set(i, j int, val float64) Matrix { // Changes receiver
	m.M.Set(i, j, val)
	return m
}

func (m Matrix) Row(i int) []float64 { return m.M.RawRowView(i) }

func (m Matrix) SetRow(i int, data []float64) Matrix { // Changes receiver
	m.M.SetRow(i, data)
	return m
}

func (m Matrix) Copy() (R Matrix) { // Does not change receiver
	var (
		nr, nc = m.Dims()
		data   = m.RawData()
		dataR  = make([]float64, len(data))
	)
	copy(dataR, data)
	R = NewMatrix(nr, nc, dataR)
	return
}

func (m Matrix) Scale(a float64) Matrix { // Changes receiver
	var (
		data = m.RawData()
	)
	for i := range data {
		data[i] *= a
	}
	return m
}

func (m Matrix) Clamp(min, max float64) Matrix { // Changes receiver
	var (
		data = m.RawData()
	)
	for i, val := range data {
		if val < min {
			data[i] = min
		} else if val > max {
			data[i] = max
		}
	}
	return m
}

// SliceRows subsets the rows indexed by I into a new Matrix. An empty I
// yields an empty Matrix (zero value), since gonum disallows zero-row
// allocation.
func (m Matrix) SliceRows(I Index) (R Matrix) { // Does not change receiver
	var (
		nr, nc = m.Dims()
	)
	if len(I) == 0 {
		return Matrix{}
	}
	R = NewMatrix(len(I), nc)
	for iNewRow, i := range I {
		if i > nr-1 || i < 0 {
			err := fmt.Errorf("index out of bounds: index = %d, max_bounds = %d", i, nr-1)
			panic(err)
		}
		R.M.SetRow(iNewRow, m.M.RawRowView(i))
	}
	return
}

// ConcatRows stacks A on top of B. Either side may be empty.
func ConcatRows(A, B Matrix) (R Matrix) {
	if A.IsEmpty() {
		return B
	}
	if B.IsEmpty() {
		return A
	}
	var (
		nrA, ncA = A.Dims()
		nrB, ncB = B.Dims()
	)
	if ncA != ncB {
		err := fmt.Errorf("mismatched column dims in ConcatRows: %v vs %v", ncA, ncB)
		panic(err)
	}
	data := make([]float64, 0, (nrA+nrB)*ncA)
	data = append(data, A.RawData()...)
	data = append(data, B.RawData()...)
	R = NewMatrix(nrA+nrB, ncA, data)
	return
}

// RowNorms returns the Euclidean norm of each row.
func (m Matrix) RowNorms() (V Vector) {
	var (
		nr, nc = m.Dims()
		data   = m.RawData()
	)
	V = NewVector(nr)
	for i := 0; i < nr; i++ {
		var s float64
		for j := 0; j < nc; j++ {
			val := data[i*nc+j]
			s += val * val
		}
		V.Set(i, math.Sqrt(s))
	}
	return
}

// NormalizeRows scales each row to unit length, with the denominator
// floored by eps so near-zero rows degrade instead of dividing by zero.
func (m Matrix) NormalizeRows(eps float64) Matrix { // Changes receiver
	var (
		nr, nc = m.Dims()
		data   = m.RawData()
		norms  = m.RowNorms()
	)
	for i := 0; i < nr; i++ {
		den := norms.At(i) + eps
		for j := 0; j < nc; j++ {
			data[i*nc+j] /= den
		}
	}
	return m
}

// SubRowsScaled computes m[i,:] -= a[i,:] * s[i] row by row, the batched
// Newton step x - g*f(x).
func (m Matrix) SubRowsScaled(a Matrix, s Vector) Matrix { // Changes receiver
	var (
		nr, nc = m.Dims()
		data   = m.RawData()
		dataA  = a.RawData()
	)
	anr, anc := a.Dims()
	if anr != nr || anc != nc || s.Len() != nr {
		err := fmt.Errorf("mismatched dims in SubRowsScaled: m = %v x %v, a = %v x %v, s = %v",
			nr, nc, anr, anc, s.Len())
		panic(err)
	}
	for i := 0; i < nr; i++ {
		si := s.At(i)
		for j := 0; j < nc; j++ {
			data[i*nc+j] -= dataA[i*nc+j] * si
		}
	}
	return m
}
