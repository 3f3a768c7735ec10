package utils

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// MatrixBatch holds N small Dim x Dim matrices stored contiguously, one per
// point of a batch. It carries per-point Jacobians and tangential
// projection operators.
type MatrixBatch struct {
	N, Dim int
	Data   []float64 // N blocks of Dim*Dim values, row-major per block
}

func NewMatrixBatch(n, dim int, dataO ...[]float64) (B MatrixBatch) {
	var data []float64
	if len(dataO) != 0 {
		if len(dataO[0]) != n*dim*dim {
			err := fmt.Errorf("mismatch in allocation: NewMatrixBatch n,dim = %v,%v, len(data[0]) = %v",
				n, dim, len(dataO[0]))
			panic(err)
		}
		data = dataO[0]
	} else {
		data = make([]float64, n*dim*dim)
	}
	B = MatrixBatch{N: n, Dim: dim, Data: data}
	return
}

// IdentityBatch broadcasts the Dim x Dim identity across n blocks.
func IdentityBatch(n, dim int) (B MatrixBatch) {
	B = NewMatrixBatch(n, dim)
	for i := 0; i < n; i++ {
		for j := 0; j < dim; j++ {
			B.Data[i*dim*dim+j*dim+j] = 1
		}
	}
	return
}

// Block returns block i as a Dense sharing the underlying storage.
func (b MatrixBatch) Block(i int) *mat.Dense {
	var (
		d2 = b.Dim * b.Dim
	)
	return mat.NewDense(b.Dim, b.Dim, b.Data[i*d2:(i+1)*d2])
}

func (b MatrixBatch) Copy() (R MatrixBatch) {
	R = NewMatrixBatch(b.N, b.Dim)
	copy(R.Data, b.Data)
	return
}

// Outer computes the batched outer product v1[i] * v2[i]^T. Both inputs are
// point batches of matching shape; mismatch is a precondition violation.
func Outer(v1, v2 Matrix) (B MatrixBatch) {
	var (
		n1, d1 = v1.Dims()
		n2, d2 = v2.Dims()
	)
	if n1 != n2 || d1 != d2 {
		err := fmt.Errorf("mismatched dims in Outer: %v x %v vs %v x %v", n1, d1, n2, d2)
		panic(err)
	}
	B = NewMatrixBatch(n1, d1)
	var (
		data1 = v1.RawData()
		data2 = v2.RawData()
	)
	for i := 0; i < n1; i++ {
		for r := 0; r < d1; r++ {
			vr := data1[i*d1+r]
			for c := 0; c < d1; c++ {
				B.Data[i*d1*d1+r*d1+c] = vr * data2[i*d1+c]
			}
		}
	}
	return
}

// Rank1Update returns alpha * Outer(v1, v2) + beta * b per block. The
// receiver is unchanged. Block count and dimension must match the vector
// batches exactly.
func (b MatrixBatch) Rank1Update(v1, v2 Matrix, alpha, beta float64) (R MatrixBatch) {
	var (
		n1, d1 = v1.Dims()
	)
	if n1 != b.N || d1 != b.Dim {
		err := fmt.Errorf("mismatched dims in Rank1Update: batch = %v blocks of dim %v, vectors = %v x %v",
			b.N, b.Dim, n1, d1)
		panic(err)
	}
	R = Outer(v1, v2)
	for i, val := range R.Data {
		R.Data[i] = alpha*val + beta*b.Data[i]
	}
	return
}

// MulRight multiplies each block on the right by the corresponding block of
// a: R_i = b_i * a_i.
func (b MatrixBatch) MulRight(a MatrixBatch) (R MatrixBatch) {
	if a.N != b.N || a.Dim != b.Dim {
		err := fmt.Errorf("mismatched batches in MulRight: %v/%v vs %v/%v", b.N, b.Dim, a.N, a.Dim)
		panic(err)
	}
	R = NewMatrixBatch(b.N, b.Dim)
	for i := 0; i < b.N; i++ {
		R.Block(i).Mul(b.Block(i), a.Block(i))
	}
	return
}

// MulVec applies each block to the corresponding row of x: R[i,:] = b_i * x[i,:].
func (b MatrixBatch) MulVec(x Matrix) (R Matrix) {
	var (
		nr, nc = x.Dims()
	)
	if nr != b.N || nc != b.Dim {
		err := fmt.Errorf("mismatched dims in MulVec: batch = %v/%v, x = %v x %v", b.N, b.Dim, nr, nc)
		panic(err)
	}
	R = NewMatrix(nr, nc)
	var (
		d     = b.Dim
		dataX = x.RawData()
		dataR = R.RawData()
	)
	for i := 0; i < nr; i++ {
		for r := 0; r < d; r++ {
			var s float64
			for c := 0; c < d; c++ {
				s += b.Data[i*d*d+r*d+c] * dataX[i*d+c]
			}
			dataR[i*d+r] = s
		}
	}
	return
}

// Dets returns the determinant of each block via LU factorization.
func (b MatrixBatch) Dets() (V Vector) {
	V = NewVector(b.N)
	for i := 0; i < b.N; i++ {
		V.Set(i, mat.Det(b.Block(i)))
	}
	return
}

// AbsDets returns |det| per block.
func (b MatrixBatch) AbsDets() (V Vector) {
	V = b.Dets()
	V.Apply(math.Abs)
	return
}
