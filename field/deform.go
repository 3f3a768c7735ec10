package field

import (
	"fmt"
	"math"

	"github.com/implicitfields/igp/utils"
)

// JacobianDeformation is implemented by deformations that know their own
// Jacobian. AnalyticDiffer prefers it over finite differences.
type JacobianDeformation interface {
	Deformation
	JacobianAt(x utils.Matrix) (utils.MatrixBatch, error)
}

// FixedPointInvert solves d(x) = y by iterating x <- x - (d(x) - y),
// starting from y. It converges for maps close to the identity, which is
// the regime deformation networks operate in.
func FixedPointInvert(d Deformation, y utils.Matrix, iters int) (x utils.Matrix) {
	x = y.Copy()
	for k := 0; k < iters; k++ {
		var (
			fx     = d.Forward(x)
			nr, nc = x.Dims()
			dataX  = x.RawData()
			dataF  = fx.RawData()
			dataY  = y.RawData()
		)
		for i := 0; i < nr*nc; i++ {
			dataX[i] -= dataF[i] - dataY[i]
		}
	}
	return
}

// IdentityDeform maps every point to itself.
type IdentityDeform struct{}

func (IdentityDeform) Forward(x utils.Matrix) utils.Matrix { return x.Copy() }

func (IdentityDeform) Invert(y utils.Matrix, iters int) utils.Matrix { return y.Copy() }

func (IdentityDeform) JacobianAt(x utils.Matrix) (utils.MatrixBatch, error) {
	nr, nc := x.Dims()
	return utils.IdentityBatch(nr, nc), nil
}

// AffineDeform maps x to A*x + B. A is dim x dim row-major.
type AffineDeform struct {
	A   []float64
	B   []float64
	dim int
}

func NewAffineDeform(dim int, a, b []float64) (d AffineDeform) {
	if len(a) != dim*dim || len(b) != dim {
		err := fmt.Errorf("mismatch in allocation: NewAffineDeform dim = %v, len(a) = %v, len(b) = %v",
			dim, len(a), len(b))
		panic(err)
	}
	d = AffineDeform{A: a, B: b, dim: dim}
	return
}

func (d AffineDeform) Forward(x utils.Matrix) (y utils.Matrix) {
	var (
		nr, nc = x.Dims()
	)
	y = utils.NewMatrix(nr, nc)
	for i := 0; i < nr; i++ {
		for r := 0; r < nc; r++ {
			s := d.B[r]
			for c := 0; c < nc; c++ {
				s += d.A[r*nc+c] * x.At(i, c)
			}
			y.Set(i, r, s)
		}
	}
	return
}

// Invert ignores iters; the affine map has a closed-form inverse via the
// same fixed-point scheme's limit. The fixed-point route is kept for
// parity testing against FixedPointInvert.
func (d AffineDeform) Invert(y utils.Matrix, iters int) utils.Matrix {
	return FixedPointInvert(d, y, iters)
}

func (d AffineDeform) JacobianAt(x utils.Matrix) (utils.MatrixBatch, error) {
	var (
		nr, nc = x.Dims()
	)
	J := utils.NewMatrixBatch(nr, nc)
	for i := 0; i < nr; i++ {
		copy(J.Data[i*nc*nc:(i+1)*nc*nc], d.A)
	}
	return J, nil
}

// RadialDeform pushes points radially by a smooth bump:
// y = x * (1 + Amp * exp(-|x|^2)). Amp small keeps the map invertible on
// the unit cube.
type RadialDeform struct {
	Amp float64
}

func (d RadialDeform) Forward(x utils.Matrix) (y utils.Matrix) {
	var (
		nr, nc = x.Dims()
		norms  = x.RowNorms()
	)
	y = utils.NewMatrix(nr, nc)
	for i := 0; i < nr; i++ {
		n := norms.At(i)
		scale := 1 + d.Amp*math.Exp(-n*n)
		for j := 0; j < nc; j++ {
			y.Set(i, j, x.At(i, j)*scale)
		}
	}
	return
}

func (d RadialDeform) Invert(y utils.Matrix, iters int) utils.Matrix {
	return FixedPointInvert(d, y, iters)
}
