package field

import (
	"fmt"
	"math"

	"github.com/james-bowman/sparse"

	"github.com/implicitfields/igp/utils"
)

// FiniteDiffer approximates gradients and Jacobians by central differences.
// Precision caveat: derivatives are accurate to O(Step^2), a step below the
// analytic derivatives an autodiff backend would supply. Step trades
// truncation against roundoff; the default suits float64 fields of O(1)
// magnitude.
type FiniteDiffer struct {
	Step float64
}

func NewFiniteDiffer() FiniteDiffer {
	return FiniteDiffer{Step: 1.e-6}
}

func (fd FiniteDiffer) Gradient(f ScalarField, x utils.Matrix) (G utils.Matrix) {
	var (
		nr, nc = x.Dims()
		h      = fd.Step
	)
	G = utils.NewMatrix(nr, nc)
	for j := 0; j < nc; j++ {
		xp := x.Copy()
		xm := x.Copy()
		for i := 0; i < nr; i++ {
			xp.Set(i, j, x.At(i, j)+h)
			xm.Set(i, j, x.At(i, j)-h)
		}
		yp := f.Evaluate(xp)
		ym := f.Evaluate(xm)
		for i := 0; i < nr; i++ {
			G.Set(i, j, (yp.At(i)-ym.At(i))/(2*h))
		}
	}
	return
}

// Jacobian probes d coordinate by coordinate. The full batch Jacobian is
// block-diagonal for a pointwise map, so the probe results are assembled
// into a sparse DOK matrix before the per-point dim x dim blocks are
// extracted. A NaN or Inf entry is a failed computation and returns an
// error; callers must not retry.
func (fd FiniteDiffer) Jacobian(d Deformation, x utils.Matrix) (J utils.MatrixBatch, err error) {
	var (
		nr, nc = x.Dims()
		h      = fd.Step
		K      = sparse.NewDOK(nr*nc, nr*nc)
	)
	for j := 0; j < nc; j++ {
		xp := x.Copy()
		xm := x.Copy()
		for i := 0; i < nr; i++ {
			xp.Set(i, j, x.At(i, j)+h)
			xm.Set(i, j, x.At(i, j)-h)
		}
		yp := d.Forward(xp)
		ym := d.Forward(xm)
		for i := 0; i < nr; i++ {
			for r := 0; r < nc; r++ {
				val := (yp.At(i, r) - ym.At(i, r)) / (2 * h)
				if math.IsNaN(val) || math.IsInf(val, 0) {
					err = fmt.Errorf("jacobian entry (%d,%d) of point %d is not finite", r, j, i)
					return
				}
				if val != 0 {
					K.Set(i*nc+r, i*nc+j, val)
				}
			}
		}
	}
	J = utils.NewMatrixBatch(nr, nc)
	for i := 0; i < nr; i++ {
		for r := 0; r < nc; r++ {
			for c := 0; c < nc; c++ {
				J.Data[i*nc*nc+r*nc+c] = K.At(i*nc+r, i*nc+c)
			}
		}
	}
	return
}
