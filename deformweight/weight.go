// Package deformweight computes per-point importance weights that correct
// for the local volume or area distortion a deformation map introduces, so
// that a weighted average over deformed samples approximates an unweighted
// integral in the source space.
package deformweight

import (
	"fmt"

	"github.com/implicitfields/igp/field"
	"github.com/implicitfields/igp/levelset"
	"github.com/implicitfields/igp/utils"
)

// detFloor keeps the weight finite where the deformation Jacobian is
// (near-)singular. The weight quality degrades silently there; this is a
// documented precision caveat, not an error.
const detFloor = 1.e-12

// Options selects the weight variant. Surface restricts the Jacobian to
// the tangent planes of the two fields, turning volume scaling into area
// scaling for surface-to-surface maps. Normalize rescales the weight
// vector to sum to npoints so a uniform weight means an unweighted
// average. Detach is kept for signature parity with autodiff hosts; the
// returned weights are always plain coefficients here.
type Options struct {
	Surface   bool
	Detach    bool
	Normalize bool
}

// Compute evaluates y = deform(x), takes the per-point Jacobian, and
// returns w = 1/|det J| per point. In three dimensions the determinant
// magnitude is squared before inversion: the local area element of an
// embedded 2-D surface scales as the square of the restricted map's
// determinant-like factor, not its first power. A Jacobian
// failure is fatal and propagated; yNet and xNet are only consulted when
// opt.Surface is set.
func Compute(x utils.Matrix, deform field.Deformation, yNet, xNet field.ScalarField,
	df field.Differ, opt Options) (weight utils.Vector, err error) {
	var (
		npoints, dim = x.Dims()
	)
	x = x.Copy()
	y := deform.Forward(x)
	J, err := df.Jacobian(deform, x)
	if err != nil {
		err = fmt.Errorf("deformation jacobian failed: %w", err)
		return
	}

	if opt.Surface {
		if yNet == nil || xNet == nil {
			err = fmt.Errorf("surface weighting requires both the target and source fields")
			return
		}
		// Change of area along the tangential plane: restrict J to the
		// source tangent plane, then fill the two normal directions with
		// the rank-1 correction yn*xn^T so the determinant measures
		// surface stretch only.
		yn, _ := levelset.TangentialProjection(df, yNet, y)
		xn, xnProj := levelset.TangentialProjection(df, xNet, x)
		J = J.MulRight(xnProj)
		J = J.Rank1Update(yn, xn, 1, 1)
	}

	weight = J.AbsDets()
	if dim == 3 {
		weight.Apply(func(v float64) float64 { return v * v })
	}
	weight.Apply(func(v float64) float64 { return 1. / (v + detFloor) })

	if opt.Normalize {
		weight.Scale(float64(npoints) / weight.Sum())
	}
	return
}
