// Package levelset produces point batches on the zero level-set of an
// implicit scalar field, and estimates the tangent-plane geometry the
// deformation weighting needs.
package levelset

import (
	"github.com/implicitfields/igp/field"
	"github.com/implicitfields/igp/utils"
)

// normFloor keeps unit-normal computation finite at near-critical points
// of the field, where the gradient norm approaches zero. The degraded
// normal is accepted silently; see the precision caveat on FiniteDiffer.
const normFloor = 1.e-12

// TangentialProjection evaluates the field gradient at x, normalizes it to
// the unit surface normal, and builds the per-point projector I - n*n^T
// onto the local tangent plane. The projector maps any vector to its
// component orthogonal to the normal.
func TangentialProjection(df field.Differ, f field.ScalarField, x utils.Matrix) (normals utils.Matrix, proj utils.MatrixBatch) {
	var (
		nr, nc = x.Dims()
	)
	normals = df.Gradient(f, x)
	normals.NormalizeRows(normFloor)
	proj = utils.IdentityBatch(nr, nc).Rank1Update(normals, normals, -1, 1)
	return
}
