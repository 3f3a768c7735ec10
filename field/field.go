// Package field defines the functional boundary of the sampler: implicit
// scalar fields, deformation maps, and the differentiation provider that
// supplies their gradients and Jacobians. The samplers depend only on
// these interfaces; the concrete types in this package are reference
// implementations used by the CLI and the tests.
package field

import (
	"github.com/implicitfields/igp/utils"
)

// ScalarField is an implicit field over space. Its zero level-set defines
// the surface being sampled.
type ScalarField interface {
	// Evaluate maps a point batch (npoints x dim) to one scalar per point.
	Evaluate(x utils.Matrix) utils.Vector
}

// Deformation maps points to points of the same dimension. Invert returns
// an approximate preimage of y after a fixed number of iterations.
type Deformation interface {
	Forward(x utils.Matrix) utils.Matrix
	Invert(y utils.Matrix, iters int) utils.Matrix
}

// Differ supplies derivatives of the collaborators. Jacobian reports a
// non-nil error when the computation fails; callers treat that as fatal.
type Differ interface {
	// Gradient of f with respect to x, one row per point.
	Gradient(f ScalarField, x utils.Matrix) utils.Matrix
	// Jacobian of d at x, one dim x dim block per point.
	Jacobian(d Deformation, x utils.Matrix) (utils.MatrixBatch, error)
}

// Func adapts a plain function to a ScalarField, the substitution point
// where a caller would otherwise bind a closure.
type Func func(x utils.Matrix) utils.Vector

func (f Func) Evaluate(x utils.Matrix) utils.Vector { return f(x) }
