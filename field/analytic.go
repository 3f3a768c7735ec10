package field

import (
	"math"

	"github.com/implicitfields/igp/utils"
)

// GradientField is implemented by fields that know their own gradient.
// AnalyticDiffer prefers it over finite differences.
type GradientField interface {
	ScalarField
	GradientAt(x utils.Matrix) utils.Matrix
}

// Sphere is the signed distance to the sphere of radius R: |x| - R.
type Sphere struct {
	R float64
}

func (s Sphere) Evaluate(x utils.Matrix) (y utils.Vector) {
	y = x.RowNorms()
	y.Apply(func(v float64) float64 { return v - s.R })
	return
}

func (s Sphere) GradientAt(x utils.Matrix) (G utils.Matrix) {
	G = x.Copy()
	G.NormalizeRows(1.e-12)
	return
}

// Plane is the signed distance to the hyperplane n.x = Offset. N need not
// be unit length; it is normalized on evaluation.
type Plane struct {
	N      []float64
	Offset float64
}

func (p Plane) unitNormal() []float64 {
	var norm float64
	for _, v := range p.N {
		norm += v * v
	}
	norm = math.Sqrt(norm)
	n := make([]float64, len(p.N))
	for i, v := range p.N {
		n[i] = v / norm
	}
	return n
}

func (p Plane) Evaluate(x utils.Matrix) (y utils.Vector) {
	var (
		nr, nc = x.Dims()
		n      = p.unitNormal()
	)
	y = utils.NewVector(nr)
	for i := 0; i < nr; i++ {
		var s float64
		for j := 0; j < nc; j++ {
			s += n[j] * x.At(i, j)
		}
		y.Set(i, s-p.Offset)
	}
	return
}

func (p Plane) GradientAt(x utils.Matrix) (G utils.Matrix) {
	var (
		nr, nc = x.Dims()
		n      = p.unitNormal()
	)
	G = utils.NewMatrix(nr, nc)
	for i := 0; i < nr; i++ {
		G.SetRow(i, n)
	}
	return
}

// Torus is the distance field of a torus in 3-space with major radius RMaj
// and tube radius RMin, centered at the origin with axis z.
type Torus struct {
	RMaj, RMin float64
}

func (t Torus) Evaluate(x utils.Matrix) (y utils.Vector) {
	var (
		nr, nc = x.Dims()
	)
	if nc != 3 {
		panic("torus field is defined in 3 dimensions")
	}
	y = utils.NewVector(nr)
	for i := 0; i < nr; i++ {
		q := math.Hypot(x.At(i, 0), x.At(i, 1)) - t.RMaj
		y.Set(i, math.Hypot(q, x.At(i, 2))-t.RMin)
	}
	return
}

// AnalyticDiffer uses analytic derivatives where the collaborator exposes
// them and falls back to finite differences otherwise.
type AnalyticDiffer struct {
	FD FiniteDiffer
}

func NewAnalyticDiffer() AnalyticDiffer {
	return AnalyticDiffer{FD: NewFiniteDiffer()}
}

func (ad AnalyticDiffer) Gradient(f ScalarField, x utils.Matrix) utils.Matrix {
	if gf, ok := f.(GradientField); ok {
		return gf.GradientAt(x)
	}
	return ad.FD.Gradient(f, x)
}

func (ad AnalyticDiffer) Jacobian(d Deformation, x utils.Matrix) (utils.MatrixBatch, error) {
	if jd, ok := d.(JacobianDeformation); ok {
		return jd.JacobianAt(x)
	}
	return ad.FD.Jacobian(d, x)
}
