package field

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/implicitfields/igp/utils"
)

func TestSphere(t *testing.T) {
	s := Sphere{R: 1}
	{
		X := utils.NewMatrix(3, 3, []float64{
			1, 0, 0,
			0, 2, 0,
			0.5, 0.5, 0.5,
		})
		Y := s.Evaluate(X)
		assert.InDelta(t, 0, Y.At(0), 1.e-12)
		assert.InDelta(t, 1, Y.At(1), 1.e-12)
		assert.InDelta(t, math.Sqrt(0.75)-1, Y.At(2), 1.e-12)
	}
	// Analytic gradient agrees with central differences
	{
		X := utils.NewMatrix(2, 3, []float64{
			0.3, -0.4, 0.8,
			-0.1, 0.9, 0.2,
		})
		G := s.GradientAt(X)
		Gfd := NewFiniteDiffer().Gradient(s, X)
		for i := 0; i < 2; i++ {
			for j := 0; j < 3; j++ {
				assert.InDelta(t, Gfd.At(i, j), G.At(i, j), 1.e-6)
			}
		}
	}
}

func TestPlane(t *testing.T) {
	p := Plane{N: []float64{0, 0, 2}, Offset: 0.25}
	X := utils.NewMatrix(2, 3, []float64{
		0, 0, 0.25,
		1, 1, 1.25,
	})
	Y := p.Evaluate(X)
	assert.InDelta(t, 0, Y.At(0), 1.e-12)
	assert.InDelta(t, 1, Y.At(1), 1.e-12)
	G := p.GradientAt(X)
	assert.InDelta(t, 1, G.At(0, 2), 1.e-12)
	assert.InDelta(t, 0, G.At(0, 0), 1.e-12)
}

func TestTorus(t *testing.T) {
	tor := Torus{RMaj: 0.5, RMin: 0.2}
	X := utils.NewMatrix(2, 3, []float64{
		0.7, 0, 0,
		0.5, 0, 0.2,
	})
	Y := tor.Evaluate(X)
	assert.InDelta(t, 0, Y.At(0), 1.e-12)
	assert.InDelta(t, 0, Y.At(1), 1.e-12)
}

func TestFiniteDiffJacobian(t *testing.T) {
	// Jacobian of an affine map recovers A at every point
	{
		a := []float64{
			2, 0.5, 0,
			0, 1, -0.25,
			0.1, 0, 1.5,
		}
		d := NewAffineDeform(3, a, []float64{1, -1, 0})
		X := utils.NewMatrix(2, 3, []float64{
			0.1, 0.2, 0.3,
			-0.5, 0.4, -0.3,
		})
		J, err := NewFiniteDiffer().Jacobian(d, X)
		assert.NoError(t, err)
		for i := 0; i < 2; i++ {
			for k, want := range a {
				assert.InDelta(t, want, J.Data[i*9+k], 1.e-5)
			}
		}
	}
	// Non-finite entries are a fatal status
	{
		bad := badDeform{}
		X := utils.NewMatrix(1, 2, []float64{0.5, 0.5})
		_, err := NewFiniteDiffer().Jacobian(bad, X)
		assert.Error(t, err)
	}
}

type badDeform struct{}

func (badDeform) Forward(x utils.Matrix) utils.Matrix {
	y := x.Copy()
	y.Set(0, 0, math.NaN())
	return y
}

func (badDeform) Invert(y utils.Matrix, iters int) utils.Matrix { return y.Copy() }

func TestFixedPointInvert(t *testing.T) {
	d := RadialDeform{Amp: 0.1}
	X := utils.NewMatrix(3, 3, []float64{
		0.4, -0.2, 0.1,
		-0.6, 0.3, 0.5,
		0.05, 0.05, -0.9,
	})
	Y := d.Forward(X)
	Xr := d.Invert(Y, 30)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.InDelta(t, X.At(i, j), Xr.At(i, j), 1.e-8)
		}
	}
}

func TestAnalyticDiffer(t *testing.T) {
	ad := NewAnalyticDiffer()
	// Sphere hits the analytic path
	{
		X := utils.NewMatrix(1, 3, []float64{0.6, 0, 0.8})
		G := ad.Gradient(Sphere{R: 1}, X)
		assert.InDelta(t, 0.6, G.At(0, 0), 1.e-9)
		assert.InDelta(t, 0.8, G.At(0, 2), 1.e-9)
	}
	// Torus has no analytic gradient; the fallback still normalizes to a
	// unit direction on the outer equator
	{
		X := utils.NewMatrix(1, 3, []float64{0.8, 0, 0})
		G := ad.Gradient(Torus{RMaj: 0.5, RMin: 0.2}, X)
		assert.InDelta(t, 1, G.At(0, 0), 1.e-5)
	}
}
