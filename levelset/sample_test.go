package levelset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	exprand "golang.org/x/exp/rand"

	"github.com/implicitfields/igp/field"
	"github.com/implicitfields/igp/utils"
)

func TestProjectionOnSphere(t *testing.T) {
	// Unit sphere, dim=3, npoints=64: at least 9 of 10 seeded runs must
	// deliver a full batch within 1e-2 of the surface.
	var (
		f         = field.Sphere{R: 1}
		df        = field.NewAnalyticDiffer()
		cfg       = DefaultConfig(64, 3)
		converged int
	)
	for seed := uint64(1); seed <= 10; seed++ {
		rnd := exprand.New(exprand.NewSource(seed))
		res := Sample(cfg, f, df, rnd)
		if res.Short {
			continue
		}
		ok := true
		norms := res.Points.RowNorms()
		for i := 0; i < res.Accepted; i++ {
			if math.Abs(norms.At(i)-1) >= 1.e-2 {
				ok = false
				break
			}
		}
		if ok {
			converged++
		}
	}
	assert.GreaterOrEqual(t, converged, 9)
}

func TestProjectionFiltered(t *testing.T) {
	// Every point of a full filtered batch satisfies |f| < Eps
	var (
		f   = field.Sphere{R: 0.5}
		df  = field.NewAnalyticDiffer()
		cfg = DefaultConfig(32, 3)
		rnd = exprand.New(exprand.NewSource(7))
	)
	res := Sample(cfg, f, df, rnd)
	require.False(t, res.Short)
	require.Equal(t, 32, res.Accepted)
	y := f.Evaluate(res.Points)
	for i := 0; i < 32; i++ {
		assert.Less(t, math.Abs(y.At(i)), cfg.Eps)
	}
}

func TestProjectionUnfiltered(t *testing.T) {
	// Unfiltered mode returns the raw single attempt at full count
	var (
		f   = field.Sphere{R: 1}
		df  = field.NewAnalyticDiffer()
		cfg = DefaultConfig(16, 2)
		rnd = exprand.New(exprand.NewSource(3))
	)
	cfg.Filtered = false
	res := Sample(cfg, f, df, rnd)
	assert.False(t, res.Short)
	assert.Equal(t, 16, res.Accepted)
	nr, nc := res.Points.Dims()
	assert.Equal(t, 16, nr)
	assert.Equal(t, 2, nc)
}

func TestProjectionShortfall(t *testing.T) {
	// A field with no zero level-set in the domain exhausts the budget and
	// reports the shortfall explicitly
	f := field.Func(func(x utils.Matrix) utils.Vector {
		nr, _ := x.Dims()
		y := utils.NewVector(nr)
		for i := 0; i < nr; i++ {
			y.Set(i, 10)
		}
		return y
	})
	var (
		df  = field.NewFiniteDiffer()
		cfg = DefaultConfig(8, 2)
		rnd = exprand.New(exprand.NewSource(1))
	)
	cfg.MaxRepeat = 3
	res := Sample(cfg, f, df, rnd)
	assert.True(t, res.Short)
	assert.Equal(t, 0, res.Accepted)
	assert.True(t, res.Points.IsEmpty())
}

func TestRejectionOnSphere(t *testing.T) {
	var (
		f   = field.Sphere{R: 0.7}
		df  = field.NewAnalyticDiffer()
		cfg = DefaultConfig(100, 3)
		rnd = exprand.New(exprand.NewSource(11))
	)
	cfg.UseRejection = true
	cfg.RejectionBatch = 20000
	res := Sample(cfg, f, df, rnd)
	require.False(t, res.Short)
	require.Equal(t, 100, res.Accepted)
	// Corrective step pulls the accepted band onto the surface well below
	// the acceptance threshold
	y := f.Evaluate(res.Points)
	for i := 0; i < 100; i++ {
		assert.Less(t, math.Abs(y.At(i)), 1.e-2)
	}
}

func TestRejectionBounded(t *testing.T) {
	// An unsatisfiable threshold terminates at the round ceiling with a
	// short result instead of looping forever
	var (
		f   = field.Plane{N: []float64{1, 0}, Offset: 50}
		df  = field.NewAnalyticDiffer()
		cfg = DefaultConfig(10, 2)
		rnd = exprand.New(exprand.NewSource(5))
	)
	cfg.UseRejection = true
	cfg.RejectionBatch = 100
	cfg.MaxRejection = 3
	res := Sample(cfg, f, df, rnd)
	assert.True(t, res.Short)
	assert.Equal(t, 0, res.Accepted)
}

func TestSampleDeterminism(t *testing.T) {
	// Same seed, bit-identical output
	var (
		f   = field.Sphere{R: 1}
		df  = field.NewAnalyticDiffer()
		cfg = DefaultConfig(24, 3)
	)
	a := Sample(cfg, f, df, exprand.New(exprand.NewSource(42)))
	b := Sample(cfg, f, df, exprand.New(exprand.NewSource(42)))
	require.Equal(t, a.Accepted, b.Accepted)
	assert.Equal(t, a.Points.RawData(), b.Points.RawData())
}

func TestTangentialProjection(t *testing.T) {
	var (
		f  = field.Sphere{R: 1}
		df = field.NewAnalyticDiffer()
		X  = utils.NewMatrix(2, 3, []float64{
			1, 0, 0,
			0, 0.6, 0.8,
		})
	)
	normals, proj := TangentialProjection(df, f, X)
	// Unit normals along the radial direction
	assert.InDelta(t, 1, normals.At(0, 0), 1.e-9)
	assert.InDelta(t, 0.6, normals.At(1, 1), 1.e-9)
	// Projector annihilates its own normal
	Pn := proj.MulVec(normals)
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			assert.InDelta(t, 0, Pn.At(i, j), 1.e-9)
		}
	}
	// And preserves a tangent vector
	tang := utils.NewMatrix(2, 3, []float64{
		0, 1, 0,
		0, 0.8, -0.6,
	})
	Pt := proj.MulVec(tang)
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			assert.InDelta(t, tang.At(i, j), Pt.At(i, j), 1.e-9)
		}
	}
}
