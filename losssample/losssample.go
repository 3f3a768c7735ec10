// Package losssample is the top-level entry point for producing training
// samples: it selects a sampling domain, optionally pulls points back
// through a deformation inverse, and attaches importance weights.
package losssample

import (
	"fmt"

	exprand "golang.org/x/exp/rand"

	"github.com/implicitfields/igp/deformweight"
	"github.com/implicitfields/igp/field"
	"github.com/implicitfields/igp/levelset"
	"github.com/implicitfields/igp/utils"
)

// invertIters is the fixed iteration count handed to Deformation.Invert.
const invertIters = 30

// Domain enumerates the four sampling paths. The tagged variant replaces
// flag combinations so an illegal pairing cannot be expressed past
// DomainFor.
type Domain uint8

const (
	// VolumeForward draws uniform points in [-1,1]^dim, uniform weight.
	VolumeForward Domain = iota
	// VolumeInverted draws uniform targets and pulls them back through
	// the deformation inverse, with a full-volume Jacobian weight.
	VolumeInverted
	// SurfaceForward samples the model field's own zero level-set,
	// uniform weight.
	SurfaceForward
	// SurfaceInverted samples the ground-truth level-set in the deformed
	// space, pulls back, and weights by the surface-restricted Jacobian.
	SurfaceInverted
)

func (d Domain) String() string {
	switch d {
	case VolumeForward:
		return "VolumeForward"
	case VolumeInverted:
		return "VolumeInverted"
	case SurfaceForward:
		return "SurfaceForward"
	case SurfaceInverted:
		return "SurfaceInverted"
	}
	return fmt.Sprintf("Domain(%d)", uint8(d))
}

// DomainFor maps the legacy flag pair onto the tagged variant.
func DomainFor(useSurfPoints, invertSampling bool) Domain {
	switch {
	case useSurfPoints && invertSampling:
		return SurfaceInverted
	case useSurfPoints:
		return SurfaceForward
	case invertSampling:
		return VolumeInverted
	}
	return VolumeForward
}

// Request configures one sampling call.
type Request struct {
	NPoints      int
	Dim          int
	Domain       Domain
	ReturnWeight bool
	DetachWeight bool
	UseRejection bool
	Seed         uint64
}

// Collaborators are the external callables a Request may need. Net is the
// model's own field in the source space, Gtr the ground-truth field in the
// deformed space.
type Collaborators struct {
	Net    field.ScalarField
	Gtr    field.ScalarField
	Deform field.Deformation
	Differ field.Differ
}

// Sample produces a point batch of logical shape (1, npoints, dim) and,
// when requested, a weight vector of shape (1, npoints). Inverted domains
// require Deform and Gtr; their absence is a precondition failure.
func Sample(req Request, c Collaborators) (x utils.Matrix, weight utils.Vector, err error) {
	if c.Differ == nil {
		c.Differ = field.NewFiniteDiffer()
	}
	rnd := exprand.New(exprand.NewSource(req.Seed))

	switch req.Domain {
	case SurfaceInverted:
		x, weight, err = sampleSurfaceInverted(req, c, rnd)
	case SurfaceForward:
		x, weight, err = sampleSurfaceForward(req, c, rnd)
	case VolumeInverted:
		x, weight, err = sampleVolumeInverted(req, c, rnd)
	case VolumeForward:
		x, weight, err = sampleVolumeForward(req, rnd)
	default:
		err = fmt.Errorf("unknown sampling domain %v", req.Domain)
	}
	if err != nil {
		return
	}
	if !req.ReturnWeight {
		weight = utils.Vector{}
	}
	return
}

func surfaceConfig(req Request) levelset.Config {
	cfg := levelset.DefaultConfig(req.NPoints, req.Dim)
	// Loss sampling wants the raw projected batch each call, with gentler
	// noise than the standalone sampler default.
	cfg.NoiseSigma = 1.e-3
	cfg.Filtered = false
	cfg.UseRejection = req.UseRejection
	return cfg
}

func sampleSurfaceInverted(req Request, c Collaborators, rnd *exprand.Rand) (x utils.Matrix, weight utils.Vector, err error) {
	if c.Deform == nil || c.Gtr == nil || c.Net == nil {
		err = fmt.Errorf("%v requires a deformation, a ground-truth field and a model field", req.Domain)
		return
	}
	res := levelset.Sample(surfaceConfig(req), c.Gtr, c.Differ, rnd)
	if res.Accepted < req.NPoints {
		err = fmt.Errorf("%v: sampler returned %d of %d points", req.Domain, res.Accepted, req.NPoints)
		return
	}
	x = c.Deform.Invert(res.Points, invertIters)
	weight, err = deformweight.Compute(x, c.Deform, c.Gtr, c.Net, c.Differ,
		deformweight.Options{Surface: true, Detach: req.DetachWeight, Normalize: true})
	return
}

func sampleSurfaceForward(req Request, c Collaborators, rnd *exprand.Rand) (x utils.Matrix, weight utils.Vector, err error) {
	if c.Net == nil {
		err = fmt.Errorf("%v requires the model field", req.Domain)
		return
	}
	res := levelset.Sample(surfaceConfig(req), c.Net, c.Differ, rnd)
	if res.Accepted < req.NPoints {
		err = fmt.Errorf("%v: sampler returned %d of %d points", req.Domain, res.Accepted, req.NPoints)
		return
	}
	x = res.Points
	weight = onesWeight(req.NPoints)
	return
}

func sampleVolumeInverted(req Request, c Collaborators, rnd *exprand.Rand) (x utils.Matrix, weight utils.Vector, err error) {
	if c.Deform == nil || c.Gtr == nil {
		err = fmt.Errorf("%v requires a deformation and a ground-truth field", req.Domain)
		return
	}
	y := uniformBatch(rnd, req.NPoints, req.Dim)
	x = c.Deform.Invert(y, invertIters)
	weight, err = deformweight.Compute(x, c.Deform, c.Gtr, c.Net, c.Differ,
		deformweight.Options{Surface: false, Detach: req.DetachWeight, Normalize: true})
	return
}

func sampleVolumeForward(req Request, rnd *exprand.Rand) (x utils.Matrix, weight utils.Vector, err error) {
	x = uniformBatch(rnd, req.NPoints, req.Dim)
	weight = onesWeight(req.NPoints)
	return
}

func onesWeight(n int) (w utils.Vector) {
	w = utils.NewVector(n)
	for i := 0; i < n; i++ {
		w.Set(i, 1)
	}
	return
}

func uniformBatch(rnd *exprand.Rand, n, dim int) utils.Matrix {
	data := make([]float64, n*dim)
	for i := range data {
		data[i] = rnd.Float64()*2 - 1
	}
	return utils.NewMatrix(n, dim, data)
}
