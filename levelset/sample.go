package levelset

import (
	"math"

	exprand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/implicitfields/igp/field"
	"github.com/implicitfields/igp/utils"
)

// allCloseTol is the early-out tolerance for a batch already sitting on
// the level set.
const allCloseTol = 1.e-8

// Result is the outcome of a sampling run. Accepted is the number of valid
// rows in Points; when the attempt budget runs out before NPoints are
// collected, Short is set and Points holds fewer rows (possibly none).
// The shortfall is an explicit, observable outcome, never a silent
// truncation.
type Result struct {
	Points   utils.Matrix
	Accepted int
	Short    bool
}

// Sample produces NPoints points near the zero level-set of f, selecting
// the strategy from cfg.UseRejection. rnd is the only source of
// randomness, so a fixed seed reproduces the run bit for bit.
func Sample(cfg Config, f field.ScalarField, df field.Differ, rnd *exprand.Rand) Result {
	cfg = cfg.withDefaults()
	if cfg.UseRejection {
		return sampleRejection(cfg, f, df, rnd)
	}
	return sampleProjection(cfg, f, df, rnd)
}

func (cfg Config) withDefaults() Config {
	def := DefaultConfig(cfg.NPoints, cfg.Dim)
	if cfg.Steps == 0 {
		cfg.Steps = def.Steps
	}
	if cfg.Eps == 0 {
		cfg.Eps = def.Eps
	}
	if cfg.SigmaDecay == 0 {
		cfg.SigmaDecay = def.SigmaDecay
	}
	if cfg.MaxRepeat == 0 {
		cfg.MaxRepeat = def.MaxRepeat
	}
	if cfg.Bound == 0 {
		cfg.Bound = def.Bound
	}
	if cfg.RejectionBatch == 0 {
		cfg.RejectionBatch = def.RejectionBatch
	}
	if cfg.RejectionThr == 0 {
		cfg.RejectionThr = def.RejectionThr
	}
	if cfg.MaxRejection == 0 {
		cfg.MaxRejection = def.MaxRejection
	}
	return cfg
}

// sampleProjection draws a fresh uniform batch per attempt and walks it
// onto the level set with annealed-noise Newton steps. Filtered mode
// accumulates accepted points across attempts, newest attempt first, until
// NPoints are collected or MaxRepeat is spent.
func sampleProjection(cfg Config, f field.ScalarField, df field.Differ, rnd *exprand.Rand) Result {
	var (
		out    utils.Matrix
		outCnt int
	)
	for rep := 0; rep < cfg.MaxRepeat && outCnt < cfg.NPoints; rep++ {
		x := uniformBatch(rnd, cfg.NPoints, cfg.Dim)
		projectSteps(cfg, f, df, rnd, x)
		if !cfg.Filtered {
			// Raw output of a single attempt, residual error and all
			return Result{Points: x, Accepted: cfg.NPoints}
		}
		y := f.Evaluate(x)
		keep := y.Find(utils.Less, cfg.Eps, true)
		out = utils.ConcatRows(x.SliceRows(keep), out)
		outCnt += len(keep)
	}
	return truncate(out, outCnt, cfg.NPoints)
}

// projectSteps mutates x in place: inject annealed Gaussian noise, then
// take one Newton-like step -g/|g| * f(x) per iteration, clamped to the
// valid domain. Stops early if the whole batch already evaluates to zero.
func projectSteps(cfg Config, f field.ScalarField, df field.Differ, rnd *exprand.Rand, x utils.Matrix) {
	for i := 0; i < cfg.Steps; i++ {
		sigma := cfg.NoiseSigma * math.Pow(cfg.SigmaDecay, float64(i))
		if sigma > 0 {
			addNoise(x, rnd, sigma)
		}
		y := f.Evaluate(x)
		if y.MaxAbs() < allCloseTol {
			break
		}
		g := df.Gradient(f, x)
		g.NormalizeRows(cfg.Eps)
		x.SubRowsScaled(g, y)
		x.Clamp(-cfg.Bound, cfg.Bound)
	}
}

// sampleRejection keeps uniform candidates with |f| below the threshold
// until NPoints accumulate. MaxRejection bounds the loop; an unsatisfiable
// threshold surfaces as a short Result rather than a hang. The optional
// final gradient step tightens the kept points onto the level set with no
// annealing and no clamping.
func sampleRejection(cfg Config, f field.ScalarField, df field.Differ, rnd *exprand.Rand) Result {
	var (
		out    utils.Matrix
		outCnt int
	)
	for round := 0; round < cfg.MaxRejection && outCnt < cfg.NPoints; round++ {
		x := uniformBatch(rnd, cfg.RejectionBatch, cfg.Dim)
		y := f.Evaluate(x)
		keep := y.Find(utils.Less, cfg.RejectionThr, true)
		if len(keep) == 0 {
			continue
		}
		out = utils.ConcatRows(out, x.SliceRows(keep))
		outCnt += len(keep)
	}
	res := truncate(out, outCnt, cfg.NPoints)
	if cfg.GradStep && !res.Points.IsEmpty() {
		y := f.Evaluate(res.Points)
		g := df.Gradient(f, res.Points)
		g.NormalizeRows(cfg.Eps)
		res.Points.SubRowsScaled(g, y)
	}
	return res
}

func truncate(out utils.Matrix, outCnt, npoints int) Result {
	if outCnt < npoints {
		return Result{Points: out, Accepted: outCnt, Short: true}
	}
	I := utils.NewIndex(npoints)
	for i := range I {
		I[i] = i
	}
	return Result{Points: out.SliceRows(I), Accepted: npoints}
}

func uniformBatch(rnd *exprand.Rand, n, dim int) utils.Matrix {
	var (
		u    = distuv.Uniform{Min: -1, Max: 1, Src: rnd}
		data = make([]float64, n*dim)
	)
	for i := range data {
		data[i] = u.Rand()
	}
	return utils.NewMatrix(n, dim, data)
}

func addNoise(x utils.Matrix, rnd *exprand.Rand, sigma float64) {
	var (
		norm = distuv.Normal{Mu: 0, Sigma: sigma, Src: rnd}
		data = x.RawData()
	)
	for i := range data {
		data[i] += norm.Rand()
	}
}
