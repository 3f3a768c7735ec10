package levelset

// Config carries every numeric constant of the two sampling strategies.
// Zero values of the structural constants (Steps, Eps, MaxRepeat, Bound,
// SigmaDecay, RejectionBatch, RejectionThr, MaxRejection) are replaced by
// the documented defaults in Sample; NoiseSigma, Filtered, UseRejection
// and GradStep are taken as given, since zero/false are meaningful
// settings for them.
type Config struct {
	NPoints int
	Dim     int

	// Gradient-projection strategy
	Steps      int     // Newton-like iterations per attempt
	Eps        float64 // gradient-norm floor and |f| acceptance tolerance
	NoiseSigma float64 // initial Gaussian noise scale
	SigmaDecay float64 // per-iteration noise annealing factor
	MaxRepeat  int     // attempt budget when filtering
	Bound      float64 // coordinate clamp keeping points in the domain
	Filtered   bool    // keep only points with |f| < Eps

	// Rejection strategy
	UseRejection   bool
	RejectionBatch int     // candidates per round
	RejectionThr   float64 // |f| acceptance threshold
	MaxRejection   int     // round ceiling; guards an unsatisfiable threshold
	GradStep       bool    // single corrective projection step at the end
}

// DefaultConfig returns the documented defaults with filtering and the
// corrective step enabled.
func DefaultConfig(npoints, dim int) Config {
	return Config{
		NPoints:        npoints,
		Dim:            dim,
		Steps:          5,
		Eps:            1.e-4,
		NoiseSigma:     0.01,
		SigmaDecay:     1.,
		MaxRepeat:      10,
		Bound:          1 - 1.e-4,
		Filtered:       true,
		RejectionBatch: 100000,
		RejectionThr:   0.05,
		MaxRejection:   1000,
		GradStep:       true,
	}
}
