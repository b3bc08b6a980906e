package geom

import (
	"math"

	"github.com/pixelczar/tangle-map/pkg/random"
)

// BoundaryOptions configures organic boundary synthesis for [Boundary].
type BoundaryOptions struct {
	// Samples is the number of angle samples around the center. Default: 24.
	Samples int

	// LowAmp scales the low-frequency noise term as a fraction of the base
	// radius. Default: 0.22.
	LowAmp float64

	// HighAmp scales the high-frequency noise term as a fraction of the
	// base radius. Default: 0.08.
	HighAmp float64

	// Jitter is the half-width of the uniform radius jitter as a fraction
	// of the base radius. Default: 0.06.
	Jitter float64

	// AngleJitter is the maximum angular perturbation per sample in
	// radians. Default: 0.05.
	AngleJitter float64
}

var defaultBoundaryOpts = BoundaryOptions{
	Samples:     24,
	LowAmp:      0.22,
	HighAmp:     0.08,
	Jitter:      0.06,
	AngleJitter: 0.05,
}

// Boundary synthesizes an organic closed polygon around center. The radius
// at each sampled angle is the base radius plus a low-frequency noise term,
// a high-frequency noise term, and a uniform jitter; each sample's angle is
// additionally perturbed by a small random offset.
//
// The noise terms are keyed by center and sample index, so two calls with
// the same stream seed and arguments query the noise field at identical
// positions and produce identical polygons. The jitter terms consume exactly
// two cursor draws per sample. Pass nil for opts to use defaults.
func Boundary(rnd *random.Stream, center Point, baseRadius float64, opts *BoundaryOptions) Polygon {
	if opts == nil {
		opts = &defaultBoundaryOpts
	}
	n := opts.Samples
	if n < 3 {
		n = defaultBoundaryOpts.Samples
	}
	if baseRadius <= 0 {
		return nil
	}

	poly := make(Polygon, 0, n)
	for i := 0; i < n; i++ {
		theta := float64(i) / float64(n) * 2 * math.Pi

		// z selects the bucket pitch: 0.25 groups four samples per bucket
		// (slow variation), 1 gives every sample its own bucket.
		low := rnd.Noise(center.X+float64(i), center.Y, 0.25)
		high := rnd.Noise(center.X+float64(i), center.Y, 1)

		r := baseRadius
		r += (low - 0.5) * 2 * opts.LowAmp * baseRadius
		r += (high - 0.5) * 2 * opts.HighAmp * baseRadius
		r += rnd.FloatBetween(-opts.Jitter, opts.Jitter) * baseRadius

		theta += rnd.FloatBetween(-opts.AngleJitter, opts.AngleJitter)

		poly = append(poly, Point{
			X: center.X + math.Cos(theta)*r,
			Y: center.Y + math.Sin(theta)*r,
		})
	}
	return poly
}
