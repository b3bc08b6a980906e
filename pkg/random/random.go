// Package random provides the seeded pseudo-random stream that drives every
// generator in the composition pipeline.
//
// # Determinism
//
// A Stream is a linear-congruential sequence over an advancing cursor. Two
// streams created with the same seed produce identical sequences for
// identical call counts, which is the foundation of the engine's
// reproducibility guarantee: the same seed always yields the same
// composition.
//
// # Noise field
//
// Noise is deliberately separate from the cursor. It derives a fresh
// generator from the original seed plus a bucket index computed from the
// query coordinates, so repeated queries at the same position always agree
// no matter how many times Next has been called in between. This lets
// boundary and curve generators sample "noise at this position" freely
// without desynchronizing the sequential draws other layers rely on.
//
// The field is bucketed, not coherent: adjacent buckets are uncorrelated.
// Smoother gradient noise would change the engine's visual output, so the
// bucketing is kept as-is.
package random

import "math"

// Linear-congruential parameters. The small modulus is intentional: it
// matches the arithmetic the compositions were tuned against.
const (
	lcgMult = 9301
	lcgInc  = 49297
	lcgMod  = 233280
)

// noiseBucketStride spreads the y bucket away from the x bucket so nearby
// rows do not collide on the same derived seed.
const noiseBucketStride = 1000

// Stream is a seeded pseudo-random sequence with an advancing cursor and a
// cursor-independent noise field.
//
// A Stream is not safe for concurrent use; each generation pass must own its
// stream exclusively. Reseeding in the middle of a generation pass
// invalidates reproducibility for the remainder of that pass.
type Stream struct {
	seed   int64
	cursor int64
}

// New creates a stream seeded with the given value.
func New(seed int64) *Stream {
	s := &Stream{}
	s.Reseed(seed)
	return s
}

// Reseed resets the cursor and the noise basis together. The next call to
// Next starts the sequence over from the beginning.
func (s *Stream) Reseed(seed int64) {
	s.seed = seed
	s.cursor = mod(seed)
}

// Seed returns the seed the stream was created (or last reseeded) with.
func (s *Stream) Seed() int64 { return s.seed }

// Next advances the cursor by one step and returns a value in [0, 1).
func (s *Stream) Next() float64 {
	s.cursor = (s.cursor*lcgMult + lcgInc) % lcgMod
	return float64(s.cursor) / lcgMod
}

// Noise returns a pseudo-random value in [0, 1) keyed by position and the
// original seed. It never reads or advances the shared cursor, so it is
// referentially transparent with respect to (x, y, z, seed).
//
// The position is quantized: x and y are scaled by z (z <= 0 is treated as
// 1) and floored into integer buckets. All queries inside one bucket return
// the same value.
func (s *Stream) Noise(x, y, z float64) float64 {
	if z <= 0 {
		z = 1
	}
	bucket := int64(math.Floor(x*z)) + int64(math.Floor(y*z))*noiseBucketStride
	derived := Stream{cursor: mod(s.seed + bucket)}
	return derived.Next()
}

// IntBetween returns a uniformly distributed integer in [min, max]
// inclusive. It consumes exactly one draw. If max <= min it returns min
// without consuming a draw.
func (s *Stream) IntBetween(min, max int) int {
	if max <= min {
		return min
	}
	return min + int(s.Next()*float64(max-min+1))
}

// FloatBetween returns a uniformly distributed value in [min, max). It
// consumes exactly one draw.
func (s *Stream) FloatBetween(min, max float64) float64 {
	return min + s.Next()*(max-min)
}

// Angle returns a uniformly distributed angle in [0, 2π). It consumes
// exactly one draw.
func (s *Stream) Angle() float64 {
	return s.Next() * 2 * math.Pi
}

// mod maps an arbitrary int64 into the LCG's state space.
func mod(v int64) int64 {
	m := v % lcgMod
	if m < 0 {
		m += lcgMod
	}
	return m
}
