package wordcloud

import (
	"math"
	"math/rand/v2"
)

// RotationFunc picks a rotation angle in degrees for one word. rotations is
// the configured number of discrete angles, angles the configured [min, max]
// range, and rng the run's random source. The orchestrator only requires
// that the function returns a number; its internals are an injectable
// strategy.
type RotationFunc func(rotations int, angles [2]float64, rng *rand.Rand) float64

// DefaultRotation draws one of six discrete angles spaced 30° apart:
// {-90, -60, -30, 0, 30, 60}.
//
// The effective range [-90, 60] is narrower than the documented default
// RotationAngles of [-90, 90]. That asymmetry is long-standing observed
// behavior and is kept byte-for-byte; widening the formula to match the
// configured range would be a behavior change.
func DefaultRotation(rotations int, angles [2]float64, rng *rand.Rand) float64 {
	return (math.Floor(rng.Float64()*6) - 3) * 30
}

// EvenRotation spreads rotations evenly across the configured angle range
// and picks one at random. With a single rotation the minimum angle is
// used; with none, zero. Set Options.RotationFunc to EvenRotation to get
// range-respecting rotations instead of the default six-angle draw.
func EvenRotation(rotations int, angles [2]float64, rng *rand.Rand) float64 {
	if rotations <= 0 {
		return 0
	}
	if rotations == 1 {
		return angles[0]
	}
	increment := (angles[1] - angles[0]) / float64(rotations-1)
	idx := int(math.Floor(rng.Float64() * float64(rotations)))
	if idx >= rotations {
		idx = rotations - 1
	}
	return angles[0] + float64(idx)*increment
}

// rotationFor applies the configured strategy, defaulting to DefaultRotation.
func rotationFor(opts Options, rng *rand.Rand) float64 {
	strategy := opts.RotationFunc
	if strategy == nil {
		strategy = DefaultRotation
	}
	return strategy(opts.Rotations, opts.RotationAngles, rng)
}
