// Package source implements birth-event sampling (§4.H): distributions
// over position, direction, and energy, and sources as a weighted sum of
// distributions.
package source

import (
	"math"
	"math/rand"

	"github.com/mohamed3ma/helios/geometry"
)

// PositionSampler draws a birth position.
type PositionSampler interface {
	SamplePosition(rng *rand.Rand) geometry.Vec3
}

// DirectionSampler draws a birth direction (assumed unit length).
type DirectionSampler interface {
	SampleDirection(rng *rand.Rand) geometry.Vec3
}

// EnergySampler draws a birth energy.
type EnergySampler interface {
	SampleEnergy(rng *rand.Rand) float64
}

// PointPosition always returns the same point.
type PointPosition struct{ Point geometry.Vec3 }

func (p PointPosition) SamplePosition(*rand.Rand) geometry.Vec3 { return p.Point }

// BoxPosition samples uniformly inside an axis-aligned box.
type BoxPosition struct{ Min, Max geometry.Vec3 }

func (b BoxPosition) SamplePosition(rng *rand.Rand) geometry.Vec3 {
	return geometry.Vec3{
		X: b.Min.X + rng.Float64()*(b.Max.X-b.Min.X),
		Y: b.Min.Y + rng.Float64()*(b.Max.Y-b.Min.Y),
		Z: b.Min.Z + rng.Float64()*(b.Max.Z-b.Min.Z),
	}
}

// MonoDirection always returns the same (normalized) direction.
type MonoDirection struct{ Direction geometry.Vec3 }

func (m MonoDirection) SampleDirection(*rand.Rand) geometry.Vec3 { return m.Direction.Normalize() }

// IsotropicDirection samples uniformly over the unit sphere.
type IsotropicDirection struct{}

func (IsotropicDirection) SampleDirection(rng *rand.Rand) geometry.Vec3 {
	mu := 2*rng.Float64() - 1
	phi := 2 * math.Pi * rng.Float64()
	s := math.Sqrt(1 - mu*mu)
	return geometry.Vec3{X: s * math.Cos(phi), Y: s * math.Sin(phi), Z: mu}
}

// MonoEnergy always returns the same energy.
type MonoEnergy struct{ Energy float64 }

func (m MonoEnergy) SampleEnergy(*rand.Rand) float64 { return m.Energy }

// HistogramEnergy samples an energy uniformly within a bin, picking the
// bin by cumulative weight. Edges must have one more entry than Weights.
type HistogramEnergy struct {
	Edges   []float64
	Weights []float64
}

func (h HistogramEnergy) SampleEnergy(rng *rand.Rand) float64 {
	var total float64
	for _, w := range h.Weights {
		total += w
	}
	target := rng.Float64() * total
	var cumulative float64
	for i, w := range h.Weights {
		cumulative += w
		if target < cumulative {
			lo, hi := h.Edges[i], h.Edges[i+1]
			return lo + rng.Float64()*(hi-lo)
		}
	}
	return h.Edges[len(h.Edges)-1]
}

// Distribution is a reusable (position, direction, energy) sampler,
// identified by user id so multiple sources can share one (§4.H).
type Distribution struct {
	UserID    string
	Position  PositionSampler
	Direction DirectionSampler
	Energy    EnergySampler
}

// Sample draws one (position, direction, energy) triple.
func (d *Distribution) Sample(rng *rand.Rand) (geometry.Vec3, geometry.Vec3, float64) {
	return d.Position.SamplePosition(rng), d.Direction.SampleDirection(rng), d.Energy.SampleEnergy(rng)
}
