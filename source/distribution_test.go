package source_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mohamed3ma/helios/geometry"
	"github.com/mohamed3ma/helios/source"
)

func TestPointPositionAlwaysReturnsSamePoint(t *testing.T) {
	p := source.PointPosition{Point: geometry.Vec3{X: 1, Y: 2, Z: 3}}
	rng := rand.New(rand.NewSource(1))
	assert.Equal(t, p.Point, p.SamplePosition(rng))
}

func TestBoxPositionStaysWithinBounds(t *testing.T) {
	b := source.BoxPosition{Min: geometry.Vec3{X: -1, Y: -1, Z: -1}, Max: geometry.Vec3{X: 1, Y: 1, Z: 1}}
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 200; i++ {
		p := b.SamplePosition(rng)
		assert.True(t, p.X >= -1 && p.X <= 1)
		assert.True(t, p.Y >= -1 && p.Y <= 1)
		assert.True(t, p.Z >= -1 && p.Z <= 1)
	}
}

func TestMonoDirectionNormalizes(t *testing.T) {
	m := source.MonoDirection{Direction: geometry.Vec3{X: 3, Y: 4, Z: 0}}
	d := m.SampleDirection(nil)
	assert.InDelta(t, 1.0, d.Norm(), 1e-12)
	assert.InDelta(t, 0.6, d.X, 1e-12)
	assert.InDelta(t, 0.8, d.Y, 1e-12)
}

func TestIsotropicDirectionIsUnitLength(t *testing.T) {
	iso := source.IsotropicDirection{}
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 200; i++ {
		d := iso.SampleDirection(rng)
		assert.InDelta(t, 1.0, d.Norm(), 1e-9)
	}
}

func TestMonoEnergyAlwaysReturnsSameEnergy(t *testing.T) {
	m := source.MonoEnergy{Energy: 14.1}
	assert.Equal(t, 14.1, m.SampleEnergy(nil))
}

func TestHistogramEnergyStaysWithinChosenBin(t *testing.T) {
	h := source.HistogramEnergy{
		Edges:   []float64{0, 1, 2, 10},
		Weights: []float64{1, 0, 0},
	}
	rng := rand.New(rand.NewSource(4))
	for i := 0; i < 100; i++ {
		e := h.SampleEnergy(rng)
		assert.True(t, e >= 0 && e <= 1, "all weight is on the first bin, so every draw must land in [0,1]")
	}
}

func TestHistogramEnergyFallsBackToLastEdgeWhenWeightsAreZero(t *testing.T) {
	h := source.HistogramEnergy{Edges: []float64{0, 1}, Weights: []float64{0}}
	rng := rand.New(rand.NewSource(5))
	assert.Equal(t, 1.0, h.SampleEnergy(rng))
}

func TestDistributionSampleCombinesAllThreeMarginals(t *testing.T) {
	d := &source.Distribution{
		UserID:    "d1",
		Position:  source.PointPosition{Point: geometry.Vec3{X: 1}},
		Direction: source.MonoDirection{Direction: geometry.Vec3{X: 0, Y: 1, Z: 0}},
		Energy:    source.MonoEnergy{Energy: 2},
	}
	pos, dir, energy := d.Sample(nil)
	assert.Equal(t, geometry.Vec3{X: 1}, pos)
	assert.Equal(t, geometry.Vec3{X: 0, Y: 1, Z: 0}, dir)
	assert.Equal(t, 2.0, energy)
	assert.False(t, math.IsNaN(energy))
}
