package transport_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohamed3ma/helios/geometry"
	"github.com/mohamed3ma/helios/transport"
)

func TestSeedHistoryIsDeterministicAndDistinctPerHistory(t *testing.T) {
	a := transport.SeedHistory(42, 7)
	b := transport.SeedHistory(42, 7)
	c := transport.SeedHistory(42, 8)

	assert.Equal(t, a, b, "the same global seed and history index always derive the same seed")
	assert.NotEqual(t, a, c, "different history indices must derive different seeds")
}

type fakeIndex struct {
	surfaces  map[int]geometry.Surface
	universes map[int]*geometry.Universe
}

func (f *fakeIndex) Surface(id int) (geometry.Surface, bool) {
	s, ok := f.surfaces[id]
	return s, ok
}
func (f *fakeIndex) Universe(id int) (*geometry.Universe, bool) {
	u, ok := f.universes[id]
	return u, ok
}

func TestDriverBirthFailsOutsideGeometry(t *testing.T) {
	sph, err := geometry.NewSphere("s", geometry.Flags{}, []float64{1})
	require.NoError(t, err)
	sph.SetInternalID(1)
	cell, err := geometry.NewCell("inner", []geometry.SenseEntry{{SurfaceInternalID: 1, Sign: geometry.Minus}}, nil, nil)
	require.NoError(t, err)
	root := geometry.NewUniverse(geometry.RootUniverseUserID, []*geometry.Cell{cell}, nil)
	idx := &fakeIndex{surfaces: map[int]geometry.Surface{1: sph}, universes: map[int]*geometry.Universe{0: root}}
	nav := geometry.NewNavigator(idx, root, geometry.DefaultSurfaceTolerance, geometry.DefaultNudgeEpsilon)
	driver := transport.NewDriver(nav)

	p := transport.NewParticle(0, 1, nil, 1.0, 1.0)
	driver.Birth(p, geometry.Vec3{X: 10}, geometry.Vec3{X: 1})

	assert.False(t, p.Alive())
	assert.Equal(t, transport.FailureUnboundedGeometry, p.Failure)
}

func TestDriverStepOnDeadParticleIsNoop(t *testing.T) {
	p := &transport.Particle{Failure: transport.FailureUnknown}
	driver := transport.NewDriver(nil)

	dist, ok := driver.Step(p)
	assert.False(t, ok)
	assert.Zero(t, dist)
}
