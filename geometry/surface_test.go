package geometry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohamed3ma/helios/geometry"
)

func TestSphereIntersectDistanceFromOutside(t *testing.T) {
	sph, err := geometry.NewSphere("1", geometry.Flags{}, []float64{2})
	require.NoError(t, err)

	dist, ok := sph.Intersect(geometry.Vec3{X: -5}, geometry.Vec3{X: 1}, geometry.Plus)
	require.True(t, ok)
	assert.InDelta(t, 3.0, dist, 1e-9)
}

func TestSphereIntersectDistanceFromInside(t *testing.T) {
	sph, err := geometry.NewSphere("1", geometry.Flags{}, []float64{2})
	require.NoError(t, err)

	dist, ok := sph.Intersect(geometry.Vec3{}, geometry.Vec3{X: 1}, geometry.Minus)
	require.True(t, ok)
	assert.InDelta(t, 2.0, dist, 1e-9)
}

func TestSphereTangentRayMisses(t *testing.T) {
	sph, err := geometry.NewSphere("1", geometry.Flags{}, []float64{1})
	require.NoError(t, err)

	// A ray along x, offset by the radius along y, lies in the tangent
	// plane y=1 and only touches the sphere at (0,1,0): the discriminant
	// is zero, which quadraticIntersect's Δ ≤ 0 check (§4.A rule 2)
	// treats as a miss rather than a grazing hit.
	_, ok := sph.Intersect(geometry.Vec3{X: -5, Y: 1}, geometry.Vec3{X: 1}, geometry.Plus)
	assert.False(t, ok)
}

func TestCylinderOnAxisIntersect(t *testing.T) {
	cyl, err := geometry.NewCylinderOnAxis("1", geometry.AxisZ, geometry.Flags{}, []float64{1, 0, 0})
	require.NoError(t, err)

	dist, ok := cyl.Intersect(geometry.Vec3{X: -3, Z: 5}, geometry.Vec3{X: 1}, geometry.Plus)
	require.True(t, ok)
	assert.InDelta(t, 2.0, dist, 1e-9)
}

func TestPlaneOnAxisIntersect(t *testing.T) {
	pl, err := geometry.NewPlaneOnAxis("1", geometry.AxisX, geometry.Flags{}, []float64{4})
	require.NoError(t, err)

	dist, ok := pl.Intersect(geometry.Vec3{X: 1}, geometry.Vec3{X: 1}, geometry.Plus)
	require.True(t, ok)
	assert.InDelta(t, 3.0, dist, 1e-9)

	_, ok = pl.Intersect(geometry.Vec3{X: 1}, geometry.Vec3{X: -1}, geometry.Plus)
	assert.False(t, ok, "moving away from the plane should never intersect it")
}

func TestGeneralQuadricMatchesSphere(t *testing.T) {
	// x^2+y^2+z^2-4 = 0 is a radius-2 sphere at the origin.
	q, err := geometry.NewGeneralQuadric("1", geometry.Flags{}, []float64{1, 1, 1, 0, 0, 0, 0, 0, 0, -4})
	require.NoError(t, err)

	assert.InDelta(t, 0, q.Function(geometry.Vec3{X: 2}), 1e-9)
	dist, ok := q.Intersect(geometry.Vec3{X: -5}, geometry.Vec3{X: 1}, geometry.Plus)
	require.True(t, ok)
	assert.InDelta(t, 3.0, dist, 1e-9)
}

func TestPlaneTransformateShiftsOffset(t *testing.T) {
	pl, err := geometry.NewPlaneOnAxis("1", geometry.AxisX, geometry.Flags{}, []float64{4})
	require.NoError(t, err)

	shifted := pl.Transformate(geometry.Vec3{X: 1})
	assert.InDelta(t, 0, shifted.Function(geometry.Vec3{X: 5}), 1e-9)
}

func TestReflectionAboutPlaneNormal(t *testing.T) {
	pl, err := geometry.NewPlane("1", geometry.Flags{Reflective: true}, []float64{1, 0, 0, 0})
	require.NoError(t, err)

	n := pl.Normal(geometry.Vec3{}).Normalize()
	d := geometry.Vec3{X: 1, Y: 1}.Normalize()
	reflected := d.Sub(n.Scale(2 * d.Dot(n)))

	assert.InDelta(t, -1*d.X, reflected.X, 1e-9)
	assert.InDelta(t, d.Y, reflected.Y, 1e-9)
	assert.InDelta(t, 1.0, reflected.Norm(), 1e-9, "reflection preserves direction magnitude")
}
