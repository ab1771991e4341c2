package geometry

// dotExcludingAxis sums the products of components of a and b other than
// the one named by axis — the building block the original C++ source
// (Surfaces/CylinderOnAxis.hpp) calls dotProduct<axis>.
func dotExcludingAxis(axis Axis, a, b Vec3) float64 {
	sum := 0.0
	if axis != AxisX {
		sum += a.X * b.X
	}
	if axis != AxisY {
		sum += a.Y * b.Y
	}
	if axis != AxisZ {
		sum += a.Z * b.Z
	}
	return sum
}

// CylinderOnAxis is an infinite cylinder whose axis is parallel to one of
// the coordinate axes: f(p) = Σ_{i≠axis}(p_i-c_i)² - r². External name
// tags are "c/x", "c/y", "c/z".
type CylinderOnAxis struct {
	base
	axis   Axis
	radius float64
	point  Vec3 // off-axis center; component along axis is always zero
}

// NewCylinderOnAxis builds a cylinder parallel to axis. coeffs must hold
// exactly three values: the radius, then the two off-axis center
// coordinates in ascending axis order (x before y before z, skipping
// axis; for "c/y" that is x then z) — matching the constructor in the
// original source, which fills point[i] for i != axis in index order.
func NewCylinderOnAxis(userID string, axis Axis, flags Flags, coeffs []float64) (*CylinderOnAxis, error) {
	if len(coeffs) != 3 {
		return nil, BadSurfaceCreation{UserID: userID, Reason: "cylinder-on-axis requires exactly three coefficients (radius, c1, c2)"}
	}
	radius := coeffs[0]
	if radius <= 0 {
		return nil, BadSurfaceCreation{UserID: userID, Reason: "cylinder radius must be positive"}
	}
	var point Vec3
	k := 0
	for _, a := range [3]Axis{AxisX, AxisY, AxisZ} {
		if a == axis {
			continue
		}
		point = point.WithComponent(a, coeffs[k+1])
		k++
	}
	return &CylinderOnAxis{base: base{userID: userID, flags: flags}, axis: axis, radius: radius, point: point}, nil
}

func (c *CylinderOnAxis) Tag() string {
	switch c.axis {
	case AxisX:
		return "c/x"
	case AxisY:
		return "c/y"
	default:
		return "c/z"
	}
}

func (c *CylinderOnAxis) Function(pos Vec3) float64 {
	tr := pos.Sub(c.point)
	return dotExcludingAxis(c.axis, tr, tr) - c.radius*c.radius
}

func (c *CylinderOnAxis) Normal(pos Vec3) Vec3 {
	n := dropAxis(pos.Sub(c.point), c.axis)
	return n.Scale(1 / c.radius)
}

func (c *CylinderOnAxis) Intersect(pos, dir Vec3, sense Sense) (float64, bool) {
	a := 1 - dir.Component(c.axis)*dir.Component(c.axis)
	tr := pos.Sub(c.point)
	k := dotExcludingAxis(c.axis, dir, tr)
	cc := dotExcludingAxis(c.axis, tr, tr) - c.radius*c.radius
	return quadraticIntersect(a, k, cc, sense, DefaultSurfaceTolerance)
}

func (c *CylinderOnAxis) Transformate(trans Vec3) Surface {
	return &CylinderOnAxis{
		base:   base{userID: c.userID, flags: c.flags},
		axis:   c.axis,
		radius: c.radius,
		point:  c.point.Add(dropAxis(trans, c.axis)),
	}
}
