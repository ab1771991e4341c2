package geometry

// PlaneOnAxis is a plane perpendicular to one coordinate axis: f(p) =
// p_axis - d0. Its external name tags are "px", "py", "pz".
type PlaneOnAxis struct {
	base
	axis Axis
	d0   float64
}

// NewPlaneOnAxis builds an axis-aligned plane. coeffs must hold exactly
// one value: the offset along the axis.
func NewPlaneOnAxis(userID string, axis Axis, flags Flags, coeffs []float64) (*PlaneOnAxis, error) {
	if len(coeffs) != 1 {
		return nil, BadSurfaceCreation{UserID: userID, Reason: "plane-on-axis requires exactly one coefficient"}
	}
	return &PlaneOnAxis{base: base{userID: userID, flags: flags}, axis: axis, d0: coeffs[0]}, nil
}

func (p *PlaneOnAxis) Tag() string {
	switch p.axis {
	case AxisX:
		return "px"
	case AxisY:
		return "py"
	default:
		return "pz"
	}
}

func (p *PlaneOnAxis) Function(pos Vec3) float64 {
	return pos.Component(p.axis) - p.d0
}

func (p *PlaneOnAxis) Normal(Vec3) Vec3 {
	return Vec3{}.WithComponent(p.axis, 1)
}

func (p *PlaneOnAxis) Intersect(pos, dir Vec3, sense Sense) (float64, bool) {
	denom := dir.Component(p.axis)
	if denom == 0 {
		return 0, false
	}
	t := (p.d0 - pos.Component(p.axis)) / denom
	if t <= 0 {
		return 0, false
	}
	return t, true
}

func (p *PlaneOnAxis) Transformate(trans Vec3) Surface {
	return &PlaneOnAxis{
		base: base{userID: p.userID, flags: p.flags},
		axis: p.axis,
		d0:   p.d0 + trans.Component(p.axis),
	}
}

// Plane is a general plane: f(p) = n·p - d0. Its external name tag is "p".
type Plane struct {
	base
	normal Vec3
	d0     float64
}

// NewPlane builds a general plane. coeffs must hold exactly four values:
// nx, ny, nz, d0.
func NewPlane(userID string, flags Flags, coeffs []float64) (*Plane, error) {
	if len(coeffs) != 4 {
		return nil, BadSurfaceCreation{UserID: userID, Reason: "plane requires four coefficients (nx,ny,nz,d0)"}
	}
	n := Vec3{coeffs[0], coeffs[1], coeffs[2]}
	if n.Norm() == 0 {
		return nil, BadSurfaceCreation{UserID: userID, Reason: "plane normal cannot be the zero vector"}
	}
	return &Plane{base: base{userID: userID, flags: flags}, normal: n, d0: coeffs[3]}, nil
}

func (p *Plane) Tag() string { return "p" }

func (p *Plane) Function(pos Vec3) float64 {
	return p.normal.Dot(pos) - p.d0
}

func (p *Plane) Normal(Vec3) Vec3 {
	return p.normal
}

func (p *Plane) Intersect(pos, dir Vec3, sense Sense) (float64, bool) {
	denom := p.normal.Dot(dir)
	if denom == 0 {
		return 0, false
	}
	t := (p.d0 - p.normal.Dot(pos)) / denom
	if t <= 0 {
		return 0, false
	}
	return t, true
}

func (p *Plane) Transformate(trans Vec3) Surface {
	return &Plane{
		base:   base{userID: p.userID, flags: p.flags},
		normal: p.normal,
		d0:     p.d0 + p.normal.Dot(trans),
	}
}
