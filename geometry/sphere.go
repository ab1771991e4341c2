package geometry

// Sphere is f(p) = ‖p-c‖² - r². Its external name tags are "so" (centered
// at the origin) and "s" (general center).
type Sphere struct {
	base
	center Vec3
	radius float64
}

// NewSphere builds a sphere. coeffs must hold either one value (radius,
// centered at the origin — tag "so") or four values (cx, cy, cz, radius —
// tag "s").
func NewSphere(userID string, flags Flags, coeffs []float64) (*Sphere, error) {
	var center Vec3
	var radius float64
	switch len(coeffs) {
	case 1:
		radius = coeffs[0]
	case 4:
		center = Vec3{coeffs[0], coeffs[1], coeffs[2]}
		radius = coeffs[3]
	default:
		return nil, BadSurfaceCreation{UserID: userID, Reason: "sphere requires one coefficient (so) or four (s)"}
	}
	if radius <= 0 {
		return nil, BadSurfaceCreation{UserID: userID, Reason: "sphere radius must be positive"}
	}
	return &Sphere{base: base{userID: userID, flags: flags}, center: center, radius: radius}, nil
}

func (s *Sphere) Tag() string {
	if s.center == (Vec3{}) {
		return "so"
	}
	return "s"
}

func (s *Sphere) Function(p Vec3) float64 {
	d := p.Sub(s.center)
	return d.Dot(d) - s.radius*s.radius
}

func (s *Sphere) Normal(p Vec3) Vec3 {
	return p.Sub(s.center).Scale(1 / s.radius)
}

func (s *Sphere) Intersect(p, d Vec3, sense Sense) (float64, bool) {
	tr := p.Sub(s.center)
	a := d.Dot(d)
	k := d.Dot(tr)
	c := tr.Dot(tr) - s.radius*s.radius
	return quadraticIntersect(a, k, c, sense, DefaultSurfaceTolerance)
}

func (s *Sphere) Transformate(trans Vec3) Surface {
	return &Sphere{base: base{userID: s.userID, flags: s.flags}, center: s.center.Add(trans), radius: s.radius}
}
