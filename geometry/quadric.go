package geometry

// GeneralQuadric is the catch-all surface kind: f(p) = ax² + by² + cz² +
// 2(dxy + eyz + fzx) + 2(gx + hy + iz) + j. External name tag "sq".
type GeneralQuadric struct {
	base
	a, b, c, d, e, f, g, h, i, j float64
}

// NewGeneralQuadric builds a generic quadric from its ten coefficients, in
// the order a,b,c,d,e,f,g,h,i,j matching the spec's formula.
func NewGeneralQuadric(userID string, flags Flags, coeffs []float64) (*GeneralQuadric, error) {
	if len(coeffs) != 10 {
		return nil, BadSurfaceCreation{UserID: userID, Reason: "general quadric requires exactly ten coefficients"}
	}
	return &GeneralQuadric{
		base: base{userID: userID, flags: flags},
		a:    coeffs[0], b: coeffs[1], c: coeffs[2],
		d: coeffs[3], e: coeffs[4], f: coeffs[5],
		g: coeffs[6], h: coeffs[7], i: coeffs[8],
		j: coeffs[9],
	}, nil
}

func (q *GeneralQuadric) Tag() string { return "sq" }

// applyA returns A·v where A is the quadric's symmetric coefficient
// matrix [[a,d,f],[d,b,e],[f,e,c]].
func (q *GeneralQuadric) applyA(v Vec3) Vec3 {
	return Vec3{
		X: q.a*v.X + q.d*v.Y + q.f*v.Z,
		Y: q.d*v.X + q.b*v.Y + q.e*v.Z,
		Z: q.f*v.X + q.e*v.Y + q.c*v.Z,
	}
}

func (q *GeneralQuadric) linear() Vec3 {
	return Vec3{X: q.g, Y: q.h, Z: q.i}
}

func (q *GeneralQuadric) Function(p Vec3) float64 {
	return p.Dot(q.applyA(p)) + 2*q.linear().Dot(p) + q.j
}

func (q *GeneralQuadric) Normal(p Vec3) Vec3 {
	av := q.applyA(p)
	return Vec3{X: 2 * (av.X + q.linear().X), Y: 2 * (av.Y + q.linear().Y), Z: 2 * (av.Z + q.linear().Z)}
}

func (q *GeneralQuadric) Intersect(pos, dir Vec3, sense Sense) (float64, bool) {
	a := dir.Dot(q.applyA(dir))
	k := dir.Dot(q.applyA(pos)) + q.linear().Dot(dir)
	c := q.Function(pos)
	return quadraticIntersect(a, k, c, sense, DefaultSurfaceTolerance)
}

func (q *GeneralQuadric) Transformate(trans Vec3) Surface {
	// f'(p) = f(p-trans), matching every other surface kind: A is
	// unchanged, the linear term becomes L-A*trans, and the constant
	// term becomes f(-trans).
	av := q.applyA(trans)
	return &GeneralQuadric{
		base: base{userID: q.userID, flags: q.flags},
		a:    q.a, b: q.b, c: q.c, d: q.d, e: q.e, f: q.f,
		g: q.g - av.X,
		h: q.h - av.Y,
		i: q.i - av.Z,
		j: q.Function(trans.Scale(-1)),
	}
}
