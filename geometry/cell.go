package geometry

import "sort"

// SenseEntry is one (surface, sign) pair in a cell's sense list.
type SenseEntry struct {
	SurfaceInternalID int
	Sign              Sense
}

// SurfaceLookup resolves a surface's internal id to the Surface itself.
// Cells only store ids (§3: "solely by the Geometry module after setup"),
// so every query that needs the actual surface math takes a lookup.
type SurfaceLookup interface {
	Surface(internalID int) (Surface, bool)
}

// Cell is a half-space conjunction over surfaces (§4.B): a point is inside
// the cell iff its sign with respect to every surface in the sense list
// matches the stored sign.
type Cell struct {
	userID     string
	internalID int
	senses     []SenseEntry

	fill     *int // internal id of the filling universe, if any
	material *int // material-binding key, if any (the Geometry factory stores the cell's own internal id, the key into Module.cellMaterial)
}

// NewCell builds a cell. fill and material are mutually exclusive; passing
// both non-nil is a construction error. A cell with neither set is a
// legal void cell.
func NewCell(userID string, senses []SenseEntry, fill, material *int) (*Cell, error) {
	if fill != nil && material != nil {
		return nil, BadCellCreation{UserID: userID, Reason: "a cell cannot both be filled by a universe and carry a material"}
	}
	return &Cell{
		userID:     userID,
		senses:     append([]SenseEntry(nil), senses...),
		fill:       fill,
		material:   material,
	}, nil
}

func (c *Cell) UserID() string       { return c.userID }
func (c *Cell) InternalID() int      { return c.internalID }
func (c *Cell) SetInternalID(id int) { c.internalID = id }
func (c *Cell) Senses() []SenseEntry { return c.senses }
func (c *Cell) Fill() (int, bool) {
	if c.fill == nil {
		return 0, false
	}
	return *c.fill, true
}
func (c *Cell) Material() (int, bool) {
	if c.material == nil {
		return 0, false
	}
	return *c.material, true
}
func (c *Cell) IsVoid() bool { return c.fill == nil && c.material == nil }

// Sense returns the stored sign for surfaceID, never recomputed from f(p)
// at runtime (§4.B).
func (c *Cell) Sense(surfaceID int) (Sense, bool) {
	for _, s := range c.senses {
		if s.SurfaceInternalID == surfaceID {
			return s.Sign, true
		}
	}
	return 0, false
}

// Contains scans the sense list; the first sign mismatch returns false.
func (c *Cell) Contains(p Vec3, lookup SurfaceLookup) bool {
	for _, s := range c.senses {
		surf, ok := lookup.Surface(s.SurfaceInternalID)
		if !ok {
			return false
		}
		if SenseOf(surf.Function(p)) != s.Sign {
			return false
		}
	}
	return true
}

// Boundary finds the nearest surface of this cell the ray (p,d) crosses,
// using each surface's own stored sense for the intersect query. Ties
// break on the lexicographically earlier surface user id. excludeSurfaceID
// (or -1) names a surface to skip — the one just crossed, so the
// tolerance-window re-hit the navigator guards against (§4.D) never wins.
func (c *Cell) Boundary(p, d Vec3, lookup SurfaceLookup, excludeSurfaceID int) (surfaceID int, distance float64, ok bool) {
	type candidate struct {
		id   int
		dist float64
		uid  string
	}
	var best *candidate
	for _, s := range c.senses {
		if s.SurfaceInternalID == excludeSurfaceID {
			continue
		}
		surf, found := lookup.Surface(s.SurfaceInternalID)
		if !found {
			continue
		}
		dist, hit := surf.Intersect(p, d, s.Sign)
		if !hit {
			continue
		}
		cand := candidate{id: s.SurfaceInternalID, dist: dist, uid: surf.UserID()}
		if best == nil || cand.dist < best.dist || (cand.dist == best.dist && cand.uid < best.uid) {
			best = &cand
		}
	}
	if best == nil {
		return 0, 0, false
	}
	return best.id, best.dist, true
}

// withFlippedSense returns the sense list that results from negating the
// sign stored for surfaceID — the region on the other side of that one
// surface, holding every other sense fixed. Used by the navigator to find
// the cell adjacent across a crossed surface (§4.D "Intra-level" rule).
func withFlippedSense(senses []SenseEntry, surfaceID int) []SenseEntry {
	out := make([]SenseEntry, len(senses))
	copy(out, senses)
	for i, s := range out {
		if s.SurfaceInternalID == surfaceID {
			out[i].Sign = -s.Sign
		}
	}
	return out
}

func sensesEqual(a, b []SenseEntry) bool {
	if len(a) != len(b) {
		return false
	}
	am := make(map[int]Sense, len(a))
	for _, e := range a {
		am[e.SurfaceInternalID] = e.Sign
	}
	bm := make(map[int]Sense, len(b))
	for _, e := range b {
		bm[e.SurfaceInternalID] = e.Sign
	}
	if len(am) != len(bm) {
		return false
	}
	for k, v := range am {
		if bm[k] != v {
			return false
		}
	}
	return true
}

// sortCellsByUserID returns cells sorted by user id, giving a
// deterministic iteration order wherever spec doesn't mandate input order.
func sortCellsByUserID(cells []*Cell) []*Cell {
	out := append([]*Cell(nil), cells...)
	sort.Slice(out, func(i, j int) bool { return out[i].userID < out[j].userID })
	return out
}

// BadCellCreation is raised when a cell constructor is given both a fill
// and a material, or another malformed combination of attributes. It is
// not part of the §7 taxonomy (which only calls out the fill/material
// exclusivity as a constructor rule) but follows the same "construction
// errors carry the offending user id" shape as BadSurfaceCreation.
type BadCellCreation struct {
	UserID string
	Reason string
}

func (e BadCellCreation) Error() string {
	return "geometry: cell " + e.UserID + ": " + e.Reason
}
