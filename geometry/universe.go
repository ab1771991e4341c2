package geometry

import "math"

// RootUniverseUserID is the distinguished user id of the root universe
// (§3): Universe::BASE in the original source.
const RootUniverseUserID = "0"

// Universe is a container of cells (§4.C). When lattice is non-nil, the
// universe is a lattice specialization: a regular tiling of slots, each
// naming a child universe, instead of a plain cell list.
type Universe struct {
	userID     string
	internalID int
	cells      []*Cell
	parentCell *int // weak back-reference; nil for the root universe
	lattice    *LatticeSpec
}

// NewUniverse builds a plain (non-lattice) universe from an ordered list
// of cells.
func NewUniverse(userID string, cells []*Cell, parentCell *int) *Universe {
	return &Universe{userID: userID, cells: append([]*Cell(nil), cells...), parentCell: parentCell}
}

// NewLatticeUniverse builds a universe whose findCell delegates to a
// regular grid of child universes instead of scanning a cell list.
func NewLatticeUniverse(userID string, spec LatticeSpec, parentCell *int) *Universe {
	return &Universe{userID: userID, parentCell: parentCell, lattice: &spec}
}

func (u *Universe) UserID() string         { return u.userID }
func (u *Universe) InternalID() int        { return u.internalID }
func (u *Universe) SetInternalID(id int)   { u.internalID = id }
func (u *Universe) Cells() []*Cell         { return u.cells }
func (u *Universe) IsLattice() bool        { return u.lattice != nil }
func (u *Universe) IsRoot() bool           { return u.parentCell == nil }
func (u *Universe) ParentCell() (int, bool) {
	if u.parentCell == nil {
		return 0, false
	}
	return *u.parentCell, true
}

// FindCell returns the cell containing p (§4.C), resolved all the way down
// through any chain of nested lattices. owner is the concrete, non-lattice
// universe the returned cell actually belongs to (u itself for a plain
// universe; a descendant for a lattice), and local is p expressed in that
// universe's own coordinate frame — the pair the navigator needs to push a
// new stack level. A plain universe returns false if the point is outside
// every cell, which the navigator treats as GeometryUnbounded. A lattice
// universe instead locates the slot containing p and descends into that
// slot's universe.
//
// A plain universe's cell list is scanned in full rather than stopping at
// the first match, so two cells whose senses both contain p (a modeling
// error, §3/§4.C) is detected lazily and reported as OverlappingCells
// instead of silently resolving to whichever cell happened to be staged
// first; the first match is still returned alongside the error so a caller
// that chooses to ignore it degrades the same way earlier code did.
func (u *Universe) FindCell(p Vec3, idx Index) (cell *Cell, owner *Universe, local Vec3, ok bool, err error) {
	if u.lattice != nil {
		return u.lattice.findCell(p, idx)
	}
	var matches []*Cell
	for _, c := range u.cells {
		if c.Contains(p, idx) {
			matches = append(matches, c)
		}
	}
	switch len(matches) {
	case 0:
		return nil, nil, Vec3{}, false, nil
	case 1:
		return matches[0], u, p, true, nil
	default:
		ids := make([]string, len(matches))
		for i, c := range matches {
			ids[i] = c.UserID()
		}
		return matches[0], u, p, true, OverlappingCells{Cells: ids, Point: p}
	}
}

// FindCellBySenses returns the cell in this universe whose sense list
// exactly matches senses — used by the navigator to locate the cell
// adjacent across a crossed surface (§4.D "Intra-level" rule). Only
// meaningful on a plain (non-lattice) universe.
func (u *Universe) FindCellBySenses(senses []SenseEntry) (*Cell, bool) {
	for _, c := range u.cells {
		if sensesEqual(c.senses, senses) {
			return c, true
		}
	}
	return nil, false
}

// LatticeKind names a lattice's tiling geometry (SPEC_FULL.md §9 Open
// Question (b)). Slot lookup does not depend on it: both kinds locate
// slots on a rectangular grid and apply the same out-of-range rule, which
// LatticeSpec.Bounded selects.
type LatticeKind int

const (
	// LatticeRectangular tiles slots on a rectangular grid.
	LatticeRectangular LatticeKind = iota
	// LatticeHexagonal marks a hexagonal lattice. Its slots are located
	// exactly as LatticeRectangular's are; no hexagonal slot mapping is
	// applied.
	LatticeHexagonal
)

// LatticeSpec describes a regular grid of universe slots (§3 Lattice,
// §4.C).
type LatticeSpec struct {
	Kind       LatticeKind
	Dimensions [3]int // number of slots along x,y,z; 1 for an unused axis
	Pitch      Vec3
	Origin     Vec3
	// Bounded selects the out-of-range policy: true means a point outside
	// [0,Dimensions) in any active axis has no cell here (FindCell reports
	// no match, which Locate and Cross report as GeometryUnbounded); false
	// means the slot index wraps modulo Dimensions (an infinite lattice).
	Bounded bool
	// Slots maps a slot index tuple to the internal id of the universe
	// tiled there.
	Slots map[[3]int]int
}

// slotIndex computes the raw (pre-periodicity) slot coordinates for p.
func (l *LatticeSpec) slotIndex(p Vec3) [3]int {
	rel := p.Sub(l.Origin)
	return [3]int{
		int(math.Floor(rel.X / l.Pitch.X)),
		int(math.Floor(rel.Y / l.Pitch.Y)),
		int(math.Floor(rel.Z / l.Pitch.Z)),
	}
}

// wrapAxis applies the lattice's periodicity rule to a raw slot index along
// one axis. ok is false when the lattice is bounded and the index falls
// outside the configured range.
func wrapAxis(kind LatticeKind, i, dim int, bounded bool) (int, bool) {
	_ = kind // both supported kinds share the same bounds/periodicity rule
	if dim <= 1 {
		return 0, true
	}
	if !bounded {
		m := i % dim
		if m < 0 {
			m += dim
		}
		return m, true
	}
	if i < 0 || i >= dim {
		return 0, false
	}
	return i, true
}

func (l *LatticeSpec) findCell(p Vec3, idx Index) (*Cell, *Universe, Vec3, bool, error) {
	raw := l.slotIndex(p)
	// slot picks the universe; tile is the (unwrapped) tile p lies in,
	// whose center the local coordinate is measured from.
	var slot, tile [3]int
	for axis := 0; axis < 3; axis++ {
		wrapped, ok := wrapAxis(l.Kind, raw[axis], l.Dimensions[axis], l.Bounded)
		if !ok {
			return nil, nil, Vec3{}, false, nil
		}
		slot[axis] = wrapped
		if l.Dimensions[axis] > 1 {
			tile[axis] = raw[axis]
		}
	}
	universeID, ok := l.Slots[slot]
	if !ok {
		return nil, nil, Vec3{}, false, nil
	}
	child, ok := idx.Universe(universeID)
	if !ok {
		return nil, nil, Vec3{}, false, nil
	}
	localToSlot := Vec3{
		X: p.X - l.Origin.X - (float64(tile[0])+0.5)*l.Pitch.X,
		Y: p.Y - l.Origin.Y - (float64(tile[1])+0.5)*l.Pitch.Y,
		Z: p.Z - l.Origin.Z - (float64(tile[2])+0.5)*l.Pitch.Z,
	}
	return child.FindCell(localToSlot, idx)
}
