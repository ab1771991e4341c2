package geometry

import "math"

// DefaultNudgeEpsilon is the default distance a particle is pushed along
// its direction after a surface crossing, so the next Contains/Intersect
// query lands unambiguously on one side of the surface (§4.D). Helios
// wires the real value through Settings into Navigator.NudgeEpsilon.
const DefaultNudgeEpsilon = 1e-8

// LevelState is one frame of a particle's geometry stack: the universe
// and cell it currently occupies, its coordinate and direction in that
// universe's local frame, and the surface it most recently crossed at
// this level (so DistanceToNext can exclude it from re-intersection).
type LevelState struct {
	Universe              *Universe
	Cell                  *Cell
	Coordinate            Vec3
	Direction             Vec3
	LastSurfaceCrossed    int
	HasLastSurfaceCrossed bool
}

// State is a particle's full geometry stack (§4.D): one LevelState per
// nested fill a particle currently sits inside, root universe first.
type State struct {
	Levels []LevelState
}

// Current returns the deepest (innermost) level, the one the particle is
// actually occupying.
func (s *State) Current() *LevelState {
	return &s.Levels[len(s.Levels)-1]
}

// LevelChange classifies how a boundary crossing affects the stack.
type LevelChange int

const (
	// ChangeIntraLevel is a plain neighbor-cell crossing within the
	// deepest level's universe.
	ChangeIntraLevel LevelChange = iota
	// ChangePush means the crossing enters a fill-bearing cell: a new,
	// deeper stack level is appended.
	ChangePush
	// ChangePop means the crossing was found at an ancestor level — the
	// particle exits one or more nested fills before anything in the
	// deepest level's own geometry was reached.
	ChangePop
)

// Crossing describes the next surface a particle's ray will reach.
type Crossing struct {
	LevelIndex int
	SurfaceID  int
	Distance   float64
	Change     LevelChange
}

// Navigator implements the geometry traversal operations of §4.D over an
// Index built by the Geometry module at setup.
type Navigator struct {
	idx              Index
	root             *Universe
	SurfaceTolerance float64
	NudgeEpsilon     float64
}

// NewNavigator builds a navigator rooted at root, resolving ids through idx.
func NewNavigator(idx Index, root *Universe, surfaceTolerance, nudgeEpsilon float64) *Navigator {
	return &Navigator{idx: idx, root: root, SurfaceTolerance: surfaceTolerance, NudgeEpsilon: nudgeEpsilon}
}

// Locate builds the initial stack for a particle born at pWorld traveling
// dWorld (§4.D): it resolves the root universe's cell, and for every
// fill-bearing cell found along the way, descends into the fill's
// universe and pushes a new level. Fails with GeometryUnbounded if any
// level's findCell has no match.
func (n *Navigator) Locate(pWorld, dWorld Vec3) (*State, error) {
	st := &State{}
	cur := n.root
	p, d := pWorld, dWorld

	for {
		cell, owner, local, ok, err := cur.FindCell(p, n.idx)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, GeometryUnbounded{Point: p}
		}
		st.Levels = append(st.Levels, LevelState{Universe: owner, Cell: cell, Coordinate: local, Direction: d})

		fillID, hasFill := cell.Fill()
		if !hasFill {
			return st, nil
		}
		child, ok := n.idx.Universe(fillID)
		if !ok {
			return nil, GeometryUnbounded{Point: local}
		}
		cur = child
		p = local
	}
}

// DistanceToNext queries every stack level's current cell for its nearest
// boundary (§4.D) and returns the overall minimum, classified as an
// intra-level crossing, a push into a fill, or a pop out of one or more
// nested fills.
func (n *Navigator) DistanceToNext(state *State) (Crossing, error) {
	best := Crossing{Distance: math.Inf(1)}
	found := false

	for i := range state.Levels {
		lvl := &state.Levels[i]
		exclude := -1
		if lvl.HasLastSurfaceCrossed {
			exclude = lvl.LastSurfaceCrossed
		}
		surfID, dist, ok := lvl.Cell.Boundary(lvl.Coordinate, lvl.Direction, n.idx, exclude)
		if !ok {
			continue
		}
		if !found || dist < best.Distance {
			found = true
			best = Crossing{LevelIndex: i, SurfaceID: surfID, Distance: dist}
		}
	}
	if !found {
		return Crossing{}, NoBoundary{Point: state.Current().Coordinate, Direction: state.Current().Direction}
	}

	deepest := len(state.Levels) - 1
	switch {
	case best.LevelIndex < deepest:
		best.Change = ChangePop
	default:
		lvl := &state.Levels[deepest]
		adjSenses := withFlippedSense(lvl.Cell.Senses(), best.SurfaceID)
		if adj, ok := lvl.Universe.FindCellBySenses(adjSenses); ok {
			if _, hasFill := adj.Fill(); hasFill {
				best.Change = ChangePush
			} else {
				best.Change = ChangeIntraLevel
			}
		} else {
			best.Change = ChangeIntraLevel
		}
	}
	return best, nil
}

// Cross advances the particle to the crossing found by DistanceToNext and
// updates the stack accordingly (§4.D): every level's coordinate is
// advanced by the same distance along its own direction, the crossing is
// resolved as a reflection, a push, or an intra-level/pop neighbor lookup,
// and the result is nudged by NudgeEpsilon to clear the surface.
func (n *Navigator) Cross(state *State, crossing Crossing) error {
	for i := range state.Levels {
		lvl := &state.Levels[i]
		lvl.Coordinate = lvl.Coordinate.Add(lvl.Direction.Scale(crossing.Distance))
	}

	surf, ok := n.idx.Surface(crossing.SurfaceID)
	if !ok {
		return NoAdjacentCell{SurfaceInternalID: crossing.SurfaceID, Point: state.Current().Coordinate}
	}

	if crossing.LevelIndex == 0 && surf.Flags().Reflective {
		root := &state.Levels[0]
		nrm := surf.Normal(root.Coordinate).Normalize()
		reflected := root.Direction.Sub(nrm.Scale(2 * root.Direction.Dot(nrm)))
		for i := range state.Levels {
			state.Levels[i].Direction = reflected
		}
		root.Coordinate = root.Coordinate.Add(reflected.Scale(n.NudgeEpsilon))
		root.LastSurfaceCrossed = crossing.SurfaceID
		root.HasLastSurfaceCrossed = true
		return nil
	}

	for i := range state.Levels {
		lvl := &state.Levels[i]
		lvl.Coordinate = lvl.Coordinate.Add(lvl.Direction.Scale(n.NudgeEpsilon))
	}

	// Pop first discards every level deeper than where the crossing was
	// found — the particle exits those nested fills without its ray ever
	// reaching their own geometry.
	if crossing.Change == ChangePop {
		state.Levels = state.Levels[:crossing.LevelIndex+1]
	}

	lvl := &state.Levels[crossing.LevelIndex]
	adjSenses := withFlippedSense(lvl.Cell.Senses(), crossing.SurfaceID)
	adj, ok := lvl.Universe.FindCellBySenses(adjSenses)
	if !ok {
		return NoAdjacentCell{SurfaceInternalID: crossing.SurfaceID, Point: lvl.Coordinate}
	}
	lvl.Cell = adj
	lvl.LastSurfaceCrossed = crossing.SurfaceID
	lvl.HasLastSurfaceCrossed = true

	// The neighbor cell just entered may itself be fill-bearing even when
	// DistanceToNext classified this as a plain intra-level crossing (it
	// only inspects the deepest level); always push if it is.
	if fillID, hasFill := adj.Fill(); hasFill {
		child, ok := n.idx.Universe(fillID)
		if !ok {
			return GeometryUnbounded{Point: lvl.Coordinate}
		}
		cell, owner, local, ok, err := child.FindCell(lvl.Coordinate, n.idx)
		if err != nil {
			return err
		}
		if !ok {
			return GeometryUnbounded{Point: lvl.Coordinate}
		}
		state.Levels = append(state.Levels, LevelState{Universe: owner, Cell: cell, Coordinate: local, Direction: lvl.Direction})
	}
	return nil
}
