package geometry

import "fmt"

// BadSurfaceCreation is raised by a surface constructor when it is handed
// the wrong number of coefficients, or degenerate parameters such as a
// zero radius.
type BadSurfaceCreation struct {
	UserID string
	Reason string
}

func (e BadSurfaceCreation) Error() string {
	return fmt.Sprintf("geometry: surface %q: %s", e.UserID, e.Reason)
}

// GeometryUnbounded means findCell returned no match at the root level —
// the particle's position is outside every cell of the root universe.
type GeometryUnbounded struct {
	Point Vec3
}

func (e GeometryUnbounded) Error() string {
	return fmt.Sprintf("geometry: point %v is not inside any cell of the root universe", e.Point)
}

// OverlappingCells means a consistency sweep found two cells whose
// contains() both matched the same point.
type OverlappingCells struct {
	Cells []string
	Point Vec3
}

func (e OverlappingCells) Error() string {
	return fmt.Sprintf("geometry: cells %v overlap at point %v", e.Cells, e.Point)
}

// NoAdjacentCell means a surface crossing flipped a cell's sense but no
// sibling cell in the owning universe matches the resulting sense list —
// the model has a gap in its geometry at that surface.
type NoAdjacentCell struct {
	SurfaceInternalID int
	Point             Vec3
}

func (e NoAdjacentCell) Error() string {
	return fmt.Sprintf("geometry: no cell adjacent to surface %d at point %v", e.SurfaceInternalID, e.Point)
}

// NoBoundary means distanceToNext found no surface in any stack level that
// the current ray intersects — the navigator cannot make progress.
type NoBoundary struct {
	Point     Vec3
	Direction Vec3
}

func (e NoBoundary) Error() string {
	return fmt.Sprintf("geometry: no boundary found from point %v along direction %v", e.Point, e.Direction)
}
