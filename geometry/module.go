package geometry

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/mohamed3ma/helios/environment"
	"github.com/mohamed3ma/helios/material"
)

// ModuleName is the fixed name the Geometry module registers and stages
// objects under, last in §4.G's dependency order since a cell may
// reference a material resolved by the Materials module.
const ModuleName = "geometry"

var log = logrus.WithField("module", ModuleName)

// SurfaceDefinition stages one surface (§4.A) by kind name and its
// constructor coefficients, the same flat coefficient-list shape the
// original's AceTable-adjacent surface factories take.
type SurfaceDefinition struct {
	ID     string
	Kind   string // "sphere", "plane", "plane_on_axis", "cylinder_on_axis", "quadric"
	Axis   Axis
	Flags  Flags
	Coeffs []float64
}

func (d SurfaceDefinition) ModuleName() string { return ModuleName }
func (d SurfaceDefinition) UserID() string      { return d.ID }

// SenseRef names a surface by user id and the sign a cell requires of it,
// resolved to a SenseEntry once every surface has a dense internal id.
type SenseRef struct {
	SurfaceUserID string
	Sign          Sense
}

// CellDefinition stages one cell (§4.B). FillUserID and MaterialUserID are
// mutually exclusive; leave both empty for a void cell.
type CellDefinition struct {
	ID             string
	Senses         []SenseRef
	FillUserID     string
	MaterialUserID string
}

func (d CellDefinition) ModuleName() string { return ModuleName }
func (d CellDefinition) UserID() string      { return d.ID }

// UniverseDefinition stages a plain (non-lattice) universe (§4.C) as an
// ordered list of the cells that fill it. Lattice universes are built
// directly in Go (NewLatticeUniverse) rather than through this staging
// path — nesting a regular grid of slot-to-universe assignments through a
// flat key/value object stream adds a second input grammar this repo's
// input layer does not attempt (out of scope alongside full CSG parsing,
// §1 Non-goals).
type UniverseDefinition struct {
	ID          string
	CellUserIDs []string
}

func (d UniverseDefinition) ModuleName() string { return ModuleName }
func (d UniverseDefinition) UserID() string      { return d.ID }

// Module is the constructed Geometry module: the internal-id index the
// navigator resolves against, plus the cell-to-material binding exposed
// through MaterialFor (the transport driver does not query it).
type Module struct {
	surfaces  map[int]Surface
	universes map[int]*Universe
	root      *Universe

	cellMaterial map[int]*material.Material // keyed by cell internal id
}

func (m *Module) Name() string { return ModuleName }

// Surface implements SurfaceLookup/Index.
func (m *Module) Surface(internalID int) (Surface, bool) {
	s, ok := m.surfaces[internalID]
	return s, ok
}

// Universe implements Index.
func (m *Module) Universe(internalID int) (*Universe, bool) {
	u, ok := m.universes[internalID]
	return u, ok
}

// Root returns the distinguished root universe (§3).
func (m *Module) Root() *Universe { return m.root }

// Navigator builds a navigator over this module's index and root
// universe, using the tolerances a caller (typically the Settings module)
// supplies.
func (m *Module) Navigator(surfaceTolerance, nudgeEpsilon float64) *Navigator {
	return NewNavigator(m, m.root, surfaceTolerance, nudgeEpsilon)
}

// MaterialFor returns the material bound to a cell's internal id, if any.
func (m *Module) MaterialFor(cellInternalID int) (*material.Material, bool) {
	mat, ok := m.cellMaterial[cellInternalID]
	return mat, ok
}

// Factory builds the Geometry module (§4.G step 4): surfaces first (cells
// reference them by id), then universes are assigned dense internal ids
// so cell fill references resolve before cells are built, then cells
// (resolving material references against the already-constructed
// Materials module via ctx), then universes themselves.
func Factory(ctx *environment.SetupContext, objects []environment.ObjectDefinition) (environment.Module, error) {
	mod := &Module{
		surfaces:     make(map[int]Surface),
		universes:    make(map[int]*Universe),
		cellMaterial: make(map[int]*material.Material),
	}

	var surfaceDefs []SurfaceDefinition
	var cellDefs []CellDefinition
	var universeDefs []UniverseDefinition
	for _, obj := range objects {
		switch def := obj.(type) {
		case SurfaceDefinition:
			surfaceDefs = append(surfaceDefs, def)
		case CellDefinition:
			cellDefs = append(cellDefs, def)
		case UniverseDefinition:
			universeDefs = append(universeDefs, def)
		default:
			return nil, fmt.Errorf("geometry: unrecognized object definition %T", obj)
		}
	}

	surfaceInternal := make(map[string]int, len(surfaceDefs))
	for i, def := range surfaceDefs {
		s, err := buildSurface(def)
		if err != nil {
			return nil, err
		}
		s.SetInternalID(i)
		mod.surfaces[i] = s
		surfaceInternal[def.ID] = i
		log.WithFields(logrus.Fields{"user_id": def.ID, "internal_id": i}).Debug("staged surface")
	}

	universeInternal := make(map[string]int, len(universeDefs))
	for i, def := range universeDefs {
		universeInternal[def.ID] = i
	}
	parentOf := make(map[int]int) // fill universe internal id -> filling cell internal id

	var materialsModule *material.Module
	hasMaterials := false
	if ctx != nil {
		if m, err := environment.ContextModule[*material.Module](ctx, material.ModuleName); err == nil {
			materialsModule = m
			hasMaterials = true
		}
	}

	cellsByID := make(map[string]*Cell, len(cellDefs))
	for cellInternalID, def := range cellDefs {
		senses := make([]SenseEntry, len(def.Senses))
		for i, ref := range def.Senses {
			sid, ok := surfaceInternal[ref.SurfaceUserID]
			if !ok {
				return nil, fmt.Errorf("geometry: cell %q references unknown surface %q", def.ID, ref.SurfaceUserID)
			}
			senses[i] = SenseEntry{SurfaceInternalID: sid, Sign: ref.Sign}
		}

		var fill *int
		if def.FillUserID != "" {
			uid, ok := universeInternal[def.FillUserID]
			if !ok {
				return nil, fmt.Errorf("geometry: cell %q references unknown fill universe %q", def.ID, def.FillUserID)
			}
			fill = &uid
			parentOf[uid] = cellInternalID
		}

		var materialID *int
		if def.MaterialUserID != "" {
			if !hasMaterials {
				return nil, fmt.Errorf("geometry: cell %q references material %q but the Materials module is not set up", def.ID, def.MaterialUserID)
			}
			mats, err := materialsModule.GetObjects(def.MaterialUserID)
			if err != nil {
				return nil, fmt.Errorf("geometry: cell %q: %w", def.ID, err)
			}
			id := cellInternalID // a cell carries at most one material, so its own internal id doubles as the material-binding key
			materialID = &id
			mod.cellMaterial[cellInternalID] = mats[0]
		}

		cell, err := NewCell(def.ID, senses, fill, materialID)
		if err != nil {
			return nil, err
		}
		cell.SetInternalID(cellInternalID)
		cellsByID[def.ID] = cell
	}

	for i, def := range universeDefs {
		cells := make([]*Cell, len(def.CellUserIDs))
		for j, cid := range def.CellUserIDs {
			cell, ok := cellsByID[cid]
			if !ok {
				return nil, fmt.Errorf("geometry: universe %q references unknown cell %q", def.ID, cid)
			}
			cells[j] = cell
		}
		var parent *int
		if pc, ok := parentOf[i]; ok {
			parent = &pc
		}
		u := NewUniverse(def.ID, cells, parent)
		u.SetInternalID(i)
		mod.universes[i] = u
		if def.ID == RootUniverseUserID {
			mod.root = u
		}
		log.WithFields(logrus.Fields{"user_id": def.ID, "internal_id": i}).Debug("staged universe")
	}

	if mod.root == nil {
		return nil, fmt.Errorf("geometry: no universe staged with the root user id %q", RootUniverseUserID)
	}

	return mod, nil
}

func buildSurface(def SurfaceDefinition) (Surface, error) {
	switch def.Kind {
	case "sphere":
		return NewSphere(def.ID, def.Flags, def.Coeffs)
	case "plane":
		return NewPlane(def.ID, def.Flags, def.Coeffs)
	case "plane_on_axis":
		return NewPlaneOnAxis(def.ID, def.Axis, def.Flags, def.Coeffs)
	case "cylinder_on_axis":
		return NewCylinderOnAxis(def.ID, def.Axis, def.Flags, def.Coeffs)
	case "quadric":
		return NewGeneralQuadric(def.ID, def.Flags, def.Coeffs)
	default:
		return nil, fmt.Errorf("geometry: unrecognized surface kind %q for %q", def.Kind, def.ID)
	}
}
