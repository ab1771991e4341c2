package material

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/mohamed3ma/helios/ace"
	"github.com/mohamed3ma/helios/environment"
)

// ModuleName is the fixed name materials register and stage objects under
// (§4.G "Settings → Source distributions → Materials → Geometry").
const ModuleName = "materials"

var log = logrus.WithField("module", ModuleName)

// NuclideDefinition stages a loaded ACE table under a nuclide user id.
type NuclideDefinition struct {
	ID    string
	Table *ace.Table
}

func (d NuclideDefinition) ModuleName() string { return ModuleName }
func (d NuclideDefinition) UserID() string      { return d.ID }

// MaterialDefinition stages a material's density and nuclide composition.
type MaterialDefinition struct {
	ID          string
	Density     float64
	Composition []Composition
}

func (d MaterialDefinition) ModuleName() string { return ModuleName }
func (d MaterialDefinition) UserID() string      { return d.ID }

// Module is the materials module: an index of resolved nuclides plus the
// materials built on top of them, keyed by user id (§4.F, §4.G).
type Module struct {
	nuclides  map[string]*Nuclide
	materials map[string][]*Material // multiple materials may share a user id
}

func (m *Module) Name() string { return ModuleName }

// Nuclide returns the loaded nuclide for userID, if any.
func (m *Module) Nuclide(userID string) (*Nuclide, error) {
	n, ok := m.nuclides[userID]
	if !ok {
		return nil, MaterialResolutionError{NuclideID: userID, Reason: "no ACE table staged under this user id"}
	}
	return n, nil
}

// GetObjects implements environment.Indexed[*Material] (§4.G
// "getObject<M,O>"): materials sharing a user id across universes is
// legal, so this always returns the full slice for that id.
func (m *Module) GetObjects(userID string) ([]*Material, error) {
	mats, ok := m.materials[userID]
	if !ok || len(mats) == 0 {
		return nil, environment.ObjectMissing{Module: ModuleName, UserID: userID}
	}
	return mats, nil
}

// Factory builds the materials module (§4.G step 3): every
// NuclideDefinition becomes a Nuclide first, since MaterialDefinition
// resolution depends on the nuclide index being complete.
func Factory(ctx *environment.SetupContext, objects []environment.ObjectDefinition) (environment.Module, error) {
	mod := &Module{
		nuclides:  make(map[string]*Nuclide),
		materials: make(map[string][]*Material),
	}

	var materialDefs []MaterialDefinition
	for _, obj := range objects {
		switch def := obj.(type) {
		case NuclideDefinition:
			n, err := NewNuclide(def.ID, def.Table)
			if err != nil {
				return nil, err
			}
			mod.nuclides[def.ID] = n
			log.WithField("user_id", def.ID).Debug("loaded nuclide")
		case MaterialDefinition:
			materialDefs = append(materialDefs, def)
		default:
			return nil, fmt.Errorf("material: unrecognized object definition %T", obj)
		}
	}

	for _, def := range materialDefs {
		mat := NewMaterial(def.ID, def.Density, def.Composition)
		if err := mat.Resolve(mod.Nuclide); err != nil {
			return nil, err
		}
		mod.materials[def.ID] = append(mod.materials[def.ID], mat)
		log.WithField("user_id", def.ID).Debug("resolved material")
	}

	_ = ctx // materials has no peer-module dependency at setup time
	return mod, nil
}
