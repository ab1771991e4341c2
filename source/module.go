package source

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/mohamed3ma/helios/environment"
)

// ModuleName is the fixed name sources register and stage objects under
// (§4.G "Settings → Source distributions → Materials → Geometry").
const ModuleName = "source"

var log = logrus.WithField("module", ModuleName)

// DistributionDefinition stages a reusable (position, direction, energy)
// distribution under a user id.
type DistributionDefinition struct {
	ID           string
	Distribution *Distribution
}

func (d DistributionDefinition) ModuleName() string { return ModuleName }
func (d DistributionDefinition) UserID() string      { return d.ID }

// SourceDefinition stages a source's weighted list of distribution
// references.
type SourceDefinition struct {
	ID      string
	Entries []Entry
}

func (d SourceDefinition) ModuleName() string { return ModuleName }
func (d SourceDefinition) UserID() string      { return d.ID }

// Module is the source module: every distribution staged plus every
// source built on top of them, keyed by user id.
type Module struct {
	distributions map[string]*Distribution
	sources       map[string][]*Source
}

func (m *Module) Name() string { return ModuleName }

// GetObjects implements environment.Indexed[*Source].
func (m *Module) GetObjects(userID string) ([]*Source, error) {
	srcs, ok := m.sources[userID]
	if !ok || len(srcs) == 0 {
		return nil, environment.ObjectMissing{Module: ModuleName, UserID: userID}
	}
	return srcs, nil
}

// Factory builds the source module (§4.G step 3): distributions are
// indexed first, since a SourceDefinition's entries reference them by id.
func Factory(ctx *environment.SetupContext, objects []environment.ObjectDefinition) (environment.Module, error) {
	mod := &Module{
		distributions: make(map[string]*Distribution),
		sources:       make(map[string][]*Source),
	}

	var sourceDefs []SourceDefinition
	for _, obj := range objects {
		switch def := obj.(type) {
		case DistributionDefinition:
			mod.distributions[def.ID] = def.Distribution
			log.WithField("user_id", def.ID).Debug("staged distribution")
		case SourceDefinition:
			sourceDefs = append(sourceDefs, def)
		default:
			return nil, fmt.Errorf("source: unrecognized object definition %T", obj)
		}
	}

	for _, def := range sourceDefs {
		src, err := NewSource(def.ID, def.Entries, mod.distributions)
		if err != nil {
			return nil, err
		}
		mod.sources[def.ID] = append(mod.sources[def.ID], src)
		log.WithField("user_id", def.ID).Debug("resolved source")
	}

	_ = ctx // source has no peer-module dependency at setup time
	return mod, nil
}
