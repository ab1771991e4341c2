package material_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohamed3ma/helios/environment"
	"github.com/mohamed3ma/helios/material"
)

func TestFactoryResolvesMaterialsAgainstStagedNuclides(t *testing.T) {
	objs := []environment.ObjectDefinition{
		material.NuclideDefinition{ID: "H1", Table: buildHydrogenTable(t)},
		material.MaterialDefinition{
			ID:      "water",
			Density: 0.1,
			Composition: []material.Composition{
				{NuclideUserID: "H1", AtomicFraction: 2},
			},
		},
	}

	mod, err := material.Factory(nil, objs)
	require.NoError(t, err)

	materials, err := mod.(*material.Module).GetObjects("water")
	require.NoError(t, err)
	require.Len(t, materials, 1)

	sigma, err := materials[0].MacroscopicXS(material.ReactionTotal, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0.1*2*2, sigma, 1e-9)
}

func TestFactoryFailsOnUnresolvedComposition(t *testing.T) {
	objs := []environment.ObjectDefinition{
		material.MaterialDefinition{
			ID:      "water",
			Density: 0.1,
			Composition: []material.Composition{
				{NuclideUserID: "missing", AtomicFraction: 1},
			},
		},
	}

	_, err := material.Factory(nil, objs)
	require.Error(t, err)
	assert.IsType(t, material.MaterialResolutionError{}, err)
}

func TestGetObjectsReportsObjectMissing(t *testing.T) {
	mod, err := material.Factory(nil, nil)
	require.NoError(t, err)

	_, err = mod.(*material.Module).GetObjects("nothing")
	require.Error(t, err)
	assert.IsType(t, environment.ObjectMissing{}, err)
}
