package settings_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohamed3ma/helios/environment"
	"github.com/mohamed3ma/helios/settings"
)

func TestFactoryWithNoStagedObjectsFallsBackToDefault(t *testing.T) {
	mod, err := settings.Factory(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, settings.Default(), mod.(*settings.Module).Config())
}

func TestFactoryCoercesLooselyTypedValues(t *testing.T) {
	objs := []environment.ObjectDefinition{
		settings.Definition{
			ID: "run",
			Values: map[string]interface{}{
				"seed":              "7",
				"histories":         2000,
				"surface_tolerance": float32(1e-8),
			},
		},
	}

	mod, err := settings.Factory(nil, objs)
	require.NoError(t, err)

	cfg := mod.(*settings.Module).Config()
	assert.Equal(t, uint64(7), cfg.Seed)
	assert.Equal(t, int64(2000), cfg.Histories)
	assert.InDelta(t, 1e-8, cfg.SurfaceTolerance, 1e-12)
}

func TestFactoryFailsOnUncoercibleValue(t *testing.T) {
	objs := []environment.ObjectDefinition{
		settings.Definition{
			ID:     "run",
			Values: map[string]interface{}{"seed": "not-a-number"},
		},
	}

	_, err := settings.Factory(nil, objs)
	assert.Error(t, err)
}
