package environment_test

import (
	"testing"

	"github.com/mohamed3ma/helios/environment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDef struct {
	module, id string
}

func (f fakeDef) ModuleName() string { return f.module }
func (f fakeDef) UserID() string     { return f.id }

type fakeModule struct {
	name    string
	objects map[string][]string
}

func (m fakeModule) Name() string { return m.name }

func (m fakeModule) GetObjects(userID string) ([]string, error) {
	return m.objects[userID], nil
}

// registerNoop registers a factory building an empty fakeModule for each
// name, so Setup finds a factory for every default-order module a test
// does not otherwise care about.
func registerNoop(env *environment.Environment, names ...string) {
	for _, name := range names {
		name := name
		env.RegisterFactory(name, func(ctx *environment.SetupContext, objs []environment.ObjectDefinition) (environment.Module, error) {
			return fakeModule{name: name}, nil
		})
	}
}

func TestSetupOrderSkipsUnusedModules(t *testing.T) {
	env := environment.New()
	registerNoop(env, "source", "geometry")
	var built []string
	env.RegisterFactory("settings", func(ctx *environment.SetupContext, objs []environment.ObjectDefinition) (environment.Module, error) {
		built = append(built, "settings")
		return fakeModule{name: "settings"}, nil
	})
	env.RegisterFactory("materials", func(ctx *environment.SetupContext, objs []environment.ObjectDefinition) (environment.Module, error) {
		built = append(built, "materials")
		return fakeModule{name: "materials"}, nil
	})
	env.PushObject(fakeDef{module: "settings", id: "default"})

	require.NoError(t, env.Setup())
	assert.Equal(t, []string{"settings"}, built)
	assert.True(t, env.IsModuleSet("settings"))
	assert.False(t, env.IsModuleSet("materials"))
}

func TestMissingFactoryAbortsSetup(t *testing.T) {
	env := environment.New()
	registerNoop(env, "settings", "source", "materials")
	env.PushObject(fakeDef{module: "geometry", id: "cell1"})
	err := env.Setup()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "geometry")
}

func TestGetModuleTypedLookup(t *testing.T) {
	env := environment.New()
	registerNoop(env, "settings", "source", "geometry")
	env.RegisterFactory("materials", func(ctx *environment.SetupContext, objs []environment.ObjectDefinition) (environment.Module, error) {
		return fakeModule{name: "materials", objects: map[string][]string{"water": {"h2o-table"}}}, nil
	})
	env.PushObject(fakeDef{module: "materials", id: "water"})
	require.NoError(t, env.Setup())

	mod, err := environment.GetModule[fakeModule](env, "materials")
	require.NoError(t, err)
	assert.Equal(t, "materials", mod.Name())

	_, err = environment.GetModule[fakeModule](env, "geometry")
	assert.ErrorAs(t, err, &environment.ModuleMissing{})
}

func TestGetObjectDelegatesToModuleIndex(t *testing.T) {
	env := environment.New()
	registerNoop(env, "settings", "source", "geometry")
	env.RegisterFactory("materials", func(ctx *environment.SetupContext, objs []environment.ObjectDefinition) (environment.Module, error) {
		return fakeModule{name: "materials", objects: map[string][]string{"water": {"h2o-table"}}}, nil
	})
	env.PushObject(fakeDef{module: "materials", id: "water"})
	require.NoError(t, env.Setup())

	objs, err := environment.GetObject[fakeModule, string](env, "materials", "water")
	require.NoError(t, err)
	assert.Equal(t, []string{"h2o-table"}, objs)

	_, err = environment.GetObject[fakeModule, string](env, "materials", "helium")
	assert.ErrorAs(t, err, &environment.ObjectMissing{})
}

func TestSetupContextExposesPeerModules(t *testing.T) {
	env := environment.New()
	registerNoop(env, "source", "geometry")
	env.RegisterFactory("settings", func(ctx *environment.SetupContext, objs []environment.ObjectDefinition) (environment.Module, error) {
		return fakeModule{name: "settings"}, nil
	})
	env.RegisterFactory("materials", func(ctx *environment.SetupContext, objs []environment.ObjectDefinition) (environment.Module, error) {
		_, err := environment.ContextModule[fakeModule](ctx, "settings")
		require.NoError(t, err)
		return fakeModule{name: "materials"}, nil
	})
	env.PushObjects(fakeDef{module: "settings", id: "default"}, fakeDef{module: "materials", id: "water"})
	require.NoError(t, env.Setup())
}
