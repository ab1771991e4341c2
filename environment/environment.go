// Package environment implements Helios's modular environment: a registry
// that discovers object definitions parsed from input, binds them to
// factories by module name, constructs modules in dependency order, and
// resolves cross-module user-identifier references at setup time.
//
// The original implementation (McEnvironment, see original_source/Environment)
// stores a back-pointer from every staged object to the environment so that,
// during factory construction, an object can query already-built peer
// modules. Helios replaces that mutable back-reference with an explicit
// SetupContext passed to each factory (see design note in SPEC_FULL.md §9).
package environment

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ObjectDefinition is a parsed input object, as produced by the (out of
// scope) input parser. Every definition declares which module it belongs
// to and a user-chosen identifier.
type ObjectDefinition interface {
	ModuleName() string
	UserID() string
}

// Module is anything the environment can construct from a batch of staged
// ObjectDefinitions and store under its module name.
type Module interface {
	Name() string
}

// Factory builds a Module from the objects staged for its module name. ctx
// lets the factory query already-constructed peer modules (e.g. Geometry
// asking for Materials) without the object needing a mutable reference back
// to the environment.
type Factory func(ctx *SetupContext, objects []ObjectDefinition) (Module, error)

// DefaultSetupOrder is the fixed dependency order from §4.G: Settings must
// exist before Source distributions are sampled, Materials needs its
// nuclides loaded before Geometry can resolve material references, and
// Geometry may in turn reference materials.
var DefaultSetupOrder = []string{"settings", "source", "materials", "geometry"}

// stagedObject pairs a definition with the UUID stamped on it when pushed.
// PushObject logs the token at Debug, so log output can tell two stagings
// of the same user id apart (see SPEC_FULL.md §12).
type stagedObject struct {
	def   ObjectDefinition
	token uuid.UUID
}

// Environment is the registry and staging area described in §4.G.
type Environment struct {
	order     []string
	factories map[string]Factory
	objects   map[string][]stagedObject
	modules   map[string]Module
	log       *logrus.Entry
}

// New creates an empty Environment using DefaultSetupOrder.
func New() *Environment {
	return NewWithOrder(DefaultSetupOrder)
}

// NewWithOrder creates an empty Environment that sets up modules in the
// given order. Every module in the order needs a registered factory; one
// with a factory but no staged objects is skipped.
func NewWithOrder(order []string) *Environment {
	return &Environment{
		order:     append([]string(nil), order...),
		factories: make(map[string]Factory),
		objects:   make(map[string][]stagedObject),
		modules:   make(map[string]Module),
		log:       logrus.WithField("component", "environment"),
	}
}

// RegisterFactory binds a module name to the factory that builds it. This
// plays the role of the original's static, init-order-dependent factory
// registration (§9 design note): callers invoke it explicitly, once, at
// environment construction.
func (e *Environment) RegisterFactory(name string, f Factory) {
	e.factories[name] = f
}

// PushObject stages a single parsed definition, routing it by its module
// name.
func (e *Environment) PushObject(def ObjectDefinition) {
	token := uuid.New()
	e.objects[def.ModuleName()] = append(e.objects[def.ModuleName()], stagedObject{def: def, token: token})
	e.log.WithFields(logrus.Fields{
		"module":  def.ModuleName(),
		"user_id": def.UserID(),
		"token":   token,
	}).Debug("staged object")
}

// PushObjects stages a sequence of parsed definitions.
func (e *Environment) PushObjects(defs ...ObjectDefinition) {
	for _, def := range defs {
		e.PushObject(def)
	}
}

// Setup constructs every module in dependency order. Each module in the
// order must have a registered factory, or Setup fails with
// MissingFactory; a module whose factory exists but which has no staged
// objects is skipped silently (considered unused). Setup aborts on the
// first error, tagged with the offending module name.
func (e *Environment) Setup() error {
	ctx := &SetupContext{env: e}
	for _, name := range e.order {
		if err := e.setupModule(ctx, name); err != nil {
			return err
		}
	}
	return nil
}

func (e *Environment) setupModule(ctx *SetupContext, name string) error {
	factory, ok := e.factories[name]
	if !ok {
		return MissingFactory{Name: name}
	}
	staged, ok := e.objects[name]
	if !ok || len(staged) == 0 {
		e.log.WithField("module", name).Debug("no staged objects, skipping")
		return nil
	}
	defs := make([]ObjectDefinition, len(staged))
	for i, s := range staged {
		defs[i] = s.def
	}
	mod, err := factory(ctx, defs)
	if err != nil {
		return fmt.Errorf("environment: setting up module %q: %w", name, err)
	}
	e.modules[name] = mod
	e.log.WithField("module", name).Info("module set up")
	return nil
}

// lookup returns the module set up under name. Go has no
// static-member-per-type mechanism, so GetModule below takes the name as
// an argument next to its type parameter instead of relying on reflection.
func (e *Environment) lookup(name string) (Module, bool) {
	m, ok := e.modules[name]
	return m, ok
}

// GetModule retrieves a previously set-up module by name and asserts it to
// type M, mirroring McEnvironment::getModule<Module>(). It fails with
// ModuleMissing if no module was set up under that name, or if the module
// under that name is not of type M.
func GetModule[M Module](e *Environment, name string) (M, error) {
	var zero M
	m, ok := e.lookup(name)
	if !ok {
		return zero, ModuleMissing{Name: name}
	}
	typed, ok := m.(M)
	if !ok {
		return zero, ModuleMissing{Name: name}
	}
	return typed, nil
}

// IsModuleSet reports whether a module was set up under the given name.
func (e *Environment) IsModuleSet(name string) bool {
	_, ok := e.modules[name]
	return ok
}

// Indexed is implemented by modules whose constructed objects can be
// looked up by user id. Cells sharing a user id across universes, or
// materials sharing a user id, legally return more than one object (Open
// Question (a), resolved in SPEC_FULL.md §13: GetObjects always returns a
// slice, and it is each module's own index that decides whether that
// slice ever has length > 1).
type Indexed[O any] interface {
	GetObjects(userID string) ([]O, error)
}

// GetObject retrieves the module named moduleName, asserts it implements
// Indexed[O], and delegates the user-id lookup to it — the Go analogue of
// McEnvironment::getObject<Module,Object>(id).
func GetObject[M Module, O any](e *Environment, moduleName, userID string) ([]O, error) {
	mod, err := GetModule[M](e, moduleName)
	if err != nil {
		return nil, err
	}
	idx, ok := any(mod).(Indexed[O])
	if !ok {
		return nil, fmt.Errorf("environment: module %q does not index objects of the requested type", moduleName)
	}
	objs, err := idx.GetObjects(userID)
	if err != nil {
		return nil, err
	}
	if len(objs) == 0 {
		return nil, ObjectMissing{Module: moduleName, UserID: userID}
	}
	return objs, nil
}

// SetupContext is handed to every Factory. It lets a module under
// construction query already-constructed peer modules without holding a
// mutable back-reference to the environment (§9 design note).
type SetupContext struct {
	env *Environment
}

// Module returns a previously set-up peer module by name.
func (c *SetupContext) Module(name string) (Module, bool) {
	return c.env.lookup(name)
}

// ContextModule retrieves and asserts a peer module from within a factory.
func ContextModule[M Module](c *SetupContext, name string) (M, error) {
	var zero M
	m, ok := c.Module(name)
	if !ok {
		return zero, ModuleMissing{Name: name}
	}
	typed, ok := m.(M)
	if !ok {
		return zero, ModuleMissing{Name: name}
	}
	return typed, nil
}
