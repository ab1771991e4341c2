package settings

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"

	"github.com/mohamed3ma/helios/environment"
)

// ModuleName is the fixed name the Settings module registers and stages
// objects under (first in §4.G's dependency order).
const ModuleName = "settings"

var log = logrus.WithField("module", ModuleName)

// Definition stages a settings object parsed from the (out of scope)
// input grammar as a generic key/value map, the same loosely-typed shape
// the original's McObject gives every parsed object. Values read out of
// it are coerced with spf13/cast, exactly as inmaputil/cmd.go coerces
// flag values into VarGridConfig fields.
type Definition struct {
	ID     string
	Values map[string]interface{}
}

func (d Definition) ModuleName() string { return ModuleName }
func (d Definition) UserID() string      { return d.ID }

// Module is the constructed Settings module: just the resolved Config,
// looked up by peer-module factories through environment.GetModule.
type Module struct {
	cfg Config
}

func (m *Module) Name() string   { return ModuleName }
func (m *Module) Config() Config { return m.cfg }

// Factory builds Settings from zero or more staged Definitions, layering
// each one's Values over the running Config in staging order. With no
// staged Definition at all, Settings falls back to Default().
func Factory(ctx *environment.SetupContext, objects []environment.ObjectDefinition) (environment.Module, error) {
	cfg := Default()

	for _, obj := range objects {
		def, ok := obj.(Definition)
		if !ok {
			return nil, fmt.Errorf("settings: unrecognized object definition %T", obj)
		}
		if err := applyValues(&cfg, def.Values); err != nil {
			return nil, fmt.Errorf("settings %q: %w", def.ID, err)
		}
		log.WithField("user_id", def.ID).Debug("applied settings")
	}

	_ = ctx // Settings is first in setup order and depends on no peer module
	return &Module{cfg: cfg}, nil
}

func applyValues(cfg *Config, values map[string]interface{}) error {
	if v, ok := values["surface_tolerance"]; ok {
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return fmt.Errorf("surface_tolerance: %w", err)
		}
		cfg.SurfaceTolerance = f
	}
	if v, ok := values["nudge_epsilon"]; ok {
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return fmt.Errorf("nudge_epsilon: %w", err)
		}
		cfg.NudgeEpsilon = f
	}
	if v, ok := values["seed"]; ok {
		u, err := cast.ToUint64E(v)
		if err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		cfg.Seed = u
	}
	if v, ok := values["histories"]; ok {
		i, err := cast.ToInt64E(v)
		if err != nil {
			return fmt.Errorf("histories: %w", err)
		}
		cfg.Histories = i
	}
	return nil
}
