package main

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mohamed3ma/helios/environment"
	"github.com/mohamed3ma/helios/geometry"
	"github.com/mohamed3ma/helios/material"
	"github.com/mohamed3ma/helios/settings"
	"github.com/mohamed3ma/helios/source"
	"github.com/mohamed3ma/helios/transport"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a transport simulation from a problem file.",
	Long: `run builds the modular environment (§4.G) described by the file
passed with --problem and drives the configured number of particle
histories through it, terminating each one on a geometry failure or after
100000 surface crossings. Vacuum flags on surfaces are not acted on; a
particle leaving the outermost bounded cell ends on a geometry failure.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.GetString("problem")
		if path == "" {
			return fmt.Errorf("helios: run requires --problem")
		}
		return runProblem(path, cmd.OutOrStdout())
	},
	DisableAutoGenTag: true,
}

// buildEnvironment registers every module factory and stages the problem
// file's objects, returning the set-up environment and the source user id
// the run should fire from.
func buildEnvironment(path string) (*environment.Environment, string, error) {
	env := environment.New()
	env.RegisterFactory(settings.ModuleName, settings.Factory)
	env.RegisterFactory(source.ModuleName, source.Factory)
	env.RegisterFactory(material.ModuleName, material.Factory)
	env.RegisterFactory(geometry.ModuleName, geometry.Factory)

	runSource, err := LoadProblem(path, env)
	if err != nil {
		return nil, "", err
	}

	if configPath := cfg.GetString("config"); configPath != "" {
		raw, err := os.ReadFile(configPath)
		if err != nil {
			return nil, "", fmt.Errorf("helios: config file %q: %v", configPath, err)
		}
		var values map[string]interface{}
		if _, err := toml.Decode(string(raw), &values); err != nil {
			return nil, "", fmt.Errorf("helios: parsing config file %q: %v", configPath, err)
		}
		env.PushObject(settings.Definition{ID: "override", Values: values})
	}

	if err := env.Setup(); err != nil {
		return nil, "", err
	}
	return env, runSource, nil
}

func runProblem(path string, out io.Writer) error {
	env, runSource, err := buildEnvironment(path)
	if err != nil {
		return err
	}

	settingsModule, err := environment.GetModule[*settings.Module](env, settings.ModuleName)
	if err != nil {
		return fmt.Errorf("helios: run requires a Settings module: %w", err)
	}
	runCfg := settingsModule.Config()

	geomModule, err := environment.GetModule[*geometry.Module](env, geometry.ModuleName)
	if err != nil {
		return fmt.Errorf("helios: run requires a Geometry module: %w", err)
	}
	nav := geomModule.Navigator(runCfg.SurfaceTolerance, runCfg.NudgeEpsilon)
	driver := transport.NewDriver(nav)

	sourceModule, err := environment.GetModule[*source.Module](env, source.ModuleName)
	if err != nil {
		return fmt.Errorf("helios: run requires a Source module: %w", err)
	}
	srcs, err := sourceModule.GetObjects(runSource)
	if err != nil {
		return fmt.Errorf("helios: run source %q: %w", runSource, err)
	}
	src := srcs[0]

	terminated := map[transport.FailureCode]int64{}
	for h := int64(0); h < runCfg.Histories; h++ {
		terminated[birthAndTransport(h, runCfg.Seed, src, driver)]++
	}

	for code, count := range terminated {
		fmt.Fprintf(out, "%s: %d\n", code, count)
	}
	logrus.WithField("histories", runCfg.Histories).Info("run complete")
	return nil
}

// birthAndTransport samples one history's birth event, places it in the
// geometry, and steps it until it terminates (§5 data flow: driver
// queries the navigator repeatedly during each particle history).
func birthAndTransport(historyIndex int64, seed uint64, src *source.Source, driver *transport.Driver) transport.FailureCode {
	p := transport.NewParticle(historyIndex, seed, nil, 0, 1.0)

	birth, err := src.SampleParticle(p.RNG, nil)
	if err != nil {
		p.Terminate(transport.FailureUnknown, err)
		return p.Failure
	}
	p.Energy = birth.Energy

	driver.Birth(p, birth.Position, birth.Direction)
	for steps := 0; p.Alive() && steps < maxStepsPerHistory; steps++ {
		if _, ok := driver.Step(p); !ok {
			break
		}
	}
	return p.Failure
}

// maxStepsPerHistory bounds a history with no absorption physics (out of
// scope, §1) from looping forever through a closed reflecting geometry.
const maxStepsPerHistory = 100000
