// Package settings implements the Settings module (§4.G): the run
// parameters every other module is built against, loaded from a TOML file
// (Load) or from staged key/value Definitions (Factory). The Config fields
// are not bound to CLI flags; cmd/helios passes overrides in as a staged
// Definition decoded from its --config TOML file.
package settings

import (
	"bufio"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds the run parameters Settings supplies to the rest of the
// environment: geometry tolerances, the RNG seed, and the history count.
type Config struct {
	// SurfaceTolerance is the near-boundary threshold handed to the
	// navigator (Navigator.SurfaceTolerance, §4.D). Surface intersection
	// queries do not read it; they use geometry.DefaultSurfaceTolerance.
	SurfaceTolerance float64

	// NudgeEpsilon is the distance a particle is pushed along its
	// direction after a crossing, so the next DistanceToNext call does
	// not immediately re-hit the surface just crossed (§4.D).
	NudgeEpsilon float64

	// Seed is the global RNG seed every history's stream is derived from
	// (§5).
	Seed uint64

	// Histories is the number of particle histories a run should
	// simulate.
	Histories int64
}

// fileConfig is the TOML decoding target, kept separate from Config so
// zero-valued fields left out of a config file can be told apart from a
// deliberate zero (mirrors the teacher's ConfigData/VarGridConfig split
// in inmap/cmd/config.go).
type fileConfig struct {
	SurfaceTolerance *float64
	NudgeEpsilon     *float64
	Seed             *uint64
	Histories        *int64
}

// Default returns the conservative defaults used when a run supplies no
// configuration file or staged Settings object at all.
func Default() Config {
	return Config{
		SurfaceTolerance: 1e-10,
		NudgeEpsilon:     1e-8,
		Seed:             1,
		Histories:        1000,
	}
}

// Load reads and parses a TOML configuration file, overlaying any fields
// it sets onto the defaults. Missing fields keep their default value,
// the same "what's not there stays at a sane default" behavior the
// teacher's ReadConfigFile degrades to.
func Load(filename string) (Config, error) {
	cfg := Default()

	file, err := os.Open(filename)
	if err != nil {
		return Config{}, fmt.Errorf("settings: the configuration file you have specified, %v, does not "+
			"appear to exist: %v", filename, err)
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	raw, err := ioutil.ReadAll(reader)
	if err != nil {
		return Config{}, fmt.Errorf("settings: problem reading configuration file: %v", err)
	}

	var fc fileConfig
	if _, err := toml.Decode(string(raw), &fc); err != nil {
		return Config{}, fmt.Errorf("settings: there has been an error parsing the configuration file: %v", err)
	}

	if fc.SurfaceTolerance != nil {
		cfg.SurfaceTolerance = *fc.SurfaceTolerance
	}
	if fc.NudgeEpsilon != nil {
		cfg.NudgeEpsilon = *fc.NudgeEpsilon
	}
	if fc.Seed != nil {
		cfg.Seed = *fc.Seed
	}
	if fc.Histories != nil {
		cfg.Histories = *fc.Histories
	}
	return cfg, nil
}
