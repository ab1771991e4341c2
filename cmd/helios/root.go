// Command helios is the command-line driver for the Helios Monte Carlo
// neutron transport core, in the shape of the teacher's cmd/inmap +
// inmaputil split: a thin main delegating to Cobra commands that bind
// their options through Viper.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cfg holds configuration information layered from flags and environment
// variables (HELIOS_ prefix), mirroring inmaputil.Cfg.
var cfg = viper.New()

func init() {
	cfg.SetEnvPrefix("HELIOS")
	cfg.AutomaticEnv()

	Root.PersistentFlags().String("problem", "", "path to the TOML problem file describing the run")
	Root.PersistentFlags().String("config", "", "path to a Settings TOML file overriding problem defaults")
	cfg.BindPFlag("problem", Root.PersistentFlags().Lookup("problem"))
	cfg.BindPFlag("config", Root.PersistentFlags().Lookup("config"))

	Root.AddCommand(versionCmd)
	Root.AddCommand(runCmd)
	Root.AddCommand(checkCmd)
	Root.AddCommand(dumpAceCmd)
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "helios",
	Short: "A Monte Carlo neutron transport core.",
	Long: `Helios builds a modular transport environment (geometry, nuclear
data, materials, and particle sources) from a TOML problem description and
drives particle histories through it.

Configuration can be changed with command-line flags, a TOML file passed
with --problem, or environment variables in the form HELIOS_<flag>.`,
	DisableAutoGenTag: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("helios v%s\n", version)
	},
	DisableAutoGenTag: true,
}

const version = "0.1.0"
