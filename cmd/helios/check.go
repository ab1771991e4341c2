package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mohamed3ma/helios/geometry"
	"github.com/mohamed3ma/helios/material"
	"github.com/mohamed3ma/helios/settings"
	"github.com/mohamed3ma/helios/source"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate a problem file without running it.",
	Long: `check stages and sets up every module for the problem file passed
with --problem (Settings, Source, Materials, Geometry in that order) and
reports success or the first setup error, the way a dry run would.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.GetString("problem")
		if path == "" {
			return fmt.Errorf("helios: check requires --problem")
		}
		env, _, err := buildEnvironment(path)
		if err != nil {
			return err
		}
		for _, name := range []string{settings.ModuleName, source.ModuleName, material.ModuleName, geometry.ModuleName} {
			status := "not set up (no staged objects)"
			if env.IsModuleSet(name) {
				status = "ok"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", name, status)
		}
		return nil
	},
	DisableAutoGenTag: true,
}
