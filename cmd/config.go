package cmd

import (
	"github.com/huangsam/chronometrist/internal/contract"
	"github.com/huangsam/chronometrist/internal/outwriter"
	"github.com/spf13/cobra"
)

// configCmd prints the resolved configuration.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display the effective configuration after merging all sources",
	Long: `Show every setting after defaults, the config file, CHRONOMETRIST_*
environment variables and flags have been merged and validated.

Examples:
  chronometrist config
  CHRONOMETRIST_WIDTH=120 chronometrist config --config .chronometrist.yaml`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := outwriter.PrintConfig(cfg); err != nil {
			contract.LogFatal("Cannot display configuration", err)
		}
	},
}
