// Package cmd defines the command-line interface for chronometrist.
package cmd

import (
	"github.com/huangsam/chronometrist/internal/contract"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add subcommands to the root command
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().Bool("enabled", true, "Record and print timelines at all")
	rootCmd.PersistentFlags().Int("log-threshold", contract.DefaultLogThreshold, "Minimum request duration in ms before a timeline is printed")
	rootCmd.PersistentFlags().Int("width", 0, "Screen width override (0 = auto-detect)")
	rootCmd.PersistentFlags().Int("red-threshold", contract.DefaultRedThreshold, "Stage duration in ms above which a bar is red")
	rootCmd.PersistentFlags().Int("yellow-threshold", contract.DefaultYellowThreshold, "Stage duration in ms above which a bar is yellow")
	rootCmd.PersistentFlags().Int("total-red-threshold", contract.DefaultTotalRedThreshold, "Request duration in ms above which the total is red")
	rootCmd.PersistentFlags().Int("total-yellow-threshold", contract.DefaultTotalYellowThreshold, "Request duration in ms above which the total is yellow")
	rootCmd.PersistentFlags().Int("round-to", contract.DefaultRoundTo, "Rounding granularity in ms")
	rootCmd.PersistentFlags().String("skip-status", "", "Comma-separated status codes whose timelines are never printed")
	rootCmd.PersistentFlags().String("hide-keys", "", "Comma-separated annotation keys to leave out of event lines")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of renderCmd to Viper
	renderCmd.Flags().Bool("force", false, "Print every trace, ignoring the log threshold and skip rules")
	if err := viper.BindPFlags(renderCmd.Flags()); err != nil {
		contract.LogFatal("Error binding render flags", err)
	}

	// Bind all flags of serveCmd to Viper
	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
	if err := viper.BindPFlags(serveCmd.Flags()); err != nil {
		contract.LogFatal("Error binding serve flags", err)
	}
}
