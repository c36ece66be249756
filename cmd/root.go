// =============================================================================
// H2K to HPXML Translator - Root Command
// =============================================================================
//
// Defines the root command of the Cobra CLI.
//
// COBRA CLI STRUCTURE:
//   rootCmd (h2khpxml)
//   ├── convertCmd (h2khpxml convert)
//   ├── runCmd     (h2khpxml run)
//   └── versionCmd (h2khpxml version)
//
// The root command owns the global flags (--config, --verbose) and loads the
// application configuration for the subcommands.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/h2ktools/h2k-to-hpxml-conversion/internal/config"
)

// cfgFile holds the path to the configuration file, overridable with
// --config.
var cfgFile string

// verbose enables verbose output.
var verbose bool

// rootCmd is the base command all subcommands attach to.
var rootCmd = &cobra.Command{
	Use:   "h2khpxml",
	Short: "H2K to HPXML Translator - Convert HOT2000 building models to HPXML",

	Long: `h2khpxml converts HOT2000 (H2K) residential building-energy models
into HPXML documents and drives the OpenStudio-HPXML workflow over the
results.

Key Features:
  - Declarative field-mapping tables for H2K value extraction
  - Deterministic, byte-stable HPXML output
  - Batch conversion with per-file failure isolation
  - Weather station resolution with a local EPW cache
  - Optional XLSX batch summary reports

Example Usage:
  h2khpxml convert house.h2k               # Convert a single file
  h2khpxml convert --batch                 # Convert the whole input directory
  h2khpxml run --output-dir ./sim out.xml  # Simulate a converted document
  h2khpxml convert --config ./my.yaml --batch --report`,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig loads the configuration named by --config.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}
