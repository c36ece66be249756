// =============================================================================
// H2K to HPXML Translator - Run Command
// =============================================================================
//
// Defines the 'run' command: hands a translated HPXML document to the
// external OpenStudio-HPXML workflow and prints the annual end-use summary
// from the result database.
//
// COMMAND USAGE:
//   h2khpxml run <hpxml-file> [flags]
//
// FLAGS:
//   --output-dir  : Directory for engine output (default from config)
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/h2ktools/h2k-to-hpxml-conversion/internal/runner"
	"github.com/h2ktools/h2k-to-hpxml-conversion/pkg/utils"
)

var runOutputDir string

var runCmd = &cobra.Command{
	Use:   "run <hpxml-file>",
	Short: "Simulate a translated HPXML document",
	Long: `Run invokes the configured OpenStudio-HPXML workflow on a translated
document and prints the annual end-use summary when the engine leaves a
result database behind.`,
	Args: cobra.ExactArgs(1),
	RunE: runSimulation,
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	outputDir := runOutputDir
	if outputDir == "" {
		outputDir = cfg.OutputDir
	}

	r := runner.New(cfg.Simulation)
	result, err := r.Run(context.Background(), args[0], outputDir)
	if err != nil {
		return err
	}
	fmt.Printf("Simulated %s in %s\n", filepath.Base(result.HPXMLPath),
		result.Duration.Round(summaryRounding))

	dbPath := filepath.Join(result.OutputDir, "results.db")
	if !utils.FileExists(dbPath) {
		fmt.Println("No result database found; engine output kept in", result.OutputDir)
		return nil
	}

	uses, err := runner.ReadEndUses(dbPath)
	if err != nil {
		return err
	}
	totals := runner.TotalByFuel(uses)
	fuels := make([]string, 0, len(totals))
	for fuel := range totals {
		fuels = append(fuels, fuel)
	}
	sort.Strings(fuels)
	for _, fuel := range fuels {
		fmt.Printf("  %-14s %.1f MBtu\n", fuel, totals[fuel])
	}
	return nil
}

func init() {
	runCmd.Flags().StringVar(&runOutputDir, "output-dir", "",
		"Directory for engine output (defaults to the configured output dir)")

	rootCmd.AddCommand(runCmd)
}
