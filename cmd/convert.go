// =============================================================================
// H2K to HPXML Translator - Convert Command
// =============================================================================
//
// Defines the 'convert' command: translates one H2K file, or every file in
// the configured input directory, into HPXML.
//
// COMMAND USAGE:
//   h2khpxml convert <file>        - Convert a single file
//   h2khpxml convert --batch       - Convert the whole input directory
//
// FLAGS:
//   --batch       : Convert every .h2k/.xml file in the input directory
//   --report      : Write an XLSX batch summary next to the outputs
//   --mode        : Translation mode override (SOC or ASHRAE140)
//   --test-wall   : Append the fixed debugging wall to every enclosure
//   --archive     : Move successfully converted inputs into this directory
//
// PIPELINE:
//   1. Load configuration and mapping tables
//   2. Build the weather resolver over the local EPW cache
//   3. Translate each file (concurrently in batch mode)
//   4. Write outputs, warnings log and optional report
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/h2ktools/h2k-to-hpxml-conversion/internal/batch"
	"github.com/h2ktools/h2k-to-hpxml-conversion/internal/report"
	"github.com/h2ktools/h2k-to-hpxml-conversion/internal/translate"
	"github.com/h2ktools/h2k-to-hpxml-conversion/internal/weather"
	"github.com/h2ktools/h2k-to-hpxml-conversion/pkg/utils"
)

const summaryRounding = time.Millisecond

var (
	batchMode   bool
	writeReport bool
	modeFlag    string
	testWall    bool
	archiveDir  string
)

var convertCmd = &cobra.Command{
	Use:   "convert [file]",
	Short: "Convert H2K files to HPXML",
	Long: `Convert translates HOT2000 building models into HPXML documents.

With a file argument it converts that single file. With --batch it discovers
every .h2k/.xml file in the configured input directory and converts them
concurrently, isolating failures per file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if modeFlag != "" {
		cfg.Translation.Mode = modeFlag
	}
	if testWall {
		cfg.Translation.AddTestWall = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if !batchMode && len(args) == 0 {
		return fmt.Errorf("either a file argument or --batch is required")
	}

	resolver := weather.NewService(cfg.WeatherDir)
	translator, err := translate.New(resolver)
	if err != nil {
		return err
	}
	driver := batch.New(translator, cfg)
	if cfg.LogFile != "" {
		logger, closer, err := batch.NewFileLogger(cfg.LogFile, cfg.LogLevel)
		if err != nil {
			return err
		}
		defer closer.Close()
		driver.SetLogger(logger)
	}

	inputs := args
	if batchMode {
		inputs, err = batch.DiscoverInputs(cfg.InputDir)
		if err != nil {
			return err
		}
		if len(inputs) == 0 {
			fmt.Printf("No input files found in %s\n", cfg.InputDir)
			return nil
		}
	}

	if err := utils.EnsureDirs(cfg.OutputDir); err != nil {
		return err
	}

	summary := driver.Run(context.Background(), inputs)
	printSummary(summary)

	var warnings []utils.WarningEntry
	for _, r := range summary.Results {
		for _, w := range r.Warnings {
			warnings = append(warnings, utils.WarningEntry{
				Input:   filepath.Base(r.Input),
				Message: w.Message,
			})
		}
	}
	if path, err := utils.WriteWarningsLog(cfg.OutputDir, summary.RunID, warnings); err != nil {
		return err
	} else if path != "" {
		fmt.Printf("Warnings:  %s\n", path)
	}

	if archiveDir != "" {
		for _, r := range summary.Results {
			if r.Err != nil {
				continue
			}
			if _, err := utils.ArchiveFile(r.Input, archiveDir); err != nil {
				return fmt.Errorf("archiving %s: %w", r.Input, err)
			}
		}
	}

	if writeReport {
		reportPath := filepath.Join(cfg.OutputDir, summary.RunID+"_summary.xlsx")
		if err := report.Write(reportPath, summary); err != nil {
			return err
		}
		fmt.Printf("Report:    %s\n", reportPath)
	}

	if summary.Failed > 0 {
		os.Exit(1)
	}
	return nil
}

func printSummary(summary *batch.Summary) {
	fmt.Printf("Run:       %s\n", summary.RunID)
	fmt.Printf("Converted: %d succeeded, %d failed in %s\n",
		summary.Succeeded, summary.Failed, summary.Duration.Round(summaryRounding))
	for _, r := range summary.Results {
		if r.Err != nil {
			fmt.Printf("  FAIL %s: %v\n", filepath.Base(r.Input), r.Err)
		} else if verbose {
			fmt.Printf("  ok   %s -> %s (%d warnings)\n",
				filepath.Base(r.Input), filepath.Base(r.Output), len(r.Warnings))
		}
	}
}

func init() {
	convertCmd.Flags().BoolVar(&batchMode, "batch", false,
		"Convert every input file in the configured input directory")
	convertCmd.Flags().BoolVar(&writeReport, "report", false,
		"Write an XLSX batch summary workbook")
	convertCmd.Flags().StringVar(&modeFlag, "mode", "",
		"Translation mode override (SOC or ASHRAE140)")
	convertCmd.Flags().BoolVar(&testWall, "test-wall", false,
		"Append the fixed debugging wall to every enclosure")
	convertCmd.Flags().StringVar(&archiveDir, "archive", "",
		"Move successfully converted inputs into this directory")

	rootCmd.AddCommand(convertCmd)
}
