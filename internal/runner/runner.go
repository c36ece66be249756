// =============================================================================
// H2K to HPXML Translator - Simulation Runner
// =============================================================================
//
// Invokes the external OpenStudio-HPXML workflow on a translated document.
// The engine is an opaque external process: this module hands it a file path
// and flags, enforces the configured timeout, and captures its output for
// diagnostics. Reading the result database lives in results.go.
//
// =============================================================================

package runner

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/h2ktools/h2k-to-hpxml-conversion/internal/config"
)

// Result describes one completed simulation run.
type Result struct {
	HPXMLPath string
	OutputDir string
	Stdout    string
	Stderr    string
	Duration  time.Duration
}

// Runner launches simulation processes.
type Runner struct {
	cfg config.Simulation
}

// New returns a runner for the configured engine.
func New(cfg config.Simulation) *Runner {
	return &Runner{cfg: cfg}
}

// Run simulates one HPXML file, writing engine output under outputDir. The
// context bounds the whole run on top of the configured timeout.
func (r *Runner) Run(ctx context.Context, hpxmlPath, outputDir string) (*Result, error) {
	if _, err := os.Stat(hpxmlPath); err != nil {
		return nil, fmt.Errorf("hpxml input: %w", err)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}

	if r.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(r.cfg.Timeout)*time.Second)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, r.cfg.RubyBin, r.cfg.WorkflowPath,
		"-x", hpxmlPath,
		"-o", outputDir,
		"--hourly", "ALL",
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	result := &Result{
		HPXMLPath: hpxmlPath,
		OutputDir: outputDir,
		Stdout:    stdout.String(),
		Stderr:    stderr.String(),
		Duration:  time.Since(start),
	}
	if err != nil {
		if ctx.Err() != nil {
			return result, fmt.Errorf("simulation timed out after %s: %w", result.Duration, ctx.Err())
		}
		return result, fmt.Errorf("simulation failed: %w\n%s", err, stderr.String())
	}
	return result, nil
}
