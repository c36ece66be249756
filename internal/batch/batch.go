// =============================================================================
// H2K to HPXML Translator - Batch Driver
// =============================================================================
//
// Fans a set of source files out over a worker pool of translations. Each
// file gets its own translation with independent state, so failures are
// isolated per file: the driver collects (input, output, warnings, error)
// rows and reports a summary instead of stopping the run.
//
// =============================================================================

package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/h2ktools/h2k-to-hpxml-conversion/internal/config"
	"github.com/h2ktools/h2k-to-hpxml-conversion/internal/translate"
)

// Result is the outcome of one file's translation.
type Result struct {
	Input    string
	Output   string
	Warnings []translate.Warning
	Err      error
	Duration time.Duration
}

// Summary aggregates a whole batch run.
type Summary struct {
	RunID     string
	Results   []Result
	Succeeded int
	Failed    int
	Duration  time.Duration
}

// Driver runs batches of translations.
type Driver struct {
	translator *translate.Translator
	cfg        *config.Config
	logger     Logger
}

// New returns a batch driver.
func New(translator *translate.Translator, cfg *config.Config) *Driver {
	return &Driver{
		translator: translator,
		cfg:        cfg,
		logger:     &defaultLogger{},
	}
}

// SetLogger replaces the driver's logger.
func (d *Driver) SetLogger(l Logger) {
	if l != nil {
		d.logger = l
	}
}

// DiscoverInputs lists the H2K source files under dir, sorted by name.
func DiscoverInputs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input dir %s: %w", dir, err)
	}
	var inputs []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext == ".h2k" || ext == ".xml" {
			inputs = append(inputs, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(inputs)
	return inputs, nil
}

// Run translates every input, writing outputs under the configured output
// directory. Results keep input order regardless of worker scheduling.
func (d *Driver) Run(ctx context.Context, inputs []string) *Summary {
	start := time.Now()
	summary := &Summary{
		RunID:   uuid.NewString(),
		Results: make([]Result, len(inputs)),
	}
	d.logger.Info("run %s: translating %d file(s) with %d worker(s)",
		summary.RunID, len(inputs), d.cfg.MaxConcurrency)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < d.cfg.MaxConcurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				summary.Results[i] = d.runOne(inputs[i])
				if summary.Results[i].Err != nil && !d.cfg.ContinueOnError {
					cancel()
				}
			}
		}()
	}

feed:
	for i := range inputs {
		select {
		case <-ctx.Done():
			for j := i; j < len(inputs); j++ {
				summary.Results[j] = Result{Input: inputs[j], Err: ctx.Err()}
			}
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	for _, r := range summary.Results {
		if r.Err != nil {
			summary.Failed++
			d.logger.Error("%s: %v", r.Input, r.Err)
		} else {
			summary.Succeeded++
			if len(r.Warnings) > 0 {
				d.logger.Warn("%s: %d warning(s)", r.Input, len(r.Warnings))
			}
		}
	}
	summary.Duration = time.Since(start)
	d.logger.Info("run %s: %d succeeded, %d failed in %s",
		summary.RunID, summary.Succeeded, summary.Failed, summary.Duration.Round(time.Millisecond))
	return summary
}

// runOne translates a single file and writes the result next to the batch
// output directory, named after the input.
func (d *Driver) runOne(input string) Result {
	start := time.Now()
	result := Result{Input: input}
	d.logger.Debug("translating %s", input)

	data, err := os.ReadFile(input)
	if err != nil {
		result.Err = fmt.Errorf("reading %s: %w", input, err)
		result.Duration = time.Since(start)
		return result
	}

	outcome, err := d.translator.Translate(string(data), &translate.Config{
		AddTestWall: d.cfg.Translation.AddTestWall,
		Mode:        translate.Mode(d.cfg.Translation.Mode),
	})
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}
	result.Warnings = outcome.Warnings

	if err := os.MkdirAll(d.cfg.OutputDir, 0o755); err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	output := filepath.Join(d.cfg.OutputDir, base+".xml")
	if err := os.WriteFile(output, []byte(outcome.XML), 0o644); err != nil {
		result.Err = fmt.Errorf("writing %s: %w", output, err)
		result.Duration = time.Since(start)
		return result
	}

	result.Output = output
	result.Duration = time.Since(start)
	return result
}
