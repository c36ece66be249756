// =============================================================================
// H2K to HPXML Translator - Configuration Module
// =============================================================================
//
// Loads the application configuration from a YAML file, overlays environment
// variables, applies defaults and validates the result. The translation core
// receives only the small translate.Config slice of this; everything else
// configures the surrounding batch, weather and simulation machinery.
//
// PRECEDENCE (highest wins):
//   1. Environment variables (H2KHPXML_*)
//   2. YAML configuration file
//   3. Built-in defaults
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Translation modes accepted by the translation section.
const (
	ModeSOC       = "SOC"
	ModeASHRAE140 = "ASHRAE140"
)

// Config holds the full application configuration.
type Config struct {
	// Directory settings.
	InputDir   string `yaml:"input_dir"`
	OutputDir  string `yaml:"output_dir"`
	WeatherDir string `yaml:"weather_dir"`

	// Logging settings.
	LogFile  string `yaml:"log_file"`
	LogLevel string `yaml:"log_level"`

	// Translation settings.
	Translation Translation `yaml:"translation"`

	// Batch settings.
	MaxConcurrency  int  `yaml:"max_concurrency"`
	ContinueOnError bool `yaml:"continue_on_error"`

	// Simulation settings.
	Simulation Simulation `yaml:"simulation"`
}

// Translation configures the translation core.
type Translation struct {
	// Mode selects the translation protocol: SOC or ASHRAE140.
	Mode string `yaml:"mode"`

	// AddTestWall appends the fixed synthetic wall to every enclosure.
	AddTestWall bool `yaml:"add_test_wall"`
}

// Simulation configures the external engine invocation.
type Simulation struct {
	// WorkflowPath is the OpenStudio-HPXML workflow script invoked per run.
	WorkflowPath string `yaml:"workflow_path"`

	// RubyBin is the interpreter used to launch the workflow.
	RubyBin string `yaml:"ruby_bin"`

	// Timeout is the per-run wall-clock limit in seconds. Zero disables it.
	Timeout int `yaml:"timeout_seconds"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		InputDir:        "./input",
		OutputDir:       "./output",
		WeatherDir:      "./weather",
		LogFile:         "./logs/h2khpxml.log",
		LogLevel:        "info",
		Translation:     Translation{Mode: ModeSOC},
		MaxConcurrency:  4,
		ContinueOnError: true,
		Simulation: Simulation{
			WorkflowPath: "./OpenStudio-HPXML/workflow/run_simulation.rb",
			RubyBin:      "ruby",
			Timeout:      0,
		},
	}
}

// Load reads path (when it exists), overlays the environment and validates.
// A missing file is not an error; the defaults plus environment apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// Defaults only.
	default:
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overlays the H2KHPXML_* environment variables.
func (c *Config) applyEnv() {
	envString := func(key string, target *string) {
		if v, ok := os.LookupEnv(key); ok {
			*target = v
		}
	}
	envString("H2KHPXML_INPUT_DIR", &c.InputDir)
	envString("H2KHPXML_OUTPUT_DIR", &c.OutputDir)
	envString("H2KHPXML_WEATHER_DIR", &c.WeatherDir)
	envString("H2KHPXML_LOG_FILE", &c.LogFile)
	envString("H2KHPXML_LOG_LEVEL", &c.LogLevel)
	envString("H2KHPXML_MODE", &c.Translation.Mode)
	envString("H2KHPXML_WORKFLOW_PATH", &c.Simulation.WorkflowPath)
	envString("H2KHPXML_RUBY_BIN", &c.Simulation.RubyBin)

	if v, ok := os.LookupEnv("H2KHPXML_ADD_TEST_WALL"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Translation.AddTestWall = b
		}
	}
	if v, ok := os.LookupEnv("H2KHPXML_MAX_CONCURRENCY"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxConcurrency = n
		}
	}
}

// Validate checks the loaded configuration.
func (c *Config) Validate() error {
	switch c.Translation.Mode {
	case ModeSOC, ModeASHRAE140:
	default:
		return fmt.Errorf("invalid translation mode %q (want %s or %s)",
			c.Translation.Mode, ModeSOC, ModeASHRAE140)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}

	if c.MaxConcurrency < 1 {
		return fmt.Errorf("max_concurrency must be at least 1, got %d", c.MaxConcurrency)
	}
	if c.Simulation.Timeout < 0 {
		return fmt.Errorf("timeout_seconds must not be negative, got %d", c.Simulation.Timeout)
	}
	return nil
}
