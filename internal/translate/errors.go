// Error kinds raised by a translation. Batch callers match on these with
// errors.As to report per-file diagnostics without losing which stage or
// input was responsible.

package translate

import (
	"errors"
	"fmt"
)

// ErrUnknownField marks a field-accessor lookup whose key is absent from the
// mapping tables. That is a programming or table defect, never source data,
// so it surfaces as a configuration error instead of a default value.
var ErrUnknownField = errors.New("unknown mapping field")

// ParseError reports a source document that could not be parsed or lacks its
// required root element.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return fmt.Sprintf("parsing source document: %v", e.Err) }
func (e *ParseError) Unwrap() error { return e.Err }

// GenerationError reports a stage-internal failure, carrying the stage name.
type GenerationError struct {
	Stage string
	Err   error
}

func (e *GenerationError) Error() string { return fmt.Sprintf("stage %s: %v", e.Stage, e.Err) }
func (e *GenerationError) Unwrap() error { return e.Err }

// ConfigError reports an invalid or missing configuration value.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string { return fmt.Sprintf("configuration: %v", e.Err) }
func (e *ConfigError) Unwrap() error { return e.Err }

// WeatherError reports an unresolvable weather location. Fatal to one
// translation only.
type WeatherError struct {
	Err error
}

func (e *WeatherError) Error() string { return fmt.Sprintf("weather: %v", e.Err) }
func (e *WeatherError) Unwrap() error { return e.Err }
