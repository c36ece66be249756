// =============================================================================
// H2K to HPXML Translator - Field-Mapping Tables
// =============================================================================
//
// This module owns the declarative data that drives value extraction from an
// H2K document: where each logical field lives, how to translate enumerated
// source strings, how to convert units and how to round. Adding a field means
// editing a data file, not writing code.
//
// TABLES (embedded YAML under data/):
//   selections.yaml  - enum/string fields: address, default, raw->output map
//   numbers.yaml     - numeric fields: address, decimals, optional unit spec
//   foundations.yaml - foundation-kind metadata used by the enclosure stage
//   units.yaml       - conversion factors, keyed unit type -> from -> to
//
// The tables are loaded once, schema-validated up front, and treated as
// immutable shared data for the life of the process.
//
// =============================================================================

package mapping

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/selections.yaml data/numbers.yaml data/foundations.yaml data/units.yaml
var dataFS embed.FS

// Selection describes one enumerated field: where to read the raw string and
// how to translate it. Lookups never fail; anything missing or unmapped
// resolves to Default.
type Selection struct {
	Address string            `yaml:"address"`
	Default string            `yaml:"default"`
	Map     map[string]string `yaml:"map"`
}

// Number describes one numeric field. Decimals of zero coerces the raw value
// to an integer before conversion.
type Number struct {
	Address  string    `yaml:"address"`
	Decimals int       `yaml:"decimals"`
	Units    *UnitSpec `yaml:"units"`
}

// UnitSpec names a conversion in the units table.
type UnitSpec struct {
	Type string `yaml:"type"`
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// Foundation describes one foundation kind: the H2K component element that
// produces it and the HPXML location string it maps to.
type Foundation struct {
	H2KKey    string `yaml:"h2k_key"`
	HPXMLType string `yaml:"hpxml_type"`
}

// Tables is the full immutable mapping-table set.
type Tables struct {
	Selections  map[string]Selection
	Numbers     map[string]Number
	Foundations map[string]Foundation
	Units       map[string]map[string]map[string]float64
}

// Path splits a comma address into resolver keys.
func (s Selection) Path() []string { return splitAddress(s.Address) }

// Path splits a comma address into resolver keys.
func (n Number) Path() []string { return splitAddress(n.Address) }

func splitAddress(address string) []string {
	parts := strings.Split(address, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

var defaultTables = sync.OnceValues(Load)

// Default returns the process-wide table set, loading and validating it on
// first use.
func Default() (*Tables, error) {
	return defaultTables()
}

// Load parses and validates the embedded table data. Any schema defect
// (empty address, negative decimals, unknown unit conversion, empty map) is
// a load-time error rather than a per-field surprise during translation.
func Load() (*Tables, error) {
	t := &Tables{}
	if err := readYAML("data/units.yaml", &t.Units); err != nil {
		return nil, err
	}
	if err := readYAML("data/selections.yaml", &t.Selections); err != nil {
		return nil, err
	}
	if err := readYAML("data/numbers.yaml", &t.Numbers); err != nil {
		return nil, err
	}
	if err := readYAML("data/foundations.yaml", &t.Foundations); err != nil {
		return nil, err
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func readYAML(name string, out any) error {
	data, err := dataFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("mapping table %s: %w", name, err)
	}
	// yaml.v3 rejects duplicate mapping keys, which doubles as the
	// duplicate-field-name check for the tables.
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("mapping table %s: %w", name, err)
	}
	return nil
}

func (t *Tables) validate() error {
	for name, sel := range t.Selections {
		if strings.TrimSpace(sel.Address) == "" {
			return fmt.Errorf("selection field %q has an empty address", name)
		}
		if len(sel.Map) == 0 {
			return fmt.Errorf("selection field %q has an empty translation map", name)
		}
	}
	for name, num := range t.Numbers {
		if strings.TrimSpace(num.Address) == "" {
			return fmt.Errorf("numeric field %q has an empty address", name)
		}
		if num.Decimals < 0 {
			return fmt.Errorf("numeric field %q has negative decimals %d", name, num.Decimals)
		}
		if num.Units != nil {
			if _, err := t.factor(num.Units); err != nil {
				return fmt.Errorf("numeric field %q: %w", name, err)
			}
		}
	}
	for name, fnd := range t.Foundations {
		if fnd.H2KKey == "" || fnd.HPXMLType == "" {
			return fmt.Errorf("foundation kind %q is missing h2k_key or hpxml_type", name)
		}
	}
	return nil
}

// Convert applies the named unit conversion to v.
func (t *Tables) Convert(spec *UnitSpec, v float64) (float64, error) {
	if spec == nil {
		return v, nil
	}
	if spec.Type == "temperature" {
		return convertTemperature(spec, v)
	}
	factor, err := t.factor(spec)
	if err != nil {
		return 0, err
	}
	return v * factor, nil
}

func (t *Tables) factor(spec *UnitSpec) (float64, error) {
	if spec.Type == "temperature" {
		if _, err := convertTemperature(spec, 0); err != nil {
			return 0, err
		}
		return 1, nil
	}
	from, ok := t.Units[spec.Type]
	if !ok {
		return 0, fmt.Errorf("unknown unit type %q", spec.Type)
	}
	to, ok := from[spec.From]
	if !ok {
		return 0, fmt.Errorf("unknown source unit %q for type %q", spec.From, spec.Type)
	}
	factor, ok := to[spec.To]
	if !ok {
		return 0, fmt.Errorf("no conversion from %q to %q for type %q", spec.From, spec.To, spec.Type)
	}
	return factor, nil
}

// Temperature is affine, not a plain factor, so it lives here instead of the
// units table.
func convertTemperature(spec *UnitSpec, v float64) (float64, error) {
	switch spec.From + ">" + spec.To {
	case "c>f":
		return v*1.8 + 32, nil
	case "f>c":
		return (v - 32) / 1.8, nil
	}
	return 0, fmt.Errorf("no temperature conversion from %q to %q", spec.From, spec.To)
}
