// Field accessors: the two table-driven lookups every component processor
// uses, plus the composite thermal-resistance aggregation. All three build on
// xmldoc.Resolve and inherit its last-ancestor fallback; "the result is still
// a container" is the not-found signal.

package translate

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/h2ktools/h2k-to-hpxml-conversion/internal/mapping"
	"github.com/h2ktools/h2k-to-hpxml-conversion/internal/xmldoc"
)

const (
	// R-value per RSI, the legacy tool's published constant.
	rValuePerRSI = 5.678263337

	// Core-layer resistance offsets in RSI, by framing material.
	coreRSIWood     = 0.417
	coreRSIConcrete = 0.556
)

// CoreMaterial selects the fixed core-resistance offset for composite
// blending.
type CoreMaterial string

const (
	CoreWood     CoreMaterial = "wood"
	CoreConcrete CoreMaterial = "concrete"
)

// getSelection resolves an enum field against doc. Missing values, values
// that are not plain strings (including the resolver's ancestor fallback)
// and unmapped raw strings all yield the table default. An unknown field key
// is a configuration error.
func getSelection(tb *mapping.Tables, doc any, key string) (string, error) {
	entry, ok := tb.Selections[key]
	if !ok {
		return "", &ConfigError{Err: fmt.Errorf("%w: selection %q", ErrUnknownField, key)}
	}
	v := xmldoc.Resolve(doc, entry.Path()...)
	raw, isString := v.(string)
	if !isString {
		return entry.Default, nil
	}
	if mapped, ok := entry.Map[raw]; ok {
		return mapped, nil
	}
	return entry.Default, nil
}

// getNumber resolves a numeric field against doc: coerce to integer when
// decimals is zero, unit-convert, round. A resolution that bottoms out on a
// container counts as not-found and yields zero.
func getNumber(tb *mapping.Tables, doc any, key string) (float64, error) {
	entry, ok := tb.Numbers[key]
	if !ok {
		return 0, &ConfigError{Err: fmt.Errorf("%w: number %q", ErrUnknownField, key)}
	}
	v := xmldoc.Resolve(doc, entry.Path()...)
	if xmldoc.IsContainer(v) {
		return 0, nil
	}
	raw, isString := v.(string)
	if !isString {
		return 0, nil
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("numeric field %q: parsing %q: %w", key, raw, err)
	}
	if entry.Decimals == 0 {
		value = math.Trunc(value)
	}
	value, err = tb.Convert(entry.Units, value)
	if err != nil {
		return 0, err
	}
	return roundTo(value, entry.Decimals), nil
}

// compositeRValue computes the effective R-value of a component whose
// construction is either a flat nominal RSI or a list of weighted sections.
//
// A flat value converts to R unchanged. Sections have the core offset for
// the framing material removed, are blended with the area-weighted harmonic
// formula, and get the offset added back. One section may omit its
// percentage; it receives 100 minus the sum of the explicit ones. The result
// is rounded to 4 decimals with an exact zero normalized to positive.
func compositeRValue(component *xmldoc.Object, core CoreMaterial) (float64, error) {
	ctype, _ := xmldoc.Resolve(component, "Construction", "Type").(*xmldoc.Object)
	if ctype == nil {
		return 0, nil
	}

	nominal, err := attrFloat(ctype, "@nominalInsulation")
	if err != nil {
		return 0, err
	}

	sections := sectionList(ctype)
	if len(sections) == 0 {
		return round4(nominal * rValuePerRSI), nil
	}

	type section struct {
		r   float64
		pct float64
	}
	parsed := make([]section, 0, len(sections))
	explicitSum := 0.0
	missing := -1
	for i, sec := range sections {
		rsi, err := attrFloat(sec, "@rsi")
		if err != nil {
			return 0, err
		}
		entry := section{r: rsi * rValuePerRSI, pct: -1}
		if sec.Has("@percentage") {
			pct, err := attrFloat(sec, "@percentage")
			if err != nil {
				return 0, err
			}
			entry.pct = pct
			explicitSum += pct
		} else if missing < 0 {
			missing = i
		} else {
			entry.pct = 0
		}
		parsed = append(parsed, entry)
	}
	if missing >= 0 {
		parsed[missing].pct = 100 - explicitSum
	}

	offset := coreOffset(core)
	total := 0.0
	denominator := 0.0
	for _, sec := range parsed {
		if sec.pct <= 0 {
			continue
		}
		total += sec.pct
		denominator += sec.pct / (sec.r - offset)
	}
	if total == 0 || denominator == 0 {
		return round4(nominal * rValuePerRSI), nil
	}
	return round4(total/denominator + offset), nil
}

func coreOffset(core CoreMaterial) float64 {
	if core == CoreConcrete {
		return coreRSIConcrete * rValuePerRSI
	}
	return coreRSIWood * rValuePerRSI
}

func sectionList(ctype *xmldoc.Object) []*xmldoc.Object {
	composite := ctype.Child("Composite")
	if composite == nil {
		return nil
	}
	v, _ := composite.Get("Section")
	return xmldoc.Objects(v)
}

func attrFloat(obj *xmldoc.Object, key string) (float64, error) {
	raw := strings.TrimSpace(obj.Text(key))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q: %w", key, raw, err)
	}
	return v, nil
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	r := math.Round(v*p) / p
	if r == 0 {
		// Normalize negative zero.
		return 0
	}
	return r
}

func round4(v float64) float64 { return roundTo(v, 4) }

// formatNumber renders a rounded value with exactly the table's decimals.
func formatNumber(v float64, decimals int) string {
	return strconv.FormatFloat(v, 'f', decimals, 64)
}
