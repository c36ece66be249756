// =============================================================================
// H2K to HPXML Translator - Translation Core
// =============================================================================
//
// The translator turns one parsed H2K document into a populated HPXML
// document in four ordered stages, each a hard prerequisite for the next:
//
//   Building -> Weather -> Enclosure -> Systems & Loads
//
// Every stage reads the source tree, mutates the template tree and the
// per-translation ModelState. Final assembly applies reference-mode
// overrides when configured and serializes the result. Each translation is a
// synchronous in-memory computation; callers may run many in parallel as
// long as each gets its own call.
//
// =============================================================================

package translate

import (
	"errors"
	"fmt"

	"github.com/h2ktools/h2k-to-hpxml-conversion/internal/hpxml"
	"github.com/h2ktools/h2k-to-hpxml-conversion/internal/mapping"
	"github.com/h2ktools/h2k-to-hpxml-conversion/internal/xmldoc"
)

// Mode selects the translation protocol.
type Mode string

const (
	// ModeSOC is the standard operating-conditions translation.
	ModeSOC Mode = "SOC"
	// ModeASHRAE140 translates for the standardized reference-building test
	// protocol: fixed weather stations and document-wide overrides.
	ModeASHRAE140 Mode = "ASHRAE140"
)

// Config carries the per-translation options.
type Config struct {
	AddTestWall bool
	Mode        Mode
}

// DefaultConfig returns the configuration used when the caller passes nil.
func DefaultConfig() *Config {
	return &Config{AddTestWall: false, Mode: ModeSOC}
}

func (c *Config) validate() error {
	switch c.Mode {
	case ModeSOC, ModeASHRAE140:
		return nil
	}
	return &ConfigError{Err: fmt.Errorf("unknown translation mode %q", c.Mode)}
}

// WeatherResolver supplies a weather-station name for a (region, city) pair.
// Implementations may download and cache weather data; the core only needs
// the synchronous return value.
type WeatherResolver interface {
	Resolve(region, city string) (string, error)
}

// Outcome is a successful translation: the serialized document plus the
// warnings recorded along the way.
type Outcome struct {
	XML      string
	Warnings []Warning
}

// Phase names the entry point's state machine states.
type Phase int

const (
	PhaseValidating Phase = iota
	PhaseTemplateLoaded
	PhaseBuildingProcessed
	PhaseWeatherProcessed
	PhaseEnclosureProcessed
	PhaseSystemsProcessed
	PhaseAssembled
	PhaseFailed
)

// Translator converts H2K documents to HPXML. It holds only immutable shared
// data and is safe for concurrent use.
type Translator struct {
	tables  *mapping.Tables
	weather WeatherResolver
}

// New returns a translator using the process-wide mapping tables.
func New(weather WeatherResolver) (*Translator, error) {
	tables, err := mapping.Default()
	if err != nil {
		return nil, &ConfigError{Err: err}
	}
	return &Translator{tables: tables, weather: weather}, nil
}

// Translate runs the full pipeline over one source document. A nil config
// selects the defaults. All errors are one of ParseError, GenerationError,
// ConfigError or WeatherError.
func (t *Translator) Translate(sourceXML string, cfg *Config) (*Outcome, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	src, err := xmldoc.Parse(sourceXML)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	if src.Child("HouseFile") == nil {
		return nil, &ParseError{Err: errors.New("missing HouseFile root element")}
	}

	doc, err := hpxml.Load()
	if err != nil {
		return nil, &ConfigError{Err: err}
	}

	tr := &translation{
		src:     src,
		doc:     doc,
		state:   NewModelState(),
		tables:  t.tables,
		cfg:     cfg,
		weather: t.weather,
		phase:   PhaseTemplateLoaded,
	}

	stages := []struct {
		name string
		next Phase
		run  func() error
	}{
		{"building", PhaseBuildingProcessed, tr.buildingStage},
		{"weather", PhaseWeatherProcessed, tr.weatherStage},
		{"enclosure", PhaseEnclosureProcessed, tr.enclosureStage},
		{"systems", PhaseSystemsProcessed, tr.systemsStage},
	}
	for _, stage := range stages {
		if err := stage.run(); err != nil {
			tr.phase = PhaseFailed
			return nil, wrapStageError(stage.name, err)
		}
		tr.phase = stage.next
	}

	out, err := tr.assemble()
	if err != nil {
		tr.phase = PhaseFailed
		return nil, wrapStageError("assembly", err)
	}
	tr.phase = PhaseAssembled

	return &Outcome{XML: out, Warnings: tr.state.Warnings()}, nil
}

// wrapStageError attaches the responsible stage name. Weather and
// configuration errors already identify their origin and pass through.
func wrapStageError(stage string, err error) error {
	var we *WeatherError
	var ce *ConfigError
	if errors.As(err, &we) || errors.As(err, &ce) {
		return err
	}
	return &GenerationError{Stage: stage, Err: err}
}

// translation is the mutable context of one run: the two document trees, the
// model state and the configuration, shared by every stage and processor.
type translation struct {
	src     *xmldoc.Object
	doc     *xmldoc.Object
	state   *ModelState
	tables  *mapping.Tables
	cfg     *Config
	weather WeatherResolver
	phase   Phase
}

// assemble applies mode-specific overrides and serializes the document. It
// refuses to run unless every stage has completed.
func (tr *translation) assemble() (string, error) {
	if tr.phase != PhaseSystemsProcessed {
		return "", fmt.Errorf("assembly requested in phase %d", tr.phase)
	}
	if tr.cfg.Mode == ModeASHRAE140 {
		tr.applyReferenceOverrides()
	}
	return xmldoc.Marshal(tr.doc)
}

// details returns the template's BuildingDetails object.
func (tr *translation) details() *xmldoc.Object {
	return tr.doc.Child("HPXML").Child("Building").Child("BuildingDetails")
}

func (tr *translation) number(doc any, key string) (float64, error) {
	return getNumber(tr.tables, doc, key)
}

func (tr *translation) selection(doc any, key string) (string, error) {
	return getSelection(tr.tables, doc, key)
}

// reader batches field lookups, remembering the first error so processors
// can read a handful of fields and check once.
type reader struct {
	tr  *translation
	err error
}

func (tr *translation) reader() *reader { return &reader{tr: tr} }

func (r *reader) num(doc any, key string) float64 {
	if r.err != nil {
		return 0
	}
	v, err := r.tr.number(doc, key)
	if err != nil {
		r.err = err
	}
	return v
}

// numStr returns the field formatted with its table decimals.
func (r *reader) numStr(doc any, key string) string {
	v := r.num(doc, key)
	if r.err != nil {
		return ""
	}
	return formatNumber(v, r.tr.tables.Numbers[key].Decimals)
}

func (r *reader) sel(doc any, key string) string {
	if r.err != nil {
		return ""
	}
	v, err := r.tr.selection(doc, key)
	if err != nil {
		r.err = err
	}
	return v
}

// sysID builds a SystemIdentifier element.
func sysID(id string) *xmldoc.Object {
	o := xmldoc.NewObject()
	o.Set("@id", id)
	return o
}

// idref builds an id-reference element.
func idref(id string) *xmldoc.Object {
	o := xmldoc.NewObject()
	o.Set("@idref", id)
	return o
}

// emptyElement marks a choice element with no content, e.g. <WoodStud/>.
func emptyElement() *xmldoc.Object { return xmldoc.NewObject() }

func f0(v float64) string { return formatNumber(v, 0) }
func f1(v float64) string { return formatNumber(v, 1) }
func f2(v float64) string { return formatNumber(v, 2) }
func f3(v float64) string { return formatNumber(v, 3) }
func f4(v float64) string { return formatNumber(v, 4) }
