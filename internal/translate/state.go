// =============================================================================
// H2K to HPXML Translator - Model State
// =============================================================================
//
// ModelState is the per-translation accumulator threaded through every stage
// and component processor. It owns the component ID counters, the system
// identifier registry, the foundation and wall-segment records, the warnings
// list and the building details the later stages read.
//
// One instance is constructed per translation and discarded when the entry
// point returns. It is never shared across translations; the single-threaded
// per-translation model means no locking is needed.
//
// =============================================================================

package translate

import (
	"fmt"

	"github.com/h2ktools/h2k-to-hpxml-conversion/internal/xmldoc"
)

// Counter names. Each counter is monotonic within one translation and its
// value is used verbatim as the numeric suffix of generated component IDs.
const (
	CounterWindow         = "window"
	CounterDoor           = "door"
	CounterWall           = "wall"
	CounterFloor          = "floor"
	CounterCeiling        = "ceiling"
	CounterAttic          = "attic"
	CounterRoof           = "roof"
	CounterFoundation     = "foundation"
	CounterFoundationWall = "foundation_wall"
	CounterCrawlspace     = "crawlspace"
	CounterSlab           = "slab"
	CounterFloorHeader    = "floor_header"
)

// System roles. At most one component ID fills each role; equipment and its
// distribution system cross-reference through this registry.
const (
	RolePrimaryHeating        = "primary_heating"
	RoleSecondaryHeating      = "secondary_heating"
	RoleAirConditioning       = "air_conditioning"
	RoleAirHeatPump           = "air_heat_pump"
	RoleGroundHeatPump        = "ground_heat_pump"
	RoleWaterHeatPump         = "water_heat_pump"
	RoleAirDistribution       = "hvac_air_distribution"
	RoleHydronicDistribution  = "hvac_hydronic_distribution"
	RoleWaterHeater           = "water_heater"
	RoleSolarThermal          = "solar_thermal"
	RolePVSystem              = "pv_system"
	RoleMechanicalVentilation = "mech_vent"
)

// Result-set labels for the prior-run metadata embedded in a source document.
const (
	ResultsGeneral        = "general"
	ResultsReferenceHouse = "reference_house"
	ResultsSOC            = "soc"
)

// FoundationDetail is one foundation-like component's contribution to the
// conditioned-floor-area reconciliation.
type FoundationDetail struct {
	Type             string
	TotalPerimeter   float64
	TotalArea        float64
	ExposedPerimeter float64
	ExposedFraction  float64
}

// WallSegment is one wall-like component's geometry record.
type WallSegment struct {
	ID        string
	Label     string
	Height    float64
	Perimeter float64
	Area      float64
}

// Warning is one recorded validation message. Warnings never abort a
// translation; they ride alongside a successful result.
type Warning struct {
	Message string
}

// ModelState aggregates all mutable translation state.
type ModelState struct {
	building     map[string]any
	foundations  []FoundationDetail
	wallSegments []WallSegment
	counters     map[string]int
	systemIDs    map[string]string
	warnings     []Warning
	results      map[string]*xmldoc.Object
	flues        []float64
}

// NewModelState returns an empty state for one translation.
func NewModelState() *ModelState {
	return &ModelState{
		building:  make(map[string]any),
		counters:  make(map[string]int),
		systemIDs: make(map[string]string),
		results:   make(map[string]*xmldoc.Object),
	}
}

// IncrementAndGetID bumps the named counter and returns prefix + count. Every
// call returns a value strictly greater than any prior call for the same
// counter, so generated IDs are unique per type within the document.
func (s *ModelState) IncrementAndGetID(counter, prefix string) string {
	s.counters[counter]++
	return fmt.Sprintf("%s%d", prefix, s.counters[counter])
}

// CounterValue returns the current value of a counter.
func (s *ModelState) CounterValue(counter string) int {
	return s.counters[counter]
}

// AddFoundationDetail appends one foundation record.
func (s *ModelState) AddFoundationDetail(d FoundationDetail) {
	s.foundations = append(s.foundations, d)
}

// FoundationDetails returns the accumulated records in insertion order.
func (s *ModelState) FoundationDetails() []FoundationDetail {
	return s.foundations
}

// AddWallSegment appends one wall geometry record.
func (s *ModelState) AddWallSegment(w WallSegment) {
	s.wallSegments = append(s.wallSegments, w)
}

// WallSegments returns the accumulated records in insertion order.
func (s *ModelState) WallSegments() []WallSegment {
	return s.wallSegments
}

// RegisterSystemID records the component ID filling a role. The first
// registration wins; later stages read the same ID instead of minting a new
// one.
func (s *ModelState) RegisterSystemID(role, id string) {
	if _, ok := s.systemIDs[role]; ok {
		return
	}
	s.systemIDs[role] = id
}

// SystemID returns the component ID registered for a role.
func (s *ModelState) SystemID(role string) (string, bool) {
	id, ok := s.systemIDs[role]
	return id, ok
}

// AddWarning records a validation warning.
func (s *ModelState) AddWarning(format string, args ...any) {
	s.warnings = append(s.warnings, Warning{Message: fmt.Sprintf(format, args...)})
}

// Warnings returns the recorded warnings in order.
func (s *ModelState) Warnings() []Warning {
	return s.warnings
}

// SetBuildingDetails merges a partial mapping into the building details.
func (s *ModelState) SetBuildingDetails(partial map[string]any) {
	for k, v := range partial {
		s.building[k] = v
	}
}

// BuildingDetail returns the value stored under key, or def when absent.
func (s *ModelState) BuildingDetail(key string, def any) any {
	if v, ok := s.building[key]; ok {
		return v
	}
	return def
}

// BuildingFloat returns a float64 building detail, or def when absent or of
// another type.
func (s *ModelState) BuildingFloat(key string, def float64) float64 {
	if v, ok := s.building[key].(float64); ok {
		return v
	}
	return def
}

// BuildingString returns a string building detail, or def when absent or of
// another type.
func (s *ModelState) BuildingString(key, def string) string {
	if v, ok := s.building[key].(string); ok {
		return v
	}
	return def
}

// SetResults stores one labeled prior-run result set.
func (s *ModelState) SetResults(label string, set *xmldoc.Object) {
	s.results[label] = set
}

// Results returns the result set stored under label.
func (s *ModelState) Results(label string) (*xmldoc.Object, bool) {
	set, ok := s.results[label]
	return set, ok
}

// RecordFlueDiameter notes a flue observed while processing combustion
// equipment; the enclosure's flue flag is back-filled from it.
func (s *ModelState) RecordFlueDiameter(d float64) {
	if d > 0 {
		s.flues = append(s.flues, d)
	}
}

// HasFlue reports whether any flue diameter was recorded.
func (s *ModelState) HasFlue() bool {
	return len(s.flues) > 0
}
