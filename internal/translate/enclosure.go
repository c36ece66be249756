// Stage 3: enclosure. Runs every envelope component processor, merges the
// non-empty categories into the template in schema order, then reconciles
// the conditioned floor area against the accumulated foundation records.

package translate

import (
	"math"

	"github.com/h2ktools/h2k-to-hpxml-conversion/internal/xmldoc"
)

// enclosureParts accumulates the per-category component records. Categories
// left empty never appear in the output.
type enclosureParts struct {
	attics          []*xmldoc.Object
	foundations     []*xmldoc.Object
	roofs           []*xmldoc.Object
	rimJoists       []*xmldoc.Object
	walls           []*xmldoc.Object
	foundationWalls []*xmldoc.Object
	floors          []*xmldoc.Object
	slabs           []*xmldoc.Object
	windows         []*xmldoc.Object
	skylights       []*xmldoc.Object
	doors           []*xmldoc.Object
}

func (tr *translation) enclosureStage() error {
	parts := &enclosureParts{}

	processors := []func(*enclosureParts) error{
		tr.processWalls,
		tr.processAttachedWalls,
		tr.processCeilings,
		tr.processExposedFloors,
		tr.processBasements,
		tr.processCrawlspaces,
		tr.processSlabs,
	}
	for _, process := range processors {
		if err := process(parts); err != nil {
			return err
		}
	}

	tr.checkWallOpenings(parts)

	if tr.cfg.AddTestWall {
		parts.walls = append(parts.walls, tr.testWall())
	}

	if err := tr.processInfiltration(); err != nil {
		return err
	}

	enclosure := tr.details().EnsureChild("Enclosure")
	merge := func(category, element string, records []*xmldoc.Object) {
		if len(records) == 0 {
			return
		}
		group := xmldoc.NewObject()
		for _, record := range records {
			group.Append(element, record)
		}
		enclosure.Set(category, group)
	}
	merge("Attics", "Attic", parts.attics)
	merge("Foundations", "Foundation", parts.foundations)
	merge("Roofs", "Roof", parts.roofs)
	merge("RimJoists", "RimJoist", parts.rimJoists)
	merge("Walls", "Wall", parts.walls)
	merge("FoundationWalls", "FoundationWall", parts.foundationWalls)
	merge("Floors", "Floor", parts.floors)
	merge("Slabs", "Slab", parts.slabs)
	merge("Windows", "Window", parts.windows)
	merge("Skylights", "Skylight", parts.skylights)
	merge("Doors", "Door", parts.doors)

	tr.reconcileFloorArea()
	return nil
}

// reconcileFloorArea computes the final conditioned floor area: the
// above-grade heated area plus whichever is larger of the declared
// below-grade heated area and the sum of the foundation component areas.
func (tr *translation) reconcileFloorArea() {
	aboveGrade := tr.state.BuildingFloat(detailAreaAboveGrade, 0)
	belowGrade := tr.state.BuildingFloat(detailAreaBelowGrade, 0)

	foundationArea := 0.0
	for _, d := range tr.state.FoundationDetails() {
		foundationArea += d.TotalArea
	}

	final := aboveGrade + math.Max(belowGrade, foundationArea)
	tr.state.SetBuildingDetails(map[string]any{detailFloorArea: final})

	construction := tr.details().EnsureChild("BuildingSummary").EnsureChild("BuildingConstruction")
	construction.Set("ConditionedFloorArea", f1(final))
}

// processInfiltration fills the air-infiltration measurement. The flue flag
// is back-filled by the systems stage once combustion equipment has been
// seen.
func (tr *translation) processInfiltration() error {
	r := tr.reader()
	ach := r.numStr(tr.src, "air_change_rate")
	volume := r.num(tr.src, "house_volume")
	if r.err != nil {
		return r.err
	}

	leakage := xmldoc.NewObject()
	leakage.Set("UnitofMeasure", "ACH")
	leakage.Set("AirLeakage", ach)

	measurement := xmldoc.NewObject()
	measurement.Set("SystemIdentifier", sysID("AirInfiltrationMeasurement1"))
	measurement.Set("HousePressure", "50")
	measurement.Set("BuildingAirLeakage", leakage)
	if volume > 0 {
		measurement.Set("InfiltrationVolume", f1(volume))
	}

	infiltration := tr.details().EnsureChild("Enclosure").EnsureChild("AirInfiltration")
	infiltration.Set("AirInfiltrationMeasurement", measurement)
	return nil
}

// backfillFlueFlag notes the presence of a flue or chimney on the enclosure
// when any combustion flue was recorded during system processing.
func (tr *translation) backfillFlueFlag() {
	if !tr.state.HasFlue() {
		return
	}
	infiltration := tr.details().EnsureChild("Enclosure").EnsureChild("AirInfiltration")
	ext := infiltration.EnsureChild("extension")
	ext.Set("HasFlueOrChimneyInConditionedSpace", "true")
}

// testWall is the fixed synthetic wall appended when the configuration asks
// for it, a debugging aid carried over from the legacy tool.
func (tr *translation) testWall() *xmldoc.Object {
	id := tr.state.IncrementAndGetID(CounterWall, "Wall")

	insulation := xmldoc.NewObject()
	insulation.Set("SystemIdentifier", sysID(id+"Insulation"))
	insulation.Set("AssemblyEffectiveRValue", "11.0")

	wallType := xmldoc.NewObject()
	wallType.Set("WoodStud", emptyElement())

	wall := xmldoc.NewObject()
	wall.Set("SystemIdentifier", sysID(id))
	wall.Set("ExteriorAdjacentTo", "outside")
	wall.Set("InteriorAdjacentTo", "conditioned space")
	wall.Set("WallType", wallType)
	wall.Set("Area", "100.0")
	wall.Set("Insulation", insulation)
	return wall
}

// exteriorAdjacency classifies the space on the far side of an envelope
// component: attached and apartment-like facility types place buffered
// components against other non-freezing space, detached ones against the
// outdoors.
func (tr *translation) exteriorAdjacency(buffered bool) string {
	if !buffered {
		return "outside"
	}
	facility := tr.state.BuildingString(detailFacilityType, "single-family detached")
	switch facility {
	case "single-family attached", "apartment unit":
		return "other non-freezing space"
	}
	return "outside"
}
