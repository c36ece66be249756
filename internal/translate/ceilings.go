// Ceiling processors. Each ceiling record becomes one of three shapes
// depending on its construction type: a vented attic (roof deck + attic
// floor + gable walls), a cathedral ceiling, or a flat roof. Skylights
// nested under a ceiling attach to its roof.

package translate

import (
	"math"

	"github.com/h2ktools/h2k-to-hpxml-conversion/internal/xmldoc"
)

func (tr *translation) processCeilings(parts *enclosureParts) error {
	for _, ceiling := range tr.components("Ceiling") {
		kind, err := tr.selection(ceiling, "ceiling_type")
		if err != nil {
			return err
		}
		switch kind {
		case "attic":
			err = tr.processAtticCeiling(parts, ceiling)
		case "cathedral ceiling", "flat roof":
			err = tr.processRoofCeiling(parts, ceiling, kind)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// processAtticCeiling emits the vented-attic triple: an uninsulated roof
// deck, the insulated attic floor carrying the ceiling's thermal
// resistance, and the gable-end walls derived from the ceiling geometry.
func (tr *translation) processAtticCeiling(parts *enclosureParts, ceiling *xmldoc.Object) error {
	r := tr.reader()
	area := r.num(ceiling, "ceiling_area")
	length := r.num(ceiling, "ceiling_length")
	slope := r.num(ceiling, "ceiling_slope")
	if r.err != nil {
		return r.err
	}

	label := ceiling.Text("Label")
	rValue, err := compositeRValue(ceiling, CoreWood)
	if err != nil {
		return err
	}
	if rValue <= 0 {
		tr.state.AddWarning("ceiling %q has non-positive thermal resistance %s", label, f4(rValue))
	}

	roofID := tr.state.IncrementAndGetID(CounterRoof, "Roof")
	floorID := tr.state.IncrementAndGetID(CounterFloor, "Floor")
	atticID := tr.state.IncrementAndGetID(CounterAttic, "Attic")

	roof := xmldoc.NewObject()
	roof.Set("SystemIdentifier", sysID(roofID))
	roof.Set("InteriorAdjacentTo", "attic - vented")
	roof.Set("Area", f1(roofDeckArea(area, slope)))
	if slope > 0 {
		roof.Set("Pitch", f0(slope))
	}
	roofInsulation := xmldoc.NewObject()
	roofInsulation.Set("SystemIdentifier", sysID(roofID+"Insulation"))
	roofInsulation.Set("AssemblyEffectiveRValue", f4(uninsulatedWallR))
	roof.Set("Insulation", roofInsulation)
	parts.roofs = append(parts.roofs, roof)

	floorInsulation := xmldoc.NewObject()
	floorInsulation.Set("SystemIdentifier", sysID(floorID+"Insulation"))
	floorInsulation.Set("AssemblyEffectiveRValue", f4(rValue))

	floorType := xmldoc.NewObject()
	floorType.Set("WoodFrame", emptyElement())

	floor := xmldoc.NewObject()
	floor.Set("SystemIdentifier", sysID(floorID))
	floor.Set("ExteriorAdjacentTo", "attic - vented")
	floor.Set("InteriorAdjacentTo", "conditioned space")
	floor.Set("FloorType", floorType)
	floor.Set("Area", f1(area))
	floor.Set("Insulation", floorInsulation)
	parts.floors = append(parts.floors, floor)

	atticType := xmldoc.NewObject()
	vented := xmldoc.NewObject()
	vented.Set("Vented", "true")
	atticType.Set("Attic", vented)

	attic := xmldoc.NewObject()
	attic.Set("SystemIdentifier", sysID(atticID))
	attic.Set("AtticType", atticType)
	attic.Set("AttachedToRoof", idref(roofID))
	attic.Set("AttachedToFloor", idref(floorID))
	parts.attics = append(parts.attics, attic)

	tr.processGableWalls(parts, area, length, slope)
	return tr.processSkylights(parts, ceiling, roofID)
}

// processGableWalls approximates the two triangular gable ends from the
// ceiling footprint and roof pitch.
func (tr *translation) processGableWalls(parts *enclosureParts, area, length, slope float64) {
	if area <= 0 || length <= 0 || slope <= 0 {
		return
	}
	width := area / length
	rise := (width / 2) * (slope / 12)
	// Two triangles of base width and height rise.
	gableArea := roundTo(width*rise, 1)
	if gableArea <= 0 {
		return
	}

	id := tr.state.IncrementAndGetID(CounterWall, "Wall")

	wallType := xmldoc.NewObject()
	wallType.Set("WoodStud", emptyElement())

	insulation := xmldoc.NewObject()
	insulation.Set("SystemIdentifier", sysID(id+"Insulation"))
	insulation.Set("AssemblyEffectiveRValue", f4(uninsulatedWallR))

	wall := xmldoc.NewObject()
	wall.Set("SystemIdentifier", sysID(id))
	wall.Set("ExteriorAdjacentTo", "outside")
	wall.Set("InteriorAdjacentTo", "attic - vented")
	wall.Set("AtticWallType", "gable")
	wall.Set("WallType", wallType)
	wall.Set("Area", f1(gableArea))
	wall.Set("Insulation", insulation)
	parts.walls = append(parts.walls, wall)
}

// processRoofCeiling emits cathedral ceilings and flat roofs as a single
// insulated roof surface directly over conditioned space.
func (tr *translation) processRoofCeiling(parts *enclosureParts, ceiling *xmldoc.Object, kind string) error {
	r := tr.reader()
	area := r.num(ceiling, "ceiling_area")
	slope := r.num(ceiling, "ceiling_slope")
	if r.err != nil {
		return r.err
	}

	label := ceiling.Text("Label")
	rValue, err := compositeRValue(ceiling, CoreWood)
	if err != nil {
		return err
	}
	if rValue <= 0 {
		tr.state.AddWarning("ceiling %q has non-positive thermal resistance %s", label, f4(rValue))
	}

	id := tr.state.IncrementAndGetID(CounterRoof, "Roof")

	insulation := xmldoc.NewObject()
	insulation.Set("SystemIdentifier", sysID(id+"Insulation"))
	insulation.Set("AssemblyEffectiveRValue", f4(rValue))

	roof := xmldoc.NewObject()
	roof.Set("SystemIdentifier", sysID(id))
	roof.Set("InteriorAdjacentTo", "conditioned space")
	roof.Set("Area", f1(roofDeckArea(area, slope)))
	if kind == "flat roof" {
		roof.Set("Pitch", "0")
	} else if slope > 0 {
		roof.Set("Pitch", f0(slope))
	}
	roof.Set("RadiantBarrier", "false")
	roof.Set("Insulation", insulation)
	parts.roofs = append(parts.roofs, roof)

	return tr.processSkylights(parts, ceiling, id)
}

// roofDeckArea projects a horizontal footprint onto the sloped deck.
func roofDeckArea(footprint, slope float64) float64 {
	if slope <= 0 {
		return roundTo(footprint, 1)
	}
	run := 12.0
	deck := footprint * math.Sqrt(run*run+slope*slope) / run
	return roundTo(deck, 1)
}

// processSkylights emits the windows nested under a ceiling as Skylight
// records attached to the ceiling's roof surface.
func (tr *translation) processSkylights(parts *enclosureParts, ceiling *xmldoc.Object, roofID string) error {
	sub, _ := ceiling.Get("Components")
	for _, group := range xmldoc.Objects(sub) {
		v, ok := group.Get("Window")
		if !ok {
			continue
		}
		for _, skylight := range xmldoc.Objects(v) {
			r := tr.reader()
			height := r.num(skylight, "window_height")
			width := r.num(skylight, "window_width")
			rsi := r.num(skylight, "window_rsi")
			shgc := r.num(skylight, "window_shgc")
			if r.err != nil {
				return r.err
			}

			label := skylight.Text("Label")
			if rsi <= 0 {
				tr.state.AddWarning("skylight %q has non-positive thermal resistance %s", label, f3(rsi))
			}

			id := tr.state.IncrementAndGetID(CounterWindow, "Skylight")

			record := xmldoc.NewObject()
			record.Set("SystemIdentifier", sysID(id))
			record.Set("Area", f1(roundTo(height*width/144, 1)))
			record.Set("UFactor", f3(windowUFactor(rsi)))
			record.Set("SHGC", f2(shgc))
			record.Set("AttachedToRoof", idref(roofID))
			parts.skylights = append(parts.skylights, record)
		}
	}
	return nil
}
