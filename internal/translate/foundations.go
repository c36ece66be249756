// Foundation processors: basements, crawlspaces, slabs-on-grade and exposed
// floors. Each contributes a FoundationDetail record used later by the
// conditioned-floor-area reconciliation.

package translate

import (
	"github.com/h2ktools/h2k-to-hpxml-conversion/internal/xmldoc"
)

func (tr *translation) foundationKind(name string) string {
	return tr.tables.Foundations[name].HPXMLType
}

func (tr *translation) processBasements(parts *enclosureParts) error {
	for _, basement := range tr.components(tr.tables.Foundations["basement"].H2KKey) {
		if err := tr.processBasement(parts, basement); err != nil {
			return err
		}
	}
	return nil
}

func (tr *translation) processBasement(parts *enclosureParts, basement *xmldoc.Object) error {
	r := tr.reader()
	wallHeight := r.num(basement, "foundation_wall_height")
	wallDepth := r.num(basement, "foundation_wall_depth")
	floorArea := r.num(basement, "foundation_floor_area")
	floorPerimeter := r.num(basement, "foundation_floor_perimeter")
	exposedPerimeter := r.num(basement, "foundation_exposed_perimeter")
	if r.err != nil {
		return r.err
	}

	label := basement.Text("Label")
	location := tr.foundationKind("basement")

	wallRValue := 0.0
	if wall := basement.Child("Wall"); wall != nil {
		v, err := compositeRValue(wall, CoreConcrete)
		if err != nil {
			return err
		}
		wallRValue = v
	}
	if wallRValue <= 0 {
		tr.state.AddWarning("basement %q wall has non-positive thermal resistance %s", label, f4(wallRValue))
	}

	foundationID := tr.state.IncrementAndGetID(CounterFoundation, "Foundation")
	wallID := tr.state.IncrementAndGetID(CounterFoundationWall, "FoundationWall")
	slabID := tr.state.IncrementAndGetID(CounterSlab, "Slab")

	wallInsulation := xmldoc.NewObject()
	wallInsulation.Set("SystemIdentifier", sysID(wallID+"Insulation"))
	wallInsulation.Set("AssemblyEffectiveRValue", f4(wallRValue))

	wallType := xmldoc.NewObject()
	wallType.Set("SolidConcrete", emptyElement())

	foundationWall := xmldoc.NewObject()
	foundationWall.Set("SystemIdentifier", sysID(wallID))
	foundationWall.Set("ExteriorAdjacentTo", "ground")
	foundationWall.Set("InteriorAdjacentTo", location)
	foundationWall.Set("Type", wallType)
	foundationWall.Set("Height", f2(wallHeight))
	foundationWall.Set("Area", f1(roundTo(wallHeight*floorPerimeter, 1)))
	foundationWall.Set("DepthBelowGrade", f2(wallDepth))
	foundationWall.Set("Insulation", wallInsulation)
	parts.foundationWalls = append(parts.foundationWalls, foundationWall)

	parts.slabs = append(parts.slabs, tr.slabRecord(slabID, location, floorArea, exposedPerimeter, 0))

	foundationType := xmldoc.NewObject()
	conditioned := xmldoc.NewObject()
	conditioned.Set("Conditioned", "true")
	foundationType.Set("Basement", conditioned)

	foundation := xmldoc.NewObject()
	foundation.Set("SystemIdentifier", sysID(foundationID))
	foundation.Set("FoundationType", foundationType)
	foundation.Set("AttachedToFoundationWall", idref(wallID))
	foundation.Set("AttachedToSlab", idref(slabID))
	parts.foundations = append(parts.foundations, foundation)

	tr.state.AddFoundationDetail(foundationDetail("basement", floorArea, floorPerimeter, exposedPerimeter))
	return nil
}

func (tr *translation) processCrawlspaces(parts *enclosureParts) error {
	for _, crawlspace := range tr.components(tr.tables.Foundations["crawlspace"].H2KKey) {
		if err := tr.processCrawlspace(parts, crawlspace); err != nil {
			return err
		}
	}
	return nil
}

// processCrawlspace emits a vented crawlspace: its foundation wall, the
// ground slab under it, and the insulated floor separating it from the
// conditioned space above.
func (tr *translation) processCrawlspace(parts *enclosureParts, crawlspace *xmldoc.Object) error {
	r := tr.reader()
	wallHeight := r.num(crawlspace, "foundation_wall_height")
	wallDepth := r.num(crawlspace, "foundation_wall_depth")
	floorArea := r.num(crawlspace, "foundation_floor_area")
	floorPerimeter := r.num(crawlspace, "foundation_floor_perimeter")
	exposedPerimeter := r.num(crawlspace, "foundation_exposed_perimeter")
	if r.err != nil {
		return r.err
	}

	label := crawlspace.Text("Label")
	location := tr.foundationKind("crawlspace")

	wallRValue := 0.0
	if wall := crawlspace.Child("Wall"); wall != nil {
		v, err := compositeRValue(wall, CoreConcrete)
		if err != nil {
			return err
		}
		wallRValue = v
	}
	floorRValue, err := compositeRValue(crawlspace, CoreWood)
	if err != nil {
		return err
	}
	if floorRValue <= 0 {
		tr.state.AddWarning("crawlspace %q floor has non-positive thermal resistance %s", label, f4(floorRValue))
	}

	foundationID := tr.state.IncrementAndGetID(CounterCrawlspace, "Crawlspace")
	wallID := tr.state.IncrementAndGetID(CounterFoundationWall, "FoundationWall")
	slabID := tr.state.IncrementAndGetID(CounterSlab, "Slab")
	floorID := tr.state.IncrementAndGetID(CounterFloor, "Floor")

	wallInsulation := xmldoc.NewObject()
	wallInsulation.Set("SystemIdentifier", sysID(wallID+"Insulation"))
	wallInsulation.Set("AssemblyEffectiveRValue", f4(wallRValue))

	wallType := xmldoc.NewObject()
	wallType.Set("SolidConcrete", emptyElement())

	foundationWall := xmldoc.NewObject()
	foundationWall.Set("SystemIdentifier", sysID(wallID))
	foundationWall.Set("ExteriorAdjacentTo", "ground")
	foundationWall.Set("InteriorAdjacentTo", location)
	foundationWall.Set("Type", wallType)
	foundationWall.Set("Height", f2(wallHeight))
	foundationWall.Set("Area", f1(roundTo(wallHeight*floorPerimeter, 1)))
	foundationWall.Set("DepthBelowGrade", f2(wallDepth))
	foundationWall.Set("Insulation", wallInsulation)
	parts.foundationWalls = append(parts.foundationWalls, foundationWall)

	parts.slabs = append(parts.slabs, tr.slabRecord(slabID, location, floorArea, exposedPerimeter, 0))

	floorInsulation := xmldoc.NewObject()
	floorInsulation.Set("SystemIdentifier", sysID(floorID+"Insulation"))
	floorInsulation.Set("AssemblyEffectiveRValue", f4(floorRValue))

	floorType := xmldoc.NewObject()
	floorType.Set("WoodFrame", emptyElement())

	floor := xmldoc.NewObject()
	floor.Set("SystemIdentifier", sysID(floorID))
	floor.Set("ExteriorAdjacentTo", location)
	floor.Set("InteriorAdjacentTo", "conditioned space")
	floor.Set("FloorType", floorType)
	floor.Set("Area", f1(floorArea))
	floor.Set("Insulation", floorInsulation)
	parts.floors = append(parts.floors, floor)

	foundationType := xmldoc.NewObject()
	vented := xmldoc.NewObject()
	vented.Set("Vented", "true")
	foundationType.Set("Crawlspace", vented)

	foundation := xmldoc.NewObject()
	foundation.Set("SystemIdentifier", sysID(foundationID))
	foundation.Set("FoundationType", foundationType)
	foundation.Set("AttachedToFoundationWall", idref(wallID))
	foundation.Set("AttachedToSlab", idref(slabID))
	foundation.Set("AttachedToFloor", idref(floorID))
	parts.foundations = append(parts.foundations, foundation)

	tr.state.AddFoundationDetail(foundationDetail("crawlspace", floorArea, floorPerimeter, exposedPerimeter))
	return nil
}

func (tr *translation) processSlabs(parts *enclosureParts) error {
	for _, slab := range tr.components(tr.tables.Foundations["slab"].H2KKey) {
		r := tr.reader()
		floorArea := r.num(slab, "foundation_floor_area")
		floorPerimeter := r.num(slab, "foundation_floor_perimeter")
		exposedPerimeter := r.num(slab, "foundation_exposed_perimeter")
		if r.err != nil {
			return r.err
		}

		slabRValue, err := compositeRValue(slab, CoreConcrete)
		if err != nil {
			return err
		}

		foundationID := tr.state.IncrementAndGetID(CounterFoundation, "Foundation")
		slabID := tr.state.IncrementAndGetID(CounterSlab, "Slab")

		parts.slabs = append(parts.slabs, tr.slabRecord(slabID, "conditioned space", floorArea, exposedPerimeter, slabRValue))

		foundationType := xmldoc.NewObject()
		foundationType.Set("SlabOnGrade", emptyElement())

		foundation := xmldoc.NewObject()
		foundation.Set("SystemIdentifier", sysID(foundationID))
		foundation.Set("FoundationType", foundationType)
		foundation.Set("AttachedToSlab", idref(slabID))
		parts.foundations = append(parts.foundations, foundation)

		tr.state.AddFoundationDetail(foundationDetail("slab", floorArea, floorPerimeter, exposedPerimeter))
	}
	return nil
}

// processExposedFloors emits floors over outside air (cantilevers, floors
// above open carports).
func (tr *translation) processExposedFloors(parts *enclosureParts) error {
	for _, floor := range tr.components(tr.tables.Foundations["exposed_floor"].H2KKey) {
		r := tr.reader()
		area := r.num(floor, "floor_area")
		if r.err != nil {
			return r.err
		}

		label := floor.Text("Label")
		rValue, err := compositeRValue(floor, CoreWood)
		if err != nil {
			return err
		}
		if rValue <= 0 {
			tr.state.AddWarning("floor %q has non-positive thermal resistance %s", label, f4(rValue))
		}

		id := tr.state.IncrementAndGetID(CounterFloor, "Floor")

		insulation := xmldoc.NewObject()
		insulation.Set("SystemIdentifier", sysID(id+"Insulation"))
		insulation.Set("AssemblyEffectiveRValue", f4(rValue))

		floorType := xmldoc.NewObject()
		floorType.Set("WoodFrame", emptyElement())

		record := xmldoc.NewObject()
		record.Set("SystemIdentifier", sysID(id))
		record.Set("ExteriorAdjacentTo", tr.exteriorAdjacency(false))
		record.Set("InteriorAdjacentTo", "conditioned space")
		record.Set("FloorType", floorType)
		record.Set("Area", f1(area))
		record.Set("Insulation", insulation)
		parts.floors = append(parts.floors, record)
	}
	return nil
}

func (tr *translation) slabRecord(id, location string, area, exposedPerimeter, rValue float64) *xmldoc.Object {
	insulation := xmldoc.NewObject()
	insulation.Set("SystemIdentifier", sysID(id+"PerimeterInsulation"))
	insulation.Set("Layer", perimeterLayer(rValue))

	slab := xmldoc.NewObject()
	slab.Set("SystemIdentifier", sysID(id))
	slab.Set("InteriorAdjacentTo", location)
	slab.Set("Area", f1(area))
	slab.Set("Thickness", "4.0")
	slab.Set("ExposedPerimeter", f2(exposedPerimeter))
	slab.Set("PerimeterInsulation", insulation)
	return slab
}

func perimeterLayer(rValue float64) *xmldoc.Object {
	layer := xmldoc.NewObject()
	layer.Set("NominalRValue", f1(rValue))
	layer.Set("InsulationDepth", "0")
	return layer
}

func foundationDetail(kind string, area, perimeter, exposedPerimeter float64) FoundationDetail {
	fraction := 0.0
	if perimeter > 0 {
		fraction = roundTo(exposedPerimeter/perimeter, 4)
	}
	return FoundationDetail{
		Type:             kind,
		TotalPerimeter:   perimeter,
		TotalArea:        area,
		ExposedPerimeter: exposedPerimeter,
		ExposedFraction:  fraction,
	}
}
