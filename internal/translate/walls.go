// Wall-family processors: above-grade walls, their nested windows, doors and
// floor headers, and the walls shared with an adjacent enclosed space.

package translate

import (
	"github.com/h2ktools/h2k-to-hpxml-conversion/internal/xmldoc"
)

// Gable walls carry no declared insulation; the uninsulated assembly value
// used for them.
const uninsulatedWallR = 2.3

// components returns the source document's component list for one element
// name, normalized to a slice. Absent keys yield an empty slice.
func (tr *translation) components(name string) []*xmldoc.Object {
	parent, _ := xmldoc.Resolve(tr.src, "HouseFile", "House", "Components").(*xmldoc.Object)
	if parent == nil {
		return nil
	}
	v, ok := parent.Get(name)
	if !ok {
		return nil
	}
	return xmldoc.Objects(v)
}

func isAttachedWall(wall *xmldoc.Object) bool {
	return wall.Text("@adjacentEnclosedSpace") == "true"
}

func (tr *translation) processWalls(parts *enclosureParts) error {
	for _, wall := range tr.components("Wall") {
		if isAttachedWall(wall) {
			continue
		}
		if err := tr.processWall(parts, wall, false); err != nil {
			return err
		}
	}
	return nil
}

// processAttachedWalls handles the walls flagged as touching an adjacent
// enclosed space. The facility type decides whether the far side counts as
// outdoors or as another non-freezing space.
func (tr *translation) processAttachedWalls(parts *enclosureParts) error {
	for _, wall := range tr.components("Wall") {
		if !isAttachedWall(wall) {
			continue
		}
		if err := tr.processWall(parts, wall, true); err != nil {
			return err
		}
	}
	return nil
}

func (tr *translation) processWall(parts *enclosureParts, wall *xmldoc.Object, buffered bool) error {
	r := tr.reader()
	height := r.num(wall, "wall_height")
	perimeter := r.num(wall, "wall_perimeter")
	if r.err != nil {
		return r.err
	}

	label := wall.Text("Label")
	rValue, err := compositeRValue(wall, CoreWood)
	if err != nil {
		return err
	}
	if rValue <= 0 {
		tr.state.AddWarning("wall %q has non-positive thermal resistance %s", label, f4(rValue))
	}

	id := tr.state.IncrementAndGetID(CounterWall, "Wall")
	area := roundTo(height*perimeter, 1)
	tr.state.AddWallSegment(WallSegment{
		ID:        id,
		Label:     label,
		Height:    height,
		Perimeter: perimeter,
		Area:      area,
	})

	wallType := xmldoc.NewObject()
	wallType.Set("WoodStud", emptyElement())

	insulation := xmldoc.NewObject()
	insulation.Set("SystemIdentifier", sysID(id+"Insulation"))
	insulation.Set("AssemblyEffectiveRValue", f4(rValue))

	record := xmldoc.NewObject()
	record.Set("SystemIdentifier", sysID(id))
	record.Set("ExteriorAdjacentTo", tr.exteriorAdjacency(buffered))
	record.Set("InteriorAdjacentTo", "conditioned space")
	record.Set("WallType", wallType)
	record.Set("Area", f1(area))
	record.Set("Insulation", insulation)
	parts.walls = append(parts.walls, record)

	sub, _ := wall.Get("Components")
	for _, group := range xmldoc.Objects(sub) {
		if err := tr.processWindows(parts, group, id); err != nil {
			return err
		}
		if err := tr.processDoors(parts, group, id); err != nil {
			return err
		}
		if err := tr.processFloorHeaders(parts, group, id); err != nil {
			return err
		}
	}
	return nil
}

// checkWallOpenings compares each wall segment's area with the total area of
// the windows and doors attached to it and warns when the openings exceed
// the wall itself.
func (tr *translation) checkWallOpenings(parts *enclosureParts) {
	openings := make(map[string]float64)
	for _, records := range [][]*xmldoc.Object{parts.windows, parts.doors} {
		for _, record := range records {
			ref := record.Child("AttachedToWall")
			if ref == nil {
				continue
			}
			area, err := attrFloat(record, "Area")
			if err != nil {
				continue
			}
			openings[ref.Text("@idref")] += area
		}
	}
	for _, segment := range tr.state.WallSegments() {
		if segment.Area <= 0 {
			continue
		}
		if total := openings[segment.ID]; total > segment.Area {
			tr.state.AddWarning("wall %q has %s ft2 of openings against %s ft2 of wall area",
				segment.Label, f1(total), f1(segment.Area))
		}
	}
}

// processWindows emits one Window per record nested under a wall's component
// group. Dimensions arrive in millimetres; the U-factor is the reciprocal of
// the declared RSI expressed in imperial units.
func (tr *translation) processWindows(parts *enclosureParts, group *xmldoc.Object, wallID string) error {
	v, ok := group.Get("Window")
	if !ok {
		return nil
	}
	for _, window := range xmldoc.Objects(v) {
		r := tr.reader()
		height := r.num(window, "window_height")
		width := r.num(window, "window_width")
		rsi := r.num(window, "window_rsi")
		shgc := r.num(window, "window_shgc")
		azimuth := r.sel(window, "facing_direction")
		if r.err != nil {
			return r.err
		}

		label := window.Text("Label")
		if rsi <= 0 {
			tr.state.AddWarning("window %q has non-positive thermal resistance %s", label, f3(rsi))
		}

		id := tr.state.IncrementAndGetID(CounterWindow, "Window")
		area := roundTo(height*width/144, 1)

		record := xmldoc.NewObject()
		record.Set("SystemIdentifier", sysID(id))
		record.Set("Area", f1(area))
		if azimuth != "" {
			record.Set("Azimuth", azimuth)
		}
		record.Set("UFactor", f3(windowUFactor(rsi)))
		record.Set("SHGC", f2(shgc))
		record.Set("AttachedToWall", idref(wallID))
		parts.windows = append(parts.windows, record)
	}
	return nil
}

func windowUFactor(rsi float64) float64 {
	if rsi <= 0 {
		return 0
	}
	return 1 / (rsi * rValuePerRSI)
}

func (tr *translation) processDoors(parts *enclosureParts, group *xmldoc.Object, wallID string) error {
	v, ok := group.Get("Door")
	if !ok {
		return nil
	}
	for _, door := range xmldoc.Objects(v) {
		r := tr.reader()
		height := r.num(door, "door_height")
		width := r.num(door, "door_width")
		rValue := r.num(door, "door_r_value")
		if r.err != nil {
			return r.err
		}

		label := door.Text("Label")
		if rValue <= 0 {
			tr.state.AddWarning("door %q has non-positive thermal resistance %s", label, f1(rValue))
		}

		id := tr.state.IncrementAndGetID(CounterDoor, "Door")

		record := xmldoc.NewObject()
		record.Set("SystemIdentifier", sysID(id))
		record.Set("AttachedToWall", idref(wallID))
		record.Set("Area", f1(roundTo(height*width, 1)))
		record.Set("RValue", f1(rValue))
		parts.doors = append(parts.doors, record)
	}
	return nil
}

// processFloorHeaders emits the band of framing between storeys as RimJoist
// records tied to the enclosing wall's adjacency.
func (tr *translation) processFloorHeaders(parts *enclosureParts, group *xmldoc.Object, wallID string) error {
	v, ok := group.Get("FloorHeader")
	if !ok {
		return nil
	}
	for _, header := range xmldoc.Objects(v) {
		r := tr.reader()
		height := r.num(header, "floor_header_height")
		perimeter := r.num(header, "floor_header_perimeter")
		if r.err != nil {
			return r.err
		}

		label := header.Text("Label")
		rValue, err := compositeRValue(header, CoreWood)
		if err != nil {
			return err
		}
		if rValue <= 0 {
			tr.state.AddWarning("floor header %q has non-positive thermal resistance %s", label, f4(rValue))
		}

		id := tr.state.IncrementAndGetID(CounterFloorHeader, "RimJoist")

		insulation := xmldoc.NewObject()
		insulation.Set("SystemIdentifier", sysID(id+"Insulation"))
		insulation.Set("AssemblyEffectiveRValue", f4(rValue))

		record := xmldoc.NewObject()
		record.Set("SystemIdentifier", sysID(id))
		record.Set("ExteriorAdjacentTo", "outside")
		record.Set("InteriorAdjacentTo", "conditioned space")
		record.Set("Area", f1(roundTo(height*perimeter, 1)))
		record.Set("Insulation", insulation)
		parts.rimJoists = append(parts.rimJoists, record)
	}
	return nil
}
