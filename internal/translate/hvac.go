// HVAC equipment processors. Type1 holds the primary heating plant
// (furnace, boiler, baseboards, radiant); Type2 holds cooling and heat
// pumps. Combustion equipment records its flue diameter for the enclosure
// back-fill, and ducted or piped equipment requests a shared distribution
// system.

package translate

import (
	"strconv"

	"github.com/h2ktools/h2k-to-hpxml-conversion/internal/xmldoc"
)

func (tr *translation) heatingCooling() *xmldoc.Object {
	hc, _ := xmldoc.Resolve(tr.src, "HouseFile", "House", "HeatingCooling").(*xmldoc.Object)
	return hc
}

func (tr *translation) processHVAC(sys *systemsState) error {
	hc := tr.heatingCooling()
	if hc == nil {
		return nil
	}

	if t1 := hc.Child("Type1"); t1 != nil {
		if furnace := t1.Child("Furnace"); furnace != nil {
			if err := tr.processFurnace(sys, furnace); err != nil {
				return err
			}
		}
		if boiler := t1.Child("Boiler"); boiler != nil {
			if err := tr.processBoiler(sys, boiler); err != nil {
				return err
			}
		}
		if baseboards := t1.Child("Baseboards"); baseboards != nil {
			if err := tr.processBaseboards(sys, baseboards); err != nil {
				return err
			}
		}
		if radiant := t1.Child("RadiantHeating"); radiant != nil {
			if err := tr.processRadiantHeating(sys, radiant); err != nil {
				return err
			}
		}
	}

	if t2 := hc.Child("Type2"); t2 != nil {
		if ac := t2.Child("AirConditioning"); ac != nil {
			if err := tr.processAirConditioning(sys, ac); err != nil {
				return err
			}
		}
		pumps := []struct {
			key  string
			role string
			kind string
		}{
			{"AirHeatPump", RoleAirHeatPump, "air-to-air"},
			{"GroundHeatPump", RoleGroundHeatPump, "ground-to-air"},
			{"WaterHeatPump", RoleWaterHeatPump, "water-to-air"},
		}
		for _, p := range pumps {
			if pump := t2.Child(p.key); pump != nil {
				if err := tr.processHeatPump(sys, pump, p.role, p.kind); err != nil {
					return err
				}
			}
		}
	}

	sys.writeDistributions(tr)
	return nil
}

func (sys *systemsState) nextHeatingID() string {
	sys.heatingCount++
	return "HeatingSystem" + itoa(sys.heatingCount)
}

func (sys *systemsState) nextCoolingID() string {
	sys.coolingCount++
	return "CoolingSystem" + itoa(sys.coolingCount)
}

func (sys *systemsState) nextHeatPumpID() string {
	sys.heatPumpCount++
	return "HeatPump" + itoa(sys.heatPumpCount)
}

func (tr *translation) processFurnace(sys *systemsState, furnace *xmldoc.Object) error {
	r := tr.reader()
	fuel := r.sel(furnace, "furnace_fuel")
	capacity := r.num(furnace, "furnace_capacity")
	efficiency := r.num(furnace, "furnace_efficiency")
	if r.err != nil {
		return r.err
	}
	tr.recordEquipmentFlue(furnace.Child("Equipment"))

	id := sys.nextHeatingID()
	tr.state.RegisterSystemID(RolePrimaryHeating, id)
	distID := sys.requestDistribution(tr, distAir, subRegularVelocity)

	kind := xmldoc.NewObject()
	kind.Set("Furnace", emptyElement())

	record := xmldoc.NewObject()
	record.Set("SystemIdentifier", sysID(id))
	record.Set("DistributionSystem", idref(distID))
	record.Set("HeatingSystemType", kind)
	record.Set("HeatingSystemFuel", fuel)
	record.Set("HeatingCapacity", f0(capacity))
	record.Set("AnnualHeatingEfficiency", efficiencyElement("AFUE", f2(efficiency/100)))
	record.Set("FractionHeatLoadServed", "1.0")
	tr.hvacPlant().Append("HeatingSystem", record)
	return nil
}

func (tr *translation) processBoiler(sys *systemsState, boiler *xmldoc.Object) error {
	r := tr.reader()
	fuel := r.sel(boiler, "boiler_fuel")
	capacity := r.num(boiler, "boiler_capacity")
	efficiency := r.num(boiler, "boiler_efficiency")
	if r.err != nil {
		return r.err
	}
	tr.recordEquipmentFlue(boiler.Child("Equipment"))

	id := sys.nextHeatingID()
	tr.state.RegisterSystemID(RolePrimaryHeating, id)
	distID := sys.requestDistribution(tr, distHydronic, subRadiator)

	kind := xmldoc.NewObject()
	kind.Set("Boiler", emptyElement())

	record := xmldoc.NewObject()
	record.Set("SystemIdentifier", sysID(id))
	record.Set("DistributionSystem", idref(distID))
	record.Set("HeatingSystemType", kind)
	record.Set("HeatingSystemFuel", fuel)
	record.Set("HeatingCapacity", f0(capacity))
	record.Set("AnnualHeatingEfficiency", efficiencyElement("AFUE", f2(efficiency/100)))
	record.Set("FractionHeatLoadServed", "1.0")
	tr.hvacPlant().Append("HeatingSystem", record)
	return nil
}

func (tr *translation) processBaseboards(sys *systemsState, baseboards *xmldoc.Object) error {
	r := tr.reader()
	capacity := r.num(baseboards, "baseboard_capacity")
	if r.err != nil {
		return r.err
	}

	id := sys.nextHeatingID()
	role := RolePrimaryHeating
	if _, taken := tr.state.SystemID(RolePrimaryHeating); taken {
		role = RoleSecondaryHeating
	}
	tr.state.RegisterSystemID(role, id)

	resistance := xmldoc.NewObject()
	resistance.Set("ElectricDistribution", "baseboard")

	kind := xmldoc.NewObject()
	kind.Set("ElectricResistance", resistance)

	record := xmldoc.NewObject()
	record.Set("SystemIdentifier", sysID(id))
	record.Set("HeatingSystemType", kind)
	record.Set("HeatingSystemFuel", "electricity")
	record.Set("HeatingCapacity", f0(capacity))
	record.Set("AnnualHeatingEfficiency", efficiencyElement("Percent", "1.0"))
	record.Set("FractionHeatLoadServed", "1.0")
	tr.hvacPlant().Append("HeatingSystem", record)
	return nil
}

// Radiant surface locations in fixed priority order; ties on the declared
// fraction resolve to the earlier entry.
var radiantPriority = []struct {
	field   string
	subType string
}{
	{"radiant_ceiling_fraction", subRadiantCeiling},
	{"radiant_floor_fraction", subRadiantFloor},
	{"radiant_basement_fraction", subRadiantFloor},
	{"radiant_crawlspace_fraction", subRadiantFloor},
	{"radiant_slab_fraction", subRadiantFloor},
}

// radiantSubType picks ceiling vs. floor radiant from whichever surface
// location carries the largest declared fraction of the heated area.
func (tr *translation) radiantSubType() (string, error) {
	best := subRadiantCeiling
	bestFraction := -1.0
	for _, entry := range radiantPriority {
		fraction, err := tr.number(tr.src, entry.field)
		if err != nil {
			return "", err
		}
		if fraction > bestFraction {
			best = entry.subType
			bestFraction = fraction
		}
	}
	return best, nil
}

func (tr *translation) processRadiantHeating(sys *systemsState, radiant *xmldoc.Object) error {
	subType, err := tr.radiantSubType()
	if err != nil {
		return err
	}
	r := tr.reader()
	capacity := r.num(radiant, "baseboard_capacity")
	if r.err != nil {
		return r.err
	}

	id := sys.nextHeatingID()
	tr.state.RegisterSystemID(RolePrimaryHeating, id)
	distID := sys.requestDistribution(tr, distHydronic, subType)

	kind := xmldoc.NewObject()
	kind.Set("Boiler", emptyElement())

	record := xmldoc.NewObject()
	record.Set("SystemIdentifier", sysID(id))
	record.Set("DistributionSystem", idref(distID))
	record.Set("HeatingSystemType", kind)
	record.Set("HeatingSystemFuel", "electricity")
	record.Set("HeatingCapacity", f0(capacity))
	record.Set("AnnualHeatingEfficiency", efficiencyElement("AFUE", "1.0"))
	record.Set("FractionHeatLoadServed", "1.0")
	tr.hvacPlant().Append("HeatingSystem", record)
	return nil
}

func (tr *translation) processAirConditioning(sys *systemsState, ac *xmldoc.Object) error {
	r := tr.reader()
	capacity := r.num(ac, "cooling_capacity")
	seer := r.num(ac, "cooling_efficiency")
	if r.err != nil {
		return r.err
	}

	id := sys.nextCoolingID()
	tr.state.RegisterSystemID(RoleAirConditioning, id)
	distID := sys.requestDistribution(tr, distAir, subRegularVelocity)

	record := xmldoc.NewObject()
	record.Set("SystemIdentifier", sysID(id))
	record.Set("DistributionSystem", idref(distID))
	record.Set("CoolingSystemType", "central air conditioner")
	record.Set("CoolingSystemFuel", "electricity")
	record.Set("CoolingCapacity", f0(capacity))
	record.Set("FractionCoolLoadServed", "1.0")
	record.Set("AnnualCoolingEfficiency", efficiencyElement("SEER", f1(seer)))
	tr.hvacPlant().Append("CoolingSystem", record)
	return nil
}

func (tr *translation) processHeatPump(sys *systemsState, pump *xmldoc.Object, role, kind string) error {
	r := tr.reader()
	function := r.sel(pump, "heat_pump_function")
	capacity := r.num(pump, "heat_pump_capacity")
	cop := r.num(pump, "heat_pump_cop")
	if r.err != nil {
		return r.err
	}

	id := sys.nextHeatPumpID()
	tr.state.RegisterSystemID(role, id)
	distID := sys.requestDistribution(tr, distAir, subRegularVelocity)

	heatFraction := "1.0"
	coolFraction := "1.0"
	switch function {
	case "heating only":
		coolFraction = "0.0"
	case "cooling only":
		heatFraction = "0.0"
	}

	record := xmldoc.NewObject()
	record.Set("SystemIdentifier", sysID(id))
	record.Set("DistributionSystem", idref(distID))
	record.Set("HeatPumpType", kind)
	record.Set("HeatPumpFuel", "electricity")
	record.Set("HeatingCapacity", f0(capacity))
	record.Set("CoolingCapacity", f0(capacity))
	record.Set("FractionHeatLoadServed", heatFraction)
	record.Set("FractionCoolLoadServed", coolFraction)
	record.Set("AnnualHeatingEfficiency", efficiencyElement("COP", f2(cop)))
	tr.hvacPlant().Append("HeatPump", record)
	return nil
}

// recordEquipmentFlue notes a combustion flue declared on an equipment
// element.
func (tr *translation) recordEquipmentFlue(equipment *xmldoc.Object) {
	if equipment == nil {
		return
	}
	d, err := tr.number(equipment, "flue_diameter")
	if err != nil {
		return
	}
	tr.state.RecordFlueDiameter(d)
}

func efficiencyElement(units, value string) *xmldoc.Object {
	o := xmldoc.NewObject()
	o.Set("Units", units)
	o.Set("Value", value)
	return o
}

func itoa(n int) string { return strconv.Itoa(n) }
