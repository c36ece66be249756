// Stage 4: systems and loads. Appliances run first so the hot-water
// consumption is on record before the water-heating processor computes its
// fixture usage multiplier; the HVAC coordinator follows, then ventilation,
// solar thermal, generation, lighting and plug loads. The flue flag noted
// during equipment processing is back-filled into the enclosure at the end.

package translate

import (
	"github.com/h2ktools/h2k-to-hpxml-conversion/internal/xmldoc"
)

// systemsState is the coordinator context local to this stage: the shared
// distribution-system registry plus the per-kind equipment counts used for
// ID suffixes.
type systemsState struct {
	distributions []*distributionSystem
	heatingCount  int
	coolingCount  int
	heatPumpCount int
}

func (tr *translation) systemsStage() error {
	sys := &systemsState{}

	if err := tr.processAppliances(); err != nil {
		return err
	}
	if err := tr.processHVAC(sys); err != nil {
		return err
	}
	if err := tr.processWaterHeating(); err != nil {
		return err
	}
	if err := tr.processVentilation(); err != nil {
		return err
	}
	if err := tr.processSolarThermal(); err != nil {
		return err
	}
	if err := tr.processGeneration(); err != nil {
		return err
	}
	tr.processLighting()
	tr.processMiscLoads()

	tr.backfillFlueFlag()
	return nil
}

// processAppliances fills the appliance block and records the declared
// hot-water consumption for the water-heating processor.
func (tr *translation) processAppliances() error {
	r := tr.reader()
	dryerFuel := r.sel(xmldoc.Resolve(tr.src, "HouseFile", "House", "BaseLoads", "ClothesDryer"), "dryer_fuel")
	rangeFuel := r.sel(xmldoc.Resolve(tr.src, "HouseFile", "House", "BaseLoads", "CookingRange"), "range_fuel")
	hotWaterLoad := r.num(tr.src, "appliance_hot_water_load")
	if r.err != nil {
		return r.err
	}

	tr.state.SetBuildingDetails(map[string]any{detailHotWaterLoad: hotWaterLoad})

	washer := xmldoc.NewObject()
	washer.Set("SystemIdentifier", sysID("ClothesWasher1"))

	dryer := xmldoc.NewObject()
	dryer.Set("SystemIdentifier", sysID("ClothesDryer1"))
	dryer.Set("FuelType", dryerFuel)

	dishwasher := xmldoc.NewObject()
	dishwasher.Set("SystemIdentifier", sysID("Dishwasher1"))

	refrigerator := xmldoc.NewObject()
	refrigerator.Set("SystemIdentifier", sysID("Refrigerator1"))

	cookingRange := xmldoc.NewObject()
	cookingRange.Set("SystemIdentifier", sysID("CookingRange1"))
	cookingRange.Set("FuelType", rangeFuel)

	appliances := tr.details().EnsureChild("Appliances")
	appliances.Set("ClothesWasher", washer)
	appliances.Set("ClothesDryer", dryer)
	appliances.Set("Dishwasher", dishwasher)
	appliances.Set("Refrigerator", refrigerator)
	appliances.Set("CookingRange", cookingRange)
	return nil
}

// processLighting writes the fixed qualifying-fixture fractions for the
// three lighting groups.
func (tr *translation) processLighting() {
	lighting := tr.details().EnsureChild("Lighting")
	groups := []struct {
		id       string
		location string
		fraction string
	}{
		{"LightingGroup1", "interior", "0.4"},
		{"LightingGroup2", "exterior", "0.4"},
		{"LightingGroup3", "garage", "0.4"},
	}
	for _, g := range groups {
		kind := xmldoc.NewObject()
		kind.Set("LightEmittingDiode", "true")

		group := xmldoc.NewObject()
		group.Set("SystemIdentifier", sysID(g.id))
		group.Set("Location", g.location)
		group.Set("FractionofUnitsInLocation", g.fraction)
		group.Set("LightingType", kind)
		lighting.Append("LightingGroup", group)
	}
}

// processMiscLoads scales the annual plug load with the reconciled
// conditioned floor area.
func (tr *translation) processMiscLoads() {
	floorArea := tr.state.BuildingFloat(detailFloorArea, 0)
	kwhPerYear := roundTo(0.91*floorArea+455, 0)

	load := xmldoc.NewObject()
	load.Set("Value", f0(kwhPerYear))
	load.Set("Units", "kWh/year")

	plugLoad := xmldoc.NewObject()
	plugLoad.Set("SystemIdentifier", sysID("PlugLoad1"))
	plugLoad.Set("PlugLoadType", "other")
	plugLoad.Set("Load", load)

	tr.details().EnsureChild("MiscLoads").Set("PlugLoad", plugLoad)
}

// hvacPlant returns the Systems/HVAC/HVACPlant element, creating the chain
// on first use.
func (tr *translation) hvacPlant() *xmldoc.Object {
	return tr.details().EnsureChild("Systems").EnsureChild("HVAC").EnsureChild("HVACPlant")
}

func (tr *translation) hvacBlock() *xmldoc.Object {
	return tr.details().EnsureChild("Systems").EnsureChild("HVAC")
}
