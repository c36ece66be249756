// Mechanical ventilation, solar thermal and on-site generation.

package translate

import (
	"github.com/h2ktools/h2k-to-hpxml-conversion/internal/xmldoc"
)

func (tr *translation) processVentilation() error {
	hrv, _ := xmldoc.Resolve(tr.src, "HouseFile", "House", "Ventilation", "WholeHouseVentilatorList", "Hrv").(*xmldoc.Object)
	if hrv == nil {
		return nil
	}

	r := tr.reader()
	supply := r.num(hrv, "hrv_supply_flow")
	exhaust := r.num(hrv, "hrv_exhaust_flow")
	efficiency := r.num(hrv, "hrv_efficiency")
	if r.err != nil {
		return r.err
	}

	id := "VentilationFan1"
	tr.state.RegisterSystemID(RoleMechanicalVentilation, id)

	rate := supply
	if exhaust > rate {
		rate = exhaust
	}

	fan := xmldoc.NewObject()
	fan.Set("SystemIdentifier", sysID(id))
	fan.Set("FanType", "heat recovery ventilator")
	fan.Set("RatedFlowRate", f0(rate))
	fan.Set("HoursInOperation", "24")
	fan.Set("UsedForWholeBuildingVentilation", "true")
	if efficiency > 0 {
		fan.Set("SensibleRecoveryEfficiency", f2(efficiency/100))
	}

	ventilation := tr.details().EnsureChild("Systems").EnsureChild("MechanicalVentilation")
	ventilation.EnsureChild("VentilationFans").Set("VentilationFan", fan)
	return nil
}

// processSolarThermal emits a solar hot-water system when the source
// declares a collector. It serves the registered water heater.
func (tr *translation) processSolarThermal() error {
	area, err := tr.number(tr.src, "solar_collector_area")
	if err != nil {
		return err
	}
	if area <= 0 {
		return nil
	}

	id := "SolarThermalSystem1"
	tr.state.RegisterSystemID(RoleSolarThermal, id)

	system := xmldoc.NewObject()
	system.Set("SystemIdentifier", sysID(id))
	system.Set("SystemType", "hot water")
	system.Set("CollectorArea", f1(area))
	if heaterID, ok := tr.state.SystemID(RoleWaterHeater); ok {
		system.Set("ConnectedTo", idref(heaterID))
	}

	solar := tr.details().EnsureChild("Systems").EnsureChild("SolarThermal")
	solar.Set("SolarThermalSystem", system)
	return nil
}

func (tr *translation) processGeneration() error {
	capacity, err := tr.number(tr.src, "pv_capacity")
	if err != nil {
		return err
	}
	if capacity <= 0 {
		return nil
	}

	id := "PVSystem1"
	tr.state.RegisterSystemID(RolePVSystem, id)

	system := xmldoc.NewObject()
	system.Set("SystemIdentifier", sysID(id))
	system.Set("LocationType", "roof")
	system.Set("ModuleType", "standard")
	system.Set("MaxPowerOutput", f0(capacity))

	photovoltaics := tr.details().EnsureChild("Systems").EnsureChild("Photovoltaics")
	photovoltaics.Set("PVSystem", system)
	return nil
}
