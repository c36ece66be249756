// Reference test-protocol overrides. Applied to the whole document just
// before serialization when the translation runs in the standardized
// reference-building mode: occupancy, appliances and lighting are zeroed
// out, the plug load is fixed, and thermostat setpoints are pinned.

package translate

import (
	"github.com/h2ktools/h2k-to-hpxml-conversion/internal/xmldoc"
)

const (
	referencePlugLoadKWh     = "7302"
	referenceHeatingSetpoint = "68"
	referenceCoolingSetpoint = "78"
)

func (tr *translation) applyReferenceOverrides() {
	details := tr.details()

	occupancy := details.EnsureChild("BuildingSummary").EnsureChild("BuildingOccupancy")
	occupancy.Set("NumberofResidents", "0")

	details.Set("Appliances", xmldoc.NewObject())
	details.Set("Lighting", xmldoc.NewObject())

	load := xmldoc.NewObject()
	load.Set("Value", referencePlugLoadKWh)
	load.Set("Units", "kWh/year")

	plugLoad := xmldoc.NewObject()
	plugLoad.Set("SystemIdentifier", sysID("PlugLoad1"))
	plugLoad.Set("PlugLoadType", "other")
	plugLoad.Set("Load", load)

	miscLoads := xmldoc.NewObject()
	miscLoads.Set("PlugLoad", plugLoad)
	details.Set("MiscLoads", miscLoads)

	setpoints := xmldoc.NewObject()
	setpoints.Set("SystemIdentifier", sysID("HVACControl1"))
	setpoints.Set("SetpointTempHeatingSeason", referenceHeatingSetpoint)
	setpoints.Set("SetpointTempCoolingSeason", referenceCoolingSetpoint)

	hvac := details.EnsureChild("Systems").EnsureChild("HVAC")
	hvac.Set("HVACControl", setpoints)
}
