// Water heating. The primary tank becomes a WaterHeatingSystem; fixture
// usage is scaled by the ratio of the declared hot-water consumption to the
// bedroom-count baseline computed by processAppliances beforehand.

package translate

import (
	"github.com/h2ktools/h2k-to-hpxml-conversion/internal/xmldoc"
)

func (tr *translation) processWaterHeating() error {
	primary, _ := xmldoc.Resolve(tr.src, "HouseFile", "House", "Components", "HotWater", "Primary").(*xmldoc.Object)
	if primary == nil {
		return nil
	}

	r := tr.reader()
	fuel := r.sel(primary, "water_heater_fuel")
	kind := r.sel(primary, "water_heater_type")
	volume := r.num(primary, "water_heater_volume")
	ef := r.num(primary, "water_heater_ef")
	if r.err != nil {
		return r.err
	}
	tr.recordEquipmentFlue(primary)

	id := "WaterHeatingSystem1"
	tr.state.RegisterSystemID(RoleWaterHeater, id)

	heater := xmldoc.NewObject()
	heater.Set("SystemIdentifier", sysID(id))
	heater.Set("FuelType", fuel)
	heater.Set("WaterHeaterType", kind)
	heater.Set("Location", "conditioned space")
	if kind != "instantaneous water heater" && volume > 0 {
		heater.Set("TankVolume", f1(volume))
	}
	heater.Set("FractionDHWLoadServed", "1.0")
	if ef > 0 {
		heater.Set("EnergyFactor", f2(ef))
	}

	distribution := xmldoc.NewObject()
	distribution.Set("SystemIdentifier", sysID("HotWaterDistribution1"))
	systemType := xmldoc.NewObject()
	systemType.Set("Standard", emptyElement())
	distribution.Set("SystemType", systemType)

	waterHeating := tr.details().EnsureChild("Systems").EnsureChild("WaterHeating")
	waterHeating.Set("WaterHeatingSystem", heater)
	waterHeating.Set("HotWaterDistribution", distribution)
	tr.writeWaterFixtures(waterHeating)
	return nil
}

// writeWaterFixtures emits the two standard fixtures with the usage
// multiplier derived from the source's declared hot-water load.
func (tr *translation) writeWaterFixtures(waterHeating *xmldoc.Object) {
	shower := xmldoc.NewObject()
	shower.Set("SystemIdentifier", sysID("WaterFixture1"))
	shower.Set("WaterFixtureType", "shower head")
	shower.Set("LowFlow", "false")

	faucet := xmldoc.NewObject()
	faucet.Set("SystemIdentifier", sysID("WaterFixture2"))
	faucet.Set("WaterFixtureType", "faucet")
	faucet.Set("LowFlow", "false")

	waterHeating.Set("WaterFixture", []any{shower, faucet})

	ext := xmldoc.NewObject()
	ext.Set("WaterFixturesUsageMultiplier", f2(tr.fixtureUsageMultiplier()))
	waterHeating.Set("extension", ext)
}

// fixtureUsageMultiplier is the declared daily hot-water consumption over
// the bedroom-scaled baseline. A source with no declared load keeps the
// neutral multiplier.
func (tr *translation) fixtureUsageMultiplier() float64 {
	load := tr.state.BuildingFloat(detailHotWaterLoad, 0)
	if load <= 0 {
		return 1
	}
	bedrooms := tr.state.BuildingFloat(detailBedrooms, 0)
	baseline := 14.6 + 10.0*bedrooms
	if baseline <= 0 {
		return 1
	}
	return roundTo(load/baseline, 2)
}
