// HVAC distribution. Equipment requests a distribution system by kind and
// sub-type; requests de-duplicate on that pair so every piece of equipment
// wanting the same ductwork or piping cross-references a single shared
// instance, in first-seen order.

package translate

import (
	"strconv"

	"github.com/h2ktools/h2k-to-hpxml-conversion/internal/xmldoc"
)

// Distribution kinds and the sub-types the equipment processors request.
const (
	distAir      = "air"
	distHydronic = "hydronic"

	subRegularVelocity = "regular velocity"
	subRadiator        = "radiator"
	subRadiantFloor    = "radiant floor"
	subRadiantCeiling  = "radiant ceiling"
)

type distributionSystem struct {
	id      string
	kind    string
	subType string
}

// requestDistribution returns the ID of the distribution system matching
// (kind, subType), minting it on first request. The first air and hydronic
// systems also fill their roles in the system registry.
func (sys *systemsState) requestDistribution(tr *translation, kind, subType string) string {
	for _, d := range sys.distributions {
		if d.kind == kind && d.subType == subType {
			return d.id
		}
	}
	id := "HVACDistribution" + strconv.Itoa(len(sys.distributions)+1)
	sys.distributions = append(sys.distributions, &distributionSystem{id: id, kind: kind, subType: subType})

	role := RoleHydronicDistribution
	if kind == distAir {
		role = RoleAirDistribution
	}
	tr.state.RegisterSystemID(role, id)
	return id
}

// writeDistributions emits the accumulated distribution systems into the
// HVAC block, after all equipment has been processed.
func (sys *systemsState) writeDistributions(tr *translation) {
	if len(sys.distributions) == 0 {
		return
	}
	hvac := tr.hvacBlock()
	for _, d := range sys.distributions {
		inner := xmldoc.NewObject()
		switch d.kind {
		case distAir:
			air := xmldoc.NewObject()
			air.Set("AirDistributionType", d.subType)
			ductLeakage := ductLeakageToOutside()
			air.Set("DuctLeakageMeasurement", ductLeakage)
			inner.Set("AirDistribution", air)
		case distHydronic:
			hydronic := xmldoc.NewObject()
			hydronic.Set("HydronicDistributionType", d.subType)
			inner.Set("HydronicDistribution", hydronic)
		}

		record := xmldoc.NewObject()
		record.Set("SystemIdentifier", sysID(d.id))
		record.Set("DistributionSystemType", inner)
		hvac.Append("HVACDistribution", record)
	}
}

func ductLeakageToOutside() *xmldoc.Object {
	units := xmldoc.NewObject()
	units.Set("Units", "CFM25")
	units.Set("TotalOrToOutside", "to outside")
	units.Set("Value", "0.0")

	m := xmldoc.NewObject()
	m.Set("DuctType", "supply")
	m.Set("DuctLeakage", units)
	return m
}
