// Stage 1: building details. Seeds the Model State with the facility type,
// heated floor areas and occupancy counts, writes the building summary into
// the template, and pulls the embedded prior-run result sets out of the
// source document.

package translate

import (
	"github.com/h2ktools/h2k-to-hpxml-conversion/internal/xmldoc"
)

// Building-detail keys shared between stages.
const (
	detailFacilityType   = "facility_type"
	detailAreaAboveGrade = "heated_floor_area_above_grade"
	detailAreaBelowGrade = "heated_floor_area_below_grade"
	detailOccupants      = "occupants"
	detailBedrooms       = "bedrooms"
	detailBathrooms      = "bathrooms"
	detailStoreys        = "storeys"
	detailHotWaterLoad   = "hot_water_load_gpd"
	detailFloorArea      = "conditioned_floor_area"
)

func (tr *translation) buildingStage() error {
	r := tr.reader()

	facility := r.sel(tr.src, "facility_type")
	storeys := r.sel(tr.src, "storeys")
	aboveGrade := r.num(tr.src, "heated_floor_area_above_grade")
	belowGrade := r.num(tr.src, "heated_floor_area_below_grade")
	adults := r.num(tr.src, "number_of_adults")
	children := r.num(tr.src, "number_of_children")
	bedrooms := r.num(tr.src, "number_of_bedrooms")
	bathrooms := r.num(tr.src, "number_of_bathrooms")
	yearBuilt := r.num(tr.src, "year_built")
	if r.err != nil {
		return r.err
	}

	occupants := adults + children
	if bathrooms <= 0 {
		tr.state.AddWarning("source declares %d bathrooms; defaulting to 1", int(bathrooms))
		bathrooms = 1
	}

	tr.state.SetBuildingDetails(map[string]any{
		detailFacilityType:   facility,
		detailAreaAboveGrade: aboveGrade,
		detailAreaBelowGrade: belowGrade,
		detailOccupants:      occupants,
		detailBedrooms:       bedrooms,
		detailBathrooms:      bathrooms,
		detailStoreys:        storeys,
	})

	summary := tr.details().EnsureChild("BuildingSummary")
	occupancy := summary.EnsureChild("BuildingOccupancy")
	occupancy.Set("NumberofResidents", f0(occupants))

	construction := summary.EnsureChild("BuildingConstruction")
	if yearBuilt > 0 {
		construction.Set("YearBuilt", f0(yearBuilt))
	}
	construction.Set("ResidentialFacilityType", facility)
	construction.Set("NumberofConditionedFloorsAboveGrade", storeys)
	construction.Set("NumberofBedrooms", f0(bedrooms))
	construction.Set("NumberofBathrooms", f0(bathrooms))
	// Provisional; the enclosure stage reconciles this against the
	// foundation component areas.
	construction.Set("ConditionedFloorArea", f1(aboveGrade+belowGrade))

	tr.extractResultSets()
	return nil
}

// extractResultSets copies up to three labeled prior-run result sets out of
// the source document's AllResults block. Result sets can sit at different
// depths depending on the H2K version, so they are located by query rather
// than by a fixed address.
func (tr *translation) extractResultSets() {
	labels := map[string]string{
		"General":   ResultsGeneral,
		"Reference": ResultsReferenceHouse,
		"SOC":       ResultsSOC,
	}
	sets, err := xmldoc.SelectObjects(tr.src, "//AllResults/Results")
	if err != nil {
		return
	}
	for _, set := range sets {
		if label, ok := labels[set.Text("@houseCode")]; ok {
			tr.state.SetResults(label, set)
		}
	}
}
