package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/h2ktools/h2k-to-hpxml-conversion/internal/hpxml"
	"github.com/h2ktools/h2k-to-hpxml-conversion/internal/xmldoc"
)

func newTemplate(t *testing.T) *xmldoc.Object {
	t.Helper()
	doc, err := hpxml.Load()
	require.NoError(t, err)
	return doc
}

func TestExtractResultSets(t *testing.T) {
	src := parseDoc(t, `<HouseFile>
		<AllResults>
			<Results houseCode="General"><Annual energy="120.5"/></Results>
			<Results houseCode="SOC"><Annual energy="118.2"/></Results>
			<Results houseCode="Unrelated"><Annual energy="1.0"/></Results>
		</AllResults>
	</HouseFile>`)

	tr := &translation{src: src, state: NewModelState()}
	tr.extractResultSets()

	general, ok := tr.state.Results(ResultsGeneral)
	require.True(t, ok)
	assert.Equal(t, "120.5", general.Child("Annual").Text("@energy"))

	_, ok = tr.state.Results(ResultsSOC)
	assert.True(t, ok)
	_, ok = tr.state.Results(ResultsReferenceHouse)
	assert.False(t, ok)
}

func TestBuildingStageBathroomFloor(t *testing.T) {
	src := parseDoc(t, `<HouseFile><House><Specifications>
		<FacilityType><English>Detached</English></FacilityType>
		<Storeys><English>Two storeys</English></Storeys>
		<HeatedFloorArea aboveGrade="150.0" belowGrade="70.0"/>
		<Bedrooms value="4"/>
		<Bathrooms value="0"/>
	</Specifications></House></HouseFile>`)

	tables := loadTables(t)
	doc := newTemplate(t)
	tr := &translation{src: src, doc: doc, state: NewModelState(), tables: tables, cfg: DefaultConfig()}

	require.NoError(t, tr.buildingStage())

	assert.Equal(t, 1.0, tr.state.BuildingFloat(detailBathrooms, 0))
	require.Len(t, tr.state.Warnings(), 1)
	assert.Contains(t, tr.state.Warnings()[0].Message, "bathrooms")

	construction := tr.details().Child("BuildingSummary").Child("BuildingConstruction")
	require.NotNil(t, construction)
	assert.Equal(t, "2", construction.Text("NumberofConditionedFloorsAboveGrade"))
	assert.Equal(t, "4", construction.Text("NumberofBedrooms"))
}
