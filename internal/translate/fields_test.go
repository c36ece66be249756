package translate

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/h2ktools/h2k-to-hpxml-conversion/internal/mapping"
	"github.com/h2ktools/h2k-to-hpxml-conversion/internal/xmldoc"
)

func loadTables(t *testing.T) *mapping.Tables {
	t.Helper()
	tables, err := mapping.Default()
	require.NoError(t, err)
	return tables
}

func parseDoc(t *testing.T, src string) *xmldoc.Object {
	t.Helper()
	doc, err := xmldoc.Parse(src)
	require.NoError(t, err)
	return doc
}

func TestGetSelection(t *testing.T) {
	tables := loadTables(t)
	doc := parseDoc(t, `<HouseFile><House><Specifications>
		<FacilityType><English>Detached</English></FacilityType>
	</Specifications></House></HouseFile>`)

	v, err := getSelection(tables, doc, "facility_type")
	require.NoError(t, err)
	assert.Equal(t, "single-family detached", v)

	// Missing element bottoms out on an ancestor container and yields the
	// table default.
	empty := parseDoc(t, `<HouseFile><House/></HouseFile>`)
	v, err = getSelection(tables, empty, "facility_type")
	require.NoError(t, err)
	assert.Equal(t, "single-family detached", v)

	// A raw string absent from the translation map also defaults.
	odd := parseDoc(t, `<HouseFile><House><Specifications>
		<FacilityType><English>Houseboat</English></FacilityType>
	</Specifications></House></HouseFile>`)
	v, err = getSelection(tables, odd, "facility_type")
	require.NoError(t, err)
	assert.Equal(t, "single-family detached", v)
}

func TestGetSelectionUnknownKey(t *testing.T) {
	tables := loadTables(t)
	doc := parseDoc(t, `<HouseFile/>`)

	_, err := getSelection(tables, doc, "no_such_field")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownField))
	var ce *ConfigError
	assert.True(t, errors.As(err, &ce))
}

func TestGetNumber(t *testing.T) {
	tables := loadTables(t)
	doc := parseDoc(t, `<HouseFile><House><Specifications>
		<HeatedFloorArea aboveGrade="92.9"/>
		<Bedrooms value="3.7"/>
	</Specifications></House></HouseFile>`)

	// Unit conversion plus rounding to the table's decimals.
	v, err := getNumber(tables, doc, "heated_floor_area_above_grade")
	require.NoError(t, err)
	assert.InDelta(t, 1000.0, v, 0.05)

	// decimals == 0 truncates before conversion.
	v, err = getNumber(tables, doc, "number_of_bedrooms")
	require.NoError(t, err)
	assert.Equal(t, 3.0, v)

	// An address that bottoms out on a container reads as zero.
	v, err = getNumber(tables, doc, "number_of_adults")
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)

	_, err = getNumber(tables, doc, "no_such_field")
	assert.True(t, errors.Is(err, ErrUnknownField))
}

func compositeDoc(t *testing.T, body string) *xmldoc.Object {
	t.Helper()
	doc := parseDoc(t, `<Wall><Construction><Type nominalInsulation="3.0">`+body+`</Type></Construction></Wall>`)
	return doc.Child("Wall")
}

func TestCompositeFlatValue(t *testing.T) {
	wall := compositeDoc(t, "")
	v, err := compositeRValue(wall, CoreWood)
	require.NoError(t, err)
	assert.Equal(t, roundTo(3.0*rValuePerRSI, 4), v)
}

func TestCompositeWeightedBlend(t *testing.T) {
	// 60% at RSI 3.0, the remainder implicitly 40% at RSI 2.0, wood core.
	wall := compositeDoc(t, `<Composite>
		<Section rsi="3.0" percentage="60"/>
		<Section rsi="2.0"/>
	</Composite>`)
	v, err := compositeRValue(wall, CoreWood)
	require.NoError(t, err)

	offset := coreRSIWood * rValuePerRSI
	r1 := 3.0 * rValuePerRSI
	r2 := 2.0 * rValuePerRSI
	expected := roundTo(100/(60/(r1-offset)+40/(r2-offset))+offset, 4)
	assert.Equal(t, expected, v)

	// Blending sits between the section values.
	assert.Greater(t, v, r2)
	assert.Less(t, v, r1)
}

func TestCompositeOrderIndependent(t *testing.T) {
	a := compositeDoc(t, `<Composite>
		<Section rsi="3.0" percentage="60"/>
		<Section rsi="2.0" percentage="40"/>
	</Composite>`)
	b := compositeDoc(t, `<Composite>
		<Section rsi="2.0" percentage="40"/>
		<Section rsi="3.0" percentage="60"/>
	</Composite>`)

	va, err := compositeRValue(a, CoreWood)
	require.NoError(t, err)
	vb, err := compositeRValue(b, CoreWood)
	require.NoError(t, err)
	assert.Equal(t, va, vb)
}

func TestCompositeConcreteOffset(t *testing.T) {
	wall := compositeDoc(t, `<Composite>
		<Section rsi="3.0" percentage="60"/>
		<Section rsi="2.0" percentage="40"/>
	</Composite>`)
	wood, err := compositeRValue(wall, CoreWood)
	require.NoError(t, err)
	concrete, err := compositeRValue(wall, CoreConcrete)
	require.NoError(t, err)
	assert.NotEqual(t, wood, concrete)
}

func TestRoundNormalizesNegativeZero(t *testing.T) {
	v := roundTo(-0.00001, 4)
	assert.Equal(t, 0.0, v)
	assert.False(t, math.Signbit(v))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "3", formatNumber(3, 0))
	assert.Equal(t, "3.1", formatNumber(3.1, 1))
	assert.Equal(t, "2.3679", formatNumber(2.36789, 4))
}
