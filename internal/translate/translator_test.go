package translate

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/h2ktools/h2k-to-hpxml-conversion/internal/hpxml"
)

type stubWeather struct {
	station    string
	err        error
	calls      int
	lastRegion string
	lastCity   string
}

func (s *stubWeather) Resolve(region, city string) (string, error) {
	s.calls++
	s.lastRegion = region
	s.lastCity = city
	if s.err != nil {
		return "", s.err
	}
	return s.station, nil
}

func newTestTranslator(t *testing.T, weather WeatherResolver) *Translator {
	t.Helper()
	tr, err := New(weather)
	require.NoError(t, err)
	return tr
}

const minimalHouse = `<?xml version="1.0" encoding="UTF-8"?>
<HouseFile>
  <ProgramInformation>
    <Weather>
      <Region><English>ONTARIO</English></Region>
      <Location><English>OTTAWA</English></Location>
    </Weather>
  </ProgramInformation>
  <House>
    <Specifications>
      <FacilityType><English>Detached</English></FacilityType>
      <Storeys><English>One storey</English></Storeys>
      <HeatedFloorArea aboveGrade="120.0" belowGrade="0.0"/>
      <Bedrooms value="3"/>
      <Bathrooms value="0"/>
    </Specifications>
    <NaturalAirInfiltration>
      <Specifications>
        <BlowerTest airChangeRate="2.50"/>
        <House volume="500.0"/>
      </Specifications>
    </NaturalAirInfiltration>
    <BaseLoads>
      <Occupancy adults="2" children="1"/>
    </BaseLoads>
    <Components/>
  </House>
</HouseFile>
`

func TestTranslateMinimalHouse(t *testing.T) {
	weather := &stubWeather{station: "CAN_ON_Ottawa.Intl.AP.716280_CWEC2020"}
	tr := newTestTranslator(t, weather)

	out, err := tr.Translate(minimalHouse, nil)
	require.NoError(t, err)

	// Zero declared bathrooms floors to one, with a recorded warning.
	assert.Contains(t, out.XML, "<NumberofBathrooms>1</NumberofBathrooms>")
	found := false
	for _, w := range out.Warnings {
		if strings.Contains(w.Message, "bathrooms") {
			found = true
		}
	}
	assert.True(t, found, "expected a bathrooms warning, got %v", out.Warnings)

	// No walls in the source means no Walls category at all.
	assert.NotContains(t, out.XML, "<Walls>")

	// The weather collaborator is consulted with the source's location.
	assert.Equal(t, 1, weather.calls)
	assert.Equal(t, "ONTARIO", weather.lastRegion)
	assert.Equal(t, "OTTAWA", weather.lastCity)
	assert.Contains(t, out.XML, "CAN_ON_Ottawa.Intl.AP.716280_CWEC2020")

	assert.Contains(t, out.XML, "<NumberofResidents>3</NumberofResidents>")
	assert.Contains(t, out.XML, "<ConditionedFloorArea>1291.7</ConditionedFloorArea>")

	// The blower-test rate keeps its table precision.
	assert.Contains(t, out.XML, "<AirLeakage>2.50</AirLeakage>")
}

func TestTranslateIdempotent(t *testing.T) {
	tr := newTestTranslator(t, &stubWeather{station: "CAN_ON_Ottawa.Intl.AP.716280_CWEC2020"})

	first, err := tr.Translate(minimalHouse, nil)
	require.NoError(t, err)
	second, err := tr.Translate(minimalHouse, nil)
	require.NoError(t, err)

	assert.Equal(t, first.XML, second.XML)
}

func TestTranslateMissingRegion(t *testing.T) {
	src := strings.Replace(minimalHouse,
		"<Region><English>ONTARIO</English></Region>", "", 1)
	weather := &stubWeather{station: "unused"}
	tr := newTestTranslator(t, weather)

	_, err := tr.Translate(src, nil)
	require.Error(t, err)
	var we *WeatherError
	assert.True(t, errors.As(err, &we))
	assert.Equal(t, 0, weather.calls)
}

func TestTranslateReferenceStation(t *testing.T) {
	src := strings.Replace(minimalHouse, "OTTAWA", "Lasvega", 1)
	weather := &stubWeather{err: errors.New("must not be called")}
	tr := newTestTranslator(t, weather)

	out, err := tr.Translate(src, &Config{Mode: ModeASHRAE140})
	require.NoError(t, err)

	// Reference mode resolves from the fixed table, never the collaborator.
	assert.Equal(t, 0, weather.calls)
	assert.Contains(t, out.XML, "USA_NV_Las.Vegas-McCarran.Intl.AP.723860_TMY3")

	// Reference overrides zero the occupancy and pin the setpoints.
	assert.Contains(t, out.XML, "<NumberofResidents>0</NumberofResidents>")
	assert.Contains(t, out.XML, "<SetpointTempHeatingSeason>68</SetpointTempHeatingSeason>")
	assert.Contains(t, out.XML, "<SetpointTempCoolingSeason>78</SetpointTempCoolingSeason>")
}

func TestTranslateIncompleteTemplateOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sparse.xml")
	require.NoError(t, os.WriteFile(path, []byte(`<HPXML schemaVersion="4.0"/>`), 0o644))
	t.Setenv(hpxml.EnvTemplateOverride, path)

	tr := newTestTranslator(t, &stubWeather{station: "x"})

	// A template without the Building chain must surface as a
	// configuration error, never crash the translation.
	_, err := tr.Translate(minimalHouse, nil)
	require.Error(t, err)
	var ce *ConfigError
	assert.True(t, errors.As(err, &ce))
}

func TestTranslateUnknownMode(t *testing.T) {
	tr := newTestTranslator(t, &stubWeather{station: "x"})

	_, err := tr.Translate(minimalHouse, &Config{Mode: Mode("TURBO")})
	require.Error(t, err)
	var ce *ConfigError
	assert.True(t, errors.As(err, &ce))
}

func TestTranslateMalformedSource(t *testing.T) {
	tr := newTestTranslator(t, &stubWeather{station: "x"})

	_, err := tr.Translate("<HouseFile><unclosed>", nil)
	var pe *ParseError
	assert.True(t, errors.As(err, &pe))

	// Well-formed XML without the required root is also a parse error.
	_, err = tr.Translate("<SomethingElse/>", nil)
	assert.True(t, errors.As(err, &pe))
}

func withComponents(body string) string {
	return strings.Replace(minimalHouse, "<Components/>", "<Components>"+body+"</Components>", 1)
}

func TestTranslateWallWithWindow(t *testing.T) {
	src := withComponents(`
      <Wall>
        <Label>North wall</Label>
        <Construction><Type nominalInsulation="3.5"/></Construction>
        <Measurements height="2.5" perimeter="40.0"/>
        <Components>
          <Window>
            <Label>Kitchen window</Label>
            <Construction><Type rsi="0.7" shgc="0.55"/></Construction>
            <Measurements height="1200.0" width="900.0"/>
            <FacingDirection><English>South</English></FacingDirection>
          </Window>
        </Components>
      </Wall>`)
	tr := newTestTranslator(t, &stubWeather{station: "CAN_ON_Ottawa.Intl.AP.716280_CWEC2020"})

	out, err := tr.Translate(src, nil)
	require.NoError(t, err)

	assert.Contains(t, out.XML, `<SystemIdentifier id="Wall1"/>`)
	assert.Contains(t, out.XML, `<SystemIdentifier id="Window1"/>`)
	assert.Contains(t, out.XML, `<AttachedToWall idref="Wall1"/>`)
	assert.Contains(t, out.XML, "<Azimuth>180</Azimuth>")
	for _, w := range out.Warnings {
		assert.NotContains(t, w.Message, "North wall")
	}
}

func TestTranslateZeroResistanceWallStillEmitted(t *testing.T) {
	src := withComponents(`
      <Wall>
        <Label>Garage wall</Label>
        <Construction><Type nominalInsulation="0.0"/></Construction>
        <Measurements height="2.5" perimeter="10.0"/>
      </Wall>`)
	tr := newTestTranslator(t, &stubWeather{station: "CAN_ON_Ottawa.Intl.AP.716280_CWEC2020"})

	out, err := tr.Translate(src, nil)
	require.NoError(t, err)

	assert.Contains(t, out.XML, `<SystemIdentifier id="Wall1"/>`)
	found := false
	for _, w := range out.Warnings {
		if strings.Contains(w.Message, "Garage wall") {
			found = true
		}
	}
	assert.True(t, found, "expected a warning naming the wall, got %v", out.Warnings)
}

func TestTranslateOversizedOpeningsWarn(t *testing.T) {
	src := withComponents(`
      <Wall>
        <Label>South wall</Label>
        <Construction><Type nominalInsulation="3.5"/></Construction>
        <Measurements height="2.5" perimeter="10.0"/>
        <Components>
          <Window>
            <Label>Sunroom glazing</Label>
            <Construction><Type rsi="0.7" shgc="0.55"/></Construction>
            <Measurements height="10000.0" width="10000.0"/>
          </Window>
        </Components>
      </Wall>`)
	tr := newTestTranslator(t, &stubWeather{station: "CAN_ON_Ottawa.Intl.AP.716280_CWEC2020"})

	out, err := tr.Translate(src, nil)
	require.NoError(t, err)

	found := false
	for _, w := range out.Warnings {
		if strings.Contains(w.Message, "openings") && strings.Contains(w.Message, "South wall") {
			found = true
		}
	}
	assert.True(t, found, "expected an openings warning, got %v", out.Warnings)
}

func TestTranslateSharedAirDistribution(t *testing.T) {
	src := strings.Replace(minimalHouse, "<Components/>", `<Components/>
    <HeatingCooling>
      <Type1>
        <Furnace>
          <Equipment flueDiameter="127.0">
            <EnergySource><English>Natural gas</English></EnergySource>
          </Equipment>
          <Specifications efficiency="95.0">
            <OutputCapacity value="20.0"/>
          </Specifications>
        </Furnace>
      </Type1>
      <Type2>
        <AirHeatPump>
          <Function><English>Both</English></Function>
          <Specifications>
            <OutputCapacity value="10.0"/>
            <HeatingEfficiency value="3.20"/>
          </Specifications>
        </AirHeatPump>
      </Type2>
    </HeatingCooling>`, 1)
	tr := newTestTranslator(t, &stubWeather{station: "CAN_ON_Ottawa.Intl.AP.716280_CWEC2020"})

	out, err := tr.Translate(src, nil)
	require.NoError(t, err)

	// Both air-ducted systems share one distribution instance.
	assert.Equal(t, 1, strings.Count(out.XML, "<HVACDistribution>"))
	assert.Equal(t, 2, strings.Count(out.XML, `<DistributionSystem idref="HVACDistribution1"/>`))

	// Combustion equipment back-fills the enclosure flue flag.
	assert.Contains(t, out.XML, "<HasFlueOrChimneyInConditionedSpace>true</HasFlueOrChimneyInConditionedSpace>")
}

func TestTranslateBasementAreaReconciliation(t *testing.T) {
	src := withComponents(`
      <Basement>
        <Label>Main basement</Label>
        <Wall>
          <Construction><Type nominalInsulation="2.0"/></Construction>
          <Measurements height="2.4" depth="1.8"/>
        </Wall>
        <Floor>
          <Construction/>
          <Measurements area="90.0" perimeter="38.0" exposedSurfacePerimeter="30.0"/>
        </Floor>
      </Basement>`)
	tr := newTestTranslator(t, &stubWeather{station: "CAN_ON_Ottawa.Intl.AP.716280_CWEC2020"})

	out, err := tr.Translate(src, nil)
	require.NoError(t, err)

	// Declared below-grade area is zero, so the basement's own floor area
	// wins the reconciliation: 120 m2 above grade + 90 m2 basement.
	assert.Contains(t, out.XML, "<ConditionedFloorArea>2260.5</ConditionedFloorArea>")
	assert.Contains(t, out.XML, `<SystemIdentifier id="FoundationWall1"/>`)
	assert.Contains(t, out.XML, `<SystemIdentifier id="Slab1"/>`)
	assert.Contains(t, out.XML, `<SystemIdentifier id="Foundation1"/>`)
}

func TestTranslateTestWall(t *testing.T) {
	tr := newTestTranslator(t, &stubWeather{station: "CAN_ON_Ottawa.Intl.AP.716280_CWEC2020"})

	out, err := tr.Translate(minimalHouse, &Config{AddTestWall: true, Mode: ModeSOC})
	require.NoError(t, err)
	assert.Contains(t, out.XML, "<Walls>")
	assert.Contains(t, out.XML, `<SystemIdentifier id="Wall1"/>`)
}
