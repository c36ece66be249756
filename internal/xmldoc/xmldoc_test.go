package xmldoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleXML = `<?xml version="1.0" encoding="UTF-8"?>
<House>
  <Specifications heated="true">
    <FacilityType>
      <English>Detached</English>
    </FacilityType>
    <HeatedFloorArea aboveGrade="92.9" belowGrade="80.0"/>
  </Specifications>
  <Components>
    <Wall>
      <Label>North wall</Label>
    </Wall>
    <Wall>
      <Label>South &amp; west walls</Label>
    </Wall>
  </Components>
</House>
`

func TestParseShapes(t *testing.T) {
	doc, err := Parse(sampleXML)
	require.NoError(t, err)

	house := doc.Child("House")
	require.NotNil(t, house)

	spec := house.Child("Specifications")
	require.NotNil(t, spec)
	assert.Equal(t, "true", spec.Text("@heated"))

	// Text-only element parses to a plain string leaf.
	facility := spec.Child("FacilityType")
	require.NotNil(t, facility)
	assert.Equal(t, "Detached", facility.Text("English"))

	// Attribute-only element parses to an object of @ keys.
	area := spec.Child("HeatedFloorArea")
	require.NotNil(t, area)
	assert.Equal(t, "92.9", area.Text("@aboveGrade"))

	// Repeated siblings accumulate into a list.
	walls, ok := house.Child("Components").Get("Wall")
	require.True(t, ok)
	list, ok := walls.([]any)
	require.True(t, ok)
	require.Len(t, list, 2)
	second := list[1].(*Object)
	assert.Equal(t, "South & west walls", second.Text("Label"))
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse("<House><Open></House>")
	require.Error(t, err)

	_, err = Parse("   ")
	require.Error(t, err)
}

func TestResolveFallbackReturnsLastAncestor(t *testing.T) {
	doc, err := Parse(sampleXML)
	require.NoError(t, err)

	// Full path reaches the leaf.
	v := Resolve(doc, "House", "Specifications", "FacilityType", "English")
	assert.Equal(t, "Detached", v)

	// Missing key partway down returns the last reached container, not nil.
	v = Resolve(doc, "House", "Specifications", "Basement", "Depth")
	spec := doc.Child("House").Child("Specifications")
	assert.Same(t, spec, v)
	assert.True(t, IsContainer(v))

	// A path that runs past a leaf returns the leaf unchanged.
	v = Resolve(doc, "House", "Specifications", "FacilityType", "English", "Deeper")
	assert.Equal(t, "Detached", v)
	assert.False(t, IsContainer(v))

	// Empty path returns the input.
	assert.Same(t, doc, Resolve(doc))
}

func TestResolveListIndexing(t *testing.T) {
	doc, err := Parse(sampleXML)
	require.NoError(t, err)

	v := Resolve(doc, "House", "Components", "Wall", "1", "Label")
	assert.Equal(t, "South & west walls", v)

	// Non-numeric key against a list falls back to the list itself.
	v = Resolve(doc, "House", "Components", "Wall", "Label")
	assert.True(t, IsContainer(v))
}

func TestListNormalization(t *testing.T) {
	assert.Empty(t, List(nil))
	assert.Equal(t, []any{"a"}, List("a"))
	assert.Equal(t, []any{"a", "b"}, List([]any{"a", "b"}))
}

func TestMarshalDeterministicAndSelfClosing(t *testing.T) {
	doc := NewObject()
	root := NewObject()
	doc.Set("HPXML", root)
	root.Set("@schemaVersion", "4.0")
	root.Set("SoftwareInfo", NewObject())
	summary := NewObject()
	summary.Set("ConditionedFloorArea", "1500.0")
	summary.Set("Empty", "")
	root.Set("BuildingSummary", summary)

	first, err := Marshal(doc)
	require.NoError(t, err)
	second, err := Marshal(doc)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	assert.Contains(t, first, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>")
	assert.Contains(t, first, "<SoftwareInfo/>")
	assert.Contains(t, first, "<Empty/>")
	assert.Contains(t, first, "<HPXML schemaVersion=\"4.0\">")
	assert.NotContains(t, first, "<SoftwareInfo></SoftwareInfo>")
}

func TestMarshalRoundTrip(t *testing.T) {
	doc, err := Parse(sampleXML)
	require.NoError(t, err)

	out, err := Marshal(doc)
	require.NoError(t, err)

	again, err := Parse(out)
	require.NoError(t, err)
	out2, err := Marshal(again)
	require.NoError(t, err)
	assert.Equal(t, out, out2)
}

func TestMarshalEmptyDocument(t *testing.T) {
	_, err := Marshal(nil)
	require.Error(t, err)
	_, err = Marshal(NewObject())
	require.Error(t, err)
}

func TestSelect(t *testing.T) {
	doc, err := Parse(sampleXML)
	require.NoError(t, err)

	walls, err := SelectObjects(doc, "//Components/Wall")
	require.NoError(t, err)
	require.Len(t, walls, 2)
	assert.Equal(t, "North wall", walls[0].Text("Label"))

	values, err := Select(doc, "//HeatedFloorArea/@aboveGrade")
	require.NoError(t, err)
	require.Len(t, values, 1)
	assert.Equal(t, "92.9", values[0])

	labels, err := Select(doc, "//Wall/Label")
	require.NoError(t, err)
	assert.Equal(t, []any{"North wall", "South & west walls"}, labels)

	_, err = Select(doc, "///")
	require.Error(t, err)
}
