package hpxml

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbedded(t *testing.T) {
	doc, err := Load()
	require.NoError(t, err)

	root := doc.Child("HPXML")
	require.NotNil(t, root)
	assert.Equal(t, "4.0", root.Text("@schemaVersion"))

	details := root.Child("Building").Child("BuildingDetails")
	require.NotNil(t, details)
	assert.NotNil(t, details.Child("BuildingSummary"))
	assert.NotNil(t, details.Child("Enclosure"))
	assert.NotNil(t, details.Child("Systems"))
}

func TestLoadReturnsFreshCopies(t *testing.T) {
	a, err := Load()
	require.NoError(t, err)
	b, err := Load()
	require.NoError(t, err)

	a.Child("HPXML").Set("@schemaVersion", "changed")
	assert.Equal(t, "4.0", b.Child("HPXML").Text("@schemaVersion"))
}

func TestLoadOverridePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.xml")
	require.NoError(t, os.WriteFile(path,
		[]byte(`<HPXML schemaVersion="9.9"><Building><BuildingDetails/></Building></HPXML>`), 0o644))

	t.Setenv(EnvTemplateOverride, path)
	doc, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9.9", doc.Child("HPXML").Text("@schemaVersion"))

	// Self-closing elements are promoted so stages can write into them.
	assert.NotNil(t, doc.Child("HPXML").Child("Building").Child("BuildingDetails"))
}

func TestLoadRejectsIncompleteTemplate(t *testing.T) {
	cases := map[string]string{
		"no root":             `<SomethingElse/>`,
		"no building":         `<HPXML schemaVersion="4.0"/>`,
		"no building details": `<HPXML schemaVersion="4.0"><Building/></HPXML>`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "sparse.xml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
			t.Setenv(EnvTemplateOverride, path)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "missing")
		})
	}
}

func TestLoadOverrideUnreadableFailsLoudly(t *testing.T) {
	t.Setenv(EnvTemplateOverride, filepath.Join(t.TempDir(), "missing.xml"))
	_, err := Load()
	require.Error(t, err)
}
