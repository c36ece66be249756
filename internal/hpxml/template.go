// =============================================================================
// H2K to HPXML Translator - HPXML Template Module
// =============================================================================
//
// This module supplies the HPXML skeleton that every translation fills in.
// Each call to Load parses a fresh copy, so concurrent translations never
// share a template tree.
//
// RESOLUTION ORDER:
//   1. An explicit override path (H2KHPXML_TEMPLATE environment variable)
//   2. templates/base.xml relative to the working directory (development)
//   3. The copy embedded in the binary
//
// An override that is set but unreadable is an error, never silently skipped.
//
// =============================================================================

package hpxml

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/h2ktools/h2k-to-hpxml-conversion/internal/xmldoc"
)

//go:embed template.xml
var embeddedTemplate string

// EnvTemplateOverride names the environment variable holding an explicit
// template path.
const EnvTemplateOverride = "H2KHPXML_TEMPLATE"

const devTemplatePath = "templates/base.xml"

// Load returns a freshly parsed template document.
func Load() (*xmldoc.Object, error) {
	source, origin, err := templateSource()
	if err != nil {
		return nil, err
	}
	doc, err := xmldoc.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", origin, err)
	}
	root := doc.Child("HPXML")
	if root == nil {
		return nil, fmt.Errorf("template %s: missing HPXML root element", origin)
	}
	// Every stage writes under Building/BuildingDetails, so a template
	// without that chain must fail here rather than mid-translation.
	if !root.Has("Building") {
		return nil, fmt.Errorf("template %s: missing Building element", origin)
	}
	building := root.EnsureChild("Building")
	if !building.Has("BuildingDetails") {
		return nil, fmt.Errorf("template %s: missing BuildingDetails element", origin)
	}
	building.EnsureChild("BuildingDetails")
	return doc, nil
}

func templateSource() (string, string, error) {
	if override := os.Getenv(EnvTemplateOverride); override != "" {
		data, err := os.ReadFile(override)
		if err != nil {
			return "", "", fmt.Errorf("template override %s: %w", override, err)
		}
		return string(data), override, nil
	}
	if data, err := os.ReadFile(filepath.FromSlash(devTemplatePath)); err == nil {
		return string(data), devTemplatePath, nil
	}
	return embeddedTemplate, "embedded", nil
}
