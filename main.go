// =============================================================================
// H2K to HPXML Translator - Main Entry Point
// =============================================================================
//
// Entry point for the h2khpxml CLI. Initializes the Cobra framework and
// delegates command execution to the cmd package.
//
// USAGE:
//   h2khpxml convert      - Translate H2K files to HPXML
//   h2khpxml run          - Simulate a translated document
//   h2khpxml version      - Display the application version
//
// ARCHITECTURE:
//   cmd/          : CLI command definitions (Cobra)
//   internal/     : Core translation, batch and simulation logic
//   pkg/          : Shared utilities
//
// =============================================================================

package main

import (
	"github.com/h2ktools/h2k-to-hpxml-conversion/cmd"
)

func main() {
	cmd.Execute()
}
