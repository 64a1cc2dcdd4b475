// =============================================================================
// Transcript Converter - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Transcript Converter CLI. It
// delegates command execution to the cmd package.
//
// USAGE:
//   converter render <file>    - Render a transcript document as a report
//   converter validate <file>  - Check a transcript document for data problems
//   converter version          - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Document model, transform, validation and writers
//   - pkg/           : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/transcript-converter/cmd"
)

func main() {
	cmd.Execute()
}
