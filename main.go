// =============================================================================
// Purchase Order Generator - Main Entry Point
// =============================================================================
//
// This is the main entry point for the pogen CLI. It delegates command
// execution to the cmd package.
//
// USAGE:
//   pogen [count]           - Generate purchase_orders.csv (default 10000 records)
//   pogen validate [file]   - Check a generated CSV file
//   pogen serve             - Serve the CSV as a JSON API
//   pogen version           - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Generation, serialization, validation and the API
//   - pkg/           : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/po-data-generator/cmd"
)

func main() {
	cmd.Execute()
}
