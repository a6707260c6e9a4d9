// Command quina-billing computes billable usage for the Quina
// conversational-commerce service line.
package main

import (
	"os"

	"quina-billing/cmd/cli/cmd"
	"quina-billing/internal/logging"
)

func main() {
	defer logging.Sync()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
