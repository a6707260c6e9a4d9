// Package output renders a billing run for humans and machines.
// This is the reporting surface; all numbers come from the engine.
package output

import (
	"io"

	"quina-billing/core/engine"
	"quina-billing/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable invoice table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"

	// FormatMarkdown is a markdown report
	FormatMarkdown Format = "markdown"
)

// Renderer produces output in a specific format
type Renderer interface {
	// Format returns the format type
	Format() Format

	// Render writes the run result
	Render(w io.Writer, result *engine.Result) error
}

// For returns the renderer for a format name.
func For(format Format) (Renderer, error) {
	switch format {
	case FormatCLI, "":
		return cliRenderer{}, nil
	case FormatJSON:
		return jsonRenderer{}, nil
	case FormatMarkdown:
		return markdownRenderer{}, nil
	}
	return nil, errors.Configf("unknown output format %q", format)
}
