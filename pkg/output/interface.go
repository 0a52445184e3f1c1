package output

import (
	"context"
	"io"
)

// Formatter renders estimate reports in a specific format.
type Formatter interface {
	// Format renders the report to the given writer.
	Format(ctx context.Context, report *Report, w io.Writer) error

	// Name returns the format name (text, json).
	Name() string
}

// FormatOptions controls formatter behavior.
type FormatOptions struct {
	// Layers adds the per-layer breakdown.
	Layers bool

	// Quiet prints one line per file.
	Quiet bool

	// NoColor disables terminal styling of the text output.
	NoColor bool
}
