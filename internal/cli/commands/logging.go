package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

// DefaultLogLevel keeps diagnostics quiet unless something goes wrong.
const DefaultLogLevel = "warn"

// loggerFor builds the diagnostic logger from the --log-level flag.
// Diagnostics go to stderr so they never mix with the report.
func loggerFor(cmd *cobra.Command) (*slog.Logger, error) {
	level := DefaultLogLevel
	if f := cmd.Flags().Lookup("log-level"); f != nil {
		level = f.Value.String()
	}

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q (use debug, info, warn or error)", level)
	}

	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: lvl})
	return slog.New(handler), nil
}
