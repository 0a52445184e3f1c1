package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/moaitime/pkg/config"
	"github.com/ccollicutt/moaitime/pkg/humanize"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a printer profile",
		Long: `Validate a moaitime printer profile without estimating anything.

Checks:
  - YAML syntax
  - Layer change time and divergence threshold are not negative
  - Feedrate unit is known
  - Webhook URLs and triggers`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Validating %s...\n", configPath)

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Fprintf(out, "\nConfiguration valid!\n")
	fmt.Fprintf(out, "  Layer change:         %s\n", humanize.Duration(cfg.LayerChangeTime))
	fmt.Fprintf(out, "  Placeholder estimate: %d\n", cfg.PlaceholderEstimate)
	fmt.Fprintf(out, "  Feedrate unit:        %s\n", cfg.FeedrateUnit)
	fmt.Fprintf(out, "  Divergence threshold: %.0f%%\n", cfg.DivergenceThreshold*100)

	if len(cfg.Webhooks) > 0 {
		fmt.Fprintf(out, "\nWebhooks:\n")
		for i, wh := range cfg.Webhooks {
			name := wh.Name
			if name == "" {
				name = wh.URL
			}
			fmt.Fprintf(out, "  %d. %s (%s)\n", i+1, name, wh.Trigger)
		}
	}

	return nil
}
