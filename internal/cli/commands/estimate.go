package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/moaitime/pkg/config"
	"github.com/ccollicutt/moaitime/pkg/estimate"
	"github.com/ccollicutt/moaitime/pkg/gcode"
	"github.com/ccollicutt/moaitime/pkg/output"
	"github.com/ccollicutt/moaitime/pkg/webhook"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// EstimateOptions holds command-line options for the estimate command.
type EstimateOptions struct {
	Config     string
	Output     string
	Layers     bool
	Quiet      bool
	NoProgress bool
	NoColor    bool
	KeepGoing  bool

	// Webhook options
	WebhookURL     string
	WebhookToken   string
	WebhookTrigger string
}

// NewEstimateCommand creates the estimate command.
func NewEstimateCommand() *cobra.Command {
	opts := &EstimateOptions{}

	cmd := &cobra.Command{
		Use:   "estimate <gcode-file>...",
		Short: "Estimate print time of gcode files",
		Long: `Estimate the real print time of stereolithography gcode files.

The estimate is the laser travel time of every layer plus a fixed layer
change overhead (peel, lift and settle) per layer, which slicers leave out.
When the file carries a slicer estimate (;TIME:) it is shown for comparison.

Each file is reported under its own header. By default the first file that
cannot be read or parsed aborts the run; --keep-going reports it and moves on.

Exit codes:
  0 - All files estimated
  1 - Some files failed (with --keep-going)
  2 - Configuration or runtime error`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEstimate(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "Printer profile (YAML)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().BoolVarP(&opts.Layers, "layers", "l", false, "Include the per-layer breakdown")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "One line per file")
	cmd.Flags().BoolVar(&opts.NoProgress, "no-progress", false, "Do not show a progress bar")
	cmd.Flags().BoolVar(&opts.NoColor, "no-color", false, "Disable colored output")
	cmd.Flags().BoolVarP(&opts.KeepGoing, "keep-going", "k", false, "Report failed files and continue with the next")

	cmd.Flags().StringVar(&opts.WebhookURL, "webhook-url", "", "Webhook endpoint URL")
	cmd.Flags().StringVar(&opts.WebhookToken, "webhook-token", "", "Bearer token for webhook auth")
	cmd.Flags().StringVar(&opts.WebhookTrigger, "webhook-trigger", "on_divergence", "When to fire webhook (on_divergence|always|never)")

	return cmd
}

func runEstimate(cmd *cobra.Command, args []string, opts *EstimateOptions) error {
	ExitCode = 0
	started := time.Now()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger, err := loggerFor(cmd)
	if err != nil {
		return err
	}

	cfg, err := config.Load(ctx, opts.Config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	formatter, err := createFormatter(opts)
	if err != nil {
		return err
	}

	files, err := gcode.ExpandGlobs(args)
	if err != nil {
		return fmt.Errorf("expanding gcode files: %w", err)
	}

	model := estimate.NewModel(cfg.LayerChangeTime)
	report := &output.Report{
		Metadata: output.Metadata{
			ConfigFile:      opts.Config,
			LayerChangeTime: model.LayerChange,
			FeedrateUnit:    string(cfg.FeedrateUnit),
		},
	}

	showProgress := !opts.NoProgress && opts.Output == "text" && !opts.Quiet
	var abort error
	for _, path := range files {
		result, err := parseFile(ctx, path, cfg, showProgress, cmd.ErrOrStderr())
		if err != nil {
			if !opts.KeepGoing {
				abort = err
				break
			}
			logger.Error("estimate failed", "file", path, "error", err)
			report.Files = append(report.Files, output.NewFailedReport(path, err))
			continue
		}

		b := model.Estimate(result)
		logger.Debug("estimated",
			"file", path,
			"layers", b.Layers,
			"distance_mm", b.Distance,
			"total", b.Total)
		report.Files = append(report.Files,
			output.NewFileReport(path, result, b, cfg.DivergenceThreshold, opts.Layers))
	}

	report.Metadata.AnalyzedAt = time.Now()
	report.Metadata.Duration = report.Metadata.AnalyzedAt.Sub(started)

	if err := formatter.Format(ctx, report, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	// Files before the failing one are still reported; the failing one is not.
	if abort != nil {
		return abort
	}

	sendWebhooks(ctx, logger, cfg, opts, report)

	if report.HasFailures() {
		ExitCode = 1
	}

	return nil
}

// parseFile parses one file, with a progress bar on w when requested.
func parseFile(ctx context.Context, path string, cfg *config.Config, progress bool, w io.Writer) (*gcode.Result, error) {
	parseOpts := cfg.ParseOptions()
	if !progress {
		return gcode.ParseFile(ctx, path, parseOpts...)
	}

	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return nil, fmt.Errorf("opening gcode file %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	bar := newProgressBar(w, info.Size())
	defer func() { _ = bar.Finish() }()

	parseOpts = append(parseOpts, gcode.WithLayerHook(layerProgress(bar)))
	result, err := gcode.Parse(ctx, progressReader(f, bar), parseOpts...)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return result, nil
}

func createFormatter(opts *EstimateOptions) (output.Formatter, error) {
	formatOpts := output.FormatOptions{
		Layers:  opts.Layers,
		Quiet:   opts.Quiet,
		NoColor: opts.NoColor,
	}

	switch opts.Output {
	case "text":
		return output.NewTextFormatter(formatOpts), nil
	case "json":
		return output.NewJSONFormatter(formatOpts), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (use text or json)", opts.Output)
	}
}

// sendWebhooks sends the report to all configured webhooks.
// Errors are logged but don't fail the run.
func sendWebhooks(ctx context.Context, logger *slog.Logger, cfg *config.Config, opts *EstimateOptions, report *output.Report) {
	webhooks := collectWebhooks(cfg, opts)
	if len(webhooks) == 0 {
		return
	}

	client := webhook.NewClient()
	for _, wh := range webhooks {
		if !shouldFireWebhook(wh.Trigger, report.HasDivergence()) {
			continue
		}

		resp := client.Send(ctx, report, webhook.SendOptions{
			URL:     wh.URL,
			Token:   wh.Token,
			Timeout: wh.Timeout,
		})

		name := wh.Name
		if name == "" {
			name = wh.URL
		}
		if resp.Success() {
			logger.Info("webhook sent", "webhook", name, "status", resp.StatusCode, "took", resp.Duration)
		} else {
			logger.Warn("webhook failed", "webhook", name, "error", resp.Error)
		}
	}
}

// collectWebhooks merges config file webhooks with the CLI webhook.
func collectWebhooks(cfg *config.Config, opts *EstimateOptions) []config.WebhookConfig {
	webhooks := make([]config.WebhookConfig, 0, len(cfg.Webhooks)+1)
	webhooks = append(webhooks, cfg.Webhooks...)

	if opts.WebhookURL != "" {
		trigger := config.WebhookTrigger(opts.WebhookTrigger)
		if trigger == "" {
			trigger = config.WebhookTriggerOnDivergence
		}

		webhooks = append(webhooks, config.WebhookConfig{
			Name:    "cli",
			URL:     opts.WebhookURL,
			Token:   opts.WebhookToken,
			Trigger: trigger,
			Timeout: config.DefaultWebhookTimeout,
		})
	}

	return webhooks
}

// shouldFireWebhook determines if a webhook should fire.
func shouldFireWebhook(trigger config.WebhookTrigger, divergent bool) bool {
	switch trigger {
	case config.WebhookTriggerAlways:
		return true
	case config.WebhookTriggerNever:
		return false
	default:
		return divergent
	}
}
