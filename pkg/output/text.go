package output

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"

	"github.com/ccollicutt/moaitime/pkg/estimate"
	"github.com/ccollicutt/moaitime/pkg/humanize"
)

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	styles := newStyles(w, f.opts.NoColor)

	for i := range report.Files {
		fr := &report.Files[i]
		if f.opts.Quiet {
			f.formatQuiet(fr, w)
			continue
		}
		if err := f.formatFile(fr, styles, w); err != nil {
			return err
		}
	}
	return nil
}

func (f *TextFormatter) formatQuiet(fr *FileReport, w io.Writer) {
	if fr.Error != "" {
		fmt.Fprintf(w, "%s: error: %s\n", fr.Source, fr.Error)
		return
	}
	fmt.Fprintf(w, "%s: %s\n", fr.Source, fr.Phrases.Total)
}

func (f *TextFormatter) formatFile(fr *FileReport, s styles, w io.Writer) error {
	fmt.Fprintf(w, "For %s:\n", fr.Source)

	if fr.Error != "" {
		fmt.Fprintf(w, "\t%s %s\n", s.err.Render("Error:"), fr.Error)
		return nil
	}

	if fr.Phrases.SlicerEstimate != "" {
		fmt.Fprintf(w, "\tSlicer estimated print time: %s\n", fr.Phrases.SlicerEstimate)
	}
	fmt.Fprintf(w, "\tEstimated print time: %s\n", s.total.Render(fr.Phrases.Total))
	fmt.Fprintf(w, "\t\t       Laser: %s\n", fr.Phrases.Laser)
	fmt.Fprintf(w, "\t\tLayer change: %s\n", fr.Phrases.LayerChange)

	if fr.Divergent {
		ratio, _ := fr.Estimate.Divergence()
		fmt.Fprintf(w, "\t%s\n", s.warn.Render(fmt.Sprintf("Slicer estimate is off by %.0f%%", ratio*100)))
	}

	if f.opts.Layers && len(fr.Layers) > 0 {
		return f.formatLayers(fr, w)
	}
	return nil
}

func (f *TextFormatter) formatLayers(fr *FileReport, w io.Writer) error {
	table := tablewriter.NewWriter(w)
	table.Header("Layer", "Distance (mm)", "Laser time")

	for i, l := range fr.Layers {
		if err := table.Append(
			fmt.Sprintf("%d", i),
			fmt.Sprintf("%.3f", l.Distance),
			humanize.Duration(estimate.FromSeconds(l.Time)),
		); err != nil {
			return fmt.Errorf("formatting layer %d: %w", i, err)
		}
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("rendering layer table: %w", err)
	}
	return nil
}

// styles holds the lipgloss styles bound to one writer.
type styles struct {
	total lipgloss.Style
	warn  lipgloss.Style
	err   lipgloss.Style
}

func newStyles(w io.Writer, noColor bool) styles {
	if noColor {
		plain := lipgloss.NewStyle()
		return styles{total: plain, warn: plain, err: plain}
	}
	r := lipgloss.NewRenderer(w)
	return styles{
		total: r.NewStyle().Foreground(lipgloss.Color("2")),
		warn:  r.NewStyle().Foreground(lipgloss.Color("3")),
		err:   r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
}
