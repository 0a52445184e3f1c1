// Package output provides formatting of print time estimates.
package output

import (
	"time"

	"github.com/ccollicutt/moaitime/pkg/estimate"
	"github.com/ccollicutt/moaitime/pkg/gcode"
	"github.com/ccollicutt/moaitime/pkg/humanize"
)

// Report is the complete output of one run.
type Report struct {
	Files    []FileReport `json:"files"`
	Metadata Metadata     `json:"metadata"`
}

// FileReport is the estimate for one gcode file. Exactly one of Estimate and
// Error is set.
type FileReport struct {
	Source   string              `json:"source"`
	Estimate *estimate.Breakdown `json:"estimate,omitempty"`
	Phrases  *Phrases            `json:"phrases,omitempty"`

	// Divergent is set when the slicer estimate is further off than the
	// configured threshold.
	Divergent bool `json:"divergent"`

	// Layers is the per-layer breakdown, only filled when requested.
	Layers []gcode.LayerRecord `json:"layers,omitempty"`

	Error string `json:"error,omitempty"`
}

// Phrases holds the human readable form of each duration.
type Phrases struct {
	SlicerEstimate string `json:"slicer_estimate,omitempty"`
	Total          string `json:"total"`
	Laser          string `json:"laser"`
	LayerChange    string `json:"layer_change"`
}

// Metadata provides context about the run.
type Metadata struct {
	ConfigFile      string        `json:"config_file,omitempty"`
	LayerChangeTime time.Duration `json:"layer_change_time"`
	FeedrateUnit    string        `json:"feedrate_unit"`
	AnalyzedAt      time.Time     `json:"analyzed_at"`
	Duration        time.Duration `json:"duration"`
}

// NewFileReport builds the report entry of a parsed file.
func NewFileReport(source string, result *gcode.Result, b estimate.Breakdown, threshold float64, withLayers bool) FileReport {
	fr := FileReport{
		Source:   source,
		Estimate: &b,
		Phrases: &Phrases{
			Total:       humanize.Duration(b.Total),
			Laser:       humanize.Duration(b.Laser),
			LayerChange: humanize.Duration(b.LayerChange),
		},
	}
	if b.SlicerEstimate != nil {
		fr.Phrases.SlicerEstimate = humanize.Duration(*b.SlicerEstimate)
	}
	if ratio, ok := b.Divergence(); ok && ratio > threshold {
		fr.Divergent = true
	}
	if withLayers {
		fr.Layers = append([]gcode.LayerRecord(nil), result.Layers...)
	}
	return fr
}

// NewFailedReport builds the report entry of a file that could not be estimated.
func NewFailedReport(source string, err error) FileReport {
	return FileReport{Source: source, Error: err.Error()}
}

// HasDivergence returns true if any file's slicer estimate diverged.
func (r *Report) HasDivergence() bool {
	for _, f := range r.Files {
		if f.Divergent {
			return true
		}
	}
	return false
}

// HasFailures returns true if any file could not be estimated.
func (r *Report) HasFailures() bool {
	for _, f := range r.Files {
		if f.Error != "" {
			return true
		}
	}
	return false
}
