// Package gcode reads stereolithography gcode files and accumulates the
// laser travel distance and time of every layer.
package gcode

import (
	"time"

	"gonum.org/v1/gonum/floats"
)

// DefaultPlaceholderEstimate is the ;TIME: value some slicers write when they
// did not estimate anything. It is treated as "no estimate".
const DefaultPlaceholderEstimate uint32 = 6666

// LayerRecord holds the accumulated totals of one layer.
type LayerRecord struct {
	// Distance is the XY travel in millimeters.
	Distance float64 `json:"distance_mm"`

	// Time is the travel time in seconds.
	Time float64 `json:"time_seconds"`
}

// Result is the outcome of parsing one gcode file.
type Result struct {
	// SlicerEstimate is the duration declared by the slicer, nil if the file
	// declared none or only the placeholder.
	SlicerEstimate *time.Duration

	// Layers is indexed by layer number. Layers that were skipped by the
	// layer markers are present with zero totals.
	Layers []LayerRecord
}

// LayerTimes returns the per-layer times in seconds, in layer order.
func (r *Result) LayerTimes() []float64 {
	out := make([]float64, len(r.Layers))
	for i, l := range r.Layers {
		out[i] = l.Time
	}
	return out
}

// TotalDistance returns the XY travel of all layers in millimeters.
func (r *Result) TotalDistance() float64 {
	d := make([]float64, len(r.Layers))
	for i, l := range r.Layers {
		d[i] = l.Distance
	}
	return floats.Sum(d)
}

// layer returns the record for index, growing the table with zero records as needed.
func (r *Result) layer(index int) *LayerRecord {
	for len(r.Layers) <= index {
		r.Layers = append(r.Layers, LayerRecord{})
	}
	return &r.Layers[index]
}
