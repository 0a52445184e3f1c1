// Package estimate turns parsed layer totals into print durations.
package estimate

import (
	"math"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/ccollicutt/moaitime/pkg/gcode"
)

// DefaultLayerChange is the time the printer spends between two layers
// (peel, platform lift and settle) that the slicer does not account for.
const DefaultLayerChange = 9500 * time.Millisecond

// FromSeconds converts seconds to a duration with microsecond resolution.
// Whole seconds and the fractional part are floored separately.
func FromSeconds(secs float64) time.Duration {
	whole, frac := math.Modf(secs)
	micros := math.Floor(frac * 1e6)
	return time.Duration(whole)*time.Second + time.Duration(micros)*time.Microsecond
}

// Model computes durations for a parse result.
type Model struct {
	// LayerChange is the overhead added once per layer record.
	LayerChange time.Duration
}

// NewModel returns a model with the given per-layer overhead. Zero is a
// valid overhead; a negative value selects DefaultLayerChange.
func NewModel(layerChange time.Duration) *Model {
	if layerChange < 0 {
		layerChange = DefaultLayerChange
	}
	return &Model{LayerChange: layerChange}
}

// LayerChangeTime is the per-layer overhead times the number of layer records,
// including zero-filled gap layers.
func (m *Model) LayerChangeTime(r *gcode.Result) time.Duration {
	return FromSeconds(m.LayerChange.Seconds() * float64(len(r.Layers)))
}

// LaserTime is the summed travel time of all layers.
func (m *Model) LaserTime(r *gcode.Result) time.Duration {
	return FromSeconds(floats.Sum(r.LayerTimes()))
}

// TotalTime is LayerChangeTime plus LaserTime.
func (m *Model) TotalTime(r *gcode.Result) time.Duration {
	return m.LayerChangeTime(r) + m.LaserTime(r)
}

// Breakdown is the full estimate of one file.
type Breakdown struct {
	SlicerEstimate *time.Duration `json:"slicer_estimate,omitempty"`
	Laser          time.Duration  `json:"laser"`
	LayerChange    time.Duration  `json:"layer_change"`
	Total          time.Duration  `json:"total"`
	Layers         int            `json:"layers"`
	Distance       float64        `json:"distance_mm"`
}

// Estimate computes every duration of r.
func (m *Model) Estimate(r *gcode.Result) Breakdown {
	b := Breakdown{
		Laser:       m.LaserTime(r),
		LayerChange: m.LayerChangeTime(r),
		Layers:      len(r.Layers),
		Distance:    r.TotalDistance(),
	}
	b.Total = b.LayerChange + b.Laser
	if r.SlicerEstimate != nil {
		est := *r.SlicerEstimate
		b.SlicerEstimate = &est
	}
	return b
}

// Divergence returns how far the slicer estimate is off, relative to Total.
// ok is false when there is no slicer estimate or nothing to compare with.
func (b Breakdown) Divergence() (ratio float64, ok bool) {
	if b.SlicerEstimate == nil || b.Total <= 0 {
		return 0, false
	}
	return math.Abs(float64(b.Total-*b.SlicerEstimate)) / float64(b.Total), true
}
